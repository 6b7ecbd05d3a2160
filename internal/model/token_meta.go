package model

import "github.com/ethereum/go-ethereum/common"

// TokenMeta captures ERC20 metadata used to format and parse amounts.
type TokenMeta struct {
	Address  string `json:"address"`
	Decimals uint8  `json:"decimals"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
}

// Addr returns the parsed token address.
func (t TokenMeta) Addr() common.Address {
	return common.HexToAddress(t.Address)
}
