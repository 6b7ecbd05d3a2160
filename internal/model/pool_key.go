package model

import (
	"bytes"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// TokenOrder records how a logical (sell, buy) or (a, b) token pair maps onto
// the pool's canonical (token0, token1) ordering.
type TokenOrder int

const (
	// OrderForward means the first logical token is token0.
	OrderForward TokenOrder = iota
	// OrderSwapped means the first logical token is token1.
	OrderSwapped
)

// PoolKey identifies a pool. Token0 is always the numerically lower address.
type PoolKey struct {
	Token0      common.Address `json:"token0"`
	Token1      common.Address `json:"token1"`
	Fee         *big.Int       `json:"fee"`
	TickSpacing uint32         `json:"tick_spacing"`
	Extension   common.Address `json:"extension"`
}

// NewPoolKey builds a canonical pool key from two logical tokens and reports
// how they were ordered. Fee is a fixed-point fraction over 2^128.
func NewPoolKey(tokenA, tokenB common.Address, fee *big.Int, tickSpacing uint32, extension common.Address) (PoolKey, TokenOrder) {
	order := OrderForward
	token0, token1 := tokenA, tokenB
	if bytes.Compare(tokenA.Bytes(), tokenB.Bytes()) > 0 {
		token0, token1 = tokenB, tokenA
		order = OrderSwapped
	}
	return PoolKey{
		Token0:      token0,
		Token1:      token1,
		Fee:         fee,
		TickSpacing: tickSpacing,
		Extension:   extension,
	}, order
}

// First returns the address the first logical token maps to.
func (o TokenOrder) First(key PoolKey) common.Address {
	if o == OrderSwapped {
		return key.Token1
	}
	return key.Token0
}

// Second returns the address the second logical token maps to.
func (o TokenOrder) Second(key PoolKey) common.Address {
	if o == OrderSwapped {
		return key.Token0
	}
	return key.Token1
}

// FirstIsToken0 reports whether the first logical token is token0.
func (o TokenOrder) FirstIsToken0() bool {
	return o == OrderForward
}
