package dex

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"liquidityDesk/internal/model"
)

// ABIPoolKey mirrors the core contract's PoolKey tuple for abi packing.
type ABIPoolKey struct {
	Token0      common.Address
	Token1      common.Address
	Fee         *big.Int
	TickSpacing uint32
	Extension   common.Address
}

// ABIBounds mirrors the core contract's Bounds tuple.
type ABIBounds struct {
	Lower int32
	Upper int32
}

// ABIPoolKeyFrom converts a model pool key for packing.
func ABIPoolKeyFrom(key model.PoolKey) ABIPoolKey {
	fee := key.Fee
	if fee == nil {
		fee = big.NewInt(0)
	}
	return ABIPoolKey{
		Token0:      key.Token0,
		Token1:      key.Token1,
		Fee:         fee,
		TickSpacing: key.TickSpacing,
		Extension:   key.Extension,
	}
}

// ABIBoundsFrom converts model bounds for packing.
func ABIBoundsFrom(bounds model.Bounds) ABIBounds {
	return ABIBounds{Lower: int32(bounds.Lower), Upper: int32(bounds.Upper)}
}
