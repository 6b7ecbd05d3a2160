package model

import (
	"math/big"

	"github.com/holiman/uint256"
)

// SignedAmount is one leg of a swap quote. IsOutput tags tokens received;
// inputs (tokens spent) carry IsOutput=false. The tag replaces a raw sign
// bit so that misreading a leg is a type-level mistake, not a silent one.
type SignedAmount struct {
	Mag      *big.Int `json:"mag"`
	IsOutput bool     `json:"is_output"`
}

// SwapQuote carries the pool's signed token deltas for a candidate swap.
type SwapQuote struct {
	Amount0 SignedAmount `json:"amount0"`
	Amount1 SignedAmount `json:"amount1"`
}

// ExecutionGuard holds the two client-side protections passed into a swap:
// a sqrt-ratio bound past which the trade must not execute, and an amount
// bound (minimum received for exact-in, exact amount owed for exact-out).
type ExecutionGuard struct {
	SqrtRatioLimit *uint256.Int
	AmountBound    *big.Int
}
