package model

// Bounds is the (lower, upper) tick range of a concentrated-liquidity
// position. Lower < Upper; both are multiples of the pool's tick spacing.
type Bounds struct {
	Lower int64 `json:"lower"`
	Upper int64 `json:"upper"`
}
