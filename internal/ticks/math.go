// Package ticks implements the pure numeric conversions between the pool's
// fixed-point sqrt price, the tick ladder, human prices, fee fractions, and
// tick-spacing exponents. Nothing here performs I/O; only numeric edge cases
// are fallible.
package ticks

import (
	"fmt"
	"math"
	"math/big"

	"github.com/holiman/uint256"

	"liquidityDesk/internal/model"
)

// TickBase is the price ratio between two adjacent ticks:
// price(tick) = TickBase^tick.
const TickBase = 1.000001

// MinTick and MaxTick bound the tick ladder. They correspond to raw prices
// of 2^-128 and 2^128.
const (
	MinTick int64 = -88722883
	MaxTick int64 = 88722883
)

var (
	// MinSqrtRatio and MaxSqrtRatio are the protocol-wide sqrt price limits
	// in Q128.128, the sqrt ratios at MinTick and MaxTick.
	MinSqrtRatio = uint256.MustFromDecimal("18446748437148339061")
	MaxSqrtRatio = uint256.MustFromDecimal("6277100250585753475930931601400621808602321654880405518632")

	logTickBase = math.Log(TickBase)

	q128Int   = new(big.Int).Lsh(big.NewInt(1), 128)
	q128Float = new(big.Float).SetPrec(256).SetInt(q128Int)
	hundred   = big.NewFloat(100)
)

// rawPrice returns (sqrt/2^128)^2 with no decimal adjustment.
func rawPrice(sqrt *uint256.Int) float64 {
	f := new(big.Float).SetPrec(256).SetInt(sqrt.ToBig())
	f.Quo(f, q128Float)
	v, _ := f.Float64()
	return v * v
}

// PriceFromSqrtRatio converts a Q128.128 sqrt price into a human price
// (token1 per token0), scaled by 10^(decimals0-decimals1).
func PriceFromSqrtRatio(sqrt *uint256.Int, decimals0, decimals1 uint8) float64 {
	return rawPrice(sqrt) * math.Pow(10, float64(decimals0)-float64(decimals1))
}

// TickFromSqrtRatio returns floor(log(price)/log(TickBase)) for the raw,
// decimal-unadjusted price. Decimal scaling is a display concern and must
// never be applied before this conversion.
func TickFromSqrtRatio(sqrt *uint256.Int) int64 {
	return int64(math.Floor(math.Log(rawPrice(sqrt)) / logTickBase))
}

// TickFromPrice converts a human price into a tick index, undoing the
// display decimal adjustment first.
func TickFromPrice(price float64, decimals0, decimals1 uint8) (int64, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return 0, fmt.Errorf("%w: price must be positive and finite, got %v", model.ErrInvalidInput, price)
	}
	raw := price * math.Pow(10, float64(decimals1)-float64(decimals0))
	return int64(math.Floor(math.Log(raw) / logTickBase)), nil
}

// SqrtRatioFromTick returns TickBase^(tick/2) in Q128.128.
func SqrtRatioFromTick(tick int64) *uint256.Int {
	f := new(big.Float).SetPrec(256).SetFloat64(math.Pow(TickBase, float64(tick)/2))
	f.Mul(f, q128Float)
	i, _ := f.Int(nil)
	out, _ := uint256.FromBig(i)
	return out
}

// FeePercentToFixed converts a fee percentage into the protocol's unsigned
// 128-bit fixed-point fraction: floor(pct/100 * 2^128). The round-trip with
// FeeFixedToPercent is lossy at float precision limits.
func FeePercentToFixed(pct float64) *big.Int {
	f := new(big.Float).SetPrec(256).SetFloat64(pct)
	f.Quo(f, hundred)
	f.Mul(f, q128Float)
	i, _ := f.Int(nil)
	return i
}

// FeeFixedToPercent is the approximate inverse of FeePercentToFixed.
func FeeFixedToPercent(fixed *big.Int) float64 {
	f := new(big.Float).SetPrec(256).SetInt(fixed)
	f.Quo(f, q128Float)
	v, _ := f.Float64()
	return v * 100
}

// SpacingPercentToExponent converts a spacing percentage into the number of
// ticks per spacing unit, rounded to nearest. Zero is allowed (pools with
// spacing disabled); a negative percent has no tick-count meaning.
func SpacingPercentToExponent(pct float64) (uint32, error) {
	if math.IsNaN(pct) || math.IsInf(pct, 0) || pct < 0 {
		return 0, fmt.Errorf("%w: spacing percent must be non-negative and finite, got %v", model.ErrInvalidInput, pct)
	}
	return uint32(math.Round(math.Log1p(pct/100) / logTickBase)), nil
}

// SpacingExponentToPercent is the inverse of SpacingPercentToExponent.
func SpacingExponentToPercent(exp uint32) float64 {
	return (math.Pow(TickBase, float64(exp)) - 1) * 100
}

// RoundTickToSpacing rounds a tick to a multiple of the pool's spacing,
// down or up. Zero spacing (degenerate pools) passes the tick through.
// The final round-to-nearest absorbs float drift from the division.
func RoundTickToSpacing(tick int64, spacing uint32, roundDown bool) int64 {
	if spacing == 0 {
		return tick
	}
	q := float64(tick) / float64(spacing)
	if roundDown {
		q = math.Floor(q)
	} else {
		q = math.Ceil(q)
	}
	return int64(math.Round(q * float64(spacing)))
}
