// Package swap computes the client-side execution guards for a swap: a
// slippage-bounded sqrt-ratio limit and an amount bound, for both exact-in
// and exact-out modes.
package swap

import (
	"fmt"
	"math"
	"math/big"

	"github.com/holiman/uint256"

	"liquidityDesk/internal/model"
	"liquidityDesk/internal/ticks"
)

// checkSlippage validates a slippage tolerance percent. Values outside
// [0, 100] would put sqrt(1 - s/100) outside the real domain.
func checkSlippage(slippagePct float64) error {
	if math.IsNaN(slippagePct) || slippagePct < 0 || slippagePct > 100 {
		return fmt.Errorf("%w: slippage percent %v outside [0, 100]", model.ErrInvalidInput, slippagePct)
	}
	return nil
}

// SqrtRatioLimit returns the price bound past which a swap must not
// execute. The limit always moves against the trader relative to the
// current price and never leaves the protocol-wide sqrt ratio range: a
// candidate outside the valid open interval falls back to the global
// extreme for that direction.
func SqrtRatioLimit(current *uint256.Int, slippagePct float64, sellingToken0 bool) (*uint256.Int, error) {
	if err := checkSlippage(slippagePct); err != nil {
		return nil, err
	}

	var factor float64
	if sellingToken0 {
		factor = math.Sqrt(1 - slippagePct/100)
	} else {
		factor = math.Sqrt(1 + slippagePct/100)
	}

	f := new(big.Float).SetPrec(256).SetInt(current.ToBig())
	f.Mul(f, new(big.Float).SetPrec(256).SetFloat64(factor))
	scaled, _ := f.Int(nil)
	candidate, overflow := uint256.FromBig(scaled)
	if overflow {
		candidate = new(uint256.Int).Set(ticks.MaxSqrtRatio)
	}

	if sellingToken0 {
		// Price moves down; limit must sit strictly below current and
		// above the global minimum.
		if candidate.Cmp(ticks.MinSqrtRatio) <= 0 || candidate.Cmp(current) >= 0 {
			return new(uint256.Int).Set(ticks.MinSqrtRatio), nil
		}
		return candidate, nil
	}

	// Price moves up; limit must sit strictly above current and below the
	// global maximum.
	if candidate.Cmp(ticks.MaxSqrtRatio) >= 0 || candidate.Cmp(current) <= 0 {
		return new(uint256.Int).Set(ticks.MaxSqrtRatio), nil
	}
	return candidate, nil
}

// ExactInMinimum returns the slippage-reduced minimum output for an
// exact-input swap. The expected output is read from the quote leg of the
// token being bought, selected by the pool's token order for the sell side.
func ExactInMinimum(quote model.SwapQuote, sellIsToken0 bool, slippagePct float64) (*big.Int, error) {
	if err := checkSlippage(slippagePct); err != nil {
		return nil, err
	}

	leg := quote.Amount1
	if !sellIsToken0 {
		leg = quote.Amount0
	}
	if leg.Mag == nil {
		return nil, fmt.Errorf("%w: output leg missing", model.ErrQuoteShape)
	}
	if leg.Mag.Sign() < 0 {
		return nil, fmt.Errorf("%w: negative output magnitude %s", model.ErrQuoteShape, leg.Mag)
	}

	// (100-s)/100 rather than 1-s/100: integer percents stay exact in
	// the rational, so floor(2000 * 99%) is 1980, not 1979.
	factor := new(big.Rat).SetFloat64(100 - slippagePct)
	factor.Quo(factor, big.NewRat(100, 1))
	min := new(big.Int).Mul(leg.Mag, factor.Num())
	return min.Quo(min, factor.Denom()), nil
}

// ExactOutRequiredInput returns the input amount a quote demands for an
// exact-output swap. The magnitude is taken absolutely: the sign of this
// leg depends on relative token ordering, not on swap direction.
func ExactOutRequiredInput(quote model.SwapQuote, inIsToken0 bool) (*big.Int, error) {
	leg := quote.Amount0
	if !inIsToken0 {
		leg = quote.Amount1
	}
	if leg.Mag == nil {
		return nil, fmt.Errorf("%w: input leg missing", model.ErrQuoteShape)
	}
	return new(big.Int).Abs(leg.Mag), nil
}

// ExactInGuard assembles the execution guard for an exact-input swap.
func ExactInGuard(current *uint256.Int, quote model.SwapQuote, sellIsToken0 bool, slippagePct float64) (model.ExecutionGuard, error) {
	min, err := ExactInMinimum(quote, sellIsToken0, slippagePct)
	if err != nil {
		return model.ExecutionGuard{}, err
	}
	limit, err := SqrtRatioLimit(current, slippagePct, sellIsToken0)
	if err != nil {
		return model.ExecutionGuard{}, err
	}
	return model.ExecutionGuard{
		SqrtRatioLimit: limit,
		AmountBound:    min,
	}, nil
}

// ExactOutGuard assembles the execution guard for an exact-output swap.
// The amount bound equals the desired output exactly: reducing it would
// defeat the point of an exact output, so slippage protection for this
// mode is carried entirely by the sqrt ratio limit.
func ExactOutGuard(current *uint256.Int, desiredOut *big.Int, sellIsToken0 bool, slippagePct float64) (model.ExecutionGuard, error) {
	limit, err := SqrtRatioLimit(current, slippagePct, sellIsToken0)
	if err != nil {
		return model.ExecutionGuard{}, err
	}
	return model.ExecutionGuard{
		SqrtRatioLimit: limit,
		AmountBound:    new(big.Int).Set(desiredOut),
	}, nil
}
