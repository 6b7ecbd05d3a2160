package swap

import (
	"math"
	"math/big"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liquidityDesk/internal/model"
	"liquidityDesk/internal/ticks"
)

func sqrtAt(tick int64) *uint256.Int {
	return ticks.SqrtRatioFromTick(tick)
}

func TestSqrtRatioLimit(t *testing.T) {
	current := sqrtAt(0)

	t.Run("selling token0 moves limit down", func(t *testing.T) {
		limit, err := SqrtRatioLimit(current, 1, true)
		require.NoError(t, err)
		assert.Negative(t, limit.Cmp(current))
		assert.Positive(t, limit.Cmp(ticks.MinSqrtRatio))
	})

	t.Run("selling token1 moves limit up", func(t *testing.T) {
		limit, err := SqrtRatioLimit(current, 1, false)
		require.NoError(t, err)
		assert.Positive(t, limit.Cmp(current))
		assert.Negative(t, limit.Cmp(ticks.MaxSqrtRatio))
	})

	t.Run("zero slippage falls back to global bound", func(t *testing.T) {
		// candidate == current is outside the open interval.
		down, err := SqrtRatioLimit(current, 0, true)
		require.NoError(t, err)
		assert.Zero(t, down.Cmp(ticks.MinSqrtRatio))
		up, err := SqrtRatioLimit(current, 0, false)
		require.NoError(t, err)
		assert.Zero(t, up.Cmp(ticks.MaxSqrtRatio))
	})

	t.Run("huge slippage clamps to global bound", func(t *testing.T) {
		down, err := SqrtRatioLimit(current, 100, true)
		require.NoError(t, err)
		assert.Zero(t, down.Cmp(ticks.MinSqrtRatio))
	})

	t.Run("out-of-range slippage is an input error", func(t *testing.T) {
		for _, s := range []float64{-0.1, -100, 100.01, 150, math.NaN(), math.Inf(1)} {
			_, err := SqrtRatioLimit(current, s, true)
			assert.ErrorIs(t, err, model.ErrInvalidInput, "slippage %v", s)
			_, err = SqrtRatioLimit(current, s, false)
			assert.ErrorIs(t, err, model.ErrInvalidInput, "slippage %v", s)
		}
	})

	t.Run("stays in range across price ladder", func(t *testing.T) {
		for _, tick := range []int64{-80000000, -1000000, 0, 1000000, 80000000} {
			cur := sqrtAt(tick)
			for _, s := range []float64{0, 0.05, 0.5, 5, 50, 100} {
				down, err := SqrtRatioLimit(cur, s, true)
				require.NoError(t, err)
				assert.LessOrEqual(t, down.Cmp(cur), 0)
				assert.GreaterOrEqual(t, down.Cmp(ticks.MinSqrtRatio), 0)

				up, err := SqrtRatioLimit(cur, s, false)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, up.Cmp(cur), 0)
				assert.LessOrEqual(t, up.Cmp(ticks.MaxSqrtRatio), 0)
			}
		}
	})
}

func quoteOf(mag0, mag1 int64, out0, out1 bool) model.SwapQuote {
	return model.SwapQuote{
		Amount0: model.SignedAmount{Mag: big.NewInt(mag0), IsOutput: out0},
		Amount1: model.SignedAmount{Mag: big.NewInt(mag1), IsOutput: out1},
	}
}

func TestExactInMinimum(t *testing.T) {
	t.Run("reads opposite leg for token0 seller", func(t *testing.T) {
		min, err := ExactInMinimum(quoteOf(1000, 2000, false, true), true, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1980), min.Int64())
	})

	t.Run("reads opposite leg for token1 seller", func(t *testing.T) {
		min, err := ExactInMinimum(quoteOf(1000, 2000, true, false), false, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(990), min.Int64())
	})

	t.Run("floors the reduced amount", func(t *testing.T) {
		min, err := ExactInMinimum(quoteOf(0, 999, false, true), true, 0.1)
		require.NoError(t, err)
		assert.Equal(t, int64(998), min.Int64())
	})

	t.Run("zero slippage keeps expected output", func(t *testing.T) {
		min, err := ExactInMinimum(quoteOf(0, 12345, false, true), true, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(12345), min.Int64())
	})

	t.Run("missing leg is a quote shape error", func(t *testing.T) {
		_, err := ExactInMinimum(model.SwapQuote{}, true, 1)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrQuoteShape)
	})

	t.Run("negative magnitude is a quote shape error", func(t *testing.T) {
		_, err := ExactInMinimum(quoteOf(0, -5, false, true), true, 1)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrQuoteShape)
	})

	t.Run("out-of-range slippage is an input error", func(t *testing.T) {
		for _, s := range []float64{-1, 101, math.NaN()} {
			_, err := ExactInMinimum(quoteOf(1000, 2000, false, true), true, s)
			assert.ErrorIs(t, err, model.ErrInvalidInput, "slippage %v", s)
		}
	})
}

func TestExactOutRequiredInput(t *testing.T) {
	t.Run("absolute value regardless of presented sign", func(t *testing.T) {
		in, err := ExactOutRequiredInput(quoteOf(-750, 0, false, true), true)
		require.NoError(t, err)
		assert.Equal(t, int64(750), in.Int64())

		in, err = ExactOutRequiredInput(quoteOf(750, 0, false, true), true)
		require.NoError(t, err)
		assert.Equal(t, int64(750), in.Int64())
	})

	t.Run("selects leg by input token", func(t *testing.T) {
		in, err := ExactOutRequiredInput(quoteOf(10, 20, true, false), false)
		require.NoError(t, err)
		assert.Equal(t, int64(20), in.Int64())
	})

	t.Run("missing leg fails", func(t *testing.T) {
		_, err := ExactOutRequiredInput(model.SwapQuote{}, true)
		assert.ErrorIs(t, err, model.ErrQuoteShape)
	})
}

func TestExactOutGuard(t *testing.T) {
	desired := big.NewInt(5_000_000)
	guard, err := ExactOutGuard(sqrtAt(0), desired, true, 2.5)
	require.NoError(t, err)

	// The amount bound is the desired output exactly, never reduced.
	assert.Zero(t, guard.AmountBound.Cmp(desired))
	assert.NotSame(t, desired, guard.AmountBound)
	assert.Negative(t, guard.SqrtRatioLimit.Cmp(sqrtAt(0)))
}

func TestExactOutGuardSlippageRange(t *testing.T) {
	for _, s := range []float64{-2, 150, math.NaN()} {
		_, err := ExactOutGuard(sqrtAt(0), big.NewInt(1000), true, s)
		assert.ErrorIs(t, err, model.ErrInvalidInput, "slippage %v", s)
	}
}

func TestExactInGuard(t *testing.T) {
	guard, err := ExactInGuard(sqrtAt(0), quoteOf(1000, 2000, false, true), true, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1980), guard.AmountBound.Int64())
	assert.Positive(t, guard.SqrtRatioLimit.Cmp(ticks.MinSqrtRatio))

	_, err = ExactInGuard(sqrtAt(0), model.SwapQuote{}, true, 1)
	assert.ErrorIs(t, err, model.ErrQuoteShape)
}
