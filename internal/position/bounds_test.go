package position

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liquidityDesk/internal/model"
	"liquidityDesk/internal/ticks"
)

func TestNewBounds(t *testing.T) {
	t.Run("valid pair passes through unchanged", func(t *testing.T) {
		bounds, err := NewBounds(-1000, 2000)
		require.NoError(t, err)
		assert.Equal(t, model.Bounds{Lower: -1000, Upper: 2000}, bounds)
	})

	t.Run("rejects lower >= upper", func(t *testing.T) {
		for _, pair := range [][2]int64{{0, 0}, {100, 100}, {200, 100}, {-5, -10}} {
			_, err := NewBounds(pair[0], pair[1])
			require.Error(t, err, "pair %v", pair)
			assert.ErrorIs(t, err, model.ErrInvalidRange)
		}
	})

	t.Run("rejects out-of-ladder ticks", func(t *testing.T) {
		_, err := NewBounds(ticks.MinTick-1, 0)
		assert.ErrorIs(t, err, model.ErrInvalidRange)
		_, err = NewBounds(0, ticks.MaxTick+1)
		assert.ErrorIs(t, err, model.ErrInvalidRange)
	})
}

func TestInvertPriceRange(t *testing.T) {
	lower, upper := InvertPriceRange(100, 200)
	assert.InDelta(t, 0.005, lower, 1e-12)
	assert.InDelta(t, 0.01, upper, 1e-12)
	assert.Less(t, lower, upper)
}
