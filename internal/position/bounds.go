package position

import (
	"fmt"

	"liquidityDesk/internal/model"
	"liquidityDesk/internal/ticks"
)

// NewBounds validates a (lower, upper) tick pair. Both ticks must already
// be rounded to the pool's spacing; ordering is the only thing checked
// here. Bounds are direction-agnostic: callers working in a swapped token
// order invert the price range before converting to ticks.
func NewBounds(lower, upper int64) (model.Bounds, error) {
	if lower >= upper {
		return model.Bounds{}, fmt.Errorf("%w: lower %d >= upper %d", model.ErrInvalidRange, lower, upper)
	}
	if lower < ticks.MinTick || upper > ticks.MaxTick {
		return model.Bounds{}, fmt.Errorf("%w: [%d, %d] outside [%d, %d]", model.ErrInvalidRange, lower, upper, ticks.MinTick, ticks.MaxTick)
	}
	return model.Bounds{Lower: lower, Upper: upper}, nil
}

// InvertPriceRange reciprocates a human price range for callers whose
// second-named token is the pool's token0: lower' = 1/upper, upper' = 1/lower.
func InvertPriceRange(lower, upper float64) (float64, float64) {
	return 1 / upper, 1 / lower
}
