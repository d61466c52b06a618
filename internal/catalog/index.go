package catalog

import (
	"sort"

	"github.com/antojo/antojo/pkg/types"
)

// Index holds the numeric statistics precomputed over the full catalog:
// min/max per metric for score normalization and ascending-sorted arrays for
// percentile resolution.
type Index struct {
	PriceMin, PriceMax       int
	ETAMin, ETAMax           int
	RatingMin, RatingMax     float64
	FeeMin, FeeMax           int
	DiscountMin, DiscountMax int

	prices []int
	etas   []int
}

// NewIndex computes catalog statistics. Prices come from the dish, ETAs and
// ratings from the embedded restaurant.
func NewIndex(dishes []types.Dish) (*Index, error) {
	if len(dishes) == 0 {
		return nil, types.ErrEmptyCatalog
	}

	ix := &Index{
		prices: make([]int, 0, len(dishes)),
		etas:   make([]int, 0, len(dishes)),
	}
	for i := range dishes {
		d := &dishes[i]
		ix.prices = append(ix.prices, d.PriceARS)
		ix.etas = append(ix.etas, d.Restaurant.ETAMin)
		if i == 0 {
			ix.PriceMin, ix.PriceMax = d.PriceARS, d.PriceARS
			ix.ETAMin, ix.ETAMax = d.Restaurant.ETAMin, d.Restaurant.ETAMin
			ix.RatingMin, ix.RatingMax = d.Restaurant.Rating, d.Restaurant.Rating
			ix.FeeMin, ix.FeeMax = d.DeliveryFee, d.DeliveryFee
			ix.DiscountMin, ix.DiscountMax = d.DiscountPct, d.DiscountPct
			continue
		}
		ix.PriceMin = min(ix.PriceMin, d.PriceARS)
		ix.PriceMax = max(ix.PriceMax, d.PriceARS)
		ix.ETAMin = min(ix.ETAMin, d.Restaurant.ETAMin)
		ix.ETAMax = max(ix.ETAMax, d.Restaurant.ETAMin)
		ix.RatingMin = min(ix.RatingMin, d.Restaurant.Rating)
		ix.RatingMax = max(ix.RatingMax, d.Restaurant.Rating)
		ix.FeeMin = min(ix.FeeMin, d.DeliveryFee)
		ix.FeeMax = max(ix.FeeMax, d.DeliveryFee)
		ix.DiscountMin = min(ix.DiscountMin, d.DiscountPct)
		ix.DiscountMax = max(ix.DiscountMax, d.DiscountPct)
	}
	sort.Ints(ix.prices)
	sort.Ints(ix.etas)
	return ix, nil
}

// PriceAtPercentile resolves a price ceiling from a fraction in [0,1],
// rounding down to the nearest discrete catalog price. No interpolation:
// the index is clamp(floor(p·N)−1, 0, N−1) over the sorted array. This exact
// arithmetic is part of the reproducibility contract and must not change.
func (ix *Index) PriceAtPercentile(p float64) int {
	return percentileValue(ix.prices, p)
}

// ETAAtPercentile resolves an ETA ceiling from a fraction in [0,1] with the
// same arithmetic as PriceAtPercentile.
func (ix *Index) ETAAtPercentile(p float64) int {
	return percentileValue(ix.etas, p)
}

// ResolvePrice turns a price limit into a literal ceiling. A nil limit, or a
// percentile label that does not parse, reports ok=false meaning "no limit".
func (ix *Index) ResolvePrice(limit *types.PriceLimit) (float64, bool) {
	if limit == nil {
		return 0, false
	}
	if limit.IsPercentile() {
		frac, ok := limit.PercentileFraction()
		if !ok {
			return 0, false
		}
		return float64(ix.PriceAtPercentile(frac)), true
	}
	return limit.Amount, true
}

func percentileValue(sorted []int, p float64) int {
	p = max(0, min(1, p))
	idx := int(p*float64(len(sorted))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx > len(sorted)-1 {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
