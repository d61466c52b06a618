package searcher

import (
	"fmt"
	"strings"

	"github.com/antojo/antojo/internal/textnorm"
	"github.com/antojo/antojo/pkg/types"
)

const (
	boostMultiplier   = 1.10
	penaltyMultiplier = 0.85
	restaurantBonus   = 0.4
)

// computeScore calculates the weighted sum of normalized sub-scores, then
// the restaurant-mention bonus and the boost/penalty multipliers. Both
// multipliers may apply to the same dish; being multiplicative their order
// does not matter.
func (e *Engine) computeScore(entry *dishEntry, q *types.Query) (float64, []string) {
	d := entry.dish
	weights := effectiveWeights(q)

	ratingN := normRange(d.Restaurant.Rating, e.idx.RatingMin, e.idx.RatingMax)
	priceN := normRange(float64(d.PriceARS), float64(e.idx.PriceMin), float64(e.idx.PriceMax))
	etaN := normRange(float64(d.Restaurant.ETAMin), float64(e.idx.ETAMin), float64(e.idx.ETAMax))
	popN := float64(d.Popularity) / 100.0
	distN := distanceScore(d, &q.Filters)
	lexN := e.lexScore(entry, q)
	promoN := normRange(float64(d.DiscountPct), float64(e.idx.DiscountMin), float64(e.idx.DiscountMax))
	feeN := normRange(float64(d.DeliveryFee), float64(e.idx.FeeMin), float64(e.idx.FeeMax))

	score := weights["rating"]*ratingN +
		weights["price"]*(1-priceN) +
		weights["eta"]*(1-etaN) +
		weights["pop"]*popN +
		weights["dist"]*distN +
		weights["lex"]*lexN +
		weights["promo"]*promoN +
		weights["fee"]*(1-feeN)

	reasons := []string{
		fmt.Sprintf("rating:%.2f", ratingN),
		fmt.Sprintf("price_inv:%.2f", 1-priceN),
		fmt.Sprintf("eta_inv:%.2f", 1-etaN),
		fmt.Sprintf("pop:%.2f", popN),
		fmt.Sprintf("dist:%.2f", distN),
		fmt.Sprintf("lex:%.2f", lexN),
		fmt.Sprintf("promo:%.2f", promoN),
		fmt.Sprintf("fee_inv:%.2f", 1-feeN),
	}

	if contains(q.Metadata.RestaurantHits, d.Restaurant.Name) {
		score += restaurantBonus
		reasons = append(reasons, "rest_hit")
	}

	if e.tagsIntersect(entry, q.RankingOverrides.BoostTags) {
		score *= boostMultiplier
		reasons = append(reasons, "boost")
	}
	if e.tagsIntersect(entry, q.RankingOverrides.PenalizeTags) {
		score *= penaltyMultiplier
		reasons = append(reasons, "penal")
	}
	return score, reasons
}

// lexScore is the fraction of query word-tokens found among the dish's
// words, with a bonus when the restaurant name is mentioned directly and the
// dish fits any requested category (or no category filter is set).
func (e *Engine) lexScore(entry *dishEntry, q *types.Query) float64 {
	if q.Text == "" {
		return 0
	}
	queryWords := textnorm.Words(q.Text)
	if len(queryWords) == 0 {
		return 0
	}

	hits := 0
	for _, w := range queryWords {
		if _, ok := entry.words[w]; ok {
			hits++
		}
	}
	score := float64(hits) / float64(len(queryWords))

	qn := textnorm.Basic(q.Text)
	if entry.restNorm != "" && strings.Contains(qn, entry.restNorm) {
		if len(q.Filters.CategoryAny) == 0 || anyIn(q.Filters.CategoryAny, entry.dish.Categories) {
			score = min(1, score+restaurantBonus)
		}
	}
	return score
}

// distanceScore is a coarse proxy: 1 when the dish's neighborhood is in the
// requested set, 0.5 when no neighborhood filter exists, 0 otherwise.
func distanceScore(d *types.Dish, f *types.Filters) float64 {
	if len(f.NeighborhoodAny) == 0 {
		return 0.5
	}
	if contains(f.NeighborhoodAny, d.Restaurant.Neighborhood) {
		return 1
	}
	return 0
}

func (e *Engine) tagsIntersect(entry *dishEntry, tags []string) bool {
	for _, t := range tags {
		if _, ok := entry.tags[t]; ok {
			return true
		}
	}
	return false
}

// normRange min-max normalizes into [0,1]; a degenerate range scores 0.
func normRange(v, lo, hi float64) float64 {
	if hi == lo {
		return 0
	}
	n := (v - lo) / (hi - lo)
	return max(0, min(1, n))
}
