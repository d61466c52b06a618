package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRomanticScenario(t *testing.T) {
	b := testBuilder(t)

	res := b.Parse("tengo una cita romántica en Palermo")
	q := res.Query
	assert.Equal(t, []string{"romantic_date"}, q.ScenarioTags)
	assert.NotEmpty(t, q.AdvisorSummary)
	require.NotNil(t, q.Filters.RatingMin)
	assert.Equal(t, 4.4, *q.Filters.RatingMin)
	assert.True(t, q.Filters.AvailableOnly)
	assert.Subset(t, q.RankingOverrides.BoostTags, []string{"romantic", "date-night", "vino", "intimo"})
	assert.Subset(t, q.Hints, []string{"date", "special_evening"})
	assert.Equal(t, 0.45, q.RankingOverrides.Weights["rating"])
	assert.Equal(t, 0.15, q.RankingOverrides.Weights["lex"])
	assert.Contains(t, q.Metadata.AutoConstraints, "rating_min")
	assert.Contains(t, res.Plan, "Escenario conversacional: cita romántica -> priorizar lugares íntimos y con alto rating")
}

func TestRomanticScenarioNeverLowersStricterRating(t *testing.T) {
	b := testBuilder(t)

	res := b.Parse("cena romantica con rating mayor a 4,8")
	require.NotNil(t, res.Query.Filters.RatingMin)
	assert.Equal(t, 4.8, *res.Query.Filters.RatingMin)
	// The explicit bound was not scenario-added, so it is not auto-relaxable.
	assert.NotContains(t, res.Query.Metadata.AutoConstraints, "rating_min")
}

func TestBudgetScenario(t *testing.T) {
	b := testBuilder(t)

	res := b.Parse("quiero comer pero no tengo mucha plata")
	q := res.Query
	assert.Equal(t, []string{"budget_friendly"}, q.ScenarioTags)
	require.NotNil(t, q.Filters.PriceMax)
	assert.False(t, q.Filters.PriceMax.IsPercentile())
	assert.LessOrEqual(t, q.Filters.PriceMax.Amount, 4500.0)
	assert.Subset(t, q.RankingOverrides.BoostTags, []string{"budget_friendly", "ahorro", "combo"})
	assert.Equal(t, 0.45, q.RankingOverrides.Weights["price"])
	assert.Equal(t, 0.12, q.RankingOverrides.Weights["pop"])
	assert.Contains(t, q.Metadata.AutoConstraints, "price_max")
}

func TestBudgetScenarioTightensExistingLimit(t *testing.T) {
	b := testBuilder(t)

	// An explicit lower cap survives the scenario.
	res := b.Parse("hasta 3000 y poco presupuesto")
	require.NotNil(t, res.Query.Filters.PriceMax)
	assert.Equal(t, 3000.0, res.Query.Filters.PriceMax.Amount)
}

func TestQuickLunchScenario(t *testing.T) {
	b := testBuilder(t)

	res := b.Parse("algo rapido para almorzar")
	q := res.Query
	assert.Equal(t, []string{"quick_lunch"}, q.ScenarioTags)
	require.NotNil(t, q.Filters.ETAMax)
	assert.LessOrEqual(t, *q.Filters.ETAMax, 25)
	assert.Contains(t, q.Filters.MealMomentsAny, "almuerzo")
	assert.Subset(t, q.RankingOverrides.BoostTags, []string{"quick_lunch", "sandwich", "wrap", "express"})
	assert.Equal(t, 0.22, q.RankingOverrides.Weights["eta"])
	assert.Equal(t, 0.12, q.RankingOverrides.Weights["dist"])
}

func TestScenariosCompose(t *testing.T) {
	b := testBuilder(t)

	res := b.Parse("cita romantica pero estoy corto de plata")
	q := res.Query
	assert.Equal(t, []string{"romantic_date", "budget_friendly"}, q.ScenarioTags)
	require.NotNil(t, q.Filters.RatingMin)
	require.NotNil(t, q.Filters.PriceMax)
	// Both weight floors hold at once.
	assert.Equal(t, 0.45, q.RankingOverrides.Weights["rating"])
	assert.Equal(t, 0.45, q.RankingOverrides.Weights["price"])
	// Two summary sentences joined.
	assert.Contains(t, q.AdvisorSummary, "romántico")
	assert.Contains(t, q.AdvisorSummary, "accesibles")
}

func TestTightenHelpers(t *testing.T) {
	four := 4.0
	got := tightenMin(&four, 4.4)
	assert.Equal(t, 4.4, *got)

	fiveOh := 5.0
	got = tightenMin(&fiveOh, 4.4)
	assert.Equal(t, 5.0, *got)

	thirty := 30
	gotETA := tightenMax(&thirty, 25)
	assert.Equal(t, 25, *gotETA)
	twenty := 20
	gotETA = tightenMax(&twenty, 25)
	assert.Equal(t, 20, *gotETA)

	w := map[string]float64{"rating": 0.5}
	weightFloor(w, "rating", 0.45)
	assert.Equal(t, 0.5, w["rating"])
	weightFloor(w, "lex", 0.15)
	assert.Equal(t, 0.15, w["lex"])
}
