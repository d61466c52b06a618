package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antojo/antojo/internal/catalog"
	"github.com/antojo/antojo/internal/lexicon"
)

func testBuilder(t *testing.T) *Builder {
	t.Helper()
	dishes := catalog.Default()
	idx, err := catalog.NewIndex(dishes)
	require.NoError(t, err)
	return New(lexicon.MustDefault(), idx, catalog.RestaurantNames(dishes))
}

func TestParseEmptyText(t *testing.T) {
	b := testBuilder(t)

	res := b.Parse("")
	assert.Empty(t, res.Plan)
	assert.Empty(t, res.Query.Filters.CategoryAny)
	assert.Nil(t, res.Query.Filters.PriceMax)
	assert.Nil(t, res.Query.Filters.ETAMax)
	assert.Nil(t, res.Query.Filters.RatingMin)
	assert.True(t, res.Query.Filters.AvailableOnly)
}

func TestParseIsDeterministic(t *testing.T) {
	b := testBuilder(t)
	text := "cita romántica, sushi sin gluten ni camarones, barato y rápido en Belgrano"

	first := b.Parse(text)
	second := b.Parse(text)
	assert.Equal(t, first.Plan, second.Plan)
	assert.Equal(t, first.Query, second.Query)
}

func TestParseSushiVeganoSinGluten(t *testing.T) {
	b := testBuilder(t)

	res := b.Parse("sushi vegano sin gluten")
	f := res.Query.Filters
	assert.Contains(t, f.CategoryAny, "sushi")
	assert.ElementsMatch(t, []string{"vegan", "gluten_free"}, f.DietMust)
	assert.Contains(t, f.IngredientsExclude, "gluten")
	assert.Contains(t, f.AllergensExclude, "gluten")
	assert.NotContains(t, f.IngredientsInclude, "gluten")
}

func TestParseCategoriesAndPlaces(t *testing.T) {
	b := testBuilder(t)

	res := b.Parse("sushi en Belgrano")
	f := res.Query.Filters
	assert.Equal(t, []string{"sushi"}, f.CategoryAny)
	assert.Equal(t, []string{"Belgrano"}, f.NeighborhoodAny)
	assert.Contains(t, f.CuisinesAny, "Sushi")
	assert.Contains(t, res.Plan, "Categorias: [sushi]")
	assert.Contains(t, res.Plan, "Barrios: [Belgrano]")
}

func TestParsePriceQualitative(t *testing.T) {
	b := testBuilder(t)

	tests := []struct {
		text  string
		label string
	}{
		{"algo barato", "p35"},
		{"algo ultra barato", "p15"},
		{"muy barato por favor", "p20"},
		{"un plato baratisimo", "p20"},
		{"algo economico", "p40"},
		{"quiero algo caro", "p80"},
		{"sushi premium", "p85"},
	}
	for _, tt := range tests {
		res := b.Parse(tt.text)
		require.NotNil(t, res.Query.Filters.PriceMax, tt.text)
		assert.Equal(t, tt.label, res.Query.Filters.PriceMax.Label, tt.text)
	}
}

func TestParsePriceNumeric(t *testing.T) {
	b := testBuilder(t)

	res := b.Parse("pizza hasta 5000 pesos")
	require.NotNil(t, res.Query.Filters.PriceMax)
	assert.Equal(t, 5000.0, res.Query.Filters.PriceMax.Amount)
	assert.Contains(t, res.Plan, "Limite de precio detectado 5000")

	// Fewer than three digits never reads as a price.
	res = b.Parse("menos de 99")
	assert.Nil(t, res.Query.Filters.PriceMax)
}

func TestParseETA(t *testing.T) {
	b := testBuilder(t)

	res := b.Parse("algo rapido")
	require.NotNil(t, res.Query.Filters.ETAMax)
	assert.Equal(t, 25, *res.Query.Filters.ETAMax)
	assert.Contains(t, res.Plan, "Velocidad: eta_max=25")
}

func TestParseRating(t *testing.T) {
	b := testBuilder(t)

	res := b.Parse("pasta con buen rating")
	require.NotNil(t, res.Query.Filters.RatingMin)
	assert.Equal(t, 4.3, *res.Query.Filters.RatingMin)
	assert.Equal(t, 0.35, res.Query.Weights["rating"])

	res = b.Parse("rating mayor a 4,5")
	require.NotNil(t, res.Query.Filters.RatingMin)
	assert.Equal(t, 4.5, *res.Query.Filters.RatingMin)

	res = b.Parse("4.2 o mas de puntaje")
	require.NotNil(t, res.Query.Filters.RatingMin)
	assert.Equal(t, 4.2, *res.Query.Filters.RatingMin)
}

func TestParseDietsShortcut(t *testing.T) {
	b := testBuilder(t)

	res := b.Parse("algo apto celiacos")
	assert.Contains(t, res.Query.Filters.DietMust, "gluten_free")

	res = b.Parse("milanesa vegetariana")
	assert.Contains(t, res.Query.Filters.DietMust, "veg")
}

func TestParseHealthNudges(t *testing.T) {
	b := testBuilder(t)

	res := b.Parse("algo saludable")
	assert.ElementsMatch(t, []string{"no_fry", "low_sodium"}, res.Query.Filters.HealthAny)

	res = b.Parse("que no me caiga pesado")
	f := res.Query.Filters
	assert.Subset(t, f.HealthAny, []string{"no_fry", "grilled", "baked", "low_sodium"})
	assert.Contains(t, res.Query.RankingOverrides.BoostTags, "soup")
	assert.Contains(t, res.Query.RankingOverrides.PenalizeTags, "fried")
	assert.Contains(t, res.Query.Hints, "light_digest")

	res = b.Parse("porcion grande para compartir")
	assert.Contains(t, res.Query.RankingOverrides.BoostTags, "portion_large")
	assert.Contains(t, res.Query.RankingOverrides.BoostTags, "combos")
	assert.Contains(t, res.Query.Hints, "portion_large")
}

func TestParseCategoryNudges(t *testing.T) {
	b := testBuilder(t)

	res := b.Parse("quiero carne")
	assert.Contains(t, res.Query.RankingOverrides.BoostTags, "parrilla")

	res = b.Parse("pescado fresco")
	assert.Contains(t, res.Query.RankingOverrides.BoostTags, "sushi")
}

func TestParseRestaurantHit(t *testing.T) {
	b := testBuilder(t)

	res := b.Parse("quiero pedir en Sushi Nakama")
	assert.Equal(t, []string{"Sushi Nakama"}, res.Query.Metadata.RestaurantHits)
	assert.Contains(t, res.Plan, "Restaurantes detectados: [Sushi Nakama]")
}

func TestParseWokRestaurantDemotesCategory(t *testing.T) {
	b := testBuilder(t)

	res := b.Parse("pedir en Don Satoshi Wok")
	assert.Equal(t, []string{"Don Satoshi Wok"}, res.Query.Metadata.RestaurantHits)
	assert.NotContains(t, res.Query.Filters.CategoryAny, "wok")
	assert.NotContains(t, res.Query.Filters.CuisinesAny, "Wok")

	// Without the restaurant mention the category fires normally.
	res = b.Parse("un wok de verduras")
	assert.Contains(t, res.Query.Filters.CategoryAny, "wok")
}

func TestParseSaltGuard(t *testing.T) {
	b := testBuilder(t)

	res := b.Parse("milanesa con poca sal")
	assert.NotContains(t, res.Query.Filters.IngredientsInclude, "sal")
	assert.Subset(t, res.Query.Filters.HealthAny, []string{"low_sodium", "no_fry"})

	// An ordinary mention still includes it.
	res = b.Parse("papas con sal")
	assert.Contains(t, res.Query.Filters.IngredientsInclude, "sal")
}

func TestParseNoKeywordNoPlanLine(t *testing.T) {
	b := testBuilder(t)

	res := b.Parse("qwerty asdf zxcv")
	assert.Empty(t, res.Plan)
	assert.Empty(t, res.Query.Filters.CategoryAny)
	assert.Empty(t, res.Query.Filters.IngredientsInclude)
	assert.Empty(t, res.Query.ScenarioTags)
	assert.Empty(t, res.Query.AdvisorSummary)
}
