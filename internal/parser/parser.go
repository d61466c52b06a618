package parser

import (
	"fmt"
	"strings"

	"github.com/antojo/antojo/internal/catalog"
	"github.com/antojo/antojo/internal/lexicon"
	"github.com/antojo/antojo/internal/textnorm"
	"github.com/antojo/antojo/pkg/types"
)

// Builder assembles structured queries from raw text. Construct once with
// New; safe for concurrent use.
type Builder struct {
	lex *lexicon.Lexicon
	idx *catalog.Index

	// restaurant display names paired with their normalized forms, used for
	// substring detection in the raw query text
	restaurants []restaurantName

	// flattened synonym sequences for positional ingredient/allergen matching
	ingSyns    []synonymRef
	allergSyns []synonymRef
}

type restaurantName struct {
	display string
	norm    string
}

// New returns a Builder over the given lexicon, catalog statistics and
// distinct restaurant names.
func New(lex *lexicon.Lexicon, idx *catalog.Index, restaurants []string) *Builder {
	b := &Builder{
		lex:        lex,
		idx:        idx,
		ingSyns:    flattenGroups(lex.IngredientGroups()),
		allergSyns: flattenGroups(lex.AllergenGroups()),
	}
	for _, name := range restaurants {
		norm := textnorm.Basic(name)
		if norm == "" {
			continue
		}
		b.restaurants = append(b.restaurants, restaurantName{display: name, norm: norm})
	}
	return b
}

// Parse extracts a structured query from text. It never fails; text that
// matches nothing produces a default query and an empty plan.
func (b *Builder) Parse(text string) types.ParseResult {
	var plan []string
	q := types.NewQuery(text)

	strict := textnorm.Strict(text)
	soft := textnorm.Soft(text)

	restHits := b.extractRestaurants(textnorm.Basic(text), &plan)
	q.Metadata.RestaurantHits = restHits

	q.Filters.CategoryAny = logged(b.lex.MatchCategories(strict), "Categorias", &plan)
	q.Filters.NeighborhoodAny = logged(b.lex.MatchNeighborhoods(strict), "Barrios", &plan)
	q.Filters.CuisinesAny = logged(b.lex.MatchCuisines(strict), "Cocinas", &plan)

	// A restaurant whose name contains "wok" must not drag in the wok
	// category or cuisine for that word alone.
	if strings.Contains(textnorm.Basic(strings.Join(restHits, " ")), "wok") {
		q.Filters.CategoryAny = dropString(q.Filters.CategoryAny, "wok")
		q.Filters.CuisinesAny = dropStringFold(q.Filters.CuisinesAny, "wok")
	}

	q.Filters.MealMomentsAny = logged(b.lex.MatchMealMoments(strict), "Meal moments", &plan)

	inc, exc, allergEx := b.extractIngredients(strict, &plan)
	q.Filters.IngredientsInclude = inc
	q.Filters.IngredientsExclude = exc
	q.Filters.AllergensExclude = allergEx

	q.Filters.DietMust = b.extractDiets(strict, &plan)

	health, hints, boost, penal := b.extractHealthAndIntents(strict, &plan)
	q.Filters.HealthAny = health
	q.Hints = hints
	q.RankingOverrides.BoostTags = boost
	q.RankingOverrides.PenalizeTags = penal

	q.Filters.PriceMax = extractPrice(strict, &plan)
	q.Filters.ETAMax = extractETA(strict, &plan)
	q.Filters.RatingMin = extractRating(soft, &plan)
	q.Weights = extractWeights(strict)

	summaries, tags := b.applyScenarios(soft, &q, &plan)
	q.AdvisorSummary = strings.Join(summaries, " ")
	q.ScenarioTags = tags

	return types.ParseResult{Query: q, Plan: plan}
}

// extractRestaurants detects catalog restaurant names mentioned verbatim in
// the normalized text. Plain containment rather than word-boundary matching,
// so punctuation inside names does not break detection.
func (b *Builder) extractRestaurants(basic string, plan *[]string) []string {
	var hits []string
	for _, r := range b.restaurants {
		if strings.Contains(basic, r.norm) {
			hits = append(hits, r.display)
		}
	}
	if len(hits) > 0 {
		*plan = append(*plan, fmt.Sprintf("Restaurantes detectados: %v", hits))
	}
	return hits
}

func (b *Builder) extractDiets(strict string, plan *[]string) []string {
	must := b.lex.MatchDiets(strict)
	if strings.Contains(strict, "apto celiaco") || strings.Contains(strict, "sin gluten") {
		must = appendUnique(must, "gluten_free")
	}
	return logged(sortedUnique(must), "Dietas requeridas", plan)
}

// logged appends a plan line for a non-empty extraction and passes the value
// through. Empty results stay silent.
func logged(values []string, label string, plan *[]string) []string {
	if len(values) > 0 {
		*plan = append(*plan, fmt.Sprintf("%s: %v", label, values))
	}
	if values == nil {
		return []string{}
	}
	return values
}

func appendUnique(list []string, values ...string) []string {
	seen := make(map[string]struct{}, len(list))
	for _, v := range list {
		seen[v] = struct{}{}
	}
	for _, v := range values {
		if _, ok := seen[v]; !ok {
			list = append(list, v)
			seen[v] = struct{}{}
		}
	}
	return list
}

func dropString(list []string, value string) []string {
	out := list[:0]
	for _, v := range list {
		if v != value {
			out = append(out, v)
		}
	}
	return out
}

func dropStringFold(list []string, value string) []string {
	out := list[:0]
	for _, v := range list {
		if !strings.EqualFold(v, value) {
			out = append(out, v)
		}
	}
	return out
}
