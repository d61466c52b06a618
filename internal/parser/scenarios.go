package parser

import (
	"fmt"
	"regexp"

	"github.com/antojo/antojo/pkg/types"
)

// scenario recognizes a higher-level conversational intent and tightens the
// already-built query. Tightening is monotonic: minimum bounds only rise,
// maximum bounds only fall, weights only climb to at least their floor.
type scenario struct {
	tag      string
	label    string
	details  string
	summary  string
	patterns []*regexp.Regexp
	apply    func(b *Builder, q *types.Query)
}

const (
	romanticRatingFloor = 4.4
	budgetPriceCap      = 4500
	quickLunchETA       = 20
)

var scenarios = []scenario{
	{
		tag:     "romantic_date",
		label:   "cita romántica",
		details: "priorizar lugares íntimos y con alto rating",
		summary: "Prioricé opciones con ambiente romántico, buen rating y etiquetas especiales de cita.",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`cita\s+romant`),
			regexp.MustCompile(`salida\s+romant`),
			regexp.MustCompile(`plan\s+romant`),
			regexp.MustCompile(`con\s+mi\s+pareja`),
			regexp.MustCompile(`cena\s+romant`),
		},
		apply: func(b *Builder, q *types.Query) {
			prev := q.Filters.RatingMin
			q.Filters.RatingMin = tightenMin(prev, romanticRatingFloor)
			if q.Filters.RatingMin != prev {
				markAuto(&q.Metadata, "rating_min")
			}
			q.Filters.AvailableOnly = true
			q.Hints = appendUnique(q.Hints, "date", "special_evening")
			q.RankingOverrides.BoostTags = appendUnique(q.RankingOverrides.BoostTags,
				"romantic", "date-night", "vino", "intimo")
			weightFloor(q.RankingOverrides.Weights, "rating", 0.45)
			weightFloor(q.RankingOverrides.Weights, "lex", 0.15)
		},
	},
	{
		tag:     "budget_friendly",
		label:   "presupuesto ajustado",
		details: "fijar tope de precio y dar peso extra a opciones económicas",
		summary: "Ajusté la búsqueda a opciones accesibles y destaqué platos marcados como económicos.",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`no\s+tengo\s+mucha\s+plata`),
			regexp.MustCompile(`poco\s+presupuesto`),
			regexp.MustCompile(`barato\s+pero\s+rico`),
			regexp.MustCompile(`estoy\s+corto\s+de\s+plata`),
		},
		apply: func(b *Builder, q *types.Query) {
			target := float64(min(b.idx.PriceAtPercentile(0.28), budgetPriceCap))
			current, ok := b.idx.ResolvePrice(q.Filters.PriceMax)
			if !ok || target < current {
				markAuto(&q.Metadata, "price_max")
			}
			if ok {
				target = min(current, target)
			}
			q.Filters.PriceMax = types.PriceAmount(target)
			q.RankingOverrides.BoostTags = appendUnique(q.RankingOverrides.BoostTags,
				"budget_friendly", "ahorro", "combo")
			weightFloor(q.RankingOverrides.Weights, "price", 0.45)
			weightFloor(q.RankingOverrides.Weights, "pop", 0.12)
		},
	},
	{
		tag:     "quick_lunch",
		label:   "almuerzo rápido",
		details: "limitar tiempos de entrega y priorizar formatos express",
		summary: "Configuré filtros para almuerzos rápidos con entregas cortas y platos listos al paso.",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`algo\s+rapido\s+para\s+almorzar`),
			regexp.MustCompile(`almuerzo\s+rapido`),
			regexp.MustCompile(`comer\s+rapido\s+al\s+mediodia`),
			regexp.MustCompile(`necesito\s+algo\s+express`),
		},
		apply: func(b *Builder, q *types.Query) {
			target := b.idx.ETAAtPercentile(0.35)
			if target == 0 {
				target = quickLunchETA
			}
			prevETA := q.Filters.ETAMax
			q.Filters.ETAMax = tightenMax(prevETA, target)
			if q.Filters.ETAMax != prevETA {
				markAuto(&q.Metadata, "eta_max")
			}
			q.Filters.MealMomentsAny = sortedUnique(append(q.Filters.MealMomentsAny, "almuerzo"))
			q.RankingOverrides.BoostTags = appendUnique(q.RankingOverrides.BoostTags,
				"quick_lunch", "sandwich", "wrap", "express")
			weightFloor(q.RankingOverrides.Weights, "eta", 0.22)
			weightFloor(q.RankingOverrides.Weights, "dist", 0.12)
		},
	},
}

// applyScenarios runs last, after every independent extractor. It returns
// the advisor summary sentences and the triggered scenario tags in trigger
// order.
func (b *Builder) applyScenarios(soft string, q *types.Query, plan *[]string) (summaries, tags []string) {
	summaries = []string{}
	tags = []string{}
	for i := range scenarios {
		sc := &scenarios[i]
		if !matchesAny(sc.patterns, soft) {
			continue
		}
		sc.apply(b, q)
		*plan = append(*plan, fmt.Sprintf("Escenario conversacional: %s -> %s", sc.label, sc.details))
		summaries = append(summaries, sc.summary)
		tags = append(tags, sc.tag)
	}
	return summaries, tags
}

func matchesAny(patterns []*regexp.Regexp, text string) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// tightenMin raises a minimum bound, never lowering one already set.
func tightenMin(current *float64, v float64) *float64 {
	if current == nil || *current < v {
		return &v
	}
	return current
}

// tightenMax lowers a maximum bound, never raising one already set.
func tightenMax(current *int, v int) *int {
	if current == nil || *current > v {
		return &v
	}
	return current
}

// weightFloor raises a named weight to at least floor.
func weightFloor(weights map[string]float64, key string, floor float64) {
	if w, ok := weights[key]; !ok || w < floor {
		weights[key] = floor
	}
}

// markAuto records that a scenario added a numeric constraint, making it
// eligible for automatic relaxation when a search comes back empty.
func markAuto(m *types.Metadata, field string) {
	for _, f := range m.AutoConstraints {
		if f == field {
			return
		}
	}
	m.AutoConstraints = append(m.AutoConstraints, field)
}
