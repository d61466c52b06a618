package parser

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/antojo/antojo/pkg/types"
)

// priceWords maps qualitative price phrases to percentile labels. Order
// matters: the first phrase found wins, so "ultra barato" must be tested
// before "barato".
var priceWords = []struct {
	phrase string
	label  string
}{
	{"ultra barato", "p15"},
	{"muy barato", "p20"},
	{"baratisimo", "p20"},
	{"barato", "p35"},
	{"economico", "p40"},
	{"caro", "p80"},
	{"premium", "p85"},
}

var priceNumberPattern = regexp.MustCompile(`(hasta|<=|menos de|<)\s*(\d{3,6})`)

func extractPrice(strict string, plan *[]string) *types.PriceLimit {
	for _, pw := range priceWords {
		if strings.Contains(strict, pw.phrase) {
			*plan = append(*plan, fmt.Sprintf("Detectado precio %s -> %s", pw.phrase, pw.label))
			return types.PricePercentile(pw.label)
		}
	}
	if m := priceNumberPattern.FindStringSubmatch(strict); m != nil {
		val, err := strconv.Atoi(m[2])
		if err == nil {
			*plan = append(*plan, fmt.Sprintf("Limite de precio detectado %d", val))
			return types.PriceAmount(float64(val))
		}
	}
	return nil
}

const fastETACeiling = 25

func extractETA(strict string, plan *[]string) *int {
	if strings.Contains(strict, "rapido") || strings.Contains(strict, "entrega rapida") || strings.Contains(strict, "express") {
		*plan = append(*plan, fmt.Sprintf("Velocidad: eta_max=%d", fastETACeiling))
		eta := fastETACeiling
		return &eta
	}
	return nil
}

const goodRatingFloor = 4.3

var ratingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:rating|puntaje|puntuacion)\s*(?:mayor(?:\s*a)?|>=?)\s*([0-5](?:[.,]\d+)?)`),
	regexp.MustCompile(`(?:rating|puntaje|puntuacion)\s*([0-5](?:[.,]\d+)?)`),
	regexp.MustCompile(`\b([0-5](?:[.,]\d+)?)\b\s*(?:o\s*mas|para\s*arriba)\s*(?:de\s*(?:rating|puntaje|puntuacion))?`),
}

// extractRating works on soft-normalized text so comma decimals like "4,5"
// survive normalization.
func extractRating(soft string, plan *[]string) *float64 {
	if strings.Contains(soft, "buen rating") || strings.Contains(soft, "bien puntuado") || strings.Contains(soft, "mejor valorado") {
		*plan = append(*plan, fmt.Sprintf("Calidad: rating_min=%g", goodRatingFloor))
		v := goodRatingFloor
		return &v
	}
	for _, pat := range ratingPatterns {
		m := pat.FindStringSubmatch(soft)
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
		if err != nil {
			continue
		}
		v = max(0, min(5, v))
		*plan = append(*plan, fmt.Sprintf("Calidad: rating_min=%g", v))
		return &v
	}
	return nil
}

// extractWeights bumps named ranking weights for qualitative phrases. These
// are query-level weights, overridden later by any ranking_overrides.
func extractWeights(strict string) map[string]float64 {
	weights := map[string]float64{}
	if strings.Contains(strict, "buen rating") {
		weights["rating"] = 0.35
	}
	if strings.Contains(strict, "ultra barato") {
		weights["price"] = 0.45
	}
	return weights
}

var (
	lowSodiumPattern = regexp.MustCompile(`\b(?:poca|baja)\s+sal\b`)
	noSaltPattern    = regexp.MustCompile(`\bsin\s+sal\b`)
	meatPattern      = regexp.MustCompile(`\bcarne\b`)
	fishPattern      = regexp.MustCompile(`\bpescado\b`)
)

func lowSodiumContext(strict string) bool {
	return lowSodiumPattern.MatchString(strict) || noSaltPattern.MatchString(strict)
}

// extractHealthAndIntents resolves health tags plus the soft intent nudges:
// hints, boost tags and penalize tags derived from common phrasings.
func (b *Builder) extractHealthAndIntents(strict string, plan *[]string) (health, hints, boost, penal []string) {
	health = b.lex.MatchHealthTags(strict)

	if strings.Contains(strict, "saludable") || lowSodiumContext(strict) {
		health = appendUnique(health, "no_fry", "low_sodium")
	}
	if strings.Contains(strict, "no me caiga pesado") || strings.Contains(strict, "mal de la panza") || strings.Contains(strict, "liviano") {
		health = appendUnique(health, "no_fry", "grilled", "baked", "low_sodium")
		boost = appendUnique(boost, "soup", "no_fry", "grilled", "baked", "rice")
		penal = appendUnique(penal, "fried", "spicy", "creamy", "very_greasy")
		hints = appendUnique(hints, "light_digest")
	}
	if strings.Contains(strict, "porcion grande") || strings.Contains(strict, "para compartir") ||
		strings.Contains(strict, "tengo hambre") || strings.Contains(strict, "abundante") {
		boost = appendUnique(boost, "portion_large", "combos")
		hints = appendUnique(hints, "portion_large")
	}
	if meatPattern.MatchString(strict) {
		boost = appendUnique(boost, "parrilla")
	}
	if fishPattern.MatchString(strict) {
		boost = appendUnique(boost, "sushi")
	}

	health = logged(sortedUnique(health), "Salud", plan)
	boost = logged(sortedUnique(boost), "Boost", plan)
	penal = logged(sortedUnique(penal), "Penalizar", plan)
	hints = logged(sortedUnique(hints), "Hints", plan)
	return health, hints, boost, penal
}

func sortedUnique(values []string) []string {
	if len(values) == 0 {
		return values
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
