// Package lexicon builds the synonym lookup structures used by every
// extractor and by the ingredient matching of the filter engine.
//
// All synonym patterns are compiled once at construction; the resulting
// Lexicon is immutable and safe for unsynchronized concurrent reads.
package lexicon

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/antojo/antojo/internal/textnorm"
)

// suffixes are the Spanish noun endings tolerated when matching ingredient
// and allergen synonyms ("tomate" matches "tomates", "queso" → "quesitos").
var suffixes = []string{"s", "es", "ito", "itos", "ita", "itas"}

const suffixAlternation = `(?:s|es|ito|itos|ita|itas)?`

// entry is one canonical token with its precompiled synonym patterns.
type entry struct {
	canonical string
	patterns  []*regexp.Regexp
}

// Group is a canonical ingredient or allergen with its normalized synonym
// phrases as token sequences, longest first.
type Group struct {
	Canonical string
	Synonyms  [][]string
}

// Place is a gazetteer entry (neighborhood or cuisine) with its precompiled
// word-boundary pattern.
type Place struct {
	Name    string
	pattern *regexp.Regexp
}

// Lexicon holds every compiled synonym table. Construct with New; read-only
// afterwards.
type Lexicon struct {
	categories  []entry
	diets       []entry
	health      []entry
	mealMoments []entry

	ingredients []Group
	allergens   []Group

	ingCanonical      map[string]string
	allergenCanonical map[string]string
	ingGroups         map[string]map[string]struct{}

	neighborhoods []Place
	cuisines      []Place
}

// New compiles a Lexicon from dictionary configuration.
func New(dict Dictionary) (*Lexicon, error) {
	l := &Lexicon{
		ingCanonical:      make(map[string]string),
		allergenCanonical: make(map[string]string),
		ingGroups:         make(map[string]map[string]struct{}),
	}

	var err error
	if l.categories, err = compileEntries(dict.Categories, `\b%s\b`); err != nil {
		return nil, err
	}
	if l.diets, err = compileEntries(dict.Diets, `\b%s\w*\b`); err != nil {
		return nil, err
	}
	if l.health, err = compileEntries(dict.Health, `\b%s\w*\b`); err != nil {
		return nil, err
	}
	if l.mealMoments, err = compileEntries(dict.MealMoments, `\b%s\b`); err != nil {
		return nil, err
	}

	l.ingredients = buildGroups(dict.Ingredients)
	l.allergens = buildGroups(dict.Allergens)
	buildCanonicalMap(dict.Ingredients, l.ingCanonical)
	buildCanonicalMap(dict.Allergens, l.allergenCanonical)

	for canonical, syns := range dict.Ingredients {
		set := map[string]struct{}{textnorm.Basic(canonical): {}}
		for _, s := range syns {
			set[textnorm.Basic(s)] = struct{}{}
		}
		l.ingGroups[canonical] = set
	}

	if l.neighborhoods, err = compilePlaces(dict.Neighborhoods, `\b%s\b`); err != nil {
		return nil, err
	}
	if l.cuisines, err = compileCuisines(dict.Cuisines); err != nil {
		return nil, err
	}

	return l, nil
}

// MustDefault builds a Lexicon from the embedded dictionary.
func MustDefault() *Lexicon {
	l, err := New(Default())
	if err != nil {
		panic(fmt.Sprintf("embedded dictionary does not compile: %v", err))
	}
	return l
}

// MatchCategories returns the canonical categories whose synonyms occur as
// whole words in strict-normalized text, sorted and deduplicated.
func (l *Lexicon) MatchCategories(text string) []string { return matchDomain(l.categories, text) }

// MatchDiets returns the diet keys mentioned in strict-normalized text.
func (l *Lexicon) MatchDiets(text string) []string { return matchDomain(l.diets, text) }

// MatchHealthTags returns the health tags mentioned in strict-normalized text.
func (l *Lexicon) MatchHealthTags(text string) []string { return matchDomain(l.health, text) }

// MatchMealMoments returns the meal moments mentioned in strict-normalized text.
func (l *Lexicon) MatchMealMoments(text string) []string { return matchDomain(l.mealMoments, text) }

// MatchNeighborhoods returns gazetteer neighborhoods mentioned in the text,
// in gazetteer order.
func (l *Lexicon) MatchNeighborhoods(text string) []string { return matchPlaces(l.neighborhoods, text) }

// MatchCuisines returns gazetteer cuisines mentioned in the text, in
// gazetteer order. "Vegana" and "Vegetariana" only match when preceded by
// "cocina", so the dietary adjective does not masquerade as a cuisine.
func (l *Lexicon) MatchCuisines(text string) []string { return matchPlaces(l.cuisines, text) }

// IngredientGroups returns the ingredient synonym groups for token scanning,
// sorted by canonical token.
func (l *Lexicon) IngredientGroups() []Group { return l.ingredients }

// AllergenGroups returns the allergen synonym groups for token scanning.
func (l *Lexicon) AllergenGroups() []Group { return l.allergens }

// CanonicalIngredient resolves a raw token to its canonical ingredient.
func (l *Lexicon) CanonicalIngredient(raw string) (string, bool) {
	c, ok := l.ingCanonical[textnorm.Basic(raw)]
	return c, ok
}

// CanonicalAllergen resolves a raw token to its canonical allergen key.
func (l *Lexicon) CanonicalAllergen(raw string) (string, bool) {
	c, ok := l.allergenCanonical[textnorm.Basic(raw)]
	return c, ok
}

// ExpandIngredients expands a dish's declared ingredient list into the full
// equivalence set: the normalized raw tokens plus every canonical token whose
// synonym group intersects them. Matching against this set is what makes
// "palta" find a dish declaring "aguacate".
func (l *Lexicon) ExpandIngredients(ingredients []string) map[string]struct{} {
	expanded := make(map[string]struct{}, len(ingredients)*2)
	for _, raw := range ingredients {
		expanded[textnorm.Basic(raw)] = struct{}{}
	}
	for canonical, group := range l.ingGroups {
		for syn := range group {
			if _, ok := expanded[syn]; ok {
				expanded[canonical] = struct{}{}
				break
			}
		}
	}
	return expanded
}

// TokenMatches reports whether tok equals base or base plus a tolerated
// Spanish noun suffix.
func TokenMatches(tok, base string) bool {
	if tok == base {
		return true
	}
	if !strings.HasPrefix(tok, base) {
		return false
	}
	rest := tok[len(base):]
	for _, s := range suffixes {
		if rest == s {
			return true
		}
	}
	return false
}

// MatchSequenceAt reports whether the synonym token sequence matches the text
// tokens starting at i, tolerating a noun suffix on the final token.
func MatchSequenceAt(tokens []string, i int, syn []string) bool {
	if i+len(syn) > len(tokens) {
		return false
	}
	for k := 0; k < len(syn)-1; k++ {
		if tokens[i+k] != syn[k] {
			return false
		}
	}
	return TokenMatches(tokens[i+len(syn)-1], syn[len(syn)-1])
}

// SuffixPattern returns the word-boundary regexp source for a normalized
// synonym phrase with noun-suffix tolerance on its final token.
func SuffixPattern(syn string) string {
	return `\b` + regexp.QuoteMeta(syn) + suffixAlternation + `\b`
}

func compileEntries(domain map[string][]string, format string) ([]entry, error) {
	entries := make([]entry, 0, len(domain))
	for _, canonical := range sortedKeys(domain) {
		e := entry{canonical: canonical}
		for _, syn := range domain[canonical] {
			pat, err := regexp.Compile(fmt.Sprintf(format, regexp.QuoteMeta(textnorm.Strict(syn))))
			if err != nil {
				return nil, fmt.Errorf("compile synonym %q for %q: %w", syn, canonical, err)
			}
			e.patterns = append(e.patterns, pat)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func buildGroups(domain map[string][]string) []Group {
	groups := make([]Group, 0, len(domain))
	for _, canonical := range sortedKeys(domain) {
		g := Group{Canonical: canonical}
		for _, syn := range domain[canonical] {
			g.Synonyms = append(g.Synonyms, strings.Fields(textnorm.Strict(syn)))
		}
		// Longest phrases first so multi-word synonyms win over their prefixes.
		sort.SliceStable(g.Synonyms, func(a, b int) bool {
			return len(g.Synonyms[a]) > len(g.Synonyms[b])
		})
		groups = append(groups, g)
	}
	return groups
}

func buildCanonicalMap(domain map[string][]string, dst map[string]string) {
	for _, canonical := range sortedKeys(domain) {
		norm := textnorm.Basic(canonical)
		if _, ok := dst[norm]; !ok {
			dst[norm] = canonical
		}
		for _, syn := range domain[canonical] {
			s := textnorm.Basic(syn)
			if _, ok := dst[s]; !ok {
				dst[s] = canonical
			}
		}
	}
}

func compilePlaces(names []string, format string) ([]Place, error) {
	places := make([]Place, 0, len(names))
	for _, name := range names {
		pat, err := regexp.Compile(fmt.Sprintf(format, regexp.QuoteMeta(textnorm.Strict(name))))
		if err != nil {
			return nil, fmt.Errorf("compile place %q: %w", name, err)
		}
		places = append(places, Place{Name: name, pattern: pat})
	}
	return places, nil
}

// dietaryCuisines must be introduced by "cocina" to count as a cuisine.
var dietaryCuisines = map[string]bool{"Vegana": true, "Vegetariana": true}

func compileCuisines(names []string) ([]Place, error) {
	places := make([]Place, 0, len(names))
	for _, name := range names {
		format := `\b%s\b`
		if dietaryCuisines[name] {
			format = `\bcocina\s+%s\b`
		}
		pat, err := regexp.Compile(fmt.Sprintf(format, regexp.QuoteMeta(textnorm.Strict(name))))
		if err != nil {
			return nil, fmt.Errorf("compile cuisine %q: %w", name, err)
		}
		places = append(places, Place{Name: name, pattern: pat})
	}
	return places, nil
}

func matchDomain(entries []entry, text string) []string {
	var hits []string
	for _, e := range entries {
		for _, pat := range e.patterns {
			if pat.MatchString(text) {
				hits = append(hits, e.canonical)
				break
			}
		}
	}
	sort.Strings(hits)
	return hits
}

func matchPlaces(places []Place, text string) []string {
	var hits []string
	for _, p := range places {
		if p.pattern.MatchString(text) {
			hits = append(hits, p.Name)
		}
	}
	return hits
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
