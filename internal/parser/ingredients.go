package parser

import (
	"sort"
	"strings"

	"github.com/antojo/antojo/internal/lexicon"
)

// synonymRef is one flattened synonym token sequence with its canonical.
type synonymRef struct {
	canonical string
	tokens    []string
}

// connectors continue an exclusion list after "sin"/"ni".
var exclusionConnectors = map[string]bool{
	"ni": true, "y": true, "o": true, "u": true, "tampoco": true,
}

// flattenGroups orders every synonym sequence longest-first (canonical, then
// phrase, as tie-breaks) so position matching is deterministic and multi-word
// phrases win over their prefixes.
func flattenGroups(groups []lexicon.Group) []synonymRef {
	var refs []synonymRef
	for _, g := range groups {
		for _, syn := range g.Synonyms {
			if len(syn) == 0 {
				continue
			}
			refs = append(refs, synonymRef{canonical: g.Canonical, tokens: syn})
		}
	}
	sort.Slice(refs, func(a, b int) bool {
		if len(refs[a].tokens) != len(refs[b].tokens) {
			return len(refs[a].tokens) > len(refs[b].tokens)
		}
		if refs[a].canonical != refs[b].canonical {
			return refs[a].canonical < refs[b].canonical
		}
		return strings.Join(refs[a].tokens, " ") < strings.Join(refs[b].tokens, " ")
	})
	return refs
}

// matchAt returns the canonical of the first synonym sequence matching at
// position i, plus the number of tokens consumed. Zero means no match.
func matchAt(refs []synonymRef, tokens []string, i int) (string, int) {
	for _, ref := range refs {
		if lexicon.MatchSequenceAt(tokens, i, ref.tokens) {
			return ref.canonical, len(ref.tokens)
		}
	}
	return "", 0
}

// extractIngredients resolves ingredient inclusion and exclusion plus
// allergen exclusion. Exclusion is list-scoped: every ingredient or allergen
// named in the run following "sin" or "ni" (connectors allowed between
// items) is excluded, and the tokens it occupies are never re-read as a
// positive mention. Salt in a low-sodium phrasing is additionally barred
// from inclusion.
func (b *Builder) extractIngredients(strict string, plan *[]string) (include, exclude, allergens []string) {
	tokens := strings.Fields(strict)
	lowSodium := lowSodiumContext(strict)

	excluded := make(map[string]struct{})
	allergEx := make(map[string]struct{})
	negSpan := make([]bool, len(tokens))

	for i := 0; i < len(tokens); i++ {
		if tokens[i] != "sin" && tokens[i] != "ni" {
			continue
		}
		j := i + 1
		for j < len(tokens) {
			if exclusionConnectors[tokens[j]] {
				j++
				continue
			}
			ing, ingLen := matchAt(b.ingSyns, tokens, j)
			al, alLen := matchAt(b.allergSyns, tokens, j)
			span := max(ingLen, alLen)
			if span == 0 {
				break
			}
			if ingLen > 0 {
				excluded[ing] = struct{}{}
			}
			if alLen > 0 {
				allergEx[al] = struct{}{}
			}
			for k := j; k < j+span; k++ {
				negSpan[k] = true
			}
			j += span
		}
		i = j - 1
	}

	included := make(map[string]struct{})
	for i := 0; i < len(tokens); i++ {
		if negSpan[i] {
			continue
		}
		ing, span := matchAt(b.ingSyns, tokens, i)
		if span == 0 {
			continue
		}
		clean := true
		for k := i; k < i+span; k++ {
			if negSpan[k] {
				clean = false
				break
			}
		}
		if !clean {
			continue
		}
		if ing == "sal" && lowSodium {
			continue
		}
		included[ing] = struct{}{}
	}

	include = logged(setToSorted(included), "Incluir ingredientes", plan)
	exclude = logged(setToSorted(excluded), "Excluir ingredientes", plan)
	allergens = logged(setToSorted(allergEx), "Excluir alergenos", plan)
	return include, exclude, allergens
}

func setToSorted(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
