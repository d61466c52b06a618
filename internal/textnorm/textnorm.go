// Package textnorm provides the three text normalization strengths used by
// the extractors and the search engine.
//
//   - Strict: lowercase, accent-folded, letters/digits/spaces only, whitespace
//     collapsed. Used for dictionary, category, diet and health matching.
//   - Soft: like Strict but keeps periods and commas, so decimal ratings like
//     "4,5" survive. Used for rating-pattern matching.
//   - Basic: lowercase plus accent folding only. Used for substring
//     containment (restaurant names) and ingredient canonicalization.
//
// All three are idempotent and fold the accented Spanish characters
// á, é, í, ó, ú, ñ to unaccented ASCII.
package textnorm

import (
	"regexp"
	"strings"
)

var accentFolder = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ñ", "n",
)

var wordPattern = regexp.MustCompile(`[a-z0-9_]+`)

// Basic lowercases and folds accents, leaving everything else untouched.
func Basic(s string) string {
	return accentFolder.Replace(strings.ToLower(s))
}

// Strict reduces text to lowercase letters, digits and single spaces.
func Strict(s string) string {
	return collapse(keepRunes(Basic(s), false))
}

// Soft is Strict plus periods and commas, preserving decimal numbers.
func Soft(s string) string {
	return collapse(keepRunes(Basic(s), true))
}

// Words returns the lowercase word tokens of s after accent folding.
func Words(s string) []string {
	return wordPattern.FindAllString(Basic(s), -1)
}

// WordSet returns the word tokens of s as a set.
func WordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range Words(s) {
		set[w] = struct{}{}
	}
	return set
}

func keepRunes(s string, punct bool) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			b.WriteByte(' ')
		case punct && (r == '.' || r == ','):
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
