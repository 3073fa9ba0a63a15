package fuzzy

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// padRune marks the start and end of a name so boundary characters still
// take part in grams.
const padRune = '-'

func isNameRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == ','
}

// Normalize folds a name to the canonical form used for indexing: NFKC,
// punctuation removed (commas kept), lower-cased, whitespace collapsed.
func Normalize(value string) string {
	// Transformers carry state, so build a fresh chain per call.
	t := transform.Chain(norm.NFKC, runes.Remove(runes.Predicate(func(r rune) bool {
		return !isNameRune(r)
	})))
	cleaned, _, err := transform.String(t, value)
	if err != nil {
		cleaned = value
	}
	return strings.Join(strings.Fields(strings.ToLower(cleaned)), " ")
}

// Grams splits an already normalized value into overlapping n-grams of size
// runes and counts each one. The value is padded with padRune on both sides,
// and on the right until it is at least size runes long. An empty value has
// no grams.
func Grams(normalized string, size int) map[string]int {
	if normalized == "" || size < 1 {
		return map[string]int{}
	}

	padded := []rune(string(padRune) + normalized + string(padRune))
	for len(padded) < size {
		padded = append(padded, padRune)
	}

	grams := make(map[string]int, len(padded)-size+1)
	for i := 0; i+size <= len(padded); i++ {
		grams[string(padded[i:i+size])]++
	}
	return grams
}
