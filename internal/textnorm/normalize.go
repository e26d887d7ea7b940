// Package textnorm canonicalizes learner submissions and reference
// translations for comparison and cache keying.
//
// Two forms are produced. Normalize gives the strict form used as the
// exact-match cache key: it folds case, whitespace, and terminal
// punctuation but preserves diacritics, since accents are pedagogically
// significant ("mañanas" and "mananas" must not collide). Fold additionally
// strips diacritics and is used only for similarity comparison, where an
// accent slip should still count as a near match.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize returns the strict canonical form: lowercased, outer whitespace
// trimmed, internal whitespace runs collapsed to a single space, and
// terminal punctuation stripped. Pure function, no failure modes.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Join(strings.Fields(s), " ")
	s = strings.TrimRightFunc(s, unicode.IsPunct)
	return strings.TrimSpace(s)
}

// foldChain decomposes to NFD, drops combining marks, and recomposes.
var foldChain = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold returns the loose form: Normalize plus diacritic folding.
// Never used as a cache key.
func Fold(s string) string {
	s = Normalize(s)
	folded, _, err := transform.String(foldChain, s)
	if err != nil {
		// Malformed input passes through in its strict form.
		return s
	}
	return folded
}
