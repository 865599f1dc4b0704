// Package slug turns arbitrary titles into URL-safe identifiers.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldDiacritics strips combining marks after canonical decomposition, so
// "é" becomes "e" and "ü" becomes "u". Characters with no decomposition
// pass through and later collapse into a hyphen.
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Make lowercases s, folds diacritics to ASCII and collapses every run of
// other characters into a single hyphen. The result carries no leading or
// trailing hyphen, so Make is idempotent on its own output.
func Make(s string) string {
	if folded, _, err := transform.String(foldDiacritics, s); err == nil {
		s = folded
	}

	var b strings.Builder
	b.Grow(len(s))

	pendingSep := false
	for _, r := range strings.ToLower(s) {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !alnum {
			pendingSep = b.Len() > 0
			continue
		}
		if pendingSep {
			b.WriteByte('-')
			pendingSep = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
