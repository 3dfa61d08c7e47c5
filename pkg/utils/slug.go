package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SlugSeparator joins the words of a slug
const SlugSeparator = '-'

// Slugify converts a free-form identifier into a lowercase, URL-safe slug.
// Accents are folded to their base letters, every run of characters other
// than ASCII letters and digits becomes a single separator, and separators
// are trimmed from both ends. "New Co. 123" becomes "new-co-123".
func Slugify(raw string) string {
	folded, _, err := transform.String(accentFolder(), raw)
	if err != nil {
		folded = raw
	}

	var b strings.Builder
	b.Grow(len(folded))
	pendingSep := false
	for _, r := range strings.ToLower(folded) {
		if isSlugRune(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteRune(SlugSeparator)
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	return b.String()
}

// accentFolder decomposes characters and drops the combining marks,
// leaving e.g. "é" as "e".
func accentFolder() transform.Transformer {
	return transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

func isSlugRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}
