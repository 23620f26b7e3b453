// Package slug derives filesystem-safe identifiers from human-readable names.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fallback is returned when a name contains no usable characters.
const Fallback = "unnamed"

// foldAccents decomposes characters and strips combining marks, so
// "Héllo Wörld" slugifies to hello_world instead of hllo_wrld.
var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Derive converts an arbitrary string into a slug containing only lowercase
// alphanumerics and underscores. Runs of any other characters collapse to a
// single underscore, with no leading or trailing underscore. Derive is pure
// and idempotent: Derive(Derive(s)) == Derive(s).
func Derive(raw string) string {
	if folded, _, err := transform.String(foldAccents, raw); err == nil {
		raw = folded
	}

	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(raw) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
		default:
			pendingSep = true
		}
	}

	if b.Len() == 0 {
		return Fallback
	}
	return b.String()
}

// Humanize turns a slug or identifier back into a display title.
// Underscores and hyphens become spaces and each word is title-cased.
func Humanize(raw string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r == '_' || r == '-' {
			return ' '
		}
		return r
	}, raw)

	words := strings.Fields(cleaned)
	if len(words) == 0 {
		return "Automation"
	}

	for i, w := range words {
		r := []rune(strings.ToLower(w))
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
