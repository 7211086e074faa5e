package utils

import (
	"strings"
	"unicode"
)

// Slugify converts text to a lowercase, hyphen-separated file-name slug.
// "Senior SWE (Remote)" -> "senior-swe-remote". Slugify(Slugify(s)) == Slugify(s).
func Slugify(text string) string {
	text = FoldDiacritics(strings.ToLower(text))

	var b strings.Builder
	pendingSep := false
	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(r)
		case r == '-' || unicode.IsSpace(r):
			pendingSep = true
		}
		//anything else is dropped without acting as a separator
	}
	return b.String()
}
