package gallery

import (
	"strings"
	"unicode"
)

// slugReplacements maps characters that transliterate to something
// other than a dash.
var slugReplacements = map[rune]string{
	'ä': "a", 'å': "a", 'ö': "o",
	'Ä': "a", 'Å': "a", 'Ö': "o",
	'é': "e", 'è': "e", 'ü': "u",
}

// Slugify converts a human-readable title into a URL-safe path
// component: lowercase letters and digits, with runs of anything else
// collapsed into single dashes.
func Slugify(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	dash := false
	for _, r := range title {
		if repl, ok := slugReplacements[r]; ok {
			b.WriteString(repl)
			dash = false
			continue
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
