package slug

import (
	"strings"
	"unicode"
)

// foldMap covers the accented Latin letters most common in company and job
// titles. Anything else outside [a-z0-9] becomes a separator.
var foldMap = map[rune]string{
	'à': "a", 'á': "a", 'â': "a", 'ã': "a", 'ä': "a", 'å': "a",
	'ç': "c",
	'è': "e", 'é': "e", 'ê': "e", 'ë': "e",
	'ì': "i", 'í': "i", 'î': "i", 'ï': "i",
	'ñ': "n",
	'ò': "o", 'ó': "o", 'ô': "o", 'õ': "o", 'ö': "o", 'ø': "o",
	'ù': "u", 'ú': "u", 'û': "u", 'ü': "u",
	'ý': "y", 'ÿ': "y",
	'ß': "ss", 'æ': "ae", 'œ': "oe",
}

const maxLength = 80

// Make turns arbitrary text into a lowercase dash-separated slug.
// Example: "Senior Go Engineer @ Açme" -> "senior-go-engineer-acme"
func Make(text string) string {
	var b strings.Builder
	pendingDash := false

	for _, r := range strings.ToLower(text) {
		var chunk string
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			chunk = string(r)
		default:
			chunk = foldMap[r]
		}

		if chunk == "" {
			pendingDash = b.Len() > 0
			continue
		}
		if pendingDash {
			b.WriteByte('-')
			pendingDash = false
		}
		b.WriteString(chunk)
	}

	out := b.String()
	if len(out) > maxLength {
		out = strings.TrimRight(out[:maxLength], "-")
	}
	return out
}

// ForListing builds a listing slug from title and company with a short
// unique suffix, e.g. "backend-intern-acme-3f9a1c".
func ForListing(title, company, suffix string) string {
	base := Make(title + " " + company)
	if base == "" {
		base = "listing"
	}
	suffix = Make(suffix)
	if suffix == "" {
		return base
	}
	if len(suffix) > 6 {
		suffix = suffix[:6]
	}
	return base + "-" + suffix
}
