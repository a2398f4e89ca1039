package normalizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SlugSeparator joins alphanumeric runs in a derived slug.
const SlugSeparator = '_'

// DeriveSlug turns a display name into a URL-safe identifier: diacritics folded,
// lowercased, every run outside [a-z0-9] collapsed into one separator, edges trimmed.
// DeriveSlug(DeriveSlug(x)) == DeriveSlug(x).
func DeriveSlug(name string) string {
	// transformers carry state, so one chain per call
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	b.Grow(len(folded))
	pendingSep := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
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

// SlugFromFilename derives the fallback slug from a data file name.
func SlugFromFilename(filename string) string {
	base := filename
	if idx := strings.LastIndexAny(base, `/\`); idx >= 0 {
		base = base[idx+1:]
	}
	return DeriveSlug(strings.TrimSuffix(base, ".json"))
}
