package intent

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases, trims and strips diacritics so accented and
// unaccented spellings share a single lookup key.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// CountryTable maps normalized country names to ISO 3166-1 alpha-2 codes.
// Loaded once at construction and read-only thereafter.
type CountryTable struct {
	byName map[string]string
}

// NewCountryTable builds the static country lookup. Keys are stored
// normalized, so one entry covers every accent variant.
func NewCountryTable() *CountryTable {
	names := map[string]string{
		"colombia":       "CO",
		"méxico":         "MX",
		"mexico":         "MX",
		"españa":         "ES",
		"spain":          "ES",
		"argentina":      "AR",
		"chile":          "CL",
		"perú":           "PE",
		"brasil":         "BR",
		"brazil":         "BR",
		"francia":        "FR",
		"france":         "FR",
		"usa":            "US",
		"estados unidos": "US",
		"united states":  "US",
	}
	byName := make(map[string]string, len(names))
	for name, code := range names {
		byName[Normalize(name)] = code
	}
	return &CountryTable{byName: byName}
}

// Lookup reports the country code mentioned in the text, matching the whole
// normalized text first and falling back to a substring scan.
func (t *CountryTable) Lookup(text string) (string, bool) {
	normalized := Normalize(text)
	if code, ok := t.byName[normalized]; ok {
		return code, true
	}
	for name, code := range t.byName {
		if strings.Contains(normalized, name) {
			return code, true
		}
	}
	return "", false
}
