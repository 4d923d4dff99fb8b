// Package intent classifies inbound messages with an explicit ordered rule
// list. Rules run top to bottom and the first match wins; no network calls.
package intent

import (
	"regexp"
	"strings"

	"github.com/noura-assistant/server/internal/agent/model"
)

// piiPatterns match payment-card and SSN shaped sequences. Checked before
// anything else so personal data is never interpreted, persisted or echoed.
var piiPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{4}[\s-]?\d{4}[\s-]?\d{4}[\s-]?\d{4}\b`),
	regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),
}

// Classifier turns raw user text into a tagged Intent. It is pure and
// deterministic; all tables are injected at construction.
type Classifier struct {
	countries *CountryTable
}

// NewClassifier builds a classifier with the static country table.
func NewClassifier() *Classifier {
	return &Classifier{countries: NewCountryTable()}
}

// NewClassifierWith builds a classifier with a custom country table.
func NewClassifierWith(countries *CountryTable) *Classifier {
	return &Classifier{countries: countries}
}

// Classify produces exactly one Intent per message.
//
// Rule order: PII, greeting, country, expand, filter, medical, out-of-scope
// (guarded by the product-indicator permit-list), category, then the default
// Product intent.
func (c *Classifier) Classify(text string) model.Intent {
	lower := strings.ToLower(strings.TrimSpace(text))

	for _, p := range piiPatterns {
		if p.MatchString(text) {
			return model.Intent{Kind: model.IntentPII}
		}
	}

	if lang, ok := c.greetingLanguage(lower); ok {
		return model.Intent{Kind: model.IntentGreeting, Language: lang}
	}

	if code, ok := c.countries.Lookup(lower); ok {
		return model.Intent{Kind: model.IntentCountry, Country: code}
	}

	for _, cmd := range expandCommands {
		if lower == cmd {
			return model.Intent{Kind: model.IntentExpand}
		}
	}

	for _, cmd := range alternativeCommands {
		if lower == cmd {
			return model.Intent{Kind: model.IntentAlternative}
		}
	}

	// blocked categories are refused before any permit-list can rescue them
	if c.isBlocked(lower) {
		return model.Intent{Kind: model.IntentBlocked}
	}

	for _, cmd := range filterRequests {
		if lower == cmd {
			// filter requested without criteria; the machine shows the menu
			return model.Intent{Kind: model.IntentFilter}
		}
	}

	for _, kw := range filterKeywords {
		if strings.Contains(lower, kw) {
			return model.Intent{Kind: model.IntentFilter, Criteria: lower}
		}
	}

	for _, kw := range medicalKeywords {
		if strings.Contains(lower, kw) {
			return model.Intent{Kind: model.IntentMedical}
		}
	}

	if c.isOutOfScope(lower) {
		return model.Intent{Kind: model.IntentOutOfScope}
	}

	for _, kw := range categoryKeywords {
		if strings.Contains(lower, kw) {
			return model.Intent{Kind: model.IntentCategory, Name: kw}
		}
	}

	if lower == "" {
		return model.Intent{Kind: model.IntentUnknown}
	}

	return model.Intent{Kind: model.IntentProduct, Name: strings.TrimSpace(text)}
}

// isBlocked reports whether the message names a category the assistant never
// analyzes (tobacco, alcohol, prescription drugs, weapons). Word-boundary
// matching keeps "farmacia" from tripping on "arma".
func (c *Classifier) isBlocked(lower string) bool {
	for _, kw := range blockedKeywords {
		if containsWord(lower, kw) {
			return true
		}
	}
	return false
}

// containsWord reports whether w occurs in s delimited by non-word bytes.
func containsWord(s, w string) bool {
	for i := 0; i+len(w) <= len(s); i++ {
		if s[i:i+len(w)] != w {
			continue
		}
		if i > 0 && isWordByte(s[i-1]) {
			continue
		}
		if j := i + len(w); j < len(s) && isWordByte(s[j]) {
			continue
		}
		return true
	}
	return false
}

// isOutOfScope applies the deny-list with permit-list precedence: a product
// indicator forces fallthrough to lookup even when a deny keyword matches.
func (c *Classifier) isOutOfScope(lower string) bool {
	denied := false
	for _, kw := range outOfScopeKeywords {
		if strings.Contains(lower, kw) {
			denied = true
			break
		}
	}
	if !denied {
		return false
	}
	for _, kw := range productIndicators {
		if strings.Contains(lower, kw) {
			return false
		}
	}
	for _, kw := range categoryKeywords {
		if strings.Contains(lower, kw) {
			return false
		}
	}
	return true
}

func (c *Classifier) greetingLanguage(lower string) (string, bool) {
	for lang, prefixes := range greetingPrefixes {
		for _, prefix := range prefixes {
			if !strings.HasPrefix(lower, prefix) {
				continue
			}
			// require a word boundary so "hi" does not match "hidratante"
			rest := lower[len(prefix):]
			if rest == "" || !isWordByte(rest[0]) {
				return lang, true
			}
		}
	}
	return "", false
}

func isWordByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9') || b >= 0x80
}

// DetectLanguage guesses the user's language from common word hints,
// defaulting to English.
func DetectLanguage(text string) string {
	lower := strings.ToLower(text)
	for _, lang := range []string{"es", "fr"} {
		for _, hint := range languageHints[lang] {
			if strings.Contains(lower, hint) {
				return lang
			}
		}
	}
	return "en"
}
