package intent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noura-assistant/server/internal/agent/intent"
	"github.com/noura-assistant/server/internal/agent/model"
)

func TestClassifier_Classify(t *testing.T) {
	c := intent.NewClassifier()

	tests := []struct {
		name string
		text string
		want model.IntentKind
	}{
		{"spanish greeting", "hola", model.IntentGreeting},
		{"french greeting", "bonjour NOURA", model.IntentGreeting},
		{"english greeting", "hey there", model.IntentGreeting},
		{"greeting prefix inside a word is not a greeting", "hidratante facial", model.IntentProduct},

		{"bare country name", "Colombia", model.IntentCountry},
		{"country inside a sentence", "estoy en colombia", model.IntentCountry},
		{"accented country", "México", model.IntentCountry},

		{"expand command", "más", model.IntentExpand},
		{"expand command english", "more", model.IntentExpand},
		{"expand word inside a query is not expand", "more information about nutella", model.IntentProduct},

		{"alternative command", "otra", model.IntentAlternative},
		{"alternative command long form", "alternativas", model.IntentAlternative},

		{"blocked alcohol", "vodka", model.IntentBlocked},
		{"blocked tobacco", "cigarrillos mentolados", model.IntentBlocked},
		{"blocked beats the product permit-list", "analiza este vodka", model.IntentBlocked},
		{"blocked word inside another word does not trip", "alarma para bicicleta", model.IntentProduct},

		{"filter keyword", "solo opciones veganas, vegano", model.IntentFilter},
		{"bare filter request", "filtrar", model.IntentFilter},
		{"medical question", "qué tratamiento me recomiendas", model.IntentMedical},

		{"out of scope weather", "¿cómo está el clima hoy?", model.IntentOutOfScope},
		{"out of scope finance", "debería comprar bitcoin", model.IntentProduct}, // "comprar" is a product indicator
		{"deny keyword with product indicator stays product", "analiza este producto de la película", model.IntentProduct},
		{"deny keyword with category keyword stays category", "shampoo para antes del partido", model.IntentCategory},

		{"category query", "busco una crema hidratante", model.IntentCategory},
		{"plain product name", "nutella", model.IntentProduct},
		{"barcode", "3017620422003", model.IntentProduct},
		{"empty input", "", model.IntentUnknown},
		{"whitespace only", "   ", model.IntentUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.text)
			assert.Equal(t, tt.want, got.Kind)
		})
	}
}

func TestClassifier_PII(t *testing.T) {
	c := intent.NewClassifier()

	piiInputs := []string{
		"mi tarjeta es 4532 1234 5678 9010",
		"4532-1234-5678-9010",
		"4532123456789010",
		"my ssn is 123-45-6789",
	}
	for _, text := range piiInputs {
		got := c.Classify(text)
		assert.Equal(t, model.IntentPII, got.Kind, "input %q", text)
	}

	// a 13-digit barcode must not trip the card pattern
	got := c.Classify("3017620422003")
	assert.Equal(t, model.IntentProduct, got.Kind)
}

func TestClassifier_CountryCode(t *testing.T) {
	c := intent.NewClassifier()

	tests := []struct {
		text string
		code string
	}{
		{"colombia", "CO"},
		{"Estados Unidos", "US"},
		{"vivo en francia", "FR"},
		{"Perú", "PE"},
		{"peru", "PE"},
	}
	for _, tt := range tests {
		got := c.Classify(tt.text)
		assert.Equal(t, model.IntentCountry, got.Kind, "input %q", tt.text)
		assert.Equal(t, tt.code, got.Country, "input %q", tt.text)
	}
}

func TestClassifier_GreetingLanguage(t *testing.T) {
	c := intent.NewClassifier()

	tests := []struct {
		text string
		lang string
	}{
		{"hola", "es"},
		{"buenos días", "es"},
		{"bonjour", "fr"},
		{"hello!", "en"},
	}
	for _, tt := range tests {
		got := c.Classify(tt.text)
		assert.Equal(t, model.IntentGreeting, got.Kind, "input %q", tt.text)
		assert.Equal(t, tt.lang, got.Language, "input %q", tt.text)
	}
}

func TestClassifier_FilterCriteria(t *testing.T) {
	c := intent.NewClassifier()

	withCriteria := c.Classify("vegano y barato")
	assert.Equal(t, model.IntentFilter, withCriteria.Kind)
	assert.Equal(t, "vegano y barato", withCriteria.Criteria)

	bare := c.Classify("filtrar")
	assert.Equal(t, model.IntentFilter, bare.Kind)
	assert.Empty(t, bare.Criteria)
}

func TestClassifier_ProductKeepsOriginalText(t *testing.T) {
	c := intent.NewClassifier()

	got := c.Classify("  Nutella 400g  ")
	assert.Equal(t, model.IntentProduct, got.Kind)
	assert.Equal(t, "Nutella 400g", got.Name)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "mexico", intent.Normalize("  MÉXICO "))
	assert.Equal(t, "peru", intent.Normalize("Perú"))
	assert.Equal(t, "espana", intent.Normalize("España"))
}

func TestDetectLanguage(t *testing.T) {
	assert.Equal(t, "es", intent.DetectLanguage("gracias por la ayuda"))
	assert.Equal(t, "fr", intent.DetectLanguage("merci beaucoup"))
	assert.Equal(t, "en", intent.DetectLanguage("thanks a lot"))
}
