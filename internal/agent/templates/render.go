// Package templates renders analysis results and canned replies into the
// fixed WhatsApp report format. Pure string construction: no network, no
// state, no clock.
package templates

import (
	"fmt"
	"strings"

	"github.com/noura-assistant/server/internal/agent/model"
)

// maxKeyFactors bounds the bulleted key-factor list in the summary view.
const maxKeyFactors = 5

// ScoreEmoji maps an overall score to its colored sphere. The 90/75/50
// breakpoints are the single canonical table used everywhere.
func ScoreEmoji(score int) string {
	switch {
	case score >= 90:
		return "🟢"
	case score >= 75:
		return "🟡"
	case score >= 50:
		return "🟠"
	default:
		return "🔴"
	}
}

// Renderer builds reply texts. Stateless; safe for concurrent use.
type Renderer struct{}

// NewRenderer returns a Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Greeting returns the language-appropriate greeting, defaulting to English.
func (r *Renderer) Greeting(lang string) string {
	if g, ok := greetings[lang]; ok {
		return g
	}
	return greetings["en"]
}

func (r *Renderer) ReadyPrompt() string   { return readyPrompt }
func (r *Renderer) AskCountry() string    { return askCountry }
func (r *Renderer) Reprompt() string      { return reprompt }
func (r *Renderer) AnotherPrompt() string { return anotherPrompt }
func (r *Renderer) BusyPrompt() string    { return busyPrompt }
func (r *Renderer) FiltersPrompt() string { return filtersPrompt }

func (r *Renderer) ErrOutOfScope() string    { return errOutOfScope }
func (r *Renderer) ErrBlocked() string       { return errBlocked }
func (r *Renderer) ErrMedical() string       { return errMedical }
func (r *Renderer) ErrPII() string           { return errPII }
func (r *Renderer) ErrNotFound() string      { return errNotFound }
func (r *Renderer) ErrNoAlternative() string { return errNoAlternative }
func (r *Renderer) ErrGeneric() string       { return errGeneric }
func (r *Renderer) ErrRateLimited() string   { return errRateLimit }

// Summary renders the fixed-order product report: header, score line with
// the colored sphere, the four dimension lines, up to five key factors in
// declaration order, and the footer.
func (r *Renderer) Summary(a *model.Analysis) string {
	var b strings.Builder

	b.WriteString(header)
	b.WriteString("\n\n")
	b.WriteString(a.Product.DisplayName())
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s Puntuación global: %d/100\n\n", ScoreEmoji(a.Scores.Overall), a.Scores.Overall)

	b.WriteString("📊 Análisis detallado:\n")
	fmt.Fprintf(&b, "🧪 Salud: %d/100\n", a.Scores.Health)
	fmt.Fprintf(&b, "🌱 Medio ambiente: %d/100\n", a.Scores.Environmental)
	fmt.Fprintf(&b, "👥 Justicia social: %d/100\n", a.Scores.Social)
	fmt.Fprintf(&b, "🐾 Bienestar animal: %d/100\n", a.Scores.Animal)

	if factors := keyFactors(a); len(factors) > 0 {
		b.WriteString("\nFactores clave:\n")
		for _, f := range factors {
			b.WriteString("• " + f + "\n")
		}
	}

	b.WriteString("\n" + summaryCTA + "\n")
	b.WriteString(summaryFooter)
	return b.String()
}

// keyFactors applies the fixed predicate list, in declaration order.
func keyFactors(a *model.Analysis) []string {
	var factors []string
	add := func(f string) {
		if len(factors) < maxKeyFactors {
			factors = append(factors, f)
		}
	}

	if g := a.Product.NutritionGrade; g != "" {
		add("Nutri-Score: " + strings.ToUpper(g))
	}
	if g := a.Product.EcoGrade; g != "" {
		add("Eco-Score: " + strings.ToUpper(g))
	}
	if a.Recall != nil && a.Recall.Count > 0 {
		add("⚠️ Retiros del mercado reportados")
	}
	if a.Product.IsVegan {
		add("✅ Vegano")
	}
	if a.Product.IsOrganic {
		add("✅ Orgánico")
	}
	if a.Product.IsFairTrade {
		add("✅ Comercio justo")
	}
	if !a.Product.IsPalmOilFree {
		add("⚠️ Contiene aceite de palma")
	}
	return factors
}

// Detailed renders the expanded view from the cached analysis: per-dimension
// reasons, labels, numbered sources and the static methodology text.
func (r *Renderer) Detailed(a *model.Analysis) string {
	var b strings.Builder

	b.WriteString("📋 ANÁLISIS DETALLADO:\n")
	fmt.Fprintf(&b, "🧪 Salud: %s\n", a.Reasons.Health)
	fmt.Fprintf(&b, "🌱 Medio ambiente: %s\n", a.Reasons.Environmental)
	fmt.Fprintf(&b, "👥 Justicia social: %s\n", a.Reasons.Social)
	fmt.Fprintf(&b, "🐾 Bienestar animal: %s\n", a.Reasons.Animal)

	if len(a.Product.Labels) > 0 {
		b.WriteString("\nEtiquetas detectadas:\n")
		for _, l := range a.Product.Labels {
			b.WriteString("• " + l + "\n")
		}
	}

	if len(a.Sources) > 0 {
		b.WriteString("\n📚 FUENTES CONSULTADAS:\n")
		for i, s := range a.Sources {
			fmt.Fprintf(&b, "%d. %s\n", i+1, s)
		}
	}

	b.WriteString("\n" + methodology)
	return b.String()
}

// CategoryResults renders the category listing with the analyzed item as the
// lead entry.
func (r *Renderer) CategoryResults(category, country string, a *model.Analysis) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎯 TOP %s EN %s:\n", strings.ToUpper(category), country)
	fmt.Fprintf(&b, "\n1. %s\n", a.Product.DisplayName())
	fmt.Fprintf(&b, "   Score: %d/100 %s\n", a.Scores.Overall, ScoreEmoji(a.Scores.Overall))
	b.WriteString("\n" + summaryCTA + "\n")
	b.WriteString(summaryFooter)
	return b.String()
}
