// Package score computes the four-dimension wellbeing rating of a product.
package score

import (
	"fmt"
	"math"
	"strings"

	"github.com/noura-assistant/server/internal/agent/model"
)

// Weights define the fixed contribution of each dimension to the overall score.
type Weights struct {
	Health        float64
	Environmental float64
	Social        float64
	Animal        float64
}

// DefaultWeights is the canonical algorithm weighting.
var DefaultWeights = Weights{
	Health:        0.35,
	Environmental: 0.30,
	Social:        0.20,
	Animal:        0.15,
}

const (
	defaultGrade = 50 // neutral fallback for missing/unknown grades

	recallPenalty   = 20
	organicBonus    = 10
	palmOilPenalty  = 15
	fairTradeBonus  = 10
	veganAdjustment = 20
	socialBase      = 50
	animalBase      = 50
)

var defaultNutritionGrades = map[string]int{
	"a": 90, "b": 80, "c": 60, "d": 40, "e": 20,
}

var defaultEcoGrades = map[string]int{
	"a": 90, "b": 75, "c": 60, "d": 40, "e": 20,
}

// Engine maps raw product-source data to a ScoreVector. The grade tables and
// weights are loaded once and never mutated; inject alternates in tests.
type Engine struct {
	weights         Weights
	nutritionGrades map[string]int
	ecoGrades       map[string]int
}

// NewEngine returns an engine with the canonical tables and weights.
func NewEngine() *Engine {
	return &Engine{
		weights:         DefaultWeights,
		nutritionGrades: defaultNutritionGrades,
		ecoGrades:       defaultEcoGrades,
	}
}

// NewEngineWith returns an engine with custom weights and grade tables.
func NewEngineWith(w Weights, nutrition, eco map[string]int) *Engine {
	return &Engine{weights: w, nutritionGrades: nutrition, ecoGrades: eco}
}

// Score computes the score vector for a product and optional recall data.
// Missing or unknown grades fall back to the neutral default instead of
// erroring; every dimension is clamped after each adjustment.
func (e *Engine) Score(product model.ProductRecord, recall *model.RecallInfo) model.ScoreVector {
	health := e.healthScore(product, recall)
	environmental := e.environmentalScore(product)
	social := e.socialScore(product)
	animal := e.animalScore(product)

	overall := int(math.Round(
		e.weights.Health*float64(health) +
			e.weights.Environmental*float64(environmental) +
			e.weights.Social*float64(social) +
			e.weights.Animal*float64(animal)))

	return model.ScoreVector{
		Health:        health,
		Environmental: environmental,
		Social:        social,
		Animal:        animal,
		Overall:       clamp(overall),
	}
}

func (e *Engine) healthScore(product model.ProductRecord, recall *model.RecallInfo) int {
	s := gradeValue(e.nutritionGrades, product.NutritionGrade)
	if hasRecall(recall) {
		s = clamp(s - recallPenalty)
	}
	return clamp(s)
}

func (e *Engine) environmentalScore(product model.ProductRecord) int {
	s := gradeValue(e.ecoGrades, product.EcoGrade)
	if product.IsOrganic {
		s = clamp(s + organicBonus)
	}
	if !product.IsPalmOilFree {
		s = clamp(s - palmOilPenalty)
	}
	return s
}

func (e *Engine) socialScore(product model.ProductRecord) int {
	s := socialBase
	if product.BrandEthicsScore > s {
		s = clamp(product.BrandEthicsScore)
	}
	if product.IsFairTrade {
		s = clamp(s + fairTradeBonus)
	}
	return s
}

func (e *Engine) animalScore(product model.ProductRecord) int {
	s := animalBase
	if product.IsVegan {
		s = clamp(s + veganAdjustment)
	} else {
		s = clamp(s - veganAdjustment)
	}
	return s
}

// Reasons produces one human-readable justification per dimension for the
// detailed view.
func (e *Engine) Reasons(product model.ProductRecord, recall *model.RecallInfo) model.ScoreReasons {
	r := model.ScoreReasons{
		Health:        "Puntuación base de salud.",
		Environmental: "Puntuación base ambiental.",
		Social:        "Puntuación social sin datos específicos.",
		Animal:        "Puntuación animal sin datos específicos.",
	}

	if g := strings.ToUpper(product.NutritionGrade); g != "" {
		r.Health = fmt.Sprintf("Nutriscore reportado como %s.", g)
	}
	if hasRecall(recall) {
		r.Health += " Penalización por retiro del mercado."
	}

	if g := strings.ToUpper(product.EcoGrade); g != "" {
		r.Environmental = fmt.Sprintf("Eco-score reportado como %s.", g)
	}

	switch {
	case product.IsFairTrade:
		r.Social = "Certificado de comercio justo."
	case product.BrandEthicsScore > 0:
		r.Social = fmt.Sprintf("Marca con puntuación ética de %d.", product.BrandEthicsScore)
	}

	if product.IsVegan {
		r.Animal = "Producto etiquetado como vegano."
	}

	return r
}

func gradeValue(table map[string]int, grade string) int {
	if v, ok := table[strings.ToLower(strings.TrimSpace(grade))]; ok {
		return v
	}
	return defaultGrade
}

func hasRecall(recall *model.RecallInfo) bool {
	return recall != nil && recall.Count > 0
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
