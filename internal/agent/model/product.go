package model

import "time"

// ProductRecord is the normalized result of a successful product lookup.
// It is only constructed when a source reports a positive match; a miss is
// represented by LookupNotFound, never by a zero-valued record.
type ProductRecord struct {
	Name             string   `json:"name"`
	Brand            string   `json:"brand,omitempty"`
	NutritionGrade   string   `json:"nutrition_grade,omitempty"`
	EcoGrade         string   `json:"eco_grade,omitempty"`
	Labels           []string `json:"labels,omitempty"`
	IsOrganic        bool     `json:"is_organic"`
	IsVegan          bool     `json:"is_vegan"`
	IsPalmOilFree    bool     `json:"is_palm_oil_free"`
	IsFairTrade      bool     `json:"is_fair_trade"`
	BrandEthicsScore int      `json:"brand_ethics_score,omitempty"` // 0 means unknown
}

// DisplayName renders the product name with its brand when known.
func (p ProductRecord) DisplayName() string {
	if p.Brand != "" {
		return p.Name + " de " + p.Brand
	}
	return p.Name
}

// RecallInfo summarizes recall/safety data for a product. Absence of a
// RecallInfo means "no known recall", not an error.
type RecallInfo struct {
	Count        int    `json:"count"`
	LatestReason string `json:"latest_reason,omitempty"`
}

// LookupKind tags the outcome of a product lookup.
type LookupKind string

const (
	LookupGreeting   LookupKind = "greeting"
	LookupLocation   LookupKind = "location"
	LookupOutOfScope LookupKind = "out_of_scope"
	LookupNotFound   LookupKind = "not_found"
	LookupFound      LookupKind = "found"
)

// LookupResult is the outcome of ProductLookup.Analyze.
type LookupResult struct {
	Kind    LookupKind
	Query   string
	Country string         // location mention only
	Product *ProductRecord // found only
	Recall  *RecallInfo    // found only, may be nil
}

// Analysis is the cached snapshot of the most recent product analysis,
// used to answer expand/why follow-ups without re-querying.
type Analysis struct {
	Query      string        `json:"query"`
	Product    ProductRecord `json:"product"`
	Recall     *RecallInfo   `json:"recall,omitempty"`
	Scores     ScoreVector   `json:"scores"`
	Reasons    ScoreReasons  `json:"reasons"`
	Sources    []string      `json:"sources,omitempty"`
	AnalyzedAt time.Time     `json:"analyzed_at"`
}
