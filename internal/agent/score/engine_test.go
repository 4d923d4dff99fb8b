package score_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noura-assistant/server/internal/agent/model"
	"github.com/noura-assistant/server/internal/agent/score"
)

func TestEngine_Score(t *testing.T) {
	engine := score.NewEngine()

	tests := []struct {
		name    string
		product model.ProductRecord
		recall  *model.RecallInfo
		want    model.ScoreVector
	}{
		{
			name: "top marks across every dimension",
			product: model.ProductRecord{
				NutritionGrade: "a",
				EcoGrade:       "a",
				IsOrganic:      true,
				IsVegan:        true,
				IsFairTrade:    true,
				IsPalmOilFree:  true,
			},
			want: model.ScoreVector{Health: 90, Environmental: 100, Social: 60, Animal: 70, Overall: 84},
		},
		{
			name: "grade A nutrition with mid eco",
			product: model.ProductRecord{
				NutritionGrade: "a",
				EcoGrade:       "c",
				IsPalmOilFree:  true,
			},
			want: model.ScoreVector{Health: 90, Environmental: 60, Social: 50, Animal: 30, Overall: 64},
		},
		{
			name: "unknown grades fall back to neutral",
			product: model.ProductRecord{
				IsPalmOilFree: true,
			},
			want: model.ScoreVector{Health: 50, Environmental: 50, Social: 50, Animal: 30, Overall: 47},
		},
		{
			name: "recall penalizes health",
			product: model.ProductRecord{
				NutritionGrade: "a",
				EcoGrade:       "a",
				IsPalmOilFree:  true,
			},
			recall: &model.RecallInfo{Count: 1, LatestReason: "undeclared allergen"},
			want:   model.ScoreVector{Health: 70, Environmental: 90, Social: 50, Animal: 30, Overall: 66},
		},
		{
			name: "zero-count recall is ignored",
			product: model.ProductRecord{
				NutritionGrade: "a",
				EcoGrade:       "a",
				IsPalmOilFree:  true,
			},
			recall: &model.RecallInfo{Count: 0},
			want:   model.ScoreVector{Health: 90, Environmental: 90, Social: 50, Animal: 30, Overall: 73},
		},
		{
			name: "palm oil lowers the environmental score",
			product: model.ProductRecord{
				NutritionGrade: "a",
				EcoGrade:       "b",
				IsPalmOilFree:  false,
			},
			want: model.ScoreVector{Health: 90, Environmental: 60, Social: 50, Animal: 30, Overall: 64},
		},
		{
			name: "fair trade raises the social score",
			product: model.ProductRecord{
				NutritionGrade: "a",
				IsFairTrade:    true,
				IsPalmOilFree:  true,
			},
			want: model.ScoreVector{Health: 90, Environmental: 50, Social: 60, Animal: 30, Overall: 63},
		},
		{
			name: "brand ethics raises the social base",
			product: model.ProductRecord{
				BrandEthicsScore: 80,
				IsPalmOilFree:    true,
			},
			want: model.ScoreVector{Health: 50, Environmental: 50, Social: 80, Animal: 30, Overall: 53},
		},
		{
			name: "ethics plus fair trade clamps social at 100",
			product: model.ProductRecord{
				BrandEthicsScore: 95,
				IsFairTrade:      true,
				IsPalmOilFree:    true,
			},
			want: model.ScoreVector{Health: 50, Environmental: 50, Social: 100, Animal: 30, Overall: 57},
		},
		{
			name: "worst grades with vegan organic and palm oil",
			product: model.ProductRecord{
				NutritionGrade: "e",
				EcoGrade:       "e",
				IsOrganic:      true,
				IsVegan:        true,
				IsPalmOilFree:  false,
			},
			want: model.ScoreVector{Health: 20, Environmental: 15, Social: 50, Animal: 70, Overall: 32},
		},
		{
			name: "recall floors health at zero",
			product: model.ProductRecord{
				NutritionGrade: "e",
				EcoGrade:       "b",
				IsPalmOilFree:  true,
			},
			recall: &model.RecallInfo{Count: 3},
			want:   model.ScoreVector{Health: 0, Environmental: 75, Social: 50, Animal: 30, Overall: 37},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Score(tt.product, tt.recall)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEngine_ScoreBounds(t *testing.T) {
	engine := score.NewEngine()

	products := []model.ProductRecord{
		{},
		{NutritionGrade: "e", EcoGrade: "e"},
		{NutritionGrade: "a", EcoGrade: "a", IsOrganic: true, IsVegan: true, IsFairTrade: true, IsPalmOilFree: true, BrandEthicsScore: 100},
		{NutritionGrade: "zz", EcoGrade: "??"},
	}

	for _, p := range products {
		for _, recall := range []*model.RecallInfo{nil, {Count: 5}} {
			got := engine.Score(p, recall)
			for name, v := range map[string]int{
				"health":        got.Health,
				"environmental": got.Environmental,
				"social":        got.Social,
				"animal":        got.Animal,
				"overall":       got.Overall,
			} {
				assert.GreaterOrEqual(t, v, 0, "%s below range for %+v", name, p)
				assert.LessOrEqual(t, v, 100, "%s above range for %+v", name, p)
			}
		}
	}
}

func TestEngine_GradeCaseInsensitive(t *testing.T) {
	engine := score.NewEngine()

	upper := engine.Score(model.ProductRecord{NutritionGrade: "A", EcoGrade: "B", IsPalmOilFree: true}, nil)
	lower := engine.Score(model.ProductRecord{NutritionGrade: "a", EcoGrade: "b", IsPalmOilFree: true}, nil)

	assert.Equal(t, lower, upper)
	assert.Equal(t, 90, upper.Health)
	assert.Equal(t, 75, upper.Environmental)
}

func TestEngine_Reasons(t *testing.T) {
	engine := score.NewEngine()

	product := model.ProductRecord{
		NutritionGrade: "b",
		EcoGrade:       "c",
		IsVegan:        true,
		IsFairTrade:    true,
	}
	recall := &model.RecallInfo{Count: 1}

	r := engine.Reasons(product, recall)

	assert.Contains(t, r.Health, "B")
	assert.Contains(t, r.Health, "retiro")
	assert.Contains(t, r.Environmental, "C")
	assert.Contains(t, r.Social, "comercio justo")
	assert.Contains(t, r.Animal, "vegano")
}

func TestEngine_ReasonsDefaults(t *testing.T) {
	engine := score.NewEngine()

	r := engine.Reasons(model.ProductRecord{}, nil)

	assert.NotEmpty(t, r.Health)
	assert.NotEmpty(t, r.Environmental)
	assert.NotEmpty(t, r.Social)
	assert.NotEmpty(t, r.Animal)
	assert.NotContains(t, r.Health, "retiro")
}
