package retail

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/larder/backend/internal/domain"
)

func TestToProviderResult(t *testing.T) {
	tests := []struct {
		name    string
		product domain.PrimaryProduct
		want    domain.NutritionRecord
	}{
		{
			name: "labels with unit suffixes",
			product: domain.PrimaryProduct{
				Name: "Reduced Fat Milk",
				NutritionLabels: map[string]string{
					"Calories":           "130",
					"Protein":            "8g",
					"Total Fat":          "5 g",
					"Total Carbohydrate": "12g",
					"Dietary Fiber":      "0g",
					"Total Sugars":       "12 g",
					"Sodium":             "125mg",
				},
			},
			want: domain.NutritionRecord{
				Calories: 130, Protein: 8, Fat: 5, Carbs: 12, Sugar: 12, Sodium: 125,
				ServingSize: 100, ServingUnit: "g", Source: domain.SourcePrimary,
			},
		},
		{
			name: "unparseable and unknown labels default to zero",
			product: domain.PrimaryProduct{
				NutritionLabels: map[string]string{
					"protein":   "less than 1g",
					"vitamin c": "10mg",
					"fat":       "-2g",
				},
			},
			want: domain.NutritionRecord{
				ServingSize: 100, ServingUnit: "g", Source: domain.SourcePrimary,
			},
		},
		{
			name:    "no labels",
			product: domain.PrimaryProduct{Name: "Bananas"},
			want: domain.NutritionRecord{
				ServingSize: 100, ServingUnit: "g", Source: domain.SourcePrimary,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToProviderResult(tt.product)
			assert.Equal(t, tt.want, got.Nutrition)
		})
	}
}

func TestToProviderResult_CarriesCategoryAndBrand(t *testing.T) {
	got := ToProviderResult(domain.PrimaryProduct{Name: "Sourdough", Brand: "Acme", CatalogCategory: "Bakery"})

	assert.Equal(t, "Sourdough", got.Name)
	assert.Equal(t, "Acme", got.Brand)
	assert.Equal(t, "Bakery", got.Category)
}
