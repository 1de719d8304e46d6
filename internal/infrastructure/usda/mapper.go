package usda

import (
	"encoding/json"

	"github.com/larder/backend/internal/domain"
)

// FoodData Central nutrient IDs
const (
	NutrientIDEnergy       = 1008 // Calories (kcal)
	NutrientIDProtein      = 1003 // Protein (g)
	NutrientIDCarbohydrate = 1005 // Carbohydrates (g)
	NutrientIDTotalFat     = 1004 // Total Fat (g)
	NutrientIDFiber        = 1079 // Fiber, total dietary (g)
	NutrientIDSugars       = 2000 // Sugars, total (g)
	NutrientIDSodium       = 1093 // Sodium (mg)
)

// searchResponse is the subset of the /foods/search payload we consume
type searchResponse struct {
	Foods     []food `json:"foods"`
	TotalHits int    `json:"totalHits"`
}

type food struct {
	FdcID           json.Number    `json:"fdcId"`
	Description     string         `json:"description"`
	DataType        string         `json:"dataType"`
	BrandName       string         `json:"brandName,omitempty"`
	BrandOwner      string         `json:"brandOwner,omitempty"`
	FoodCategory    string         `json:"foodCategory,omitempty"`
	Nutrients       []foodNutrient `json:"foodNutrients"`
}

type foodNutrient struct {
	NutrientID   int                  `json:"nutrientId"`
	NutrientName string               `json:"nutrientName"`
	UnitName     string               `json:"unitName"`
	Value        domain.NutrientValue `json:"value"`
}

// mapFoods converts API foods to the provider-neutral SecondaryFood shape
func mapFoods(foods []food) []domain.SecondaryFood {
	out := make([]domain.SecondaryFood, 0, len(foods))
	for _, f := range foods {
		brand := f.BrandName
		if brand == "" {
			brand = f.BrandOwner
		}
		byID := make(map[int]float64, len(f.Nutrients))
		for _, n := range f.Nutrients {
			byID[n.NutrientID] = n.Value.Float64()
		}
		out = append(out, domain.SecondaryFood{
			ExternalID:    f.FdcID.String(),
			Description:   f.Description,
			BrandName:     brand,
			FoodCategory:  f.FoodCategory,
			NutrientsByID: byID,
		})
	}
	return out
}

// ToProviderResult normalizes a SecondaryFood into the common record.
// Search results report nutrients per 100 g, so the serving is always 100 g
// even when the food carries a label serving size.
func ToProviderResult(f domain.SecondaryFood) domain.ProviderResult {
	record := domain.NutritionRecord{
		Calories:    f.NutrientsByID[NutrientIDEnergy],
		Protein:     f.NutrientsByID[NutrientIDProtein],
		Carbs:       f.NutrientsByID[NutrientIDCarbohydrate],
		Fat:         f.NutrientsByID[NutrientIDTotalFat],
		Fiber:       f.NutrientsByID[NutrientIDFiber],
		Sugar:       f.NutrientsByID[NutrientIDSugars],
		Sodium:      f.NutrientsByID[NutrientIDSodium],
		ServingSize: domain.DefaultServingSize,
		ServingUnit: domain.DefaultServingUnit,
		Source:      domain.SourceSecondary,
	}

	return domain.ProviderResult{
		Name:      f.Description,
		Brand:     f.BrandName,
		Category:  f.FoodCategory,
		Nutrition: record.Clamp(),
	}
}
