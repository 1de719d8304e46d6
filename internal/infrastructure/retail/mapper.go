package retail

import (
	"strings"

	"github.com/larder/backend/internal/domain"
)

type nutrientField int

const (
	fieldCalories nutrientField = iota
	fieldProtein
	fieldCarbs
	fieldFat
	fieldFiber
	fieldSugar
	fieldSodium
)

// labelAliases maps normalized label names to record fields
var labelAliases = map[string]nutrientField{
	"calories":           fieldCalories,
	"energy":             fieldCalories,
	"kcal":               fieldCalories,
	"protein":            fieldProtein,
	"carbs":              fieldCarbs,
	"carbohydrate":       fieldCarbs,
	"carbohydrates":      fieldCarbs,
	"total carbohydrate": fieldCarbs,
	"fat":                fieldFat,
	"total fat":          fieldFat,
	"fiber":              fieldFiber,
	"dietary fiber":      fieldFiber,
	"sugar":              fieldSugar,
	"sugars":             fieldSugar,
	"total sugars":       fieldSugar,
	"sodium":             fieldSodium,
}

// ToProviderResult normalizes a catalog product into the common record.
// Every label goes through domain.ParseLeadingNumber.
func ToProviderResult(p domain.PrimaryProduct) domain.ProviderResult {
	record := domain.DefaultNutritionRecord()
	record.Source = domain.SourcePrimary

	for label, raw := range p.NutritionLabels {
		field, ok := labelAliases[strings.ToLower(strings.TrimSpace(label))]
		if !ok {
			continue
		}
		v := domain.ParseLeadingNumber(raw)
		switch field {
		case fieldCalories:
			record.Calories = v
		case fieldProtein:
			record.Protein = v
		case fieldCarbs:
			record.Carbs = v
		case fieldFat:
			record.Fat = v
		case fieldFiber:
			record.Fiber = v
		case fieldSugar:
			record.Sugar = v
		case fieldSodium:
			record.Sodium = v
		}
	}

	return domain.ProviderResult{
		Name:      p.Name,
		Brand:     p.Brand,
		Category:  p.CatalogCategory,
		Nutrition: record.Clamp(),
	}
}
