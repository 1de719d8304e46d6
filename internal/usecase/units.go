package usecase

import (
	"strings"

	"github.com/larder/backend/internal/domain"
)

// GramsPerItem approximates a bare count ("3 apples") as 100 g each
const GramsPerItem = 100.0

// gramsPerUnit converts a unit to grams. Volumes assume water density.
var gramsPerUnit = map[string]float64{
	"g": 1, "gram": 1, "grams": 1, "gr": 1,
	"kg": 1000, "kilogram": 1000, "kilograms": 1000,
	"oz": 28.35, "ounce": 28.35, "ounces": 28.35,
	"lb": 453.59, "lbs": 453.59, "pound": 453.59, "pounds": 453.59,

	"ml": 1, "milliliter": 1, "milliliters": 1, "millilitre": 1,
	"l": 1000, "liter": 1000, "liters": 1000, "litre": 1000, "litres": 1000,
	"cup": 240, "cups": 240,
	"tbsp": 15, "tablespoon": 15, "tablespoons": 15,
	"tsp": 5, "teaspoon": 5, "teaspoons": 5,
}

// ToGrams converts amount of unit to grams. Counts and unknown units use
// GramsPerItem per unit of amount.
func ToGrams(amount float64, unit string) float64 {
	return amount * gramsFactor(unit)
}

// FromGrams converts grams back to unit, inverting ToGrams
func FromGrams(grams float64, unit string) float64 {
	return grams / gramsFactor(unit)
}

// IsKnownUnit reports whether unit has an exact or approximate gram factor
func IsKnownUnit(unit string) bool {
	_, ok := gramsPerUnit[normalizeUnit(unit)]
	return ok
}

// ScaleFactor is ingredientGrams / servingGrams, or 1 if servingGrams is 0
func ScaleFactor(ingredientGrams, servingGrams float64) float64 {
	if servingGrams == 0 {
		return 1
	}
	return ingredientGrams / servingGrams
}

// Scale multiplies every nutrient and the serving size by factor
func Scale(record domain.NutritionRecord, factor float64) domain.NutritionRecord {
	record.Calories *= factor
	record.Protein *= factor
	record.Carbs *= factor
	record.Fat *= factor
	record.Fiber *= factor
	record.Sugar *= factor
	record.Sodium *= factor
	record.ServingSize *= factor
	return record
}

// ScaleToAmount rescales a per-serving record to amount of unit
func ScaleToAmount(record domain.NutritionRecord, amount float64, unit string) domain.NutritionRecord {
	servingGrams := ToGrams(record.ServingSize, record.ServingUnit)
	factor := ScaleFactor(ToGrams(amount, unit), servingGrams)
	return Scale(record, factor)
}

func gramsFactor(unit string) float64 {
	if f, ok := gramsPerUnit[normalizeUnit(unit)]; ok {
		return f
	}
	return GramsPerItem
}

func normalizeUnit(unit string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(unit)), ".")
}
