package domain

import "time"

// SourceTag records which providers contributed to a NutritionRecord
type SourceTag string

const (
	SourceNone      SourceTag = "none"
	SourcePrimary   SourceTag = "primary"
	SourceSecondary SourceTag = "secondary"
	SourceBoth      SourceTag = "primary+secondary"
	SourceFallback  SourceTag = "fallback"
	SourceError     SourceTag = "error"
)

// Resolved reports whether at least one provider supplied data
func (s SourceTag) Resolved() bool {
	return s == SourcePrimary || s == SourceSecondary || s == SourceBoth
}

// Default serving used when no provider states one
const (
	DefaultServingSize = 100.0
	DefaultServingUnit = "g"
)

// NutritionRecord is the canonical, provider-independent nutrition profile.
// Nutrient values are per ServingSize ServingUnit.
type NutritionRecord struct {
	Calories    float64   `json:"calories" msgpack:"calories"`
	Protein     float64   `json:"protein" msgpack:"protein"` // grams
	Carbs       float64   `json:"carbs" msgpack:"carbs"`     // grams
	Fat         float64   `json:"fat" msgpack:"fat"`         // grams
	Fiber       float64   `json:"fiber" msgpack:"fiber"`     // grams
	Sugar       float64   `json:"sugar" msgpack:"sugar"`     // grams
	Sodium      float64   `json:"sodium" msgpack:"sodium"`   // milligrams
	ServingSize float64   `json:"servingSize" msgpack:"servingSize"`
	ServingUnit string    `json:"servingUnit" msgpack:"servingUnit"`
	Source      SourceTag `json:"sourceTag" msgpack:"sourceTag"`
}

// DefaultNutritionRecord returns a zero-valued record with a 100 g serving
func DefaultNutritionRecord() NutritionRecord {
	return NutritionRecord{
		ServingSize: DefaultServingSize,
		ServingUnit: DefaultServingUnit,
		Source:      SourceNone,
	}
}

// Clamp forces nutrients to be non-negative and the serving to be positive
func (r NutritionRecord) Clamp() NutritionRecord {
	for _, v := range []*float64{&r.Calories, &r.Protein, &r.Carbs, &r.Fat, &r.Fiber, &r.Sugar, &r.Sodium} {
		*v = nonNegative(*v)
	}
	if !(r.ServingSize > 0) {
		r.ServingSize = DefaultServingSize
	}
	if r.ServingUnit == "" {
		r.ServingUnit = DefaultServingUnit
	}
	if r.Source == "" {
		r.Source = SourceNone
	}
	return r
}

// HasAllMacros reports whether calories, protein, carbs and fat are all nonzero
func (r NutritionRecord) HasAllMacros() bool {
	return r.Calories > 0 && r.Protein > 0 && r.Carbs > 0 && r.Fat > 0
}

// LookupResult is what a quick lookup resolves for a free-text item name
type LookupResult struct {
	Query       string           `json:"query" msgpack:"query"`
	ProductName string           `json:"productName,omitempty" msgpack:"productName"`
	Brand       string           `json:"brand,omitempty" msgpack:"brand"`
	Category    ShoppingCategory `json:"category" msgpack:"category"`
	IsFood      bool             `json:"isFood" msgpack:"isFood"`
	Nutrition   NutritionRecord  `json:"nutrition" msgpack:"nutrition"`
	ResolvedAt  time.Time        `json:"resolvedAt" msgpack:"resolvedAt"`
}

func nonNegative(v float64) float64 {
	if v > 0 {
		return v
	}
	return 0
}
