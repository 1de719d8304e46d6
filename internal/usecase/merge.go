package usecase

import "github.com/larder/backend/internal/domain"

// Merge reconciles up to two provider results into one record.
//
// Secondary is copied in first. Primary then overwrites each macro
// (calories, protein, carbs, fat) for which it reports a value above zero;
// zero means "no data" rather than a true zero. When Primary alone covers all
// four macros the result is tagged primary even if Secondary responded.
func Merge(primary, secondary *domain.ProviderResult) domain.NutritionRecord {
	merged := domain.DefaultNutritionRecord()

	if secondary != nil {
		merged = secondary.Nutrition
		merged.Source = domain.SourceSecondary
	}

	if primary != nil {
		p := primary.Nutrition
		if p.Calories > 0 {
			merged.Calories = p.Calories
		}
		if p.Protein > 0 {
			merged.Protein = p.Protein
		}
		if p.Carbs > 0 {
			merged.Carbs = p.Carbs
		}
		if p.Fat > 0 {
			merged.Fat = p.Fat
		}

		switch {
		case secondary == nil, p.HasAllMacros():
			merged.Source = domain.SourcePrimary
		default:
			merged.Source = domain.SourceBoth
		}
	}

	return merged.Clamp()
}
