package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/larder/backend/internal/domain"
)

func TestToGrams(t *testing.T) {
	testCases := []struct {
		amount float64
		unit   string
		want   float64
	}{
		{250, "g", 250},
		{1.5, "kg", 1500},
		{2, "oz", 56.7},
		{1, "lb", 453.59},
		{2, "LBS", 907.18},
		{500, "ml", 500},
		{1, "l", 1000},
		{2, "cups", 480},
		{1, "tbsp", 15},
		{3, "tsp.", 15},
		{3, "", 300},
		{2, "each", 200},
		{1, "bunch", 100},
	}

	for _, tc := range testCases {
		t.Run(tc.unit, func(t *testing.T) {
			assert.InDelta(t, tc.want, ToGrams(tc.amount, tc.unit), 1e-9)
		})
	}
}

func TestFromGrams_RoundTrip(t *testing.T) {
	for _, unit := range []string{"lb", "oz", "kg", "cup", "tsp", "item"} {
		t.Run(unit, func(t *testing.T) {
			assert.InDelta(t, 2.0, FromGrams(ToGrams(2, unit), unit), 0.01)
		})
	}
}

func TestIsKnownUnit(t *testing.T) {
	assert.True(t, IsKnownUnit(" Tablespoons "))
	assert.True(t, IsKnownUnit("g"))
	assert.False(t, IsKnownUnit("bunch"))
	assert.False(t, IsKnownUnit(""))
}

func TestScaleFactor(t *testing.T) {
	assert.Equal(t, 2.0, ScaleFactor(200, 100))
	assert.Equal(t, 0.5, ScaleFactor(50, 100))
	assert.Equal(t, 1.0, ScaleFactor(300, 0))
}

func TestScale(t *testing.T) {
	record := domain.NutritionRecord{
		Calories: 100, Protein: 10, Carbs: 20, Fat: 5, Fiber: 2, Sugar: 4, Sodium: 50,
		ServingSize: 100, ServingUnit: "g", Source: domain.SourceSecondary,
	}

	got := Scale(record, 1.5)

	assert.Equal(t, domain.NutritionRecord{
		Calories: 150, Protein: 15, Carbs: 30, Fat: 7.5, Fiber: 3, Sugar: 6, Sodium: 75,
		ServingSize: 150, ServingUnit: "g", Source: domain.SourceSecondary,
	}, got)
}

func TestScaleToAmount(t *testing.T) {
	record := domain.NutritionRecord{Calories: 52, Carbs: 14, ServingSize: 100, ServingUnit: "g"}

	t.Run("weight", func(t *testing.T) {
		got := ScaleToAmount(record, 1, "lb")
		assert.InDelta(t, 52*4.5359, got.Calories, 1e-9)
		assert.InDelta(t, 453.59, got.ServingSize, 1e-9)
	})

	t.Run("count uses per item approximation", func(t *testing.T) {
		got := ScaleToAmount(record, 3, "")
		assert.InDelta(t, 156, got.Calories, 1e-9)
		assert.InDelta(t, 42, got.Carbs, 1e-9)
	})

	t.Run("serving in ounces", func(t *testing.T) {
		oz := domain.NutritionRecord{Calories: 110, ServingSize: 1, ServingUnit: "oz"}
		got := ScaleToAmount(oz, 2, "oz")
		assert.InDelta(t, 220, got.Calories, 1e-9)
	})
}
