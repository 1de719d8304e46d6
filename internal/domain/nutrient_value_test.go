package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLeadingNumber(t *testing.T) {
	tests := []struct {
		label string
		want  float64
	}{
		{"12g", 12},
		{"0.5 mg", 0.5},
		{"150 kcal", 150},
		{"  7.25g  ", 7.25},
		{".5g", 0.5},
		{"3.", 3},
		{"less than 1g", 0},
		{"<1g", 0},
		{"", 0},
		{"-4g", 0},
		{"Calories 120", 0},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParseLeadingNumber(tt.label), 1e-9)
		})
	}
}

func TestNutrientValue_UnmarshalJSON(t *testing.T) {
	var payload struct {
		A NutrientValue `json:"a"`
		B NutrientValue `json:"b"`
		C NutrientValue `json:"c"`
		D NutrientValue `json:"d"`
		E NutrientValue `json:"e"`
	}

	err := json.Unmarshal([]byte(`{"a": 12.5, "b": "8g", "c": null, "d": "trace", "e": -3}`), &payload)
	require.NoError(t, err)

	assert.Equal(t, 12.5, payload.A.Float64())
	assert.Equal(t, 8.0, payload.B.Float64())
	assert.Equal(t, 0.0, payload.C.Float64())
	assert.Equal(t, 0.0, payload.D.Float64())
	assert.Equal(t, 0.0, payload.E.Float64())
}

func TestNutrientValue_UnmarshalJSON_InvalidType(t *testing.T) {
	var v NutrientValue
	assert.Error(t, json.Unmarshal([]byte(`{"x":1}`), &v))
}

func TestNutritionRecord_Clamp(t *testing.T) {
	r := NutritionRecord{Calories: -10, Protein: 3, ServingSize: 0}.Clamp()

	assert.Equal(t, 0.0, r.Calories)
	assert.Equal(t, 3.0, r.Protein)
	assert.Equal(t, DefaultServingSize, r.ServingSize)
	assert.Equal(t, DefaultServingUnit, r.ServingUnit)
	assert.Equal(t, SourceNone, r.Source)
}

func TestSourceTag_Resolved(t *testing.T) {
	assert.True(t, SourcePrimary.Resolved())
	assert.True(t, SourceSecondary.Resolved())
	assert.True(t, SourceBoth.Resolved())
	assert.False(t, SourceNone.Resolved())
	assert.False(t, SourceFallback.Resolved())
	assert.False(t, SourceError.Resolved())
}

func TestShoppingCategory_Valid(t *testing.T) {
	for _, c := range AllCategories {
		assert.True(t, c.Valid(), c)
	}
	assert.False(t, ShoppingCategory("Hardware").Valid())
}
