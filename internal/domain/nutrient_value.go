package domain

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

var leadingNumberRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)`)

// ParseLeadingNumber extracts the numeric literal at the start of a label such
// as "12g", "0.5 mg" or "150 kcal". Labels without a leading number parse as 0,
// and negative numbers are clamped to 0.
func ParseLeadingNumber(label string) float64 {
	match := leadingNumberRegex.FindString(strings.TrimSpace(label))
	if match == "" {
		return 0
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// NutrientValue decodes a nutrient amount that providers send either as a JSON
// number or as a label string
type NutrientValue float64

// UnmarshalJSON implements json.Unmarshaler
func (v *NutrientValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = NutrientValue(ParseLeadingNumber(s))
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = NutrientValue(nonNegative(f))
	return nil
}

// Float64 returns the value as a float64
func (v NutrientValue) Float64() float64 {
	return float64(v)
}
