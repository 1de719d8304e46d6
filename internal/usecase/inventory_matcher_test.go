package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/larder/backend/internal/domain"
)

func TestFindInventoryMatch(t *testing.T) {
	inventory := []domain.InventoryEntry{
		{Name: "Chicken Broth", Amount: 1, Unit: "l"},
		{Name: "chicken", Amount: 2, Unit: "lb"},
		{Name: "  Whole Milk ", Amount: 1, Unit: "gallon"},
		{Name: "", Amount: 1},
	}

	testCases := []struct {
		name   string
		target string
		want   string
		found  bool
	}{
		{name: "first match wins over exact", target: "chicken", want: "Chicken Broth", found: true},
		{name: "target contains entry", target: "organic whole milk", want: "  Whole Milk ", found: true},
		{name: "entry contains target", target: "MILK", want: "  Whole Milk ", found: true},
		{name: "case and space insensitive", target: "  chicken broth ", want: "Chicken Broth", found: true},
		{name: "no match", target: "eggs", found: false},
		{name: "empty target never matches", target: "   ", found: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := FindInventoryMatch(tc.target, inventory)
			assert.Equal(t, tc.found, ok)
			if tc.found {
				assert.Equal(t, tc.want, got.Name)
			}
		})
	}
}

func TestFindInventoryMatch_EmptyInventory(t *testing.T) {
	_, ok := FindInventoryMatch("milk", nil)
	assert.False(t, ok)
}
