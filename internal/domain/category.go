package domain

// ShoppingCategory is a tag from the fixed shopping taxonomy
type ShoppingCategory string

const (
	CategoryProduce      ShoppingCategory = "Produce"
	CategoryMeatSeafood  ShoppingCategory = "Meat & Seafood"
	CategoryDairy        ShoppingCategory = "Dairy"
	CategoryBakery       ShoppingCategory = "Bakery"
	CategoryPantry       ShoppingCategory = "Pantry"
	CategoryFrozen       ShoppingCategory = "Frozen"
	CategoryBeverages    ShoppingCategory = "Beverages"
	CategorySnacks       ShoppingCategory = "Snacks"
	CategoryHousehold    ShoppingCategory = "Cleaning & Household"
	CategoryPersonalCare ShoppingCategory = "Baby & Personal Care"
	CategoryPetSupplies  ShoppingCategory = "Pet Supplies"
	CategoryOther        ShoppingCategory = "Other"
)

// AllCategories lists the taxonomy in display order
var AllCategories = []ShoppingCategory{
	CategoryProduce,
	CategoryMeatSeafood,
	CategoryDairy,
	CategoryBakery,
	CategoryPantry,
	CategoryFrozen,
	CategoryBeverages,
	CategorySnacks,
	CategoryHousehold,
	CategoryPersonalCare,
	CategoryPetSupplies,
	CategoryOther,
}

// Valid reports whether c belongs to the taxonomy
func (c ShoppingCategory) Valid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}
