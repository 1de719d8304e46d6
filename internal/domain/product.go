package domain

// PrimarySearchRequest is a retail catalog product search
type PrimarySearchRequest struct {
	Query        string
	PageSize     int
	LocationHint string
}

// PriceInfo is the optional shelf price of a retail product
type PriceInfo struct {
	Regular float64 `json:"regular"`
	Promo   float64 `json:"promo,omitempty"`
}

// PrimaryProduct is a retail catalog candidate. NutritionLabels holds label
// strings keyed by nutrient name, e.g. "protein": "5g".
type PrimaryProduct struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Brand           string            `json:"brand,omitempty"`
	CatalogCategory string            `json:"catalogCategory,omitempty"`
	Price           *PriceInfo        `json:"priceInfo,omitempty"`
	NutritionLabels map[string]string `json:"nutritionLabels,omitempty"`
}

// SecondarySearchRequest is a reference food database search. The API key is
// owned by the client.
type SecondarySearchRequest struct {
	Query    string
	PageSize int
}

// SecondaryFood is a reference database candidate with nutrient values keyed
// by nutrient id
type SecondaryFood struct {
	ExternalID    string          `json:"externalId"`
	Description   string          `json:"description"`
	BrandName     string          `json:"brandName,omitempty"`
	FoodCategory  string          `json:"foodCategory,omitempty"`
	NutrientsByID map[int]float64 `json:"nutrientsById"`
}

// ProviderResult is one provider's candidate normalized into the common shape
type ProviderResult struct {
	Name      string
	Brand     string
	Category  string
	Nutrition NutritionRecord
}
