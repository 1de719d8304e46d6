package domain

// InventoryEntry is a read-only view of an item the user already has
type InventoryEntry struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// EnrichmentTask identifies an item whose nutrition should be resolved
type EnrichmentTask struct {
	ItemID  string `json:"itemId"`
	RawName string `json:"rawName"`
}

// ItemUpdate is the set of columns an enrichment completion writes back
type ItemUpdate struct {
	Category    ShoppingCategory
	Calories    float64
	Protein     float64
	Carbs       float64
	Fat         float64
	ServingSize float64
	ServingUnit string
	Source      SourceTag
}

// ItemUpdateFromLookup builds the persisted fields from a lookup result
func ItemUpdateFromLookup(result LookupResult) ItemUpdate {
	n := result.Nutrition
	return ItemUpdate{
		Category:    result.Category,
		Calories:    n.Calories,
		Protein:     n.Protein,
		Carbs:       n.Carbs,
		Fat:         n.Fat,
		ServingSize: n.ServingSize,
		ServingUnit: n.ServingUnit,
		Source:      n.Source,
	}
}
