package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching lookup results
type CacheRepository interface {
	Get(ctx context.Context, key string) (LookupResult, error)
	Set(ctx context.Context, key string, value LookupResult, ttl time.Duration) error
	Clear(ctx context.Context) error
}

// PrimaryProvider searches the retail product catalog
type PrimaryProvider interface {
	SearchProducts(ctx context.Context, req PrimarySearchRequest) ([]PrimaryProduct, error)
}

// SecondaryProvider searches the reference food database
type SecondaryProvider interface {
	SearchFoods(ctx context.Context, req SecondarySearchRequest) ([]SecondaryFood, error)
}

// ItemStore persists enrichment results for a user's items
type ItemStore interface {
	ListMissingNutrition(ctx context.Context, limit int) ([]EnrichmentTask, error)
	UpdateNutrition(ctx context.Context, itemID string, update ItemUpdate) error
	ListInventory(ctx context.Context, userID string) ([]InventoryEntry, error)
}
