package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/larder/backend/internal/domain"
)

// mockCache is an in-memory domain.CacheRepository that counts calls
type mockCache struct {
	mu       sync.Mutex
	data     map[string]domain.LookupResult
	getErr   error
	setErr   error
	gets     int
	sets     int
	lastTTL  time.Duration
	clearErr error
	setPanic string
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string]domain.LookupResult)}
}

func (m *mockCache) Get(ctx context.Context, key string) (domain.LookupResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	if m.getErr != nil {
		return domain.LookupResult{}, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return domain.LookupResult{}, domain.ErrCacheMiss
	}
	return v, nil
}

func (m *mockCache) Set(ctx context.Context, key string, value domain.LookupResult, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	m.lastTTL = ttl
	if m.setPanic != "" {
		panic(m.setPanic)
	}
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func (m *mockCache) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.clearErr != nil {
		return m.clearErr
	}
	m.data = make(map[string]domain.LookupResult)
	return nil
}

func (m *mockCache) getCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gets
}

func (m *mockCache) keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	return keys
}

// mockPrimary is a domain.PrimaryProvider with scripted responses
type mockPrimary struct {
	products []domain.PrimaryProduct
	err      error
	panicMsg string
	release  chan struct{}
	calls    atomic.Int32
	mu       sync.Mutex
	requests []domain.PrimarySearchRequest
}

func (m *mockPrimary) SearchProducts(ctx context.Context, req domain.PrimarySearchRequest) ([]domain.PrimaryProduct, error) {
	m.calls.Add(1)
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	if m.release != nil {
		select {
		case <-m.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.panicMsg != "" {
		panic(m.panicMsg)
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.products, nil
}

// mockSecondary is a domain.SecondaryProvider with scripted responses
type mockSecondary struct {
	foods    []domain.SecondaryFood
	err      error
	release  chan struct{}
	calls    atomic.Int32
	mu       sync.Mutex
	requests []domain.SecondarySearchRequest
}

func (m *mockSecondary) SearchFoods(ctx context.Context, req domain.SecondarySearchRequest) ([]domain.SecondaryFood, error) {
	m.calls.Add(1)
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	if m.release != nil {
		<-m.release
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.foods, nil
}

// mockItemStore is a domain.ItemStore recording updates
type mockItemStore struct {
	mu        sync.Mutex
	pending   []domain.EnrichmentTask
	listErr   error
	updateErr error
	updates   map[string]domain.ItemUpdate
	inventory map[string][]domain.InventoryEntry
	lastLimit int
}

func newMockItemStore(pending ...domain.EnrichmentTask) *mockItemStore {
	return &mockItemStore{
		pending:   pending,
		updates:   make(map[string]domain.ItemUpdate),
		inventory: make(map[string][]domain.InventoryEntry),
	}
}

func (m *mockItemStore) ListMissingNutrition(ctx context.Context, limit int) ([]domain.EnrichmentTask, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastLimit = limit
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.pending, nil
}

func (m *mockItemStore) UpdateNutrition(ctx context.Context, itemID string, update domain.ItemUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updates[itemID] = update
	return nil
}

func (m *mockItemStore) ListInventory(ctx context.Context, userID string) ([]domain.InventoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inventory[userID], nil
}

func milkProducts() []domain.PrimaryProduct {
	return []domain.PrimaryProduct{
		{ID: "1", Name: "Chocolate Milk", CatalogCategory: "Dairy", NutritionLabels: map[string]string{"calories": "190"}},
		{ID: "2", Name: "Whole Milk", Brand: "Acme", CatalogCategory: "Dairy", NutritionLabels: map[string]string{"calories": "150", "protein": "8g"}},
	}
}

func milkFoods() []domain.SecondaryFood {
	return []domain.SecondaryFood{
		{ExternalID: "746782", Description: "Milk, whole, 3.25% milkfat", FoodCategory: "Dairy and Egg Products", NutrientsByID: map[int]float64{
			1008: 61, 1003: 3.2, 1005: 4.8, 1004: 3.3, 2000: 5.1, 1093: 43,
		}},
	}
}
