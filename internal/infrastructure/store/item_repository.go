package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/larder/backend/internal/domain"
)

// Item is the persisted grocery item row
type Item struct {
	ID              string    `gorm:"column:id;primaryKey"`
	UserID          string    `gorm:"column:user_id;index"`
	Name            string    `gorm:"column:name"`
	Amount          float64   `gorm:"column:amount"`
	Unit            string    `gorm:"column:unit"`
	Category        string    `gorm:"column:category"`
	Calories        float64   `gorm:"column:calories"`
	Protein         float64   `gorm:"column:protein"`
	Carbs           float64   `gorm:"column:carbs"`
	Fat             float64   `gorm:"column:fat"`
	ServingSize     float64   `gorm:"column:serving_size"`
	ServingUnit     string    `gorm:"column:serving_unit"`
	NutritionSource string    `gorm:"column:nutrition_source"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

// TableName overrides the table name used by Item
func (Item) TableName() string {
	return "items"
}

// ItemRepository implements domain.ItemStore on top of gorm
type ItemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates a repository over db
func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// ListMissingNutrition returns up to limit items that were never enriched
func (r *ItemRepository) ListMissingNutrition(ctx context.Context, limit int) ([]domain.EnrichmentTask, error) {
	var items []Item
	err := r.db.WithContext(ctx).
		Select("id", "name").
		Where("calories = ? AND nutrition_source = ?", 0, "").
		Order("created_at").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list items missing nutrition: %w", err)
	}

	tasks := make([]domain.EnrichmentTask, 0, len(items))
	for _, item := range items {
		tasks = append(tasks, domain.EnrichmentTask{ItemID: item.ID, RawName: item.Name})
	}
	return tasks, nil
}

// UpdateNutrition writes an enrichment result. Writing the same update twice
// leaves the row unchanged apart from updated_at.
func (r *ItemRepository) UpdateNutrition(ctx context.Context, itemID string, update domain.ItemUpdate) error {
	res := r.db.WithContext(ctx).
		Model(&Item{}).
		Where("id = ?", itemID).
		Updates(map[string]any{
			"category":         string(update.Category),
			"calories":         update.Calories,
			"protein":          update.Protein,
			"carbs":            update.Carbs,
			"fat":              update.Fat,
			"serving_size":     update.ServingSize,
			"serving_unit":     update.ServingUnit,
			"nutrition_source": string(update.Source),
		})
	if res.Error != nil {
		return fmt.Errorf("update item %s: %w", itemID, res.Error)
	}
	if res.RowsAffected == 0 {
		// MySQL counts changed rows, so re-applying identical values reports
		// zero. Only a missing row is an error.
		var n int64
		if err := r.db.WithContext(ctx).Model(&Item{}).Where("id = ?", itemID).Count(&n).Error; err != nil {
			return fmt.Errorf("check item %s: %w", itemID, err)
		}
		if n == 0 {
			return fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
		}
	}
	return nil
}

// ListInventory returns the user's items as inventory entries
func (r *ItemRepository) ListInventory(ctx context.Context, userID string) ([]domain.InventoryEntry, error) {
	var items []Item
	err := r.db.WithContext(ctx).
		Select("name", "amount", "unit").
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}

	entries := make([]domain.InventoryEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, domain.InventoryEntry{Name: item.Name, Amount: item.Amount, Unit: item.Unit})
	}
	return entries, nil
}
