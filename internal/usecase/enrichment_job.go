package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/larder/backend/internal/domain"
)

// EnrichmentJob fills in nutrition for stored items that have none
type EnrichmentJob struct {
	store     domain.ItemStore
	enricher  *Enricher
	batchSize int
	logger    *zap.Logger
}

// NewEnrichmentJob creates a job reading up to batchSize pending items per run
func NewEnrichmentJob(store domain.ItemStore, enricher *Enricher, batchSize int, logger *zap.Logger) *EnrichmentJob {
	if logger == nil {
		logger = zap.NewNop()
	}
	if batchSize <= 0 {
		batchSize = 50
	}
	return &EnrichmentJob{
		store:     store,
		enricher:  enricher,
		batchSize: batchSize,
		logger:    logger.Named("enrichment_job"),
	}
}

// RunPending enriches one batch of items missing nutrition and persists the results
func (j *EnrichmentJob) RunPending(ctx context.Context) (BatchSummary, error) {
	tasks, err := j.store.ListMissingNutrition(ctx, j.batchSize)
	if err != nil {
		return BatchSummary{}, fmt.Errorf("list pending items: %w", err)
	}
	if len(tasks) == 0 {
		j.logger.Debug("no items pending enrichment")
	}
	return j.enricher.EnrichBatch(ctx, tasks, j.persist), nil
}

// persist writes a result back to the store. Error and fallback results carry
// no provider data, so they are not written and the item stays pending for
// the next run.
func (j *EnrichmentJob) persist(ctx context.Context, itemID string, result domain.LookupResult) error {
	switch result.Nutrition.Source {
	case domain.SourceError:
		return fmt.Errorf("lookup failed for item %s", itemID)
	case domain.SourceFallback:
		return fmt.Errorf("no provider data for item %s", itemID)
	}
	return j.store.UpdateNutrition(ctx, itemID, domain.ItemUpdateFromLookup(result))
}
