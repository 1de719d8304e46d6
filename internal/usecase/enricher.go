package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/larder/backend/internal/domain"
)

// DefaultStaggerInterval spaces the start of successive batch tasks
const DefaultStaggerInterval = 300 * time.Millisecond

// Lookuper resolves an item name; NutritionService implements it
type Lookuper interface {
	QuickLookup(ctx context.Context, name string) domain.LookupResult
}

// CompletionHandler receives each enriched item. It owns persistence and
// must be idempotent: the same result may be applied more than once.
type CompletionHandler func(ctx context.Context, itemID string, result domain.LookupResult) error

// BatchSummary reports how a batch run went
type BatchSummary struct {
	RunID     string        `json:"runId"`
	Scheduled int           `json:"scheduled"`
	Completed int           `json:"completed"`
	Skipped   int           `json:"skipped"`
	Failed    int           `json:"failed"`
	Duration  time.Duration `json:"duration"`
}

type outcome int

const (
	outcomeCompleted outcome = iota
	outcomeSkipped
	outcomeFailed
)

// Enricher runs lookups in the background, at most one per item id at a time
type Enricher struct {
	lookup   Lookuper
	interval time.Duration
	logger   *zap.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewEnricher creates an enricher. A non-positive interval uses DefaultStaggerInterval.
func NewEnricher(lookup Lookuper, interval time.Duration, logger *zap.Logger) *Enricher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if interval <= 0 {
		interval = DefaultStaggerInterval
	}
	return &Enricher{
		lookup:   lookup,
		interval: interval,
		logger:   logger.Named("enricher"),
		inFlight: make(map[string]struct{}),
	}
}

// InFlight returns the number of items currently being enriched
func (e *Enricher) InFlight() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.inFlight)
}

// EnrichOne looks up rawName and hands the result to onDone. It returns
// false without doing anything if itemID is already being enriched.
func (e *Enricher) EnrichOne(ctx context.Context, itemID, rawName string, onDone CompletionHandler) bool {
	return e.enrich(ctx, domain.EnrichmentTask{ItemID: itemID, RawName: rawName}, onDone) != outcomeSkipped
}

// EnrichBatch starts task i after i*interval and returns once every task has
// finished. Tasks still waiting when ctx is done are skipped; started tasks
// always run to completion.
func (e *Enricher) EnrichBatch(ctx context.Context, tasks []domain.EnrichmentTask, onDone CompletionHandler) BatchSummary {
	runID := uuid.NewString()
	start := time.Now()
	log := e.logger.With(zap.String("run_id", runID))
	log.Info("batch started", zap.Int("tasks", len(tasks)), zap.Duration("interval", e.interval))

	var completed, skipped, failed atomic.Int32
	var g errgroup.Group
	for i, task := range tasks {
		task := task
		delay := time.Duration(i) * e.interval
		g.Go(func() error {
			if err := wait(ctx, delay); err != nil {
				skipped.Add(1)
				return nil
			}
			switch e.enrich(context.WithoutCancel(ctx), task, onDone) {
			case outcomeCompleted:
				completed.Add(1)
			case outcomeSkipped:
				skipped.Add(1)
			case outcomeFailed:
				failed.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	summary := BatchSummary{
		RunID:     runID,
		Scheduled: len(tasks),
		Completed: int(completed.Load()),
		Skipped:   int(skipped.Load()),
		Failed:    int(failed.Load()),
		Duration:  time.Since(start),
	}
	log.Info("batch finished",
		zap.Int("completed", summary.Completed),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed),
		zap.Duration("duration", summary.Duration))
	return summary
}

func (e *Enricher) enrich(ctx context.Context, task domain.EnrichmentTask, onDone CompletionHandler) (result outcome) {
	if !e.acquire(task.ItemID) {
		e.logger.Debug("already in flight", zap.String("item_id", task.ItemID))
		return outcomeSkipped
	}
	defer e.release(task.ItemID)
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("enrichment panicked", zap.String("item_id", task.ItemID), zap.Any("panic", r))
			result = outcomeFailed
		}
	}()

	res := e.lookup.QuickLookup(ctx, task.RawName)
	if onDone != nil {
		if err := onDone(ctx, task.ItemID, res); err != nil {
			e.logger.Warn("completion handler failed",
				zap.String("item_id", task.ItemID),
				zap.String("name", task.RawName),
				zap.Error(err))
			return outcomeFailed
		}
	}
	if res.Nutrition.Source == domain.SourceError {
		return outcomeFailed
	}
	return outcomeCompleted
}

func (e *Enricher) acquire(itemID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, busy := e.inFlight[itemID]; busy {
		return false
	}
	e.inFlight[itemID] = struct{}{}
	return true
}

func (e *Enricher) release(itemID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.inFlight, itemID)
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
