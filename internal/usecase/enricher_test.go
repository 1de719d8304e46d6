package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/larder/backend/internal/domain"
)

// stubLookuper records when each name was looked up
type stubLookuper struct {
	mu      sync.Mutex
	started map[string]time.Time
	calls   atomic.Int32
	release chan struct{}
	source  domain.SourceTag
}

func newStubLookuper() *stubLookuper {
	return &stubLookuper{started: make(map[string]time.Time), source: domain.SourceSecondary}
}

func (s *stubLookuper) QuickLookup(ctx context.Context, name string) domain.LookupResult {
	s.calls.Add(1)
	s.mu.Lock()
	s.started[name] = time.Now()
	s.mu.Unlock()
	if s.release != nil {
		<-s.release
	}
	record := domain.DefaultNutritionRecord()
	record.Calories = 100
	record.Source = s.source
	return domain.LookupResult{Query: name, Category: domain.CategoryProduce, IsFood: true, Nutrition: record}
}

func (s *stubLookuper) startedAt(name string) time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started[name]
}

type recordingHandler struct {
	mu    sync.Mutex
	calls map[string]int
	err   error
}

func newRecordingHandler() *recordingHandler {
	return &recordingHandler{calls: make(map[string]int)}
}

func (h *recordingHandler) handle(ctx context.Context, itemID string, result domain.LookupResult) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls[itemID]++
	return h.err
}

func (h *recordingHandler) count(itemID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.calls[itemID]
}

func TestNewEnricher_DefaultInterval(t *testing.T) {
	e := NewEnricher(newStubLookuper(), 0, nil)
	assert.Equal(t, DefaultStaggerInterval, e.interval)
	assert.Equal(t, 300*time.Millisecond, e.interval)
}

func TestEnrichOne(t *testing.T) {
	lookup := newStubLookuper()
	handler := newRecordingHandler()
	e := NewEnricher(lookup, 0, zap.NewNop())

	ran := e.EnrichOne(context.Background(), "item-1", "red apple", handler.handle)

	assert.True(t, ran)
	assert.Equal(t, 1, handler.count("item-1"))
	assert.Zero(t, e.InFlight())
}

func TestEnrichOne_DedupsConcurrentCalls(t *testing.T) {
	lookup := newStubLookuper()
	lookup.release = make(chan struct{})
	handler := newRecordingHandler()
	e := NewEnricher(lookup, 0, nil)
	ctx := context.Background()

	firstDone := make(chan bool)
	go func() {
		firstDone <- e.EnrichOne(ctx, "item-1", "red apple", handler.handle)
	}()
	require.Eventually(t, func() bool { return lookup.calls.Load() == 1 }, time.Second, time.Millisecond)

	second := e.EnrichOne(ctx, "item-1", "red apple", handler.handle)
	assert.False(t, second, "duplicate call returns immediately")
	assert.Equal(t, 1, e.InFlight())

	close(lookup.release)
	assert.True(t, <-firstDone)

	assert.Equal(t, int32(1), lookup.calls.Load())
	assert.Equal(t, 1, handler.count("item-1"))
	assert.Zero(t, e.InFlight())
}

func TestEnrichOne_DifferentIDsRunConcurrently(t *testing.T) {
	lookup := newStubLookuper()
	lookup.release = make(chan struct{})
	e := NewEnricher(lookup, 0, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for _, id := range []string{"a", "b"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			e.EnrichOne(ctx, id, "apple", nil)
		}(id)
	}

	require.Eventually(t, func() bool { return e.InFlight() == 2 }, time.Second, time.Millisecond)
	close(lookup.release)
	wg.Wait()
	assert.Equal(t, int32(2), lookup.calls.Load())
}

func TestEnrichOne_ReleasesSlotOnHandlerFailure(t *testing.T) {
	lookup := newStubLookuper()
	handler := newRecordingHandler()
	handler.err = errors.New("write failed")
	e := NewEnricher(lookup, 0, nil)
	ctx := context.Background()

	assert.True(t, e.EnrichOne(ctx, "item-1", "red apple", handler.handle))
	assert.Zero(t, e.InFlight())

	assert.True(t, e.EnrichOne(ctx, "item-1", "red apple", handler.handle), "a later pass can retry")
	assert.Equal(t, 2, handler.count("item-1"))
}

func TestEnrichOne_ReleasesSlotOnPanic(t *testing.T) {
	e := NewEnricher(newStubLookuper(), 0, nil)
	panicking := func(ctx context.Context, itemID string, result domain.LookupResult) error {
		panic("boom")
	}

	assert.NotPanics(t, func() {
		e.EnrichOne(context.Background(), "item-1", "red apple", panicking)
	})
	assert.Zero(t, e.InFlight())
}

func TestEnrichBatch_Staggers(t *testing.T) {
	lookup := newStubLookuper()
	handler := newRecordingHandler()
	e := NewEnricher(lookup, DefaultStaggerInterval, nil)
	tasks := []domain.EnrichmentTask{
		{ItemID: "a", RawName: "apple"},
		{ItemID: "b", RawName: "banana"},
		{ItemID: "c", RawName: "cherries"},
	}

	start := time.Now()
	summary := e.EnrichBatch(context.Background(), tasks, handler.handle)

	assert.GreaterOrEqual(t, lookup.startedAt("banana").Sub(start), DefaultStaggerInterval)
	assert.GreaterOrEqual(t, lookup.startedAt("cherries").Sub(start), 2*DefaultStaggerInterval)

	assert.NotEmpty(t, summary.RunID)
	assert.Equal(t, 3, summary.Scheduled)
	assert.Equal(t, 3, summary.Completed)
	assert.Zero(t, summary.Failed)
	assert.Zero(t, summary.Skipped)
	for _, task := range tasks {
		assert.Equal(t, 1, handler.count(task.ItemID))
	}
}

func TestEnrichBatch_CountsFailures(t *testing.T) {
	lookup := newStubLookuper()
	handler := newRecordingHandler()
	handler.err = errors.New("write failed")
	e := NewEnricher(lookup, time.Millisecond, nil)

	summary := e.EnrichBatch(context.Background(), []domain.EnrichmentTask{
		{ItemID: "a", RawName: "apple"},
		{ItemID: "b", RawName: "banana"},
	}, handler.handle)

	assert.Equal(t, 2, summary.Failed)
	assert.Zero(t, summary.Completed)
	assert.Zero(t, e.InFlight())
}

func TestEnrichBatch_ErrorTaggedLookupIsFailure(t *testing.T) {
	lookup := newStubLookuper()
	lookup.source = domain.SourceError
	e := NewEnricher(lookup, time.Millisecond, nil)

	summary := e.EnrichBatch(context.Background(), []domain.EnrichmentTask{{ItemID: "a", RawName: "apple"}}, nil)

	assert.Equal(t, 1, summary.Failed)
}

func TestEnrichBatch_CancelledBeforeStartSkips(t *testing.T) {
	lookup := newStubLookuper()
	e := NewEnricher(lookup, time.Millisecond, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary := e.EnrichBatch(ctx, []domain.EnrichmentTask{
		{ItemID: "a", RawName: "apple"},
		{ItemID: "b", RawName: "banana"},
	}, nil)

	assert.Equal(t, 2, summary.Skipped)
	assert.Zero(t, lookup.calls.Load())
}

func TestEnrichBatch_Empty(t *testing.T) {
	e := NewEnricher(newStubLookuper(), 0, nil)

	summary := e.EnrichBatch(context.Background(), nil, nil)

	assert.Zero(t, summary.Scheduled)
	assert.NotEmpty(t, summary.RunID)
}
