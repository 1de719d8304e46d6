package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/larder/backend/internal/domain"
	"github.com/larder/backend/internal/infrastructure/retail"
	"github.com/larder/backend/internal/infrastructure/usda"
)

// NutritionServiceConfig holds configuration for the nutrition service
type NutritionServiceConfig struct {
	CacheTTL          time.Duration
	PageSize          int
	SecondaryPageSize int // caps reference database searches; defaults to PageSize
	LocationHint      string
	Ranker            RankerConfig
}

// NutritionService resolves nutrition and category for free-text item names.
// Either provider may be nil, which is treated like a provider returning nothing.
type NutritionService struct {
	cache         domain.CacheRepository
	primary       domain.PrimaryProvider
	secondary     domain.SecondaryProvider
	classifier    *Classifier
	preprocessor  *QueryPreprocessor
	ranker        *CandidateRanker
	group         singleflight.Group
	cacheTTL      time.Duration
	pageSize      int
	secondarySize int
	locationHint  string
	logger        *zap.Logger
	now           func() time.Time
}

// NewNutritionService creates a new nutrition service with dependencies
func NewNutritionService(
	cache domain.CacheRepository,
	primary domain.PrimaryProvider,
	secondary domain.SecondaryProvider,
	config NutritionServiceConfig,
	logger *zap.Logger,
) *NutritionService {
	if logger == nil {
		logger = zap.NewNop()
	}

	cacheTTL := config.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = 24 * time.Hour
	}
	pageSize := config.PageSize
	if pageSize <= 0 {
		pageSize = 5
	}
	secondarySize := config.SecondaryPageSize
	if secondarySize <= 0 {
		secondarySize = pageSize
	}

	return &NutritionService{
		cache:         cache,
		primary:       primary,
		secondary:     secondary,
		classifier:    NewClassifier(),
		preprocessor:  NewQueryPreprocessor(logger),
		ranker:        NewCandidateRanker(config.Ranker, logger),
		cacheTTL:      cacheTTL,
		pageSize:      pageSize,
		secondarySize: secondarySize,
		locationHint:  config.LocationHint,
		logger:        logger.Named("nutrition"),
		now:           time.Now,
	}
}

// Classifier exposes the service's classifier
func (s *NutritionService) Classifier() *Classifier {
	return s.classifier
}

// QuickLookup resolves name with the default page size
func (s *NutritionService) QuickLookup(ctx context.Context, name string) domain.LookupResult {
	return s.Lookup(ctx, name, s.pageSize)
}

// Lookup resolves name to a classified nutrition record. It never returns an
// error: provider failures degrade to a fallback record and unexpected panics
// to an error-tagged one.
//
// Flow: non-food gate -> cache -> providers in parallel -> rank -> merge ->
// classify -> cache write. Only results with provider data are cached.
func (s *NutritionService) Lookup(ctx context.Context, name string, limit int) (result domain.LookupResult) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("lookup panicked", zap.String("name", name), zap.Any("panic", r))
			result = s.errorResult(name)
		}
	}()

	if limit <= 0 {
		limit = s.pageSize
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return s.fallbackResult(name)
	}

	if category, nonFood := s.classifier.Gate(trimmed); nonFood {
		s.logger.Debug("non-food item", zap.String("name", trimmed), zap.String("category", string(category)))
		return domain.LookupResult{
			Query:      trimmed,
			Category:   category,
			IsFood:     false,
			Nutrition:  domain.DefaultNutritionRecord(),
			ResolvedAt: s.now(),
		}
	}

	query := s.preprocessor.Normalize(trimmed)
	key := cacheKey(query, limit)

	if cached, err := s.cache.Get(ctx, key); err == nil {
		return cached
	} else if !errors.Is(err, domain.ErrCacheMiss) {
		s.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}

	// The shared resolve outlives any one caller so that a cancelled caller
	// cannot hand a degraded result to the others waiting on the same key.
	ch := s.group.DoChan(key, func() (any, error) {
		return s.resolveShared(context.WithoutCancel(ctx), key, trimmed, query, limit), nil
	})
	select {
	case r := <-ch:
		if r.Shared {
			s.logger.Debug("joined in-flight lookup", zap.String("key", key))
		}
		return r.Val.(domain.LookupResult)
	case <-ctx.Done():
		s.logger.Debug("lookup abandoned by caller", zap.String("key", key), zap.Error(ctx.Err()))
		return s.fallbackResult(trimmed)
	}
}

// resolveShared runs inside the singleflight group. A panic escaping DoChan
// would crash the process, so it is recovered here.
func (s *NutritionService) resolveShared(ctx context.Context, key, name, query string, limit int) (result domain.LookupResult) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("shared lookup panicked", zap.String("name", name), zap.Any("panic", r))
			result = s.errorResult(name)
		}
	}()

	result = s.resolve(ctx, name, query, limit)
	if result.Nutrition.Source.Resolved() {
		if err := s.cache.Set(ctx, key, result, s.cacheTTL); err != nil {
			s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return result
}

// ClearCache drops every cached lookup
func (s *NutritionService) ClearCache(ctx context.Context) error {
	return s.cache.Clear(ctx)
}

// LookupScaled resolves name and scales its nutrition to amount of unit
func (s *NutritionService) LookupScaled(ctx context.Context, name string, amount float64, unit string) domain.LookupResult {
	result := s.QuickLookup(ctx, name)
	if result.IsFood && amount > 0 {
		result.Nutrition = ScaleToAmount(result.Nutrition, amount, unit)
	}
	return result
}

// resolve queries both providers concurrently and merges what they return.
// Each provider is isolated: an error or panic in one only drops its data.
func (s *NutritionService) resolve(ctx context.Context, name, query string, limit int) (result domain.LookupResult) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("resolve panicked", zap.String("name", name), zap.Any("panic", r))
			result = s.errorResult(name)
		}
	}()

	var (
		primary, secondary       *domain.ProviderResult
		primaryErr, secondaryErr error
	)

	var g errgroup.Group
	g.Go(func() error {
		primary, primaryErr = s.searchPrimary(ctx, query, limit)
		return nil
	})
	g.Go(func() error {
		secondary, secondaryErr = s.searchSecondary(ctx, query, limit)
		return nil
	})
	_ = g.Wait()

	if errors.Is(primaryErr, errProviderPanic) || errors.Is(secondaryErr, errProviderPanic) {
		return s.errorResult(name)
	}
	s.logProviderError("primary", query, primaryErr)
	s.logProviderError("secondary", query, secondaryErr)

	providerCategory := ""
	result = domain.LookupResult{Query: name, ResolvedAt: s.now()}
	for _, p := range []*domain.ProviderResult{secondary, primary} {
		if p == nil {
			continue
		}
		result.ProductName = p.Name
		result.Brand = p.Brand
		if p.Category != "" {
			providerCategory = p.Category
		}
	}

	if primary == nil && secondary == nil {
		result.Nutrition = domain.DefaultNutritionRecord()
		result.Nutrition.Source = domain.SourceFallback
	} else {
		result.Nutrition = Merge(primary, secondary)
	}

	classification := s.classifier.Classify(name, providerCategory)
	result.Category = classification.Category
	result.IsFood = classification.IsFood

	s.logger.Info("lookup resolved",
		zap.String("name", name),
		zap.String("query", query),
		zap.String("source", string(result.Nutrition.Source)),
		zap.String("category", string(result.Category)))
	return result
}

var errProviderPanic = errors.New("provider panicked")

func (s *NutritionService) searchPrimary(ctx context.Context, query string, limit int) (res *domain.ProviderResult, err error) {
	if s.primary == nil {
		return nil, domain.ErrProviderDisabled
	}
	defer recoverProvider(&err)

	products, err := s.primary.SearchProducts(ctx, domain.PrimarySearchRequest{
		Query:        query,
		PageSize:     limit,
		LocationHint: s.locationHint,
	})
	if err != nil {
		return nil, err
	}

	names := make([]string, len(products))
	for i, p := range products {
		names[i] = p.Name
	}
	best := s.ranker.Best(query, names)
	if best < 0 {
		return nil, domain.ErrProductNotFound
	}
	r := retail.ToProviderResult(products[best])
	return &r, nil
}

func (s *NutritionService) searchSecondary(ctx context.Context, query string, limit int) (res *domain.ProviderResult, err error) {
	if s.secondary == nil {
		return nil, domain.ErrProviderDisabled
	}
	defer recoverProvider(&err)

	foods, err := s.secondary.SearchFoods(ctx, domain.SecondarySearchRequest{
		Query:    query,
		PageSize: min(limit, s.secondarySize),
	})
	if err != nil {
		return nil, err
	}

	names := make([]string, len(foods))
	for i, f := range foods {
		names[i] = f.Description
	}
	best := s.ranker.Best(query, names)
	if best < 0 {
		return nil, domain.ErrProductNotFound
	}
	r := usda.ToProviderResult(foods[best])
	return &r, nil
}

func recoverProvider(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: %v", errProviderPanic, r)
	}
}

func (s *NutritionService) logProviderError(provider, query string, err error) {
	switch {
	case err == nil, errors.Is(err, domain.ErrProviderDisabled):
	case errors.Is(err, domain.ErrProductNotFound):
		s.logger.Debug("provider returned no data", zap.String("provider", provider), zap.String("query", query))
	default:
		s.logger.Warn("provider failed", zap.String("provider", provider), zap.String("query", query), zap.Error(err))
	}
}

func (s *NutritionService) fallbackResult(name string) domain.LookupResult {
	record := domain.DefaultNutritionRecord()
	record.Source = domain.SourceFallback
	return domain.LookupResult{
		Query:      strings.TrimSpace(name),
		Category:   domain.CategoryOther,
		IsFood:     true,
		Nutrition:  record,
		ResolvedAt: s.now(),
	}
}

// errorResult keeps classification when it can; the classifier itself may
// be what failed
func (s *NutritionService) errorResult(name string) (result domain.LookupResult) {
	record := domain.DefaultNutritionRecord()
	record.Source = domain.SourceError
	result = domain.LookupResult{
		Query:      strings.TrimSpace(name),
		Category:   domain.CategoryOther,
		IsFood:     true,
		Nutrition:  record,
		ResolvedAt: s.now(),
	}
	defer func() { _ = recover() }()
	c := s.classifier.Classify(name, "")
	result.Category, result.IsFood = c.Category, c.IsFood
	return result
}

// cacheKey is the full query signature: normalized term plus result limit
func cacheKey(query string, limit int) string {
	return fmt.Sprintf("nutrition:%s:%d", query, limit)
}
