package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/larder/backend/config"
	"github.com/larder/backend/internal/domain"
	"github.com/larder/backend/internal/infrastructure/cache"
	"github.com/larder/backend/internal/infrastructure/logger"
	"github.com/larder/backend/internal/infrastructure/retail"
	"github.com/larder/backend/internal/infrastructure/store"
	"github.com/larder/backend/internal/infrastructure/usda"
	"github.com/larder/backend/internal/usecase"
)

// app holds the wired components shared by every subcommand
type app struct {
	cfg       *config.Config
	logger    *zap.Logger
	nutrition *usecase.NutritionService
	enricher  *usecase.Enricher
	store     domain.ItemStore
	job       *usecase.EnrichmentJob
	closers   []func() error
}

// newApp loads configuration and wires every component. The item store is
// only connected when needStore is set and a DSN is configured.
func newApp(ctx context.Context, needStore bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Development: !cfg.Server.IsProduction(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(log)

	a := &app{cfg: cfg, logger: log}

	cacheRepo, err := a.newCache(ctx)
	if err != nil {
		return nil, err
	}

	var primary domain.PrimaryProvider
	if cfg.Primary.Enabled {
		primary = retail.NewClient(retail.ClientConfig{
			BaseURL:      cfg.Primary.BaseURL,
			APIToken:     cfg.Primary.APIToken,
			LocationHint: cfg.Primary.LocationHint,
			Timeout:      cfg.Primary.Timeout,
			RetryCount:   cfg.Primary.RetryCount,
		}, log)
	} else {
		log.Warn("primary provider disabled")
	}

	var secondary domain.SecondaryProvider
	if cfg.Secondary.Enabled {
		secondary = usda.NewClient(usda.ClientConfig{
			APIKey:          cfg.Secondary.APIKey,
			BaseURL:         cfg.Secondary.BaseURL,
			RequestsPerHour: cfg.Secondary.RequestsPerHour,
			Timeout:         cfg.Secondary.Timeout,
		}, log)
	} else {
		log.Warn("secondary provider disabled")
	}

	a.nutrition = usecase.NewNutritionService(cacheRepo, primary, secondary, usecase.NutritionServiceConfig{
		CacheTTL:          cfg.Cache.TTL,
		PageSize:          cfg.Primary.PageSize,
		SecondaryPageSize: cfg.Secondary.PageSize,
		LocationHint:      cfg.Primary.LocationHint,
		Ranker:            usecase.RankerConfig{EnableFuzzyMatching: true, FuzzyEditDistance: 1},
	}, log)
	a.enricher = usecase.NewEnricher(a.nutrition, cfg.Enrichment.StaggerInterval, log)

	if needStore && cfg.Database.DSN != "" {
		db, err := store.Connect(ctx, store.Config{
			DSN:          cfg.Database.DSN,
			MaxOpenConns: cfg.Database.MaxOpenConns,
			MaxIdleConns: cfg.Database.MaxIdleConns,
		})
		if err != nil {
			a.close()
			return nil, err
		}
		if sqlDB, err := db.DB(); err == nil {
			a.closers = append(a.closers, sqlDB.Close)
		}
		repo := store.NewItemRepository(db)
		a.store = repo
		a.job = usecase.NewEnrichmentJob(repo, a.enricher, cfg.Enrichment.BatchSize, log)
		log.Info("item store connected")
	}

	log.Info("components initialized",
		zap.String("environment", cfg.Server.Environment),
		zap.String("cache", cfg.Cache.Type),
		zap.Duration("cache_ttl", cfg.Cache.TTL),
		zap.Bool("primary", cfg.Primary.Enabled),
		zap.Bool("secondary", cfg.Secondary.Enabled),
		zap.Duration("stagger", cfg.Enrichment.StaggerInterval),
		zap.Bool("store", a.store != nil),
	)
	return a, nil
}

func (a *app) newCache(ctx context.Context) (domain.CacheRepository, error) {
	if a.cfg.Cache.Type != "redis" {
		return cache.NewMemoryCache(), nil
	}
	redisCache, err := cache.NewRedisCacheFromURL(ctx, a.cfg.Cache.RedisURL, a.cfg.Cache.KeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	a.closers = append(a.closers, redisCache.Close)
	return redisCache, nil
}

// close releases connections and flushes the logger
func (a *app) close() {
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			a.logger.Warn("close failed", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}
