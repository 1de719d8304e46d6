package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/larder/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(RequestIDMiddleware())
	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	if cfg.Server.RateLimit > 0 {
		router.Use(RateLimitMiddleware(NewIPRateLimiter(cfg.Server.RateLimit, cfg.Server.RateBurst)))
	}

	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		nutrition := v1.Group("/nutrition")
		{
			nutrition.POST("/lookup", handler.LookupNutrition)
			nutrition.POST("/scale", handler.ScaleNutrition)
		}

		v1.POST("/classify", handler.Classify)
		v1.POST("/inventory/match", handler.MatchInventory)
		v1.POST("/enrichment/run", handler.RunEnrichment)

		if !cfg.Server.IsProduction() {
			v1.DELETE("/cache", handler.ClearCache)
		}
	}

	return router
}
