package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/larder/backend/internal/domain"
	"github.com/larder/backend/internal/usecase"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// Handler holds dependencies for HTTP handlers
type Handler struct {
	nutrition *usecase.NutritionService
	enricher  *usecase.Enricher
	store     domain.ItemStore
	job       *usecase.EnrichmentJob
	logger    *zap.Logger
}

// NewHandler creates a new HTTP handler. The item store is attached separately
// because it is optional.
func NewHandler(nutrition *usecase.NutritionService, enricher *usecase.Enricher, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		nutrition: nutrition,
		enricher:  enricher,
		logger:    logger.Named("http"),
	}
}

// AttachStore enables the endpoints that read or write stored items
func (h *Handler) AttachStore(store domain.ItemStore, job *usecase.EnrichmentJob) {
	h.store = store
	h.job = job
}

// LookupRequest asks for the nutrition of one item name
type LookupRequest struct {
	Name  string `json:"name" binding:"required"`
	Limit int    `json:"limit" binding:"gte=0"`
}

// ScaleRequest asks for nutrition scaled to an amount of a unit
type ScaleRequest struct {
	Name   string  `json:"name" binding:"required"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Unit   string  `json:"unit"`
}

// ScaleResponse is a scaled lookup plus the gram weight it was scaled to.
// Estimated is set when the unit is a count or unrecognized and the weight
// uses the per-item approximation.
type ScaleResponse struct {
	domain.LookupResult
	Grams     float64 `json:"grams"`
	Estimated bool    `json:"estimated"`
}

// ClassifyRequest asks for the category of one item name
type ClassifyRequest struct {
	Name string `json:"name" binding:"required"`
}

// InventoryMatchRequest looks a name up in an inventory. When Inventory is
// empty and UserID is set, the user's stored items are searched instead.
type InventoryMatchRequest struct {
	Name      string                  `json:"name" binding:"required"`
	Inventory []domain.InventoryEntry `json:"inventory"`
	UserID    string                  `json:"userId"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	body := gin.H{
		"status":  "healthy",
		"service": "larder-backend",
		"version": Version,
		"store":   h.store != nil,
	}
	if h.enricher != nil {
		body["enrichmentsInFlight"] = h.enricher.InFlight()
	}
	c.JSON(http.StatusOK, body)
}

// LookupNutrition resolves nutrition and category for an item name
func (h *Handler) LookupNutrition(c *gin.Context) {
	if !h.requireNutrition(c) {
		return
	}

	var req LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result := h.nutrition.Lookup(c.Request.Context(), req.Name, req.Limit)
	c.JSON(http.StatusOK, result)
}

// ScaleNutrition resolves an item and scales its nutrition to the given amount
func (h *Handler) ScaleNutrition(c *gin.Context) {
	if !h.requireNutrition(c) {
		return
	}

	var req ScaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result := h.nutrition.LookupScaled(c.Request.Context(), req.Name, req.Amount, req.Unit)
	c.JSON(http.StatusOK, ScaleResponse{
		LookupResult: result,
		Grams:        usecase.ToGrams(req.Amount, req.Unit),
		Estimated:    !usecase.IsKnownUnit(req.Unit),
	})
}

// Classify returns the shopping category of an item name without touching providers
func (h *Handler) Classify(c *gin.Context) {
	if !h.requireNutrition(c) {
		return
	}

	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	c.JSON(http.StatusOK, h.nutrition.Classifier().Classify(req.Name, ""))
}

// MatchInventory finds the first inventory entry whose name overlaps the requested one
func (h *Handler) MatchInventory(c *gin.Context) {
	var req InventoryMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	inventory := req.Inventory
	if len(inventory) == 0 && strings.TrimSpace(req.UserID) != "" {
		if h.store == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "item store not configured"})
			return
		}
		stored, err := h.store.ListInventory(c.Request.Context(), req.UserID)
		if err != nil {
			h.logger.Error("list inventory failed", zap.String("user_id", req.UserID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load inventory"})
			return
		}
		inventory = stored
	}

	match, ok := usecase.FindInventoryMatch(req.Name, inventory)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrNoInventoryMatch.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"match": match})
}

// RunEnrichment enriches one batch of stored items that have no nutrition yet
func (h *Handler) RunEnrichment(c *gin.Context) {
	if h.job == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "item store not configured"})
		return
	}

	summary, err := h.job.RunPending(c.Request.Context())
	if err != nil {
		h.logger.Error("enrichment run failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "enrichment run failed"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ClearCache drops every cached lookup
func (h *Handler) ClearCache(c *gin.Context) {
	if !h.requireNutrition(c) {
		return
	}

	if err := h.nutrition.ClearCache(c.Request.Context()); err != nil {
		h.logger.Error("cache clear failed", zap.Error(err))
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrCacheUnavailable) {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"error": "failed to clear cache"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) requireNutrition(c *gin.Context) bool {
	if h.nutrition == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "nutrition service not configured"})
		return false
	}
	return true
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
}
