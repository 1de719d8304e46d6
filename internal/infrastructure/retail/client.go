package retail

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/larder/backend/internal/domain"
)

// ClientConfig holds settings for the retail catalog client
type ClientConfig struct {
	BaseURL      string
	APIToken     string
	LocationHint string
	Timeout      time.Duration
	RetryCount   int
}

// Client searches a retail product catalog. It implements domain.PrimaryProvider.
type Client struct {
	http         *resty.Client
	locationHint string
	logger       *zap.Logger
}

// NewClient creates a new retail catalog client
func NewClient(cfg ClientConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "Larder/1.0").
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(250 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= http.StatusInternalServerError
		})
	if cfg.APIToken != "" {
		httpClient.SetAuthToken(cfg.APIToken)
	}

	return &Client{
		http:         httpClient,
		locationHint: cfg.LocationHint,
		logger:       logger.Named("retail"),
	}
}

// productsResponse is the subset of the catalog search payload we consume
type productsResponse struct {
	Data []product `json:"data"`
}

type product struct {
	ProductID       string            `json:"productId"`
	Description     string            `json:"description"`
	Brand           string            `json:"brand"`
	Categories      []string          `json:"categories"`
	Price           *domain.PriceInfo `json:"price,omitempty"`
	NutritionLabels map[string]any    `json:"nutritionLabels,omitempty"`
}

// SearchProducts searches the catalog by free-text term
func (c *Client) SearchProducts(ctx context.Context, req domain.PrimarySearchRequest) ([]domain.PrimaryProduct, error) {
	if req.Query == "" {
		return nil, domain.ErrInvalidRequest
	}
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 5
	}
	location := req.LocationHint
	if location == "" {
		location = c.locationHint
	}

	params := map[string]string{
		"filter.term":  req.Query,
		"filter.limit": strconv.Itoa(pageSize),
	}
	if location != "" {
		params["filter.locationId"] = location
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get("/v1/products")
	if err != nil {
		c.logger.Warn("request error", zap.String("query", req.Query), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return nil, domain.ErrProductNotFound
	case resp.StatusCode() != http.StatusOK:
		c.logger.Warn("api error",
			zap.String("query", req.Query),
			zap.Int("status", resp.StatusCode()))
		return nil, fmt.Errorf("%w: status %d", domain.ErrProviderFailure, resp.StatusCode())
	}

	var body productsResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrProviderFailure, err)
	}
	if len(body.Data) == 0 {
		return nil, domain.ErrProductNotFound
	}

	c.logger.Debug("products found", zap.String("query", req.Query), zap.Int("count", len(body.Data)))
	return mapProducts(body.Data), nil
}

// mapProducts converts API products to the provider-neutral shape. Label
// values may arrive as strings or numbers; both are kept as strings.
func mapProducts(products []product) []domain.PrimaryProduct {
	out := make([]domain.PrimaryProduct, 0, len(products))
	for _, p := range products {
		labels := make(map[string]string, len(p.NutritionLabels))
		for k, v := range p.NutritionLabels {
			switch val := v.(type) {
			case string:
				labels[k] = val
			case float64:
				labels[k] = strconv.FormatFloat(val, 'f', -1, 64)
			}
		}
		category := ""
		if len(p.Categories) > 0 {
			category = p.Categories[0]
		}
		out = append(out, domain.PrimaryProduct{
			ID:              p.ProductID,
			Name:            p.Description,
			Brand:           p.Brand,
			CatalogCategory: category,
			Price:           p.Price,
			NutritionLabels: labels,
		})
	}
	return out
}
