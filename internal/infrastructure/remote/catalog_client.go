package remote

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/restodesk/pos-api/internal/config"
	"github.com/sirupsen/logrus"
)

// CatalogClient looks up stock levels and units of measure from the backend
// catalog. The cart ledger itself never depends on stock; callers consult
// this before adding an item.
type CatalogClient struct {
	http   *resty.Client
	logger *logrus.Logger
}

// NewCatalogClient creates a catalog client for the configured backend
func NewCatalogClient(cfg config.BackendConfig, logger *logrus.Logger) *CatalogClient {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(cfg.Timeout)

	if cfg.APIKey != "" {
		httpClient.SetHeader("Authorization", fmt.Sprintf("token %s:%s", cfg.APIKey, cfg.APISecret))
	}

	return &CatalogClient{http: httpClient, logger: logger}
}

// CheckStock returns the current stock level for an item
func (c *CatalogClient) CheckStock(ctx context.Context, itemCode string) (float64, error) {
	var out struct {
		Stock float64 `json:"stock"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("item_code", itemCode).
		SetResult(&out).
		Get("/api/pos/stock")
	if err != nil {
		return 0, err
	}
	if resp.StatusCode() != http.StatusOK {
		return 0, fmt.Errorf("catalog backend: %s", resp.Status())
	}
	return out.Stock, nil
}

// UnitsOfMeasure returns the units an item can be sold in
func (c *CatalogClient) UnitsOfMeasure(ctx context.Context, itemCode string) ([]string, error) {
	var out struct {
		Units []string `json:"units"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("item_code", itemCode).
		SetResult(&out).
		Get("/api/pos/uoms")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("catalog backend: %s", resp.Status())
	}
	return out.Units, nil
}
