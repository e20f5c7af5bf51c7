package api

// CATALOG API CLIENT

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// Client talks to the platform catalog service, which owns product
// configuration. The pricing service only needs the per-side real-world
// dimensions for pixel-to-millimeter conversion.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

// ProductSide is a printable face of a product as the catalog describes
// it. WidthMM/HeightMM may be zero when the product was registered without
// physical measurements.
type ProductSide struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	WidthMM  float64 `json:"width_mm"`
	HeightMM float64 `json:"height_mm"`
}

func NewClient(baseURL, token string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// GetProductSides fetches the printable sides of a product, with their
// real-world dimensions in millimeters.
func (c *Client) GetProductSides(ctx context.Context, productID string) ([]ProductSide, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		"GET",
		fmt.Sprintf("%s/api/products/%s/sides", c.baseURL, url.PathEscape(productID)),
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var sides []ProductSide
	if err := json.NewDecoder(resp.Body).Decode(&sides); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return sides, nil
}
