package wcv3

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"storefront-proxy/internal/addons"
	"storefront-proxy/internal/model"
	"storefront-proxy/internal/transport"
)

// apiPath is the base path for wc/v3 endpoints.
const apiPath = "/wp-json/wc/v3"

const userAgent = "storefront-proxy/1.0"

// Config holds wc/v3 client configuration. The consumer key/secret pair is
// the REST API credential created in WooCommerce admin; it authenticates
// via Basic Auth over HTTPS.
type Config struct {
	StoreURL       string
	ConsumerKey    string
	ConsumerSecret string
	Timeout        time.Duration
}

// Client talks to the authenticated wc/v3 API.
type Client struct {
	httpClient     *http.Client
	storeURL       string
	consumerKey    string
	consumerSecret string
}

// New creates a wc/v3 client.
func New(cfg Config) (*Client, error) {
	if cfg.StoreURL == "" {
		return nil, fmt.Errorf("store URL is required")
	}
	if cfg.ConsumerKey == "" || cfg.ConsumerSecret == "" {
		return nil, fmt.Errorf("consumer key and secret are required")
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport.NewBrowserTransport(timeout),
		},
		storeURL:       strings.TrimSuffix(cfg.StoreURL, "/"),
		consumerKey:    cfg.ConsumerKey,
		consumerSecret: cfg.ConsumerSecret,
	}, nil
}

// GetProduct fetches a product by ID, including its meta_data (where the
// add-on schema lives).
func (c *Client) GetProduct(ctx context.Context, id int) (*Product, error) {
	var product Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// GetVariations fetches the variations of a variable product.
func (c *Client) GetVariations(ctx context.Context, productID int) ([]ProductVariation, error) {
	var variations []ProductVariation
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d/variations?per_page=100", productID), nil, &variations); err != nil {
		return nil, err
	}
	return variations, nil
}

// CreateOrder creates an order with explicit line totals.
func (c *Client) CreateOrder(ctx context.Context, req *OrderRequest) (*Order, error) {
	var order Order
	if err := c.do(ctx, http.MethodPost, "/orders", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrder fetches an order by ID.
func (c *Client) GetOrder(ctx context.Context, id int) (*Order, error) {
	var order Order
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d", id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// AddonFields extracts the product's add-on schema from its meta_data.
// Returns nil when the product has no add-ons.
func (p *Product) AddonFields() ([]addons.Field, error) {
	for _, m := range p.MetaData {
		if m.Key == productAddonsMetaKey {
			return addons.ParseSchema(m.Value)
		}
	}
	return nil, nil
}

// PriceCents returns the product's current price in cents.
func (p *Product) PriceCents() int64 {
	return model.ParseCents(p.Price)
}

// do executes one wc/v3 request and decodes the response into out.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling %s request: %w", path, err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.storeURL+apiPath+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.SetBasicAuth(c.consumerKey, c.consumerSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.NewUpstreamError("WooCommerce", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading %s response: %w", path, err)
	}
	if resp.StatusCode >= 400 {
		return parseErrorResponse(resp.StatusCode, respBody)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("parsing %s response: %w", path, err)
		}
	}
	return nil
}

// parseErrorResponse converts a wc/v3 error to an APIError.
func parseErrorResponse(statusCode int, body []byte) error {
	var wcErr apiError
	json.Unmarshal(body, &wcErr) // best effort

	switch statusCode {
	case http.StatusNotFound:
		return model.NewNotFoundError("resource")
	case http.StatusUnauthorized, http.StatusForbidden:
		return model.NewUnauthorizedError("wc/v3 authentication failed")
	case http.StatusBadRequest:
		msg := wcErr.Message
		if msg == "" {
			msg = "invalid request"
		}
		return model.NewValidationError("request", msg)
	case http.StatusTooManyRequests:
		return model.NewRateLimitError("WooCommerce")
	default:
		return model.NewUpstreamError("WooCommerce",
			fmt.Errorf("status %d: %s - %s", statusCode, wcErr.Code, wcErr.Message))
	}
}
