package woocommerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"storefront-proxy/internal/model"
	"storefront-proxy/internal/transport"
)

// =============================================================================
// NONCE AUTHENTICATION
// =============================================================================
//
// The Store API requires a "Nonce" header on every mutation (POST, PUT,
// DELETE). The nonce is a browser-storefront CSRF measure, not an API key:
// the only way to obtain one server-side is to read it off a response
// header.
//
// Strategy: preflight every mutation with GET /cart, take the Nonce header
// from the response, and use it immediately. This keeps the proxy stateless
// (no nonce cache, no expiry tracking) at the cost of one extra HTTP call
// per mutation.
//
// Cart sessions bind to the Cart-Token header. The proxy generates its own
// token per browser session (see handler cookie management) because letting
// WooCommerce assign one causes session reuse across unrelated visitors.
// =============================================================================

// storeAPIPath is the base path for Store API endpoints.
const storeAPIPath = "/wp-json/wc/store/v1"

// userAgent identifies this service to the upstream. WooCommerce hosts
// behind CDNs rate-limit requests without one.
const userAgent = "storefront-proxy/1.0"

// Config holds Store API client configuration.
type Config struct {
	StoreURL string
	Timeout  time.Duration
}

// Client talks to the WooCommerce Store API. Requires the WooCommerce
// Blocks plugin (bundled since WC 6.9) for the /wc/store/v1 routes.
type Client struct {
	httpClient *http.Client
	storeURL   string
}

// New creates a Store API client.
func New(cfg Config) (*Client, error) {
	if cfg.StoreURL == "" {
		return nil, fmt.Errorf("store URL is required")
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	// Browser-fingerprint transport: several WooCommerce hosts sit behind
	// WAFs that throttle Go's default TLS ClientHello.
	return &Client{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport.NewBrowserTransport(timeout),
		},
		storeURL: strings.TrimSuffix(cfg.StoreURL, "/"),
	}, nil
}

// NewCartToken generates a cart token for a fresh browser session.
func NewCartToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// GetCart fetches the cart bound to a token.
//
// Uses a no-op POST /cart/update-customer mutation instead of GET /cart:
// WooCommerce's Cart-Token session handling is unreliable for GETs and may
// return empty or stale carts, but mutation responses always carry the
// correct cart state.
func (c *Client) GetCart(ctx context.Context, cartToken string) (*WooCartResponse, string, error) {
	return c.cartMutation(ctx, "/cart/update-customer", map[string]interface{}{}, cartToken)
}

// AddItem adds a product with its formatted add-on configuration.
func (c *Client) AddItem(ctx context.Context, cartToken string, req *WooCartAddRequest) (*WooCartResponse, string, error) {
	return c.cartMutation(ctx, "/cart/add-item", req, cartToken)
}

// UpdateItem changes the quantity of a cart item.
func (c *Client) UpdateItem(ctx context.Context, cartToken, key string, quantity int) (*WooCartResponse, string, error) {
	return c.cartMutation(ctx, "/cart/update-item", &WooCartUpdateRequest{Key: key, Quantity: quantity}, cartToken)
}

// RemoveItem removes a cart item by its key.
func (c *Client) RemoveItem(ctx context.Context, cartToken, key string) (*WooCartResponse, string, error) {
	return c.cartMutation(ctx, "/cart/remove-item", &WooCartRemoveRequest{Key: key}, cartToken)
}

// cartMutation executes a Store API cart mutation with nonce preflight and
// returns the resulting cart state plus the effective cart token.
func (c *Client) cartMutation(ctx context.Context, path string, body interface{}, cartToken string) (*WooCartResponse, string, error) {
	nonce, effectiveToken, err := c.fetchNonce(ctx, cartToken)
	if err != nil {
		return nil, "", fmt.Errorf("nonce preflight: %w", err)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, "", fmt.Errorf("marshaling %s request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.storeURL+storeAPIPath+path, bytes.NewReader(payload))
	if err != nil {
		return nil, "", fmt.Errorf("creating %s request: %w", path, err)
	}
	c.setHeaders(req, effectiveToken, nonce)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", model.NewUpstreamError("WooCommerce", err)
	}
	defer resp.Body.Close()

	returnedToken := resp.Header.Get("Cart-Token")
	if returnedToken == "" {
		returnedToken = effectiveToken
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("reading %s response: %w", path, err)
	}
	if resp.StatusCode >= 400 {
		return nil, "", parseErrorResponse(resp.StatusCode, respBody)
	}

	var cart WooCartResponse
	if err := json.Unmarshal(respBody, &cart); err != nil {
		return nil, "", fmt.Errorf("parsing cart response: %w", err)
	}

	// Prefer the token we were asked to use. WooCommerce sometimes echoes a
	// different session token even when ours is valid.
	if cartToken != "" {
		returnedToken = cartToken
	}
	return &cart, returnedToken, nil
}

// fetchNonce performs the preflight GET /cart to obtain a fresh nonce.
// Returns the nonce and the cart token to use for the following mutation.
func (c *Client) fetchNonce(ctx context.Context, cartToken string) (nonce, effectiveToken string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.storeURL+storeAPIPath+"/cart", nil)
	if err != nil {
		return "", "", fmt.Errorf("creating nonce request: %w", err)
	}
	c.setHeaders(req, cartToken, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", "", model.NewUpstreamError("WooCommerce", err)
	}
	defer resp.Body.Close()

	// Drain for connection reuse
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		if resp.StatusCode == http.StatusTooManyRequests {
			return "", "", model.NewRateLimitError("WooCommerce")
		}
		return "", "", model.NewUpstreamError("WooCommerce",
			fmt.Errorf("nonce preflight failed with status %d", resp.StatusCode))
	}

	nonce = resp.Header.Get("Nonce")
	if nonce == "" {
		return "", "", model.NewUpstreamError("WooCommerce",
			fmt.Errorf("no nonce returned from Store API"))
	}

	effectiveToken = cartToken
	if effectiveToken == "" {
		effectiveToken = resp.Header.Get("Cart-Token")
	}
	return nonce, effectiveToken, nil
}

// setHeaders sets Store API headers. The Store API uses Cart-Token for
// session and Nonce for mutation auth; it does NOT use Basic Auth (that is
// the wc/v3 API).
func (c *Client) setHeaders(req *http.Request, cartToken, nonce string) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if cartToken != "" {
		req.Header.Set("Cart-Token", cartToken)
	}
	if nonce != "" {
		req.Header.Set("Nonce", nonce)
	}
}

// parseErrorResponse converts a Store API error body to an APIError.
func parseErrorResponse(statusCode int, body []byte) error {
	var wcErr WooErrorResponse
	json.Unmarshal(body, &wcErr) // best effort

	switch statusCode {
	case http.StatusNotFound:
		return model.NewNotFoundError("cart item")
	case http.StatusUnauthorized, http.StatusForbidden:
		return model.NewUnauthorizedError("WooCommerce authentication failed")
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
