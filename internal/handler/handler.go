// Package handler provides the HTTP handlers for the storefront API.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"storefront-proxy/internal/model"
	"storefront-proxy/internal/wcv3"
	"storefront-proxy/internal/woocommerce"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	store         *woocommerce.Client // Store API: cart session operations
	catalog       *wcv3.Client        // wc/v3: products and orders
	validate      *validator.Validate
	paymentMethod string
	logger        *slog.Logger
}

// New creates a Handler wired to both WooCommerce APIs.
func New(store *woocommerce.Client, catalog *wcv3.Client, paymentMethod string, logger *slog.Logger) *Handler {
	return &Handler{
		store:         store,
		catalog:       catalog,
		validate:      validator.New(validator.WithRequiredStructEnabled()),
		paymentMethod: paymentMethod,
		logger:        logger,
	}
}

// RegisterRoutes registers all HTTP routes with the given ServeMux.
// Uses Go 1.22+ method routing patterns.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Cart operations (Store API, session via cart_token cookie)
	mux.HandleFunc("GET /api/cart", h.handleGetCart)
	mux.HandleFunc("POST /api/cart/items", h.handleAddItem)
	mux.HandleFunc("PUT /api/cart/items/{key}", h.handleUpdateItem)
	mux.HandleFunc("DELETE /api/cart/items/{key}", h.handleRemoveItem)

	// Products (wc/v3)
	mux.HandleFunc("GET /api/products/{id}", h.handleGetProduct)

	// Orders (wc/v3)
	mux.HandleFunc("POST /api/orders", h.handleCreateOrder)
	mux.HandleFunc("GET /api/orders/{id}", h.handleGetOrder)

	// Health checks
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.HandleFunc("GET /healthz", h.handleHealth)
}

// handleHealth returns a simple health check response.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

type healthResponse struct {
	Status string `json:"status"`
}

// === Response Helpers ===

// writeJSON sends a JSON response with the given status code.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

// writeError sends an error response, extracting status/code from APIError
// if present. Uses errors.As() to unwrap error chains.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError

	if !errors.As(err, &apiErr) {
		apiErr = &model.APIError{
			Code:       "INTERNAL_ERROR",
			Message:    "an internal error occurred",
			StatusCode: http.StatusInternalServerError,
		}
		h.logger.Error("internal error", slog.String("error", err.Error()))
	}

	h.writeJSON(w, apiErr.StatusCode, errorResponse{
		Error: errorBody{
			Code:    apiErr.Code,
			Message: apiErr.Message,
		},
	})
}

// errorResponse is the JSON structure for error responses.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MaxRequestBodySize limits JSON request bodies to 1MB.
const MaxRequestBodySize = 1 << 20

// decodeJSON reads JSON from the request body into v and runs struct
// validation. Returns an APIError on malformed JSON or failed validation.
func (h *Handler) decodeJSON(r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(nil, r.Body, MaxRequestBodySize)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		// Don't expose decoder internals to the client
		return model.NewValidationError("body", "invalid JSON")
	}

	if err := h.validate.Struct(v); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) && len(invalid) > 0 {
			return model.NewValidationError(invalid[0].Field(), "failed '"+invalid[0].Tag()+"' validation")
		}
		return model.NewValidationError("body", "validation failed")
	}
	return nil
}
