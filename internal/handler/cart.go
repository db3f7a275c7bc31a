package handler

import (
	"log/slog"
	"net/http"

	"storefront-proxy/internal/addons"
	"storefront-proxy/internal/model"
	"storefront-proxy/internal/woocommerce"
)

// cartCookieName is the session cookie carrying the Store API cart token.
const cartCookieName = "cart_token"

// cartCookieMaxAge matches WooCommerce's 48h cart session lifetime.
const cartCookieMaxAge = 48 * 60 * 60

// cartToken reads the session token from the request cookie.
func cartToken(r *http.Request) string {
	cookie, err := r.Cookie(cartCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// setCartCookie persists the session token on the browser.
func setCartCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     cartCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   cartCookieMaxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

// handleGetCart returns the current cart. A visitor without a session gets
// an empty cart; no upstream call and no session is created for them.
func (h *Handler) handleGetCart(w http.ResponseWriter, r *http.Request) {
	token := cartToken(r)
	if token == "" {
		h.writeJSON(w, http.StatusOK, &model.Cart{Items: []model.CartItem{}})
		return
	}

	wooCart, effectiveToken, err := h.store.GetCart(r.Context(), token)
	if err != nil {
		h.writeError(w, err)
		return
	}

	setCartCookie(w, effectiveToken)
	h.writeJSON(w, http.StatusOK, woocommerce.CartToModel(wooCart, effectiveToken, h.logger))
}

// addItemRequest is the add-to-cart payload. Addons carry the raw
// storefront selections; they are resolved against the product's add-on
// schema before being forwarded upstream.
type addItemRequest struct {
	ProductID int                `json:"product_id" validate:"required,gt=0"`
	Quantity  int                `json:"quantity" validate:"required,gt=0"`
	Addons    []addons.Selection `json:"addons" validate:"omitempty,dive"`
}

// handleAddItem adds a product to the cart. Selections are validated
// against the product's add-on schema and converted to the
// addons_configuration wire format the Product Add-Ons plugin expects.
func (h *Handler) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	wooReq := &woocommerce.WooCartAddRequest{
		ID:       req.ProductID,
		Quantity: req.Quantity,
	}

	if len(req.Addons) > 0 {
		product, err := h.catalog.GetProduct(r.Context(), req.ProductID)
		if err != nil {
			h.writeError(w, err)
			return
		}
		fields, err := product.AddonFields()
		if err != nil {
			h.writeError(w, model.NewUpstreamError("WooCommerce", err))
			return
		}
		if len(fields) == 0 {
			h.writeError(w, model.NewValidationError("addons", "product has no add-on fields"))
			return
		}

		config, err := addons.BuildConfiguration(req.ProductID, fields, req.Addons)
		if err != nil {
			h.writeError(w, err)
			return
		}
		wooReq.AddonsConfiguration = config
	}

	token := cartToken(r)
	if token == "" {
		token = woocommerce.NewCartToken()
	}

	wooCart, effectiveToken, err := h.store.AddItem(r.Context(), token, wooReq)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.logger.Info("item added to cart",
		slog.Int("product_id", req.ProductID),
		slog.Int("quantity", req.Quantity),
		slog.Int("addons", len(req.Addons)),
	)

	setCartCookie(w, effectiveToken)
	h.writeJSON(w, http.StatusCreated, woocommerce.CartToModel(wooCart, effectiveToken, h.logger))
}

type updateItemRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

// handleUpdateItem changes the quantity of a cart line.
func (h *Handler) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if key == "" {
		h.writeError(w, model.NewValidationError("key", "cart item key is required"))
		return
	}

	token := cartToken(r)
	if token == "" {
		h.writeError(w, model.NewNotFoundError("cart session"))
		return
	}

	var req updateItemRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	wooCart, effectiveToken, err := h.store.UpdateItem(r.Context(), token, key, req.Quantity)
	if err != nil {
		h.writeError(w, err)
		return
	}

	setCartCookie(w, effectiveToken)
	h.writeJSON(w, http.StatusOK, woocommerce.CartToModel(wooCart, effectiveToken, h.logger))
}

// handleRemoveItem removes a cart line by its key.
func (h *Handler) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if key == "" {
		h.writeError(w, model.NewValidationError("key", "cart item key is required"))
		return
	}

	token := cartToken(r)
	if token == "" {
		h.writeError(w, model.NewNotFoundError("cart session"))
		return
	}

	wooCart, effectiveToken, err := h.store.RemoveItem(r.Context(), token, key)
	if err != nil {
		h.writeError(w, err)
		return
	}

	setCartCookie(w, effectiveToken)
	h.writeJSON(w, http.StatusOK, woocommerce.CartToModel(wooCart, effectiveToken, h.logger))
}
