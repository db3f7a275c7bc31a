package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"storefront-proxy/internal/model"
	"storefront-proxy/internal/wcv3"
	"storefront-proxy/internal/woocommerce"
)

// createOrderRequest is the checkout payload. The cart itself comes from
// the session; the client supplies only addresses and an optional note.
type createOrderRequest struct {
	Billing      *model.Address `json:"billing" validate:"required"`
	Shipping     *model.Address `json:"shipping"`
	CustomerNote string         `json:"customer_note"`
}

// handleCreateOrder converts the session cart into a wc/v3 order.
//
// The cart is re-fetched and re-normalized at order time so line totals
// reflect the latest add-on prices; the order lines carry explicit
// subtotal/total and one meta_data entry per add-on.
func (h *Handler) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	token := cartToken(r)
	if token == "" {
		h.writeError(w, model.NewNotFoundError("cart session"))
		return
	}

	var req createOrderRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.validate.Var(req.Billing.Email, "required,email"); err != nil {
		h.writeError(w, model.NewValidationError("billing.email", "a valid email address is required"))
		return
	}
	shipping := req.Shipping
	if shipping == nil {
		shipping = req.Billing
	}

	wooCart, effectiveToken, err := h.store.GetCart(r.Context(), token)
	if err != nil {
		h.writeError(w, err)
		return
	}
	cart := woocommerce.CartToModel(wooCart, effectiveToken, h.logger)
	if cart.IsEmpty() {
		h.writeError(w, model.NewValidationError("cart", "cart is empty"))
		return
	}

	orderReq := wcv3.BuildOrderRequest(cart, req.Billing, shipping, h.paymentMethod, req.CustomerNote)
	order, err := h.catalog.CreateOrder(r.Context(), orderReq)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.logger.Info("order created",
		slog.Int("order_id", order.ID),
		slog.String("status", order.Status),
		slog.String("total", order.Total),
		slog.Int("lines", len(order.LineItems)),
	)

	h.writeJSON(w, http.StatusCreated, orderResponse{
		Order:    order,
		Warnings: cart.Messages,
	})
}

// orderResponse pairs the created order with any normalization warnings
// raised while pricing the cart it was built from.
type orderResponse struct {
	*wcv3.Order
	Warnings []model.Message `json:"warnings,omitempty"`
}

// handleGetOrder fetches an order by ID.
func (h *Handler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		h.writeError(w, model.NewValidationError("id", "order id must be a positive integer"))
		return
	}

	order, err := h.catalog.GetOrder(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, order)
}
