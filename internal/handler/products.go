package handler

import (
	"net/http"
	"strconv"

	"golang.org/x/sync/errgroup"

	"storefront-proxy/internal/addons"
	"storefront-proxy/internal/model"
	"storefront-proxy/internal/wcv3"
)

// productResponse is the storefront product shape: wc/v3 product data plus
// the parsed add-on schema and, for variable products, the variation list.
type productResponse struct {
	ID          int                     `json:"id"`
	Name        string                  `json:"name"`
	Slug        string                  `json:"slug"`
	Type        string                  `json:"type"`
	SKU         string                  `json:"sku,omitempty"`
	Price       string                  `json:"price"`
	PriceCents  int64                   `json:"price_cents"`
	Purchasable bool                    `json:"purchasable"`
	Images      []wcv3.ProductImage     `json:"images,omitempty"`
	Addons      []addons.Field          `json:"addons,omitempty"`
	Variations  []wcv3.ProductVariation `json:"variations,omitempty"`
}

// handleGetProduct returns a product with its add-on schema. Variations
// are fetched concurrently with the product when needed; the schema parse
// happens after the product arrives.
func (h *Handler) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		h.writeError(w, model.NewValidationError("id", "product id must be a positive integer"))
		return
	}

	var (
		product    *wcv3.Product
		variations []wcv3.ProductVariation
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		product, err = h.catalog.GetProduct(ctx, id)
		return err
	})
	g.Go(func() error {
		// Simple products return an empty list; one wasted call beats a
		// second round trip on every variable product.
		var err error
		variations, err = h.catalog.GetVariations(ctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		h.writeError(w, err)
		return
	}

	fields, err := product.AddonFields()
	if err != nil {
		h.writeError(w, model.NewUpstreamError("WooCommerce", err))
		return
	}

	h.writeJSON(w, http.StatusOK, &productResponse{
		ID:          product.ID,
		Name:        product.Name,
		Slug:        product.Slug,
		Type:        product.Type,
		SKU:         product.SKU,
		Price:       product.Price,
		PriceCents:  product.PriceCents(),
		Purchasable: product.Purchasable,
		Images:      product.Images,
		Addons:      fields,
		Variations:  variations,
	})
}
