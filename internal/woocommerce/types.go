// Package woocommerce implements the Store API adapter: cart session
// management, nonce handling, and transformation of cart responses into
// the normalized model.
package woocommerce

import (
	"storefront-proxy/internal/addons"
)

// === Store API Response Types ===

// WooCartResponse represents a Store API cart response.
// Every mutation endpoint (add-item, update-item, remove-item,
// update-customer) returns this full cart state in its body.
type WooCartResponse struct {
	Items           []WooCartItem  `json:"items"`
	Totals          WooTotals      `json:"totals"`
	Coupons         []WooCoupon    `json:"coupons,omitempty"`
	NeedsShipping   bool           `json:"needs_shipping"`
	BillingAddress  WooAddress     `json:"billing_address"`
	ShippingAddress WooAddress     `json:"shipping_address"`
	Errors          []WooCartError `json:"errors,omitempty"`
}

// WooCartError represents an error in cart state.
type WooCartError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WooCartItem represents an item in a cart response.
//
// Add-on selections appear in one of three places depending on the
// Product Add-Ons plugin version: ItemData (display strings), or the
// Extensions object under "addons" or "product-add-ons".
type WooCartItem struct {
	Key        string                 `json:"key"` // Cart item key (hash, not product ID)
	ID         int                    `json:"id"`  // Product ID
	Name       string                 `json:"name"`
	Quantity   int                    `json:"quantity"`
	Prices     WooCartItemPrices      `json:"prices"`
	Totals     WooCartItemTotals      `json:"totals"`
	Images     []WooImage             `json:"images,omitempty"`
	ItemData   []addons.ItemDataEntry `json:"item_data,omitempty"`
	Extensions WooItemExtensions      `json:"extensions,omitempty"`
}

// WooItemExtensions holds plugin extension payloads on a cart item.
// The Product Add-Ons plugin has used both keys across versions.
type WooItemExtensions struct {
	Addons        []addons.ExtensionAddon `json:"addons,omitempty"`
	ProductAddons []addons.ExtensionAddon `json:"product-add-ons,omitempty"`
}

// WooCartItemPrices contains price info for a cart item.
// All values are minor-unit strings.
type WooCartItemPrices struct {
	Price        string `json:"price"`
	RegularPrice string `json:"regular_price"`
	SalePrice    string `json:"sale_price"`
}

// WooCartItemTotals contains line totals for a cart item, in minor-unit
// strings. LineTotal does NOT include add-on prices; see the transform.
type WooCartItemTotals struct {
	LineSubtotal    string `json:"line_subtotal"`
	LineSubtotalTax string `json:"line_subtotal_tax"`
	LineTotal       string `json:"line_total"`
	LineTotalTax    string `json:"line_total_tax"`
}

// WooTotals contains cart-level totals. All string amounts are in minor
// units per the Store API convention.
type WooTotals struct {
	CurrencyCode      string `json:"currency_code"`
	CurrencySymbol    string `json:"currency_symbol"`
	CurrencyMinorUnit int    `json:"currency_minor_unit"`
	TotalItems        string `json:"total_items"`
	TotalDiscount     string `json:"total_discount"`
	TotalShipping     string `json:"total_shipping"`
	TotalPrice        string `json:"total_price"`
	TotalTax          string `json:"total_tax"`
}

// WooAddress represents a Store API address block.
type WooAddress struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company"`
	Address1  string `json:"address_1"`
	Address2  string `json:"address_2"`
	City      string `json:"city"`
	State     string `json:"state"`
	Postcode  string `json:"postcode"`
	Country   string `json:"country"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// WooImage represents a product image.
type WooImage struct {
	ID  int    `json:"id"`
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// WooCoupon represents an applied discount code.
type WooCoupon struct {
	Code   string          `json:"code"`
	Totals WooCouponTotals `json:"totals"`
}

// WooCouponTotals contains the calculated discount for a coupon,
// as minor-unit strings.
type WooCouponTotals struct {
	TotalDiscount    string `json:"total_discount"`
	TotalDiscountTax string `json:"total_discount_tax"`
}

// === Store API Request Types ===

// WooCartAddRequest adds an item to the cart. AddonsConfiguration carries
// the formatted add-on selections; see addons.BuildConfiguration for the
// per-type value shapes.
type WooCartAddRequest struct {
	ID                  int                    `json:"id"`
	Quantity            int                    `json:"quantity"`
	AddonsConfiguration map[string]interface{} `json:"addons_configuration,omitempty"`
}

// WooCartUpdateRequest changes the quantity of an existing cart item.
type WooCartUpdateRequest struct {
	Key      string `json:"key"`
	Quantity int    `json:"quantity"`
}

// WooCartRemoveRequest removes a cart item by key.
type WooCartRemoveRequest struct {
	Key string `json:"key"`
}

// WooErrorResponse represents a Store API error body.
type WooErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Status int `json:"status"`
	} `json:"data"`
}
