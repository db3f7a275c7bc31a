// Package wcv3 implements the authenticated WooCommerce REST API
// (/wp-json/wc/v3) client used for product schema reads and order writes.
// Unlike the Store API, wc/v3 prices are decimal strings in major units.
package wcv3

import (
	"encoding/json"
)

// productAddonsMetaKey is where the Product Add-Ons plugin stores a
// product's add-on schema.
const productAddonsMetaKey = "_product_addons"

// Product represents a wc/v3 product, trimmed to the fields the
// storefront needs.
type Product struct {
	ID           int            `json:"id"`
	Name         string         `json:"name"`
	Slug         string         `json:"slug"`
	Type         string         `json:"type"` // simple, variable
	Status       string         `json:"status"`
	SKU          string         `json:"sku"`
	Price        string         `json:"price"`         // "15.00" - decimal string
	RegularPrice string         `json:"regular_price"` // "15.00"
	SalePrice    string         `json:"sale_price"`
	Purchasable  bool           `json:"purchasable"`
	Images       []ProductImage `json:"images,omitempty"`
	MetaData     []Meta         `json:"meta_data,omitempty"`
}

// ProductImage represents a wc/v3 product image.
type ProductImage struct {
	ID  int    `json:"id"`
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// ProductVariation represents a variation of a variable product.
type ProductVariation struct {
	ID         int                  `json:"id"`
	SKU        string               `json:"sku"`
	Price      string               `json:"price"`
	Attributes []VariationAttribute `json:"attributes,omitempty"`
}

// VariationAttribute is one attribute binding on a variation.
type VariationAttribute struct {
	Name   string `json:"name"`
	Option string `json:"option"`
}

// Meta is a wc/v3 meta_data entry on reads. Values are arbitrary JSON —
// the add-on schema meta is an array, most others are strings.
type Meta struct {
	ID    int             `json:"id,omitempty"`
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

// OrderMeta is a meta_data entry on order writes, always string-valued.
type OrderMeta struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// OrderLineItem is a line on an order create request.
//
// Subtotal and Total MUST be set explicitly when the line carries add-ons:
// if omitted, WooCommerce recalculates from the bare product price and
// silently drops add-on pricing from the order total.
type OrderLineItem struct {
	ProductID   int         `json:"product_id"`
	VariationID int         `json:"variation_id,omitempty"`
	Quantity    int         `json:"quantity"`
	Subtotal    string      `json:"subtotal,omitempty"` // decimal string, major units
	Total       string      `json:"total,omitempty"`    // decimal string, major units
	MetaData    []OrderMeta `json:"meta_data,omitempty"`
}

// OrderAddress is the wc/v3 billing/shipping block.
type OrderAddress struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company,omitempty"`
	Address1  string `json:"address_1"`
	Address2  string `json:"address_2,omitempty"`
	City      string `json:"city"`
	State     string `json:"state"`
	Postcode  string `json:"postcode"`
	Country   string `json:"country"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// OrderRequest is the payload for POST /orders.
type OrderRequest struct {
	PaymentMethod      string          `json:"payment_method,omitempty"`
	PaymentMethodTitle string          `json:"payment_method_title,omitempty"`
	SetPaid            bool            `json:"set_paid"`
	Status             string          `json:"status,omitempty"`
	CustomerNote       string          `json:"customer_note,omitempty"`
	Billing            *OrderAddress   `json:"billing,omitempty"`
	Shipping           *OrderAddress   `json:"shipping,omitempty"`
	LineItems          []OrderLineItem `json:"line_items"`
	MetaData           []OrderMeta     `json:"meta_data,omitempty"`
}

// Order is the wc/v3 order response, trimmed.
type Order struct {
	ID          int                 `json:"id"`
	Number      string              `json:"number"`
	OrderKey    string              `json:"order_key"`
	Status      string              `json:"status"`
	Currency    string              `json:"currency"`
	Total       string              `json:"total"` // decimal string
	TotalTax    string              `json:"total_tax"`
	CustomerID  int                 `json:"customer_id"`
	Billing     OrderAddress        `json:"billing"`
	Shipping    OrderAddress        `json:"shipping"`
	LineItems   []OrderResponseLine `json:"line_items"`
	DateCreated string              `json:"date_created"`
}

// OrderResponseLine is a line on an order read.
type OrderResponseLine struct {
	ID        int         `json:"id"`
	ProductID int         `json:"product_id"`
	Name      string      `json:"name"`
	Quantity  int         `json:"quantity"`
	Subtotal  string      `json:"subtotal"`
	Total     string      `json:"total"`
	MetaData  []OrderMeta `json:"meta_data,omitempty"`
}

// apiError is the wc/v3 error body (same shape as the Store API's).
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Status int `json:"status"`
	} `json:"data"`
}
