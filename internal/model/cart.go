// Package model defines the normalized commerce data structures shared by
// the Store API and wc/v3 adapters. All amounts are int64 minor units
// (cents) regardless of which wire representation they were parsed from.
package model

// AddonType identifies a Product Add-Ons field type.
type AddonType string

const (
	AddonMultipleChoice  AddonType = "multiple_choice"
	AddonCheckbox        AddonType = "checkbox"
	AddonCustomText      AddonType = "custom_text"
	AddonCustomTextarea  AddonType = "custom_textarea"
	AddonCustomPrice     AddonType = "custom_price"
	AddonInputMultiplier AddonType = "input_multiplier"
	AddonDatepicker      AddonType = "datepicker"
)

// SelectedAddon is one add-on selection attached to a cart item, in its
// single normalized shape. The Store API scatters this data across
// item_data, extensions.addons, and extensions["product-add-ons"] depending
// on plugin version; the normalizer reduces all of them to this.
type SelectedAddon struct {
	// FieldName is the add-on field's display name, e.g. "Material".
	FieldName string `json:"field_name"`

	// Label is the chosen option label with any embedded price suffix
	// stripped, e.g. "Gold" from "Gold (+ $15.00)". For text/date/price
	// fields Label is empty and Value carries the buyer input.
	Label string `json:"label,omitempty"`

	// Value is the raw buyer input for non-choice fields.
	Value string `json:"value,omitempty"`

	// Price is the per-unit add-on price in cents.
	Price int64 `json:"price"`

	// Type is the field type when known, empty when the source shape
	// didn't carry it (item_data fallback).
	Type AddonType `json:"type,omitempty"`
}

// Display returns the buyer-facing value for this add-on: the option label
// for choice fields, the raw value otherwise.
func (a SelectedAddon) Display() string {
	if a.Label != "" {
		return a.Label
	}
	return a.Value
}

// CartItem is a normalized cart line.
type CartItem struct {
	// Key is the Store API cart item key (a hash, not the product ID).
	Key       string          `json:"key"`
	ProductID int             `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	ImageURL  string          `json:"image_url,omitempty"`
	Addons    []SelectedAddon `json:"addons,omitempty"`

	// BasePrice is the per-unit product price in cents, excluding add-ons.
	BasePrice int64 `json:"base_price"`

	// AddonTotal is the per-unit add-on price sum in cents.
	AddonTotal int64 `json:"addon_total"`

	// LineTotal is (BasePrice + AddonTotal) × Quantity, recomputed locally
	// because Store API line totals omit add-on prices.
	LineTotal int64 `json:"line_total"`
}

// CartTotals aggregates cart-level amounts in cents.
type CartTotals struct {
	Currency      string `json:"currency"`
	ItemsSubtotal int64  `json:"items_subtotal"`
	AddonTotal    int64  `json:"addon_total"`
	Discount      int64  `json:"discount"`
	Shipping      int64  `json:"shipping"`
	Tax           int64  `json:"tax"`
	Total         int64  `json:"total"`
}

// Cart is the normalized cart returned by the /api/cart endpoints.
type Cart struct {
	Token    string     `json:"token,omitempty"`
	Items    []CartItem `json:"items"`
	Totals   CartTotals `json:"totals"`
	Messages []Message  `json:"messages,omitempty"`
}

// IsEmpty reports whether the cart has no items.
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

// MessageSeverity indicates how a problem should be handled downstream.
type MessageSeverity string

const (
	SeverityRecoverable   MessageSeverity = "recoverable"   // caller can fix input and retry
	SeverityUnrecoverable MessageSeverity = "unrecoverable" // cannot proceed with this input
)

// Message is structured feedback attached to a cart or order response.
// Parse failures and totals mismatches surface here instead of degrading
// silently to "$0.00".
type Message struct {
	Type     string `json:"type"` // "error", "warning", "info"
	Code     string `json:"code,omitempty"`
	Content  string `json:"content"`
	Severity string `json:"severity,omitempty"` // required for errors
}

// NewErrorMessage creates an error message with required severity.
func NewErrorMessage(code, content string, severity MessageSeverity) Message {
	return Message{
		Type:     "error",
		Code:     code,
		Content:  content,
		Severity: string(severity),
	}
}

// NewWarningMessage creates a warning message. Warnings flag issues that
// affect buyer expectations (totals divergence, unparseable add-on data)
// without blocking the operation.
func NewWarningMessage(code, content string) Message {
	return Message{
		Type:    "warning",
		Code:    code,
		Content: content,
	}
}

// NewInfoMessage creates an informational message.
func NewInfoMessage(code, content string) Message {
	return Message{
		Type:    "info",
		Code:    code,
		Content: content,
	}
}

// Address is a billing or shipping address in WooCommerce field layout.
// Both the Store API and wc/v3 use this snake_case shape.
type Address struct {
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
