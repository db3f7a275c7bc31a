// Package pricing is the single implementation of line and cart total
// arithmetic. Store API totals omit add-on prices, so every surface that
// shows money recomputes through here rather than trusting the backend
// figure or keeping its own copy of the math.
package pricing

import (
	"storefront-proxy/internal/model"
)

// DefaultTolerance is the allowed divergence, in cents, between a
// backend-reported amount and the locally recomputed one before the
// mismatch is surfaced. One cent absorbs rounding differences between the
// decimal-string and minor-unit representations.
const DefaultTolerance = 1

// PerUnitAddonTotal sums the per-unit add-on prices of a line.
func PerUnitAddonTotal(addons []model.SelectedAddon) int64 {
	var total int64
	for _, a := range addons {
		total += a.Price
	}
	return total
}

// LineTotal computes (base + add-ons) × quantity in cents.
func LineTotal(basePrice, addonTotal int64, quantity int) int64 {
	return (basePrice + addonTotal) * int64(quantity)
}

// Reconcile chooses between a backend-reported amount and a locally
// recomputed one. Within tolerance the reported amount wins, since the
// backend saw tax and discount rules this service does not. Beyond it the
// recomputed amount wins — the known failure mode is the backend dropping
// add-on prices entirely — and ok is false so the caller can attach a
// warning.
func Reconcile(reported, recomputed, tolerance int64) (amount int64, ok bool) {
	if abs(reported-recomputed) <= tolerance {
		return reported, true
	}
	return recomputed, false
}

// ComputeTotals recomputes cart totals from normalized items. Discount,
// shipping, and tax have no local source of truth, so the reported values
// pass through.
func ComputeTotals(items []model.CartItem, currency string, discount, shipping, tax int64) model.CartTotals {
	var subtotal, addonTotal int64
	for _, it := range items {
		subtotal += it.LineTotal
		addonTotal += it.AddonTotal * int64(it.Quantity)
	}
	return model.CartTotals{
		Currency:      currency,
		ItemsSubtotal: subtotal,
		AddonTotal:    addonTotal,
		Discount:      discount,
		Shipping:      shipping,
		Tax:           tax,
		Total:         subtotal - discount + shipping + tax,
	}
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
