package addons

import (
	"fmt"
	"regexp"
	"strings"

	"storefront-proxy/internal/model"
)

// pricedLabelRe matches a trailing price suffix in an add-on display label,
// e.g. "Gold (+ $15.00)". The amount group tolerates thousands separators.
// The dollar sign may arrive HTML-encoded (&#36;) from some plugin versions;
// decodeCurrency normalizes that before matching.
var pricedLabelRe = regexp.MustCompile(`\(\s*\+\s*\$\s*([0-9][0-9,]*(?:\.[0-9]+)?)\s*\)\s*$`)

// decodeCurrency replaces HTML-entity currency markers with literal ones.
// Cart item_data labels pass through WordPress escaping, so "$" can show up
// as "&#36;" (and occasionally double-escaped via "&amp;").
func decodeCurrency(s string) string {
	s = strings.ReplaceAll(s, "&amp;#36;", "$")
	return strings.ReplaceAll(s, "&#36;", "$")
}

// SplitPricedLabel splits an add-on label with an embedded price delta into
// the bare label and the price in cents.
//
//	"Gold (+ $15.00)"      → "Gold", 1500, true
//	"Walnut (+ &#36;8.50)" → "Walnut", 850, true
//	"Oak (+ $1,234.56)"    → "Oak", 123456, true
//	"None"                 → "None", 0, false
func SplitPricedLabel(s string) (label string, price int64, ok bool) {
	decoded := decodeCurrency(s)
	loc := pricedLabelRe.FindStringSubmatchIndex(decoded)
	if loc == nil {
		return strings.TrimSpace(decoded), 0, false
	}
	amount := decoded[loc[2]:loc[3]]
	return strings.TrimSpace(decoded[:loc[0]]), model.ParseCents(amount), true
}

// FormatPricedLabel is the inverse of SplitPricedLabel: it renders a label
// with its price delta the way WooCommerce displays it. Zero-price add-ons
// get no suffix. Used when writing order line meta so the backend shows the
// same text the cart did.
func FormatPricedLabel(label string, price int64) string {
	if price == 0 {
		return label
	}
	return fmt.Sprintf("%s (+ %s)", label, model.FormatDisplayPrice(price))
}
