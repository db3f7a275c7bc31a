// Package addons implements the Product Add-Ons pipeline: translating
// selected options into the Store API addons_configuration wire format,
// and reconstructing a normalized add-on list from the heterogeneous
// shapes cart responses put that data in.
package addons

import (
	"encoding/json"
	"fmt"

	"storefront-proxy/internal/model"
)

// Field is one add-on field definition from a product's _product_addons
// meta. Only the fields the pipeline needs are mapped; the plugin stores
// more (descriptions, restrictions) that pass through untouched.
type Field struct {
	Name     string          `json:"name"`
	Type     model.AddonType `json:"type"`
	Display  string          `json:"display,omitempty"` // select, radiobutton, images
	Position int             `json:"position"`
	Required IntBool         `json:"required"`
	Options  []Option        `json:"options,omitempty"`
}

// Option is one choice within a multiple_choice or checkbox field.
// Price is a decimal string in major units, as wc/v3 stores it.
type Option struct {
	Label     string `json:"label"`
	Price     string `json:"price"`
	PriceType string `json:"price_type,omitempty"` // flat_fee, quantity_based, percentage_based
}

// PriceCents returns the option price in cents.
func (o Option) PriceCents() int64 {
	return model.ParseCents(o.Price)
}

// IntBool handles the plugin's habit of encoding booleans as 0/1 numbers,
// "0"/"1" strings, or actual booleans depending on version.
type IntBool bool

func (b *IntBool) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "true", "1", `"1"`:
		*b = true
	case "false", "0", `"0"`, "null", `""`:
		*b = false
	default:
		// Any other non-zero number is truthy
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("parsing required flag: %w", err)
		}
		*b = n != 0
	}
	return nil
}

func (b IntBool) MarshalJSON() ([]byte, error) {
	if b {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

// FieldKey builds the addons_configuration key for a field.
// The Store API add-to-cart extension keys fields as addon-{productID}-{index},
// where index is the field's zero-based position in the schema array.
func FieldKey(productID, fieldIndex int) string {
	return fmt.Sprintf("addon-%d-%d", productID, fieldIndex)
}

// ParseSchema decodes a _product_addons meta value into fields.
// wc/v3 returns the meta value either as a JSON array or as a string
// containing JSON, depending on how the plugin serialized it.
func ParseSchema(raw json.RawMessage) ([]Field, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var fields []Field
	if err := json.Unmarshal(raw, &fields); err == nil {
		return fields, nil
	}

	// Fallback: value is a JSON string wrapping the array
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("add-on schema is neither array nor string")
	}
	if s == "" {
		return nil, nil
	}
	if err := json.Unmarshal([]byte(s), &fields); err != nil {
		return nil, fmt.Errorf("parsing nested add-on schema: %w", err)
	}
	return fields, nil
}
