package addons

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"

	"storefront-proxy/internal/model"
)

// The Store API exposes cart add-on selections in three different places
// depending on the Product Add-Ons plugin version:
//
//	extensions.addons               — current plugin, typed entries
//	extensions["product-add-ons"]   — older plugin, same entry shape
//	item_data                       — oldest fallback, display strings only,
//	                                  price embedded in the label text
//
// NormalizeItem reduces whichever shape is present to []model.SelectedAddon.

// ExtensionAddon is one entry of extensions.addons (or the legacy
// product-add-ons key). Field presence varies by plugin version, and the
// price arrives as a string, a number, or not at all.
type ExtensionAddon struct {
	FieldName string     `json:"field_name,omitempty"`
	Name      string     `json:"name,omitempty"`
	Value     string     `json:"value,omitempty"`
	Display   string     `json:"display,omitempty"`
	Price     PriceValue `json:"price,omitempty"`
	FieldType string     `json:"field_type,omitempty"`
}

// ItemDataEntry is one entry of a cart item's item_data array.
type ItemDataEntry struct {
	Key     string `json:"key,omitempty"`
	Name    string `json:"name,omitempty"`
	Value   string `json:"value,omitempty"`
	Display string `json:"display,omitempty"`
}

// PriceValue parses the inconsistent price encodings add-on extensions use.
// Decimal strings and fractional numbers are major units; integer strings
// and whole numbers are minor units (the Store API convention).
type PriceValue struct {
	Cents int64
	Known bool
}

func (p *PriceValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			return nil
		}
		if strings.Contains(s, ".") {
			p.Cents = model.ParseCents(s)
		} else {
			p.Cents = model.ParseMinorUnits(s)
		}
		p.Known = true
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		// Unexpected shape (object, array). Treat as unpriced rather than
		// failing the whole cart parse.
		return nil
	}
	if f == math.Trunc(f) {
		p.Cents = int64(f)
	} else {
		p.Cents = int64(math.Round(f * 100))
	}
	p.Known = true
	return nil
}

func (p PriceValue) MarshalJSON() ([]byte, error) {
	if !p.Known {
		return []byte(`""`), nil
	}
	return json.Marshal(p.Cents)
}

// nestedAddonValue is the shape some plugin versions embed as a JSON string
// inside an extension entry's value field.
type nestedAddonValue struct {
	Label string     `json:"label"`
	Value string     `json:"value"`
	Price PriceValue `json:"price"`
}

// NormalizeItem builds the normalized add-on list for one cart item.
// Source priority: extensions.addons, then extensions["product-add-ons"],
// then item_data. Warnings describe data that could not be fully parsed;
// the add-on is still emitted with whatever could be recovered.
func NormalizeItem(current, legacy []ExtensionAddon, itemData []ItemDataEntry) ([]model.SelectedAddon, []model.Message) {
	if len(current) > 0 {
		return fromExtensions(current)
	}
	if len(legacy) > 0 {
		return fromExtensions(legacy)
	}
	return fromItemData(itemData), nil
}

// fromExtensions converts typed extension entries.
func fromExtensions(entries []ExtensionAddon) ([]model.SelectedAddon, []model.Message) {
	var out []model.SelectedAddon
	var warnings []model.Message

	for _, e := range entries {
		fieldName := e.FieldName
		if fieldName == "" {
			fieldName = e.Name
		}
		if fieldName == "" {
			continue
		}

		raw := e.Value
		if raw == "" {
			raw = e.Display
		}

		// Some plugin versions double-encode the value as a JSON string
		// holding an array of {label, price} objects
		if nested, ok, failed := parseNestedValue(raw); ok {
			for _, n := range nested {
				out = append(out, buildAddon(fieldName, n.Label, n.Value, n.Price, e.FieldType))
			}
			continue
		} else if failed {
			warnings = append(warnings, model.NewWarningMessage(
				"addon_parse_failed",
				"could not parse nested add-on value for '"+fieldName+"', using raw text",
			))
		}

		out = append(out, buildAddon(fieldName, raw, raw, e.Price, e.FieldType))
	}
	return out, warnings
}

// buildAddon constructs one normalized add-on, preferring the entry's own
// price and falling back to a price embedded in the label text.
func buildAddon(fieldName, label, value string, price PriceValue, fieldType string) model.SelectedAddon {
	bare, embedded, hasEmbedded := SplitPricedLabel(label)

	cents := price.Cents
	if !price.Known && hasEmbedded {
		cents = embedded
	}

	a := model.SelectedAddon{
		FieldName: fieldName,
		Price:     cents,
		Type:      addonType(fieldType),
	}
	if isTextType(a.Type) {
		a.Value = bare
	} else {
		a.Label = bare
	}
	if value != label {
		v, _, _ := SplitPricedLabel(value)
		if isTextType(a.Type) {
			a.Value = v
		}
	}
	return a
}

// fromItemData recovers add-ons from display-only item_data entries.
// These carry no structured price; the only price signal is the
// "(+ $X.XX)" suffix in the value text. Keys starting with "_" are
// WooCommerce-internal meta, not add-ons.
func fromItemData(entries []ItemDataEntry) []model.SelectedAddon {
	var out []model.SelectedAddon
	for _, e := range entries {
		name := e.Key
		if name == "" {
			name = e.Name
		}
		if name == "" || strings.HasPrefix(name, "_") {
			continue
		}

		raw := e.Value
		if raw == "" {
			raw = e.Display
		}
		if raw == "" {
			continue
		}

		label, price, _ := SplitPricedLabel(raw)
		out = append(out, model.SelectedAddon{
			FieldName: name,
			Label:     label,
			Price:     price,
		})
	}
	return out
}

// parseNestedValue attempts to decode a value that is itself JSON.
// Returns (entries, true, false) on success, (nil, false, false) when the
// value is plainly not JSON, and (nil, false, true) when it looks like JSON
// but fails to decode.
func parseNestedValue(raw string) ([]nestedAddonValue, bool, bool) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) == 0 || (trimmed[0] != '[' && trimmed[0] != '{') {
		return nil, false, false
	}

	if trimmed[0] == '{' {
		var single nestedAddonValue
		if err := json.Unmarshal([]byte(trimmed), &single); err != nil {
			return nil, false, true
		}
		if single.Label == "" && single.Value == "" {
			return nil, false, true
		}
		return []nestedAddonValue{single}, true, false
	}

	var list []nestedAddonValue
	if err := json.Unmarshal([]byte(trimmed), &list); err != nil {
		return nil, false, true
	}
	return list, true, false
}

// addonType maps a wire field_type to the known set, keeping unknown
// values as-is so newer plugin types still round-trip.
func addonType(s string) model.AddonType {
	if s == "" {
		return ""
	}
	return model.AddonType(s)
}

// isTextType reports whether the type carries buyer input rather than an
// option label.
func isTextType(t model.AddonType) bool {
	switch t {
	case model.AddonCustomText, model.AddonCustomTextarea, model.AddonDatepicker, model.AddonCustomPrice:
		return true
	}
	return false
}
