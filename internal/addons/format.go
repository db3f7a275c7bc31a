package addons

import (
	"strconv"
	"strings"

	"storefront-proxy/internal/model"
)

// Selection is one add-on choice as captured on the product page.
// Choice fields carry the option Label; text, date, and price fields carry
// the raw Value.
type Selection struct {
	FieldName string `json:"field_name" validate:"required"`
	Label     string `json:"label,omitempty"`
	Value     string `json:"value,omitempty"`
}

// BuildConfiguration translates selections into the Store API's
// addons_configuration map for an add-item request.
//
// Wire format per field type:
//   - multiple_choice: 1-based option index (number)
//   - checkbox:        array of 1-based option indexes
//   - custom_text, custom_textarea, datepicker: raw string
//   - custom_price:    number in major units
//   - input_multiplier: integer
//
// Fields with no selection are omitted; a missing required field is a
// validation error, as is a selection whose label matches no option.
func BuildConfiguration(productID int, fields []Field, sels []Selection) (map[string]interface{}, error) {
	byField := make(map[string][]Selection)
	for _, s := range sels {
		byField[s.FieldName] = append(byField[s.FieldName], s)
	}

	known := make(map[string]bool, len(fields))
	cfg := make(map[string]interface{})

	for i, f := range fields {
		known[f.Name] = true
		picked := byField[f.Name]

		if len(picked) == 0 {
			if bool(f.Required) {
				return nil, model.NewValidationError("addons", "required add-on '"+f.Name+"' missing")
			}
			continue
		}

		key := FieldKey(productID, i)

		switch f.Type {
		case model.AddonMultipleChoice:
			idx, err := optionIndex(f, picked[0].Label)
			if err != nil {
				return nil, err
			}
			cfg[key] = idx

		case model.AddonCheckbox:
			indexes := make([]int, 0, len(picked))
			for _, s := range picked {
				idx, err := optionIndex(f, s.Label)
				if err != nil {
					return nil, err
				}
				indexes = append(indexes, idx)
			}
			cfg[key] = indexes

		case model.AddonCustomPrice:
			amount, err := strconv.ParseFloat(strings.ReplaceAll(picked[0].Value, ",", ""), 64)
			if err != nil || amount < 0 {
				return nil, model.NewValidationError("addons", "invalid amount for '"+f.Name+"'")
			}
			cfg[key] = amount

		case model.AddonInputMultiplier:
			n, err := strconv.Atoi(picked[0].Value)
			if err != nil || n < 0 {
				return nil, model.NewValidationError("addons", "invalid multiplier for '"+f.Name+"'")
			}
			cfg[key] = n

		default:
			// custom_text, custom_textarea, datepicker, and anything a newer
			// plugin adds: pass the raw string through
			cfg[key] = picked[0].Value
		}

		delete(byField, f.Name)
	}

	// Selections that matched no schema field indicate a stale schema or a
	// tampered request; reject rather than let WooCommerce silently drop them.
	for name := range byField {
		if !known[name] {
			return nil, model.NewValidationError("addons", "unknown add-on field '"+name+"'")
		}
	}

	return cfg, nil
}

// optionIndex finds the 1-based index of an option by label.
// Labels are compared after trimming and stripping any embedded price
// suffix, since the UI sometimes submits the display form.
func optionIndex(f Field, label string) (int, error) {
	want, _, _ := SplitPricedLabel(label)
	for i, opt := range f.Options {
		got, _, _ := SplitPricedLabel(opt.Label)
		if strings.EqualFold(got, want) {
			return i + 1, nil
		}
	}
	return 0, model.NewValidationError("addons", "option '"+label+"' not found in '"+f.Name+"'")
}

// SelectionPrice resolves the per-unit price of a selection against the
// schema, in cents. Choice fields read the matched option's price;
// custom_price fields read the buyer-entered amount; other types are free.
func SelectionPrice(f Field, s Selection) int64 {
	switch f.Type {
	case model.AddonMultipleChoice, model.AddonCheckbox:
		want, embedded, hasEmbedded := SplitPricedLabel(s.Label)
		for _, opt := range f.Options {
			got, _, _ := SplitPricedLabel(opt.Label)
			if strings.EqualFold(got, want) {
				return opt.PriceCents()
			}
		}
		if hasEmbedded {
			return embedded
		}
		return 0
	case model.AddonCustomPrice:
		return model.ParseCents(s.Value)
	default:
		return 0
	}
}
