package addons

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"storefront-proxy/internal/model"
)

// Selections that go out through BuildConfiguration come back through
// NormalizeItem with the same (label, price) pairs, regardless of which of
// the three response shapes the plugin put them in.
func TestSelectionRoundTrip(t *testing.T) {
	fields := testFields()
	sels := []Selection{
		{FieldName: "Material", Label: "Gold"},
		{FieldName: "Extras", Label: "Gift wrap"},
		{FieldName: "Extras", Label: "Rush production"},
		{FieldName: "Engraving", Value: "J & K 2026"},
	}

	if _, err := BuildConfiguration(42, fields, sels); err != nil {
		t.Fatalf("BuildConfiguration: %v", err)
	}

	type pair struct {
		Display string
		Price   int64
	}
	want := []pair{
		{"Gold", 1500},
		{"Gift wrap", 350},
		{"Rush production", 1000},
		{"J & K 2026", 0},
	}

	// Synthesize each response shape the way the plugin renders accepted
	// selections, then normalize back.
	fieldFor := map[string]Field{}
	for _, f := range fields {
		fieldFor[f.Name] = f
	}

	var extEntries []ExtensionAddon
	var itemData []ItemDataEntry
	for _, s := range sels {
		f := fieldFor[s.FieldName]
		price := SelectionPrice(f, s)
		display := s.Label
		if display == "" {
			display = s.Value
		}
		extEntries = append(extEntries, ExtensionAddon{
			FieldName: s.FieldName,
			Value:     display,
			Price:     PriceValue{Cents: price, Known: true},
			FieldType: string(f.Type),
		})
		itemData = append(itemData, ItemDataEntry{
			Key:   s.FieldName,
			Value: FormatPricedLabel(display, price),
		})
	}

	shapes := map[string]func() ([]model.SelectedAddon, []model.Message){
		"extensions.addons":  func() ([]model.SelectedAddon, []model.Message) { return NormalizeItem(extEntries, nil, nil) },
		"product-add-ons":    func() ([]model.SelectedAddon, []model.Message) { return NormalizeItem(nil, extEntries, nil) },
		"item_data fallback": func() ([]model.SelectedAddon, []model.Message) { return NormalizeItem(nil, nil, itemData) },
	}

	for name, normalize := range shapes {
		t.Run(name, func(t *testing.T) {
			normalized, warnings := normalize()
			if len(warnings) != 0 {
				t.Fatalf("unexpected warnings: %v", warnings)
			}

			got := make([]pair, 0, len(normalized))
			for _, a := range normalized {
				got = append(got, pair{a.Display(), a.Price})
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
