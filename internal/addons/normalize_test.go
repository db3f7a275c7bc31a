package addons

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"storefront-proxy/internal/model"
)

func TestNormalizeItemFromExtensions(t *testing.T) {
	tests := []struct {
		name    string
		entries []ExtensionAddon
		want    []model.SelectedAddon
	}{
		{
			name: "typed entries with structured price",
			entries: []ExtensionAddon{
				{FieldName: "Material", Value: "Gold", Price: PriceValue{Cents: 1500, Known: true}, FieldType: "multiple_choice"},
				{FieldName: "Engraving", Value: "J & K", FieldType: "custom_text"},
			},
			want: []model.SelectedAddon{
				{FieldName: "Material", Label: "Gold", Price: 1500, Type: model.AddonMultipleChoice},
				{FieldName: "Engraving", Value: "J & K", Type: model.AddonCustomText},
			},
		},
		{
			name: "price falls back to label suffix",
			entries: []ExtensionAddon{
				{FieldName: "Material", Value: "Gold (+ $15.00)"},
			},
			want: []model.SelectedAddon{
				{FieldName: "Material", Label: "Gold", Price: 1500},
			},
		},
		{
			name: "structured price wins over label suffix",
			entries: []ExtensionAddon{
				{FieldName: "Material", Value: "Gold (+ $15.00)", Price: PriceValue{Cents: 1400, Known: true}},
			},
			want: []model.SelectedAddon{
				{FieldName: "Material", Label: "Gold", Price: 1400},
			},
		},
		{
			name: "name used when field_name absent",
			entries: []ExtensionAddon{
				{Name: "Extras", Value: "Gift wrap (+ $3.50)"},
			},
			want: []model.SelectedAddon{
				{FieldName: "Extras", Label: "Gift wrap", Price: 350},
			},
		},
		{
			name: "display used when value absent",
			entries: []ExtensionAddon{
				{FieldName: "Material", Display: "Walnut (+ &#36;8.50)"},
			},
			want: []model.SelectedAddon{
				{FieldName: "Material", Label: "Walnut", Price: 850},
			},
		},
		{
			name: "nameless entry skipped",
			entries: []ExtensionAddon{
				{Value: "orphan"},
				{FieldName: "Material", Value: "Silver"},
			},
			want: []model.SelectedAddon{
				{FieldName: "Material", Label: "Silver"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, warnings := NormalizeItem(tt.entries, nil, nil)
			if len(warnings) != 0 {
				t.Errorf("unexpected warnings: %v", warnings)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("addons mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalizeItemNestedValue(t *testing.T) {
	entries := []ExtensionAddon{
		{
			FieldName: "Extras",
			Value:     `[{"label":"Gift wrap","price":"3.50"},{"label":"Rush production","price":"10.00"}]`,
			FieldType: "checkbox",
		},
	}

	got, warnings := NormalizeItem(entries, nil, nil)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	want := []model.SelectedAddon{
		{FieldName: "Extras", Label: "Gift wrap", Price: 350, Type: model.AddonCheckbox},
		{FieldName: "Extras", Label: "Rush production", Price: 1000, Type: model.AddonCheckbox},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("addons mismatch (-want +got):\n%s", diff)
	}
}

// Malformed nested JSON must not drop the add-on: the raw text is kept and
// a warning flags the parse failure instead of pricing it at $0.00 silently.
func TestNormalizeItemNestedValueParseFailure(t *testing.T) {
	entries := []ExtensionAddon{
		{FieldName: "Extras", Value: `[{"label":"Gift wrap","price":`},
	}

	got, warnings := NormalizeItem(entries, nil, nil)
	if len(got) != 1 {
		t.Fatalf("got %d addons, want 1", len(got))
	}
	if got[0].FieldName != "Extras" {
		t.Errorf("FieldName = %q, want Extras", got[0].FieldName)
	}
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warnings))
	}
	if warnings[0].Code != "addon_parse_failed" {
		t.Errorf("warning code = %q, want addon_parse_failed", warnings[0].Code)
	}
	if warnings[0].Type != "warning" {
		t.Errorf("warning type = %q, want warning", warnings[0].Type)
	}
}

func TestNormalizeItemSourcePriority(t *testing.T) {
	current := []ExtensionAddon{{FieldName: "Material", Value: "Gold", Price: PriceValue{Cents: 1500, Known: true}}}
	legacy := []ExtensionAddon{{FieldName: "Material", Value: "Silver"}}
	itemData := []ItemDataEntry{{Key: "Material", Value: "Bronze (+ $7.00)"}}

	t.Run("current wins", func(t *testing.T) {
		got, _ := NormalizeItem(current, legacy, itemData)
		if len(got) != 1 || got[0].Label != "Gold" {
			t.Errorf("got %+v, want Gold from extensions.addons", got)
		}
	})

	t.Run("legacy when no current", func(t *testing.T) {
		got, _ := NormalizeItem(nil, legacy, itemData)
		if len(got) != 1 || got[0].Label != "Silver" {
			t.Errorf("got %+v, want Silver from product-add-ons", got)
		}
	})

	t.Run("item_data as last resort", func(t *testing.T) {
		got, _ := NormalizeItem(nil, nil, itemData)
		if len(got) != 1 || got[0].Label != "Bronze" || got[0].Price != 700 {
			t.Errorf("got %+v, want Bronze at 700 from item_data", got)
		}
	})
}

func TestNormalizeItemFromItemData(t *testing.T) {
	itemData := []ItemDataEntry{
		{Key: "Material", Value: "Gold (+ $15.00)"},
		{Key: "Engraving", Value: "J & K 2026"},
		{Key: "_internal_meta", Value: "skip me"},
		{Name: "Extras", Display: "Gift wrap (+ &#36;3.50)"},
		{Key: "Empty"},
	}

	got, warnings := NormalizeItem(nil, nil, itemData)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	want := []model.SelectedAddon{
		{FieldName: "Material", Label: "Gold", Price: 1500},
		{FieldName: "Engraving", Label: "J & K 2026"},
		{FieldName: "Extras", Label: "Gift wrap", Price: 350},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("addons mismatch (-want +got):\n%s", diff)
	}
}

func TestPriceValueUnmarshal(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCents int64
		wantKnown bool
	}{
		{"decimal string is major units", `"15.00"`, 1500, true},
		{"integer string is minor units", `"1500"`, 1500, true},
		{"whole number is minor units", `1500`, 1500, true},
		{"fractional number is major units", `15.5`, 1550, true},
		{"empty string", `""`, 0, false},
		{"null", `null`, 0, false},
		{"object tolerated as unpriced", `{"amount":15}`, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p PriceValue
			if err := json.Unmarshal([]byte(tt.input), &p); err != nil {
				t.Fatalf("unmarshal %s: %v", tt.input, err)
			}
			if p.Cents != tt.wantCents || p.Known != tt.wantKnown {
				t.Errorf("PriceValue(%s) = {%d %v}, want {%d %v}",
					tt.input, p.Cents, p.Known, tt.wantCents, tt.wantKnown)
			}
		})
	}
}
