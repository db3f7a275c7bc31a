package wcv3

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"storefront-proxy/internal/model"
)

func TestBuildOrderLines(t *testing.T) {
	items := []model.CartItem{
		{
			Key:       "abc",
			ProductID: 42,
			Name:      "Signet Ring",
			Quantity:  2,
			Addons: []model.SelectedAddon{
				{FieldName: "Material", Label: "Gold", Price: 1500},
				{FieldName: "Engraving", Value: "J & K 2026", Price: 0},
			},
			BasePrice:  8900,
			AddonTotal: 1500,
			LineTotal:  20800,
		},
		{
			Key:       "def",
			ProductID: 7,
			Name:      "Plain Mug",
			Quantity:  1,
			BasePrice: 1200,
			LineTotal: 1200,
		},
	}

	got := BuildOrderLines(items)
	want := []OrderLineItem{
		{
			ProductID: 42,
			Quantity:  2,
			Subtotal:  "208.00",
			Total:     "208.00",
			MetaData: []OrderMeta{
				{Key: "Material", Value: "Gold (+ $15.00)"},
				{Key: "Engraving", Value: "J & K 2026"},
			},
		},
		{
			ProductID: 7,
			Quantity:  1,
			Subtotal:  "12.00",
			Total:     "12.00",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("order lines mismatch (-want +got):\n%s", diff)
	}
}

// A zero LineTotal means the caller skipped normalization; the builder
// recomputes rather than writing a free line.
func TestBuildOrderLineRecomputesZeroTotal(t *testing.T) {
	got := buildOrderLine(model.CartItem{
		ProductID: 42,
		Quantity:  3,
		BasePrice: 8900,
		Addons:    []model.SelectedAddon{{FieldName: "Material", Label: "Gold", Price: 1500}},
	})
	if got.Subtotal != "312.00" || got.Total != "312.00" {
		t.Errorf("line = %+v, want 312.00 totals", got)
	}
}

func TestBuildOrderRequest(t *testing.T) {
	cart := &model.Cart{
		Token: "tok123",
		Items: []model.CartItem{
			{ProductID: 42, Quantity: 1, BasePrice: 8900, LineTotal: 8900},
		},
	}
	billing := &model.Address{
		FirstName: "Jamie", LastName: "Ortega",
		Address1: "1 Main St", City: "Portland", State: "OR",
		Postcode: "97201", Country: "US", Email: "jamie@example.com",
	}

	got := BuildOrderRequest(cart, billing, billing, "stripe", "ring the bell")

	if got.SetPaid {
		t.Error("orders must be created unpaid")
	}
	if got.PaymentMethod != "stripe" {
		t.Errorf("PaymentMethod = %q", got.PaymentMethod)
	}
	if got.CustomerNote != "ring the bell" {
		t.Errorf("CustomerNote = %q", got.CustomerNote)
	}
	if got.Billing == nil || got.Billing.Email != "jamie@example.com" {
		t.Errorf("Billing = %+v", got.Billing)
	}
	if len(got.LineItems) != 1 || got.LineItems[0].Total != "89.00" {
		t.Errorf("LineItems = %+v", got.LineItems)
	}

	var found bool
	for _, m := range got.MetaData {
		if m.Key == "_cart_token" && m.Value == "tok123" {
			found = true
		}
	}
	if !found {
		t.Errorf("cart token meta missing: %+v", got.MetaData)
	}
}

func TestBuildOrderRequestNoToken(t *testing.T) {
	got := BuildOrderRequest(&model.Cart{}, nil, nil, "", "")
	if len(got.MetaData) != 0 {
		t.Errorf("MetaData = %+v, want empty without a session token", got.MetaData)
	}
	if got.Billing != nil || got.Shipping != nil {
		t.Error("nil addresses should stay nil")
	}
}
