package wcv3

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront-proxy/internal/model"
)

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	client, err := New(Config{
		StoreURL:       srv.URL,
		ConsumerKey:    "ck_test",
		ConsumerSecret: "cs_test",
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return client
}

func TestGetProductWithAddonSchema(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /wp-json/wc/v3/products/42", func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "ck_test" || pass != "cs_test" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id":42,"name":"Signet Ring","type":"simple","price":"89.00","purchasable":true,
			"meta_data":[
				{"id":1,"key":"_some_other_meta","value":"x"},
				{"id":2,"key":"_product_addons","value":[
					{"name":"Material","type":"multiple_choice","required":1,
					 "options":[{"label":"Silver","price":"0"},{"label":"Gold","price":"15.00"}]}
				]}
			]
		}`))
	})
	client := newTestClient(t, mux)

	product, err := client.GetProduct(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if product.PriceCents() != 8900 {
		t.Errorf("PriceCents = %d, want 8900", product.PriceCents())
	}

	fields, err := product.AddonFields()
	if err != nil {
		t.Fatalf("AddonFields: %v", err)
	}
	if len(fields) != 1 || fields[0].Name != "Material" || len(fields[0].Options) != 2 {
		t.Errorf("fields = %+v", fields)
	}
	if !bool(fields[0].Required) {
		t.Error("Material should be required")
	}
}

func TestAddonFieldsAbsent(t *testing.T) {
	p := &Product{ID: 7}
	fields, err := p.AddonFields()
	if err != nil || fields != nil {
		t.Errorf("AddonFields = (%v, %v), want (nil, nil)", fields, err)
	}
}

func TestCreateOrderSendsExplicitTotals(t *testing.T) {
	var received OrderRequest
	mux := http.NewServeMux()
	mux.HandleFunc("POST /wp-json/wc/v3/orders", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&received)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":1001,"number":"1001","status":"pending","currency":"USD","total":"104.00"}`))
	})
	client := newTestClient(t, mux)

	order, err := client.CreateOrder(context.Background(), &OrderRequest{
		PaymentMethod: "stripe",
		LineItems: []OrderLineItem{
			{ProductID: 42, Quantity: 1, Subtotal: "104.00", Total: "104.00",
				MetaData: []OrderMeta{{Key: "Material", Value: "Gold (+ $15.00)"}}},
		},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if order.ID != 1001 || order.Status != "pending" {
		t.Errorf("order = %+v", order)
	}
	if len(received.LineItems) != 1 || received.LineItems[0].Total != "104.00" {
		t.Errorf("upstream line items = %+v", received.LineItems)
	}
	if received.SetPaid {
		t.Error("set_paid should be false")
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		sentinel error
	}{
		{"not found", http.StatusNotFound, `{"code":"woocommerce_rest_product_invalid_id","message":"Invalid ID."}`, model.ErrNotFound},
		{"unauthorized", http.StatusUnauthorized, `{"code":"woocommerce_rest_cannot_view","message":"Sorry."}`, model.ErrUnauthorized},
		{"bad request", http.StatusBadRequest, `{"code":"rest_invalid_param","message":"Invalid parameter."}`, model.ErrInvalidRequest},
		{"rate limited", http.StatusTooManyRequests, `{}`, model.ErrRateLimited},
		{"server error", http.StatusBadGateway, `{}`, model.ErrUpstreamError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			client := newTestClient(t, mux)

			_, err := client.GetProduct(context.Background(), 42)
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("error = %v, want %v", err, tt.sentinel)
			}
		})
	}
}
