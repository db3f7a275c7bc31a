package wcv3

import (
	"storefront-proxy/internal/addons"
	"storefront-proxy/internal/model"
	"storefront-proxy/internal/pricing"
)

// BuildOrderLines maps normalized cart items onto wc/v3 order lines.
//
// Each add-on becomes a meta_data entry keyed by its field name, with the
// value rendered in WooCommerce's own display form ("Gold (+ $15.00)") so
// the admin order screen matches what the cart showed. Subtotal and Total
// are set explicitly from the recomputed line total — leaving them to the
// backend silently drops add-on pricing from the order.
func BuildOrderLines(items []model.CartItem) []OrderLineItem {
	lines := make([]OrderLineItem, 0, len(items))
	for _, item := range items {
		lines = append(lines, buildOrderLine(item))
	}
	return lines
}

func buildOrderLine(item model.CartItem) OrderLineItem {
	total := item.LineTotal
	if total == 0 {
		// Defensive: recompute if the caller handed us an unpriced item
		total = pricing.LineTotal(item.BasePrice, pricing.PerUnitAddonTotal(item.Addons), item.Quantity)
	}

	line := OrderLineItem{
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		Subtotal:  model.FormatCents(total),
		Total:     model.FormatCents(total),
	}
	for _, a := range item.Addons {
		line.MetaData = append(line.MetaData, OrderMeta{
			Key:   a.FieldName,
			Value: addons.FormatPricedLabel(a.Display(), a.Price),
		})
	}
	return line
}

// BuildOrderRequest assembles a wc/v3 order create payload from a
// normalized cart and checkout details. Orders are created unpaid and
// pending; payment capture happens out of band.
func BuildOrderRequest(cart *model.Cart, billing, shipping *model.Address, paymentMethod, customerNote string) *OrderRequest {
	req := &OrderRequest{
		PaymentMethod: paymentMethod,
		SetPaid:       false,
		CustomerNote:  customerNote,
		Billing:       addressToOrder(billing),
		Shipping:      addressToOrder(shipping),
		LineItems:     BuildOrderLines(cart.Items),
	}
	if cart.Token != "" {
		// Tie the order back to the Store API cart session for support lookups
		req.MetaData = append(req.MetaData, OrderMeta{Key: "_cart_token", Value: cart.Token})
	}
	return req
}

func addressToOrder(a *model.Address) *OrderAddress {
	if a == nil {
		return nil
	}
	return &OrderAddress{
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Company:   a.Company,
		Address1:  a.Address1,
		Address2:  a.Address2,
		City:      a.City,
		State:     a.State,
		Postcode:  a.Postcode,
		Country:   a.Country,
		Email:     a.Email,
		Phone:     a.Phone,
	}
}
