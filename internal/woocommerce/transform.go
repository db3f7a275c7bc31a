package woocommerce

import (
	"fmt"
	"log/slog"

	"storefront-proxy/internal/addons"
	"storefront-proxy/internal/model"
	"storefront-proxy/internal/pricing"
)

// CartToModel transforms a Store API cart response into the normalized
// cart. Line totals are recomputed locally because the Store API's own
// totals omit add-on prices; divergence beyond the rounding tolerance is
// surfaced as a warning message rather than silently preferring either
// figure.
func CartToModel(cart *WooCartResponse, cartToken string, logger *slog.Logger) *model.Cart {
	if cart == nil {
		return &model.Cart{Token: cartToken, Items: []model.CartItem{}}
	}

	out := &model.Cart{
		Token: cartToken,
		Items: make([]model.CartItem, 0, len(cart.Items)),
	}

	for _, item := range cart.Items {
		normalized, messages := transformCartItem(&item, logger)
		out.Items = append(out.Items, normalized)
		out.Messages = append(out.Messages, messages...)
	}

	out.Totals = pricing.ComputeTotals(
		out.Items,
		cart.Totals.CurrencyCode,
		model.ParseMinorUnits(cart.Totals.TotalDiscount),
		model.ParseMinorUnits(cart.Totals.TotalShipping),
		model.ParseMinorUnits(cart.Totals.TotalTax),
	)

	// Flag cart-level divergence too: the recomputed grand total should
	// agree with the reported one once add-ons are in both.
	reportedTotal := model.ParseMinorUnits(cart.Totals.TotalPrice)
	if _, ok := pricing.Reconcile(reportedTotal, out.Totals.Total, perCartTolerance(len(out.Items))); !ok {
		logger.Warn("cart total mismatch",
			slog.Int64("reported", reportedTotal),
			slog.Int64("recomputed", out.Totals.Total),
		)
		out.Messages = append(out.Messages, model.NewWarningMessage(
			"cart_total_mismatch",
			fmt.Sprintf("store-reported total %s differs from recomputed %s",
				model.FormatDisplayPrice(reportedTotal),
				model.FormatDisplayPrice(out.Totals.Total)),
		))
	}

	for _, cartErr := range cart.Errors {
		out.Messages = append(out.Messages, model.NewErrorMessage(
			cartErr.Code, cartErr.Message, model.SeverityRecoverable))
	}

	return out
}

// transformCartItem normalizes a single cart item: base price from the
// minor-unit prices block, add-ons from whichever shape the plugin used,
// line total recomputed and reconciled against the reported one.
func transformCartItem(item *WooCartItem, logger *slog.Logger) (model.CartItem, []model.Message) {
	selected, messages := addons.NormalizeItem(
		item.Extensions.Addons,
		item.Extensions.ProductAddons,
		item.ItemData,
	)

	basePrice := model.ParseMinorUnits(item.Prices.Price)
	addonTotal := pricing.PerUnitAddonTotal(selected)
	recomputed := pricing.LineTotal(basePrice, addonTotal, item.Quantity)
	reported := model.ParseMinorUnits(item.Totals.LineTotal)

	lineTotal, ok := pricing.Reconcile(reported, recomputed, pricing.DefaultTolerance)
	if !ok {
		logger.Warn("line total mismatch",
			slog.String("item_key", item.Key),
			slog.Int("product_id", item.ID),
			slog.Int64("reported", reported),
			slog.Int64("recomputed", recomputed),
		)
		messages = append(messages, model.NewWarningMessage(
			"line_total_mismatch",
			fmt.Sprintf("line total for %q recomputed as %s (store reported %s)",
				item.Name,
				model.FormatDisplayPrice(recomputed),
				model.FormatDisplayPrice(reported)),
		))
	}

	return model.CartItem{
		Key:        item.Key,
		ProductID:  item.ID,
		Name:       item.Name,
		Quantity:   item.Quantity,
		ImageURL:   firstImageURL(item.Images),
		Addons:     selected,
		BasePrice:  basePrice,
		AddonTotal: addonTotal,
		LineTotal:  lineTotal,
	}, messages
}

// perCartTolerance scales the per-line tolerance to the cart: each line can
// legitimately round one cent either way.
func perCartTolerance(lines int) int64 {
	if lines < 1 {
		return pricing.DefaultTolerance
	}
	return int64(lines) * pricing.DefaultTolerance
}

// firstImageURL extracts the first image URL, or empty string if none.
func firstImageURL(images []WooImage) string {
	if len(images) > 0 {
		return images[0].Src
	}
	return ""
}

// AddressToWire converts a normalized address to the Store API shape.
func AddressToWire(a *model.Address) *WooAddress {
	if a == nil {
		return nil
	}
	return &WooAddress{
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
