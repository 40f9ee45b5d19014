package pricing

import (
	"math"

	"b2bportal/internal/domain"
)

const (
	TaxRate          = 0.18
	ShippingFee      = 500.0
	FreeShippingOver = 10000.0
)

type Line struct {
	UnitPrice float64
	Quantity  int
}

type Quote struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Shipping float64 `json:"shipping"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

// UnitPrice resolves the per-unit price of a line: the variant price when a
// variant is chosen, the product base price otherwise, plus the customization
// surcharge. ok is false when a customization key is unknown.
func UnitPrice(product *domain.Product, variant *domain.ProductVariant, logoSize, logoPosition string) (float64, bool) {
	price := product.BasePrice
	if variant != nil {
		price = variant.Price
	}

	surcharge, ok := domain.CustomizationSurcharge(product.CustomizationOptions, logoSize, logoPosition)
	if !ok {
		return 0, false
	}
	return price + surcharge, true
}

func Subtotal(lines []Line) float64 {
	var sum float64
	for _, l := range lines {
		sum += l.UnitPrice * float64(l.Quantity)
	}
	return sum
}

// Tax rounds to the nearest whole currency unit exactly once, at quote time,
// so the displayed and persisted amounts never disagree.
func Tax(subtotal float64) float64 {
	return math.Round(subtotal * TaxRate)
}

func Shipping(subtotal float64) float64 {
	if subtotal > FreeShippingOver {
		return 0
	}
	return ShippingFee
}

// QuoteFor computes the full money breakdown for a set of lines. Cart summary
// and order creation both go through here, which keeps the preview and the
// persisted order arithmetic identical.
func QuoteFor(lines []Line, discount float64) Quote {
	subtotal := Subtotal(lines)
	tax := Tax(subtotal)
	shipping := Shipping(subtotal)
	return Quote{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Discount: discount,
		Total:    subtotal + tax + shipping - discount,
	}
}
