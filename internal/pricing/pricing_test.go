package pricing

import (
	"testing"

	"b2bportal/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestQuoteFor_SmallOrderPaysShipping(t *testing.T) {
	q := QuoteFor([]Line{{UnitPrice: 500, Quantity: 2}}, 0)

	assert.Equal(t, 1000.0, q.Subtotal)
	assert.Equal(t, 180.0, q.Tax)
	assert.Equal(t, 500.0, q.Shipping)
	assert.Equal(t, 1680.0, q.Total)
}

func TestQuoteFor_LargeOrderShipsFree(t *testing.T) {
	q := QuoteFor([]Line{{UnitPrice: 1500, Quantity: 10}}, 0)

	assert.Equal(t, 15000.0, q.Subtotal)
	assert.Equal(t, 2700.0, q.Tax)
	assert.Equal(t, 0.0, q.Shipping)
	assert.Equal(t, 17700.0, q.Total)
}

func TestShipping_ThresholdIsExclusive(t *testing.T) {
	assert.Equal(t, 500.0, Shipping(10000))
	assert.Equal(t, 0.0, Shipping(10000.01))
}

func TestTax_RoundsToWholeUnit(t *testing.T) {
	// 333 * 0.18 = 59.94
	assert.Equal(t, 60.0, Tax(333))
	// 175 * 0.18 = 31.5, half rounds away from zero
	assert.Equal(t, 32.0, Tax(175))
}

func TestQuoteFor_TotalIdentity(t *testing.T) {
	q := QuoteFor([]Line{
		{UnitPrice: 120, Quantity: 7},
		{UnitPrice: 999.5, Quantity: 3},
	}, 250)

	assert.Equal(t, q.Subtotal+q.Tax+q.Shipping-q.Discount, q.Total)
}

func TestUnitPrice_VariantOverridesBase(t *testing.T) {
	product := &domain.Product{BasePrice: 100, IsCustomizable: true}
	variant := &domain.ProductVariant{Price: 140}

	price, ok := UnitPrice(product, variant, "", "")
	assert.True(t, ok)
	assert.Equal(t, 140.0, price)

	price, ok = UnitPrice(product, nil, "", "")
	assert.True(t, ok)
	assert.Equal(t, 100.0, price)
}

func TestUnitPrice_AddsCustomizationSurcharge(t *testing.T) {
	product := &domain.Product{BasePrice: 100, IsCustomizable: true}

	price, ok := UnitPrice(product, nil, "medium", "corner")
	assert.True(t, ok)
	assert.Equal(t, 225.0, price)
}

func TestUnitPrice_UnknownKeyRejected(t *testing.T) {
	product := &domain.Product{BasePrice: 100, IsCustomizable: true}

	_, ok := UnitPrice(product, nil, "gigantic", "")
	assert.False(t, ok)
}
