package domain

import (
	"encoding/json"
	"time"
)

type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// Product is a catalog entry. CustomizationOptions, when present, overrides
// the default surcharge table per key (see customization.go).
type Product struct {
	ID                   int64           `json:"id"`
	CategoryID           int64           `json:"category_id"`
	Name                 string          `json:"name"`
	Description          string          `json:"description,omitempty"`
	BasePrice            float64         `json:"base_price"`
	MinOrderQuantity     int             `json:"min_order_quantity"`
	IsCustomizable       bool            `json:"is_customizable"`
	CustomizationOptions json.RawMessage `json:"customization_options,omitempty"`
	IsActive             bool            `json:"is_active"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`

	Variants []ProductVariant `json:"variants,omitempty"`
}

type StockLevel string

const (
	StockIn  StockLevel = "in_stock"
	StockLow StockLevel = "low_stock"
	StockOut StockLevel = "out_of_stock"
)

// ProductVariant is one SKU under a product with its own price and stock
// count. StockQuantity never goes negative.
type ProductVariant struct {
	ID                int64     `json:"id"`
	ProductID         int64     `json:"product_id"`
	SKU               string    `json:"sku"`
	Name              string    `json:"name"`
	Price             float64   `json:"price"`
	StockQuantity     int       `json:"stock_quantity"`
	LowStockThreshold int       `json:"low_stock_threshold"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// StockLevel is a view computation, never stored, so it is always consistent
// with the latest quantity.
func (v *ProductVariant) StockLevel() StockLevel {
	switch {
	case v.StockQuantity == 0:
		return StockOut
	case v.StockQuantity <= v.LowStockThreshold:
		return StockLow
	default:
		return StockIn
	}
}
