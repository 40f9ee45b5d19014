package cart

import (
	"b2bportal/internal/pricing"
)

type AddItemRequest struct {
	ProductID    int64  `json:"product_id" binding:"required"`
	VariantID    *int64 `json:"variant_id"`
	Quantity     int    `json:"quantity" binding:"required,min=1"`
	LogoSize     string `json:"logo_size"`
	LogoPosition string `json:"logo_position"`
}

type UpdateItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// Line is a cart item with its product and variant resolved and priced.
type Line struct {
	ID           int64   `json:"id"`
	ProductID    int64   `json:"product_id"`
	ProductName  string  `json:"product_name"`
	VariantID    *int64  `json:"variant_id,omitempty"`
	VariantName  string  `json:"variant_name,omitempty"`
	SKU          string  `json:"sku,omitempty"`
	Quantity     int     `json:"quantity"`
	LogoSize     string  `json:"logo_size,omitempty"`
	LogoPosition string  `json:"logo_position,omitempty"`
	UnitPrice    float64 `json:"unit_price"`
	LineTotal    float64 `json:"line_total"`
}

type View struct {
	ID      int64         `json:"id"`
	Items   []Line        `json:"items"`
	Summary pricing.Quote `json:"summary"`
}
