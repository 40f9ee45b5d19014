package domain

import "time"

// Cart is the per-client mutable collection of lines. One cart per client,
// enforced by a unique index on client_id. Cleared inside the checkout
// transaction.
type Cart struct {
	ID        int64     `json:"id"`
	ClientID  int64     `json:"client_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items []CartItem `json:"items,omitempty"`
}

type CartItem struct {
	ID           int64     `json:"id"`
	CartID       int64     `json:"cart_id"`
	ProductID    int64     `json:"product_id"`
	VariantID    *int64    `json:"variant_id,omitempty"`
	Quantity     int       `json:"quantity"`
	LogoSize     string    `json:"logo_size,omitempty"`
	LogoPosition string    `json:"logo_position,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SameLine reports whether another item addresses the same (product, variant,
// customization) combination and should be merged rather than duplicated.
func (i *CartItem) SameLine(other *CartItem) bool {
	if i.ProductID != other.ProductID {
		return false
	}
	if (i.VariantID == nil) != (other.VariantID == nil) {
		return false
	}
	if i.VariantID != nil && *i.VariantID != *other.VariantID {
		return false
	}
	return i.LogoSize == other.LogoSize && i.LogoPosition == other.LogoPosition
}
