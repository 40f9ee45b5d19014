package catalog

import (
	"encoding/json"
	"time"

	"b2bportal/internal/domain"
)

// VariantView is a ProductVariant plus its computed stock level. The level is
// derived on read so it can never drift from the quantity.
type VariantView struct {
	ID                int64             `json:"id"`
	ProductID         int64             `json:"product_id"`
	SKU               string            `json:"sku"`
	Name              string            `json:"name"`
	Price             float64           `json:"price"`
	StockQuantity     int               `json:"stock_quantity"`
	LowStockThreshold int               `json:"low_stock_threshold"`
	StockLevel        domain.StockLevel `json:"stock_level"`
}

func toVariantView(v domain.ProductVariant) VariantView {
	return VariantView{
		ID:                v.ID,
		ProductID:         v.ProductID,
		SKU:               v.SKU,
		Name:              v.Name,
		Price:             v.Price,
		StockQuantity:     v.StockQuantity,
		LowStockThreshold: v.LowStockThreshold,
		StockLevel:        v.StockLevel(),
	}
}

type ProductDetail struct {
	ID                   int64           `json:"id"`
	CategoryID           int64           `json:"category_id"`
	Name                 string          `json:"name"`
	Description          string          `json:"description,omitempty"`
	BasePrice            float64         `json:"base_price"`
	MinOrderQuantity     int             `json:"min_order_quantity"`
	IsCustomizable       bool            `json:"is_customizable"`
	CustomizationOptions json.RawMessage `json:"customization_options,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
	Variants             []VariantView   `json:"variants"`
}
