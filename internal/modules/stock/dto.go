package stock

import "b2bportal/internal/domain"

const (
	OpSet      = "set"
	OpAdd      = "add"
	OpSubtract = "subtract"
)

type UpdateStockRequest struct {
	Operation string `json:"operation" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// Alert is one low-stock row in the back-office report.
type Alert struct {
	VariantID     int64             `json:"variant_id"`
	ProductID     int64             `json:"product_id"`
	SKU           string            `json:"sku"`
	Name          string            `json:"name"`
	StockQuantity int               `json:"stock_quantity"`
	Threshold     int               `json:"low_stock_threshold"`
	StockLevel    domain.StockLevel `json:"stock_level"`
}
