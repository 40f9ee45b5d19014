package events

type OrderCreatedPayload struct {
	OrderID     int64   `json:"order_id"`
	OrderNumber string  `json:"order_number"`
	ClientID    int64   `json:"client_id"`
	TotalAmount float64 `json:"total_amount"`
	ItemCount   int     `json:"item_count"`
}

type LowStockPayload struct {
	VariantID int64  `json:"variant_id"`
	SKU       string `json:"sku"`
	Remaining int    `json:"remaining"`
	Threshold int    `json:"threshold"`
}
