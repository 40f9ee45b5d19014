package admin

import "encoding/json"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateClientStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type ProductRequest struct {
	CategoryID           int64           `json:"category_id" binding:"required"`
	Name                 string          `json:"name" binding:"required"`
	Description          string          `json:"description"`
	BasePrice            float64         `json:"base_price" binding:"required,gt=0"`
	MinOrderQuantity     int             `json:"min_order_quantity" binding:"required,min=1"`
	IsCustomizable       bool            `json:"is_customizable"`
	CustomizationOptions json.RawMessage `json:"customization_options"`
}

type VariantRequest struct {
	SKU               string  `json:"sku" binding:"required"`
	Name              string  `json:"name" binding:"required"`
	Price             float64 `json:"price" binding:"required,gt=0"`
	StockQuantity     int     `json:"stock_quantity" binding:"min=0"`
	LowStockThreshold int     `json:"low_stock_threshold" binding:"min=0"`
}

// Dashboard aggregates the back-office landing numbers.
type Dashboard struct {
	ClientsByStatus map[string]int64 `json:"clients_by_status"`
	OrdersByStatus  map[string]int64 `json:"orders_by_status"`
	PaidRevenue     float64          `json:"paid_revenue"`
	LowStockCount   int64            `json:"low_stock_count"`
	AdminsOnline    int              `json:"admins_online"`
}
