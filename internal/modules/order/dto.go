package order

type CreateOrderRequest struct {
	ShippingName  string `json:"shipping_name" validate:"required"`
	ShippingPhone string `json:"shipping_phone" validate:"required"`
	ShippingAddr  string `json:"shipping_address" validate:"required"`
	Notes         string `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

type ApplyDiscountRequest struct {
	Discount float64 `json:"discount"`
}
