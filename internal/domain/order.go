package domain

import "time"

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// Order is an immutable snapshot of a cart at checkout time. Item prices and
// names are copied in, not referenced live, so later catalog edits never
// alter historical orders.
//
// Invariant: TotalAmount == Subtotal + TaxAmount + ShippingAmount - DiscountAmount.
type Order struct {
	ID             int64         `json:"id"`
	OrderNumber    string        `json:"order_number"`
	ClientID       int64         `json:"client_id"`
	Status         OrderStatus   `json:"status"`
	PaymentStatus  PaymentStatus `json:"payment_status"`
	Subtotal       float64       `json:"subtotal"`
	TaxAmount      float64       `json:"tax_amount"`
	ShippingAmount float64       `json:"shipping_amount"`
	DiscountAmount float64       `json:"discount_amount"`
	TotalAmount    float64       `json:"total_amount"`
	ShippingName   string        `json:"shipping_name"`
	ShippingPhone  string        `json:"shipping_phone"`
	ShippingAddr   string        `json:"shipping_address"`
	Notes          string        `json:"notes,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`

	Items []OrderItem `json:"items,omitempty"`
}

type OrderItem struct {
	ID           int64   `json:"id"`
	OrderID      int64   `json:"order_id"`
	ProductID    int64   `json:"product_id"`
	VariantID    *int64  `json:"variant_id,omitempty"`
	ProductName  string  `json:"product_name"`
	VariantName  string  `json:"variant_name,omitempty"`
	LogoSize     string  `json:"logo_size,omitempty"`
	LogoPosition string  `json:"logo_position,omitempty"`
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unit_price"`
	TotalPrice   float64 `json:"total_price"`
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// forward rank of the fulfilment chain; cancelled sits outside it
var orderStatusRank = map[OrderStatus]int{
	OrderPending:    0,
	OrderConfirmed:  1,
	OrderProcessing: 2,
	OrderShipped:    3,
	OrderDelivered:  4,
}

// CanTransitionTo restricts status moves to the forward chain
// pending→confirmed→processing→shipped→delivered, with cancellation allowed
// from any pre-delivered state. The system this replaces allowed any→any;
// the tightening is deliberate and documented in DESIGN.md.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if !next.Valid() || s == next {
		return false
	}
	if s == OrderDelivered || s == OrderCancelled {
		return false
	}
	if next == OrderCancelled {
		return true
	}
	return orderStatusRank[next] == orderStatusRank[s]+1
}
