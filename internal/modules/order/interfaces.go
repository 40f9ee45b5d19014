package order

import (
	"context"

	"b2bportal/internal/domain"
	"b2bportal/internal/repository"

	"gorm.io/gorm"
)

type OrderRepositoryInterface interface {
	CreateTx(tx *gorm.DB, o *domain.Order) error
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context, f repository.OrderFilters, limit, offset int) ([]domain.Order, int64, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error
	UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error
	UpdateDiscount(ctx context.Context, id int64, discount, total float64) error
}

type CartRepositoryInterface interface {
	GetOrCreate(ctx context.Context, clientID int64) (*domain.Cart, error)
	ClearTx(tx *gorm.DB, cartID int64) error
}

type ProductRepositoryInterface interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}

type VariantRepositoryInterface interface {
	GetByIDForUpdate(tx *gorm.DB, id int64) (*domain.ProductVariant, error)
	UpdateStockTx(tx *gorm.DB, id int64, quantity int) error
}

type ClientRepositoryInterface interface {
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
}

// Publisher decouples order events from the websocket hub so the service can
// run without one (tests, seed).
type Publisher interface {
	Broadcast(eventType string, payload interface{})
}
