package cart

import (
	"context"

	"b2bportal/internal/domain"
)

type CartRepositoryInterface interface {
	GetOrCreate(ctx context.Context, clientID int64) (*domain.Cart, error)
	AddItem(ctx context.Context, i *domain.CartItem) error
	GetItem(ctx context.Context, itemID int64) (*domain.CartItem, error)
	UpdateItemQuantity(ctx context.Context, itemID int64, quantity int) error
	DeleteItem(ctx context.Context, itemID int64) error
	Clear(ctx context.Context, cartID int64) error
}

type ProductRepositoryInterface interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}

type VariantRepositoryInterface interface {
	GetByID(ctx context.Context, id int64) (*domain.ProductVariant, error)
}
