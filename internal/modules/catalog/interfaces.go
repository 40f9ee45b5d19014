package catalog

import (
	"context"

	"b2bportal/internal/domain"
	"b2bportal/internal/repository"
)

type CategoryRepositoryInterface interface {
	GetAll(ctx context.Context, activeOnly bool) ([]domain.Category, error)
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
}

type ProductRepositoryInterface interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context, f repository.ProductFilters, limit, offset int) ([]domain.Product, int64, error)
}

type VariantRepositoryInterface interface {
	GetByProductID(ctx context.Context, productID int64, activeOnly bool) ([]domain.ProductVariant, error)
}
