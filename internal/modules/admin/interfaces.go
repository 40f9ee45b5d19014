package admin

import (
	"context"

	"b2bportal/internal/domain"
	"b2bportal/internal/repository"
)

type AdminRepositoryInterface interface {
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
	GetByID(ctx context.Context, id int64) (*domain.Admin, error)
}

type SessionRepositoryInterface interface {
	Create(ctx context.Context, s *domain.Session) error
	DeleteByTokenHash(ctx context.Context, hash string) error
	DeleteByUser(ctx context.Context, userID int64, userType domain.UserType) error
}

type ClientRepositoryInterface interface {
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	List(ctx context.Context, status string, limit, offset int) ([]domain.Client, int64, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ClientStatus) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type CategoryRepositoryInterface interface {
	Create(ctx context.Context, c *domain.Category) error
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	GetAll(ctx context.Context, activeOnly bool) ([]domain.Category, error)
	Update(ctx context.Context, c *domain.Category) error
	SetActive(ctx context.Context, id int64, active bool) error
}

type ProductRepositoryInterface interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context, f repository.ProductFilters, limit, offset int) ([]domain.Product, int64, error)
	Update(ctx context.Context, p *domain.Product) error
	SetActive(ctx context.Context, id int64, active bool) error
}

type VariantRepositoryInterface interface {
	Create(ctx context.Context, v *domain.ProductVariant) error
	GetByID(ctx context.Context, id int64) (*domain.ProductVariant, error)
	GetByProductID(ctx context.Context, productID int64, activeOnly bool) ([]domain.ProductVariant, error)
	Update(ctx context.Context, v *domain.ProductVariant) error
	SetActive(ctx context.Context, id int64, active bool) error
	CountLowStock(ctx context.Context) (int64, error)
}

type OrderStatsInterface interface {
	CountByStatus(ctx context.Context) (map[string]int64, error)
	SumPaidRevenue(ctx context.Context) (float64, error)
}
