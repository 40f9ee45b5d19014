package stock

import (
	"context"

	"b2bportal/internal/domain"

	"gorm.io/gorm"
)

type VariantRepositoryInterface interface {
	GetByIDForUpdate(tx *gorm.DB, id int64) (*domain.ProductVariant, error)
	UpdateStockTx(tx *gorm.DB, id int64, quantity int) error
	ListLowStock(ctx context.Context) ([]domain.ProductVariant, error)
}

type Publisher interface {
	Broadcast(eventType string, payload interface{})
}
