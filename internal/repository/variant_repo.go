package repository

import (
	"context"
	"time"

	"b2bportal/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VariantRepository struct {
	db *gorm.DB
}

func NewVariantRepository(db *gorm.DB) *VariantRepository {
	return &VariantRepository{db: db}
}

type variantModel struct {
	ID                int64     `gorm:"column:id;primaryKey"`
	ProductID         int64     `gorm:"column:product_id;index"`
	SKU               string    `gorm:"column:sku;uniqueIndex"`
	Name              string    `gorm:"column:name"`
	Price             float64   `gorm:"column:price"`
	StockQuantity     int       `gorm:"column:stock_quantity"`
	LowStockThreshold int       `gorm:"column:low_stock_threshold"`
	IsActive          bool      `gorm:"column:is_active"`
	CreatedAt         time.Time `gorm:"column:created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at"`
}

func (variantModel) TableName() string { return "product_variants" }

func toDomainVariant(m variantModel) *domain.ProductVariant {
	return &domain.ProductVariant{
		ID:                m.ID,
		ProductID:         m.ProductID,
		SKU:               m.SKU,
		Name:              m.Name,
		Price:             m.Price,
		StockQuantity:     m.StockQuantity,
		LowStockThreshold: m.LowStockThreshold,
		IsActive:          m.IsActive,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func toVariantModel(v *domain.ProductVariant) variantModel {
	return variantModel{
		ID:                v.ID,
		ProductID:         v.ProductID,
		SKU:               v.SKU,
		Name:              v.Name,
		Price:             v.Price,
		StockQuantity:     v.StockQuantity,
		LowStockThreshold: v.LowStockThreshold,
		IsActive:          v.IsActive,
		CreatedAt:         v.CreatedAt,
		UpdatedAt:         v.UpdatedAt,
	}
}

func (r *VariantRepository) Create(ctx context.Context, v *domain.ProductVariant) error {
	m := toVariantModel(v)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*v = *toDomainVariant(m)
	return nil
}

func (r *VariantRepository) GetByID(ctx context.Context, id int64) (*domain.ProductVariant, error) {
	var m variantModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainVariant(m), nil
}

func (r *VariantRepository) GetByProductID(ctx context.Context, productID int64, activeOnly bool) ([]domain.ProductVariant, error) {
	q := r.db.WithContext(ctx).Model(&variantModel{}).Where("product_id = ?", productID)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var models []variantModel
	if err := q.Order("sku").Find(&models).Error; err != nil {
		return nil, err
	}

	out := make([]domain.ProductVariant, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainVariant(m))
	}
	return out, nil
}

func (r *VariantRepository) Update(ctx context.Context, v *domain.ProductVariant) error {
	m := toVariantModel(v)
	return r.db.WithContext(ctx).Save(&m).Error
}

func (r *VariantRepository) SetActive(ctx context.Context, id int64, active bool) error {
	tx := r.db.WithContext(ctx).Model(&variantModel{}).
		Where("id = ?", id).
		Update("is_active", active)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetByIDForUpdate row-locks a variant inside tx so concurrent checkouts and
// stock mutations serialize on the row. SQLite has no FOR UPDATE and
// serializes writers on its own, so the clause is added only on postgres.
func (r *VariantRepository) GetByIDForUpdate(tx *gorm.DB, id int64) (*domain.ProductVariant, error) {
	if tx.Dialector.Name() == "postgres" {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var m variantModel
	res := tx.First(&m, id)
	if res.Error != nil {
		return nil, res.Error
	}
	return toDomainVariant(m), nil
}

// UpdateStockTx writes a new quantity inside tx. Callers own the clamp logic.
func (r *VariantRepository) UpdateStockTx(tx *gorm.DB, id int64, quantity int) error {
	return tx.Model(&variantModel{}).Where("id = ?", id).Update("stock_quantity", quantity).Error
}

// ListLowStock returns active variants at or under their threshold.
func (r *VariantRepository) ListLowStock(ctx context.Context) ([]domain.ProductVariant, error) {
	var models []variantModel
	tx := r.db.WithContext(ctx).
		Where("is_active = ? AND stock_quantity <= low_stock_threshold", true).
		Order("stock_quantity").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.ProductVariant, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainVariant(m))
	}
	return out, nil
}

func (r *VariantRepository) CountLowStock(ctx context.Context) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&variantModel{}).
		Where("is_active = ? AND stock_quantity <= low_stock_threshold", true).
		Count(&cnt)
	return cnt, tx.Error
}

func (r *VariantRepository) DB() *gorm.DB { return r.db }
