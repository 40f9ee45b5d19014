package repository

import (
	"context"
	"encoding/json"
	"time"

	"b2bportal/internal/domain"

	"gorm.io/gorm"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

type productModel struct {
	ID                   int64     `gorm:"column:id;primaryKey"`
	CategoryID           int64     `gorm:"column:category_id;index"`
	Name                 string    `gorm:"column:name"`
	Description          *string   `gorm:"column:description"`
	BasePrice            float64   `gorm:"column:base_price"`
	MinOrderQuantity     int       `gorm:"column:min_order_quantity"`
	IsCustomizable       bool      `gorm:"column:is_customizable"`
	CustomizationOptions *string   `gorm:"column:customization_options;type:text"`
	IsActive             bool      `gorm:"column:is_active"`
	CreatedAt            time.Time `gorm:"column:created_at"`
	UpdatedAt            time.Time `gorm:"column:updated_at"`
}

func (productModel) TableName() string { return "products" }

func toDomainProduct(m productModel) *domain.Product {
	var desc string
	if m.Description != nil {
		desc = *m.Description
	}
	var opts json.RawMessage
	if m.CustomizationOptions != nil && *m.CustomizationOptions != "" {
		opts = json.RawMessage(*m.CustomizationOptions)
	}

	return &domain.Product{
		ID:                   m.ID,
		CategoryID:           m.CategoryID,
		Name:                 m.Name,
		Description:          desc,
		BasePrice:            m.BasePrice,
		MinOrderQuantity:     m.MinOrderQuantity,
		IsCustomizable:       m.IsCustomizable,
		CustomizationOptions: opts,
		IsActive:             m.IsActive,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

func toProductModel(p *domain.Product) productModel {
	var desc *string
	if p.Description != "" {
		v := p.Description
		desc = &v
	}
	var opts *string
	if len(p.CustomizationOptions) > 0 {
		v := string(p.CustomizationOptions)
		opts = &v
	}

	return productModel{
		ID:                   p.ID,
		CategoryID:           p.CategoryID,
		Name:                 p.Name,
		Description:          desc,
		BasePrice:            p.BasePrice,
		MinOrderQuantity:     p.MinOrderQuantity,
		IsCustomizable:       p.IsCustomizable,
		CustomizationOptions: opts,
		IsActive:             p.IsActive,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

// ProductFilters narrows List results. Zero values mean "no filter".
type ProductFilters struct {
	CategoryID int64
	Search     string
	ActiveOnly bool
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	m := toProductModel(p)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*p = *toDomainProduct(m)
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var m productModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainProduct(m), nil
}

func (r *ProductRepository) List(ctx context.Context, f ProductFilters, limit, offset int) ([]domain.Product, int64, error) {
	q := r.db.WithContext(ctx).Model(&productModel{})
	if f.CategoryID > 0 {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.Search != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+f.Search+"%")
	}
	if f.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []productModel
	if err := q.Order("name").Limit(limit).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, err
	}

	out := make([]domain.Product, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainProduct(m))
	}
	return out, total, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	m := toProductModel(p)
	return r.db.WithContext(ctx).Save(&m).Error
}

// SetActive soft-deletes (or restores) a product.
func (r *ProductRepository) SetActive(ctx context.Context, id int64, active bool) error {
	tx := r.db.WithContext(ctx).Model(&productModel{}).
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

func (r *ProductRepository) DB() *gorm.DB { return r.db }
