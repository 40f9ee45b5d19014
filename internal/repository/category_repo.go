package repository

import (
	"context"
	"time"

	"b2bportal/internal/domain"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

type categoryModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	Name        string    `gorm:"column:name"`
	Description *string   `gorm:"column:description"`
	IsActive    bool      `gorm:"column:is_active"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (categoryModel) TableName() string { return "categories" }

func toDomainCategory(m categoryModel) *domain.Category {
	var desc string
	if m.Description != nil {
		desc = *m.Description
	}
	return &domain.Category{
		ID:          m.ID,
		Name:        m.Name,
		Description: desc,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
	}
}

func toCategoryModel(c *domain.Category) categoryModel {
	var desc *string
	if c.Description != "" {
		v := c.Description
		desc = &v
	}
	return categoryModel{
		ID:          c.ID,
		Name:        c.Name,
		Description: desc,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
	}
}

func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	m := toCategoryModel(c)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*c = *toDomainCategory(m)
	return nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	var m categoryModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainCategory(m), nil
}

func (r *CategoryRepository) GetAll(ctx context.Context, activeOnly bool) ([]domain.Category, error) {
	q := r.db.WithContext(ctx).Model(&categoryModel{})
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var models []categoryModel
	if err := q.Order("name").Find(&models).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Category, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainCategory(m))
	}
	return out, nil
}

func (r *CategoryRepository) Update(ctx context.Context, c *domain.Category) error {
	m := toCategoryModel(c)
	return r.db.WithContext(ctx).Save(&m).Error
}

func (r *CategoryRepository) SetActive(ctx context.Context, id int64, active bool) error {
	tx := r.db.WithContext(ctx).Model(&categoryModel{}).
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
