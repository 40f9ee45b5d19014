package repository

import (
	"context"
	"errors"
	"time"

	"b2bportal/internal/domain"

	"gorm.io/gorm"
)

type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

type cartModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	ClientID  int64     `gorm:"column:client_id;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (cartModel) TableName() string { return "carts" }

type cartItemModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	CartID       int64     `gorm:"column:cart_id;index"`
	ProductID    int64     `gorm:"column:product_id"`
	VariantID    *int64    `gorm:"column:variant_id"`
	Quantity     int       `gorm:"column:quantity"`
	LogoSize     *string   `gorm:"column:logo_size"`
	LogoPosition *string   `gorm:"column:logo_position"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (cartItemModel) TableName() string { return "cart_items" }

func toDomainCartItem(m cartItemModel) domain.CartItem {
	var size, pos string
	if m.LogoSize != nil {
		size = *m.LogoSize
	}
	if m.LogoPosition != nil {
		pos = *m.LogoPosition
	}
	return domain.CartItem{
		ID:           m.ID,
		CartID:       m.CartID,
		ProductID:    m.ProductID,
		VariantID:    m.VariantID,
		Quantity:     m.Quantity,
		LogoSize:     size,
		LogoPosition: pos,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toCartItemModel(i *domain.CartItem) cartItemModel {
	var size, pos *string
	if i.LogoSize != "" {
		v := i.LogoSize
		size = &v
	}
	if i.LogoPosition != "" {
		v := i.LogoPosition
		pos = &v
	}
	return cartItemModel{
		ID:           i.ID,
		CartID:       i.CartID,
		ProductID:    i.ProductID,
		VariantID:    i.VariantID,
		Quantity:     i.Quantity,
		LogoSize:     size,
		LogoPosition: pos,
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}

// GetOrCreate returns the client's cart, creating the row on first use.
// The unique index on client_id keeps it one cart per client even under
// concurrent first requests.
func (r *CartRepository) GetOrCreate(ctx context.Context, clientID int64) (*domain.Cart, error) {
	var m cartModel
	err := r.db.WithContext(ctx).Where("client_id = ?", clientID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		m = cartModel{ClientID: clientID}
		if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
			// lost the race: someone else created it
			if err2 := r.db.WithContext(ctx).Where("client_id = ?", clientID).First(&m).Error; err2 != nil {
				return nil, err
			}
		}
	} else if err != nil {
		return nil, err
	}

	items, err := r.getItems(ctx, m.ID)
	if err != nil {
		return nil, err
	}

	return &domain.Cart{
		ID:        m.ID,
		ClientID:  m.ClientID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		Items:     items,
	}, nil
}

func (r *CartRepository) getItems(ctx context.Context, cartID int64) ([]domain.CartItem, error) {
	var models []cartItemModel
	if err := r.db.WithContext(ctx).Where("cart_id = ?", cartID).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]domain.CartItem, 0, len(models))
	for _, m := range models {
		out = append(out, toDomainCartItem(m))
	}
	return out, nil
}

func (r *CartRepository) AddItem(ctx context.Context, i *domain.CartItem) error {
	m := toCartItemModel(i)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*i = toDomainCartItem(m)
	return nil
}

func (r *CartRepository) GetItem(ctx context.Context, itemID int64) (*domain.CartItem, error) {
	var m cartItemModel
	tx := r.db.WithContext(ctx).First(&m, itemID)
	if tx.Error != nil {
		return nil, tx.Error
	}
	item := toDomainCartItem(m)
	return &item, nil
}

func (r *CartRepository) UpdateItemQuantity(ctx context.Context, itemID int64, quantity int) error {
	tx := r.db.WithContext(ctx).Model(&cartItemModel{}).
		Where("id = ?", itemID).
		Update("quantity", quantity)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *CartRepository) DeleteItem(ctx context.Context, itemID int64) error {
	tx := r.db.WithContext(ctx).Delete(&cartItemModel{}, itemID)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *CartRepository) Clear(ctx context.Context, cartID int64) error {
	return r.db.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&cartItemModel{}).Error
}

// ClearTx empties a cart inside an existing transaction (checkout path).
func (r *CartRepository) ClearTx(tx *gorm.DB, cartID int64) error {
	return tx.Where("cart_id = ?", cartID).Delete(&cartItemModel{}).Error
}

func (r *CartRepository) DB() *gorm.DB { return r.db }
