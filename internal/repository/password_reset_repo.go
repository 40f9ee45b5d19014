package repository

import (
	"context"
	"time"

	"b2bportal/internal/domain"

	"gorm.io/gorm"
)

type PasswordResetRepository struct {
	db *gorm.DB
}

func NewPasswordResetRepository(db *gorm.DB) *PasswordResetRepository {
	return &PasswordResetRepository{db: db}
}

type passwordResetModel struct {
	ID        int64      `gorm:"column:id;primaryKey"`
	ClientID  int64      `gorm:"column:client_id;index"`
	TokenHash string     `gorm:"column:token_hash;uniqueIndex"`
	ExpiresAt time.Time  `gorm:"column:expires_at"`
	UsedAt    *time.Time `gorm:"column:used_at"`
	CreatedAt time.Time  `gorm:"column:created_at"`
}

func (passwordResetModel) TableName() string { return "password_resets" }

func toDomainPasswordReset(m passwordResetModel) *domain.PasswordReset {
	return &domain.PasswordReset{
		ID:        m.ID,
		ClientID:  m.ClientID,
		TokenHash: m.TokenHash,
		ExpiresAt: m.ExpiresAt,
		UsedAt:    m.UsedAt,
		CreatedAt: m.CreatedAt,
	}
}

func (r *PasswordResetRepository) Create(ctx context.Context, p *domain.PasswordReset) error {
	m := passwordResetModel{
		ClientID:  p.ClientID,
		TokenHash: p.TokenHash,
		ExpiresAt: p.ExpiresAt,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*p = *toDomainPasswordReset(m)
	return nil
}

func (r *PasswordResetRepository) GetByTokenHash(ctx context.Context, hash string) (*domain.PasswordReset, error) {
	var m passwordResetModel
	tx := r.db.WithContext(ctx).Where("token_hash = ?", hash).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainPasswordReset(m), nil
}

func (r *PasswordResetRepository) MarkUsed(ctx context.Context, id int64, at time.Time) error {
	return r.db.WithContext(ctx).Model(&passwordResetModel{}).
		Where("id = ? AND used_at IS NULL", id).
		Update("used_at", at).Error
}

// DeleteStale removes expired and already-used rows.
func (r *PasswordResetRepository) DeleteStale(ctx context.Context, now time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("expires_at < ? OR used_at IS NOT NULL", now).
		Delete(&passwordResetModel{})
	return tx.RowsAffected, tx.Error
}
