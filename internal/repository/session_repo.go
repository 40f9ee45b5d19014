package repository

import (
	"context"
	"time"

	"b2bportal/internal/domain"

	"gorm.io/gorm"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

type sessionModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	UserID    int64     `gorm:"column:user_id;index"`
	UserType  string    `gorm:"column:user_type"`
	TokenHash string    `gorm:"column:token_hash;uniqueIndex"`
	ExpiresAt time.Time `gorm:"column:expires_at"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (sessionModel) TableName() string { return "sessions" }

func toDomainSession(m sessionModel) *domain.Session {
	return &domain.Session{
		ID:        m.ID,
		UserID:    m.UserID,
		UserType:  domain.UserType(m.UserType),
		TokenHash: m.TokenHash,
		ExpiresAt: m.ExpiresAt,
		CreatedAt: m.CreatedAt,
	}
}

func (r *SessionRepository) Create(ctx context.Context, s *domain.Session) error {
	m := sessionModel{
		UserID:    s.UserID,
		UserType:  string(s.UserType),
		TokenHash: s.TokenHash,
		ExpiresAt: s.ExpiresAt,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*s = *toDomainSession(m)
	return nil
}

func (r *SessionRepository) GetByTokenHash(ctx context.Context, hash string) (*domain.Session, error) {
	var m sessionModel
	tx := r.db.WithContext(ctx).Where("token_hash = ?", hash).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainSession(m), nil
}

func (r *SessionRepository) DeleteByTokenHash(ctx context.Context, hash string) error {
	return r.db.WithContext(ctx).Where("token_hash = ?", hash).Delete(&sessionModel{}).Error
}

// DeleteByUser drops every session of one principal, used on suspension and
// password reset.
func (r *SessionRepository) DeleteByUser(ctx context.Context, userID int64, userType domain.UserType) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND user_type = ?", userID, string(userType)).
		Delete(&sessionModel{}).Error
}

func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&sessionModel{})
	return tx.RowsAffected, tx.Error
}
