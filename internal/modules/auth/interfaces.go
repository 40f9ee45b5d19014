package auth

import (
	"context"
	"time"

	"b2bportal/internal/domain"
)

// ClientRepositoryInterface — only the methods the auth service uses.
type ClientRepositoryInterface interface {
	Create(ctx context.Context, c *domain.Client) error
	GetByEmail(ctx context.Context, email string) (*domain.Client, error)
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
}

type SessionRepositoryInterface interface {
	Create(ctx context.Context, s *domain.Session) error
	DeleteByTokenHash(ctx context.Context, hash string) error
	DeleteByUser(ctx context.Context, userID int64, userType domain.UserType) error
}

type PasswordResetRepositoryInterface interface {
	Create(ctx context.Context, p *domain.PasswordReset) error
	GetByTokenHash(ctx context.Context, hash string) (*domain.PasswordReset, error)
	MarkUsed(ctx context.Context, id int64, at time.Time) error
}
