package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"b2bportal/internal/domain"
	"b2bportal/internal/pkg/password"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Service contains all business logic for client authentication: sessions,
// registration, and the password-reset flow.
type Service struct {
	clients     ClientRepositoryInterface
	sessions    SessionRepositoryInterface
	resets      PasswordResetRepositoryInterface
	sessionTTL  time.Duration
	resetTTL    time.Duration
	resetSecret []byte
}

func NewService(
	clients ClientRepositoryInterface,
	sessions SessionRepositoryInterface,
	resets PasswordResetRepositoryInterface,
	sessionTTL time.Duration,
	resetTTL time.Duration,
	resetSecret string,
) *Service {
	return &Service{
		clients:     clients,
		sessions:    sessions,
		resets:      resets,
		sessionTTL:  sessionTTL,
		resetTTL:    resetTTL,
		resetSecret: []byte(resetSecret),
	}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.Client, error) {
	if !password.ValidatePassword(req.Password) {
		return nil, ErrWeakPassword
	}

	exists, err := s.clients.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	client := &domain.Client{
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash:  hash,
		CompanyName:   req.CompanyName,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Address:       req.Address,
		Status:        domain.ClientPending,
	}

	if err := s.clients.Create(ctx, client); err != nil {
		// the pre-check races with concurrent registration; the unique
		// index has the final word
		if isUniqueViolation(err) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	client.PasswordHash = ""
	return client, nil
}

// Login verifies credentials and opens a session. Only suspended blocks
// login; a pending client can sign in (checkout is gated separately).
func (s *Service) Login(ctx context.Context, req LoginRequest) (*domain.Client, string, error) {
	client, err := s.clients.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if client.Status == domain.ClientSuspended {
		return nil, "", ErrAccountSuspended
	}

	if !password.Verify(req.Password, client.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := generateOpaqueToken()
	if err != nil {
		return nil, "", err
	}

	session := &domain.Session{
		UserID:    client.ID,
		UserType:  domain.UserTypeClient,
		TokenHash: password.HashToken(token),
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, "", err
	}

	client.PasswordHash = ""
	return client, token, nil
}

func (s *Service) Logout(ctx context.Context, rawToken string) error {
	if rawToken == "" {
		return nil
	}
	return s.sessions.DeleteByTokenHash(ctx, password.HashToken(rawToken))
}

func (s *Service) GetCurrentClient(ctx context.Context, clientID int64) (*domain.Client, error) {
	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	client.PasswordHash = ""
	return client, nil
}

type resetClaims struct {
	ClientID int64 `json:"client_id"`
	jwt.RegisteredClaims
}

// ForgotPassword issues a signed, single-use reset token. A missing account
// returns an empty token and no error so the endpoint cannot be used to
// enumerate registered emails.
func (s *Service) ForgotPassword(ctx context.Context, email string) (string, error) {
	client, err := s.clients.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}

	now := time.Now()
	claims := resetClaims{
		ClientID: client.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.resetTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.resetSecret)
	if err != nil {
		return "", err
	}

	reset := &domain.PasswordReset{
		ClientID:  client.ID,
		TokenHash: password.HashToken(token),
		ExpiresAt: now.Add(s.resetTTL),
	}
	if err := s.resets.Create(ctx, reset); err != nil {
		return "", err
	}

	return token, nil
}

// ResetPassword validates the signed token against its stored row, rotates
// the password, and revokes every open session of the client.
func (s *Service) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	if !password.ValidatePassword(newPassword) {
		return ErrWeakPassword
	}

	var claims resetClaims
	parsed, err := jwt.ParseWithClaims(rawToken, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidResetToken
		}
		return s.resetSecret, nil
	})
	if err != nil || !parsed.Valid {
		return ErrInvalidResetToken
	}

	reset, err := s.resets.GetByTokenHash(ctx, password.HashToken(rawToken))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}

	now := time.Now()
	if reset.UsedAt != nil || !reset.ExpiresAt.After(now) || reset.ClientID != claims.ClientID {
		return ErrInvalidResetToken
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.clients.UpdatePasswordHash(ctx, reset.ClientID, hash); err != nil {
		return err
	}
	if err := s.resets.MarkUsed(ctx, reset.ID, now); err != nil {
		return err
	}

	return s.sessions.DeleteByUser(ctx, reset.ClientID, domain.UserTypeClient)
}

func generateOpaqueToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
