package domain

import "time"

type UserType string

const (
	UserTypeClient UserType = "client"
	UserTypeAdmin  UserType = "admin"
)

// Session maps one opaque cookie token to one acting principal. The raw token
// never touches the database, only its sha256 hash. Expiry is lazy: lookups
// compare ExpiresAt, cmd/session_cleanup prunes dead rows.
type Session struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	UserType  UserType  `json:"user_type"`
	TokenHash string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// PasswordReset is a single-use reset credential. The signed reset token the
// client receives must also match an unused, unexpired row here.
type PasswordReset struct {
	ID        int64      `json:"id"`
	ClientID  int64      `json:"client_id"`
	TokenHash string     `json:"-"`
	ExpiresAt time.Time  `json:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
