package auth

import "errors"

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountSuspended   = errors.New("account suspended")
	ErrWeakPassword       = errors.New("password too weak")
	ErrInvalidResetToken  = errors.New("invalid reset token")
)
