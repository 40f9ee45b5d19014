package admin

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("admin account is disabled")
	ErrClientNotFound     = errors.New("client not found")
	ErrInvalidStatus      = errors.New("invalid client status")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrVariantNotFound    = errors.New("variant not found")
	ErrSKUExists          = errors.New("sku already in use")
	ErrInvalidPayload     = errors.New("invalid payload")
)
