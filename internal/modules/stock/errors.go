package stock

import "errors"

var (
	ErrVariantNotFound  = errors.New("variant not found")
	ErrInvalidOperation = errors.New("unknown stock operation")
	ErrInvalidQuantity  = errors.New("quantity must not be negative")
)
