package cart

import "errors"

var (
	ErrProductNotFound      = errors.New("product not found or inactive")
	ErrVariantNotFound      = errors.New("variant not found or inactive")
	ErrVariantMismatch      = errors.New("variant does not belong to product")
	ErrBelowMinQuantity     = errors.New("quantity below product minimum")
	ErrNotCustomizable      = errors.New("product does not support customization")
	ErrUnknownCustomization = errors.New("unknown customization option")
	ErrItemNotFound         = errors.New("cart item not found")
)
