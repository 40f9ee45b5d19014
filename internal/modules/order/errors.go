package order

import "errors"

var (
	ErrCartEmpty            = errors.New("cart is empty")
	ErrClientNotApproved    = errors.New("client account is not approved")
	ErrProductUnavailable   = errors.New("product is no longer available")
	ErrVariantUnavailable   = errors.New("variant is no longer available")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrInvalidCustomization = errors.New("customization option is no longer offered")
	ErrMissingShippingInfo  = errors.New("missing shipping information")
	ErrNotFound             = errors.New("order not found")
	ErrNotCancellable       = errors.New("order can no longer be cancelled")
	ErrInvalidTransition    = errors.New("status transition not allowed")
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
	ErrInvalidDiscount      = errors.New("invalid discount amount")
)
