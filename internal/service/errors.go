package service

import "errors"

var (
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrOrderNotFound        = errors.New("order not found")
	ErrPromoNotFound        = errors.New("promo code not found")
	ErrTrackingIDExhausted  = errors.New("could not allocate a unique tracking id")
	ErrInvalidTrackingQuery = errors.New("tracking id is required")
)
