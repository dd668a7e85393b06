package pricing

import (
	"errors"
	"fmt"
)

var ErrInvalidLine = errors.New("invalid cart line")

type Reason string

const (
	ReasonDisabled       Reason = "disabled"
	ReasonUpcoming       Reason = "upcoming"
	ReasonExpired        Reason = "expired"
	ReasonUsageExhausted Reason = "usage-exhausted"
	ReasonBelowMinimum   Reason = "below_minimum"
	ReasonInvalidPromo   Reason = "invalid_promo"
)

// PricingError объясняет, почему промокод не дал скидку.
type PricingError struct {
	Code           string `json:"code"`
	Reason         Reason `json:"reason"`
	MinOrderAmount int64  `json:"min_order_amount,omitempty"`
}

func (e *PricingError) Error() string {
	if e.Reason == ReasonBelowMinimum {
		return fmt.Sprintf("promo %s requires a minimum order of %d", e.Code, e.MinOrderAmount)
	}
	return fmt.Sprintf("promo %s not applied: %s", e.Code, e.Reason)
}
