package lifecycle

import (
	"fmt"

	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/models"
)

type Kind string

const (
	KindIllegal       Kind = "illegal"
	KindNoop          Kind = "noop"
	KindUnknownStatus Kind = "unknown_status"
	// KindConflict: статус изменился параллельно, заказ нужно перечитать.
	KindConflict Kind = "conflict"
)

type TransitionError struct {
	From models.OrderStatus
	To   models.OrderStatus
	Kind Kind
}

func (e *TransitionError) Error() string {
	switch e.Kind {
	case KindConflict:
		return fmt.Sprintf("status changed concurrently (expected %s), re-fetch the order before retrying", e.From)
	case KindUnknownStatus:
		return fmt.Sprintf("unknown order status %q", e.To)
	case KindNoop:
		return fmt.Sprintf("order is already %s", e.To)
	default:
		return fmt.Sprintf("transition %s -> %s is not allowed", e.From, e.To)
	}
}

func (e *TransitionError) Conflict() bool { return e.Kind == KindConflict }
