package tracking

import (
	"errors"
	"fmt"
)

// ErrNotFound возвращают Fetcher-ы, когда заказа с таким tracking id нет.
var ErrNotFound = errors.New("tracking id not found")

// TrackingNotFoundError терминальна после исчерпания повторов.
type TrackingNotFoundError struct {
	TrackingID string
	Attempts   int
	Terminal   bool
}

func (e *TrackingNotFoundError) Error() string {
	return fmt.Sprintf("order %s not found after %d attempt(s)", e.TrackingID, e.Attempts)
}

func (e *TrackingNotFoundError) Unwrap() error { return ErrNotFound }

// TrackingNetworkError: временный сбой, опрос повторяется с backoff.
type TrackingNetworkError struct {
	TrackingID string
	Attempt    int
	Err        error
}

func (e *TrackingNetworkError) Error() string {
	return fmt.Sprintf("fetch order %s (attempt %d): %v", e.TrackingID, e.Attempt, e.Err)
}

func (e *TrackingNetworkError) Unwrap() error { return e.Err }
