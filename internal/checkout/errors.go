package checkout

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrSessionNotFound = errors.New("checkout session not found")
	ErrEmptySessionID  = errors.New("empty checkout session id")
)

// ValidationError: ошибка конкретного поля на конкретном шаге.
type ValidationError struct {
	Step    Step   `json:"step"`
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag,omitempty"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors собирает все ошибки шага, а не только первую.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, e.Error())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (v ValidationErrors) HasField(field string) bool {
	for _, e := range v {
		if e.Field == field {
			return true
		}
	}
	return false
}

// SubmissionError: сбой отправки заказа. Черновик и корзина остаются нетронутыми,
// запрос можно повторить.
type SubmissionError struct {
	Err     error
	Timeout bool
}

func (e *SubmissionError) Error() string {
	if e.Timeout {
		return "order submission timed out: " + e.Err.Error()
	}
	return "order submission failed: " + e.Err.Error()
}

func (e *SubmissionError) Unwrap() error { return e.Err }

func (e *SubmissionError) Retryable() bool { return true }
