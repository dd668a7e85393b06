package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrMalformedEncoded = errors.New("malformed encoded field")

// Encoded хранит поле, которое на границе приходит либо строкой с JSON внутри,
// либо уже разобранным значением. Normalize: единственное место разбора.
type Encoded[T any] struct {
	raw    string
	value  T
	parsed bool
}

func Raw[T any](s string) Encoded[T] { return Encoded[T]{raw: s} }

func Parsed[T any](v T) Encoded[T] { return Encoded[T]{value: v, parsed: true} }

func (e Encoded[T]) IsParsed() bool { return e.parsed }

// IsZero: ни сырой строки, ни значения.
func (e Encoded[T]) IsZero() bool { return !e.parsed && strings.TrimSpace(e.raw) == "" }

func (e Encoded[T]) Normalize() (T, error) {
	if e.parsed {
		return e.value, nil
	}
	var v T
	s := strings.TrimSpace(e.raw)
	if s == "" || s == "null" {
		return v, nil
	}
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return v, fmt.Errorf("%w: %v", ErrMalformedEncoded, err)
	}
	return v, nil
}

// Get возвращает нормализованное значение, игнорируя ошибку разбора.
func (e Encoded[T]) Get() T {
	v, _ := e.Normalize()
	return v
}

func (e Encoded[T]) Encode() (string, error) {
	if !e.parsed {
		return e.raw, nil
	}
	b, err := json.Marshal(e.value)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (e *Encoded[T]) normalizeRaw(s string) error {
	if t := strings.TrimSpace(s); t == "" || t == "null" {
		*e = Encoded[T]{}
		return nil
	}
	v, err := Raw[T](s).Normalize()
	if err != nil {
		return err
	}
	*e = Parsed(v)
	return nil
}

func (e Encoded[T]) MarshalJSON() ([]byte, error) {
	if e.IsZero() {
		return []byte("null"), nil
	}
	s, err := e.Encode()
	if err != nil {
		return nil, err
	}
	return json.Marshal(s)
}

func (e *Encoded[T]) UnmarshalJSON(b []byte) error {
	t := bytes.TrimSpace(b)
	switch {
	case len(t) == 0 || bytes.Equal(t, []byte("null")):
		*e = Encoded[T]{}
		return nil
	case t[0] == '"':
		var s string
		if err := json.Unmarshal(t, &s); err != nil {
			return err
		}
		return e.normalizeRaw(s)
	default:
		var v T
		if err := json.Unmarshal(t, &v); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedEncoded, err)
		}
		*e = Parsed(v)
		return nil
	}
}

// Scan/Value: в БД поле лежит TEXT-строкой.
func (e *Encoded[T]) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*e = Encoded[T]{}
		return nil
	case string:
		return e.normalizeRaw(v)
	case []byte:
		return e.normalizeRaw(string(v))
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrMalformedEncoded, src)
	}
}

func (e Encoded[T]) Value() (driver.Value, error) {
	if e.IsZero() {
		return nil, nil
	}
	return e.Encode()
}
