package hashing

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrMalformedHash = errors.New("malformed bcrypt hash")

type Bcrypt struct {
	cost int
}

func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

func (b *Bcrypt) Hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	return string(h), err
}

func (b *Bcrypt) Compare(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Check проверяет, что строка из конфига действительно bcrypt-хэш.
func Check(hash string) error {
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return ErrMalformedHash
	}
	return nil
}
