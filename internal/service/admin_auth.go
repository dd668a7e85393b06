package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type PasswordHasher interface {
	Compare(hash, password string) bool
}

type TokenSigner interface {
	Sign(sub, role string, ttl time.Duration) (string, time.Time, error)
}

type AdminToken struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	Role        Role      `json:"role"`
}

// AdminAuth: вход единственного администратора магазина по логину и bcrypt-хэшу из окружения.
type AdminAuth struct {
	username     string
	passwordHash string
	hasher       PasswordHasher
	tokens       TokenSigner
	ttl          time.Duration
	log          *zap.Logger
}

func NewAdminAuth(username, passwordHash string, hasher PasswordHasher, tokens TokenSigner, ttl time.Duration, log *zap.Logger) *AdminAuth {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &AdminAuth{
		username:     username,
		passwordHash: passwordHash,
		hasher:       hasher,
		tokens:       tokens,
		ttl:          ttl,
		log:          log,
	}
}

func (a *AdminAuth) Login(ctx context.Context, username, password string) (*AdminToken, error) {
	if a.passwordHash == "" || !strings.EqualFold(strings.TrimSpace(username), a.username) ||
		!a.hasher.Compare(a.passwordHash, password) {
		a.log.Warn("admin login rejected", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}

	tok, exp, err := a.tokens.Sign(a.username, string(RoleAdmin), a.ttl)
	if err != nil {
		return nil, err
	}
	a.log.Info("admin logged in", zap.String("username", a.username))
	return &AdminToken{AccessToken: tok, ExpiresAt: exp, Role: RoleAdmin}, nil
}
