package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/checkout"

	"github.com/redis/go-redis/v9"
)

const sessionKey = "checkout:session:%s"

// SessionStore хранит черновики оформления в Redis. TTL продлевается при каждом сохранении.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(r *RedisClient, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionStore{client: r.client, ttl: ttl}
}

func (s *SessionStore) Get(ctx context.Context, id string) (*checkout.Session, error) {
	if id == "" {
		return nil, checkout.ErrEmptySessionID
	}
	b, err := s.client.Get(ctx, fmt.Sprintf(sessionKey, id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, checkout.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	var sess checkout.Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return nil, fmt.Errorf("decode checkout session %s: %w", id, err)
	}
	return &sess, nil
}

func (s *SessionStore) Save(ctx context.Context, sess *checkout.Session) error {
	if sess.ID == "" {
		return checkout.ErrEmptySessionID
	}
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, fmt.Sprintf(sessionKey, sess.ID), b, s.ttl).Err()
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, fmt.Sprintf(sessionKey, id)).Err()
}
