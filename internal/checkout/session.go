package checkout

import (
	"context"
	"sync"
	"time"

	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/models"
)

// Session: черновик оформления одного покупателя. Пишет в него только активная сессия.
type Session struct {
	ID        string                `json:"id"`
	Cart      []models.CartLineItem `json:"cart"`
	Form      FormState             `json:"form"`
	PromoCode string                `json:"promo_code,omitempty"`
	Step      Step                  `json:"step"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

func (s *Session) clone() *Session {
	cp := *s
	cp.Cart = cloneItems(s.Cart)
	return &cp
}

type SessionStore interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}

type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s.clone(), nil
}

func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	if s.ID == "" {
		return ErrEmptySessionID
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s.clone()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
