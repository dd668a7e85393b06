package service

import (
	"context"
	"time"

	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/models"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/repository"

	"github.com/google/uuid"
)

// MockOrderRepo
type MockOrderRepo struct {
	CreateFunc           func(ctx context.Context, o *models.Order) error
	GetByIDFunc          func(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetByTrackingIDFunc  func(ctx context.Context, trackingID string) (*models.Order, error)
	UpdateStatusFunc     func(ctx context.Context, id uuid.UUID, from, to models.OrderStatus) error
	ForceStatusFunc      func(ctx context.Context, id uuid.UUID, to models.OrderStatus) error
	ListFunc             func(ctx context.Context, f repository.OrderListFilter) ([]*models.Order, int64, error)
	TrackingIDExistsFunc func(ctx context.Context, trackingID string) (bool, error)

	Promos *MockPromoRepo
}

func (m *MockOrderRepo) Create(ctx context.Context, o *models.Order) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, o)
	}
	return nil
}

func (m *MockOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockOrderRepo) GetByTrackingID(ctx context.Context, trackingID string) (*models.Order, error) {
	if m.GetByTrackingIDFunc != nil {
		return m.GetByTrackingIDFunc(ctx, trackingID)
	}
	return nil, nil
}

func (m *MockOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.OrderStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, from, to)
	}
	return nil
}

func (m *MockOrderRepo) ForceStatus(ctx context.Context, id uuid.UUID, to models.OrderStatus) error {
	if m.ForceStatusFunc != nil {
		return m.ForceStatusFunc(ctx, id, to)
	}
	return nil
}

func (m *MockOrderRepo) List(ctx context.Context, f repository.OrderListFilter) ([]*models.Order, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, f)
	}
	return nil, 0, nil
}

func (m *MockOrderRepo) TrackingIDExists(ctx context.Context, trackingID string) (bool, error) {
	if m.TrackingIDExistsFunc != nil {
		return m.TrackingIDExistsFunc(ctx, trackingID)
	}
	return false, nil
}

func (m *MockOrderRepo) WithTx(ctx context.Context, fn func(txOrders repository.OrderRepo, txPromos repository.PromoRepo) error) error {
	promos := m.Promos
	if promos == nil {
		promos = &MockPromoRepo{}
	}
	return fn(m, promos)
}

// MockPromoRepo
type MockPromoRepo struct {
	GetByCodeFunc      func(ctx context.Context, code string) (*models.PromoCode, error)
	IncrementUsageFunc func(ctx context.Context, code string) error
}

func (m *MockPromoRepo) Create(ctx context.Context, p *models.PromoCode) error { return nil }

func (m *MockPromoRepo) GetByCode(ctx context.Context, code string) (*models.PromoCode, error) {
	if m.GetByCodeFunc != nil {
		return m.GetByCodeFunc(ctx, code)
	}
	return nil, nil
}

func (m *MockPromoRepo) IncrementUsage(ctx context.Context, code string) error {
	if m.IncrementUsageFunc != nil {
		return m.IncrementUsageFunc(ctx, code)
	}
	return nil
}

// MockCache: in-memory хранилище с версиями, как у redis-реализации.
type MockCache struct {
	tracked      map[string][]byte
	trackedVer   map[string]int64
	lists        map[string][]byte
	listVer      int64
	Invalidated  int
	Dropped      []string
	TrackedReads int
}

func NewMockCache() *MockCache {
	return &MockCache{tracked: map[string][]byte{}, trackedVer: map[string]int64{}, lists: map[string][]byte{}}
}

func (m *MockCache) GetTrackedOrder(ctx context.Context, trackingID string) ([]byte, int64, error) {
	m.TrackedReads++
	return m.tracked[trackingID], m.trackedVer[trackingID], nil
}

func (m *MockCache) SetTrackedOrder(ctx context.Context, trackingID string, version int64, data []byte, ttl time.Duration) error {
	if m.trackedVer[trackingID] == version {
		m.tracked[trackingID] = data
	}
	return nil
}

func (m *MockCache) DropTrackedOrder(ctx context.Context, trackingID string) error {
	m.Dropped = append(m.Dropped, trackingID)
	m.trackedVer[trackingID]++
	delete(m.tracked, trackingID)
	return nil
}

func (m *MockCache) GetOrderList(ctx context.Context, query string) ([]byte, int64, error) {
	return m.lists[query], m.listVer, nil
}

func (m *MockCache) SetOrderList(ctx context.Context, query string, version int64, data []byte, ttl time.Duration) error {
	if m.listVer == version {
		m.lists[query] = data
	}
	return nil
}

func (m *MockCache) InvalidateOrderLists(ctx context.Context) error {
	m.Invalidated++
	m.listVer++
	m.lists = map[string][]byte{}
	return nil
}

// MockEventBus
type MockEventBus struct {
	Created []OrderCreatedEvent
	Changed []OrderStatusChangedEvent
}

func (m *MockEventBus) PublishOrderCreated(ctx context.Context, e OrderCreatedEvent) error {
	m.Created = append(m.Created, e)
	return nil
}

func (m *MockEventBus) PublishOrderStatusChanged(ctx context.Context, e OrderStatusChangedEvent) error {
	m.Changed = append(m.Changed, e)
	return nil
}
