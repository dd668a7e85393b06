package service

import (
	"context"
	"time"
)

// CacheClient хранит готовые JSON-ответы. Промах: nil и текущая версия.
// Set принимает версию, полученную из Get, и ничего не пишет, если с тех пор
// был сброс: так ответ, прочитанный до изменения, не переживает инвалидацию.
type CacheClient interface {
	GetTrackedOrder(ctx context.Context, trackingID string) ([]byte, int64, error)
	SetTrackedOrder(ctx context.Context, trackingID string, version int64, data []byte, ttl time.Duration) error
	DropTrackedOrder(ctx context.Context, trackingID string) error

	GetOrderList(ctx context.Context, query string) ([]byte, int64, error)
	SetOrderList(ctx context.Context, query string, version int64, data []byte, ttl time.Duration) error
	// InvalidateOrderLists сбрасывает все закэшированные страницы списка разом.
	InvalidateOrderLists(ctx context.Context) error
}
