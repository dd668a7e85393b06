package producer

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/models"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/service"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

type captureWriter struct {
	msgs []kafka.Message
}

func (w *captureWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if _, ok := ctx.Deadline(); !ok {
		return context.DeadlineExceeded
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *captureWriter) Close() error { return nil }

func TestPublishOrderStatusChanged(t *testing.T) {
	w := &captureWriter{}
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	p := &OrderEventProducer{writer: w, now: func() time.Time { return now }}

	ev := service.OrderStatusChangedEvent{
		OrderID:    uuid.New(),
		TrackingID: "TRXABCDEFGH",
		From:       models.OrderStatusPending,
		To:         models.OrderStatusConfirmed,
	}
	if err := p.PublishOrderStatusChanged(context.Background(), ev); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(w.msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(w.msgs))
	}
	m := w.msgs[0]
	if string(m.Key) != "TRXABCDEFGH" {
		t.Fatalf("key: %s", m.Key)
	}
	if len(m.Headers) != 1 || string(m.Headers[0].Value) != service.EventOrderStatusChanged {
		t.Fatalf("headers: %+v", m.Headers)
	}

	var env Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		t.Fatalf("envelope: %v", err)
	}
	if env.Type != service.EventOrderStatusChanged || !env.OccurredAt.Equal(now) {
		t.Fatalf("envelope: %+v", env)
	}
	var got service.OrderStatusChangedEvent
	if err := json.Unmarshal(env.Payload, &got); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if got.To != models.OrderStatusConfirmed || got.OrderID != ev.OrderID {
		t.Fatalf("payload: %+v", got)
	}
}
