package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/service"

	"github.com/segmentio/kafka-go"
)

// Envelope: общий формат сообщения в топике заказов.
type Envelope struct {
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type OrderEventProducer struct {
	writer messageWriter
	now    func() time.Time
}

func NewOrderEventProducer(brokers []string, topic string) *OrderEventProducer {
	return &OrderEventProducer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
		now: time.Now,
	}
}

func (p *OrderEventProducer) publish(ctx context.Context, key, eventType string, payload any) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	value, err := json.Marshal(Envelope{Type: eventType, OccurredAt: p.now(), Payload: raw})
	if err != nil {
		return err
	}
	// ключ: tracking id, события одного заказа попадают в одну партицию
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:     []byte(key),
		Value:   value,
		Headers: []kafka.Header{{Key: "event-type", Value: []byte(eventType)}},
	})
}

func (p *OrderEventProducer) PublishOrderCreated(ctx context.Context, e service.OrderCreatedEvent) error {
	return p.publish(ctx, e.TrackingID, service.EventOrderCreated, e)
}

func (p *OrderEventProducer) PublishOrderStatusChanged(ctx context.Context, e service.OrderStatusChangedEvent) error {
	return p.publish(ctx, e.TrackingID, service.EventOrderStatusChanged, e)
}

func (p *OrderEventProducer) Close() error {
	return p.writer.Close()
}
