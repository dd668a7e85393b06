package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/producer"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/service"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Sender interface {
	Send(n Notification) error
}

type KafkaOrderConsumer struct {
	reader  *kafka.Reader
	sender  Sender
	adminTo string
	log     *zap.Logger
}

func NewKafkaOrderConsumer(brokers []string, groupID, topic, adminTo string, sender Sender, log *zap.Logger) *KafkaOrderConsumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:           brokers,
		GroupID:           groupID,
		Topic:             topic,
		MinBytes:          10e3,
		MaxBytes:          10e6,
		CommitInterval:    time.Second,
		HeartbeatInterval: 3 * time.Second,
		SessionTimeout:    30 * time.Second,
	})
	return &KafkaOrderConsumer{reader: r, sender: sender, adminTo: adminTo, log: log}
}

func (c *KafkaOrderConsumer) Run(ctx context.Context) error {
	c.log.Info("kafka consumer started")
	for {
		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			c.log.Error("read message", zap.Error(err))
			continue
		}
		if err := c.Handle(m.Value); err != nil {
			c.log.Error("handle order event", zap.ByteString("key", m.Key), zap.Error(err))
			continue
		}
		c.log.Info("order notification sent", zap.ByteString("key", m.Key))
	}
}

// Handle превращает событие заказа в письмо администратору магазина.
func (c *KafkaOrderConsumer) Handle(value []byte) error {
	n, err := BuildNotification(value, c.adminTo)
	if err != nil {
		return err
	}
	return c.sender.Send(n)
}

func BuildNotification(value []byte, to string) (Notification, error) {
	var env producer.Envelope
	if err := json.Unmarshal(value, &env); err != nil {
		return Notification{}, fmt.Errorf("unmarshal envelope: %w", err)
	}

	switch env.Type {
	case service.EventOrderCreated:
		var e service.OrderCreatedEvent
		if err := json.Unmarshal(env.Payload, &e); err != nil {
			return Notification{}, fmt.Errorf("unmarshal %s: %w", env.Type, err)
		}
		return Notification{
			To:       to,
			Subject:  fmt.Sprintf("Новый заказ %s на ৳%d", e.TrackingID, e.Total),
			Template: "order_created",
			Data:     e,
		}, nil
	case service.EventOrderStatusChanged:
		var e service.OrderStatusChangedEvent
		if err := json.Unmarshal(env.Payload, &e); err != nil {
			return Notification{}, fmt.Errorf("unmarshal %s: %w", env.Type, err)
		}
		return Notification{
			To:       to,
			Subject:  fmt.Sprintf("Заказ %s: %s", e.TrackingID, e.To),
			Template: "order_status_changed",
			Data:     e,
		}, nil
	default:
		return Notification{}, fmt.Errorf("unknown event type %q", env.Type)
	}
}

func (c *KafkaOrderConsumer) Close() error { return c.reader.Close() }
