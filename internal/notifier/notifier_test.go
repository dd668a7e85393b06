package notifier

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/models"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/producer"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/service"

	gopkgmail "gopkg.in/gomail.v2"
)

func envelope(t *testing.T, typ string, payload any) []byte {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	b, err := json.Marshal(producer.Envelope{Type: typ, OccurredAt: time.Now(), Payload: raw})
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}
	return b
}

func createdEvent() service.OrderCreatedEvent {
	return service.OrderCreatedEvent{
		TrackingID:   "TRXABCDEFGH",
		CustomerName: "Rahim Uddin",
		Phone:        "01712345678",
		District:     "ঢাকা",
		Items: []service.OrderItemEvent{
			{ProductID: "p-mug", Name: "Mug", Quantity: 2, UnitPrice: "300"},
			{ProductID: "p-tee", Name: "T-Shirt", Quantity: 1, UnitPrice: "450", Customized: true},
		},
		Subtotal:    1100,
		DeliveryFee: 60,
		Discount:    110,
		Total:       1050,
		PromoCode:   "WELCOME10",
		Payment:     "cod",
	}
}

func TestRenderer_DefaultTemplates(t *testing.T) {
	r := NewRenderer(DefaultTemplates())

	html, plain, err := r.Render("order_created", createdEvent())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, want := range []string{"TRXABCDEFGH", "T-Shirt (custom)", "WELCOME10", "1050"} {
		if !strings.Contains(html, want) || !strings.Contains(plain, want) {
			t.Fatalf("%q missing in output\nhtml: %s\nplain: %s", want, html, plain)
		}
	}

	_, plain, err = r.Render("order_status_changed", service.OrderStatusChangedEvent{
		TrackingID: "TRXABCDEFGH",
		From:       models.OrderStatusShipped,
		To:         models.OrderStatusDelivered,
		ChangedAt:  time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(plain, "shipped -> delivered") || !strings.Contains(plain, "2025-03-01 10:30") {
		t.Fatalf("plain: %s", plain)
	}

	if _, _, err := r.Render("missing", nil); err == nil {
		t.Fatalf("unknown template must fail")
	}
}

func TestBuildNotification(t *testing.T) {
	n, err := BuildNotification(envelope(t, service.EventOrderCreated, createdEvent()), "admin@shop.test")
	if err != nil {
		t.Fatalf("BuildNotification: %v", err)
	}
	if n.Template != "order_created" || n.To != "admin@shop.test" || !strings.Contains(n.Subject, "TRXABCDEFGH") {
		t.Fatalf("notification: %+v", n)
	}

	if _, err := BuildNotification(envelope(t, "order.deleted", struct{}{}), "a@b"); err == nil {
		t.Fatalf("unknown event must fail")
	}
	if _, err := BuildNotification([]byte("{"), "a@b"); err == nil {
		t.Fatalf("broken envelope must fail")
	}
}

type MockSender struct {
	SendFunc func(n Notification) error
}

func (m *MockSender) Send(n Notification) error {
	if m.SendFunc != nil {
		return m.SendFunc(n)
	}
	return nil
}

func TestConsumerHandle(t *testing.T) {
	var got []Notification
	c := &KafkaOrderConsumer{
		adminTo: "admin@shop.test",
		sender: &MockSender{SendFunc: func(n Notification) error {
			got = append(got, n)
			return nil
		}},
	}
	ev := service.OrderStatusChangedEvent{TrackingID: "TRXABCDEFGH", From: models.OrderStatusPending, To: models.OrderStatusConfirmed}
	if err := c.Handle(envelope(t, service.EventOrderStatusChanged, ev)); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(got) != 1 || got[0].Template != "order_status_changed" {
		t.Fatalf("sent: %+v", got)
	}

	boom := errors.New("smtp down")
	c.sender = &MockSender{SendFunc: func(n Notification) error { return boom }}
	if err := c.Handle(envelope(t, service.EventOrderStatusChanged, ev)); !errors.Is(err, boom) {
		t.Fatalf("expected send error, got %v", err)
	}
}

func TestEmailSender_Send(t *testing.T) {
	s := NewEmailSender(SMTPConfig{From: "shop@shop.test"}, NewRenderer(DefaultTemplates()))
	var sent *gopkgmail.Message
	s.dial = func(m *gopkgmail.Message) error {
		sent = m
		return nil
	}

	err := s.Send(Notification{To: "admin@shop.test", Subject: "Новый заказ", Template: "order_created", Data: createdEvent()})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if sent == nil {
		t.Fatalf("message not dialed")
	}
	if to := sent.GetHeader("To"); len(to) != 1 || to[0] != "admin@shop.test" {
		t.Fatalf("To: %v", to)
	}
	if from := sent.GetHeader("From"); len(from) != 1 || from[0] != "shop@shop.test" {
		t.Fatalf("From: %v", from)
	}
}
