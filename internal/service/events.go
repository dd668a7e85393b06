package service

import (
	"context"
	"time"

	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/models"

	"github.com/google/uuid"
)

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

type OrderItemEvent struct {
	ProductID  string `json:"product_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	UnitPrice  string `json:"unit_price"`
	Customized bool   `json:"customized"`
}

type OrderCreatedEvent struct {
	OrderID      uuid.UUID        `json:"order_id"`
	TrackingID   string           `json:"tracking_id"`
	CustomerName string           `json:"customer_name"`
	Phone        string           `json:"phone"`
	District     string           `json:"district"`
	Items        []OrderItemEvent `json:"items"`
	Subtotal     int64            `json:"subtotal"`
	DeliveryFee  int64            `json:"delivery_fee"`
	Discount     int64            `json:"discount"`
	Total        int64            `json:"total"`
	PromoCode    string           `json:"promo_code,omitempty"`
	Payment      string           `json:"payment_method"`
	CreatedAt    time.Time        `json:"created_at"`
}

type OrderStatusChangedEvent struct {
	OrderID    uuid.UUID          `json:"order_id"`
	TrackingID string             `json:"tracking_id"`
	From       models.OrderStatus `json:"from"`
	To         models.OrderStatus `json:"to"`
	Forced     bool               `json:"forced"`
	ChangedAt  time.Time          `json:"changed_at"`
}

type EventBus interface {
	PublishOrderCreated(ctx context.Context, e OrderCreatedEvent) error
	PublishOrderStatusChanged(ctx context.Context, e OrderStatusChangedEvent) error
}

func newOrderCreatedEvent(o *models.Order) OrderCreatedEvent {
	items := o.Items.Get()
	evItems := make([]OrderItemEvent, 0, len(items))
	for _, it := range items {
		evItems = append(evItems, OrderItemEvent{
			ProductID:  it.ProductID,
			Name:       it.Name,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice.String(),
			Customized: it.IsCustomized(),
		})
	}
	e := OrderCreatedEvent{
		OrderID:      o.ID,
		TrackingID:   o.TrackingID,
		CustomerName: o.CustomerName,
		Phone:        o.Phone,
		District:     o.District,
		Items:        evItems,
		Subtotal:     o.Subtotal,
		DeliveryFee:  o.DeliveryFee,
		Discount:     o.Discount,
		Total:        o.Total,
		Payment:      string(o.PaymentInfo.Get().Method),
		CreatedAt:    o.CreatedAt,
	}
	if o.PromoCode != nil {
		e.PromoCode = *o.PromoCode
	}
	return e
}
