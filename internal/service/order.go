package service

import (
	"context"
	"fmt"
	"time"

	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/checkout"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/models"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ListFilter struct {
	Status *models.OrderStatus
	Phone  *string
	Limit  int
	Offset int
}

func (f ListFilter) cacheKey() string {
	status, phone := "*", "*"
	if f.Status != nil {
		status = string(*f.Status)
	}
	if f.Phone != nil {
		phone = *f.Phone
	}
	return fmt.Sprintf("status=%s:phone=%s:limit=%d:offset=%d", status, phone, f.Limit, f.Offset)
}

type OrderPage struct {
	Orders []models.Order `json:"orders"`
	Total  int64          `json:"total"`
}

type QuoteInput struct {
	Items     []models.CartLineItem `json:"items"`
	District  string                `json:"district"`
	PromoCode string                `json:"promo_code,omitempty"`
}

// PromoPreview: состояние промокода на момент запроса и скидка для переданного subtotal.
type PromoPreview struct {
	Code           string                `json:"code"`
	Status         models.PromoStatus    `json:"status"`
	DiscountType   models.DiscountType   `json:"discount_type"`
	DiscountValue  decimal.Decimal       `json:"discount_value"`
	MinOrderAmount int64                 `json:"min_order_amount"`
	Subtotal       int64                 `json:"subtotal"`
	Discount       int64                 `json:"discount"`
	Error          *pricing.PricingError `json:"error,omitempty"`
}

type OrderService interface {
	SubmitOrder(ctx context.Context, req checkout.CreateOrderRequest) (*models.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	TrackOrder(ctx context.Context, trackingID string) (*models.Order, error)
	ListOrders(ctx context.Context, f ListFilter) (*OrderPage, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, to models.OrderStatus, force bool) (*models.Order, error)

	ResolvePromo(ctx context.Context, code string) (*models.PromoCode, error)
	ValidatePromo(ctx context.Context, code string, subtotal int64) (*PromoPreview, error)
	Quote(ctx context.Context, in QuoteInput) (pricing.Quote, error)
	InvalidateOrderLists(ctx context.Context) error
	DeliveryTable() *pricing.DeliveryTable
}

type Options struct {
	TrackingTTL time.Duration
	ListTTL     time.Duration
}

func (o Options) withDefaults() Options {
	if o.TrackingTTL <= 0 {
		o.TrackingTTL = 5 * time.Second
	}
	if o.ListTTL <= 0 {
		o.ListTTL = 30 * time.Second
	}
	return o
}
