package models

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Order создаётся один раз при оформлении; после этого меняется только Status.
type Order struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TrackingID   string    `gorm:"type:varchar(32);not null;uniqueIndex" json:"tracking_id"`
	CustomerName string    `gorm:"type:text;not null" json:"customer_name"`
	Phone        string    `gorm:"type:varchar(11);not null;index" json:"phone"`
	District     string    `gorm:"type:text;not null" json:"district"`
	Thana        string    `gorm:"type:text;not null;default:''" json:"thana"`
	Address      string    `gorm:"type:text;not null" json:"address"`
	Landmark     string    `gorm:"type:text;not null;default:''" json:"landmark,omitempty"`

	Items       Encoded[[]CartLineItem] `gorm:"type:text;not null" json:"items"`
	Subtotal    int64                   `gorm:"not null;default:0" json:"subtotal"`
	DeliveryFee int64                   `gorm:"not null;default:0" json:"delivery_fee"`
	Discount    int64                   `gorm:"not null;default:0" json:"discount"`
	Total       int64                   `gorm:"not null;default:0" json:"total"`
	PromoCode   *string                 `gorm:"type:varchar(64)" json:"promo_code,omitempty"`

	PaymentInfo        Encoded[PaymentInfo] `gorm:"type:text;not null" json:"payment_info"`
	CustomInstructions string               `gorm:"type:text;not null;default:''" json:"custom_instructions"`
	CustomImages       Encoded[[]string]    `gorm:"type:text" json:"custom_images"`

	Status    OrderStatus `gorm:"type:text;not null;default:'pending';index" json:"status"`
	CreatedAt time.Time   `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt time.Time   `gorm:"not null;default:now()" json:"updated_at"`
}

func (Order) TableName() string { return "orders" }
