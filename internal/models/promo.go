package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

type PromoStatus string

const (
	PromoActive         PromoStatus = "active"
	PromoUpcoming       PromoStatus = "upcoming"
	PromoExpired        PromoStatus = "expired"
	PromoUsageExhausted PromoStatus = "usage-exhausted"
	PromoDisabled       PromoStatus = "disabled"
)

type PromoCode struct {
	ID                uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code              string          `gorm:"type:varchar(64);not null;uniqueIndex" json:"code"`
	DiscountType      DiscountType    `gorm:"type:text;not null" json:"discount_type"`
	DiscountValue     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"discount_value"`
	MinOrderAmount    int64           `gorm:"not null;default:0" json:"min_order_amount"`
	MaxDiscountAmount int64           `gorm:"not null;default:0" json:"max_discount_amount"`
	UsageLimit        int             `gorm:"not null;default:0" json:"usage_limit"`
	UsedCount         int             `gorm:"not null;default:0" json:"used_count"`
	StartDate         *time.Time      `json:"start_date,omitempty"`
	EndDate           *time.Time      `json:"end_date,omitempty"`
	IsActive          bool            `gorm:"not null" json:"is_active"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (PromoCode) TableName() string { return "promo_codes" }

func (p *PromoCode) BeforeSave(*gorm.DB) error {
	p.Code = NormalizePromoCode(p.Code)
	return nil
}

func NormalizePromoCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// EffectiveStatus вычисляется на каждый вызов и никогда не сохраняется.
func (p *PromoCode) EffectiveStatus(now time.Time) PromoStatus {
	switch {
	case !p.IsActive:
		return PromoDisabled
	case p.StartDate != nil && now.Before(*p.StartDate):
		return PromoUpcoming
	case p.EndDate != nil && now.After(*p.EndDate):
		return PromoExpired
	case p.UsageLimit > 0 && p.UsedCount >= p.UsageLimit:
		return PromoUsageExhausted
	default:
		return PromoActive
	}
}
