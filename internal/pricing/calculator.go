package pricing

import (
	"fmt"
	"strings"
	"time"

	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/models"

	"github.com/shopspring/decimal"
)

const CustomizationFee int64 = 50

// MaxSubtotal: верхняя граница суммы корзины и одной позиции, в taka.
// Выше неё корзина отклоняется как ErrInvalidLine.
const MaxSubtotal int64 = 1_000_000_000_000

var (
	hundred     = decimal.NewFromInt(100)
	maxSubtotal = decimal.NewFromInt(MaxSubtotal)
)

type Quote struct {
	Subtotal    int64         `json:"subtotal"`
	DeliveryFee int64         `json:"delivery_fee"`
	Discount    int64         `json:"discount"`
	Total       int64         `json:"total"`
	Provisional bool          `json:"provisional"`
	PromoCode   string        `json:"promo_code,omitempty"`
	PromoError  *PricingError `json:"promo_error,omitempty"`
}

type Calculator struct {
	table *DeliveryTable
}

func NewCalculator(table *DeliveryTable) *Calculator {
	if table == nil {
		table = DefaultDeliveryTable()
	}
	return &Calculator{table: table}
}

func (c *Calculator) Table() *DeliveryTable { return c.table }

// ComputeTotal: единая функция расчёта для превью и для оформления заказа.
// Зависит только от аргументов: at передаётся явно.
func (c *Calculator) ComputeTotal(items []models.CartLineItem, district string, promo *models.PromoCode, at time.Time) (Quote, error) {
	subtotal, err := Subtotal(items)
	if err != nil {
		return Quote{}, err
	}

	fee, known := c.table.Fee(district)
	if known && c.table.FreeDeliveryThreshold > 0 && subtotal >= c.table.FreeDeliveryThreshold {
		fee = 0
	}

	q := Quote{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Provisional: !known,
	}

	if promo != nil {
		q.PromoCode = models.NormalizePromoCode(promo.Code)
		q.Discount, q.PromoError = Discount(promo, subtotal, fee, at)
	}

	q.Total = subtotal + fee - q.Discount
	return q, nil
}

func Subtotal(items []models.CartLineItem) (int64, error) {
	sum := decimal.Zero
	for i, it := range items {
		if strings.TrimSpace(it.ProductID) == "" {
			return 0, fmt.Errorf("%w: line %d: empty product id", ErrInvalidLine, i)
		}
		if it.Quantity < 1 {
			return 0, fmt.Errorf("%w: line %d: quantity must be >= 1", ErrInvalidLine, i)
		}
		if it.UnitPrice.IsNegative() {
			return 0, fmt.Errorf("%w: line %d: negative unit price", ErrInvalidLine, i)
		}
		line := it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
		if line.GreaterThan(maxSubtotal) {
			return 0, fmt.Errorf("%w: line %d: amount exceeds %d", ErrInvalidLine, i, MaxSubtotal)
		}
		sum = sum.Add(line)
		if it.IsCustomized() {
			sum = sum.Add(decimal.NewFromInt(CustomizationFee))
		}
		if sum.GreaterThan(maxSubtotal) {
			return 0, fmt.Errorf("%w: cart amount exceeds %d", ErrInvalidLine, MaxSubtotal)
		}
	}
	return sum.Round(0).IntPart(), nil
}

// Discount считает скидку промокода. Итог subtotal+fee-discount никогда не уходит в минус.
func Discount(promo *models.PromoCode, subtotal, fee int64, at time.Time) (int64, *PricingError) {
	code := models.NormalizePromoCode(promo.Code)

	if st := promo.EffectiveStatus(at); st != models.PromoActive {
		return 0, &PricingError{Code: code, Reason: Reason(st)}
	}
	if !promo.DiscountValue.IsPositive() {
		return 0, &PricingError{Code: code, Reason: ReasonInvalidPromo}
	}
	if subtotal < promo.MinOrderAmount {
		return 0, &PricingError{Code: code, Reason: ReasonBelowMinimum, MinOrderAmount: promo.MinOrderAmount}
	}

	var discount int64
	switch promo.DiscountType {
	case models.DiscountPercentage:
		if promo.DiscountValue.GreaterThan(hundred) {
			return 0, &PricingError{Code: code, Reason: ReasonInvalidPromo}
		}
		discount = decimal.NewFromInt(subtotal).Mul(promo.DiscountValue).Div(hundred).Round(0).IntPart()
		if promo.MaxDiscountAmount > 0 && discount > promo.MaxDiscountAmount {
			discount = promo.MaxDiscountAmount
		}
	case models.DiscountFixed:
		if promo.DiscountValue.GreaterThan(decimal.NewFromInt(subtotal + fee)) {
			discount = subtotal + fee
		} else {
			discount = promo.DiscountValue.Round(0).IntPart()
		}
	default:
		return 0, &PricingError{Code: code, Reason: ReasonInvalidPromo}
	}

	if limit := subtotal + fee; discount > limit {
		discount = limit
	}
	if discount < 0 {
		discount = 0
	}
	return discount, nil
}
