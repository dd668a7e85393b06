package checkout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/lifecycle"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/models"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/pricing"
)

// CreateOrderRequest: тело POST создания заказа.
// items, payment_info и custom_images уходят строками с JSON внутри.
type CreateOrderRequest struct {
	Items              models.Encoded[[]models.CartLineItem] `json:"items"`
	CustomerName       string                                `json:"customer_name"`
	Phone              string                                `json:"phone"`
	District           string                                `json:"district"`
	Thana              string                                `json:"thana"`
	Address            string                                `json:"address"`
	Landmark           string                                `json:"landmark,omitempty"`
	Total              string                                `json:"total"`
	PaymentInfo        models.Encoded[models.PaymentInfo]    `json:"payment_info"`
	CustomInstructions string                                `json:"custom_instructions"`
	CustomImages       models.Encoded[[]string]              `json:"custom_images"`
	Status             models.OrderStatus                    `json:"status"`
	PromoCode          string                                `json:"promo_code,omitempty"`
}

// Form восстанавливает состояние формы из тела запроса для серверной проверки.
func (r CreateOrderRequest) Form() (FormState, error) {
	pi, err := r.PaymentInfo.Normalize()
	if err != nil {
		return FormState{}, err
	}
	return FormState{
		CustomerName:  r.CustomerName,
		Phone:         r.Phone,
		District:      r.District,
		Thana:         r.Thana,
		AddressLine:   r.Address,
		Landmark:      r.Landmark,
		PaymentMethod: pi.Method,
		SenderNumber:  pi.SenderNumber,
		TransactionID: pi.TransactionID,
		AmountPaid:    pi.AmountPaid,
	}, nil
}

type OrderDraft struct {
	Request CreateOrderRequest `json:"request"`
	Quote   pricing.Quote      `json:"quote"`
}

type Assembler struct {
	validator *Validator
	calc      *pricing.Calculator
	now       func() time.Time
}

func NewAssembler(calc *pricing.Calculator) *Assembler {
	return &Assembler{
		validator: NewValidator(calc.Table()),
		calc:      calc,
		now:       time.Now,
	}
}

func (a *Assembler) Validator() *Validator { return a.validator }

// Assemble проверяет форму по шагам, пересчитывает итог по финальному снимку
// корзины и промокода и собирает тело запроса.
func (a *Assembler) Assemble(form FormState, cart []models.CartLineItem, promo *models.PromoCode) (*OrderDraft, error) {
	if len(cart) == 0 {
		return nil, ValidationErrors{{Step: StepReview, Field: "items", Tag: "required", Message: "cart is empty"}}
	}
	if errs := a.validator.ValidateForm(form); len(errs) > 0 {
		return nil, errs
	}

	quote, err := a.calc.ComputeTotal(cart, form.District, promo, a.now())
	if err != nil {
		return nil, cartError(err)
	}
	if quote.Provisional {
		return nil, ValidationErrors{{Step: StepAddress, Field: "district", Tag: "oneof", Message: "delivery fee is not known for this district"}}
	}

	req := CreateOrderRequest{
		Items:        models.Parsed(cloneItems(cart)),
		CustomerName: strings.TrimSpace(form.CustomerName),
		Phone:        strings.TrimSpace(form.Phone),
		District:     strings.TrimSpace(form.District),
		Thana:        strings.TrimSpace(form.Thana),
		Address:      strings.TrimSpace(form.AddressLine),
		Landmark:     strings.TrimSpace(form.Landmark),
		Total:        strconv.FormatInt(quote.Total, 10),
		PaymentInfo: models.Parsed(models.PaymentInfo{
			Method:        form.PaymentMethod,
			SenderNumber:  strings.TrimSpace(form.SenderNumber),
			TransactionID: strings.TrimSpace(form.TransactionID),
			AmountPaid:    form.AmountPaid,
		}),
		CustomInstructions: JoinInstructions(cart),
		Status:             lifecycle.Initial(),
	}
	if imgs := CollectImages(cart); len(imgs) > 0 {
		req.CustomImages = models.Parsed(imgs)
	}
	if promo != nil && quote.PromoError == nil && quote.Discount > 0 {
		req.PromoCode = quote.PromoCode
	}

	return &OrderDraft{Request: req, Quote: quote}, nil
}

// cartError переводит ошибку позиции корзины в ошибку поля items.
func cartError(err error) error {
	if errors.Is(err, pricing.ErrInvalidLine) {
		return ValidationErrors{{Step: StepReview, Field: "items", Tag: "cart", Message: err.Error()}}
	}
	return err
}

// ValidateCart проверяет позиции корзины; пустая корзина допустима до отправки.
func ValidateCart(cart []models.CartLineItem) error {
	if _, err := pricing.Subtotal(cart); err != nil {
		return cartError(err)
	}
	return nil
}

// JoinInstructions: по строке на каждую позицию с текстовыми пожеланиями.
func JoinInstructions(cart []models.CartLineItem) string {
	var lines []string
	for _, it := range cart {
		if it.Customization == nil {
			continue
		}
		instr := strings.TrimSpace(it.Customization.Instructions)
		if instr == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", it.Name, instr))
	}
	return strings.Join(lines, "\n")
}

func CollectImages(cart []models.CartLineItem) []string {
	var out []string
	for _, it := range cart {
		if it.Customization != nil {
			out = append(out, it.Customization.Images...)
		}
	}
	return out
}

func cloneItems(cart []models.CartLineItem) []models.CartLineItem {
	out := make([]models.CartLineItem, len(cart))
	copy(out, cart)
	return out
}
