package models

import "github.com/shopspring/decimal"

type CartLineItem struct {
	ProductID     string          `json:"product_id"`
	Name          string          `json:"name"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Quantity      int             `json:"quantity"`
	Customization *Customization  `json:"customization,omitempty"`
}

func (it CartLineItem) IsCustomized() bool { return it.Customization != nil }

// Customization: пожелания покупателя к конкретной позиции.
type Customization struct {
	Size         string   `json:"size,omitempty"`
	Color        string   `json:"color,omitempty"`
	Text         string   `json:"text,omitempty"`
	Images       []string `json:"images,omitempty"`
	Instructions string   `json:"instructions,omitempty"`
}

type PaymentMethod string

const (
	PaymentCOD    PaymentMethod = "cod"
	PaymentBkash  PaymentMethod = "bkash"
	PaymentNagad  PaymentMethod = "nagad"
	PaymentRocket PaymentMethod = "rocket"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCOD, PaymentBkash, PaymentNagad, PaymentRocket:
		return true
	}
	return false
}

type PaymentInfo struct {
	Method        PaymentMethod `json:"method"`
	SenderNumber  string        `json:"sender_number,omitempty"`
	TransactionID string        `json:"transaction_id,omitempty"`
	AmountPaid    int64         `json:"amount_paid"`
}
