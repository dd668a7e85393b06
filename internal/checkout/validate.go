package checkout

import (
	"regexp"
	"strings"

	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/models"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/pricing"
)

type Step int

const (
	StepIdentity Step = iota + 1
	StepAddress
	StepPayment
	StepReview
)

func (s Step) String() string {
	switch s {
	case StepIdentity:
		return "identity"
	case StepAddress:
		return "address"
	case StepPayment:
		return "payment"
	case StepReview:
		return "review"
	}
	return "unknown"
}

func ParseStep(s string) (Step, bool) {
	for _, st := range []Step{StepIdentity, StepAddress, StepPayment, StepReview} {
		if st.String() == s {
			return st, true
		}
	}
	return 0, false
}

var phoneRe = regexp.MustCompile(`^01[3-9]\d{8}$`)

func ValidPhone(phone string) bool { return phoneRe.MatchString(phone) }

type FormState struct {
	CustomerName  string               `json:"customer_name"`
	Phone         string               `json:"phone"`
	District      string               `json:"district"`
	Thana         string               `json:"thana"`
	AddressLine   string               `json:"address"`
	Landmark      string               `json:"landmark,omitempty"`
	PaymentMethod models.PaymentMethod `json:"payment_method"`
	SenderNumber  string               `json:"sender_number,omitempty"`
	TransactionID string               `json:"transaction_id,omitempty"`
	AmountPaid    int64                `json:"amount_paid,omitempty"`
}

type Validator struct {
	table *pricing.DeliveryTable
}

func NewValidator(table *pricing.DeliveryTable) *Validator {
	return &Validator{table: table}
}

// ValidateStep проверяет все поля шага и возвращает все найденные ошибки.
func (v *Validator) ValidateStep(step Step, f FormState) ValidationErrors {
	var errs ValidationErrors
	add := func(field, tag, msg string) {
		errs = append(errs, ValidationError{Step: step, Field: field, Tag: tag, Message: msg})
	}

	switch step {
	case StepIdentity:
		if strings.TrimSpace(f.CustomerName) == "" {
			add("customer_name", "required", "name is required")
		}
		switch phone := strings.TrimSpace(f.Phone); {
		case phone == "":
			add("phone", "required", "phone is required")
		case !ValidPhone(phone):
			add("phone", "phone", "phone must be an 11 digit mobile number starting with 013-019")
		}
	case StepAddress:
		district := strings.TrimSpace(f.District)
		switch {
		case district == "":
			add("district", "required", "district is required")
		case !v.table.HasDistrict(district):
			add("district", "oneof", "unknown district")
		case !v.table.ValidThana(district, f.Thana):
			add("thana", "oneof", "thana does not belong to the selected district")
		}
		if strings.TrimSpace(f.AddressLine) == "" {
			add("address", "required", "address is required")
		}
	case StepPayment:
		if !f.PaymentMethod.IsValid() {
			add("payment_method", "oneof", "unknown payment method")
			break
		}
		if f.PaymentMethod == models.PaymentCOD {
			break
		}
		switch sender := strings.TrimSpace(f.SenderNumber); {
		case sender == "":
			add("sender_number", "required", "sender number is required for mobile payments")
		case !ValidPhone(sender):
			add("sender_number", "phone", "sender number must be a valid mobile number")
		}
		if strings.TrimSpace(f.TransactionID) == "" {
			add("transaction_id", "required", "transaction id is required for mobile payments")
		}
	}
	return errs
}

// ValidateForm идёт по шагам по порядку и останавливается на первом шаге с ошибками.
func (v *Validator) ValidateForm(f FormState) ValidationErrors {
	for _, step := range []Step{StepIdentity, StepAddress, StepPayment} {
		if errs := v.ValidateStep(step, f); len(errs) > 0 {
			return errs
		}
	}
	return nil
}
