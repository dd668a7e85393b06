package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/models"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/pricing"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultSubmitTimeout = 15 * time.Second

type OrderSubmitter interface {
	SubmitOrder(ctx context.Context, req CreateOrderRequest) (*models.Order, error)
}

// PromoResolver возвращает nil, nil для неизвестного кода.
type PromoResolver interface {
	ResolvePromo(ctx context.Context, code string) (*models.PromoCode, error)
}

type ListInvalidator interface {
	InvalidateOrderLists(ctx context.Context) error
}

type Checkout struct {
	sessions    SessionStore
	assembler   *Assembler
	submitter   OrderSubmitter
	promos      PromoResolver
	invalidator ListInvalidator
	timeout     time.Duration
	log         *zap.Logger
	now         func() time.Time
}

func New(sessions SessionStore, assembler *Assembler, submitter OrderSubmitter, promos PromoResolver,
	invalidator ListInvalidator, timeout time.Duration, log *zap.Logger) *Checkout {
	if timeout <= 0 {
		timeout = DefaultSubmitTimeout
	}
	return &Checkout{
		sessions:    sessions,
		assembler:   assembler,
		submitter:   submitter,
		promos:      promos,
		invalidator: invalidator,
		timeout:     timeout,
		log:         log,
		now:         time.Now,
	}
}

func (c *Checkout) Start(ctx context.Context, cart []models.CartLineItem) (*Session, error) {
	if err := ValidateCart(cart); err != nil {
		return nil, err
	}
	now := c.now()
	s := &Session{
		ID:        uuid.NewString(),
		Cart:      cart,
		Step:      StepIdentity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := c.sessions.Save(ctx, s); err != nil {
		return nil, err
	}
	c.log.Debug("checkout session started", zap.String("session_id", s.ID), zap.Int("items", len(cart)))
	return s, nil
}

func (c *Checkout) Get(ctx context.Context, id string) (*Session, error) {
	return c.sessions.Get(ctx, id)
}

type SessionUpdate struct {
	Cart      *[]models.CartLineItem `json:"cart,omitempty"`
	Form      *FormState             `json:"form,omitempty"`
	PromoCode *string                `json:"promo_code,omitempty"`
}

func (c *Checkout) Update(ctx context.Context, id string, upd SessionUpdate) (*Session, error) {
	s, err := c.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Cart != nil {
		if err := ValidateCart(*upd.Cart); err != nil {
			return nil, err
		}
		s.Cart = *upd.Cart
	}
	if upd.Form != nil {
		s.Form = *upd.Form
	}
	if upd.PromoCode != nil {
		s.PromoCode = models.NormalizePromoCode(*upd.PromoCode)
	}
	s.UpdatedAt = c.now()
	if err := c.sessions.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// ValidateStep проверяет шаг и при успехе переводит сессию на следующий.
func (c *Checkout) ValidateStep(ctx context.Context, id string, step Step) (ValidationErrors, error) {
	s, err := c.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	errs := c.assembler.Validator().ValidateStep(step, s.Form)
	if len(errs) > 0 {
		return errs, nil
	}
	if step >= s.Step && step < StepReview {
		s.Step = step + 1
		s.UpdatedAt = c.now()
		if err := c.sessions.Save(ctx, s); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

// Quote: текущий расчёт по черновику для отображения.
func (c *Checkout) Quote(ctx context.Context, id string) (pricing.Quote, error) {
	s, err := c.sessions.Get(ctx, id)
	if err != nil {
		return pricing.Quote{}, err
	}
	promo, err := c.resolvePromo(ctx, s.PromoCode)
	if err != nil {
		return pricing.Quote{}, err
	}
	q, err := c.assembler.calc.ComputeTotal(s.Cart, s.Form.District, promo, c.now())
	if err != nil {
		return pricing.Quote{}, cartError(err)
	}
	return q, nil
}

func (c *Checkout) resolvePromo(ctx context.Context, code string) (*models.PromoCode, error) {
	if code == "" || c.promos == nil {
		return nil, nil
	}
	promo, err := c.promos.ResolvePromo(ctx, code)
	if err != nil {
		return nil, err
	}
	if promo == nil {
		return nil, ValidationErrors{{Step: StepReview, Field: "promo_code", Tag: "exists", Message: "unknown promo code"}}
	}
	return promo, nil
}

// Submit собирает заказ из черновика и отправляет его с ограничением по времени.
// При ошибке отправки черновик не трогается.
func (c *Checkout) Submit(ctx context.Context, id string) (*models.Order, error) {
	s, err := c.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	promo, err := c.resolvePromo(ctx, s.PromoCode)
	if err != nil {
		var verrs ValidationErrors
		if errors.As(err, &verrs) {
			return nil, verrs
		}
		return nil, &SubmissionError{Err: err}
	}

	draft, err := c.assembler.Assemble(s.Form, s.Cart, promo)
	if err != nil {
		return nil, err
	}

	subCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	order, err := c.submitter.SubmitOrder(subCtx, draft.Request)
	if err != nil {
		var verrs ValidationErrors
		if errors.As(err, &verrs) {
			return nil, verrs
		}
		timedOut := errors.Is(err, context.DeadlineExceeded) || errors.Is(subCtx.Err(), context.DeadlineExceeded)
		c.log.Warn("order submission failed", zap.String("session_id", id), zap.Bool("timeout", timedOut), zap.Error(err))
		return nil, &SubmissionError{Err: err, Timeout: timedOut}
	}

	if err := c.sessions.Delete(ctx, id); err != nil {
		c.log.Error("failed to clear checkout session", zap.String("session_id", id), zap.Error(err))
	}
	if c.invalidator != nil {
		if err := c.invalidator.InvalidateOrderLists(ctx); err != nil {
			c.log.Warn("failed to invalidate order lists", zap.Error(err))
		}
	}

	c.log.Info("order submitted", zap.String("session_id", id), zap.String("tracking_id", order.TrackingID))
	return order, nil
}

func (c *Checkout) Cancel(ctx context.Context, id string) error {
	return c.sessions.Delete(ctx, id)
}
