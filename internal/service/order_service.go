package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/checkout"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/lifecycle"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/models"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/pricing"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/repository"

	"github.com/google/uuid"
	"github.com/nanorand/nanorand"
	"go.uber.org/zap"
)

const (
	trackingPrefix    = "TRX"
	trackingSuffixLen = 8
	trackingAttempts  = 5
)

type orderService struct {
	orders    repository.OrderRepo
	promos    repository.PromoRepo
	calc      *pricing.Calculator
	validator *checkout.Validator
	cache     CacheClient // может быть nil
	events    EventBus    // может быть nil
	opts      Options

	now     func() time.Time
	trackID func() (string, error)
	log     *zap.Logger
}

func NewOrderService(
	orders repository.OrderRepo,
	promos repository.PromoRepo,
	calc *pricing.Calculator,
	cache CacheClient,
	events EventBus,
	opts Options,
	log *zap.Logger,
) OrderService {
	return &orderService{
		orders:    orders,
		promos:    promos,
		calc:      calc,
		validator: checkout.NewValidator(calc.Table()),
		cache:     cache,
		events:    events,
		opts:      opts.withDefaults(),
		now:       time.Now,
		trackID:   generateTrackingID,
		log:       log,
	}
}

func generateTrackingID() (string, error) {
	rng, err := nanorand.Gen(trackingSuffixLen)
	if err != nil {
		return "", err
	}
	return trackingPrefix + strings.ToUpper(rng), nil
}

func NormalizeTrackingID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

func fieldErr(step checkout.Step, field, tag, msg string) checkout.ValidationErrors {
	return checkout.ValidationErrors{{Step: step, Field: field, Tag: tag, Message: msg}}
}

// SubmitOrder принимает тело в формате витрины, заново проверяет и пересчитывает заказ.
// Клиентский total должен совпасть с серверным расчётом.
func (s *orderService) SubmitOrder(ctx context.Context, req checkout.CreateOrderRequest) (*models.Order, error) {
	items, err := req.Items.Normalize()
	if err != nil {
		return nil, fieldErr(checkout.StepReview, "items", "json", err.Error())
	}
	if len(items) == 0 {
		return nil, fieldErr(checkout.StepReview, "items", "required", "cart is empty")
	}
	if req.Status != "" && req.Status != lifecycle.Initial() {
		return nil, fieldErr(checkout.StepReview, "status", "eq", "new orders must be "+string(lifecycle.Initial()))
	}

	form, err := req.Form()
	if err != nil {
		return nil, fieldErr(checkout.StepPayment, "payment_info", "json", err.Error())
	}
	if errs := s.validator.ValidateForm(form); len(errs) > 0 {
		return nil, errs
	}

	images, err := req.CustomImages.Normalize()
	if err != nil {
		return nil, fieldErr(checkout.StepReview, "custom_images", "json", err.Error())
	}

	var promo *models.PromoCode
	if code := models.NormalizePromoCode(req.PromoCode); code != "" {
		promo, err = s.promos.GetByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if promo == nil {
			return nil, fieldErr(checkout.StepReview, "promo_code", "exists", "unknown promo code")
		}
	}

	now := s.now()
	quote, err := s.calc.ComputeTotal(items, form.District, promo, now)
	if err != nil {
		return nil, fieldErr(checkout.StepReview, "items", "cart", err.Error())
	}
	if quote.Provisional {
		return nil, fieldErr(checkout.StepAddress, "district", "oneof", "delivery fee is not known for this district")
	}
	if quote.PromoError != nil {
		return nil, fieldErr(checkout.StepReview, "promo_code", string(quote.PromoError.Reason), quote.PromoError.Error())
	}

	clientTotal, err := strconv.ParseInt(strings.TrimSpace(req.Total), 10, 64)
	if err != nil || clientTotal != quote.Total {
		return nil, fieldErr(checkout.StepReview, "total", "eq",
			fmt.Sprintf("total %q does not match computed total %d", req.Total, quote.Total))
	}

	trackingID, err := s.allocateTrackingID(ctx)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		ID:           uuid.New(),
		TrackingID:   trackingID,
		CustomerName: strings.TrimSpace(form.CustomerName),
		Phone:        strings.TrimSpace(form.Phone),
		District:     strings.TrimSpace(form.District),
		Thana:        strings.TrimSpace(form.Thana),
		Address:      strings.TrimSpace(form.AddressLine),
		Landmark:     strings.TrimSpace(form.Landmark),
		Items:        models.Parsed(items),
		Subtotal:     quote.Subtotal,
		DeliveryFee:  quote.DeliveryFee,
		Discount:     quote.Discount,
		Total:        quote.Total,
		PaymentInfo: models.Parsed(models.PaymentInfo{
			Method:        form.PaymentMethod,
			SenderNumber:  strings.TrimSpace(form.SenderNumber),
			TransactionID: strings.TrimSpace(form.TransactionID),
			AmountPaid:    form.AmountPaid,
		}),
		CustomInstructions: strings.TrimSpace(req.CustomInstructions),
		Status:             lifecycle.Initial(),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if len(images) > 0 {
		order.CustomImages = models.Parsed(images)
	}
	if promo != nil {
		code := quote.PromoCode
		order.PromoCode = &code
	}

	err = s.orders.WithTx(ctx, func(txOrders repository.OrderRepo, txPromos repository.PromoRepo) error {
		if promo != nil {
			if err := txPromos.IncrementUsage(ctx, promo.Code); err != nil {
				return err
			}
		}
		return txOrders.Create(ctx, order)
	})
	if errors.Is(err, repository.ErrPromoUsageExhausted) {
		return nil, fieldErr(checkout.StepReview, "promo_code", string(pricing.ReasonUsageExhausted), "promo code usage limit reached")
	}
	if err != nil {
		return nil, err
	}

	s.log.Info("заказ создан",
		zap.String("tracking_id", order.TrackingID),
		zap.Int64("total", order.Total),
		zap.String("district", order.District))

	if s.events != nil {
		if err := s.events.PublishOrderCreated(ctx, newOrderCreatedEvent(order)); err != nil {
			s.log.Warn("не удалось опубликовать order.created", zap.String("tracking_id", order.TrackingID), zap.Error(err))
		}
	}
	s.invalidateLists(ctx)

	return order, nil
}

func (s *orderService) allocateTrackingID(ctx context.Context) (string, error) {
	for i := 0; i < trackingAttempts; i++ {
		id, err := s.trackID()
		if err != nil {
			return "", err
		}
		exists, err := s.orders.TrackingIDExists(ctx, id)
		if err != nil {
			return "", err
		}
		if !exists {
			return id, nil
		}
		s.log.Debug("коллизия tracking id", zap.String("tracking_id", id))
	}
	return "", ErrTrackingIDExhausted
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	ord, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	return ord, nil
}

func (s *orderService) TrackOrder(ctx context.Context, trackingID string) (*models.Order, error) {
	trackingID = NormalizeTrackingID(trackingID)
	if trackingID == "" {
		return nil, ErrInvalidTrackingQuery
	}

	var (
		version   int64
		cacheable bool
	)
	if s.cache != nil {
		data, v, err := s.cache.GetTrackedOrder(ctx, trackingID)
		if err != nil {
			s.log.Warn("ошибка чтения кэша трекинга", zap.Error(err))
		} else {
			version, cacheable = v, true
		}
		if data != nil {
			var ord models.Order
			if err := json.Unmarshal(data, &ord); err == nil {
				return &ord, nil
			}
			s.log.Warn("битая запись кэша трекинга", zap.String("tracking_id", trackingID))
		}
	}

	ord, err := s.orders.GetByTrackingID(ctx, trackingID)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}

	if cacheable {
		if data, err := json.Marshal(ord); err == nil {
			if err := s.cache.SetTrackedOrder(ctx, trackingID, version, data, s.opts.TrackingTTL); err != nil {
				s.log.Warn("не удалось записать кэш трекинга", zap.Error(err))
			}
		}
	}
	return ord, nil
}

func (s *orderService) ListOrders(ctx context.Context, f ListFilter) (*OrderPage, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	if f.Status != nil && !lifecycle.IsValid(*f.Status) {
		return nil, &lifecycle.TransitionError{To: *f.Status, Kind: lifecycle.KindUnknownStatus}
	}

	key := f.cacheKey()
	var (
		version   int64
		cacheable bool
	)
	if s.cache != nil {
		data, v, err := s.cache.GetOrderList(ctx, key)
		if err != nil {
			s.log.Warn("ошибка чтения кэша списка", zap.Error(err))
		} else {
			version, cacheable = v, true
		}
		if data != nil {
			var page OrderPage
			if err := json.Unmarshal(data, &page); err == nil {
				return &page, nil
			}
		}
	}

	rows, total, err := s.orders.List(ctx, repository.OrderListFilter{
		Status: f.Status,
		Phone:  f.Phone,
		Limit:  f.Limit,
		Offset: f.Offset,
	})
	if err != nil {
		return nil, err
	}

	page := &OrderPage{Orders: make([]models.Order, len(rows)), Total: total}
	for i, o := range rows {
		page.Orders[i] = *o
	}

	if cacheable {
		if data, err := json.Marshal(page); err == nil {
			if err := s.cache.SetOrderList(ctx, key, version, data, s.opts.ListTTL); err != nil {
				s.log.Warn("не удалось записать кэш списка", zap.Error(err))
			}
		}
	}
	return page, nil
}

// UpdateStatus проводит заказ по жизненному циклу. Запись условная: если статус
// успели поменять, возвращается конфликт, и заказ нужно перечитать.
func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, to models.OrderStatus, force bool) (*models.Order, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	ord, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}

	from := ord.Status
	if _, err := lifecycle.Transition(ord, to, force); err != nil {
		return nil, err
	}

	if force {
		err = s.orders.ForceStatus(ctx, id, to)
	} else {
		err = s.orders.UpdateStatus(ctx, id, from, to)
	}
	if errors.Is(err, repository.ErrStatusConflict) {
		return nil, &lifecycle.TransitionError{From: from, To: to, Kind: lifecycle.KindConflict}
	}
	if err != nil {
		return nil, err
	}

	updated, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrOrderNotFound
	}

	sub, _ := SubjectFromContext(ctx)
	s.log.Info("статус заказа изменён",
		zap.String("tracking_id", updated.TrackingID),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
		zap.Bool("force", force),
		zap.String("by", sub))

	if s.cache != nil {
		if err := s.cache.DropTrackedOrder(ctx, updated.TrackingID); err != nil {
			s.log.Warn("не удалось сбросить кэш трекинга", zap.Error(err))
		}
	}
	s.invalidateLists(ctx)

	if s.events != nil {
		err := s.events.PublishOrderStatusChanged(ctx, OrderStatusChangedEvent{
			OrderID:    updated.ID,
			TrackingID: updated.TrackingID,
			From:       from,
			To:         to,
			Forced:     force,
			ChangedAt:  s.now(),
		})
		if err != nil {
			s.log.Warn("не удалось опубликовать order.status_changed", zap.Error(err))
		}
	}
	return updated, nil
}

func (s *orderService) ResolvePromo(ctx context.Context, code string) (*models.PromoCode, error) {
	return s.promos.GetByCode(ctx, code)
}

func (s *orderService) ValidatePromo(ctx context.Context, code string, subtotal int64) (*PromoPreview, error) {
	promo, err := s.promos.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if promo == nil {
		return nil, ErrPromoNotFound
	}
	if subtotal < 0 {
		subtotal = 0
	}

	now := s.now()
	discount, perr := pricing.Discount(promo, subtotal, 0, now)
	return &PromoPreview{
		Code:           promo.Code,
		Status:         promo.EffectiveStatus(now),
		DiscountType:   promo.DiscountType,
		DiscountValue:  promo.DiscountValue,
		MinOrderAmount: promo.MinOrderAmount,
		Subtotal:       subtotal,
		Discount:       discount,
		Error:          perr,
	}, nil
}

// Quote: превью итога той же функцией, что и при оформлении.
// Неизвестный промокод не ломает расчёт, а попадает в PromoError.
func (s *orderService) Quote(ctx context.Context, in QuoteInput) (pricing.Quote, error) {
	var promo *models.PromoCode
	code := models.NormalizePromoCode(in.PromoCode)
	if code != "" {
		p, err := s.promos.GetByCode(ctx, code)
		if err != nil {
			return pricing.Quote{}, err
		}
		promo = p
	}

	q, err := s.calc.ComputeTotal(in.Items, in.District, promo, s.now())
	if err != nil {
		return pricing.Quote{}, fieldErr(checkout.StepReview, "items", "cart", err.Error())
	}
	if code != "" && promo == nil {
		q.PromoCode = code
		q.PromoError = &pricing.PricingError{Code: code, Reason: pricing.ReasonInvalidPromo}
	}
	return q, nil
}

func (s *orderService) InvalidateOrderLists(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.InvalidateOrderLists(ctx)
}

func (s *orderService) invalidateLists(ctx context.Context) {
	if err := s.InvalidateOrderLists(ctx); err != nil {
		s.log.Warn("не удалось сбросить кэш списков", zap.Error(err))
	}
}

func (s *orderService) DeliveryTable() *pricing.DeliveryTable { return s.calc.Table() }
