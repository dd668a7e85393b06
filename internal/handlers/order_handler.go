package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/checkout"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/dto"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/lifecycle"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/models"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/service"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/tracking"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type WatchOptions struct {
	Interval        time.Duration
	NotFoundRetries int
	BaseBackoff     time.Duration
	MaxBackoff      time.Duration
}

type OrderHandler struct {
	svc   service.OrderService
	watch WatchOptions
	log   *zap.Logger
}

func NewOrderHandler(svc service.OrderService, watch WatchOptions, log *zap.Logger) *OrderHandler {
	return &OrderHandler{svc: svc, watch: watch, log: log}
}

// CreateOrder godoc
// @Summary Оформление заказа
// @Description Принимает заказ витрины. Сервер заново проверяет форму и пересчитывает итог; расхождение total даёт 422.
// @Tags orders
// @Accept json
// @Produce json
// @Param order body checkout.CreateOrderRequest true "Заказ"
// @Success 201 {object} models.Order
// @Failure 400 {object} dto.ValidationErrorResponse "Неверное тело запроса"
// @Failure 422 {object} dto.ValidationErrorResponse "Ошибки валидации"
// @Failure 500 {object} dto.InternalErrorResponse "Внутренняя ошибка"
// @Router /api/v1/orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req checkout.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid create order request", zap.Error(err))
		badRequest(c, "invalid request body")
		return
	}

	ord, err := h.svc.SubmitOrder(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, ord)
}

// UpdateStatus godoc
// @Summary Смена статуса заказа
// @Description Переход по жизненному циклу pending → confirmed → processing → shipped → delivered, отмена из любого нетерминального статуса (включая shipped). force снимает ограничения, кроме перехода в тот же статус.
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID заказа"
// @Param body body dto.UpdateStatusRequest true "Новый статус"
// @Success 200 {object} models.Order
// @Failure 400 {object} dto.ValidationErrorResponse "Неизвестный статус"
// @Failure 401 {object} dto.UnauthorizedErrorResponse
// @Failure 403 {object} dto.ForbiddenErrorResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Failure 409 {object} dto.ConflictErrorResponse "Недопустимый переход или параллельное изменение"
// @Router /api/v1/orders/{id} [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid order id")
		return
	}
	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	ord, err := h.svc.UpdateStatus(c.Request.Context(), id, req.Status, req.Force)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, ord)
}

// TrackOrder godoc
// @Summary Трекинг заказа
// @Tags orders
// @Produce json
// @Param tracking_id path string true "Tracking ID"
// @Success 200 {object} dto.TrackResponse
// @Failure 404 {object} dto.TrackResponse
// @Router /api/v1/orders/track/{tracking_id} [get]
func (h *OrderHandler) TrackOrder(c *gin.Context) {
	ord, err := h.svc.TrackOrder(c.Request.Context(), c.Param("tracking_id"))
	switch {
	case errors.Is(err, service.ErrOrderNotFound), errors.Is(err, service.ErrInvalidTrackingQuery):
		c.JSON(http.StatusNotFound, dto.TrackResponse{Success: false, Message: "order not found"})
	case err != nil:
		writeError(c, h.log, err)
	default:
		c.JSON(http.StatusOK, dto.TrackResponse{Success: true, Order: ord})
	}
}

func (h *OrderHandler) fetch(ctx context.Context, trackingID string) (*models.Order, error) {
	ord, err := h.svc.TrackOrder(ctx, trackingID)
	if errors.Is(err, service.ErrOrderNotFound) {
		return nil, tracking.ErrNotFound
	}
	return ord, err
}

// WatchOrder godoc
// @Summary Живой трекинг (SSE)
// @Description Поток событий state с текущим состоянием заказа. Закрывается после финального статуса или окончательного not found.
// @Tags orders
// @Produce text/event-stream
// @Param tracking_id path string true "Tracking ID"
// @Param interval query string false "Интервал опроса, 5s..30s"
// @Success 200 {object} dto.WatchEvent
// @Router /api/v1/orders/track/{tracking_id}/watch [get]
func (h *OrderHandler) WatchOrder(c *gin.Context) {
	trackingID := service.NormalizeTrackingID(c.Param("tracking_id"))
	if trackingID == "" {
		c.JSON(http.StatusNotFound, dto.TrackResponse{Success: false, Message: "order not found"})
		return
	}

	interval := h.watch.Interval
	if raw := c.Query("interval"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			badRequest(c, "invalid interval")
			return
		}
		interval = d
	}

	// держим только последнее состояние; отправитель один: горутина поллера
	updates := make(chan tracking.State, 1)
	push := func(st tracking.State) {
		if st.IsFetching {
			return
		}
		for {
			select {
			case updates <- st:
				return
			default:
			}
			select {
			case <-updates:
			default:
			}
		}
	}

	p := tracking.NewPoller(tracking.FetcherFunc(h.fetch), trackingID, tracking.Options{
		Interval:        interval,
		Live:            true,
		NotFoundRetries: h.watch.NotFoundRetries,
		BaseBackoff:     h.watch.BaseBackoff,
		MaxBackoff:      h.watch.MaxBackoff,
		OnChange:        push,
	}, h.log)

	ctx := c.Request.Context()
	p.Start(ctx)
	defer p.Stop()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case st := <-updates:
			ev := watchEvent(st)
			c.SSEvent("state", ev)
			done := st.Terminal || (st.Order != nil && lifecycle.IsTerminal(st.Order.Status))
			return !done
		}
	})
}

func watchEvent(st tracking.State) dto.WatchEvent {
	ev := dto.WatchEvent{
		Order:    st.Order,
		Fetching: st.IsFetching,
		Terminal: st.Terminal,
		Changed:  st.Changed,
	}
	if st.Err != nil {
		ev.Error = st.Err.Error()
	}
	if !st.LastUpdatedAt.IsZero() {
		t := st.LastUpdatedAt
		ev.LastUpdatedAt = &t
	}
	return ev
}

// ListOrders godoc
// @Summary Список заказов (админ)
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param status query string false "Фильтр по статусу"
// @Param phone query string false "Фильтр по телефону"
// @Param limit query int false "Размер страницы (по умолчанию 20)"
// @Param offset query int false "Смещение"
// @Success 200 {object} service.OrderPage
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 401 {object} dto.UnauthorizedErrorResponse
// @Router /api/v1/orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var f service.ListFilter
	if s := c.Query("status"); s != "" {
		st := models.OrderStatus(s)
		f.Status = &st
	}
	if p := c.Query("phone"); p != "" {
		f.Phone = &p
	}
	var err error
	if f.Limit, err = queryInt(c, "limit"); err != nil {
		badRequest(c, "invalid limit")
		return
	}
	if f.Offset, err = queryInt(c, "offset"); err != nil {
		badRequest(c, "invalid offset")
		return
	}

	page, err := h.svc.ListOrders(c.Request.Context(), f)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func queryInt(c *gin.Context, key string) (int, error) {
	s := c.Query(key)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

// ValidatePromo godoc
// @Summary Проверка промокода
// @Tags promo
// @Produce json
// @Param code path string true "Промокод"
// @Param subtotal query int false "Сумма корзины"
// @Success 200 {object} service.PromoPreview
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/v1/promo-codes/{code}/validate [get]
func (h *OrderHandler) ValidatePromo(c *gin.Context) {
	subtotal := int64(0)
	if s := c.Query("subtotal"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			badRequest(c, "invalid subtotal")
			return
		}
		subtotal = v
	}

	preview, err := h.svc.ValidatePromo(c.Request.Context(), c.Param("code"), subtotal)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, preview)
}

// Quote godoc
// @Summary Расчёт итога
// @Description Та же функция, что и при оформлении. Пока район не выбран, provisional=true.
// @Tags checkout
// @Accept json
// @Produce json
// @Param body body service.QuoteInput true "Корзина, район, промокод"
// @Success 200 {object} pricing.Quote
// @Failure 422 {object} dto.ValidationErrorResponse
// @Router /api/v1/checkout/quote [post]
func (h *OrderHandler) Quote(c *gin.Context) {
	var in service.QuoteInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	q, err := h.svc.Quote(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

// Districts godoc
// @Summary Справочник районов и стоимости доставки
// @Tags reference
// @Produce json
// @Success 200 {object} pricing.DeliveryTable
// @Router /api/v1/reference/districts [get]
func (h *OrderHandler) Districts(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.DeliveryTable())
}
