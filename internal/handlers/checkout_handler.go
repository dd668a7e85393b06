package handlers

import (
	"net/http"

	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/checkout"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/dto"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CheckoutHandler struct {
	checkout *checkout.Checkout
	log      *zap.Logger
}

func NewCheckoutHandler(co *checkout.Checkout, log *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{checkout: co, log: log}
}

// StartSession godoc
// @Summary Начать оформление
// @Tags checkout
// @Accept json
// @Produce json
// @Param body body dto.StartSessionRequest true "Корзина"
// @Success 201 {object} checkout.Session
// @Router /api/v1/checkout/sessions [post]
func (h *CheckoutHandler) StartSession(c *gin.Context) {
	var req dto.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	s, err := h.checkout.Start(c.Request.Context(), req.Cart)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

// GetSession godoc
// @Summary Черновик оформления
// @Tags checkout
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} checkout.Session
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/v1/checkout/sessions/{id} [get]
func (h *CheckoutHandler) GetSession(c *gin.Context) {
	s, err := h.checkout.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// UpdateSession godoc
// @Summary Обновить корзину, форму или промокод
// @Tags checkout
// @Accept json
// @Produce json
// @Param id path string true "ID сессии"
// @Param body body checkout.SessionUpdate true "Изменения"
// @Success 200 {object} checkout.Session
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/v1/checkout/sessions/{id} [put]
func (h *CheckoutHandler) UpdateSession(c *gin.Context) {
	var upd checkout.SessionUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	s, err := h.checkout.Update(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// ValidateStep godoc
// @Summary Проверить шаг формы
// @Description Все ошибки шага возвращаются разом; при успехе сессия переходит на следующий шаг.
// @Tags checkout
// @Produce json
// @Param id path string true "ID сессии"
// @Param step path string true "identity | address | payment | review"
// @Success 200 {object} dto.StepValidationResponse
// @Failure 422 {object} dto.ValidationErrorResponse
// @Router /api/v1/checkout/sessions/{id}/steps/{step}/validate [post]
func (h *CheckoutHandler) ValidateStep(c *gin.Context) {
	step, ok := checkout.ParseStep(c.Param("step"))
	if !ok {
		badRequest(c, "unknown step")
		return
	}
	errs, err := h.checkout.ValidateStep(c.Request.Context(), c.Param("id"), step)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	if len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, dto.NewValidationError("step is invalid", fieldErrors(errs)))
		return
	}
	s, err := h.checkout.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.StepValidationResponse{Valid: true, Step: step.String(), Next: s.Step.String()})
}

// SessionQuote godoc
// @Summary Итог по черновику
// @Tags checkout
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} pricing.Quote
// @Router /api/v1/checkout/sessions/{id}/quote [get]
func (h *CheckoutHandler) SessionQuote(c *gin.Context) {
	q, err := h.checkout.Quote(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

// Submit godoc
// @Summary Отправить заказ
// @Description При сбое отправки черновик сохраняется, запрос можно повторить.
// @Tags checkout
// @Produce json
// @Param id path string true "ID сессии"
// @Success 201 {object} models.Order
// @Failure 422 {object} dto.ValidationErrorResponse
// @Failure 502 {object} dto.SubmissionErrorResponse
// @Failure 503 {object} dto.SubmissionErrorResponse "Таймаут"
// @Router /api/v1/checkout/sessions/{id}/submit [post]
func (h *CheckoutHandler) Submit(c *gin.Context) {
	ord, err := h.checkout.Submit(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, ord)
}

// CancelSession godoc
// @Summary Отменить оформление
// @Tags checkout
// @Param id path string true "ID сессии"
// @Success 204
// @Router /api/v1/checkout/sessions/{id} [delete]
func (h *CheckoutHandler) CancelSession(c *gin.Context) {
	if err := h.checkout.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
