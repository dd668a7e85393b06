package handlers

import (
	"errors"
	"net/http"

	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/checkout"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/dto"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/lifecycle"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/models"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func fieldErrors(errs checkout.ValidationErrors) []dto.FieldError {
	out := make([]dto.FieldError, 0, len(errs))
	for _, e := range errs {
		fe := dto.FieldError{Field: e.Field, Message: e.Message, Tag: e.Tag}
		if e.Step != 0 {
			fe.Step = e.Step.String()
		}
		out = append(out, fe)
	}
	return out
}

func allowedTargets(from models.OrderStatus) []string {
	allowed := lifecycle.Allowed(from)
	out := make([]string, 0, len(allowed))
	for _, st := range allowed {
		out = append(out, string(st))
	}
	return out
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, dto.NewValidationError(msg, []dto.FieldError{}))
}

// writeError переводит доменные ошибки в ответы dto.BaseError.
func writeError(c *gin.Context, log *zap.Logger, err error) {
	var (
		verrs checkout.ValidationErrors
		terr  *lifecycle.TransitionError
		serr  *checkout.SubmissionError
	)
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusUnprocessableEntity, dto.NewValidationError("validation failed", fieldErrors(verrs)))
	case errors.As(err, &terr):
		if terr.Kind == lifecycle.KindUnknownStatus {
			c.JSON(http.StatusBadRequest, dto.NewValidationError(terr.Error(), []dto.FieldError{
				{Field: "status", Message: terr.Error(), Tag: "oneof"},
			}))
			return
		}
		var allowed []string
		if !terr.Conflict() {
			allowed = allowedTargets(terr.From)
		}
		c.JSON(http.StatusConflict, dto.NewConflictError(terr.Error(), string(terr.Kind), allowed))
	case errors.As(err, &serr):
		log.Warn("submission failed", zap.Bool("timeout", serr.Timeout), zap.Error(serr.Err))
		code := http.StatusBadGateway
		if serr.Timeout {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, dto.NewSubmissionError(serr.Error()))
	case errors.Is(err, service.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, dto.NewNotFoundError("order not found"))
	case errors.Is(err, service.ErrPromoNotFound):
		c.JSON(http.StatusNotFound, dto.NewNotFoundError("promo code not found"))
	case errors.Is(err, checkout.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, dto.NewNotFoundError("checkout session not found"))
	case errors.Is(err, service.ErrInvalidTrackingQuery), errors.Is(err, checkout.ErrEmptySessionID):
		badRequest(c, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, dto.NewUnauthorizedError("admin token required"))
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.NewForbiddenError("admin role required"))
	default:
		log.Error("internal error", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewInternalError(""))
	}
}
