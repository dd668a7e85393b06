package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/dto"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AdminLoginer interface {
	Login(ctx context.Context, username, password string) (*service.AdminToken, error)
}

type AuthHandler struct {
	auth AdminLoginer
	log  *zap.Logger
}

func NewAuthHandler(auth AdminLoginer, log *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log}
}

// Login godoc
// @Summary Вход администратора
// @Description Выдаёт Bearer-токен для смены статусов и списка заказов
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Данные авторизации"
// @Success 200 {object} service.AdminToken
// @Failure 400 {object} dto.ValidationErrorResponse "Неверные данные"
// @Failure 401 {object} dto.UnauthorizedErrorResponse "Ошибка авторизации"
// @Failure 500 {object} dto.InternalErrorResponse "Внутренняя ошибка"
// @Router /api/v1/admin/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body", []dto.FieldError{}))
		return
	}

	tok, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, dto.NewUnauthorizedError("invalid username or password"))
			return
		}
		h.log.Error("Admin login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewInternalError(""))
		return
	}

	c.JSON(http.StatusOK, tok)
}
