package handlers

import (
	"net/http"

	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/adapters/controller/http/middlewares"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/domain/common/errorz"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/domain/dto"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/domain/service"
	"github.com/labstack/echo/v4"
)

type PushTokenHandler struct {
	pushTokens *service.PushTokenService
}

func NewPushTokenHandler(pushTokens *service.PushTokenService) *PushTokenHandler {
	return &PushTokenHandler{pushTokens: pushTokens}
}

func (h *PushTokenHandler) Register(c echo.Context) error {
	userID, ok := middlewares.UserID(c)
	if !ok {
		return errorz.ErrUnauthorized
	}

	var body dto.RegisterPushToken
	if err := c.Bind(&body); err != nil {
		return errorz.ErrInvalidInput
	}
	if err := c.Validate(&body); err != nil {
		return err
	}

	if err := h.pushTokens.Register(c.Request().Context(), userID, body.ExpoToken); err != nil {
		return err
	}
	return c.NoContent(http.StatusCreated)
}

func (h *PushTokenHandler) Delete(c echo.Context) error {
	userID, ok := middlewares.UserID(c)
	if !ok {
		return errorz.ErrUnauthorized
	}

	var body dto.RegisterPushToken
	if err := c.Bind(&body); err != nil {
		return errorz.ErrInvalidInput
	}
	if err := c.Validate(&body); err != nil {
		return err
	}

	if err := h.pushTokens.Delete(c.Request().Context(), userID, body.ExpoToken); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
