package handlers

import (
	"net/http"

	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/adapters/controller/http/middlewares"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/domain/common/errorz"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/domain/dto"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/domain/service"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Register creates the account and kicks off the email verification flow.
func (h *UserHandler) Register(c echo.Context) error {
	var body dto.RegisterUser
	if err := c.Bind(&body); err != nil {
		return errorz.ErrInvalidInput
	}
	if err := c.Validate(&body); err != nil {
		return err
	}

	ctx := service.WithCorrelationID(c.Request().Context(), middlewares.CorrelationID(c))
	user, err := h.users.Register(ctx, body.Email, body.Username, body.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) Me(c echo.Context) error {
	userID, ok := middlewares.UserID(c)
	if !ok {
		return errorz.ErrUnauthorized
	}

	user, err := h.users.Get(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) VerifyEmail(c echo.Context) error {
	userID, ok := middlewares.UserID(c)
	if !ok {
		return errorz.ErrUnauthorized
	}

	var body dto.VerifyEmail
	if err := c.Bind(&body); err != nil {
		return errorz.ErrInvalidInput
	}
	if err := c.Validate(&body); err != nil {
		return err
	}

	ctx := service.WithCorrelationID(c.Request().Context(), middlewares.CorrelationID(c))
	if err := h.users.VerifyEmail(ctx, userID, body.Code); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// RequestPasswordReset is public: it takes an email, not a token.
func (h *UserHandler) RequestPasswordReset(c echo.Context) error {
	var body dto.RequestPasswordReset
	if err := c.Bind(&body); err != nil {
		return errorz.ErrInvalidInput
	}
	if err := c.Validate(&body); err != nil {
		return err
	}

	ctx := service.WithCorrelationID(c.Request().Context(), middlewares.CorrelationID(c))
	if err := h.users.RequestPasswordReset(ctx, body.Email); err != nil {
		return err
	}
	return c.NoContent(http.StatusAccepted)
}

func (h *UserHandler) Delete(c echo.Context) error {
	userID, ok := middlewares.UserID(c)
	if !ok {
		return errorz.ErrUnauthorized
	}

	ctx := service.WithCorrelationID(c.Request().Context(), middlewares.CorrelationID(c))
	if err := h.users.Delete(ctx, userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
