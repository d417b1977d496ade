package handlers

import (
	"errors"
	"net/http"

	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/domain/common/errorz"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/pkg/logger/types"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// ErrorResponse is the structured error body every synchronous path returns.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorHandler maps domain sentinels to structured responses.
func ErrorHandler(logger *types.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		code := "internal_error"
		message := "internal error"

		var httpErr *echo.HTTPError
		var validationErrs validator.ValidationErrors
		switch {
		case errors.Is(err, errorz.ErrNotFound):
			status, code, message = http.StatusNotFound, "not_found", "resource not found"
		case errors.Is(err, errorz.ErrForbidden):
			status, code, message = http.StatusForbidden, "forbidden", "access denied"
		case errors.Is(err, errorz.ErrUnauthorized):
			status, code, message = http.StatusUnauthorized, "unauthorized", "authentication required"
		case errors.Is(err, errorz.ErrInvalidInput):
			status, code, message = http.StatusBadRequest, "invalid_input", "invalid request"
		case errors.Is(err, errorz.ErrDuplicate):
			status, code, message = http.StatusConflict, "conflict", "resource already exists"
		case errors.As(err, &validationErrs):
			status, code, message = http.StatusBadRequest, "validation_failed", validationErrs.Error()
		case errors.As(err, &httpErr):
			status = httpErr.Code
			code = http.StatusText(status)
			if m, ok := httpErr.Message.(string); ok {
				message = m
			}
		default:
			logger.Errorf("unhandled error on %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
		}

		_ = c.JSON(status, ErrorResponse{Status: status, Code: code, Message: message})
	}
}

// Validator adapts validator/v10 to echo's binding hook.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
