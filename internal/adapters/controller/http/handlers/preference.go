package handlers

import (
	"net/http"

	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/adapters/controller/http/middlewares"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/domain/common/errorz"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/domain/dto"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/domain/entity"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/domain/service"
	"github.com/labstack/echo/v4"
)

type PreferenceHandler struct {
	preferences *service.PreferenceService
}

func NewPreferenceHandler(preferences *service.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{preferences: preferences}
}

// Get returns the caller's toggles, creating the default row on first access.
func (h *PreferenceHandler) Get(c echo.Context) error {
	userID, ok := middlewares.UserID(c)
	if !ok {
		return errorz.ErrUnauthorized
	}

	preference, err := h.preferences.Get(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, preference)
}

// Update replaces the caller's toggles wholesale.
func (h *PreferenceHandler) Update(c echo.Context) error {
	userID, ok := middlewares.UserID(c)
	if !ok {
		return errorz.ErrUnauthorized
	}

	var body dto.UpdatePreferences
	if err := c.Bind(&body); err != nil {
		return errorz.ErrInvalidInput
	}
	if err := c.Validate(&body); err != nil {
		return err
	}

	preference := entity.NotificationPreference{
		UserID:             userID,
		EmailMatchReminder: body.EmailMatchReminder,
		EmailMatchUpdate:   body.EmailMatchUpdate,
		EmailPasswordReset: body.EmailPasswordReset,
		EmailVerification:  body.EmailVerification,
		PushJoinRequest:    body.PushJoinRequest,
		PushInvitation:     body.PushInvitation,
		PushMatchUpdate:    body.PushMatchUpdate,
		PushChatMessage:    body.PushChatMessage,
		PushTeamUpdate:     body.PushTeamUpdate,
		PushMatchReminder:  body.PushMatchReminder,
	}
	if err := h.preferences.Update(c.Request().Context(), &preference); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, preference)
}
