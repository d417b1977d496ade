package handlers

import (
	"net/http"
	"strconv"

	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/adapters/controller/http/middlewares"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/domain/common/errorz"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/domain/service"
	"github.com/labstack/echo/v4"
)

type NotificationHandler struct {
	notifications *service.NotificationService
}

func NewNotificationHandler(notifications *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// List returns the caller's notifications, newest first.
func (h *NotificationHandler) List(c echo.Context) error {
	userID, ok := middlewares.UserID(c)
	if !ok {
		return errorz.ErrUnauthorized
	}

	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 20
	}

	notifications, err := h.notifications.GetByUser(c.Request().Context(), userID, offset, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) UnreadCount(c echo.Context) error {
	userID, ok := middlewares.UserID(c)
	if !ok {
		return errorz.ErrUnauthorized
	}

	count, err := h.notifications.CountUnread(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]int64{"unread": count})
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	userID, ok := middlewares.UserID(c)
	if !ok {
		return errorz.ErrUnauthorized
	}

	if err := h.notifications.MarkRead(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	userID, ok := middlewares.UserID(c)
	if !ok {
		return errorz.ErrUnauthorized
	}

	if err := h.notifications.MarkAllRead(c.Request().Context(), userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
