package handlers

import (
	"net/http"
	"strconv"

	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/adapters/controller/http/middlewares"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/domain/common/errorz"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/domain/dto"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/domain/entity"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/domain/service"
	"github.com/labstack/echo/v4"
)

type MatchHandler struct {
	matches *service.MatchService
}

func NewMatchHandler(matches *service.MatchService) *MatchHandler {
	return &MatchHandler{matches: matches}
}

func (h *MatchHandler) Create(c echo.Context) error {
	userID, ok := middlewares.UserID(c)
	if !ok {
		return errorz.ErrUnauthorized
	}

	var body dto.CreateMatch
	if err := c.Bind(&body); err != nil {
		return errorz.ErrInvalidInput
	}
	if err := c.Validate(&body); err != nil {
		return err
	}

	ctx := service.WithCorrelationID(c.Request().Context(), middlewares.CorrelationID(c))
	match, err := h.matches.Create(ctx, entity.Match{
		CreatorID:  userID,
		Title:      body.Title,
		Sport:      body.Sport,
		Location:   body.Location,
		MaxPlayers: body.MaxPlayers,
		StartsAt:   body.StartsAt,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, match)
}

func (h *MatchHandler) Get(c echo.Context) error {
	match, err := h.matches.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, match)
}

func (h *MatchHandler) List(c echo.Context) error {
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 20
	}

	matches, err := h.matches.GetWithPagination(c.Request().Context(), offset, limit, "starts_at ASC")
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, matches)
}

func (h *MatchHandler) Update(c echo.Context) error {
	userID, ok := middlewares.UserID(c)
	if !ok {
		return errorz.ErrUnauthorized
	}

	var body dto.UpdateMatch
	if err := c.Bind(&body); err != nil {
		return errorz.ErrInvalidInput
	}
	if err := c.Validate(&body); err != nil {
		return err
	}

	ctx := service.WithCorrelationID(c.Request().Context(), middlewares.CorrelationID(c))
	match, err := h.matches.Update(ctx, userID, &entity.Match{
		ID:         c.Param("id"),
		Title:      body.Title,
		Sport:      body.Sport,
		Location:   body.Location,
		MaxPlayers: body.MaxPlayers,
		StartsAt:   body.StartsAt,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, match)
}

func (h *MatchHandler) UpdateStatus(c echo.Context) error {
	userID, ok := middlewares.UserID(c)
	if !ok {
		return errorz.ErrUnauthorized
	}

	var body dto.UpdateMatchStatus
	if err := c.Bind(&body); err != nil {
		return errorz.ErrInvalidInput
	}
	if err := c.Validate(&body); err != nil {
		return err
	}

	ctx := service.WithCorrelationID(c.Request().Context(), middlewares.CorrelationID(c))
	match, err := h.matches.UpdateStatus(ctx, userID, c.Param("id"), entity.MatchStatus(body.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, match)
}

func (h *MatchHandler) Delete(c echo.Context) error {
	userID, ok := middlewares.UserID(c)
	if !ok {
		return errorz.ErrUnauthorized
	}

	ctx := service.WithCorrelationID(c.Request().Context(), middlewares.CorrelationID(c))
	if err := h.matches.Delete(ctx, userID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *MatchHandler) RequestJoin(c echo.Context) error {
	userID, ok := middlewares.UserID(c)
	if !ok {
		return errorz.ErrUnauthorized
	}

	ctx := service.WithCorrelationID(c.Request().Context(), middlewares.CorrelationID(c))
	if err := h.matches.RequestJoin(ctx, c.Param("id"), userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusAccepted)
}

func (h *MatchHandler) ResolveJoin(c echo.Context) error {
	userID, ok := middlewares.UserID(c)
	if !ok {
		return errorz.ErrUnauthorized
	}

	var body dto.ResolveJoinRequest
	if err := c.Bind(&body); err != nil {
		return errorz.ErrInvalidInput
	}
	if err := c.Validate(&body); err != nil {
		return err
	}

	ctx := service.WithCorrelationID(c.Request().Context(), middlewares.CorrelationID(c))
	if err := h.matches.ResolveJoin(ctx, userID, c.Param("id"), body.RequesterID, body.Accept); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *MatchHandler) Save(c echo.Context) error {
	userID, ok := middlewares.UserID(c)
	if !ok {
		return errorz.ErrUnauthorized
	}

	ctx := service.WithCorrelationID(c.Request().Context(), middlewares.CorrelationID(c))
	if err := h.matches.Save(ctx, c.Param("id"), userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *MatchHandler) Unsave(c echo.Context) error {
	userID, ok := middlewares.UserID(c)
	if !ok {
		return errorz.ErrUnauthorized
	}

	ctx := service.WithCorrelationID(c.Request().Context(), middlewares.CorrelationID(c))
	if err := h.matches.Unsave(ctx, c.Param("id"), userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
