package handler

import (
	"errors"
	"net/http"

	"linkpulse/internal/response"
	"linkpulse/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AnalyticsHandler struct {
	service *service.AnalyticsService
}

func NewAnalyticsHandler(service *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: service,
	}
}

// Dashboard godoc
//
//	@Summary		Сводная аналитика
//	@Description	Агрегаты по доступным ссылкам за выбранный период
//	@Tags			analytics
//	@Produce		json
//	@Param			teamId	query		string							false	"Команда"
//	@Param			period	query		string							false	"24h|7d|30d|90d"
//	@Success		200		{object}	response.DashboardAnalytics		"Агрегаты"
//	@Failure		400		{object}	response.ErrorResponse			"Некорректный период"
//	@Failure		403		{object}	response.ErrorResponse			"Нет доступа"
//	@Router			/api/analytics [get]
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	teamID, ok := parseOptionalTeamID(c, c.Query("teamId"))
	if !ok {
		return
	}

	analytics, err := h.service.Dashboard(userID, teamID, c.Query("period"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPeriod):
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid period"})
		case errors.Is(err, service.ErrPlanRequired):
			c.JSON(http.StatusForbidden, response.ErrorResponse{Error: "Personal analytics requires a paid plan"})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, response.ErrorResponse{Error: "Not a member of this team"})
		default:
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "Server error"})
		}
		return
	}

	c.JSON(http.StatusOK, analytics)
}

// LinkClicks godoc
//
//	@Summary		Клики ссылки
//	@Description	Список кликов и агрегаты по одной ссылке
//	@Tags			analytics
//	@Produce		json
//	@Param			linkId	query		string					true	"ID ссылки"
//	@Success		200		{object}	response.ClickDetail	"Клики и агрегаты"
//	@Failure		403		{object}	response.ErrorResponse	"Нет доступа"
//	@Failure		404		{object}	response.ErrorResponse	"Не найдена"
//	@Router			/api/clicks [get]
func (h *AnalyticsHandler) LinkClicks(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	linkID, err := uuid.Parse(c.Query("linkId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid link id"})
		return
	}

	detail, err := h.service.LinkDetail(userID, linkID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLinkNotFound):
			c.JSON(http.StatusNotFound, response.ErrorResponse{Error: "Link not found"})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, response.ErrorResponse{Error: "Access denied"})
		default:
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "Server error"})
		}
		return
	}

	c.JSON(http.StatusOK, detail)
}
