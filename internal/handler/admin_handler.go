package handler

import (
	"errors"
	"net/http"

	"linkpulse/internal/response"
	"linkpulse/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AdminHandler struct {
	analytics *service.AnalyticsService
	clicks    *service.ClickService
	log       *zap.Logger
}

func NewAdminHandler(analytics *service.AnalyticsService, clicks *service.ClickService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		analytics: analytics,
		clicks:    clicks,
		log:       log,
	}
}

// LinkReport godoc
//
//	@Summary		Отчёт по подозрительному трафику
//	@Description	Частоты по IP и referer плюс вердикт бот-эвристики
//	@Tags			admin
//	@Produce		json
//	@Param			id	path		string					true	"ID ссылки"
//	@Success		200	{object}	response.AdminLinkReport	"Отчёт"
//	@Failure		404	{object}	response.ErrorResponse	"Не найдена"
//	@Router			/api/admin/links/{id}/report [get]
func (h *AdminHandler) LinkReport(c *gin.Context) {
	linkID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid link id"})
		return
	}

	report, err := h.analytics.AdminLinkReport(linkID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLinkNotFound):
			c.JSON(http.StatusNotFound, response.ErrorResponse{Error: "Link not found"})
		default:
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "Server error"})
		}
		return
	}

	c.JSON(http.StatusOK, report)
}

// TopLinks godoc
//
//	@Summary		Топ ссылок по кликам
//	@Description	Топ-10 ссылок по всей базе за окно агрегации
//	@Tags			admin
//	@Produce		json
//	@Param			period	query		string					false	"Окно: 24h, 7d, 30d, 90d"
//	@Success		200		{object}	response.AdminTopLinks	"Топ ссылок"
//	@Failure		400		{object}	response.ErrorResponse	"Неверный период"
//	@Router			/api/admin/analytics/top-links [get]
func (h *AdminHandler) TopLinks(c *gin.Context) {
	top, err := h.analytics.AdminTopLinks(c.Query("period"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPeriod):
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid period"})
		default:
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "Server error"})
		}
		return
	}

	c.JSON(http.StatusOK, response.AdminTopLinks{TopLinks: top})
}

type ModerationRequest struct {
	Action string  `json:"action" binding:"required,oneof=delete_by_ip delete_by_link"`
	IP     *string `json:"ip"`
	LinkID *string `json:"linkId"`
}

// Moderation godoc
//
//	@Summary		Модерация кликов
//	@Description	Массовое удаление кликов по IP или по ссылке
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			action	body		ModerationRequest			true	"Действие"
//	@Success		200		{object}	response.ModerationResponse	"Количество удалённых"
//	@Failure		400		{object}	response.ErrorResponse		"Ошибка валидации"
//	@Router			/api/admin/moderation [post]
func (h *AdminHandler) Moderation(c *gin.Context) {
	var req ModerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Validation error"})
		return
	}

	var (
		deleted int64
		err     error
	)
	switch req.Action {
	case "delete_by_ip":
		if req.IP == nil || *req.IP == "" {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "ip is required"})
			return
		}
		deleted, err = h.clicks.DeleteByIP(*req.IP)
	case "delete_by_link":
		if req.LinkID == nil {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "linkId is required"})
			return
		}
		linkID, parseErr := uuid.Parse(*req.LinkID)
		if parseErr != nil {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid link id"})
			return
		}
		deleted, err = h.clicks.DeleteByLink(linkID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "Server error"})
		return
	}

	h.log.Info("Moderation action applied", zap.String("action", req.Action), zap.Int64("deleted", deleted))
	c.JSON(http.StatusOK, response.ModerationResponse{Deleted: deleted})
}
