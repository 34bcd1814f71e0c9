package handler

import (
	"errors"
	"net/http"
	"time"

	"linkpulse/config"
	"linkpulse/internal/models"
	"linkpulse/internal/response"
	"linkpulse/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LinkHandler struct {
	service *service.LinkService
	cfg     *config.Config
}

func NewLinkHandler(service *service.LinkService, cfg *config.Config) *LinkHandler {
	return &LinkHandler{
		service: service,
		cfg:     cfg,
	}
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Invalid session"})
		return uuid.Nil, false
	}
	return id, true
}

func parseOptionalTeamID(c *gin.Context, raw string) (*uuid.UUID, bool) {
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid team id"})
		return nil, false
	}
	return &id, true
}

type CreateLinkRequest struct {
	DestinationURL string  `json:"destination_url" binding:"required"`
	TeamID         *string `json:"team_id"`
	Title          *string `json:"title"`
	UTMSource      *string `json:"utm_source"`
	UTMMedium      *string `json:"utm_medium"`
	UTMCampaign    *string `json:"utm_campaign"`
	UTMTerm        *string `json:"utm_term"`
	UTMContent     *string `json:"utm_content"`
	WantShortCode  bool    `json:"want_short_code"`
}

// Create godoc
//
//	@Summary		Создание ссылки
//	@Description	Создаёт ссылку с UTM-метками и опциональным коротким кодом
//	@Tags			links
//	@Accept			json
//	@Produce		json
//	@Param			link	body		CreateLinkRequest		true	"Параметры ссылки"
//	@Success		201		{object}	response.LinkResponse	"Ссылка создана"
//	@Failure		400		{object}	response.ErrorResponse	"Ошибка валидации"
//	@Failure		403		{object}	response.ErrorResponse	"Лимит тарифа или чужая команда"
//	@Failure		500		{object}	response.ErrorResponse	"Ошибка сервера"
//	@Router			/api/links [post]
func (h *LinkHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Validation error"})
		return
	}

	var teamID *uuid.UUID
	if req.TeamID != nil {
		var ok bool
		if teamID, ok = parseOptionalTeamID(c, *req.TeamID); !ok {
			return
		}
	}

	link, err := h.service.CreateLink(userID, service.CreateLinkInput{
		DestinationURL: req.DestinationURL,
		UTM: service.UTMFields{
			Source:   req.UTMSource,
			Medium:   req.UTMMedium,
			Campaign: req.UTMCampaign,
			Term:     req.UTMTerm,
			Content:  req.UTMContent,
		},
		Title:         req.Title,
		TeamID:        teamID,
		WantShortCode: req.WantShortCode,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMalformedURL):
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Destination must be an absolute URL"})
		case errors.Is(err, service.ErrLinkLimitReached):
			c.JSON(http.StatusForbidden, response.ErrorResponse{Error: "Link limit reached for the free plan"})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, response.ErrorResponse{Error: "Not a member of this team"})
		default:
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "Server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, h.toResponse(link))
}

// List godoc
//
//	@Summary		Список доступных ссылок
//	@Tags			links
//	@Produce		json
//	@Param			teamId	query		string					false	"Команда"
//	@Success		200		{array}		response.LinkResponse	"Ссылки"
//	@Failure		403		{object}	response.ErrorResponse	"Чужая команда"
//	@Router			/api/links [get]
func (h *LinkHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	teamID, ok := parseOptionalTeamID(c, c.Query("teamId"))
	if !ok {
		return
	}

	links, err := h.service.ListForUser(userID, teamID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, response.ErrorResponse{Error: "Not a member of this team"})
		default:
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "Server error"})
		}
		return
	}

	resp := make([]response.LinkResponse, 0, len(links))
	for _, link := range links {
		resp = append(resp, h.toResponse(link))
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
//
//	@Summary		Удаление ссылки
//	@Description	Удаляет ссылку и каскадно её клики
//	@Tags			links
//	@Produce		json
//	@Param			id	path		string					true	"ID ссылки"
//	@Success		200	{object}	map[string]string		"Ссылка удалена"
//	@Failure		403	{object}	response.ErrorResponse	"Нет доступа"
//	@Failure		404	{object}	response.ErrorResponse	"Не найдена"
//	@Router			/api/links/{id} [delete]
func (h *LinkHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	linkID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid link id"})
		return
	}

	if err := h.service.DeleteLink(userID, linkID); err != nil {
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

	c.JSON(http.StatusOK, gin.H{"message": "link deleted successfully"})
}

func (h *LinkHandler) toResponse(link *models.Link) response.LinkResponse {
	resp := response.LinkResponse{
		ID:             link.ID.String(),
		DestinationURL: link.DestinationURL,
		ShortCode:      link.ShortCode,
		Title:          link.Title,
		UTMSource:      link.UTMSource,
		UTMMedium:      link.UTMMedium,
		UTMCampaign:    link.UTMCampaign,
		UTMTerm:        link.UTMTerm,
		UTMContent:     link.UTMContent,
		CreatedAt:      link.CreatedAt.Format(time.RFC3339),
	}
	if link.ShortCode != nil {
		shortURL := h.cfg.Domain + "/r/" + *link.ShortCode
		resp.ShortURL = &shortURL
	}
	return resp
}
