package handler

import (
	"errors"
	"net/http"
	"sync"

	"linkpulse/internal/models"
	"linkpulse/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type linkResolver interface {
	GetByShortCode(code string) (*models.Link, error)
}

type clickRecorder interface {
	Record(link *models.Link, info service.ClientInfo) error
}

type RedirectHandler struct {
	links  linkResolver
	clicks clickRecorder
	log    *zap.Logger
	wg     *sync.WaitGroup
}

func NewRedirectHandler(links linkResolver, clicks clickRecorder, log *zap.Logger, wg *sync.WaitGroup) *RedirectHandler {
	return &RedirectHandler{
		links:  links,
		clicks: clicks,
		log:    log,
		wg:     wg,
	}
}

// Redirect godoc
//
//	@Summary		Редирект по короткому коду
//	@Description	302 на размеченный UTM-метками адрес, при любой ошибке — 302 на корень
//	@Tags			redirect
//	@Param			code	path	string	true	"Короткий код"
//	@Success		302
//	@Router			/r/{code} [get]
func (h *RedirectHandler) Redirect(c *gin.Context) {
	code := c.Param("code")

	link, err := h.links.GetByShortCode(code)
	if err != nil {
		if !errors.Is(err, service.ErrLinkNotFound) {
			h.log.Warn("Redirect lookup failed", zap.String("code", code), zap.Error(err))
		}
		c.Redirect(http.StatusFound, "/")
		return
	}

	target, err := service.BuildTaggedURL(link.DestinationURL, service.UTMFromLink(link))
	if err != nil {
		h.log.Warn("Failed to rebuild tagged url", zap.String("code", code), zap.Error(err))
		c.Redirect(http.StatusFound, "/")
		return
	}

	// Запись клика не должна задерживать и тем более ронять редирект:
	// потерянный клик — приемлемая цена, ошибка только логируется.
	info := service.ClientInfoFromHeaders(c.Request.Header)
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		if err := h.clicks.Record(link, info); err != nil {
			h.log.Warn("Failed to record click", zap.String("code", code), zap.Error(err))
		}
	}()

	c.Redirect(http.StatusFound, target)
}
