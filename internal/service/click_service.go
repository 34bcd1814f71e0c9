package service

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"time"

	"linkpulse/internal/models"
	"linkpulse/internal/producer"
	"linkpulse/internal/repository"

	"github.com/google/uuid"
	"github.com/mileusna/useragent"
	"go.uber.org/zap"
)

const unknownIP = "unknown"

// ClientInfo — метаданные запроса, нужные для записи клика.
type ClientInfo struct {
	IP        string
	UserAgent string
	Referer   string
}

// ClientInfoFromHeaders извлекает клиентский IP (первый элемент цепочки
// X-Forwarded-For) и сырые user-agent/referer. Чистая функция от заголовков.
func ClientInfoFromHeaders(h http.Header) ClientInfo {
	ip := unknownIP
	if xff := h.Get("X-Forwarded-For"); xff != "" {
		first := strings.TrimSpace(strings.Split(xff, ",")[0])
		if first != "" {
			ip = first
		}
	}
	return ClientInfo{
		IP:        ip,
		UserAgent: h.Get("User-Agent"),
		Referer:   h.Get("Referer"),
	}
}

type ClickService struct {
	repo    *repository.ClickRepository
	log     *zap.Logger
	brokers []string
	topic   string
}

func NewClickService(repo *repository.ClickRepository, log *zap.Logger, brokers []string, topic string) *ClickService {
	return &ClickService{
		repo:    repo,
		log:     log,
		brokers: brokers,
		topic:   topic,
	}
}

// Record сохраняет клик с серверным временем. Классификация user-agent и
// геолокация — внешние помощники; их сбой не мешает записи.
func (s *ClickService) Record(link *models.Link, info ClientInfo) error {
	click := &models.Click{
		LinkID:    link.ID,
		ClickedAt: time.Now(),
		IPAddress: info.IP,
		UserAgent: info.UserAgent,
		Referer:   info.Referer,
	}
	classifyUserAgent(click, info.UserAgent)
	s.locateIP(click, info.IP)

	if err := s.repo.Create(click); err != nil {
		return err
	}

	if len(s.brokers) > 0 {
		go func() {
			msg := producer.ClickMessage{
				ClickID:   click.ID.String(),
				LinkID:    link.ID.String(),
				IP:        click.IPAddress,
				Referer:   click.Referer,
				ClickedAt: click.ClickedAt,
			}
			if link.ShortCode != nil {
				msg.ShortCode = *link.ShortCode
			}
			if err := producer.PublishClick(s.brokers, s.topic, msg); err != nil {
				s.log.Warn("Failed to publish click event", zap.Error(err))
			}
		}()
	}

	return nil
}

func classifyUserAgent(click *models.Click, raw string) {
	if raw == "" {
		return
	}
	ua := useragent.Parse(raw)

	var device string
	switch {
	case ua.Bot:
		device = "Bot"
	case ua.Mobile:
		device = "Mobile"
	case ua.Tablet:
		device = "Tablet"
	case ua.Desktop:
		device = "Desktop"
	}
	if device != "" {
		click.Device = &device
	}
	if ua.Name != "" {
		browser := ua.Name
		click.Browser = &browser
	}
	if ua.OS != "" {
		osName := ua.OS
		click.OS = &osName
	}
}

// Геолокация через ip-api.com, как и раньше: ошибка просто оставляет
// country/city пустыми.
func (s *ClickService) locateIP(click *models.Click, ip string) {
	if ip == unknownIP {
		return
	}
	resp, err := http.Get("http://ip-api.com/json/" + ip)
	if err != nil {
		return
	}
	defer resp.Body.Close()
	var data struct {
		Country string `json:"country"`
		City    string `json:"city"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return
	}
	if data.Country != "" {
		click.Country = &data.Country
	}
	if data.City != "" {
		click.City = &data.City
	}
}

func (s *ClickService) GetClicks(linkID uuid.UUID) ([]models.Click, error) {
	clicks, err := s.repo.GetClicksByLinkID(linkID)
	if err != nil {
		return nil, err
	}
	sort.Slice(clicks, func(i, j int) bool { return clicks[i].ClickedAt.After(clicks[j].ClickedAt) })
	return clicks, nil
}

// Модерация: массовое удаление кликов по IP.
func (s *ClickService) DeleteByIP(ip string) (int64, error) {
	deleted, err := s.repo.DeleteByIP(ip)
	if err != nil {
		s.log.Error("Failed to delete clicks by ip", zap.String("ip", ip), zap.Error(err))
		return 0, err
	}
	return deleted, nil
}

// Модерация: массовое удаление кликов ссылки.
func (s *ClickService) DeleteByLink(linkID uuid.UUID) (int64, error) {
	deleted, err := s.repo.DeleteByLinkID(linkID)
	if err != nil {
		s.log.Error("Failed to delete clicks by link", zap.String("linkID", linkID.String()), zap.Error(err))
		return 0, err
	}
	return deleted, nil
}
