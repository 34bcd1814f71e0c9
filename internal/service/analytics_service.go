package service

import (
	"errors"
	"sort"
	"time"

	"linkpulse/internal/models"
	"linkpulse/internal/repository"
	"linkpulse/internal/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrForbidden     = errors.New("access denied")
	ErrPlanRequired  = errors.New("plan upgrade required")
	ErrInvalidPeriod = errors.New("invalid period")
)

// Потолки выдачи по виду представления.
const (
	dashboardBreakdownLimit = 5
	detailBreakdownLimit    = 10
	adminBreakdownLimit     = 20
	dashboardTopLinksLimit  = 6
	adminTopLinksLimit      = 10
)

// Window — временное окно агрегации. Hourly включается только для 24h.
type Window struct {
	Since  time.Time
	Hourly bool
}

func ParseWindow(period string, now time.Time) (Window, error) {
	switch period {
	case "24h":
		return Window{Since: now.Add(-24 * time.Hour), Hourly: true}, nil
	case "", "7d":
		return Window{Since: now.AddDate(0, 0, -7)}, nil
	case "30d":
		return Window{Since: now.AddDate(0, 0, -30)}, nil
	case "90d":
		return Window{Since: now.AddDate(0, 0, -90)}, nil
	default:
		return Window{}, ErrInvalidPeriod
	}
}

type AnalyticsService struct {
	links  *repository.LinkRepository
	clicks *repository.ClickRepository
	users  *repository.UserRepository
	teams  *repository.TeamRepository
	log    *zap.Logger
}

func NewAnalyticsService(links *repository.LinkRepository, clicks *repository.ClickRepository, users *repository.UserRepository, teams *repository.TeamRepository, log *zap.Logger) *AnalyticsService {
	return &AnalyticsService{
		links:  links,
		clicks: clicks,
		users:  users,
		teams:  teams,
		log:    log,
	}
}

// Dashboard собирает сводку по доступным ссылкам вызывающего: личный
// контекст требует платного тарифа, командный — членства в команде.
// Пустая область видимости даёт пустые агрегаты, а не ошибку.
func (s *AnalyticsService) Dashboard(userID uuid.UUID, teamID *uuid.UUID, period string) (*response.DashboardAnalytics, error) {
	win, err := ParseWindow(period, time.Now())
	if err != nil {
		return nil, err
	}

	if teamID == nil {
		user, err := s.users.GetByID(userID)
		if err != nil {
			return nil, err
		}
		if user.Plan == "free" {
			return nil, ErrPlanRequired
		}
	}

	ids, err := s.resolveScope(userID, teamID)
	if err != nil {
		return nil, err
	}

	out := &response.DashboardAnalytics{
		ClicksOverTime: []response.DatePoint{},
		Devices:        []response.DeviceCount{},
		Browsers:       []response.BrowserCount{},
		Countries:      []response.CountryCount{},
		Cities:         []response.CityCount{},
		Referers:       []response.RefererCount{},
		TopLinks:       []response.TopLink{},
	}
	if len(ids) == 0 {
		return out, nil
	}

	series, err := s.timeSeries(ids, win)
	if err != nil {
		return nil, err
	}
	out.ClicksOverTime = series

	devices, err := s.clicks.CountsByField("device", ids, win.Since, dashboardBreakdownLimit)
	if err != nil {
		return nil, err
	}
	for _, v := range devices {
		out.Devices = append(out.Devices, response.DeviceCount{Device: v.Value, Count: v.Count})
	}

	browsers, err := s.clicks.CountsByField("browser", ids, win.Since, dashboardBreakdownLimit)
	if err != nil {
		return nil, err
	}
	for _, v := range browsers {
		out.Browsers = append(out.Browsers, response.BrowserCount{Browser: v.Value, Count: v.Count})
	}

	countries, err := s.clicks.CountsByField("country", ids, win.Since, dashboardBreakdownLimit)
	if err != nil {
		return nil, err
	}
	for _, v := range countries {
		out.Countries = append(out.Countries, response.CountryCount{Country: v.Value, Count: v.Count})
	}

	cities, err := s.clicks.CountsByField("city", ids, win.Since, dashboardBreakdownLimit)
	if err != nil {
		return nil, err
	}
	for _, v := range cities {
		out.Cities = append(out.Cities, response.CityCount{City: v.Value, Count: v.Count})
	}

	referers, err := s.classifiedReferers(ids, win.Since, dashboardBreakdownLimit)
	if err != nil {
		return nil, err
	}
	out.Referers = referers

	top, err := s.clicks.TopLinks(ids, win.Since, dashboardTopLinksLimit)
	if err != nil {
		return nil, err
	}
	for _, t := range top {
		out.TopLinks = append(out.TopLinks, response.TopLink{Link: topLinkLabel(t), Count: t.Count})
	}

	return out, nil
}

// LinkDetail — список кликов ссылки плюс агрегаты за всю её историю.
func (s *AnalyticsService) LinkDetail(userID, linkID uuid.UUID) (*response.ClickDetail, error) {
	link, err := s.links.GetByID(linkID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, err
	}
	if err := s.canAccess(userID, link); err != nil {
		return nil, err
	}

	clicks, err := s.clicks.GetClicksByLinkID(linkID)
	if err != nil {
		return nil, err
	}
	sort.Slice(clicks, func(i, j int) bool { return clicks[i].ClickedAt.After(clicks[j].ClickedAt) })
	if clicks == nil {
		clicks = []models.Click{}
	}

	ids := []uuid.UUID{linkID}
	var since time.Time

	analytics := response.LinkAnalytics{
		Devices:        []response.DeviceCount{},
		Browsers:       []response.BrowserCount{},
		OS:             []response.OSCount{},
		Countries:      []response.CountryCount{},
		Cities:         []response.CityCount{},
		ClicksOverTime: []response.DatePoint{},
		Referers:       []response.RefererCount{},
	}

	devices, err := s.clicks.CountsByField("device", ids, since, detailBreakdownLimit)
	if err != nil {
		return nil, err
	}
	for _, v := range devices {
		analytics.Devices = append(analytics.Devices, response.DeviceCount{Device: v.Value, Count: v.Count})
	}

	browsers, err := s.clicks.CountsByField("browser", ids, since, detailBreakdownLimit)
	if err != nil {
		return nil, err
	}
	for _, v := range browsers {
		analytics.Browsers = append(analytics.Browsers, response.BrowserCount{Browser: v.Value, Count: v.Count})
	}

	osCounts, err := s.clicks.CountsByField("os", ids, since, detailBreakdownLimit)
	if err != nil {
		return nil, err
	}
	for _, v := range osCounts {
		analytics.OS = append(analytics.OS, response.OSCount{OS: v.Value, Count: v.Count})
	}

	countries, err := s.clicks.CountsByField("country", ids, since, detailBreakdownLimit)
	if err != nil {
		return nil, err
	}
	for _, v := range countries {
		analytics.Countries = append(analytics.Countries, response.CountryCount{Country: v.Value, Count: v.Count})
	}

	cities, err := s.clicks.CountsByField("city", ids, since, detailBreakdownLimit)
	if err != nil {
		return nil, err
	}
	for _, v := range cities {
		analytics.Cities = append(analytics.Cities, response.CityCount{City: v.Value, Count: v.Count})
	}

	days, err := s.clicks.CountsByDay(ids, since)
	if err != nil {
		return nil, err
	}
	for _, v := range days {
		analytics.ClicksOverTime = append(analytics.ClicksOverTime, response.DatePoint{Date: v.Value, Count: v.Count})
	}

	referers, err := s.classifiedReferers(ids, since, detailBreakdownLimit)
	if err != nil {
		return nil, err
	}
	analytics.Referers = referers

	return &response.ClickDetail{Clicks: clicks, Analytics: analytics}, nil
}

// AdminLinkReport — частотные таблицы по IP и referer плюс вердикт
// бот-эвристики; только для админской выдачи.
func (s *AnalyticsService) AdminLinkReport(linkID uuid.UUID) (*response.AdminLinkReport, error) {
	if _, err := s.links.GetByID(linkID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, err
	}

	ids := []uuid.UUID{linkID}
	var since time.Time

	ipCounts, err := s.clicks.IPCounts(ids, since)
	if err != nil {
		return nil, err
	}
	refererCounts, err := s.clicks.RefererCounts(ids, since)
	if err != nil {
		return nil, err
	}
	clicks, err := s.clicks.GetClicksByLinkID(linkID)
	if err != nil {
		return nil, err
	}

	report := &response.AdminLinkReport{
		IPs:      []response.IPCount{},
		Referers: []response.RefererCount{},
		Bot:      EvaluateBotSuspicion(ipCounts, refererCounts, clicks),
	}
	// Вердикт считается по полным таблицам, выдача обрезается.
	for i, v := range ipCounts {
		if i >= adminBreakdownLimit {
			break
		}
		report.IPs = append(report.IPs, response.IPCount{IP: v.Value, Count: v.Count})
	}
	for i, v := range refererCounts {
		if i >= adminBreakdownLimit {
			break
		}
		report.Referers = append(report.Referers, response.RefererCount{Referer: v.Value, Count: v.Count})
	}
	return report, nil
}

// AdminTopLinks — топ ссылок по всей базе за окно; админская сводка,
// потолок выше дашбордного.
func (s *AnalyticsService) AdminTopLinks(period string) ([]response.TopLink, error) {
	win, err := ParseWindow(period, time.Now())
	if err != nil {
		return nil, err
	}

	top, err := s.clicks.TopLinksAll(win.Since, adminTopLinksLimit)
	if err != nil {
		return nil, err
	}
	out := make([]response.TopLink, 0, len(top))
	for _, t := range top {
		out = append(out, response.TopLink{Link: topLinkLabel(t), Count: t.Count})
	}
	return out, nil
}

func (s *AnalyticsService) resolveScope(userID uuid.UUID, teamID *uuid.UUID) ([]uuid.UUID, error) {
	if teamID == nil {
		return s.links.PersonalIDs(userID)
	}
	ok, err := s.teams.IsMember(*teamID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}
	return s.links.TeamIDs(*teamID)
}

func (s *AnalyticsService) canAccess(userID uuid.UUID, link *models.Link) error {
	if link.UserID != nil && *link.UserID == userID {
		return nil
	}
	if link.TeamID != nil {
		ok, err := s.teams.IsMember(*link.TeamID, userID)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}
	return ErrForbidden
}

func (s *AnalyticsService) timeSeries(ids []uuid.UUID, win Window) ([]response.DatePoint, error) {
	var (
		rows []repository.ValueCount
		err  error
	)
	if win.Hourly {
		rows, err = s.clicks.CountsByHour(ids, win.Since)
	} else {
		rows, err = s.clicks.CountsByDay(ids, win.Since)
	}
	if err != nil {
		return nil, err
	}
	// Пустые интервалы не подставляются: ряд разреженный.
	series := make([]response.DatePoint, 0, len(rows))
	for _, v := range rows {
		series = append(series, response.DatePoint{Date: v.Value, Count: v.Count})
	}
	return series, nil
}

func (s *AnalyticsService) classifiedReferers(ids []uuid.UUID, since time.Time, limit int) ([]response.RefererCount, error) {
	raw, err := s.clicks.RefererCounts(ids, since)
	if err != nil {
		return nil, err
	}
	return MergeRefererCounts(raw, limit), nil
}

// MergeRefererCounts сводит сырые referer-частоты в фиксированные метки.
// Метки — такая же категориальная разбивка, как device или country, поэтому
// выдача обрезается до потолка представления после слияния и сортировки.
func MergeRefererCounts(raw []repository.ValueCount, limit int) []response.RefererCount {
	merged := make(map[string]int64)
	for _, v := range raw {
		merged[ClassifyReferer(v.Value)] += v.Count
	}
	result := make([]response.RefererCount, 0, len(merged))
	for label, count := range merged {
		result = append(result, response.RefererCount{Referer: label, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Referer < result[j].Referer
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

func topLinkLabel(t repository.TopLinkCount) string {
	if t.Title != nil && *t.Title != "" {
		return *t.Title
	}
	return t.DestinationURL
}
