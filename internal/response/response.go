package response

import "linkpulse/internal/models"

type ErrorResponse struct {
	Error string `json:"error"`
}

type DatePoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type DeviceCount struct {
	Device string `json:"device"`
	Count  int64  `json:"count"`
}

type BrowserCount struct {
	Browser string `json:"browser"`
	Count   int64  `json:"count"`
}

type OSCount struct {
	OS    string `json:"os"`
	Count int64  `json:"count"`
}

type CountryCount struct {
	Country string `json:"country"`
	Count   int64  `json:"count"`
}

type CityCount struct {
	City  string `json:"city"`
	Count int64  `json:"count"`
}

type RefererCount struct {
	Referer string `json:"referer"`
	Count   int64  `json:"count"`
}

type IPCount struct {
	IP    string `json:"ip"`
	Count int64  `json:"count"`
}

type TopLink struct {
	Link  string `json:"link"`
	Count int64  `json:"count"`
}

type DashboardAnalytics struct {
	ClicksOverTime []DatePoint    `json:"clicksOverTime"`
	Devices        []DeviceCount  `json:"devices"`
	Browsers       []BrowserCount `json:"browsers"`
	Countries      []CountryCount `json:"countries"`
	Cities         []CityCount    `json:"cities"`
	Referers       []RefererCount `json:"referers"`
	TopLinks       []TopLink      `json:"topLinks"`
}

type LinkAnalytics struct {
	Devices        []DeviceCount  `json:"devices"`
	Browsers       []BrowserCount `json:"browsers"`
	OS             []OSCount      `json:"os"`
	Countries      []CountryCount `json:"countries"`
	Cities         []CityCount    `json:"cities"`
	ClicksOverTime []DatePoint    `json:"clicksOverTime"`
	Referers       []RefererCount `json:"referers"`
}

type ClickDetail struct {
	Clicks    []models.Click `json:"clicks"`
	Analytics LinkAnalytics  `json:"analytics"`
}

type LinkResponse struct {
	ID             string  `json:"id"`
	DestinationURL string  `json:"destination_url"`
	ShortURL       *string `json:"short_url"`
	ShortCode      *string `json:"short_code"`
	Title          *string `json:"title"`
	UTMSource      *string `json:"utm_source"`
	UTMMedium      *string `json:"utm_medium"`
	UTMCampaign    *string `json:"utm_campaign"`
	UTMTerm        *string `json:"utm_term"`
	UTMContent     *string `json:"utm_content"`
	CreatedAt      string  `json:"created_at"`
}

type BotSuspicionReport struct {
	TotalClicks          int64   `json:"totalClicks"`
	UniqueIPs            int64   `json:"uniqueIps"`
	ClicksPerIP          float64 `json:"clicksPerIp"`
	HighClicksPerIP      bool    `json:"highClicksPerIp"`
	SameIPHeavyUsage     bool    `json:"sameIpHeavyUsage"`
	NoReferer            bool    `json:"noReferer"`
	SuspiciousUserAgents int64   `json:"suspiciousUserAgents"`
	IsSuspicious         bool    `json:"isSuspicious"`
}

type AdminLinkReport struct {
	IPs      []IPCount          `json:"ips"`
	Referers []RefererCount     `json:"referers"`
	Bot      BotSuspicionReport `json:"bot"`
}

type AdminTopLinks struct {
	TopLinks []TopLink `json:"topLinks"`
}

type ModerationResponse struct {
	Deleted int64 `json:"deleted"`
}
