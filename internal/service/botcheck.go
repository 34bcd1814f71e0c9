package service

import (
	"strings"

	"linkpulse/internal/models"
	"linkpulse/internal/repository"
	"linkpulse/internal/response"
)

// Пороговые значения эвристик. Сигнал для ручной проверки, не блокировка.
const (
	HighClicksPerIPThreshold = 10.0
	SingleIPClickThreshold   = 20
	DirectTrafficShare       = 0.9
	SuspiciousUAShare        = 0.3
)

var suspiciousUANeedles = []string{"bot", "crawler", "spider"}

// EvaluateBotSuspicion derives suspicion signals from per-IP and
// per-referer frequency tables plus a click sample.
func EvaluateBotSuspicion(ipCounts, refererCounts []repository.ValueCount, clicks []models.Click) response.BotSuspicionReport {
	var report response.BotSuspicionReport

	var total int64
	var maxPerIP int64
	for _, ip := range ipCounts {
		total += ip.Count
		if ip.Count > maxPerIP {
			maxPerIP = ip.Count
		}
	}
	report.TotalClicks = total
	report.UniqueIPs = int64(len(ipCounts))

	if report.UniqueIPs > 0 {
		report.ClicksPerIP = float64(total) / float64(report.UniqueIPs)
	}
	report.HighClicksPerIP = report.ClicksPerIP > HighClicksPerIPThreshold
	report.SameIPHeavyUsage = maxPerIP > SingleIPClickThreshold

	var direct int64
	for _, ref := range refererCounts {
		if ClassifyReferer(ref.Value) == refererDirect {
			direct += ref.Count
		}
	}
	report.NoReferer = total > 0 && float64(direct) > DirectTrafficShare*float64(total)

	for _, click := range clicks {
		if isSuspiciousUserAgent(click.UserAgent) {
			report.SuspiciousUserAgents++
		}
	}

	// Доля считается от размера выборки кликов, а не от таблицы IP:
	// выборка может покрывать другой срез трафика.
	sample := int64(len(clicks))
	suspiciousUAHeavy := sample > 0 && float64(report.SuspiciousUserAgents) > SuspiciousUAShare*float64(sample)
	report.IsSuspicious = report.HighClicksPerIP || report.SameIPHeavyUsage || suspiciousUAHeavy

	return report
}

func isSuspiciousUserAgent(ua string) bool {
	if ua == "" {
		return true
	}
	lower := strings.ToLower(ua)
	for _, needle := range suspiciousUANeedles {
		if strings.Contains(lower, needle) {
			return true
		}
	}
	return false
}
