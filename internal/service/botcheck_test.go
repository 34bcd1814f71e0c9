package service

import (
	"fmt"
	"testing"

	"linkpulse/internal/models"
	"linkpulse/internal/repository"
)

const normalUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

func clickSample(n int, ua string) []models.Click {
	clicks := make([]models.Click, n)
	for i := range clicks {
		clicks[i].UserAgent = ua
	}
	return clicks
}

func TestEvaluateBotSuspicionSingleIP(t *testing.T) {
	// 100 кликов с одного IP из 100 всего
	ipCounts := []repository.ValueCount{{Value: "10.0.0.1", Count: 100}}
	refCounts := []repository.ValueCount{{Value: "https://www.google.com/", Count: 100}}

	report := EvaluateBotSuspicion(ipCounts, refCounts, clickSample(100, normalUA))

	if !report.SameIPHeavyUsage {
		t.Error("expected sameIpHeavyUsage for 100 clicks from one IP")
	}
	if !report.HighClicksPerIP {
		t.Error("expected highClicksPerIp at 100 clicks per IP")
	}
	if !report.IsSuspicious {
		t.Error("expected suspicious verdict")
	}
}

func TestEvaluateBotSuspicionSpreadTraffic(t *testing.T) {
	// 100 кликов равномерно с 50 IP, нормальные referer и user-agent
	var ipCounts []repository.ValueCount
	for i := 0; i < 50; i++ {
		ipCounts = append(ipCounts, repository.ValueCount{Value: fmt.Sprintf("10.0.0.%d", i), Count: 2})
	}
	refCounts := []repository.ValueCount{{Value: "https://www.google.com/", Count: 100}}

	report := EvaluateBotSuspicion(ipCounts, refCounts, clickSample(100, normalUA))

	if report.ClicksPerIP != 2 {
		t.Errorf("clicksPerIp = %v, want 2", report.ClicksPerIP)
	}
	if report.IsSuspicious {
		t.Error("spread traffic must not be flagged")
	}
}

func TestEvaluateBotSuspicionNoReferer(t *testing.T) {
	ipCounts := []repository.ValueCount{
		{Value: "10.0.0.1", Count: 5},
		{Value: "10.0.0.2", Count: 5},
	}
	refCounts := []repository.ValueCount{
		{Value: "", Count: 10},
	}

	report := EvaluateBotSuspicion(ipCounts, refCounts, clickSample(10, normalUA))

	if !report.NoReferer {
		t.Error("expected noReferer when all traffic is direct")
	}
	if report.IsSuspicious {
		t.Error("direct traffic alone must not flip the verdict")
	}
}

func TestEvaluateBotSuspicionUserAgents(t *testing.T) {
	ipCounts := []repository.ValueCount{
		{Value: "10.0.0.1", Count: 4},
		{Value: "10.0.0.2", Count: 3},
		{Value: "10.0.0.3", Count: 3},
	}
	refCounts := []repository.ValueCount{{Value: "https://www.google.com/", Count: 10}}

	clicks := clickSample(5, normalUA)
	clicks = append(clicks, clickSample(3, "Googlebot/2.1 (+http://www.google.com/bot.html)")...)
	clicks = append(clicks, clickSample(2, "")...)

	report := EvaluateBotSuspicion(ipCounts, refCounts, clicks)

	if report.SuspiciousUserAgents != 5 {
		t.Errorf("suspiciousUserAgents = %d, want 5", report.SuspiciousUserAgents)
	}
	// 5 из 10 — больше порога в 30%
	if !report.IsSuspicious {
		t.Error("expected suspicious verdict from user agents alone")
	}
}

func TestEvaluateBotSuspicionUserAgentShareOfSample(t *testing.T) {
	// Таблица IP покрывает 10 кликов, выборка — 20: доля подозрительных
	// user-agent считается от 20, и 5 из 20 не дотягивают до порога.
	ipCounts := []repository.ValueCount{
		{Value: "10.0.0.1", Count: 5},
		{Value: "10.0.0.2", Count: 5},
	}
	refCounts := []repository.ValueCount{{Value: "https://www.google.com/", Count: 10}}

	clicks := clickSample(15, normalUA)
	clicks = append(clicks, clickSample(5, "Googlebot/2.1 (+http://www.google.com/bot.html)")...)

	report := EvaluateBotSuspicion(ipCounts, refCounts, clicks)

	if report.SuspiciousUserAgents != 5 {
		t.Errorf("suspiciousUserAgents = %d, want 5", report.SuspiciousUserAgents)
	}
	if report.IsSuspicious {
		t.Error("5 of 20 sample clicks must not trip the 30% threshold")
	}
}

func TestEvaluateBotSuspicionEmpty(t *testing.T) {
	report := EvaluateBotSuspicion(nil, nil, nil)
	if report.ClicksPerIP != 0 {
		t.Errorf("clicksPerIp = %v, want 0 without IPs", report.ClicksPerIP)
	}
	if report.IsSuspicious {
		t.Error("empty input must not be suspicious")
	}
}
