package service

import (
	"errors"
	"testing"
	"time"

	"linkpulse/internal/repository"
)

func TestParseWindow(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		period    string
		wantSince time.Time
		wantHour  bool
		wantErr   bool
	}{
		{"24h", now.Add(-24 * time.Hour), true, false},
		{"", now.AddDate(0, 0, -7), false, false},
		{"7d", now.AddDate(0, 0, -7), false, false},
		{"30d", now.AddDate(0, 0, -30), false, false},
		{"90d", now.AddDate(0, 0, -90), false, false},
		{"1y", time.Time{}, false, true},
		{"7D", time.Time{}, false, true},
	}

	for _, tt := range tests {
		t.Run("period "+tt.period, func(t *testing.T) {
			win, err := ParseWindow(tt.period, now)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPeriod) {
					t.Fatalf("ParseWindow(%q) error = %v, want ErrInvalidPeriod", tt.period, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseWindow(%q) unexpected error: %v", tt.period, err)
			}
			if !win.Since.Equal(tt.wantSince) {
				t.Errorf("Since = %v, want %v", win.Since, tt.wantSince)
			}
			if win.Hourly != tt.wantHour {
				t.Errorf("Hourly = %v, want %v", win.Hourly, tt.wantHour)
			}
		})
	}
}

func TestMergeRefererCounts(t *testing.T) {
	raw := []repository.ValueCount{
		{Value: "https://www.google.com/search?q=a", Count: 5},
		{Value: "https://news.google.com/", Count: 3},
		{Value: "", Count: 4},
		{Value: "https://old.reddit.com/r/x", Count: 2},
		{Value: "https://example.org/", Count: 1},
	}

	got := MergeRefererCounts(raw, detailBreakdownLimit)

	want := map[string]int64{
		"Google": 8,
		"Direct": 4,
		"Reddit": 2,
		"Other":  1,
	}
	if len(got) != len(want) {
		t.Fatalf("got %d labels, want %d: %+v", len(got), len(want), got)
	}
	for _, row := range got {
		if want[row.Referer] != row.Count {
			t.Errorf("label %q count = %d, want %d", row.Referer, row.Count, want[row.Referer])
		}
	}
	// Сортировка по убыванию
	for i := 1; i < len(got); i++ {
		if got[i].Count > got[i-1].Count {
			t.Errorf("rows not sorted by count desc: %+v", got)
		}
	}
}

func TestMergeRefererCountsCap(t *testing.T) {
	// Девять классов после слияния, дашбордный потолок — пять:
	// остаются пять самых частых меток.
	raw := []repository.ValueCount{
		{Value: "https://www.google.com/search", Count: 90},
		{Value: "https://www.facebook.com/", Count: 80},
		{Value: "https://twitter.com/x", Count: 70},
		{Value: "https://www.linkedin.com/feed", Count: 60},
		{Value: "https://www.instagram.com/p/1", Count: 50},
		{Value: "https://www.youtube.com/watch", Count: 40},
		{Value: "https://www.tiktok.com/@a", Count: 30},
		{Value: "https://www.reddit.com/r/x", Count: 20},
		{Value: "", Count: 10},
	}

	got := MergeRefererCounts(raw, dashboardBreakdownLimit)

	if len(got) != dashboardBreakdownLimit {
		t.Fatalf("got %d rows, want %d", len(got), dashboardBreakdownLimit)
	}
	wantOrder := []string{"Google", "Facebook", "Twitter/X", "LinkedIn", "Instagram"}
	for i, label := range wantOrder {
		if got[i].Referer != label {
			t.Errorf("row %d = %q, want %q", i, got[i].Referer, label)
		}
	}
}
