package service

import "testing"

func TestClassifyReferer(t *testing.T) {
	tests := []struct {
		name    string
		referer string
		want    string
	}{
		{"empty is direct", "", "Direct"},
		{"google search", "https://www.google.com/search?q=x", "Google"},
		{"facebook", "https://www.facebook.com/groups/1", "Facebook"},
		{"fb short domain", "https://fb.me/abc", "Facebook"},
		{"twitter", "https://twitter.com/user/status/1", "Twitter/X"},
		{"tco shortener", "https://t.co/xyz", "Twitter/X"},
		{"linkedin", "https://www.linkedin.com/feed/", "LinkedIn"},
		{"instagram", "https://www.instagram.com/p/1/", "Instagram"},
		{"youtube", "https://www.youtube.com/watch?v=1", "YouTube"},
		{"tiktok", "https://www.tiktok.com/@user", "TikTok"},
		{"reddit subdomain", "https://old.reddit.com/r/x", "Reddit"},
		{"unknown host", "https://example.org", "Other"},
		{"case sensitive match", "https://GOOGLE.com", "Other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyReferer(tt.referer); got != tt.want {
				t.Errorf("ClassifyReferer(%q) = %q, want %q", tt.referer, got, tt.want)
			}
		})
	}
}

func TestClassifyRefererFirstRuleWins(t *testing.T) {
	// google упоминается раньше youtube в таблице правил
	if got := ClassifyReferer("https://www.google.com/url?to=youtube.com"); got != "Google" {
		t.Errorf("expected first matching rule to win, got %q", got)
	}
}
