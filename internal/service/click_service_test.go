package service

import (
	"net/http"
	"testing"
)

func TestClientInfoFromHeaders(t *testing.T) {
	tests := []struct {
		name   string
		header http.Header
		want   ClientInfo
	}{
		{
			name:   "no forwarded header",
			header: http.Header{},
			want:   ClientInfo{IP: "unknown"},
		},
		{
			name: "single forwarded entry",
			header: http.Header{
				"X-Forwarded-For": []string{"203.0.113.7"},
				"User-Agent":      []string{"Mozilla/5.0"},
				"Referer":         []string{"https://www.google.com/"},
			},
			want: ClientInfo{IP: "203.0.113.7", UserAgent: "Mozilla/5.0", Referer: "https://www.google.com/"},
		},
		{
			name: "first of chain wins",
			header: http.Header{
				"X-Forwarded-For": []string{"203.0.113.7, 10.0.0.1, 10.0.0.2"},
			},
			want: ClientInfo{IP: "203.0.113.7"},
		},
		{
			name: "whitespace trimmed",
			header: http.Header{
				"X-Forwarded-For": []string{"  203.0.113.7 , 10.0.0.1"},
			},
			want: ClientInfo{IP: "203.0.113.7"},
		},
		{
			name: "blank chain falls back to unknown",
			header: http.Header{
				"X-Forwarded-For": []string{" , 10.0.0.1"},
			},
			want: ClientInfo{IP: "unknown"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClientInfoFromHeaders(tt.header)
			if got != tt.want {
				t.Errorf("ClientInfoFromHeaders() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
