package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"linkpulse/internal/models"
	"linkpulse/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type stubLinkResolver struct {
	link *models.Link
	err  error
}

func (s *stubLinkResolver) GetByShortCode(code string) (*models.Link, error) {
	return s.link, s.err
}

type stubClickRecorder struct {
	mu    sync.Mutex
	calls int
}

func (s *stubClickRecorder) Record(link *models.Link, info service.ClientInfo) error {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return nil
}

func (s *stubClickRecorder) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestRedirect(t *testing.T) {
	gin.SetMode(gin.TestMode)

	source := "newsletter"

	tests := []struct {
		name         string
		resolver     *stubLinkResolver
		wantLocation string
		wantRecorded int
	}{
		{
			name:         "unknown code falls back to root",
			resolver:     &stubLinkResolver{err: service.ErrLinkNotFound},
			wantLocation: "/",
			wantRecorded: 0,
		},
		{
			name:         "lookup failure falls back to root",
			resolver:     &stubLinkResolver{err: errors.New("connection refused")},
			wantLocation: "/",
			wantRecorded: 0,
		},
		{
			name: "malformed destination falls back to root",
			resolver: &stubLinkResolver{link: &models.Link{
				DestinationURL: "not-a-url",
			}},
			wantLocation: "/",
			wantRecorded: 0,
		},
		{
			name: "known code redirects to tagged url and records the click",
			resolver: &stubLinkResolver{link: &models.Link{
				DestinationURL: "https://example.org/page",
				UTMSource:      &source,
			}},
			wantLocation: "https://example.org/page?utm_source=newsletter",
			wantRecorded: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := &stubClickRecorder{}
			var wg sync.WaitGroup
			h := NewRedirectHandler(tt.resolver, recorder, zap.NewNop(), &wg)

			r := gin.New()
			r.GET("/r/:code", h.Redirect)

			req := httptest.NewRequest("GET", "/r/abc123xyz", nil)
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)
			wg.Wait()

			if rr.Code != http.StatusFound {
				t.Errorf("status = %d, want %d", rr.Code, http.StatusFound)
			}
			if loc := rr.Header().Get("Location"); loc != tt.wantLocation {
				t.Errorf("Location = %q, want %q", loc, tt.wantLocation)
			}
			if got := recorder.callCount(); got != tt.wantRecorded {
				t.Errorf("recorded clicks = %d, want %d", got, tt.wantRecorded)
			}
		})
	}
}
