package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"linkpulse/config"
	"linkpulse/internal/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func TestJWTAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := &config.JWTConfig{Access: "testsecret"}
	userID := uuid.NewString()

	token, err := jwt.GenerateAccessToken(userID, cfg.Access, time.Minute)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	expired, err := jwt.GenerateAccessToken(userID, cfg.Access, -time.Minute)
	if err != nil {
		t.Fatalf("failed to generate expired token: %v", err)
	}

	r := gin.New()
	r.GET("/protected", JWTAuth(cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id")})
	})

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-token", http.StatusUnauthorized},
		{"expired token", "Bearer " + expired, http.StatusUnauthorized},
		{"valid token", "Bearer " + token, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.expectedStatus)
			}
		})
	}
}

func TestAdminOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)

	adminID := uuid.NewString()
	otherID := uuid.NewString()

	newRouter := func(userID string) *gin.Engine {
		r := gin.New()
		r.GET("/admin",
			func(c *gin.Context) { c.Set("user_id", userID) },
			AdminOnly([]string{adminID}),
			func(c *gin.Context) { c.Status(http.StatusOK) },
		)
		return r
	}

	tests := []struct {
		name           string
		userID         string
		expectedStatus int
	}{
		{"allow-listed admin", adminID, http.StatusOK},
		{"regular user", otherID, http.StatusForbidden},
		{"empty identity", "", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/admin", nil)
			rr := httptest.NewRecorder()
			newRouter(tt.userID).ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.expectedStatus)
			}
		})
	}
}
