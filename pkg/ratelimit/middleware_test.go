package ratelimit

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestGetRateLimitType(t *testing.T) {
	tests := []struct {
		path string
		want RateLimitType
	}{
		{"/health", RateLimitTypeHealth},
		{"/ping", RateLimitTypeHealth},
		{"/status", RateLimitTypeHealth},
		{"/api/v1/reservations", RateLimitTypeReservation},
		{"/api/v1/reservations/:reservationId", RateLimitTypeReservation},
		{"/api/v1/requesters/:requesterId/reservations", RateLimitTypeReservation},
		{"/api/v1/payments", RateLimitTypePayment},
		{"/api/v1/payments/:reservationId", RateLimitTypePayment},
		{"/api/v1/events", RateLimitTypePublic},
		{"/api/v1/events/:eventId/availability", RateLimitTypePublic},
		{"/api/v1/venues", RateLimitTypePublic},
		{"/api/v1/identity/guest", RateLimitTypeDefault},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := getRateLimitType(tt.path); got != tt.want {
				t.Errorf("getRateLimitType(%q) = %s, want %s", tt.path, got, tt.want)
			}
		})
	}
}

func TestGetClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newContext := func() *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/", nil)
		c.Request.RemoteAddr = "10.0.0.1:54321"
		return c
	}

	t.Run("forwarded for wins", func(t *testing.T) {
		c := newContext()
		c.Request.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.2")
		if got := getClientIP(c); got != "203.0.113.5" {
			t.Errorf("got %s, want 203.0.113.5", got)
		}
	})

	t.Run("invalid forwarded for falls through", func(t *testing.T) {
		c := newContext()
		c.Request.Header.Set("X-Forwarded-For", "garbage")
		c.Request.Header.Set("X-Real-IP", "198.51.100.7")
		if got := getClientIP(c); got != "198.51.100.7" {
			t.Errorf("got %s, want 198.51.100.7", got)
		}
	})

	t.Run("remote addr fallback", func(t *testing.T) {
		c := newContext()
		if got := getClientIP(c); got != "10.0.0.1" {
			t.Errorf("got %s, want 10.0.0.1", got)
		}
	})
}

func TestIsAllowedDisabledAndWhitelist(t *testing.T) {
	cfg := &Config{
		Enabled:         false,
		DefaultRequests: 60,
	}
	limiter := NewRateLimiter(nil, cfg)

	result, err := limiter.IsAllowed(context.Background(), "203.0.113.5", RateLimitTypeDefault)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Allowed || result.Remaining != 60 {
		t.Errorf("disabled limiter must allow with full budget, got %+v", result)
	}

	cfg = &Config{
		Enabled:         true,
		DefaultRequests: 60,
		WhitelistedIPs:  []string{"203.0.113.5"},
	}
	limiter = NewRateLimiter(nil, cfg)

	result, err = limiter.IsAllowed(context.Background(), "203.0.113.5", RateLimitTypeDefault)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Allowed {
		t.Errorf("whitelisted IP must bypass the limiter, got %+v", result)
	}
}
