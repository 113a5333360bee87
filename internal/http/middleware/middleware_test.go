// README: Tests for recovery, logging, CORS and rate limiting middleware.
package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"chichat/internal/http/middleware"
	"chichat/internal/modules/ratelimit"
)

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/ok", func(c *gin.Context) {
		c.String(http.StatusOK, middleware.RequestID(c))
	})
	r.GET("/panic", func(c *gin.Context) {
		panic("secret payload text")
	})
	return r
}

func serve(r *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRecovery_GenericError(t *testing.T) {
	r := newEngine(middleware.Recovery())

	w := serve(r, http.MethodGet, "/panic", nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != middleware.PanicMessage {
		t.Errorf("error = %q", body["error"])
	}
	if strings.Contains(w.Body.String(), "secret") {
		t.Error("panic value leaked to the client")
	}
}

func TestLogging_RequestID(t *testing.T) {
	r := newEngine(middleware.Logging())

	w := serve(r, http.MethodGet, "/ok", nil)
	id := w.Header().Get(middleware.RequestIDHeader)
	if len(id) != 36 {
		t.Fatalf("expected generated uuid, got %q", id)
	}
	if w.Body.String() != id {
		t.Errorf("handler saw request id %q, header %q", w.Body.String(), id)
	}

	w = serve(r, http.MethodGet, "/ok", map[string]string{middleware.RequestIDHeader: "abc-123"})
	if got := w.Header().Get(middleware.RequestIDHeader); got != "abc-123" {
		t.Errorf("incoming id not reused, got %q", got)
	}
}

func TestCORS(t *testing.T) {
	r := newEngine(middleware.CORS([]string{"https://swvachihuahua.com", "*.netlify.app"}))

	tests := []struct {
		name       string
		method     string
		origin     string
		wantOrigin string
		wantCode   int
	}{
		{"exact origin", http.MethodGet, "https://swvachihuahua.com", "https://swvachihuahua.com", http.StatusOK},
		{"suffix wildcard", http.MethodGet, "https://preview.netlify.app", "https://preview.netlify.app", http.StatusOK},
		{"unknown origin", http.MethodGet, "https://evil.example", "", http.StatusOK},
		{"preflight", http.MethodOptions, "https://swvachihuahua.com", "https://swvachihuahua.com", http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(r, tt.method, "/ok", map[string]string{"Origin": tt.origin})
			if w.Code != tt.wantCode {
				t.Errorf("code = %d, want %d", w.Code, tt.wantCode)
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
		})
	}
}

type stubLimiter struct {
	decision ratelimit.Decision
	err      error
	keys     []string
}

func (s *stubLimiter) Allow(_ context.Context, key string) (ratelimit.Decision, error) {
	s.keys = append(s.keys, key)
	return s.decision, s.err
}

func TestRateLimit_Allowed(t *testing.T) {
	lim := &stubLimiter{decision: ratelimit.Decision{Allowed: true, Limit: 30, Remaining: 29, ResetAt: time.Now().Add(time.Minute)}}
	r := newEngine(middleware.RateLimit(lim))

	w := serve(r, http.MethodGet, "/ok", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Header().Get("X-RateLimit-Remaining") != "29" {
		t.Errorf("Remaining header = %q", w.Header().Get("X-RateLimit-Remaining"))
	}
	if len(lim.keys) != 1 || !strings.HasPrefix(lim.keys[0], "ip:") {
		t.Errorf("limiter keys = %v", lim.keys)
	}
}

func TestRateLimit_Blocked(t *testing.T) {
	lim := &stubLimiter{decision: ratelimit.Decision{Allowed: false, Limit: 30, ResetAt: time.Now().Add(20 * time.Second)}}
	r := newEngine(middleware.RateLimit(lim))

	w := serve(r, http.MethodGet, "/ok", nil)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "too many requests") {
		t.Errorf("body = %s", w.Body.String())
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("Retry-After header missing")
	}
}

func TestRateLimit_FailsOpen(t *testing.T) {
	lim := &stubLimiter{err: errors.New("redis: connection refused")}
	r := newEngine(middleware.RateLimit(lim))

	w := serve(r, http.MethodGet, "/ok", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("limiter errors must not block requests, got %d", w.Code)
	}
}
