package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/XavierBriggs/fortuna/services/football-sim/internal/middleware"
	"github.com/XavierBriggs/fortuna/services/football-sim/pkg/models"
	"go.uber.org/zap"
)

type MockLimiter struct {
	allow bool
	err   error
}

func (m MockLimiter) Allow(ctx context.Context) (bool, error) {
	return m.allow, m.err
}

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		limiter  MockLimiter
		wantCode int
	}{
		{"allowed", "POST", MockLimiter{allow: true}, http.StatusOK},
		{"limited", "POST", MockLimiter{allow: false}, http.StatusTooManyRequests},
		{"reads pass", "GET", MockLimiter{allow: false}, http.StatusOK},
		{"limiter down", "POST", MockLimiter{err: errors.New("redis down")}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := middleware.RateLimit(tt.limiter, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(tt.method, "/api/v1/games", nil))

			if w.Code != tt.wantCode {
				t.Fatalf("expected status %d, got %d", tt.wantCode, w.Code)
			}
			if tt.wantCode == http.StatusTooManyRequests {
				var resp models.ErrorResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatal(err)
				}
				if resp.Code != http.StatusTooManyRequests || w.Header().Get("Retry-After") == "" {
					t.Errorf("unexpected limited response: %+v", resp)
				}
			}
		})
	}
}
