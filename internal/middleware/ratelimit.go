package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/XavierBriggs/fortuna/services/football-sim/pkg/models"
	"go.uber.org/zap"
)

// Limiter decides whether one more request may run
type Limiter interface {
	Allow(ctx context.Context) (bool, error)
}

// RateLimit rejects POST requests with 429 once the limiter is exhausted.
// Reads are never limited and a limiter error lets the request through.
func RateLimit(limiter Limiter, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}
			ok, err := limiter.Allow(r.Context())
			if err != nil {
				logger.Warn("rate limiter unavailable", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}
			if !ok {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "60")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(models.ErrorResponse{
					Error:   http.StatusText(http.StatusTooManyRequests),
					Message: "simulation rate limit exceeded",
					Code:    http.StatusTooManyRequests,
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
