package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"smartisp.net/console/pkg/logger"
)

// Limiter counts a hit against key; *redis.RedisClient implements it.
type Limiter interface {
	CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, int, error)
}

type RateLimiter struct {
	limiter Limiter
	limit   int
	window  time.Duration
	logger  *logger.Logger
}

// NewRateLimiter returns a per-client limiter. With a nil limiter every
// request passes.
func NewRateLimiter(limiter Limiter, limit int, window time.Duration, log *logger.Logger) *RateLimiter {
	return &RateLimiter{limiter: limiter, limit: limit, window: window, logger: log}
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.limiter == nil || rl.limit <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		key := "ratelimit:" + clientIP(r)

		allowed, retryAfter, err := rl.limiter.CheckRateLimit(r.Context(), key, rl.limit, rl.window)
		if err != nil {
			rl.logger.Warn("Rate limit check failed", "error", err)
			next.ServeHTTP(w, r)
			return
		}

		if !allowed {
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			writeError(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
