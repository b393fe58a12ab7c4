package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/userdesk/userdesk-backend/api/responses"
	pkgerrors "github.com/userdesk/userdesk-backend/pkg/errors"
	"github.com/userdesk/userdesk-backend/pkg/logger"
)

// RateLimiterStore is the counter backend for rate limiting, satisfied by the
// redis client.
type RateLimiterStore interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// MutationRateLimitPolicy throttles write traffic per client IP.
type MutationRateLimitPolicy struct {
	window  time.Duration
	ipLimit int
}

func NewMutationRateLimitPolicy(window time.Duration, ipLimit int) MutationRateLimitPolicy {
	return MutationRateLimitPolicy{window: window, ipLimit: ipLimit}
}

func (p MutationRateLimitPolicy) enabled() bool {
	return p.window > 0 && p.ipLimit > 0
}

// MutationRateLimit enforces a fixed-window per-IP counter on write endpoints.
// A nil store or a disabled policy turns the middleware into a passthrough.
func MutationRateLimit(policy MutationRateLimitPolicy, store RateLimiterStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !policy.enabled() || store == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			ip := clientIP(r)
			if ip == "" {
				next.ServeHTTP(w, r)
				return
			}

			allowed, count, err := store.FixedWindowAllow(ctx, "mutations:ip:"+ip, int64(policy.ipLimit), policy.window)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
				return
			}
			if !allowed {
				if logg != nil {
					logCtx := logg.WithFields(ctx, map[string]any{
						"ip":             ip,
						"attempts":       count,
						"limit":          policy.ipLimit,
						"window_seconds": int(policy.window.Seconds()),
					})
					logg.Warn(logCtx, "rate_limit.blocked")
				}
				responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "Too many requests, please try again later"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		for _, part := range strings.Split(header, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
