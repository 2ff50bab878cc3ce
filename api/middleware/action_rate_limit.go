package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gatherly/gatherly-backend/api/responses"
	pkgerrors "github.com/gatherly/gatherly-backend/pkg/errors"
	"github.com/gatherly/gatherly-backend/pkg/logger"
)

// RateLimitStore counts requests per key within a window.
type RateLimitStore interface {
	IncrWithTTL(context.Context, string, time.Duration) (int64, error)
	RateLimitKey(scope string) string
}

// RateLimitPolicy caps how many requests one actor may make per window.
type RateLimitPolicy struct {
	Name   string
	Window time.Duration
	Limit  int
}

func (p RateLimitPolicy) enabled() bool {
	return p.Window > 0 && p.Limit > 0
}

// ActorRateLimit throttles authenticated callers by user id using fixed-window counters.
// Counter failures let the request through.
func ActorRateLimit(policy RateLimitPolicy, store RateLimitStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !policy.enabled() || store == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			actor := UserIDFromContext(ctx)
			if actor == "" {
				next.ServeHTTP(w, r)
				return
			}

			count, err := store.IncrWithTTL(ctx, store.RateLimitKey(policy.Name+":"+actor), policy.Window)
			if err != nil {
				if logg != nil {
					logg.WarnErr(ctx, "rate_limit.counter_failed", err)
				}
				next.ServeHTTP(w, r)
				return
			}
			if count > int64(policy.Limit) {
				if logg != nil {
					logg.Warn(logg.WithFields(ctx, map[string]any{
						"policy":         policy.Name,
						"attempts":       count,
						"limit":          policy.Limit,
						"window_seconds": int(policy.Window.Seconds()),
					}), "rate_limit.blocked")
				}
				responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "rate limit exceeded"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
