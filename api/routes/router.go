package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gatherly/gatherly-backend/api/controllers"
	"github.com/gatherly/gatherly-backend/api/middleware"
	"github.com/gatherly/gatherly-backend/internal/accounts"
	"github.com/gatherly/gatherly-backend/internal/roster"
	"github.com/gatherly/gatherly-backend/pkg/config"
	"github.com/gatherly/gatherly-backend/pkg/enums"
	"github.com/gatherly/gatherly-backend/pkg/logger"
)

// RateLimiter backs the per-actor throttle on admin account actions.
type RateLimiter interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
	RateLimitKey(scope string) string
}

type rosterService interface {
	List(ctx context.Context, caller string, req roster.Request) (*roster.Result, error)
}

// Deps carries everything the router hands to controllers. DB and Redis are
// optional pingers; a nil RateLimiter disables the action throttle.
type Deps struct {
	DB          controllers.Pinger
	Redis       controllers.Pinger
	RateLimiter RateLimiter
	Roster      rosterService
	Accounts    accounts.Lifecycle
	Gatherer    prometheus.Gatherer
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	ready := map[string]controllers.Pinger{}
	if deps.DB != nil {
		ready["db"] = deps.DB
	}
	if deps.Redis != nil {
		ready["redis"] = deps.Redis
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, ready, logg))
	})

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	actionPolicy := middleware.RateLimitPolicy{
		Name:   "account_action",
		Window: cfg.RateLimit.ActionWindow,
		Limit:  cfg.RateLimit.ActionLimit,
	}
	var limiter middleware.RateLimitStore
	if deps.RateLimiter != nil {
		limiter = deps.RateLimiter
	}

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(
			middleware.Auth(cfg.JWT, logg),
			middleware.RequireRole(enums.UserRoleAdmin, logg),
		)

		r.Get("/users", controllers.AdminListUsers(deps.Roster, logg))
		r.Route("/users/{userId}/actions", func(r chi.Router) {
			r.With(middleware.ActorRateLimit(actionPolicy, limiter, logg)).
				Post("/", controllers.AdminApplyUserAction(deps.Accounts, logg))
			r.Get("/", controllers.AdminUserActionHistory(deps.Accounts, logg))
		})
	})

	return r
}
