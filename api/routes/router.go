package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/userdesk/userdesk-backend/api/controllers"
	"github.com/userdesk/userdesk-backend/api/middleware"
	usersvc "github.com/userdesk/userdesk-backend/internal/users"
	"github.com/userdesk/userdesk-backend/pkg/config"
	"github.com/userdesk/userdesk-backend/pkg/logger"
	"github.com/userdesk/userdesk-backend/pkg/metrics"
	"github.com/userdesk/userdesk-backend/pkg/redis"
)

// Deps carries everything the router wires into handlers. Optional entries
// may be nil; the affected surface degrades instead of failing.
type Deps struct {
	DBPinger    controllers.Pinger
	RedisClient *redis.Client
	Registry    *prometheus.Registry
	UserService usersvc.Service
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Deps) http.Handler {
	r := chi.NewRouter()

	httpMetrics := metrics.NewHTTPMetrics(deps.Registry)

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.App.CORSOrigins...),
	)

	mutationPolicy := middleware.NewMutationRateLimitPolicy(
		cfg.RateLimit.MutationWindow,
		cfg.RateLimit.MutationIPLimit,
	)
	throttled := middleware.MutationRateLimit(mutationPolicy, limiterStore(deps.RedisClient), logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readinessDeps(deps)))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/users", func(r chi.Router) {
		r.Get("/", controllers.ListUsers(deps.UserService, logg))
		r.With(throttled).Post("/", controllers.CreateUser(deps.UserService, logg))
		r.Get("/{id}", controllers.GetUser(deps.UserService, logg))
		r.With(throttled).Put("/{id}", controllers.UpdateUser(deps.UserService, logg))
		r.With(throttled).Delete("/{id}", controllers.SoftDeleteUser(deps.UserService, logg))
		r.With(throttled).Post("/{id}/restore", controllers.RestoreUser(deps.UserService, logg))
	})

	return r
}

// limiterStore avoids handing the middleware a typed nil interface.
func limiterStore(client *redis.Client) middleware.RateLimiterStore {
	if client == nil {
		return nil
	}
	return client
}

func readinessDeps(deps Deps) map[string]controllers.Pinger {
	out := map[string]controllers.Pinger{}
	if deps.DBPinger != nil {
		out["database"] = deps.DBPinger
	}
	if deps.RedisClient != nil {
		out["redis"] = deps.RedisClient
	}
	return out
}
