package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Mansi-10-4/nova/api/controllers"
	"github.com/Mansi-10-4/nova/api/middleware"
	"github.com/Mansi-10-4/nova/internal/storefront"
	"github.com/Mansi-10-4/nova/pkg/config"
	"github.com/Mansi-10-4/nova/pkg/logger"
)

type sessionManager interface {
	Session(ctx context.Context, id string) (*storefront.Session, error)
	Ping(ctx context.Context) error
}

// redisStore is the subset of pkg/redis.Client used for rate limiting and
// idempotent replays.
type redisStore interface {
	middleware.IdempotencyStore
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
	Ping(ctx context.Context) error
}

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	Sessions sessionManager
	// Redis is optional; without it generation is not rate limited and
	// Idempotency-Key headers are ignored.
	Redis    redisStore
	Gatherer prometheus.Gatherer
}

func NewRouter(deps Deps) http.Handler {
	cfg, logg := deps.Config, deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSAllowedOrigins),
	)

	var limiter interface {
		FixedWindowAllow(context.Context, string, int64, time.Duration) (bool, int64, error)
	}
	var idempotency middleware.IdempotencyStore
	readiness := map[string]controllers.Pinger{"storage": deps.Sessions}
	if deps.Redis != nil {
		limiter = deps.Redis
		idempotency = deps.Redis
		readiness["redis"] = deps.Redis
	}
	studioPolicy := middleware.NewRateLimitPolicy("studio", cfg.Studio.RateLimitWindow, cfg.Studio.RateLimitCount)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness))
	})

	if deps.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(cfg.Session, deps.Sessions, logg))
		r.Use(middleware.Idempotency(idempotency, logg))

		r.Get("/catalog", controllers.CatalogBrowse(logg))

		r.Route("/products/{productId}", func(r chi.Router) {
			r.Get("/", controllers.ProductDetail(logg))
			r.Get("/insight", controllers.ProductInsight(logg))
			r.Get("/recommendations", controllers.ProductRecommendations(logg))
			r.With(middleware.RateLimit(studioPolicy, limiter, logg)).Post("/visualize", controllers.ProductVisualize(logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(logg))
			r.Post("/items", controllers.CartAddItem(logg))
			r.Patch("/items/{productId}", controllers.CartUpdateItem(logg))
			r.Delete("/items/{productId}", controllers.CartRemoveItem(logg))
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", controllers.WishlistFetch(logg))
			r.Post("/{productId}/toggle", controllers.WishlistToggle(logg))
		})

		r.Get("/checkout", controllers.CheckoutStatus(logg))
		r.Post("/checkout", controllers.CheckoutSubmit(logg))

		r.Get("/orders", controllers.OrdersList(logg))
		r.Get("/orders/last", controllers.OrdersLast(logg))

		r.Get("/view", controllers.ViewFetch(logg))
		r.Put("/view", controllers.ViewNavigate(logg))

		r.Route("/studio", func(r chi.Router) {
			r.Get("/", controllers.StudioFetch(logg))
			r.With(middleware.RateLimit(studioPolicy, limiter, logg)).Post("/generate", controllers.StudioGenerate(logg))
		})
	})

	return r
}
