package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/amontes/storefront-backend/api/controllers"
	"github.com/amontes/storefront-backend/api/middleware"
	"github.com/amontes/storefront-backend/internal/auth"
	"github.com/amontes/storefront-backend/internal/cart"
	"github.com/amontes/storefront-backend/internal/catalog"
	checkoutsvc "github.com/amontes/storefront-backend/internal/checkout"
	"github.com/amontes/storefront-backend/internal/orders"
	"github.com/amontes/storefront-backend/pkg/auth/session"
	"github.com/amontes/storefront-backend/pkg/config"
	"github.com/amontes/storefront-backend/pkg/logger"
	"github.com/amontes/storefront-backend/pkg/redis"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// Deps bundles everything the router mounts.
type Deps struct {
	Config          *config.Config
	Logger          *logger.Logger
	DBPinger        pinger
	RedisClient     *redis.Client
	SessionChecker  session.AccessSessionChecker
	AuthService     auth.Service
	RegisterService auth.RegisterService
	CatalogService  catalog.Service
	CartHub         *cart.Hub
	CheckoutService checkoutsvc.Service
	OrderClient     *orders.Client
	Registry        *prometheus.Registry
}

// NewRouter assembles the API surface.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DBPinger, deps.RedisClient, logg))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.RedisClient, logg)).Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, deps.RedisClient, logg)).Post("/register", controllers.AuthRegister(deps.RegisterService, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.AuthService, logg))
	})

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.ProductsList(deps.CatalogService, logg))
		r.Get("/{productID}", controllers.ProductsGet(deps.CatalogService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionChecker, logg))

		r.Get("/ping", controllers.PrivatePing())
		r.Post("/auth/logout", controllers.AuthLogout(deps.AuthService, deps.CartHub, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartGet(deps.CartHub, logg))
			r.Delete("/", controllers.CartClear(deps.CartHub, logg))
			r.Post("/items", controllers.CartAddItem(deps.CartHub, deps.CatalogService, logg))
			r.Put("/items/{productID}", controllers.CartUpdateItem(deps.CartHub, logg))
			r.Delete("/items/{productID}", controllers.CartRemoveItem(deps.CartHub, logg))
		})

		r.Post("/checkout", controllers.Checkout(deps.CartHub, deps.CheckoutService, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/my-orders", controllers.OrdersListMine(deps.OrderClient, logg))
			r.Get("/{orderID}", controllers.OrdersGet(deps.OrderClient, logg))
		})
	})

	return r
}
