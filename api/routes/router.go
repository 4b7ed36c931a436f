package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/velvetcrumb/velvetcrumb-backend/api/controllers"
	"github.com/velvetcrumb/velvetcrumb-backend/api/middleware"
	"github.com/velvetcrumb/velvetcrumb-backend/internal/analytics"
	internalauth "github.com/velvetcrumb/velvetcrumb-backend/internal/auth"
	"github.com/velvetcrumb/velvetcrumb-backend/internal/catalog"
	"github.com/velvetcrumb/velvetcrumb-backend/internal/enquiries"
	"github.com/velvetcrumb/velvetcrumb-backend/internal/export"
	"github.com/velvetcrumb/velvetcrumb-backend/internal/mockup"
	"github.com/velvetcrumb/velvetcrumb-backend/internal/orders"
	"github.com/velvetcrumb/velvetcrumb-backend/internal/wizard"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/auth/session"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/config"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/db"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/logger"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/metrics"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/redis"
)

// Services bundles everything the router wires into handlers.
type Services struct {
	Catalog   catalog.Service
	Wizard    wizard.Service
	Orders    orders.Service
	Mockups   mockup.Service
	Enquiries enquiries.Service
	Analytics analytics.Service
	Export    export.Service
	Auth      internalauth.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessions session.AccessSessionChecker,
	promRegistry *prometheus.Registry,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()

	var httpMetrics *metrics.HTTPMetrics
	if promRegistry != nil {
		httpMetrics = metrics.NewHTTPMetrics(promRegistry)
	}

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
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
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if promRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).Post("/register", controllers.AuthRegister(svcs.Auth, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(svcs.Auth, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, sessions, logg))
			r.Post("/logout", controllers.AuthLogout(svcs.Auth, logg))
			r.Get("/session", controllers.AuthSession(svcs.Auth, logg))
		})
	})

	// storefront surface, no authentication required
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/site-config", controllers.SiteConfigFetch(svcs.Catalog, logg))

		r.Route("/orders/drafts", func(r chi.Router) {
			r.Post("/", controllers.DraftCreate(svcs.Wizard, logg))
			r.Route("/{draftId}", func(r chi.Router) {
				r.Get("/", controllers.DraftFetch(svcs.Wizard, logg))
				r.Patch("/", controllers.DraftUpdate(svcs.Wizard, logg))
				r.Delete("/", controllers.DraftDiscard(svcs.Wizard, logg))
				r.Post("/advance", controllers.DraftAdvance(svcs.Wizard, logg))
				r.Post("/back", controllers.DraftBack(svcs.Wizard, logg))
				r.Post("/submit", controllers.DraftSubmit(svcs.Orders, logg))
			})
		})

		r.Post("/mockups", controllers.MockupGenerate(svcs.Mockups, logg))
		r.Post("/enquiries", controllers.EnquirySubmit(svcs.Enquiries, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))
		r.Use(middleware.RequireRole("admin", logg))

		r.Put("/site-config", controllers.SiteConfigReplace(svcs.Catalog, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminOrderList(svcs.Orders, logg))
			r.Get("/export", controllers.AdminOrdersExport(svcs.Export, logg))
			r.Route("/{orderId}", func(r chi.Router) {
				r.Get("/", controllers.AdminOrderDetail(svcs.Orders, logg))
				r.Patch("/status", controllers.AdminOrderUpdateStatus(svcs.Orders, logg))
				r.Delete("/", controllers.AdminOrderDelete(svcs.Orders, logg))
			})
		})

		r.Get("/analytics", controllers.AdminAnalytics(svcs.Analytics, logg))

		r.Route("/enquiries", func(r chi.Router) {
			r.Get("/", controllers.AdminEnquiryList(svcs.Enquiries, logg))
			r.Route("/{enquiryId}", func(r chi.Router) {
				r.Patch("/status", controllers.AdminEnquiryUpdateStatus(svcs.Enquiries, logg))
				r.Delete("/", controllers.AdminEnquiryDelete(svcs.Enquiries, logg))
			})
		})
	})

	return r
}
