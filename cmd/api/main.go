package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/velvetcrumb/velvetcrumb-backend/api/routes"
	"github.com/velvetcrumb/velvetcrumb-backend/internal/analytics"
	internalauth "github.com/velvetcrumb/velvetcrumb-backend/internal/auth"
	"github.com/velvetcrumb/velvetcrumb-backend/internal/catalog"
	"github.com/velvetcrumb/velvetcrumb-backend/internal/enquiries"
	"github.com/velvetcrumb/velvetcrumb-backend/internal/export"
	"github.com/velvetcrumb/velvetcrumb-backend/internal/mockup"
	"github.com/velvetcrumb/velvetcrumb-backend/internal/orders"
	"github.com/velvetcrumb/velvetcrumb-backend/internal/users"
	"github.com/velvetcrumb/velvetcrumb-backend/internal/wizard"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/auth/session"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/config"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/db"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/gemini"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/logger"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/migrate"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalog.NewRepository(dbClient.DB()), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	draftStore := wizard.NewRedisStore(redisClient, cfg.Wizard.DraftTTL)
	wizardService, err := wizard.NewService(draftStore, catalogService, cfg.Wizard, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create wizard service", err)
		os.Exit(1)
	}

	orderService, err := orders.NewService(orders.NewRepository(dbClient.DB()), draftStore, catalogService, dbClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	enquiryService, err := enquiries.NewService(enquiries.NewRepository(dbClient.DB()), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create enquiry service", err)
		os.Exit(1)
	}

	analyticsService, err := analytics.NewService(orderService, cfg.Analytics, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create analytics service", err)
		os.Exit(1)
	}

	exportService, err := export.NewService(orderService)
	if err != nil {
		logg.Error(context.Background(), "failed to create export service", err)
		os.Exit(1)
	}

	authService, err := internalauth.NewService(
		users.NewRepository(dbClient.DB()),
		sessionManager,
		cfg.JWT,
		cfg.Password,
		cfg.Admin,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	// Mockups degrade to unavailable when no Gemini key is configured.
	var generator mockup.ImageGenerator
	if cfg.Gemini.APIKey != "" {
		client, err := gemini.NewClient(cfg.Gemini.APIKey,
			gemini.WithModel(cfg.Gemini.Model),
			gemini.WithTimeout(cfg.Gemini.Timeout),
		)
		if err != nil {
			logg.Error(context.Background(), "failed to create gemini client", err)
			os.Exit(1)
		}
		generator = client
	} else {
		logg.Warn(context.Background(), "gemini api key not set, mockup generation disabled")
	}

	mockupService, err := mockup.NewService(generator, catalogService, cfg.Wizard, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create mockup service", err)
		os.Exit(1)
	}

	promRegistry := prometheus.NewRegistry()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, sessionManager, promRegistry, routes.Services{
			Catalog:   catalogService,
			Wizard:    wizardService,
			Orders:    orderService,
			Mockups:   mockupService,
			Enquiries: enquiryService,
			Analytics: analyticsService,
			Export:    exportService,
			Auth:      authService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
