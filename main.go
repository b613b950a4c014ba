package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	"go.uber.org/zap"

	"github.com/snowskye/clinic-backend/internal/config"
	"github.com/snowskye/clinic-backend/internal/handlers"
	"github.com/snowskye/clinic-backend/internal/routes"
	"github.com/snowskye/clinic-backend/internal/services"
	"github.com/snowskye/clinic-backend/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := newLogger(cfg.Server)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	store, err := newStore(cfg.Storage, log)
	if err != nil {
		log.Fatal("failed to initialize storage", zap.Error(err))
	}
	defer func() { _ = store.Close() }()

	mailer, err := services.NewSMTPMailer(cfg.SMTP, cfg.Server.BaseURL, cfg.Server.ClinicName, log)
	if err != nil {
		log.Fatal("failed to initialize mailer", zap.Error(err))
	}

	alerter := services.NewStaffAlerter(cfg.Twilio, log)
	assistant := services.NewAssistant(cfg.OpenAI, cfg.Server.ClinicName, log)
	leadService := services.NewLeadService(store)
	apptService := services.NewAppointmentService(store, mailer, alerter, log)

	sessions := session.New(session.Config{
		Expiration:     24 * time.Hour,
		KeyLookup:      "cookie:clinic.sid",
		CookieHTTPOnly: true,
		CookieSecure:   cfg.Server.IsProduction(),
		CookieSameSite: cookieSameSite(cfg.Server),
	})

	app := fiber.New(fiber.Config{
		AppName:   cfg.Server.ClinicName,
		BodyLimit: 1 * 1024 * 1024,
	})

	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
		ContentSecurityPolicy:     "",
	}))
	app.Use(compress.New())
	app.Use(newCORS(cfg.Server))
	app.Use(limiter.New(limiter.Config{
		Max:        300,
		Expiration: 15 * time.Minute,
	}))

	routes.SetupRoutes(app, routes.Handlers{
		Auth:         handlers.NewAuthHandler(store, sessions, log),
		Chat:         handlers.NewChatHandler(leadService, apptService, assistant, services.NewKeywordDetector(), log),
		Appointments: handlers.NewAppointmentHandler(store, apptService, log),
		Leads:        handlers.NewLeadHandler(store, log),
		Health:       handlers.NewHealthHandler(cfg.Server.ClinicName),
	}, sessions)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		log.Info("shutting down")
		_ = app.Shutdown()
	}()

	log.Info("clinic assistant starting",
		zap.String("port", cfg.Server.Port),
		zap.String("base_url", cfg.Server.BaseURL),
		zap.String("storage", cfg.Storage.Driver),
		zap.Bool("ai_configured", cfg.OpenAI.APIKey != ""),
		zap.Bool("email_configured", mailer.Enabled()),
		zap.Bool("staff_alerts_configured", alerter.Enabled()),
	)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(cfg config.ServerConfig) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func newStore(cfg config.StorageConfig, log *zap.Logger) (storage.Store, error) {
	switch cfg.Driver {
	case "memory":
		log.Warn("using in-memory storage, data is lost on restart")
		return storage.NewMemoryStore(), nil
	case "sqlite":
		log.Info("using sqlite storage", zap.String("path", cfg.SQLitePath))
		return storage.NewGormStore(cfg.SQLitePath)
	default:
		log.Info("using flat-file storage", zap.String("dir", cfg.DataDir))
		return storage.NewFileStore(cfg.DataDir, log)
	}
}

func newCORS(cfg config.ServerConfig) fiber.Handler {
	if cfg.FrontendOrigin != "" {
		return cors.New(cors.Config{
			AllowOrigins:     cfg.FrontendOrigin,
			AllowCredentials: true,
			AllowMethods:     "GET, POST",
		})
	}
	// No origin pinned: allow any, without credentials (the widget embeds
	// on arbitrary customer sites).
	return cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET, POST",
	})
}

func cookieSameSite(cfg config.ServerConfig) string {
	if cfg.IsProduction() {
		return "None"
	}
	return "Lax"
}
