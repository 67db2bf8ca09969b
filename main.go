package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"day-diary/app"
	"day-diary/chat"
	"day-diary/cleanup"
	"day-diary/config"
	"day-diary/database"
	"day-diary/handlers"
	"day-diary/mediahost"
	"day-diary/middleware"
	"day-diary/session"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	config.Load()
	cfg := config.AppConfig

	logger := setupLogger(cfg)
	slog.SetDefault(logger)

	db, err := database.New(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	logger.Info("database initialized", "path", cfg.DBPath)

	repo := database.NewRepository(db)

	// Media host is optional: without Drive credentials uploads are rejected
	// and deletes only remove local rows.
	var host mediahost.Host
	if cfg.MediaHostEnabled() {
		driveHost, err := mediahost.NewDriveHost(context.Background(), cfg)
		if err != nil {
			logger.Error("failed to initialize media host", "error", err)
			os.Exit(1)
		}
		host = driveHost
		logger.Info("media host initialized", "folder", cfg.DriveFolder)
	} else {
		logger.Warn("media host disabled: Drive credentials not configured")
	}

	worker := cleanup.NewWorker(repo, host, logger)
	worker.Start()

	var chatClient *chat.Client
	if cfg.OpenRouterAPIKey != "" {
		chatClient = chat.NewClient(cfg.OpenRouterAPIKey, cfg.ChatModel, cfg.ChatVisionModel)
	} else {
		logger.Warn("chat relay disabled: OPENROUTER_API_KEY not configured")
	}

	sessions := session.NewStore()
	sessions.StartCleanup()

	application := app.New(cfg, repo, host, worker, chatClient, sessions, logger)

	fiberApp := fiber.New(fiber.Config{
		ReadTimeout:           time.Second * 10,
		WriteTimeout:          time.Second * 10,
		IdleTimeout:           time.Second * 30,
		BodyLimit:             64 * 1024 * 1024,
		DisableStartupMessage: cfg.Env == "production",
		ErrorHandler:          customErrorHandler(logger),
	})

	fiberApp.Use(
		recover.New(),
		middleware.StructuredLogger(logger),
		middleware.Security(),
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigin,
			AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
			AllowHeaders:     "Origin,Content-Type,Accept",
			AllowCredentials: false,
			MaxAge:           86400,
		}),
		limiter.New(limiter.Config{
			Max:        200,
			Expiration: time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error": "Rate limit exceeded",
				})
			},
		}),
	)

	fiberApp.Get("/health", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"status": "ok"}) })

	fiberApp.Post("/auth/unlock", handlers.Unlock(application))
	fiberApp.Post("/auth/lock", handlers.Lock(application))
	fiberApp.Get("/auth/me", handlers.Status(application))

	gate := middleware.SiteLock(sessions, cfg.SitePassword)

	fiberApp.Get("/entries", gate, handlers.GetEntries(application))
	fiberApp.Post("/entries", gate, handlers.UpsertEntry(application))

	fiberApp.Get("/gallery", gate, handlers.GetGallery(application))
	fiberApp.Post("/gallery", gate, handlers.CreateMedia(application))
	fiberApp.Post("/gallery/upload", gate, handlers.UploadMedia(application))
	fiberApp.Delete("/gallery/:id", gate, handlers.DeleteMedia(application))
	fiberApp.Put("/gallery/:id", gate, handlers.UpdateFavorite(application))

	fiberApp.Post("/uploads", gate, handlers.UploadFile(application))

	fiberApp.Get("/calendar/:year/:month", gate, handlers.GetMonth(application))
	fiberApp.Get("/moods", handlers.GetMoods(application))

	if chatClient != nil {
		fiberApp.Post("/chat", gate, handlers.Chat(application))
	}
	fiberApp.Get("/quote", handlers.Quote(application))

	logger.Info("starting server", "port", cfg.Port, "env", cfg.Env)

	go func() {
		if err := fiberApp.Listen(":" + cfg.Port); err != nil {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server gracefully")

	sessions.Stop()
	worker.Stop()
	logger.Info("cleanup worker stopped")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := fiberApp.ShutdownWithContext(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server stopped")
}

func setupLogger(cfg *config.Config) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level:     getLogLevel(),
		AddSource: cfg.Env == "development",
	}

	if cfg.Env == "production" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

func getLogLevel() slog.Level {
	switch config.GetEnv("LOG_LEVEL", "info") {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func customErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
		}

		requestID := ""
		if id, ok := c.Locals("requestID").(string); ok {
			requestID = id
		}

		logger.Error("request failed",
			"request_id", requestID,
			"method", c.Method(),
			"path", c.Path(),
			"status", code,
			"error", err,
		)

		return c.Status(code).JSON(fiber.Map{
			"error":      message,
			"request_id": requestID,
		})
	}
}
