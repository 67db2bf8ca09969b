package app

import (
	"log/slog"

	"day-diary/chat"
	"day-diary/cleanup"
	"day-diary/config"
	"day-diary/database"
	"day-diary/mediahost"
	"day-diary/services"
	"day-diary/session"
	"day-diary/validator"
)

// App holds all application dependencies
// This struct is the central point for dependency injection
type App struct {
	Config    *config.Config
	Repo      *database.Repository
	Entries   *services.EntryService
	Media     *services.MediaService
	Cleanup   *cleanup.Worker
	Host      mediahost.Host
	Chat      *chat.Client
	Sessions  *session.Store
	Validator *validator.Validator
	Logger    *slog.Logger
}

// New creates a new App instance with all dependencies
func New(cfg *config.Config, repo *database.Repository, host mediahost.Host, worker *cleanup.Worker, chatClient *chat.Client, sessions *session.Store, logger *slog.Logger) *App {
	return &App{
		Config:    cfg,
		Repo:      repo,
		Entries:   services.NewEntryService(repo, cfg.EntryTitleRequired),
		Media:     services.NewMediaService(repo, worker, logger),
		Cleanup:   worker,
		Host:      host,
		Chat:      chatClient,
		Sessions:  sessions,
		Validator: validator.New(),
		Logger:    logger,
	}
}
