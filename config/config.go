package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port       string
	Env        string
	DBPath     string
	CORSOrigin string

	// Site lock password. Empty disables the gate entirely.
	SitePassword string

	// Whether title is mandatory when saving an entry.
	EntryTitleRequired bool

	// Google Drive media host
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRefreshToken string
	DriveFolder        string

	// Chat relay
	OpenRouterAPIKey string
	ChatModel        string
	ChatVisionModel  string
}

var AppConfig *Config

func Load() {
	_ = godotenv.Load()

	AppConfig = &Config{
		Port:               GetEnv("PORT", "3000"),
		Env:                GetEnv("ENV", "development"),
		DBPath:             GetEnv("DB_PATH", "./data/day-diary.db"),
		CORSOrigin:         GetEnv("CORS_ORIGINS", "*"),
		SitePassword:       GetEnv("SITE_PASSWORD", ""),
		EntryTitleRequired: GetEnv("ENTRY_TITLE_REQUIRED", "false") == "true",
		GoogleClientID:     GetEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: GetEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRefreshToken: GetEnv("GOOGLE_REFRESH_TOKEN", ""),
		DriveFolder:        GetEnv("DRIVE_FOLDER", "day-diary"),
		OpenRouterAPIKey:   GetEnv("OPENROUTER_API_KEY", ""),
		ChatModel:          GetEnv("CHAT_MODEL", "deepseek/deepseek-chat-v3.1"),
		ChatVisionModel:    GetEnv("CHAT_VISION_MODEL", "qwen/qwen2.5-vl-32b-instruct"),
	}
}

// MediaHostEnabled reports whether Drive credentials are configured.
// Without them uploads are rejected and remote deletes are skipped.
func (c *Config) MediaHostEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != "" && c.GoogleRefreshToken != ""
}

// RequireMediaHost exits when Drive credentials are missing.
func (c *Config) RequireMediaHost() {
	if !c.MediaHostEnabled() {
		log.Fatal("GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET and GOOGLE_REFRESH_TOKEN are required")
	}
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
