package config

import (
	"time"

	"github.com/joho/godotenv"

	env "github.com/lumenchat/lumen/shared/config"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Chat     ChatConfig
	Gemini   GeminiConfig
	Tracing  TracingConfig
}

type ServerConfig struct {
	Host             string
	Port             int
	AllowedOrigins   []string
	AllowEmptyOrigin bool
	RequireAuth      bool
}

type DatabaseConfig struct {
	URL string
}

// ChatConfig tunes the websocket session layer.
type ChatConfig struct {
	KeepaliveInterval time.Duration
	WriteTimeout      time.Duration
	TicketTTL         time.Duration
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

type TracingConfig struct {
	Enabled     bool
	Environment string
}

func Load() *Config {
	// Optional .env file, for local development.
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:             env.String("0.0.0.0", "LUMEN_SERVER_HOST", "HOST"),
			Port:             env.Int(8080, "LUMEN_SERVER_PORT", "PORT"),
			AllowedOrigins:   env.Slice([]string{"*"}, "LUMEN_ALLOWED_ORIGINS", "ALLOWED_ORIGINS"),
			AllowEmptyOrigin: env.Bool(false, "LUMEN_ALLOW_EMPTY_ORIGIN"),
			RequireAuth:      env.Bool(true, "LUMEN_REQUIRE_AUTH"),
		},
		Database: DatabaseConfig{
			URL: env.String("postgres://localhost:5432/lumen?sslmode=disable", "LUMEN_POSTGRES_URL", "DATABASE_URL"),
		},
		Chat: ChatConfig{
			KeepaliveInterval: env.Duration(30*time.Second, "LUMEN_WS_KEEPALIVE_INTERVAL"),
			WriteTimeout:      env.Duration(10*time.Second, "LUMEN_WS_WRITE_TIMEOUT"),
			TicketTTL:         env.Duration(time.Minute, "LUMEN_WS_TICKET_TTL"),
		},
		Gemini: GeminiConfig{
			APIKey:  env.String("", "LUMEN_GEMINI_API_KEY", "GEMINI_API_KEY"),
			Model:   env.String("gemini-pro", "LUMEN_GEMINI_MODEL", "GEMINI_MODEL"),
			Timeout: env.Duration(time.Minute, "LUMEN_GEMINI_TIMEOUT"),
		},
		Tracing: TracingConfig{
			Enabled:     env.Bool(false, "LUMEN_TRACING_ENABLED"),
			Environment: env.String("development", "LUMEN_ENVIRONMENT", "ENVIRONMENT"),
		},
	}

	// A zero or negative interval would panic the keepalive ticker; treat
	// non-positive durations as unset.
	cfg.Chat.KeepaliveInterval = positive(cfg.Chat.KeepaliveInterval, 30*time.Second)
	cfg.Chat.WriteTimeout = positive(cfg.Chat.WriteTimeout, 10*time.Second)
	cfg.Chat.TicketTTL = positive(cfg.Chat.TicketTTL, time.Minute)

	return cfg
}

func positive(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}

func (c *Config) IsGeminiConfigured() bool {
	return c.Gemini.APIKey != ""
}
