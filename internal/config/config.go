// README: Config loader with env defaults for HTTP, DB, Redis, AI, and Maps settings.
package config

import (
	"os"
)

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		// DSN empty disables the token-usage ledger.
		DSN string
	}
	Redis struct {
		// Addr empty disables the geo lookup cache.
		Addr string
	}
	AI struct {
		// Provider is "openai" or "gemini".
		Provider  string
		Model     string
		OpenAIKey string
		GeminiKey string
	}
	Maps struct {
		// APIKey empty disables server-side geo enrichment.
		APIKey string
	}
}

func Load() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("WAYFARER_HTTP_ADDR", ":8080")
	cfg.DB.DSN = os.Getenv("WAYFARER_DB_DSN")
	cfg.Redis.Addr = os.Getenv("WAYFARER_REDIS_ADDR")
	cfg.AI.Provider = envOrDefault("WAYFARER_AI_PROVIDER", "openai")
	cfg.Maps.APIKey = os.Getenv("MAPS_API_KEY")

	switch cfg.AI.Provider {
	case "gemini":
		cfg.AI.Model = envOrDefault("WAYFARER_AI_MODEL", "gemini-2.0-flash")
		cfg.AI.GeminiKey = envOrError("GEMINI_API_KEY")
	default:
		cfg.AI.Model = envOrDefault("WAYFARER_AI_MODEL", "gpt-4o-mini")
		cfg.AI.OpenAIKey = envOrError("OPENAI_API_KEY")
	}
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrError(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	panic("environment variable " + key + " is required")
}
