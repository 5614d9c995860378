// Package config loads the storefront's runtime settings from the
// environment. Every knob has a local-development default except the JWT
// secret, which main() refuses to start without.
package config

import "os"

type Config struct {
	// ListenAddr is the HTTP bind address.
	ListenAddr string

	// DBPath is the SQLite database file holding products, orders and the
	// order event log.
	DBPath string

	// RedisAddr is the session cart store. Empty switches the cart to the
	// in-memory store (single-process deployments and local dev).
	RedisAddr string

	// JWTSecret is the HS256 secret shared with the identity provider.
	JWTSecret []byte

	// Telegram notifier; both empty disables it.
	TelegramBotToken string
	TelegramChatID   string

	// Order summary generator (OpenAI-compatible endpoint).
	SummaryAPIKey  string
	SummaryBaseURL string
	SummaryModel   string
}

func Load() Config {
	return Config{
		ListenAddr:       getEnv("LISTEN_ADDR", ":8080"),
		DBPath:           getEnv("DB_PATH", "./data/storefront.db"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		JWTSecret:        []byte(os.Getenv("JWT_SECRET")),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:   os.Getenv("TELEGRAM_CHAT_ID"),
		SummaryAPIKey:    os.Getenv("SUMMARY_API_KEY"),
		SummaryBaseURL:   os.Getenv("SUMMARY_BASE_URL"),
		SummaryModel:     os.Getenv("SUMMARY_MODEL"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
