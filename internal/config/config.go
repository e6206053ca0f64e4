package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const defaultDSN = "host=localhost user=postgres password=postgres dbname=restaurant_panel port=5432 sslmode=disable"

type Config struct {
	HTTPPort      string
	DatabaseDSN   string
	JWTSecret     string
	CORSOrigins   string
	BlobPath      string // uploaded product images are written here
	PublicBaseURL string // prefix of the URLs handed out for blobs and QR codes
	Timezone      string

	RedisAddr     string
	RedisPassword string

	KafkaBroker      string // empty disables ingestion and status events
	KafkaOrdersTopic string
	KafkaStatusTopic string
	KafkaGroupID     string

	TelegramToken string // empty disables new-order alerts
}

func Load() *Config {
	// .env is optional, real environment variables win
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:      getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:   getEnv("DATABASE_DSN", defaultDSN),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		CORSOrigins:   getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		BlobPath:      getEnv("BLOB_PATH", "./blobs"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
		Timezone:      getEnv("PANEL_TIMEZONE", "Europe/Istanbul"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		KafkaBroker:      getEnv("KAFKA_BROKER", ""),
		KafkaOrdersTopic: getEnv("KAFKA_ORDERS_TOPIC", "orders.placed"),
		KafkaStatusTopic: getEnv("KAFKA_STATUS_TOPIC", "orders.status"),
		KafkaGroupID:     getEnv("KAFKA_GROUP_ID", "restaurant-panel"),

		TelegramToken: getEnv("TELEGRAM_TOKEN", ""),
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
	if cfg.DatabaseDSN == defaultDSN {
		log.Println("[WARN] DATABASE_DSN is using the default value, set your own Postgres connection for production.")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS is using the default value, set your panel domain for production.")
	}
	if cfg.KafkaBroker == "" {
		log.Println("[WARN] KAFKA_BROKER is empty, order ingestion and status events are disabled.")
	}

	return cfg
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errMissingSecret
	}
	if len(c.JWTSecret) < 32 {
		return errShortSecret
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return err
	}
	return nil
}

// Location is the time zone that "today" and "this week" are computed in.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
