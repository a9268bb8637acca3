package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultPort       = "4000"
	DefaultSessionTTL = 30 * 24 * time.Hour
)

type Config struct {
	Port        string
	DatabaseURL string
	AdminToken  string
	SessionTTL  time.Duration
	CORSOrigin  string
}

// Load reads .env (if present) and the environment into a Config.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, reading environment variables")
	}

	cfg := &Config{
		Port:        os.Getenv("PORT"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		AdminToken:  os.Getenv("ADMIN_TOKEN"),
		SessionTTL:  DefaultSessionTTL,
		CORSOrigin:  os.Getenv("CORS_ORIGIN"),
	}

	if cfg.Port == "" {
		cfg.Port = DefaultPort
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("[FATAL] DATABASE_URL is required in .env or environment")
	}
	if cfg.AdminToken == "" {
		log.Fatal("[FATAL] ADMIN_TOKEN is required in .env or environment")
	}
	if cfg.CORSOrigin == "" {
		cfg.CORSOrigin = "http://localhost:3000"
	}

	if raw := os.Getenv("ADMIN_SESSION_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil || ttl <= 0 {
			log.Fatalf("[FATAL] Invalid ADMIN_SESSION_TTL %q", raw)
		}
		cfg.SessionTTL = ttl
	}

	return cfg
}
