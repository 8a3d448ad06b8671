package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full server configuration, resolved once at startup and
// passed down explicitly. Nothing else reads the environment.
type Config struct {
	ServerPort string

	DatabaseDriver string
	DatabaseDSN    string

	JWTSecret string
	TokenTTL  time.Duration

	AuthRateLimit  int
	AuthRateWindow time.Duration

	ShutdownTimeout time.Duration
}

// Load reads configuration from the environment, loading .env first when one
// is present.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	ttlMinutes, err := getenvInt("TOKEN_TTL_MINUTES", 30)
	if err != nil {
		return nil, err
	}
	rateLimit, err := getenvInt("AUTH_RATE_LIMIT", 5)
	if err != nil {
		return nil, err
	}
	windowSeconds, err := getenvInt("AUTH_RATE_WINDOW_SECONDS", 60)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ServerPort:      getenv("SERVER_PORT", "8080"),
		DatabaseDriver:  getenv("DATABASE_DRIVER", "sqlite3"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		TokenTTL:        time.Duration(ttlMinutes) * time.Minute,
		AuthRateLimit:   rateLimit,
		AuthRateWindow:  time.Duration(windowSeconds) * time.Second,
		ShutdownTimeout: 5 * time.Second,
	}

	switch cfg.DatabaseDriver {
	case "postgres":
		required := []string{"POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB", "POSTGRES_HOST", "POSTGRES_PORT"}
		for _, env := range required {
			if os.Getenv(env) == "" {
				return nil, fmt.Errorf("environment variable %s must be set", env)
			}
		}
		cfg.DatabaseDSN = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			os.Getenv("POSTGRES_HOST"), os.Getenv("POSTGRES_USER"),
			os.Getenv("POSTGRES_PASSWORD"), os.Getenv("POSTGRES_DB"),
			os.Getenv("POSTGRES_PORT"))
	case "sqlite3":
		cfg.DatabaseDSN = getenv("SQLITE_PATH", "todo.db")
	default:
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q", cfg.DatabaseDriver)
	}

	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}
	if cfg.AuthRateLimit < 1 {
		return nil, fmt.Errorf("AUTH_RATE_LIMIT must be positive")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s must be an integer, got %q", key, v)
	}
	return n, nil
}
