package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/mitoneko/neko-todo/models"
)

// Environment keys. The NEKO_DB_ prefix is shared with the desktop client
// configuration so one .env serves both.
const (
	envDBHost     = "NEKO_DB_DB_HOST"
	envDBUser     = "NEKO_DB_DB_USER"
	envDBPass     = "NEKO_DB_DB_PASS"
	envSessionTTL = "NEKO_DB_SESSION_TTL"
	envSortOrder  = "NEKO_TODO_SORT_ORDER"
	envIncomplete = "NEKO_TODO_INCOMPLETE"
	envPort       = "PORT"
)

// Config carries everything the server needs at startup.
type Config struct {
	DBHost string
	DBUser string
	DBPass string

	// SessionTTL is the lifetime stamped onto every newly issued or
	// rotated session row.
	SessionTTL time.Duration

	// DefaultSortOrder applies when a listing request names no order.
	DefaultSortOrder models.SortOrder

	// DefaultOnlyIncomplete applies when a listing request does not say
	// whether completed items should show. Defaults to true: a fresh
	// client sees open work first.
	DefaultOnlyIncomplete bool

	Port string
}

// Load reads the configuration from the environment, loading a .env file
// first if one is present (ok if missing in prod).
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		DBHost:                os.Getenv(envDBHost),
		DBUser:                os.Getenv(envDBUser),
		DBPass:                os.Getenv(envDBPass),
		SessionTTL:            24 * time.Hour,
		DefaultSortOrder:      models.EndAsc,
		DefaultOnlyIncomplete: true,
		Port:                  getenv(envPort, "8080"),
	}

	for key, val := range map[string]string{
		envDBHost: cfg.DBHost,
		envDBUser: cfg.DBUser,
		envDBPass: cfg.DBPass,
	} {
		if val == "" {
			return Config{}, fmt.Errorf("missing required env %s", key)
		}
	}

	if v := os.Getenv(envSessionTTL); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", envSessionTTL, err)
		}
		cfg.SessionTTL = ttl
	}

	if v := os.Getenv(envSortOrder); v != "" {
		order, err := models.ParseSortOrder(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", envSortOrder, err)
		}
		cfg.DefaultSortOrder = order
	}

	if v := os.Getenv(envIncomplete); v != "" {
		incomplete, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", envIncomplete, err)
		}
		cfg.DefaultOnlyIncomplete = incomplete
	}

	return cfg, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
