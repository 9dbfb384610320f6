// Package config provides configuration loaded from environment variables,
// shared by every retbetd subcommand.
package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	// Path to the SQLite database file.
	DBPath string

	// Directory holding golang-migrate SQL files.
	MigrationsDir string

	// Listen address for the HTTP API.
	Addr string

	CORSAllowOrigins []string
	Debug            bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		DBPath:        envOr("RETBET_DB_PATH", "retbet.db"),
		MigrationsDir: envOr("RETBET_MIGRATIONS", "migrations"),
		Addr:          envOr("RETBET_ADDR", ":8080"),
		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),
		Debug: envBool("DEBUG", false),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
