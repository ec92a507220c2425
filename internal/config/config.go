// Package config provides centralized configuration loaded from environment
// variables, with an optional YAML file for defaults. Shared by both cmd/api
// and cmd/streamfinder.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Stream Finder constants
// --------------------------------------------------------------------------

const (
	// DefaultMLBAPIBaseURL is the public MLB Stats API root.
	DefaultMLBAPIBaseURL = "https://statsapi.mlb.com/api/v1"

	// Key/value slots. The names match the storage keys of the
	// browser extension so exported state stays recognisable.
	PendingContextKey = "baseConfig"
	SavedConfigKey    = "customBaseConfig"
)

// DefaultPagePrefixes are the Ottoneu Six Picks pages a roster can be read from.
var DefaultPagePrefixes = []string{
	"ottoneu.fangraphs.com/sixpicks/view/",
	"ottoneu.fangraphs.com/sixpicks/createEntry",
}

// --------------------------------------------------------------------------
// Config struct, populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Database (optional; empty = in-memory storage)
	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// Rate limiting (inbound API only)
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Identifier lookup
	MLBAPIBaseURL string
	HTTPTimeout   time.Duration

	// Roster scraping
	ScraperUserAgent string
	PagePrefixes     []string

	// Pending context hygiene
	ContextTTL           time.Duration
	ContextSweepInterval time.Duration

	// CLI output directory
	OutputDir string

	// Cache
	CacheEnabled bool
}

// Load reads configuration from environment variables with sensible defaults.
// When CONFIG_FILE names a YAML file, its values replace the built-in
// defaults; environment variables still win over both.
func Load() (*Config, error) {
	file, err := loadFile(os.Getenv("CONFIG_FILE"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DatabaseURL:    envOr("DATABASE_URL", file.text(file.DatabaseURL, "")),
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 1),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 4),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		APIHost:     envOr("API_HOST", file.text(file.APIHost, "127.0.0.1")),
		APIPort:     envInt("API_PORT", envInt("PORT", file.num(file.APIPort, 8000))),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", file.strs(file.CORSAllowOrigins, []string{
			"chrome-extension://*",
			"http://localhost:3000",
		})),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 60),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		MLBAPIBaseURL: strings.TrimRight(envOr("MLB_API_BASE_URL", file.text(file.MLBAPIBaseURL, DefaultMLBAPIBaseURL)), "/"),
		HTTPTimeout:   time.Duration(envInt("HTTP_TIMEOUT_SECONDS", 30)) * time.Second,

		ScraperUserAgent: envOr("SCRAPER_USER_AGENT", file.text(file.ScraperUserAgent,
			"six-picks-stream-finder/1.0 (+https://github.com/alex-monroe/six-picks-stream-finder)")),
		PagePrefixes: envList("PAGE_PREFIXES", file.strs(file.PagePrefixes, DefaultPagePrefixes)),

		ContextTTL:           time.Duration(envInt("CONTEXT_TTL_SECONDS", file.num(file.ContextTTLSeconds, 600))) * time.Second,
		ContextSweepInterval: time.Duration(envInt("CONTEXT_SWEEP_SECONDS", 60)) * time.Second,

		OutputDir: envOr("OUTPUT_DIR", file.text(file.OutputDir, ".")),

		CacheEnabled: envBool("CACHE_ENABLED", true),
	}

	if cfg.APIPort <= 0 || cfg.APIPort > 65535 {
		return nil, fmt.Errorf("API_PORT must be between 1 and 65535, got %d", cfg.APIPort)
	}
	return cfg, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// HasDatabase reports whether a Postgres URL is configured.
func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
