package devopsdecoded

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/arunsisodiya/devopsdecoded/views"
)

// ServerConfig holds the runtime settings of the HTTP server, read from the
// environment.
type ServerConfig struct {
	Addr         string `env:"ADDR"`          // Listen address (default ":3000")
	DatabasePath string `env:"DATABASE_PATH"` // SQLite path for view counts (default "data/views.db")
	ContentDir   string `env:"CONTENT_DIR"`   // Markdown posts (default "content/blog")
	StaticDir    string `env:"STATIC_DIR"`    // User-owned static assets (default "public")

	SessionSecret string `env:"SESSION_SECRET"` // Required: session encryption secret
	CookieSecure  bool   `env:"COOKIE_SECURE"`  // Set true for HTTPS

	WatchContent      bool          `env:"WATCH_CONTENT"`       // Reload posts when CONTENT_DIR changes
	ViewRetentionDays int           `env:"VIEW_RETENTION_DAYS"` // Days of visitor hashes kept for deduplication (default 2)
	ViewRateLimit     int           `env:"VIEW_RATE_LIMIT"`     // Recorded views per IP per window (default 30)
	ViewRateWindow    time.Duration `env:"VIEW_RATE_WINDOW"`    // default 1m
}

// LoadServerConfig reads ServerConfig from environ (the process environment
// when nil) and fills in defaults.
func LoadServerConfig(environ map[string]string) (ServerConfig, error) {
	var cfg ServerConfig
	opts := env.Options{Environment: environ}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return ServerConfig{}, fmt.Errorf("parse server env: %w", err)
	}
	cfg.setDefaults()
	return cfg, nil
}

func (c *ServerConfig) setDefaults() {
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/views.db"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content/blog"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.ViewRetentionDays == 0 {
		c.ViewRetentionDays = 2
	}
	if c.ViewRateLimit == 0 {
		c.ViewRateLimit = 30
	}
	if c.ViewRateWindow == 0 {
		c.ViewRateWindow = time.Minute
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithViewCounter replaces the SQLite view store as the source of view counts.
// Views are then neither recorded nor deduplicated by the App.
func WithViewCounter(c views.ViewCounter) Option {
	return func(a *App) {
		a.counter = c
	}
}

// WithRegistry registers the App metrics on reg instead of a private registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(a *App) {
		a.registry = reg
	}
}

// WithLogger sets the logger used for request and lifecycle logs
// (default slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		a.log = l
	}
}
