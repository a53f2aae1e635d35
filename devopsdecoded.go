// Package devopsdecoded is the blog and portfolio server behind
// devopsdecoded.cloud, built with Go, Echo and templ.
//
// It renders the homepage sections, the blog index and posts with their
// reading time and live view counts, and wires the site metadata into the
// analytics, comment and newsletter providers.
package devopsdecoded

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/arunsisodiya/devopsdecoded/site"
	"github.com/arunsisodiya/devopsdecoded/typer"
	"github.com/arunsisodiya/devopsdecoded/viewcount"
	"github.com/arunsisodiya/devopsdecoded/views"
)

// App is the central application. It wires together the post catalog, the
// view store, handlers, middleware and templates.
type App struct {
	Config  ServerConfig
	Site    site.Config
	Echo    *echo.Echo
	Catalog *Catalog
	Metrics *Metrics

	counter   views.ViewCounter
	viewStore *viewcount.Store
	limiter   *ViewLimiter
	bios      *typer.Mounter
	registry  *prometheus.Registry
	log       *slog.Logger
	stops     []func()
	ready     bool
}

// New creates an App for the given server settings and site metadata.
func New(cfg ServerConfig, siteCfg site.Config, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Site:   siteCfg,
		Echo:   echo.New(),
		log:    slog.Default(),
	}
	a.Echo.HideBanner = true
	a.Echo.HidePort = true

	for _, opt := range opts {
		opt(a)
	}
	if a.registry == nil {
		a.registry = prometheus.NewRegistry()
	}
	return a
}

// Setup opens the view store, loads the post catalog and registers
// middleware and routes. Start calls it when needed; tests call it directly
// and drive a.Echo.
func (a *App) Setup() error {
	if a.ready {
		return nil
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("devopsdecoded: SessionSecret is required")
	}

	a.Metrics = NewMetrics(a.registry)

	if a.counter == nil {
		store, err := viewcount.NewStore(a.Config.DatabasePath)
		if err != nil {
			return fmt.Errorf("devopsdecoded: init view store: %w", err)
		}
		a.viewStore = store
		a.counter = store
		a.stops = append(a.stops, store.StartCleanupScheduler(a.Config.ViewRetentionDays, 6*time.Hour))
	}

	a.Catalog = NewCatalog(a.Config.ContentDir)
	if err := a.reloadCatalog(); err != nil {
		return fmt.Errorf("devopsdecoded: load posts: %w", err)
	}

	a.limiter = NewViewLimiter(a.Config.ViewRateLimit, a.Config.ViewRateWindow)
	a.stops = append(a.stops, a.limiter.Stop)

	a.bios = typer.NewMounter(biosForTyping(), typer.DefaultOptions(), a.Metrics)

	a.setupMiddleware()
	a.setupRoutes()
	a.ready = true
	return nil
}

// Start sets the App up and serves HTTP until ctx is cancelled, then shuts the
// server down gracefully. Cancelling ctx also ends open bio streams.
func (a *App) Start(ctx context.Context) error {
	if err := a.Setup(); err != nil {
		return err
	}

	if a.Config.WatchContent {
		w, err := WatchContent(ctx, a.Config.ContentDir, a.reloadCatalog, a.log)
		if err != nil {
			return fmt.Errorf("devopsdecoded: watch content: %w", err)
		}
		defer w.Close()
	}

	a.Echo.Server.BaseContext = func(net.Listener) context.Context { return ctx }

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("listening", "addr", a.Config.Addr, "posts", len(a.Catalog.ListPosts("")))
		errCh <- a.Echo.Start(a.Config.Addr)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		a.log.Info("shutting down")
		return a.Echo.Shutdown(shutdownCtx)
	}
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Framework assets (bios.js) are served under /public/ ahead of the user's static dir.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET(biosScriptPath, echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	e.Static("/public", a.Config.StaticDir)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{})))

	e.GET("/", a.handleHome)
	e.GET("/about/", a.handleAbout)
	e.GET("/blog/", a.handleBlog)
	e.GET("/blog/:slug/", a.handlePost)
	e.GET("/tags/", a.handleTags)
	e.GET("/tags/:slug/", a.handleTag)
	e.POST("/theme/", a.handleTheme)

	api := e.Group("/api")
	api.GET("/views", a.handleTopViews)
	api.GET("/views/:slug", a.handleViewsGet)
	api.POST("/views/:slug", a.handleViewsPost)
	api.GET("/bios/stream", a.handleBiosStream)
}

func (a *App) reloadCatalog() error {
	err := a.Catalog.Reload()
	a.Metrics.CatalogReloaded(len(a.Catalog.ListPosts("")), err)
	if err != nil {
		a.log.Error("catalog reload failed", "dir", a.Config.ContentDir, "error", err)
		return err
	}
	return nil
}

// biosForTyping expands the bio shortcodes the same way the hidden list does,
// so the streamed frames match the rendered markup.
func biosForTyping() []string {
	bios := site.Bios()
	out := make([]string, len(bios))
	for i, b := range bios {
		out[i] = views.ExpandEmoji(b)
	}
	return out
}

// Close stops background work and closes the view store.
func (a *App) Close() error {
	for _, stop := range a.stops {
		stop()
	}
	a.stops = nil
	if a.viewStore != nil {
		return a.viewStore.Close()
	}
	return nil
}
