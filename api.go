package devopsdecoded

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/arunsisodiya/devopsdecoded/viewcount"
)

// ViewsResponse is the JSON body of the view counter endpoints.
type ViewsResponse struct {
	Slug    string `json:"slug"`
	Views   int64  `json:"views"`
	Counted bool   `json:"counted"`
}

// View outcomes, also used as metric labels.
const (
	viewCounted   = "counted"
	viewDuplicate = "duplicate"
	viewBot       = "bot"
	viewLimited   = "limited"
	viewError     = "error"
	viewDisabled  = "disabled"
)

// recordView counts a view of slug for the requesting visitor. It returns the
// outcome label; only viewCounted increments the stored total.
func (a *App) recordView(c echo.Context, slug string) string {
	outcome := a.tryRecordView(c, slug)
	a.Metrics.View(outcome)
	return outcome
}

func (a *App) tryRecordView(c echo.Context, slug string) string {
	if a.viewStore == nil {
		return viewDisabled
	}
	ua := c.Request().UserAgent()
	if viewcount.IsBot(ua) {
		return viewBot
	}
	ip := c.RealIP()
	if !a.limiter.Allow(ip) {
		return viewLimited
	}
	counted, err := a.viewStore.Hit(c.Request().Context(), slug, a.viewStore.VisitorID(ip, ua), time.Now())
	if err != nil {
		a.log.Error("record view", "slug", slug, "error", err)
		return viewError
	}
	if !counted {
		return viewDuplicate
	}
	return viewCounted
}

func (a *App) handleViewsGet(c echo.Context) error {
	slug := c.Param("slug")
	if _, err := a.Catalog.GetPost(slug); errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "unknown post")
	}
	n, err := a.counter.Views(c.Request().Context(), slug)
	if err != nil {
		return fmt.Errorf("read views for %s: %w", slug, err)
	}
	return c.JSON(http.StatusOK, ViewsResponse{Slug: slug, Views: n})
}

func (a *App) handleViewsPost(c echo.Context) error {
	slug := c.Param("slug")
	if _, err := a.Catalog.GetPost(slug); errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "unknown post")
	}
	outcome := a.recordView(c, slug)
	if outcome == viewLimited {
		return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
	}
	n, err := a.counter.Views(c.Request().Context(), slug)
	if err != nil {
		return fmt.Errorf("read views for %s: %w", slug, err)
	}
	return c.JSON(http.StatusOK, ViewsResponse{Slug: slug, Views: n, Counted: outcome == viewCounted})
}

// handleTopViews lists the most viewed published posts. Only the SQLite
// store keeps totals for every slug; other counters get an empty list.
func (a *App) handleTopViews(c echo.Context) error {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 || limit > 50 {
		limit = 10
	}
	out := []ViewsResponse{}
	if a.viewStore == nil {
		return c.JSON(http.StatusOK, out)
	}
	top, err := a.viewStore.Top(c.Request().Context(), limit)
	if err != nil {
		return fmt.Errorf("top views: %w", err)
	}
	for _, pv := range top {
		if _, err := a.Catalog.GetPost(pv.Slug); err != nil {
			continue
		}
		out = append(out, ViewsResponse{Slug: pv.Slug, Views: pv.Views})
	}
	return c.JSON(http.StatusOK, out)
}

// handleBiosStream streams typed bio frames as server-sent events. Each
// connection mounts its own typing engine, released when the client leaves.
func (a *App) handleBiosStream(c echo.Context) error {
	ctx := c.Request().Context()
	m, err := a.bios.Mount(ctx)
	if err != nil {
		return fmt.Errorf("mount bio typer: %w", err)
	}
	defer m.Unmount()

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	w.Flush()

	for {
		select {
		case <-ctx.Done():
			return nil
		case frame, ok := <-m.Frames():
			if !ok {
				fmt.Fprint(w, "event: done\ndata: {}\n\n")
				w.Flush()
				return nil
			}
			data, err := json.Marshal(frame)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "event: frame\ndata: %s\n\n", data); err != nil {
				return nil
			}
			w.Flush()
		}
	}
}
