package devopsdecoded

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/arunsisodiya/devopsdecoded/site"
	"github.com/arunsisodiya/devopsdecoded/views"
)

func (a *App) chrome(c echo.Context, meta views.PageMeta) views.Chrome {
	return views.Chrome{
		Site:      a.Site,
		Meta:      meta,
		Dark:      a.PrefersDark(c),
		CSRFToken: CsrfToken(c),
	}
}

func (a *App) pageURL(segments ...string) string {
	if a.Site.SiteURL == "" {
		return ""
	}
	return BuildURL(a.Site.SiteURL, segments...)
}

func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

func (a *App) handleHome(c echo.Context) error {
	meta := views.PageMeta{URL: a.pageURL()}
	return Render(c, views.Home(a.chrome(c, meta), a.Catalog.ListPosts(""), a.counter))
}

func (a *App) handleAbout(c echo.Context) error {
	meta := views.PageMeta{
		Title:       "About",
		Description: "About me - " + a.Site.Author,
		URL:         a.pageURL("about"),
		OGType:      "profile",
	}
	return Render(c, views.About(a.chrome(c, meta)))
}

func (a *App) handleBlog(c echo.Context) error {
	tag := c.QueryParam("tag")
	posts := a.Catalog.ListPosts(tag)
	tags := a.Catalog.ListTags()
	if isHTMX(c) && c.QueryParam("partial") == "blog" {
		return Render(c, views.BlogSection(posts, normalizeTag(tag), tags, a.counter))
	}
	meta := views.PageMeta{Title: "Blog", URL: a.pageURL("blog")}
	return Render(c, views.BlogList(a.chrome(c, meta), posts, normalizeTag(tag), tags, a.counter))
}

func (a *App) handlePost(c echo.Context) error {
	slug := c.Param("slug")
	post, err := a.Catalog.GetPost(slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.ErrNotFound
		}
		return err
	}
	// Count before rendering so the page shows the visitor's own view.
	a.recordView(c, slug)

	related := views.FilterRelatedPosts(post, a.Catalog.ListPosts(""))
	if len(related) > 3 {
		related = related[:3]
	}
	meta := views.PageMeta{
		Title:       post.Title,
		Description: post.Summary,
		URL:         a.pageURL("blog", post.Slug),
		OGType:      "article",
	}
	return Render(c, views.PostPage(a.chrome(c, meta), post, related, a.counter))
}

func (a *App) handleTags(c echo.Context) error {
	meta := views.PageMeta{
		Title:       "Tags",
		Description: "Things I blog about",
		URL:         a.pageURL("tags"),
	}
	return Render(c, views.TagsPage(a.chrome(c, meta), a.Catalog.ListTags()))
}

func (a *App) handleTag(c echo.Context) error {
	slug := normalizeTag(c.Param("slug"))
	posts := a.Catalog.ListPosts(slug)
	title := slug
	if t, ok := site.TagBySlug(slug); ok {
		title = t.Title
	} else if len(posts) == 0 {
		return echo.ErrNotFound
	}
	meta := views.PageMeta{
		Title:       title,
		Description: a.Site.Title + " " + slug + " tagged content",
		URL:         a.pageURL("tags", slug),
	}
	return Render(c, views.TagPage(a.chrome(c, meta), title, posts, a.counter))
}

// handleTheme stores the visitor's light/dark choice and sends them back to
// the page they came from.
func (a *App) handleTheme(c echo.Context) error {
	theme := c.FormValue("theme")
	if theme != "dark" && theme != "light" {
		return echo.NewHTTPError(http.StatusBadRequest, "theme must be dark or light")
	}
	if err := setTheme(c, theme); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, localReferer(c.Request().Referer()))
}

// localReferer reduces a Referer header to a same-site path.
func localReferer(ref string) string {
	u, err := url.Parse(ref)
	if err != nil || u.Path == "" || !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") {
		return "/"
	}
	if u.RawQuery != "" {
		return u.Path + "?" + u.RawQuery
	}
	return u.Path
}

func (a *App) handleSitemap(c echo.Context) error {
	a.setLastModified(c)
	return a.renderSitemap(c, a.Catalog.ListPosts(""), a.Catalog.ListTags())
}

func (a *App) handleFeed(c echo.Context) error {
	a.setLastModified(c)
	return a.renderRSS(c, a.Catalog.ListPosts(""))
}

// setLastModified stamps generated documents with the catalog load time.
func (a *App) setLastModified(c echo.Context) {
	c.Response().Header().Set(echo.HeaderLastModified, a.Catalog.LoadedAt().UTC().Format(http.TimeFormat))
}

func (a *App) handleRobots(c echo.Context) error {
	var b strings.Builder
	b.WriteString("User-agent: *\nAllow: /\nDisallow: /api/\n")
	if a.Site.SiteURL != "" {
		b.WriteString("\nSitemap: " + strings.TrimRight(a.Site.SiteURL, "/") + "/sitemap.xml\n")
	}
	return c.String(http.StatusOK, b.String())
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	if strings.HasPrefix(c.Request().URL.Path, "/api/") {
		a.Echo.DefaultHTTPErrorHandler(err, c)
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		meta := views.PageMeta{Title: "Page Not Found"}
		_ = RenderStatus(c, http.StatusNotFound, views.NotFound(a.chrome(c, meta)))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.log.Error("server error", "uri", c.Request().RequestURI, "error", err)
		_ = RenderStatus(c, code, views.ServerError(a.chrome(c, views.PageMeta{Title: "Error"})))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
