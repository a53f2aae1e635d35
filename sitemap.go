package devopsdecoded

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arunsisodiya/devopsdecoded/views"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

func (a *App) renderSitemap(c echo.Context, posts []views.Post, tags []views.TagCount) error {
	base := a.Site.SiteURL
	latest := ""
	if len(posts) > 0 {
		latest = posts[0].Date
	}
	urls := []sitemapURL{
		{Loc: BuildURL(base), LastMod: latest},
		{Loc: BuildURL(base, "blog"), LastMod: latest},
		{Loc: BuildURL(base, "tags")},
		{Loc: BuildURL(base, "about")},
	}
	for _, p := range posts {
		urls = append(urls, sitemapURL{
			Loc:     BuildURL(base, "blog", p.Slug),
			LastMod: p.Date,
		})
	}
	for _, t := range tags {
		urls = append(urls, sitemapURL{Loc: BuildURL(base, "tags", t.Tag)})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
