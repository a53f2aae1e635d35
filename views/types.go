package views

import (
	"context"

	"github.com/arunsisodiya/devopsdecoded/site"
)

// ViewCounter resolves the live view count of a content slug. Fetch, update
// and error semantics belong to the implementation.
type ViewCounter interface {
	Views(ctx context.Context, slug string) (int64, error)
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}

// Chrome is everything the page layout needs besides the page body.
type Chrome struct {
	Site      site.Config
	Meta      PageMeta
	Dark      bool   // session prefers the dark theme
	CSRFToken string // for the theme toggle form
}

// Post is a rendered blog post.
type Post struct {
	Slug        string
	Title       string
	Date        string // YYYY-MM-DD
	Tags        []string
	Summary     string
	HTML        string // rendered body
	ReadingTime float64
	Link        string
}

// Meta returns the metadata shown next to the post.
func (p Post) Meta() ContentMeta {
	return ContentMeta{Slug: p.Slug, ReadingTime: p.ReadingTime}
}

// ContentMeta is what BlogMeta needs to know about a content item.
type ContentMeta struct {
	Slug        string
	ReadingTime float64 // minutes, possibly fractional
}

// TagCount is a tag with the number of published posts carrying it.
type TagCount struct {
	Tag   string
	Count int
}
