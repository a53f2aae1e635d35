package views

import (
	"context"
	"strings"

	"github.com/a-h/templ"

	"github.com/arunsisodiya/devopsdecoded/site"
)

const (
	umamiScriptURL = "https://cloud.umami.is/script.js"
	// HTMXScriptURL drives the in-place tag filter on the blog index.
	HTMXScriptURL = "https://unpkg.com/htmx.org@1.9.12/dist/htmx.min.js"
)

// Layout wraps a page body with the document head, header and footer.
// jsonLD defaults to the WebSite block when empty.
func Layout(ch Chrome, jsonLD string, body templ.Component) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		cfg := ch.Site
		if jsonLD == "" {
			jsonLD = WebsiteJsonLD(cfg)
		}
		title := ch.Meta.Title
		if title == "" {
			title = cfg.Title
		} else if title != cfg.HeaderTitle {
			title += " | " + cfg.HeaderTitle
		}
		description := ch.Meta.Description
		if description == "" {
			description = cfg.Description
		}
		ogType := ch.Meta.OGType
		if ogType == "" {
			ogType = "website"
		}

		h.raw("<!doctype html><html")
		h.attr("lang", cfg.Language)
		if ch.Dark {
			h.raw(` class="dark"`)
		}
		h.raw(`><head><meta charset="utf-8"/><meta name="viewport" content="width=device-width, initial-scale=1"/>`)
		h.raw("<title>")
		h.text(title)
		h.raw("</title>")
		h.raw(`<meta name="description"`)
		h.attr("content", description)
		h.raw(`/><meta property="og:title"`)
		h.attr("content", title)
		h.raw(`/><meta property="og:description"`)
		h.attr("content", description)
		h.raw(`/><meta property="og:type"`)
		h.attr("content", ogType)
		h.raw(`/><meta property="og:locale"`)
		h.attr("content", cfg.Locale)
		if ch.Meta.URL != "" {
			h.raw(`/><meta property="og:url"`)
			h.attr("content", ch.Meta.URL)
			h.raw(`/><link rel="canonical"`)
			h.attr("href", ch.Meta.URL)
		}
		if img := firstNonEmpty(cfg.SocialBanner, cfg.Image); img != "" {
			h.raw(`/><meta property="og:image"`)
			h.attr("content", buildURL(cfg.SiteURL)+strings.TrimLeft(img, "/"))
		}
		h.raw(`/><link rel="alternate" type="application/rss+xml" href="/feed.xml"`)
		h.attr("title", cfg.HeaderTitle)
		h.raw(`/><link rel="stylesheet" href="/public/styles.css"/>`)
		h.raw(`<script type="application/ld+json">`, jsonLD, `</script>`)
		h.raw(`<script defer`)
		h.attr("src", HTMXScriptURL)
		h.raw(`></script>`)
		h.render(ctx, UmamiScript(cfg.Analytics))
		h.raw(`</head><body class="bg-white text-black antialiased dark:bg-gray-950 dark:text-white">`)
		h.raw(`<div class="mx-auto max-w-3xl px-4 sm:px-6 xl:max-w-5xl xl:px-0">`)
		h.render(ctx, header(ch))
		h.raw(`<main class="mb-auto">`)
		h.render(ctx, body)
		h.raw(`</main>`)
		h.render(ctx, footer(cfg))
		h.raw(`</div></body></html>`)
	})
}

func header(ch Chrome) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<header class="flex items-center justify-between py-10">`)
		h.render(ctx, Link("/", "text-2xl font-semibold", Text(ch.Site.HeaderTitle)))
		h.raw(`<nav class="flex items-center space-x-4 leading-5 sm:space-x-6">`)
		for _, n := range []struct{ href, label string }{
			{"/blog/", "Blog"},
			{"/tags/", "Tags"},
			{"/about/", "About"},
		} {
			h.render(ctx, Link(n.href, "font-medium text-gray-900 dark:text-gray-100", Text(n.label)))
		}
		h.raw(`<form method="post" action="/theme/">`)
		h.raw(`<input type="hidden" name="_csrf"`)
		h.attr("value", ch.CSRFToken)
		next := "light"
		label := "Switch to light theme"
		if !ch.Dark {
			next = "dark"
			label = "Switch to dark theme"
		}
		h.raw(`/><button type="submit" name="theme"`)
		h.attr("value", next)
		h.attr("aria-label", label)
		h.raw(`>`)
		if ch.Dark {
			h.raw(emojiHTML(Emoji("sun")))
		} else {
			h.raw(emojiHTML(Emoji("crescent-moon")))
		}
		h.raw(`</button></form></nav></header>`)
	})
}

func footer(cfg site.Config) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<footer class="mt-16 flex flex-col items-center">`)
		h.render(ctx, Newsletter(cfg.Newsletter))
		h.raw(`<div class="mb-3 flex space-x-4">`)
		for _, s := range []struct{ href, label string }{
			{"mailto:" + cfg.Email, "Mail"},
			{cfg.GitHub, "GitHub"},
			{cfg.LinkedIn, "LinkedIn"},
			{cfg.Twitter, "X"},
			{cfg.Facebook, "Facebook"},
			{cfg.YouTube, "YouTube"},
		} {
			if s.href == "" || s.href == "mailto:" {
				continue
			}
			h.render(ctx, Link(s.href, "text-sm text-gray-500 hover:text-primary-500", Text(s.label)))
		}
		h.raw(`</div><div class="mb-2 flex space-x-2 text-sm text-gray-500 dark:text-gray-400">`)
		h.text(cfg.Author)
		h.raw(`<span> • </span>`)
		h.render(ctx, Link("/", "", Text(cfg.HeaderTitle)))
		h.raw(`</div></footer>`)
	})
}

// UmamiScript embeds the analytics tracker when a website id is configured.
func UmamiScript(a site.Analytics) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		if a.UmamiWebsiteID == "" {
			return
		}
		h.raw(`<script defer`)
		h.attr("src", umamiScriptURL)
		h.attr("data-website-id", a.UmamiWebsiteID)
		h.raw(`></script>`)
	})
}

// Comments embeds the giscus widget. Nothing is rendered unless the provider
// is giscus and its repository and category identifiers are known.
func Comments(c site.Comments, dark bool) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		g := c.Giscus
		if c.Provider != "giscus" || !g.Configured() {
			return
		}
		theme := g.Theme
		if dark && g.DarkTheme != "" {
			theme = g.DarkTheme
		}
		if g.ThemeURL != "" {
			theme = g.ThemeURL
		}
		h.raw(`<div class="pb-6 pt-6 text-center text-gray-700 dark:text-gray-300" id="comment">`)
		h.raw(`<script src="https://giscus.app/client.js"`)
		h.attr("data-repo", g.Repo)
		h.attr("data-repo-id", g.RepositoryID)
		h.attr("data-category", g.Category)
		h.attr("data-category-id", g.CategoryID)
		h.attr("data-mapping", g.Mapping)
		h.attr("data-reactions-enabled", g.Reactions)
		h.attr("data-emit-metadata", g.Metadata)
		h.attr("data-input-position", g.InputPosition)
		h.attr("data-theme", theme)
		h.attr("data-lang", g.Lang)
		h.raw(` crossorigin="anonymous" async></script></div>`)
	})
}

// Newsletter renders the signup form of the configured provider.
func Newsletter(n site.Newsletter) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		if n.Provider != "buttondown" || n.List == "" {
			return
		}
		h.raw(`<form class="mb-8 flex flex-col items-center" method="post" target="_blank"`)
		h.attr("action", "https://buttondown.email/api/emails/embed-subscribe/"+PathEscape(n.List))
		h.raw(`><label for="bd-email" class="pb-1 text-lg font-semibold">Subscribe to the newsletter</label>`)
		h.raw(`<div class="flex"><input type="email" name="email" id="bd-email" required placeholder="Enter your email" class="rounded-md px-4"/>`)
		h.raw(`<button type="submit" class="ml-3 rounded-md bg-primary-500 px-4 py-2 font-medium text-white">Sign up</button></div></form>`)
	})
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
