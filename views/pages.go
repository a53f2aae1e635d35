package views

import (
	"context"
	"strconv"

	"github.com/a-h/templ"

	"github.com/arunsisodiya/devopsdecoded/site"
)

// HomePostLimit is how many recent posts the homepage lists.
const HomePostLimit = 5

// Home composes the homepage sections above the latest posts.
func Home(ch Chrome, posts []Post, counter ViewCounter) templ.Component {
	body := component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<div class="mt-8 dark:divide-gray-700 md:mt-8"><div class="space-y-2 md:my-4 md:space-y-5 md:pb-8 md:pt-6">`)
		h.render(ctx, Greeting())
		h.raw(`<div class="text-base leading-7 text-gray-600 dark:text-gray-400 md:text-lg md:leading-8">`)
		h.render(ctx, TypedBios(site.Bios()))
		h.render(ctx, ShortDescription(site.ShortDescription()))
		h.render(ctx, BlogLinks(site.HomeLinks(ch.Site)))
		h.raw(`</div></div></div>`)

		h.raw(`<section class="mt-8"><h2 class="mb-4 text-2xl font-bold">Popular tags</h2>`)
		h.render(ctx, PopularTags(site.PopularTags()))
		h.raw(`</section>`)

		if len(posts) > HomePostLimit {
			posts = posts[:HomePostLimit]
		}
		h.raw(`<section class="mt-8"><h2 class="mb-4 text-2xl font-bold">Latest posts</h2>`)
		h.render(ctx, postList(posts, counter))
		h.raw(`<div class="mt-4 text-right">`)
		h.render(ctx, Link("/blog/", "hover:underline", Text("All posts →")))
		h.raw(`</div></section>`)
	})
	return Layout(ch, "", body)
}

// BlogSection is the post list with its tag filter. It is also served on its
// own as an htmx partial; the filter links swap it in place.
func BlogSection(posts []Post, activeTag string, tags []TagCount, counter ViewCounter) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<section id="blog-section">`)
		h.raw(`<div class="mb-6 flex flex-wrap gap-2">`)
		h.render(ctx, tagFilterLink("", activeTag == ""))
		for _, t := range tags {
			h.render(ctx, tagFilterLink(t.Tag, t.Tag == activeTag))
		}
		h.raw(`</div>`)
		h.render(ctx, postList(posts, counter))
		h.raw(`</section>`)
	})
}

// BlogList is the full blog index page.
func BlogList(ch Chrome, posts []Post, activeTag string, tags []TagCount, counter ViewCounter) templ.Component {
	body := component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<h1 class="mb-6 text-3xl font-extrabold">All Posts</h1>`)
		h.render(ctx, BlogSection(posts, activeTag, tags, counter))
	})
	return Layout(ch, "", body)
}

// tagFilterLink points at the filtered blog index. With htmx loaded it fetches
// only the blog section and pushes the full URL to history.
func tagFilterLink(tag string, active bool) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		href, label := "/blog/", "All"
		partial := "/blog/?partial=blog"
		if tag != "" {
			href = "/blog/?tag=" + PathEscape(tag)
			partial = href + "&partial=blog"
			label = tag
		}
		h.raw("<a")
		h.attr("href", href)
		h.attr("class", TagClass(active))
		h.attr("hx-get", partial)
		h.raw(` hx-target="#blog-section" hx-swap="outerHTML"`)
		h.attr("hx-push-url", href)
		h.raw(">")
		h.text(label)
		h.raw("</a>")
	})
}

func postList(posts []Post, counter ViewCounter) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		if len(posts) == 0 {
			h.raw(`<p class="text-gray-500">No posts found.</p>`)
			return
		}
		h.raw(`<ul class="divide-y divide-gray-200 dark:divide-gray-700">`)
		for _, p := range posts {
			h.raw(`<li class="py-6"><article><dl><dt class="sr-only">Published on</dt><dd class="text-sm text-gray-500"><time`)
			h.attr("datetime", p.Date)
			h.raw(">")
			h.text(p.Date)
			h.raw(`</time></dd></dl><h3 class="text-2xl font-bold leading-8 tracking-tight">`)
			h.render(ctx, Link(p.Link, "text-gray-900 dark:text-gray-100", Text(p.Title)))
			h.raw(`</h3><dl>`)
			h.render(ctx, BlogMeta(p.Meta(), counter))
			h.raw(`</dl>`)
			h.render(ctx, tagLinks(p.Tags))
			h.raw(`<p class="prose max-w-none text-gray-500 dark:text-gray-400">`)
			h.text(p.Summary)
			h.raw(`</p></article></li>`)
		}
		h.raw(`</ul>`)
	})
}

func tagLinks(tags []string) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		if len(tags) == 0 {
			return
		}
		h.raw(`<div class="my-2 flex flex-wrap gap-2">`)
		for _, t := range tags {
			h.render(ctx, Link("/tags/"+PathEscape(t)+"/", TagClass(false), Text(t)))
		}
		h.raw(`</div>`)
	})
}

// PostPage renders a single post with its metadata, related posts and comments.
func PostPage(ch Chrome, post Post, related []Post, counter ViewCounter) templ.Component {
	body := component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<article><header class="pt-6 xl:pb-6"><div class="space-y-1 text-center"><dl><dt class="sr-only">Published on</dt><dd class="text-base font-medium text-gray-500"><time`)
		h.attr("datetime", post.Date)
		h.raw(">")
		h.text(post.Date)
		h.raw(`</time></dd></dl><h1 class="text-3xl font-extrabold leading-9 tracking-tight md:text-5xl">`)
		h.text(post.Title)
		h.raw(`</h1><dl class="flex justify-center">`)
		h.render(ctx, BlogMeta(post.Meta(), counter))
		h.raw(`</dl>`)
		h.render(ctx, tagLinks(post.Tags))
		h.raw(`</div></header>`)
		h.raw(`<div class="prose max-w-none pb-8 pt-10 dark:prose-invert">`, post.HTML, `</div>`)
		h.render(ctx, Comments(ch.Site.Comments, ch.Dark))
		if len(related) > 0 {
			h.raw(`<aside class="mt-8"><h2 class="mb-4 text-xl font-bold">Related posts</h2><ul class="space-y-2">`)
			for _, r := range related {
				h.raw("<li>")
				h.render(ctx, Link(r.Link, "hover:underline", Text(r.Title)))
				h.raw("</li>")
			}
			h.raw(`</ul></aside>`)
		}
		h.raw(`</article>`)
	})
	return Layout(ch, BlogPostingJsonLD(ch.Site, post), body)
}

// TagsPage lists every tag with its post count.
func TagsPage(ch Chrome, tags []TagCount) templ.Component {
	body := component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<h1 class="mb-6 text-3xl font-extrabold">Tags</h1><div class="flex max-w-lg flex-wrap gap-3">`)
		for _, t := range tags {
			h.render(ctx, Link("/tags/"+PathEscape(t.Tag)+"/", TagClass(false), Text(t.Tag+" ("+strconv.Itoa(t.Count)+")")))
		}
		h.raw(`</div>`)
	})
	return Layout(ch, "", body)
}

// TagPage lists the posts of one tag. title is the registry title when the
// tag is a popular one, otherwise the tag itself.
func TagPage(ch Chrome, title string, posts []Post, counter ViewCounter) templ.Component {
	body := component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<h1 class="mb-6 text-3xl font-extrabold">`)
		h.text(title)
		h.raw(`</h1>`)
		h.render(ctx, postList(posts, counter))
	})
	return Layout(ch, "", body)
}

// About introduces the author.
func About(ch Chrome) templ.Component {
	body := component(func(ctx context.Context, h *htmlWriter) {
		cfg := ch.Site
		h.raw(`<div class="items-start space-y-2 xl:grid xl:grid-cols-3 xl:gap-x-8 xl:space-y-0">`)
		h.raw(`<div class="flex flex-col items-center pt-8"><img class="h-48 w-48 rounded-full" width="192" height="192"`)
		h.attr("src", cfg.Image)
		h.attr("alt", cfg.FullName)
		h.raw(`/><h1 class="pb-2 pt-4 text-2xl font-bold">`)
		h.text(cfg.FullName)
		h.raw(`</h1></div><div class="prose max-w-none pb-8 pt-8 dark:prose-invert xl:col-span-2"><ul>`)
		for _, b := range site.Bios() {
			h.raw("<li>", ExpandEmoji(b), "</li>")
		}
		h.raw(`</ul>`)
		h.render(ctx, ShortDescription(site.ShortDescription()))
		h.raw(`</div></div>`)
	})
	return Layout(ch, "", body)
}

// NotFound is the 404 page.
func NotFound(ch Chrome) templ.Component {
	return Layout(ch, "", component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<div class="flex flex-col items-start justify-start md:mt-24 md:flex-row md:items-center md:justify-center md:space-x-6">`)
		h.raw(`<h1 class="text-6xl font-extrabold leading-9 tracking-tight md:text-8xl">404</h1>`)
		h.raw(`<div class="max-w-md"><p class="mb-4 text-xl font-bold">Sorry we couldn't find this page.</p>`)
		h.render(ctx, Link("/", "hover:underline", Twemoji("house"), Text(" Back to homepage")))
		h.raw(`</div></div>`)
	}))
}

// ServerError is the 5xx page.
func ServerError(ch Chrome) templ.Component {
	return Layout(ch, "", component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<div class="md:mt-24"><h1 class="text-4xl font-extrabold">Something went wrong `)
		h.raw(emojiHTML(Emoji("construction")))
		h.raw(`</h1><p class="mt-4">Please try again in a moment.</p></div>`)
	}))
}
