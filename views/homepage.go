package views

import (
	"context"

	"github.com/a-h/templ"

	"github.com/arunsisodiya/devopsdecoded/site"
)

const greetingClass = "bg-gradient-to-r from-yellow-600 to-red-600 dark:bg-gradient-to-l dark:from-emerald-500 dark:to-lime-600 " +
	"bg-clip-text text-4xl font-extrabold leading-[60px] tracking-tight text-transparent md:text-7xl md:leading-[86px]"

// Greeting is the large gradient headline.
func Greeting() templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<div class="`, greetingClass, `">Hello, DevOps enthusiasts! `)
		h.raw(emojiHTML(Emoji("waving-hand")))
		h.raw(`</div>`)
	})
}

// ShortDescription renders one paragraph per line.
func ShortDescription(lines []string) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<div class="mb-4 mt-4">`)
		for _, l := range lines {
			h.raw("<p>")
			h.text(l)
			h.raw("</p>")
		}
		h.raw(`</div>`)
	})
}

// BlogLinks renders the two columns of homepage links.
func BlogLinks(columns [2][]site.HomeLink) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<div class="flex justify-between">`)
		for _, col := range columns {
			h.raw(`<div class="flex flex-col space-y-1.5">`)
			for _, l := range col {
				h.render(ctx, Link(l.Href, "hover:underline", Twemoji(l.Emoji), homeLinkLabel(l)))
			}
			h.raw(`</div>`)
		}
		h.raw(`</div>`)
	})
}

func homeLinkLabel(l site.HomeLink) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw("<span")
		if l.Event != "" {
			h.attr("data-umami-event", l.Event)
		}
		h.raw(` class="ml-1.5">`)
		h.text(l.Label)
		h.raw("</span>")
	})
}

// BiosListID is the id of the hidden list the bio typer reads from.
const BiosListID = "bios"

// TypedBios renders the hidden list of bios and the element the typing
// animation writes into. The animation is driven by /public/bios.js, which
// mounts one engine per page view through the bios stream; without script the
// first bio is shown.
func TypedBios(bios []string) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<div>`)
		h.raw(`<ul id="`, BiosListID, `" class="hidden">`)
		for _, b := range bios {
			h.raw("<li>", ExpandEmoji(b), "</li>")
		}
		h.raw(`</ul>`)
		h.raw(`<span id="bio-typer" class="text-neutral-900 dark:text-neutral-200" data-stream="/api/bios/stream">`)
		if len(bios) > 0 {
			h.raw(ExpandEmoji(bios[0]))
		}
		h.raw(`</span>`)
		h.raw(`<script defer src="/public/bios.js"></script>`)
		h.raw(`</div>`)
	})
}

// PopularTags lists the tag registry with brand icons.
func PopularTags(tags []site.Tag) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<div class="flex flex-wrap gap-2">`)
		for _, t := range tags {
			h.render(ctx, Link(t.Href+"/", TagClass(false), BrandIcon(t.IconType), Text(t.Title)))
		}
		h.raw(`</div>`)
	})
}

// BrandIcon renders the brand glyph placeholder for a tag.
func BrandIcon(icon site.BrandIcon) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<span aria-hidden="true"`)
		h.attr("class", "brand-icon mr-1.5 brand-"+KebabCase(string(icon)))
		h.raw(`></span>`)
	})
}
