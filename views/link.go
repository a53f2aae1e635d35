package views

import (
	"context"
	"strings"

	"github.com/a-h/templ"
)

// Link is the navigation primitive. Site-relative and fragment links stay in
// the tab; external http(s) links open a new one.
func Link(href, class string, children ...templ.Component) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw("<a")
		h.attr("href", href)
		if class != "" {
			h.attr("class", class)
		}
		if isExternal(href) {
			h.raw(` target="_blank" rel="noopener noreferrer"`)
		}
		h.raw(">")
		for _, c := range children {
			h.render(ctx, c)
		}
		h.raw("</a>")
	})
}

func isExternal(href string) bool {
	return strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") || strings.HasPrefix(href, "//")
}

// Text renders escaped text.
func Text(s string) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.text(s)
	})
}
