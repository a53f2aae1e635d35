package views

import (
	"context"
	"math"
	"strconv"

	"github.com/a-h/templ"
	"github.com/dustin/go-humanize"
)

// ReadingMinutes rounds a reading-time estimate up to whole minutes.
func ReadingMinutes(minutes float64) int {
	if minutes <= 0 || math.IsNaN(minutes) {
		return 0
	}
	return int(math.Ceil(minutes))
}

// FormatViews renders a view count for display, e.g. "1,234 views".
func FormatViews(n int64) string {
	if n == 1 {
		return "1 view"
	}
	return humanize.Comma(n) + " views"
}

const viewsUnavailable = "–"

// BlogMeta shows the reading time and the live view count of a post. The count
// comes from counter; when it is nil or fails a placeholder is shown instead.
func BlogMeta(meta ContentMeta, counter ViewCounter) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		views := viewsUnavailable
		if counter != nil {
			if n, err := counter.Views(ctx, meta.Slug); err == nil {
				views = FormatViews(n)
			}
		}
		h.raw(`<dd class="flex-column flex gap-1 font-semibold text-gray-500 dark:text-gray-400">`)
		h.raw(`<div class="flex items-center">`)
		h.raw(emojiHTML(EmojiReference{Name: "hourglass-not-done", Size: "1"}))
		h.raw(`<span class="ml-1.5 md:ml-2">`, strconv.Itoa(ReadingMinutes(meta.ReadingTime)), ` mins read</span>`)
		h.raw(`</div>`)
		h.raw(`<span class="mx-2"> • </span>`)
		h.raw(`<div class="flex items-center">`)
		h.raw(emojiHTML(EmojiReference{Name: "eye"}))
		h.raw(`<span class="ml-1.5 md:ml-2"`)
		h.attr("data-views-slug", meta.Slug)
		h.raw(">")
		h.text(views)
		h.raw(`</span></div></dd>`)
	})
}
