package views

import (
	"context"
	"regexp"
	"strings"

	"github.com/a-h/templ"
)

const (
	// EmojiBaseClass is shared by every glyph of the sprite font.
	EmojiBaseClass = "inline-block twa"
	// DefaultEmojiSize is the standard inline size token.
	DefaultEmojiSize = "twa-sg"
)

// EmojiReference names a glyph and how large to draw it. An empty Size adds no
// size class; use Emoji for the default size.
type EmojiReference struct {
	Name  string
	Size  string
	Class string // extra classes appended last
}

// Emoji references name at the default size.
func Emoji(name string) EmojiReference {
	return EmojiReference{Name: name, Size: DefaultEmojiSize}
}

// ClassName is the class attribute for the glyph. Unknown names yield a class
// the font does not define, which renders nothing.
func (r EmojiReference) ClassName() string {
	parts := []string{EmojiBaseClass}
	if r.Size != "" {
		parts = append(parts, r.Size)
	}
	parts = append(parts, "twa-"+KebabCase(r.Name))
	if c := strings.TrimSpace(r.Class); c != "" {
		parts = append(parts, c)
	}
	return strings.Join(parts, " ")
}

// Twemoji renders the named glyph at the default size.
func Twemoji(name string) templ.Component {
	return EmojiGlyph(Emoji(name))
}

// EmojiGlyph renders a glyph as an empty <i> element.
func EmojiGlyph(r EmojiReference) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw(emojiHTML(r))
	})
}

func emojiHTML(r EmojiReference) string {
	return `<i class="` + templ.EscapeString(r.ClassName()) + `"></i>`
}

var reShortcode = regexp.MustCompile(`:([a-z0-9]+(?:-[a-z0-9]+)*):`)

// ExpandEmoji replaces :name: shortcodes in trusted markup with glyphs. A
// colon right after a digit belongs to a clock time ("10:30:45"), not a
// shortcode.
func ExpandEmoji(markup string) string {
	var b strings.Builder
	last := 0
	for _, m := range reShortcode.FindAllStringSubmatchIndex(markup, -1) {
		if m[0] > 0 && markup[m[0]-1] >= '0' && markup[m[0]-1] <= '9' {
			continue
		}
		b.WriteString(markup[last:m[0]])
		b.WriteString(emojiHTML(Emoji(markup[m[2]:m[3]])))
		last = m[1]
	}
	b.WriteString(markup[last:])
	return b.String()
}
