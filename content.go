package devopsdecoded

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"github.com/arunsisodiya/devopsdecoded/views"
)

// WordsPerMinute is the reading speed used for reading-time estimates.
const WordsPerMinute = 200

// ErrMissingClosingDelimiter is returned when a post opens a front matter
// block with --- but never closes it.
var ErrMissingClosingDelimiter = errors.New("front matter: missing closing ---")

// FrontMatter is the YAML header of a post.
type FrontMatter struct {
	Title   string   `yaml:"title"`
	Date    string   `yaml:"date"`
	Tags    []string `yaml:"tags"`
	Summary string   `yaml:"summary"`
	Draft   bool     `yaml:"draft"`
	Slug    string   `yaml:"slug"`
}

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

// LoadPosts reads every *.md file under dir and returns the published posts.
// A missing directory yields no posts.
func LoadPosts(dir string) ([]views.Post, error) {
	var posts []views.Post
	seen := make(map[string]string)

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir && errors.Is(err, fs.ErrNotExist) {
				return fs.SkipAll
			}
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".md" {
			return nil
		}
		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		post, draft, err := ParsePost(strings.TrimSuffix(d.Name(), ".md"), src)
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		if draft {
			return nil
		}
		if prev, ok := seen[post.Slug]; ok {
			return fmt.Errorf("duplicate slug %q in %s and %s", post.Slug, prev, path)
		}
		seen[post.Slug] = path
		posts = append(posts, post)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// ParsePost converts a markdown document into a post. name is the file name
// without extension and is used as the slug unless front matter sets one.
// draft reports whether the post is marked as a draft.
func ParsePost(name string, src []byte) (post views.Post, draft bool, err error) {
	fmRaw, body, err := splitFrontMatter(src)
	if err != nil {
		return views.Post{}, false, err
	}
	var fm FrontMatter
	if len(fmRaw) > 0 {
		if err := yaml.Unmarshal(fmRaw, &fm); err != nil {
			return views.Post{}, false, fmt.Errorf("front matter: %w", err)
		}
	}
	if strings.TrimSpace(fm.Title) == "" {
		return views.Post{}, false, errors.New("front matter: title is required")
	}
	date, err := parseDate(fm.Date)
	if err != nil {
		return views.Post{}, false, err
	}

	slug := fm.Slug
	if slug == "" {
		slug = Slugify(name)
	}
	if slug == "" {
		slug = Slugify(fm.Title)
	}

	doc := markdown.Parser().Parse(text.NewReader(body))
	var html bytes.Buffer
	if err := markdown.Renderer().Render(&html, body, doc); err != nil {
		return views.Post{}, false, fmt.Errorf("render markdown: %w", err)
	}

	summary := strings.TrimSpace(fm.Summary)
	if summary == "" {
		summary = firstParagraph(doc, body)
	}

	return views.Post{
		Slug:        slug,
		Title:       strings.TrimSpace(fm.Title),
		Date:        date,
		Tags:        cleanTags(fm.Tags),
		Summary:     summary,
		HTML:        html.String(),
		ReadingTime: ReadingTime(body),
		Link:        "/blog/" + slug + "/",
	}, fm.Draft, nil
}

// ReadingTime estimates minutes to read body at WordsPerMinute.
func ReadingTime(body []byte) float64 {
	return float64(len(bytes.Fields(body))) / WordsPerMinute
}

// splitFrontMatter separates a leading --- delimited YAML block from the
// markdown body. Documents without one are returned whole.
func splitFrontMatter(src []byte) (fm, body []byte, err error) {
	nl := "\n"
	if bytes.HasPrefix(src, []byte("---\r\n")) {
		nl = "\r\n"
	}
	open := []byte("---" + nl)
	if !bytes.HasPrefix(src, open) {
		return nil, src, nil
	}
	start := len(open)
	if bytes.HasPrefix(src[start:], open) {
		return nil, src[start+len(open):], nil
	}
	closeSeq := []byte(nl + "---" + nl)
	if idx := bytes.Index(src[start:], closeSeq); idx >= 0 {
		return src[start : start+idx+len(nl)], src[start+idx+len(closeSeq):], nil
	}
	if bytes.HasSuffix(src[start:], []byte(nl+"---")) {
		return src[start : len(src)-len("---")], nil, nil
	}
	return nil, nil, ErrMissingClosingDelimiter
}

func parseDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errors.New("front matter: date is required")
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("front matter: invalid date %q", s)
}

func cleanTags(tags []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, t := range tags {
		tag := normalizeTag(t)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

func firstParagraph(doc gmast.Node, src []byte) string {
	var b strings.Builder
	_ = gmast.Walk(doc, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering || n.Kind() != gmast.KindParagraph {
			return gmast.WalkContinue, nil
		}
		_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
			if t, ok := c.(*gmast.Text); ok && entering {
				b.Write(t.Segment.Value(src))
				if t.SoftLineBreak() {
					b.WriteByte(' ')
				}
			}
			return gmast.WalkContinue, nil
		})
		return gmast.WalkStop, nil
	})
	return strings.TrimSpace(b.String())
}
