package devopsdecoded

import (
	"errors"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/arunsisodiya/devopsdecoded/views"
)

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = errors.New("not found")

// Catalog is the in-memory set of published posts loaded from a content
// directory. Readers always see a complete snapshot; Reload swaps in a new
// one atomically.
type Catalog struct {
	dir  string
	snap atomic.Pointer[catalogSnapshot]
}

type catalogSnapshot struct {
	posts  []views.Post
	bySlug map[string]int
	tags   []views.TagCount
	loaded time.Time
}

// NewCatalog creates an empty Catalog reading from dir.
func NewCatalog(dir string) *Catalog {
	c := &Catalog{dir: dir}
	c.snap.Store(newSnapshot(nil))
	return c
}

// Reload reads every post from the content directory. On error the previous
// snapshot stays in place.
func (c *Catalog) Reload() error {
	posts, err := LoadPosts(c.dir)
	if err != nil {
		return err
	}
	c.Replace(posts)
	return nil
}

// Replace swaps in posts as the catalog contents. Posts are ordered newest
// first.
func (c *Catalog) Replace(posts []views.Post) {
	c.snap.Store(newSnapshot(posts))
}

// LoadedAt reports when the current snapshot was built.
func (c *Catalog) LoadedAt() time.Time {
	return c.snap.Load().loaded
}

func newSnapshot(posts []views.Post) *catalogSnapshot {
	sorted := make([]views.Post, len(posts))
	copy(sorted, posts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date > sorted[j].Date
	})

	s := &catalogSnapshot{
		posts:  sorted,
		bySlug: make(map[string]int, len(sorted)),
		loaded: time.Now(),
	}
	counts := make(map[string]int)
	for i, p := range sorted {
		s.bySlug[p.Slug] = i
		seen := make(map[string]bool)
		for _, t := range p.Tags {
			tag := normalizeTag(t)
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			counts[tag]++
		}
	}
	for tag, n := range counts {
		s.tags = append(s.tags, views.TagCount{Tag: tag, Count: n})
	}
	sort.Slice(s.tags, func(i, j int) bool {
		if s.tags[i].Count != s.tags[j].Count {
			return s.tags[i].Count > s.tags[j].Count
		}
		return s.tags[i].Tag < s.tags[j].Tag
	})
	return s
}

// ListPosts returns published posts, optionally filtered by tag.
func (c *Catalog) ListPosts(tag string) []views.Post {
	posts := c.snap.Load().posts
	if tag == "" {
		return posts
	}
	normalized := normalizeTag(tag)
	var filtered []views.Post
	for _, p := range posts {
		for _, t := range p.Tags {
			if normalizeTag(t) == normalized {
				filtered = append(filtered, p)
				break
			}
		}
	}
	return filtered
}

// ListTags returns every tag with its post count, most used first.
func (c *Catalog) ListTags() []views.TagCount {
	return c.snap.Load().tags
}

// GetPost returns a single published post by slug.
func (c *Catalog) GetPost(slug string) (views.Post, error) {
	s := c.snap.Load()
	i, ok := s.bySlug[slug]
	if !ok {
		return views.Post{}, ErrNotFound
	}
	return s.posts[i], nil
}

func normalizeTag(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}
