package devopsdecoded

import (
	"errors"
	"testing"

	"github.com/arunsisodiya/devopsdecoded/views"
)

func TestCatalogOrdersAndFilters(t *testing.T) {
	c := NewCatalog("")
	c.Replace([]views.Post{
		{Slug: "old", Date: "2023-01-01", Tags: []string{"aws"}},
		{Slug: "new", Date: "2024-06-01", Tags: []string{"AWS", "terraform"}},
		{Slug: "mid", Date: "2024-01-01", Tags: []string{"kubernetes"}},
	})

	all := c.ListPosts("")
	if len(all) != 3 || all[0].Slug != "new" || all[2].Slug != "old" {
		t.Fatalf("ListPosts order = %v", slugs(all))
	}

	aws := c.ListPosts(" aws ")
	if len(aws) != 2 || aws[0].Slug != "new" || aws[1].Slug != "old" {
		t.Fatalf("ListPosts(aws) = %v", slugs(aws))
	}

	tags := c.ListTags()
	if len(tags) != 3 || tags[0] != (views.TagCount{Tag: "aws", Count: 2}) {
		t.Fatalf("ListTags = %+v", tags)
	}
	if tags[1].Tag != "kubernetes" || tags[2].Tag != "terraform" {
		t.Fatalf("ties should sort by name: %+v", tags)
	}
}

func TestCatalogGetPost(t *testing.T) {
	c := NewCatalog("")
	c.Replace([]views.Post{{Slug: "a", Title: "A", Date: "2024-01-01"}})

	p, err := c.GetPost("a")
	if err != nil || p.Title != "A" {
		t.Fatalf("GetPost(a) = %+v, %v", p, err)
	}
	if _, err := c.GetPost("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetPost(missing) err = %v, want ErrNotFound", err)
	}
}

func TestCatalogReloadKeepsSnapshotOnError(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "good.md", "---\ntitle: Good\ndate: 2024-01-01\n---\nok\n")

	c := NewCatalog(dir)
	if err := c.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if len(c.ListPosts("")) != 1 {
		t.Fatalf("expected one post")
	}

	writePost(t, dir, "broken.md", "---\ntitle: Broken\n")
	if err := c.Reload(); err == nil {
		t.Fatalf("expected reload error")
	}
	if _, err := c.GetPost("good"); err != nil {
		t.Fatalf("previous snapshot lost: %v", err)
	}
}

func TestCatalogReplaceDoesNotAliasInput(t *testing.T) {
	posts := []views.Post{{Slug: "b", Date: "2024-01-01"}, {Slug: "a", Date: "2024-02-01"}}
	c := NewCatalog("")
	c.Replace(posts)
	if posts[0].Slug != "b" {
		t.Fatalf("input slice was reordered")
	}
}

func slugs(posts []views.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.Slug
	}
	return out
}
