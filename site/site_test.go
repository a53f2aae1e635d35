package site

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPopularTagsUniqueSlugs(t *testing.T) {
	seen := make(map[string]bool)
	for _, tag := range PopularTags() {
		if seen[tag.Slug] {
			t.Fatalf("duplicate slug %q", tag.Slug)
		}
		seen[tag.Slug] = true
	}
}

func TestPopularTagsHrefMatchesSlug(t *testing.T) {
	for _, tag := range PopularTags() {
		if tag.Href != "/tags/"+tag.Slug {
			t.Errorf("tag %q href = %q, want %q", tag.Slug, tag.Href, "/tags/"+tag.Slug)
		}
	}
}

func TestPopularTagsReturnsCopy(t *testing.T) {
	tags := PopularTags()
	tags[0].Slug = "mutated"
	if got := PopularTags()[0].Slug; got != "kubernetes" {
		t.Fatalf("registry mutated through returned slice: %q", got)
	}
}

func TestTagBySlug(t *testing.T) {
	tag, ok := TagBySlug("aws")
	if !ok || tag.Title != "AWS" {
		t.Fatalf("TagBySlug(aws) = %+v, %v", tag, ok)
	}
	if _, ok := TagBySlug("cobol"); ok {
		t.Fatal("expected unknown slug to miss")
	}
}

func TestLoadReadsGiscusEnv(t *testing.T) {
	cfg, err := Load("", map[string]string{
		"NEXT_PUBLIC_GISCUS_REPO":          "old/repo",
		"GISCUS_REPO":                      "arunsisodiya/devopsdecoded",
		"NEXT_PUBLIC_GISCUS_REPOSITORY_ID": "R_123",
		"GISCUS_CATEGORY":                  "Announcements",
		"GISCUS_CATEGORY_ID":               "DIC_456",
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	g := cfg.Comments.Giscus
	if g.Repo != "arunsisodiya/devopsdecoded" {
		t.Errorf("Repo = %q, want unprefixed value", g.Repo)
	}
	if g.RepositoryID != "R_123" {
		t.Errorf("RepositoryID = %q", g.RepositoryID)
	}
	if g.Category != "Announcements" || g.CategoryID != "DIC_456" {
		t.Errorf("category = %q/%q", g.Category, g.CategoryID)
	}
	if g.Mapping != "title" {
		t.Errorf("Mapping = %q, want default kept", g.Mapping)
	}
	if !g.Configured() {
		t.Error("expected giscus to be configured")
	}
}

func TestLoadWithoutGiscusEnv(t *testing.T) {
	cfg, err := Load("", map[string]string{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Comments.Giscus.Configured() {
		t.Fatal("giscus should not be configured without env")
	}
	if cfg != Default() {
		t.Fatal("expected defaults when nothing is overridden")
	}
}

func TestLoadYAMLOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	data := "title: Another Title\nanalytics:\n  umamiWebsiteId: abc\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path, map[string]string{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Title != "Another Title" {
		t.Errorf("Title = %q", cfg.Title)
	}
	if cfg.Analytics.UmamiWebsiteID != "abc" {
		t.Errorf("UmamiWebsiteID = %q", cfg.Analytics.UmamiWebsiteID)
	}
	if cfg.Author != "Arun Sisodiya" {
		t.Errorf("Author = %q, want default kept", cfg.Author)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	if err == nil || !strings.Contains(err.Error(), "read site config") {
		t.Fatalf("expected read error, got %v", err)
	}
}

func TestCurrentIsStable(t *testing.T) {
	first := Current()
	second := Current()
	if first != second {
		t.Fatal("Current returned different values")
	}
	if err := Init(Config{Title: "late"}); err != ErrAlreadyInitialized {
		t.Fatalf("Init after Current = %v, want ErrAlreadyInitialized", err)
	}
	if Current().Title == "late" {
		t.Fatal("config changed after first read")
	}

	mutated := Current()
	mutated.Title = "changed"
	if Current().Title == "changed" {
		t.Fatal("mutating a copy changed the process config")
	}
}

func TestHomeLinksUseEmail(t *testing.T) {
	cfg := Default()
	cfg.Email = "me@example.com"
	links := HomeLinks(cfg)
	last := links[1][len(links[1])-1]
	if last.Href != "mailto:me@example.com" {
		t.Fatalf("contact href = %q", last.Href)
	}
}
