package views

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"github.com/arunsisodiya/devopsdecoded/site"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var b strings.Builder
	if err := c.Render(context.Background(), &b); err != nil {
		t.Fatalf("Render() = %v", err)
	}
	return b.String()
}

type fakeCounter struct {
	views map[string]int64
	err   error
	calls []string
}

func (f *fakeCounter) Views(_ context.Context, slug string) (int64, error) {
	f.calls = append(f.calls, slug)
	if f.err != nil {
		return 0, f.err
	}
	return f.views[slug], nil
}

func TestKebabCase(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"waving hand", "waving-hand"},
		{"wavingHand", "waving-hand"},
		{"WavingHand", "waving-hand"},
		{"waving_hand", "waving-hand"},
		{"--waving--hand--", "waving-hand"},
		{"face-with-monocle", "face-with-monocle"},
		{"XMLHttpRequest", "xml-http-request"},
		{"hourglass2", "hourglass-2"},
		{"1st-place-medal", "1st-place-medal"},
		{"2nd place medal", "2nd-place-medal"},
		{"3rdPlaceMedal", "3rd-place-medal"},
		{"4th", "4th"},
		{"11th", "11-th"},
		{"1stplace", "1-stplace"},
		{"man's shoe", "mans-shoe"},
		{"woman’s hat", "womans-hat"},
		{"piñata", "pinata"},
		{"Crème brûlée", "creme-brulee"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := KebabCase(tt.in); got != tt.want {
			t.Errorf("KebabCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEmojiClassName(t *testing.T) {
	got := Emoji("wavingHand").ClassName()
	want := "inline-block twa twa-sg twa-waving-hand"
	if got != want {
		t.Fatalf("ClassName = %q, want %q", got, want)
	}
}

func TestEmojiSizeOnlyChangesSizeSegment(t *testing.T) {
	small := strings.Fields(EmojiReference{Name: "dog", Size: "twa-sm"}.ClassName())
	large := strings.Fields(EmojiReference{Name: "dog", Size: "twa-lg"}.ClassName())
	if len(small) != len(large) {
		t.Fatalf("segment count differs: %v vs %v", small, large)
	}
	diff := 0
	for i := range small {
		if small[i] != large[i] {
			diff++
			if small[i] != "twa-sm" || large[i] != "twa-lg" {
				t.Fatalf("unexpected differing segment %q vs %q", small[i], large[i])
			}
		}
	}
	if diff != 1 {
		t.Fatalf("differing segments = %d, want 1", diff)
	}
}

func TestEmojiEmptySizeAndExtraClass(t *testing.T) {
	got := EmojiReference{Name: "eye", Class: " ml-1 "}.ClassName()
	if got != "inline-block twa twa-eye ml-1" {
		t.Fatalf("ClassName = %q", got)
	}
}

func TestTwemojiRendersEmptyElement(t *testing.T) {
	got := render(t, Twemoji("not a real glyph"))
	want := `<i class="inline-block twa twa-sg twa-not-a-real-glyph"></i>`
	if got != want {
		t.Fatalf("Twemoji = %q, want %q", got, want)
	}
}

func TestExpandEmoji(t *testing.T) {
	got := ExpandEmoji("I'm a dog-person :dog:. 10:30 stays")
	if !strings.Contains(got, `<i class="inline-block twa twa-sg twa-dog"></i>.`) {
		t.Fatalf("shortcode not expanded: %q", got)
	}
	if !strings.Contains(got, "10:30 stays") {
		t.Fatalf("non-shortcode text changed: %q", got)
	}

	got = ExpandEmoji("deploys at 10:30:45 then :1st-place-medal:")
	if !strings.Contains(got, "10:30:45 then ") {
		t.Fatalf("clock time rewritten: %q", got)
	}
	if !strings.Contains(got, "twa-1st-place-medal") {
		t.Fatalf("ordinal shortcode not expanded: %q", got)
	}
}

func TestReadingMinutes(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{0.1, 1},
		{2.0, 2},
		{2.1, 3},
		{-1, 0},
	}
	for _, tt := range tests {
		if got := ReadingMinutes(tt.in); got != tt.want {
			t.Errorf("ReadingMinutes(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestBlogMetaRendersReadingTimeAndViews(t *testing.T) {
	counter := &fakeCounter{views: map[string]int64{"k8s": 1234}}
	got := render(t, BlogMeta(ContentMeta{Slug: "k8s", ReadingTime: 2.1}, counter))
	if !strings.Contains(got, "3 mins read") {
		t.Errorf("missing reading time: %q", got)
	}
	if !strings.Contains(got, "1,234 views") {
		t.Errorf("missing view count: %q", got)
	}
	if !strings.Contains(got, "twa-hourglass-not-done") || !strings.Contains(got, "twa-eye") {
		t.Errorf("missing glyphs: %q", got)
	}
	if len(counter.calls) != 1 || counter.calls[0] != "k8s" {
		t.Errorf("counter calls = %v", counter.calls)
	}
}

func TestBlogMetaWholeMinutes(t *testing.T) {
	got := render(t, BlogMeta(ContentMeta{Slug: "x", ReadingTime: 2.0}, &fakeCounter{}))
	if !strings.Contains(got, "2 mins read") {
		t.Fatalf("got %q", got)
	}
	if !strings.Contains(got, "0 views") {
		t.Fatalf("expected zero views: %q", got)
	}
}

func TestBlogMetaCounterFailure(t *testing.T) {
	got := render(t, BlogMeta(ContentMeta{Slug: "x", ReadingTime: 1}, &fakeCounter{err: errors.New("down")}))
	if !strings.Contains(got, `data-views-slug="x">–</span>`) {
		t.Fatalf("expected placeholder, got %q", got)
	}
	got = render(t, BlogMeta(ContentMeta{Slug: "x", ReadingTime: 1}, nil))
	if !strings.Contains(got, "–") {
		t.Fatalf("expected placeholder for nil counter, got %q", got)
	}
}

func TestFormatViews(t *testing.T) {
	if got := FormatViews(1); got != "1 view" {
		t.Errorf("FormatViews(1) = %q", got)
	}
	if got := FormatViews(1000000); got != "1,000,000 views" {
		t.Errorf("FormatViews(1e6) = %q", got)
	}
}

func TestLinkExternalOpensNewTab(t *testing.T) {
	got := render(t, Link("https://github.com/arunsisodiya", "x", Text("GitHub")))
	if !strings.Contains(got, `target="_blank" rel="noopener noreferrer"`) {
		t.Fatalf("external link missing target: %q", got)
	}
	for _, href := range []string{"/blog/", "#top", "mailto:me@example.com"} {
		if got := render(t, Link(href, "", Text("x"))); strings.Contains(got, "_blank") {
			t.Errorf("link %q should stay in tab: %q", href, got)
		}
	}
}

func TestLinkEscapesText(t *testing.T) {
	got := render(t, Link("/a?b=1&c=2", "", Text("<b>")))
	if got != `<a href="/a?b=1&amp;c=2">&lt;b&gt;</a>` {
		t.Fatalf("Link = %q", got)
	}
}

func TestBlogLinksUmamiEvents(t *testing.T) {
	got := render(t, BlogLinks(site.HomeLinks(site.Default())))
	for _, want := range []string{
		`data-umami-event="home-link-blog"`,
		`href="mailto:btrack44@gmail.com"`,
		"twa-face-with-monocle",
		"More about me and myself",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("BlogLinks missing %q", want)
		}
	}
}

func TestGreeting(t *testing.T) {
	got := render(t, Greeting())
	if !strings.Contains(got, "Hello, DevOps enthusiasts!") || !strings.Contains(got, "twa-waving-hand") {
		t.Fatalf("Greeting = %q", got)
	}
}

func TestTypedBios(t *testing.T) {
	got := render(t, TypedBios(site.Bios()))
	if strings.Count(got, "<li>") != len(site.Bios()) {
		t.Errorf("expected one <li> per bio: %q", got)
	}
	if !strings.Contains(got, `id="bios" class="hidden"`) {
		t.Errorf("missing hidden list: %q", got)
	}
	if !strings.Contains(got, "twa-musical-keyboard") {
		t.Errorf("shortcodes not expanded: %q", got)
	}
	if !strings.Contains(got, `data-stream="/api/bios/stream"`) {
		t.Errorf("missing stream target: %q", got)
	}
}

func TestCommentsRequiresConfiguration(t *testing.T) {
	c := site.Default().Comments
	if got := render(t, Comments(c, false)); got != "" {
		t.Fatalf("expected nothing without giscus ids, got %q", got)
	}
	c.Giscus.Repo = "a/b"
	c.Giscus.RepositoryID = "R_1"
	c.Giscus.CategoryID = "C_1"
	light := render(t, Comments(c, false))
	if !strings.Contains(light, `data-theme="light"`) || !strings.Contains(light, `data-repo="a/b"`) {
		t.Fatalf("light comments = %q", light)
	}
	dark := render(t, Comments(c, true))
	if !strings.Contains(dark, `data-theme="transparent_dark"`) {
		t.Fatalf("dark comments = %q", dark)
	}
}

func TestUmamiScript(t *testing.T) {
	if got := render(t, UmamiScript(site.Analytics{})); got != "" {
		t.Fatalf("expected no script, got %q", got)
	}
	got := render(t, UmamiScript(site.Analytics{UmamiWebsiteID: "abc"}))
	if !strings.Contains(got, `data-website-id="abc"`) {
		t.Fatalf("UmamiScript = %q", got)
	}
}

func TestLayoutHead(t *testing.T) {
	ch := Chrome{
		Site: site.Default(),
		Meta: PageMeta{Title: "Tags", URL: "https://devopsdecoded.cloud/tags/"},
		Dark: true,
	}
	got := render(t, Layout(ch, "", Text("body")))
	for _, want := range []string{
		"<title>Tags | Devops Decoded</title>",
		`<html lang="en-us" class="dark">`,
		`<link rel="canonical" href="https://devopsdecoded.cloud/tags/"/>`,
		`"@type":"WebSite"`,
		"cloud.umami.is/script.js",
		`<script defer src="` + HTMXScriptURL + `"></script>`,
		"embed-subscribe/devopsdecoded",
		`value="light"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("layout missing %q", want)
		}
	}
}

func TestPostPage(t *testing.T) {
	post := Post{
		Slug:        "terraform-state",
		Title:       "Terraform state",
		Date:        "2024-02-01",
		Tags:        []string{"terraform"},
		HTML:        "<p>Body</p>",
		ReadingTime: 4.2,
		Link:        "/blog/terraform-state/",
	}
	related := []Post{{Title: "Modules", Link: "/blog/modules/"}}
	got := render(t, PostPage(Chrome{Site: site.Default()}, post, related, &fakeCounter{}))
	for _, want := range []string{
		"<p>Body</p>",
		"5 mins read",
		`"@type":"BlogPosting"`,
		`href="/tags/terraform/"`,
		"Related posts",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("post page missing %q", want)
		}
	}
}

func TestFilterRelatedPosts(t *testing.T) {
	current := Post{Slug: "a", Tags: []string{"AWS"}}
	posts := []Post{
		current,
		{Slug: "b", Tags: []string{"aws"}},
		{Slug: "c", Tags: []string{"gcp"}},
	}
	got := FilterRelatedPosts(current, posts)
	if len(got) != 1 || got[0].Slug != "b" {
		t.Fatalf("related = %+v", got)
	}
}
