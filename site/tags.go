package site

// BrandIcon selects the brand glyph shown next to a popular tag.
type BrandIcon string

const (
	IconKubernetes BrandIcon = "Kubernetes"
	IconDocker     BrandIcon = "Docker"
	IconTypescript BrandIcon = "Typescript"
	IconNestJS     BrandIcon = "NestJS"
	IconReact      BrandIcon = "React"
)

// Tag is an entry of the popular tag registry. Slug doubles as the URL path
// segment under /tags/ and as the lookup key.
type Tag struct {
	Href     string
	IconType BrandIcon
	Slug     string
	Title    string
}

var popularTags = [...]Tag{
	{Href: "/tags/kubernetes", IconType: IconKubernetes, Slug: "kubernetes", Title: "Kubernetes"},
	{Href: "/tags/devops", IconType: IconDocker, Slug: "devops", Title: "Devops"},
	{Href: "/tags/aws", IconType: IconDocker, Slug: "aws", Title: "AWS"},
	{Href: "/tags/terraform", IconType: IconTypescript, Slug: "terraform", Title: "Terraform"},
	{Href: "/tags/security", IconType: IconNestJS, Slug: "security", Title: "Security"},
	{Href: "/tags/finops", IconType: IconReact, Slug: "finops", Title: "Finops"},
}

// PopularTags returns the registry in display order. The slice is a copy.
func PopularTags() []Tag {
	out := make([]Tag, len(popularTags))
	copy(out, popularTags[:])
	return out
}

// TagBySlug looks up a registry entry.
func TagBySlug(slug string) (Tag, bool) {
	for _, t := range popularTags {
		if t.Slug == slug {
			return t, true
		}
	}
	return Tag{}, false
}
