// Package site holds the static metadata of the blog: the site configuration
// record, the popular tag registry and the homepage content.
//
// The configuration is a plain value with no maps or slices, so every copy
// handed out by Current is independent of the process-wide record.
package site

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config is the site-wide metadata read by pages and provider integrations.
type Config struct {
	Title        string `yaml:"title"`
	Author       string `yaml:"author"`
	FullName     string `yaml:"fullName"`
	HeaderTitle  string `yaml:"headerTitle"`
	Description  string `yaml:"description"`
	Language     string `yaml:"language"`
	Theme        string `yaml:"theme"` // system, dark or light
	SiteURL      string `yaml:"siteUrl"`
	SiteRepo     string `yaml:"siteRepo"`
	SiteLogo     string `yaml:"siteLogo"`
	SocialBanner string `yaml:"socialBanner"`
	Image        string `yaml:"image"`
	Email        string `yaml:"email"`
	GitHub       string `yaml:"github"`
	Facebook     string `yaml:"facebook"`
	LinkedIn     string `yaml:"linkedin"`
	Twitter      string `yaml:"twitter"`
	YouTube      string `yaml:"youtube"`
	Locale       string `yaml:"locale"`

	SocialAccounts SocialAccounts `yaml:"socialAccounts"`
	Analytics      Analytics      `yaml:"analytics"`
	Newsletter     Newsletter     `yaml:"newsletter"`
	Comments       Comments       `yaml:"comments"`
}

// SocialAccounts are bare account handles, as opposed to the profile URLs.
type SocialAccounts struct {
	GitHub   string `yaml:"github"`
	LinkedIn string `yaml:"linkedin"`
	Facebook string `yaml:"facebook"`
}

// Analytics configures the Umami tracking script.
type Analytics struct {
	UmamiWebsiteID string `yaml:"umamiWebsiteId"`
}

// Newsletter names the newsletter provider (e.g. "buttondown") and the list
// subscribers are added to.
type Newsletter struct {
	Provider string `yaml:"provider"`
	List     string `yaml:"list"`
}

// Comments configures the comment provider.
type Comments struct {
	Provider string `yaml:"provider"`
	Giscus   Giscus `yaml:"giscusConfig"`
}

// Giscus holds the giscus widget settings. The repository and category
// identifiers are opaque values taken from the environment.
type Giscus struct {
	Repo          string `yaml:"repo" env:"GISCUS_REPO"`
	RepositoryID  string `yaml:"repositoryId" env:"GISCUS_REPOSITORY_ID"`
	Category      string `yaml:"category" env:"GISCUS_CATEGORY"`
	CategoryID    string `yaml:"categoryId" env:"GISCUS_CATEGORY_ID"`
	Mapping       string `yaml:"mapping"`
	Reactions     string `yaml:"reactions"`
	Metadata      string `yaml:"metadata"`
	Theme         string `yaml:"theme"`
	DarkTheme     string `yaml:"darkTheme"`
	ThemeURL      string `yaml:"themeURL"`
	Lang          string `yaml:"lang"`
	InputPosition string `yaml:"inputPosition"`
}

// Configured reports whether enough is known to embed the widget.
func (g Giscus) Configured() bool {
	return g.Repo != "" && g.RepositoryID != "" && g.CategoryID != ""
}

// Default returns the built-in site metadata.
func Default() Config {
	return Config{
		Title:        "Deep dive into the world of DevOps",
		Author:       "Arun Sisodiya",
		FullName:     "Arun Singh Sisodiya",
		HeaderTitle:  "Devops Decoded",
		Description:  "I am driven by the desire to hone my skills and disseminate the knowledge I've acquired. 🌟",
		Language:     "en-us",
		Theme:        "system",
		SiteURL:      "https://devopsdecoded.cloud",
		SiteRepo:     "https://github.com/arunsisodiya/devopsdecoded",
		SiteLogo:     "/public/images/avatar.jpg",
		Image:        "/public/images/avatar.jpg",
		Email:        "btrack44@gmail.com",
		GitHub:       "https://github.com/arunsisodiya",
		Facebook:     "https://www.facebook.com/devopsdecoded",
		LinkedIn:     "https://www.linkedin.com/in/arunsinghsisodiya/",
		Twitter:      "https://x.com/devopsdecoded",
		YouTube:      "https://youtube.com/devopsdecoded",
		Locale:       "en-US",
		SocialAccounts: SocialAccounts{
			GitHub:   "arunsisodiya",
			LinkedIn: "arunsinghsisodiya",
			Facebook: "devopsdecoded",
		},
		Analytics: Analytics{
			UmamiWebsiteID: "7b7953a7-de2e-4e30-9a29-1a4aee05c627",
		},
		Newsletter: Newsletter{
			Provider: "buttondown",
			List:     "devopsdecoded",
		},
		Comments: Comments{
			Provider: "giscus",
			Giscus: Giscus{
				Mapping:       "title",
				Reactions:     "1",
				Metadata:      "0",
				Theme:         "light",
				DarkTheme:     "transparent_dark",
				Lang:          "en",
				InputPosition: "top",
			},
		},
	}
}

// Load builds a Config from the defaults, the optional YAML file at path and
// the giscus variables found in environ. A nil environ reads the process
// environment. Both GISCUS_* and NEXT_PUBLIC_GISCUS_* names are accepted; the
// unprefixed name wins when both are set.
func Load(path string, environ map[string]string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read site config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse site config %s: %w", path, err)
		}
	}
	if environ == nil {
		environ = env.ToMap(os.Environ())
	}
	for _, prefix := range []string{"NEXT_PUBLIC_", ""} {
		opts := env.Options{Environment: environ, Prefix: prefix}
		if err := env.ParseWithOptions(&cfg.Comments.Giscus, opts); err != nil {
			return Config{}, fmt.Errorf("parse giscus env: %w", err)
		}
	}
	return cfg, nil
}

// ErrAlreadyInitialized is returned by Init once the process-wide record exists.
var ErrAlreadyInitialized = errors.New("site: config already initialized")

var current struct {
	once sync.Once
	cfg  Config
}

// Init installs cfg as the process-wide configuration. It succeeds at most
// once per process, and never after Current has been called.
func Init(cfg Config) error {
	applied := false
	current.once.Do(func() {
		current.cfg = cfg
		applied = true
	})
	if !applied {
		return ErrAlreadyInitialized
	}
	return nil
}

// Current returns the process-wide configuration. If Init was never called it
// is fixed to the defaults plus the environment on first use.
func Current() Config {
	current.once.Do(func() {
		cfg, err := Load("", nil)
		if err != nil {
			cfg = Default()
		}
		current.cfg = cfg
	})
	return current.cfg
}
