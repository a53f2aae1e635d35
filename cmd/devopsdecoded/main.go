package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/arunsisodiya/devopsdecoded"
	"github.com/arunsisodiya/devopsdecoded/site"
)

// version is set at build time via ldflags.
var version = "dev"

var CLI struct {
	SiteConfig string `short:"s" help:"Site metadata overrides (YAML)" default:"site.yaml" type:"path"`
	EnvFile    string `help:"Dotenv file loaded before reading the environment" default:".env"`
	Verbose    bool   `short:"v" help:"Enable verbose logging"`

	Serve struct{} `cmd:"" default:"1" help:"Serve the site"`

	Config struct{} `cmd:"" help:"Print the resolved site metadata"`

	Tags struct{} `cmd:"" help:"List the popular tags shown on the homepage"`

	Version struct{} `cmd:"" help:"Print the version"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("devopsdecoded"),
		kong.Description("Blog and portfolio server for devopsdecoded.cloud"),
	)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(CLI.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("Failed to load env file", "path", CLI.EnvFile, "error", err)
		os.Exit(1)
	}

	switch ctx.Command() {
	case "serve":
		if err := runServe(logger); err != nil {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	case "config":
		cfg, err := loadSite()
		if err != nil {
			slog.Error("Failed to load site config", "error", err)
			os.Exit(1)
		}
		out, err := yaml.Marshal(cfg)
		if err != nil {
			slog.Error("Failed to encode site config", "error", err)
			os.Exit(1)
		}
		os.Stdout.Write(out)
	case "tags":
		for _, t := range site.PopularTags() {
			fmt.Printf("%-12s %-12s %s\n", t.Slug, t.Title, t.Href)
		}
	case "version":
		fmt.Printf("devopsdecoded %s\n", version)
	}
}

func loadSite() (site.Config, error) {
	path := CLI.SiteConfig
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		path = ""
	}
	return site.Load(path, nil)
}

func runServe(logger *slog.Logger) error {
	siteCfg, err := loadSite()
	if err != nil {
		return err
	}
	if err := site.Init(siteCfg); err != nil {
		return err
	}
	cfg, err := devopsdecoded.LoadServerConfig(nil)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := devopsdecoded.New(cfg, site.Current(), devopsdecoded.WithLogger(logger))
	defer app.Close()
	return app.Start(ctx)
}
