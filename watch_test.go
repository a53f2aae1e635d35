package devopsdecoded

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func init() {
	contentDebounce = 50 * time.Millisecond
}

func TestContentWatcherReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	reloads := make(chan struct{}, 10)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w, err := WatchContent(ctx, dir, func() error {
		reloads <- struct{}{}
		return nil
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("WatchContent() error = %v", err)
	}
	defer w.Close()

	writePost(t, dir, "new.md", "---\ntitle: New\ndate: 2024-01-01\n---\nbody\n")
	select {
	case <-reloads:
	case <-time.After(3 * time.Second):
		t.Fatalf("no reload after writing a post")
	}
}

func TestContentWatcherReloadsOnRemovedDirectory(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "series/part-one.md", "---\ntitle: Part one\ndate: 2024-01-01\n---\nbody\n")
	reloads := make(chan struct{}, 10)
	w, err := WatchContent(context.Background(), dir, func() error {
		reloads <- struct{}{}
		return nil
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("WatchContent() error = %v", err)
	}
	defer w.Close()

	if err := os.Rename(filepath.Join(dir, "series"), filepath.Join(t.TempDir(), "series")); err != nil {
		t.Fatalf("move directory: %v", err)
	}
	select {
	case <-reloads:
	case <-time.After(3 * time.Second):
		t.Fatalf("no reload after moving a directory away")
	}
}

func TestContentWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	reloads := make(chan struct{}, 10)
	w, err := WatchContent(context.Background(), dir, func() error {
		reloads <- struct{}{}
		return nil
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("WatchContent() error = %v", err)
	}
	defer w.Close()

	writePost(t, dir, "notes.txt", "x")
	select {
	case <-reloads:
		t.Fatalf("reload triggered by a non-markdown file")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatchContentMissingDir(t *testing.T) {
	_, err := WatchContent(context.Background(), t.TempDir()+"/missing", func() error { return nil },
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err == nil {
		t.Fatalf("expected error for missing directory")
	}
}
