package devopsdecoded

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// contentDebounce is how long the watcher waits for events to settle.
var contentDebounce = 500 * time.Millisecond

// ContentWatcher reloads the catalog when markdown files under the content
// directory change. Bursts of events collapse into one reload.
type ContentWatcher struct {
	dir      string
	reload   func() error
	log      *slog.Logger
	watcher  *fsnotify.Watcher
	dirs     map[string]bool // watched directories, touched only by addTree and watchLoop
	debounce time.Duration
	trigger  chan struct{}
	stop     chan struct{}
	once     sync.Once
	wg       sync.WaitGroup
}

// WatchContent starts watching dir (and its subdirectories) until ctx is done
// or Close is called.
func WatchContent(ctx context.Context, dir string, reload func() error, log *slog.Logger) (*ContentWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	cw := &ContentWatcher{
		dir:      dir,
		reload:   reload,
		log:      log,
		watcher:  w,
		dirs:     make(map[string]bool),
		debounce: contentDebounce,
		trigger:  make(chan struct{}, 1),
		stop:     make(chan struct{}),
	}
	if err := cw.addTree(dir); err != nil {
		w.Close()
		return nil, err
	}
	log.Info("watching content", "dir", dir)

	cw.wg.Add(2)
	go cw.watchLoop(ctx)
	go cw.reloadLoop(ctx)
	return cw, nil
}

func (cw *ContentWatcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if err := cw.watcher.Add(path); err != nil {
				return fmt.Errorf("watch %s: %w", path, err)
			}
			cw.dirs[path] = true
		}
		return nil
	})
}

// forgetTree drops root and everything below it from the watched set. It
// reports whether root was a watched directory.
func (cw *ContentWatcher) forgetTree(root string) bool {
	if !cw.dirs[root] {
		return false
	}
	prefix := root + string(filepath.Separator)
	for dir := range cw.dirs {
		if dir == root || strings.HasPrefix(dir, prefix) {
			delete(cw.dirs, dir)
		}
	}
	return true
}

func (cw *ContentWatcher) watchLoop(ctx context.Context) {
	defer cw.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-cw.stop:
			return
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename) {
				if cw.forgetTree(event.Name) {
					cw.log.Debug("content directory removed", "dir", event.Name)
					cw.triggerReload()
					continue
				}
			}
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := cw.addTree(event.Name); err != nil {
						cw.log.Warn("watch new directory", "dir", event.Name, "error", err)
					}
					cw.triggerReload()
					continue
				}
			}
			if !strings.HasSuffix(event.Name, ".md") || event.Op == fsnotify.Chmod {
				continue
			}
			cw.log.Debug("content change", "file", event.Name, "op", event.Op.String())
			cw.triggerReload()
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.log.Error("content watcher error", "error", err)
		}
	}
}

func (cw *ContentWatcher) reloadLoop(ctx context.Context) {
	defer cw.wg.Done()
	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case <-cw.stop:
			if timer != nil {
				timer.Stop()
			}
			return
		case <-cw.trigger:
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(cw.debounce)
			fire = timer.C
		case <-fire:
			fire = nil
			if err := cw.reload(); err == nil {
				cw.log.Info("content reloaded", "dir", cw.dir)
			}
		}
	}
}

func (cw *ContentWatcher) triggerReload() {
	select {
	case cw.trigger <- struct{}{}:
	default:
	}
}

// Close stops watching and waits for the loops to exit.
func (cw *ContentWatcher) Close() error {
	var err error
	cw.once.Do(func() {
		close(cw.stop)
		err = cw.watcher.Close()
		cw.wg.Wait()
	})
	return err
}
