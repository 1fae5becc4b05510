package catalog

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 100 * time.Millisecond

// Watcher reloads a catalog file into a Store whenever it changes on disk.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	store   *Store
	logger  *slog.Logger
	done    chan struct{}
	once    sync.Once
}

// Watch starts watching path. The parent directory is watched rather than the
// file itself so that editors which replace the file on save keep working.
func Watch(ctx context.Context, path string, store *Store, logger *slog.Logger) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		_ = w.Close()
		return nil, err
	}

	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}

	watcher := &Watcher{
		watcher: w,
		path:    abs,
		store:   store,
		logger:  logger.With("component", "catalog_watcher", "path", abs),
		done:    make(chan struct{}),
	}
	go watcher.run(ctx)

	watcher.logger.Info("Watching catalog for changes")
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)

	var reload <-chan time.Time
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			reload = time.After(reloadDebounce)
		case <-reload:
			reload = nil
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Catalog watcher error", "error", err)
		case <-ctx.Done():
			return
		}
	}
}

func (w *Watcher) reload() {
	c, err := Load(w.path)
	if err != nil {
		w.logger.Warn("Ignoring invalid catalog, keeping previous one", "error", err)
		return
	}

	w.store.Set(c)
	w.logger.Info("Catalog reloaded",
		"planet_names", len(c.PlanetNames),
		"system_names", len(c.SystemNames),
		"palette", len(c.Palette))
}
