// Package watcher monitors a notes directory and triggers engine passes on
// change. Each event results in a fresh invocation; the engine itself never
// holds state between them.
package watcher

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/darryllawson/notedown/internal/title"
)

// DefaultDebounce coalesces editor write bursts into one pass per file.
const DefaultDebounce = 200 * time.Millisecond

// Watcher watches one notes directory (non-recursively, matching the flat
// corpus model) for note file changes.
type Watcher struct {
	dir      string
	debounce time.Duration
	logger   *slog.Logger
	onChange func(path string)

	mu      sync.Mutex
	pending map[string]struct{}
}

// Config holds watcher options.
type Config struct {
	Dir      string
	Debounce time.Duration // default DefaultDebounce
	Logger   *slog.Logger  // default slog.Default()

	// OnChange is called once per changed note after the quiet window.
	OnChange func(path string)
}

// New creates a watcher.
func New(cfg Config) *Watcher {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Watcher{
		dir:      cfg.Dir,
		debounce: cfg.Debounce,
		logger:   cfg.Logger,
		onChange: cfg.OnChange,
		pending:  make(map[string]struct{}),
	}
}

// Run processes events until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return err
	}
	w.logger.Info("watcher: started", slog.String("dir", w.dir))

	var flushTimer *time.Timer
	var flushCh <-chan time.Time
	schedule := func() {
		if flushTimer == nil {
			flushTimer = time.NewTimer(w.debounce)
			flushCh = flushTimer.C
		} else {
			flushTimer.Reset(w.debounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if flushTimer != nil {
				flushTimer.Stop()
			}
			w.logger.Info("watcher: stopped")
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.mu.Lock()
			w.pending[ev.Name] = struct{}{}
			w.mu.Unlock()
			schedule()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher: error", slog.String("err", err.Error()))

		case <-flushCh:
			w.flush()
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return false
	}
	name := filepath.Base(ev.Name)
	if strings.HasPrefix(name, ".") {
		// Dotfiles include our own cache directory and editor temp files.
		return false
	}
	return title.IsNote(name)
}

func (w *Watcher) flush() {
	w.mu.Lock()
	batch := w.pending
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	for path := range batch {
		w.logger.Debug("watcher: change", slog.String("path", path))
		if w.onChange != nil {
			w.onChange(path)
		}
	}
}
