// Package watch re-runs the gate when source files change. Events are
// debounced so a burst of writes triggers one run.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches a source tree recursively and invokes a callback after
// changes settle.
type Watcher struct {
	root       string
	extensions map[string]bool
	excludes   map[string]bool
	debounce   time.Duration
	logger     *slog.Logger

	fsw *fsnotify.Watcher

	pendingMu sync.Mutex
	pending   int
}

// New creates a Watcher over root for the given source extensions.
func New(root string, extensions []string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	exts := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts[ext] = true
	}

	excludes := map[string]bool{".git": true, "node_modules": true, "vendor": true}

	return &Watcher{
		root:       root,
		extensions: exts,
		excludes:   excludes,
		debounce:   debounce,
		logger:     logger,
		fsw:        fsw,
	}, nil
}

// Run watches until ctx is canceled, calling onSettle after each debounced
// batch of relevant changes. onSettle runs on the watcher goroutine.
func (w *Watcher) Run(ctx context.Context, onSettle func()) error {
	defer w.fsw.Close()

	if err := w.addRecursive(w.root); err != nil {
		return err
	}

	var timer *time.Timer
	timerC := make(chan time.Time, 1)

	arm := func() {
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(w.debounce, func() {
			select {
			case timerC <- time.Now():
			default:
			}
		})
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if w.relevant(event) {
				w.pendingMu.Lock()
				w.pending++
				w.pendingMu.Unlock()
				arm()
			}
			// New directories must be watched as they appear.
			if event.Op.Has(fsnotify.Create) {
				if err := w.addRecursive(event.Name); err != nil {
					w.logger.Debug("watch add failed", slog.String("path", event.Name), slog.String("error", err.Error()))
				}
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", slog.String("error", err.Error()))

		case <-timerC:
			w.pendingMu.Lock()
			n := w.pending
			w.pending = 0
			w.pendingMu.Unlock()
			if n > 0 {
				w.logger.Debug("changes settled", slog.Int("events", n))
				onSettle()
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return false
	}
	return w.extensions[strings.ToLower(filepath.Ext(event.Name))]
}

// addRecursive registers path and every non-excluded subdirectory.
func (w *Watcher) addRecursive(path string) error {
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable subtrees are skipped, not fatal
		}
		if !d.IsDir() {
			return nil
		}
		if w.excludes[d.Name()] {
			return filepath.SkipDir
		}
		if addErr := w.fsw.Add(p); addErr != nil {
			w.logger.Debug("watch add failed", slog.String("path", p), slog.String("error", addErr.Error()))
		}
		return nil
	})
}
