// Package watcher watches the schema tree and coalesces bursts of filesystem
// events, so a module materializing file by file triggers one resync after
// the writes settle rather than one per file.
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/schemaforge/schemaforge/internal/logging"
)

// Watcher debounces filesystem events under a watched root.
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration
	logger   *logging.Logger
}

// New creates a watcher. Events arriving within debounce of each other are
// grouped into a single callback.
func New(debounce time.Duration, logger *logging.Logger) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.New(nil)
	}
	return &Watcher{fs: fs, debounce: debounce, logger: logger.WithComponent("watcher")}, nil
}

// Add watches root and its immediate subdirectories. Hidden directories are
// skipped, matching discovery's view of the schema tree.
func (w *Watcher) Add(root string) error {
	if err := w.fs.Add(root); err != nil {
		return err
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if err := w.fs.Add(filepath.Join(root, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// Run blocks, invoking onSettle after each burst of events, until ctx is
// cancelled. Newly created directories are added to the watch on the fly so
// a freshly scaffolded module is covered immediately.
func (w *Watcher) Run(ctx context.Context, onSettle func()) error {
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	var pending bool

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.fs.Add(event.Name); err != nil {
						w.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
					}
				}
			}
			w.logger.Debug("filesystem event", "op", event.Op.String(), "path", event.Name)
			if pending {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
			}
			timer.Reset(w.debounce)
			pending = true

		case <-timer.C:
			pending = false
			onSettle()

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

// Close releases the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.fs.Close()
}
