// Package watch reruns generation when catalogue or config files change.
package watch

import (
	"context"
	"path/filepath"
	"sort"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is used when New is given a zero debounce.
const DefaultDebounce = 200 * time.Millisecond

// ChangeFunc is called with the files that changed since the last call.
type ChangeFunc func(ctx context.Context, changed []string) error

// Watcher watches a fixed set of files. It watches their directories so
// files replaced by editors (rename over the original) are still seen.
type Watcher struct {
	files    map[string]bool
	debounce time.Duration
	logger   *zap.Logger
	fs       *fsnotify.Watcher
}

// New watches paths.
func New(paths []string, debounce time.Duration, logger *zap.Logger) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, errors.New("watch: no files to watch")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create file watcher")
	}

	w := &Watcher{files: map[string]bool{}, debounce: debounce, logger: logger, fs: fs}
	dirs := map[string]bool{}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			_ = fs.Close()
			return nil, errors.Wrapf(err, "resolve %s", p)
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fs.Add(dir); err != nil {
			_ = fs.Close()
			return nil, errors.Wrapf(err, "watch %s", dir)
		}
	}
	return w, nil
}

// Files returns the watched files, sorted.
func (w *Watcher) Files() []string {
	out := make([]string, 0, len(w.files))
	for f := range w.files {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

// Run calls fn after changes settle for the debounce period, until ctx is
// done. Errors from fn are logged and do not stop the watcher.
func (w *Watcher) Run(ctx context.Context, fn ChangeFunc) error {
	pending := map[string]bool{}
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("file changed", zap.String("file", event.Name), zap.String("op", event.Op.String()))
			pending[filepath.Clean(event.Name)] = true
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			changed := make([]string, 0, len(pending))
			for f := range pending {
				changed = append(changed, f)
			}
			sort.Strings(changed)
			clear(pending)

			if err := fn(ctx, changed); err != nil {
				w.logger.Error("regeneration failed", zap.Strings("files", changed), zap.Error(err))
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("file watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return w.files[abs]
}
