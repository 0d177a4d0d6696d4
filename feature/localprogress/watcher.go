package localprogress

import (
	"context"
	"path/filepath"
	"sync"

	"achievement-tracker/core/logger"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const watchedOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove

// Watcher reports changes to registered progress files.
type Watcher struct {
	fs       *fsnotify.Watcher
	onChange func(titleID string)
	logger   *zap.Logger

	mu     sync.Mutex
	byPath map[string]string
	dirs   map[string]struct{}
}

// NewWatcher creates a Watcher calling onChange with the title id whenever a
// watched file is written, created, renamed or removed.
func NewWatcher(onChange func(titleID string), log *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fs:       fsw,
		onChange: onChange,
		logger:   logger.Component(log, "localprogress-watcher"),
		byPath:   make(map[string]string),
		dirs:     make(map[string]struct{}),
	}, nil
}

// Add watches the progress file of a title. The parent directory is watched
// so that files replaced by rename are still tracked.
func (w *Watcher) Add(titleID, path string) error {
	path = filepath.Clean(path)
	dir := filepath.Dir(path)

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.dirs[dir]; !ok {
		if err := w.fs.Add(dir); err != nil {
			return err
		}
		w.dirs[dir] = struct{}{}
	}
	for old, id := range w.byPath {
		if id == titleID && old != path {
			delete(w.byPath, old)
		}
	}
	w.byPath[path] = titleID
	return nil
}

// AddAll watches every registration of reg. Failures are logged and skipped.
func (w *Watcher) AddAll(reg *Registry) int {
	added := 0
	for titleID, path := range reg.Paths() {
		if err := w.Add(titleID, path); err != nil {
			w.logger.Warn("Could not watch progress file", zap.String("path", path), zap.Error(err))
			continue
		}
		added++
	}
	return added
}

// Follow watches every current registration of reg and every later one.
func (w *Watcher) Follow(reg *Registry) int {
	reg.OnRegister(func(titleID, path string) {
		if err := w.Add(titleID, path); err != nil {
			w.logger.Warn("Could not watch progress file", zap.String("path", path), zap.Error(err))
		}
	})
	return w.AddAll(reg)
}

// Run dispatches events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Op&watchedOps == 0 {
		return
	}

	w.mu.Lock()
	titleID, ok := w.byPath[filepath.Clean(event.Name)]
	w.mu.Unlock()
	if !ok {
		return
	}

	w.logger.Debug("Progress file changed",
		zap.String("title_id", titleID), zap.String("op", event.Op.String()))
	if w.onChange != nil {
		w.onChange(titleID)
	}
}

// Close stops the underlying watcher.
func (w *Watcher) Close() error {
	return w.fs.Close()
}
