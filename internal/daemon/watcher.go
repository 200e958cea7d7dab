package daemon

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// StoreWatcher reports changes below a filesystem store root. Bursts of events
// are coalesced: onChange runs once the tree has been quiet for the debounce period.
type StoreWatcher struct {
	root     string
	debounce time.Duration
	onChange func()
	watcher  *fsnotify.Watcher
	log      *log.Entry

	mu    sync.Mutex
	timer *time.Timer
}

// NewStoreWatcher watches root and every directory below it
func NewStoreWatcher(root string, debounce time.Duration, onChange func(), logger *log.Logger) (*StoreWatcher, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store root: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &StoreWatcher{
		root:     root,
		debounce: debounce,
		onChange: onChange,
		watcher:  watcher,
		log:      logger.WithField("component", "store_watcher"),
	}
	if err := w.addTree(root); err != nil {
		watcher.Close()
		return nil, err
	}
	return w, nil
}

// Run dispatches events until ctx is done or the watcher is closed
func (w *StoreWatcher) Run(ctx context.Context) {
	defer w.stopTimer()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.WithError(err).Warn("watch error")
		}
	}
}

// Close stops watching
func (w *StoreWatcher) Close() error {
	return w.watcher.Close()
}

func (w *StoreWatcher) handle(event fsnotify.Event) {
	// Temp files from atomic writes come and go before anyone reads them.
	if isTempFile(event.Name) {
		return
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				w.log.WithError(err).WithField("path", event.Name).Warn("failed to watch new directory")
			}
		}
	}

	w.log.WithFields(log.Fields{"path": event.Name, "op": event.Op.String()}).Debug("store changed")
	w.schedule()
}

func (w *StoreWatcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Reset(w.debounce)
		return
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		w.timer = nil
		w.mu.Unlock()
		w.onChange()
	})
}

func (w *StoreWatcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

// addTree watches dir and its subdirectories. Directories that vanish while
// walking are skipped.
func (w *StoreWatcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.watcher.Add(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

func isTempFile(path string) bool {
	name := filepath.Base(path)
	return len(name) > 0 && name[0] == '.'
}
