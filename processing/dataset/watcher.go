package dataset

import (
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"inspector/internal/logging"
)

// debounceDelay coalesces bursts of filesystem events into one callback.
const debounceDelay = 300 * time.Millisecond

// Watcher notifies when files under the scanned dataset directories change,
// so the UI can rescan the folder.
type Watcher struct {
	fs   *fsnotify.Watcher
	done chan struct{}
}

// Watch starts watching dirs and invokes onChange, debounced, after any
// create/remove/rename/write event. onChange runs on the watcher goroutine.
func Watch(dirs []string, onChange func()) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := fs.Add(dir); err != nil {
			_ = fs.Close()
			return nil, err
		}
	}

	w := &Watcher{fs: fs, done: make(chan struct{})}
	go w.run(onChange)

	return w, nil
}

func (w *Watcher) run(onChange func()) {
	var debounce *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename|fsnotify.Write) == 0 {
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(debounceDelay)
			} else {
				if !debounce.Stop() {
					select {
					case <-debounce.C:
					default:
					}
				}
				debounce.Reset(debounceDelay)
			}
			fire = debounce.C

		case <-fire:
			fire = nil
			onChange()

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logging.Logger.Warn("dataset watcher error", zap.Error(err))

		case <-w.done:
			return
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fs.Close()
}
