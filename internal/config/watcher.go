package config

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of events an editor produces on save
const DefaultDebounce = 250 * time.Millisecond

// Watcher reports edits made to the config file by anything other than the
// Manager itself.
type Watcher struct {
	fsw      *fsnotify.Watcher
	manager  *Manager
	onChange func()
	debounce time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	closed  bool
	stopCh  chan struct{}
	stopped sync.WaitGroup
}

// Watch starts watching the config file. onChange is called after the
// cache has been invalidated; it runs on the watcher's goroutine.
func (m *Manager) Watch(onChange func()) (*Watcher, error) {
	return m.WatchWithDebounce(DefaultDebounce, onChange)
}

// WatchWithDebounce is Watch with an explicit debounce interval
func (m *Manager) WatchWithDebounce(debounce time.Duration, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	// Watch the directory: editors and our own atomic save replace the file
	if err := fsw.Add(filepath.Dir(m.configPath)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch config directory: %w", err)
	}

	w := &Watcher{
		fsw:      fsw,
		manager:  m,
		onChange: onChange,
		debounce: debounce,
		stopCh:   make(chan struct{}),
	}

	w.stopped.Add(1)
	go w.loop()

	return w, nil
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	close(w.stopCh)
	err := w.fsw.Close()
	w.stopped.Wait()
	return err
}

func (w *Watcher) loop() {
	defer w.stopped.Done()

	name := filepath.Base(w.manager.configPath)
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != name {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			w.schedule()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("Warning: config watcher: %v", err)

		case <-w.stopCh:
			return
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.fire)
}

func (w *Watcher) fire() {
	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed || !w.manager.changedOnDisk() {
		return
	}

	w.manager.Invalidate()
	if w.onChange != nil {
		w.onChange()
	}
}
