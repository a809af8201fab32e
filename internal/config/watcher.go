package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last file event before a
// reload is attempted.
const DefaultDebounce = 100 * time.Millisecond

// maxWaitFactor bounds how long a burst of events can postpone a reload,
// as a multiple of the debounce delay.
const maxWaitFactor = 5

// ReloadFunc produces a fresh configuration after the file changed.
type ReloadFunc func() (*Config, error)

// Watcher reloads a configuration file when it changes on disk.
//
// The containing directory is watched rather than the file itself so that
// editors which replace the file through a rename are still observed.
type Watcher struct {
	mu sync.Mutex

	fsw    *fsnotify.Watcher
	path   string
	reload ReloadFunc
	delay  time.Duration
	timer  *time.Timer

	// burstStart is when the first event of the pending burst arrived.
	burstStart time.Time

	updates chan *Config
	errors  chan error

	closed   bool
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// NewWatcher watches path and calls reload after changes settle for delay.
// A nil reload loads and validates the file with LoadValidated.
func NewWatcher(path string, delay time.Duration, reload ReloadFunc) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if delay <= 0 {
		delay = DefaultDebounce
	}
	if reload == nil {
		reload = func() (*Config, error) { return LoadValidated(absPath) }
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(absPath), err)
	}

	w := &Watcher{
		fsw:     fsw,
		path:    absPath,
		reload:  reload,
		delay:   delay,
		updates: make(chan *Config, 1),
		errors:  make(chan error, 10),
		closeCh: make(chan struct{}),
	}

	w.closedWg.Add(1)
	go w.processLoop()

	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Updates delivers successfully reloaded configurations. Only the most
// recent pending configuration is kept.
func (w *Watcher) Updates() <-chan *Config { return w.updates }

// Errors delivers reload and watch errors.
func (w *Watcher) Errors() <-chan error { return w.errors }

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	err := w.fsw.Close()
	w.closedWg.Wait()

	close(w.updates)
	close(w.errors)
	return err
}

func (w *Watcher) processLoop() {
	defer w.closedWg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if w.relevant(ev) {
				w.schedule()
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.sendError(err)
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Rename)
}

// schedule (re)starts the debounce timer. A burst of events never
// postpones the reload past maxWaitFactor*delay from its first event.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	now := time.Now()
	if w.burstStart.IsZero() {
		w.burstStart = now
	}
	wait := w.delay
	if remaining := maxWaitFactor*w.delay - now.Sub(w.burstStart); remaining < wait {
		wait = max(remaining, 0)
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(wait, w.fire)
}

func (w *Watcher) fire() {
	w.mu.Lock()
	w.burstStart = time.Time{}
	w.mu.Unlock()

	cfg, err := w.reload()

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if err != nil {
		w.sendError(err)
		return
	}

	// Replace any configuration the consumer has not picked up yet.
	select {
	case <-w.updates:
	default:
	}
	w.updates <- cfg
}

func (w *Watcher) sendError(err error) {
	select {
	case w.errors <- err:
	default:
		// Channel full, drop error
	}
}
