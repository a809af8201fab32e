package app

import (
	"context"
	"runtime/debug"
	"sync"
	"time"

	"github.com/dshills/quadmux/internal/config"
	"github.com/dshills/quadmux/internal/input/key"
	"github.com/dshills/quadmux/internal/renderer/backend"
)

// eventQueueSize bounds key events waiting for the loop goroutine.
const eventQueueSize = 64

// Run initializes the backend, replays the input script and runs the main
// loop until Ctrl+Q or ctx is cancelled, both of which return ErrQuit.
//
// Every Key and Tick call happens on the calling goroutine; a separate
// goroutine only blocks in PollEvent and hands events over.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if app.backend == nil {
		return ErrNoBackend
	}
	if err := app.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}

	events := make(chan backend.Event, eventQueueSize)
	done := make(chan struct{})
	var wg sync.WaitGroup
	defer func() {
		close(done)
		app.backend.Shutdown()
		wg.Wait()
	}()

	m, err := app.newMux(app.backend)
	if err != nil {
		return &InitError{Component: "mux", Err: err}
	}
	app.mux = m

	if err := app.replayScript(ctx); err != nil {
		return err
	}
	if err := app.startWatcher(); err != nil {
		// Live reload is optional; keep running on the loaded config.
		app.log.Warn("config watch disabled: %v", err)
	}

	wg.Add(1)
	go app.pollEvents(events, done, &wg)

	err = app.loop(ctx, events)
	app.log.Info("stopped: %s", app.mux.Stats())
	return err
}

func (app *Application) startWatcher() error {
	if !app.opts.Watch || app.opts.ConfigPath == "" || app.watcher != nil {
		return nil
	}
	w, err := config.NewWatcher(app.opts.ConfigPath, config.DefaultDebounce, app.loadConfig)
	if err != nil {
		return err
	}
	app.watcher = w
	app.log.Debug("watching %s", w.Path())
	return nil
}

// pollEvents forwards backend events until done is closed.
func (app *Application) pollEvents(events chan<- backend.Event, done <-chan struct{}, wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		ev := app.backend.PollEvent()
		select {
		case <-done:
			return
		default:
		}
		if ev.Type == backend.EventNone {
			continue
		}

		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

func (app *Application) frameInterval() time.Duration {
	return time.Second / time.Duration(app.cfg.App.FPS)
}

// loop is the main application loop.
func (app *Application) loop(ctx context.Context, events <-chan backend.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &RecoveredPanicError{Value: r, Stack: string(debug.Stack())}
		}
	}()

	interval := app.frameInterval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var (
		updates   <-chan *config.Config
		watchErrs <-chan error
	)
	if app.watcher != nil {
		updates = app.watcher.Updates()
		watchErrs = app.watcher.Errors()
	}

	app.frame(interval)

	for {
		select {
		case <-ctx.Done():
			return ErrQuit

		case ev := <-events:
			if err := app.handleBackendEvent(ev); err != nil {
				return err
			}

		case <-ticker.C:
			app.frame(interval)

		case cfg, ok := <-updates:
			if !ok {
				updates = nil
				continue
			}
			app.applyConfig(cfg)
			if next := app.frameInterval(); next != interval {
				interval = next
				ticker.Reset(interval)
			}

		case err, ok := <-watchErrs:
			if !ok {
				watchErrs = nil
				continue
			}
			app.metrics.RecordReload(err)
			app.log.Warn("config reload: %v", err)
		}
	}
}

// handleBackendEvent processes a backend event and routes it appropriately.
// Returns ErrQuit if the application should exit.
func (app *Application) handleBackendEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		if ev.Key.IsRaw() && ev.Key.Code == key.CtrlQ {
			return ErrQuit
		}
		t := StartTimer()
		app.mux.Key(ev.Key)
		app.metrics.RecordInput(t.Elapsed())

	case backend.EventResize:
		// The grid is fixed; a larger terminal shows it in the top-left corner.
		app.log.Debug("terminal resized to %dx%d", ev.Width, ev.Height)
		app.backend.Show()
	}
	return nil
}

// frame draws one tick and flushes it.
func (app *Application) frame(budget time.Duration) {
	t := StartTimer()
	app.mux.Tick()
	app.backend.Show()

	elapsed := t.Elapsed()
	app.metrics.RecordFrame(elapsed)
	if elapsed > budget {
		app.metrics.RecordOverrun()
	}
}

// applyConfig adopts a reloaded configuration. Theme and frame rate apply
// at once; grid, input and script settings apply on the next start.
func (app *Application) applyConfig(cfg *config.Config) {
	theme, err := cfg.Theme.Build()
	if err != nil {
		app.metrics.RecordReload(err)
		app.log.Warn("config reload: %v", err)
		return
	}

	app.mux.SetTheme(theme)
	app.cfg.Theme = cfg.Theme
	app.cfg.App = cfg.App
	app.metrics.RecordReload(nil)
	app.log.Info("config reloaded")
}
