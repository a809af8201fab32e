// Package app hosts the multiplexer. It owns the display backend, the
// configuration and the logger, feeds decoded keys to the input router and
// drives the frame tick.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/quadmux/internal/config"
	"github.com/dshills/quadmux/internal/logging"
	"github.com/dshills/quadmux/internal/mux"
	"github.com/dshills/quadmux/internal/renderer/backend"
	"github.com/dshills/quadmux/internal/renderer/core"
	"github.com/dshills/quadmux/internal/script"
)

// Application is the host around one Multiplexer.
type Application struct {
	opts Options

	cfg     *config.Config
	log     *logging.Logger
	logFile *os.File
	session string
	metrics *Metrics

	backend backend.Backend
	mux     *mux.Multiplexer
	watcher *config.Watcher

	running atomic.Bool
}

// Options configures the application. Non-empty fields override the
// configuration file and environment.
type Options struct {
	// ConfigPath is the path to a TOML or YAML configuration file.
	ConfigPath string

	// LogLevel sets the logging verbosity.
	LogLevel string

	// LogFile receives log output.
	LogFile string

	// LogOutput receives log output when no log file is configured.
	// Nil discards logs.
	LogOutput io.Writer

	// ScriptPath is a Lua input script replayed before the first frame.
	ScriptPath string

	// Watch reloads the configuration file when it changes.
	Watch bool
}

// New loads the configuration and sets up logging.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:    opts,
		session: uuid.NewString(),
		metrics: NewMetrics(),
	}

	cfg, err := app.loadConfig()
	if err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}
	app.cfg = cfg

	if err := app.setupLogging(); err != nil {
		return nil, &InitError{Component: "logging", Err: err}
	}

	app.log.Info("starting session %s (config %q)", app.session, opts.ConfigPath)
	return app, nil
}

// loadConfig layers the file, the environment and the options.
func (app *Application) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(app.opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if app.opts.LogLevel != "" {
		cfg.Logging.Level = app.opts.LogLevel
	}
	if app.opts.LogFile != "" {
		cfg.Logging.File = app.opts.LogFile
	}
	if app.opts.ScriptPath != "" {
		cfg.Script.Path = app.opts.ScriptPath
	}
	// Range checks apply to the fully layered result only.
	if err := cfg.Validate(); err != nil {
		if app.opts.ConfigPath != "" {
			return nil, fmt.Errorf("config %s: %w", app.opts.ConfigPath, err)
		}
		return nil, err
	}
	return cfg, nil
}

func (app *Application) setupLogging() error {
	level, err := app.cfg.Logging.LogLevel()
	if err != nil {
		return err
	}

	var out io.Writer
	switch {
	case app.cfg.Logging.File != "":
		f, err := os.OpenFile(app.cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		app.logFile = f
		out = f
	case app.opts.LogOutput != nil:
		out = app.opts.LogOutput
	}

	if out == nil {
		app.log = logging.Null()
		return nil
	}

	cfg := logging.DefaultConfig()
	cfg.Level = level
	cfg.Output = out
	app.log = logging.New(cfg).WithField("session", app.session)
	return nil
}

// newMux builds the multiplexer from the current configuration.
func (app *Application) newMux(plot mux.Plotter) (*mux.Multiplexer, error) {
	filler, err := app.cfg.Grid.FillerRune()
	if err != nil {
		return nil, err
	}
	keys, err := app.cfg.Input.FocusKeyCodes()
	if err != nil {
		return nil, err
	}
	classifier, err := app.cfg.Input.Classifier()
	if err != nil {
		return nil, err
	}
	theme, err := app.cfg.Theme.Build()
	if err != nil {
		return nil, err
	}

	return mux.New(
		mux.WithPlotter(plot),
		mux.WithFiller(filler),
		mux.WithFocusKeys(keys),
		mux.WithClassifier(classifier),
		mux.WithTheme(theme),
		mux.WithLogger(app.log),
	), nil
}

// replayScript runs the configured input script, if any.
func (app *Application) replayScript(ctx context.Context) error {
	path := app.cfg.Script.Path
	if path == "" {
		return nil
	}

	r := script.NewRunner(app.mux, app.log)
	defer r.Close()

	if err := r.RunFile(ctx, path); err != nil {
		return &InitError{Component: "script", Err: err}
	}
	app.log.Info("replayed %s: %d events", path, r.Events())
	return nil
}

// Dump renders one frame into an in-memory grid after replaying the input
// script and writes the grid to w as text.
func (app *Application) Dump(ctx context.Context, w io.Writer) error {
	nb := backend.NewNullBackend(core.Width, core.Height)
	if err := nb.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}

	m, err := app.newMux(nb)
	if err != nil {
		return &InitError{Component: "mux", Err: err}
	}
	app.mux = m

	if err := app.replayScript(ctx); err != nil {
		return err
	}
	m.Tick()

	app.log.Info("dump: %s", m.Stats())
	_, err = io.WriteString(w, nb.String())
	return err
}

// SetBackend sets the display backend.
// Must be called before Run().
func (app *Application) SetBackend(b backend.Backend) error {
	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.backend = b
	return nil
}

// Close releases the watcher and the log file.
func (app *Application) Close() error {
	var firstErr error
	if app.watcher != nil {
		if err := app.watcher.Close(); err != nil {
			firstErr = err
		}
		app.watcher = nil
	}
	if app.logFile != nil {
		if err := app.logFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		app.logFile = nil
	}
	return firstErr
}

// IsRunning returns true while Run is executing.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Config returns the active configuration.
func (app *Application) Config() *config.Config {
	return app.cfg
}

// Mux returns the multiplexer built by the last Run or Dump, or nil.
// It must not be used concurrently with Run.
func (app *Application) Mux() *mux.Multiplexer {
	return app.mux
}

// Metrics returns the host loop metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// Session returns the id attached to every log line of this run.
func (app *Application) Session() string {
	return app.session
}
