package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/quadmux/internal/config"
	"github.com/dshills/quadmux/internal/input/key"
	"github.com/dshills/quadmux/internal/renderer/backend"
	"github.com/dshills/quadmux/internal/renderer/core"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newTestApp(t *testing.T, opts Options) *Application {
	t.Helper()
	app, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func keyEvent(ev key.Event) backend.Event {
	return backend.Event{Type: backend.EventKey, Key: ev}
}

func TestNewDefaults(t *testing.T) {
	app := newTestApp(t, Options{})

	if app.Config().App.FPS != 30 {
		t.Errorf("fps = %d, want 30", app.Config().App.FPS)
	}
	if _, err := uuid.Parse(app.Session()); err != nil {
		t.Errorf("session %q is not a uuid: %v", app.Session(), err)
	}
	if app.IsRunning() {
		t.Error("IsRunning before Run")
	}
	if app.Mux() != nil {
		t.Error("Mux should be nil before Run or Dump")
	}
}

func TestNewLayersOptionsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quadmux.toml")
	writeFile(t, path, "[app]\nfps = 12\n\n[logging]\nlevel = \"error\"\n")

	app := newTestApp(t, Options{ConfigPath: path, LogLevel: "debug", ScriptPath: "x.lua"})

	cfg := app.Config()
	if cfg.App.FPS != 12 {
		t.Errorf("fps = %d, want 12 from file", cfg.App.FPS)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level = %q, want debug from options", cfg.Logging.Level)
	}
	if cfg.Script.Path != "x.lua" {
		t.Errorf("script = %q", cfg.Script.Path)
	}
}

func TestNewEnvAndOptionsOverrideInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quadmux.toml")
	writeFile(t, path, "[app]\nfps = 0\n\n[logging]\nlevel = \"verbose\"\n")
	t.Setenv("QUADMUX_FPS", "30")

	app := newTestApp(t, Options{ConfigPath: path, LogLevel: "debug"})

	cfg := app.Config()
	if cfg.App.FPS != 30 {
		t.Errorf("fps = %d, want 30 from environment", cfg.App.FPS)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level = %q, want debug from options", cfg.Logging.Level)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"bad level option", Options{LogLevel: "chatty"}},
		{"bad file", func() Options {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			writeFile(t, path, "theme:\n  border:\n    fg: chartreuse\n")
			return Options{ConfigPath: path}
		}()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts)
			var ie *InitError
			if !errors.As(err, &ie) || ie.Component != "config" {
				t.Fatalf("err = %v, want config InitError", err)
			}
			if !errors.Is(err, config.ErrValidationFailed) {
				t.Errorf("err = %v, want ErrValidationFailed in chain", err)
			}
		})
	}
}

func TestLogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "quadmux.log")
	app, err := New(Options{LogFile: logPath, LogLevel: "info"})
	if err != nil {
		t.Fatal(err)
	}
	if err := app.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "session="+app.Session()) {
		t.Errorf("log file missing session field:\n%s", data)
	}
}

func TestDumpBlankGrid(t *testing.T) {
	app := newTestApp(t, Options{})

	var out bytes.Buffer
	if err := app.Dump(context.Background(), &out); err != nil {
		t.Fatalf("Dump: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != core.Height {
		t.Fatalf("got %d lines, want %d", len(lines), core.Height)
	}

	dots := strings.Repeat(".", 19)
	want := dots + "F1" + dots + dots + "F2" + dots
	if lines[0] != want {
		t.Errorf("top row\n got %q\nwant %q", lines[0], want)
	}
	for y, line := range lines {
		if len([]rune(line)) != core.Width {
			t.Errorf("line %d has %d cells", y, len([]rune(line)))
		}
	}
}

func TestDumpReplaysScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boot.lua")
	writeFile(t, path, `mux.type("hi")`)

	var logs bytes.Buffer
	app := newTestApp(t, Options{ScriptPath: path, LogOutput: &logs})

	var out bytes.Buffer
	if err := app.Dump(context.Background(), &out); err != nil {
		t.Fatalf("Dump: %v", err)
	}

	first := strings.SplitN(out.String(), "\n", 2)[0]
	if !strings.HasPrefix(first, "hi.") {
		t.Errorf("top row = %q, want typed text over the border", first)
	}
	if app.Mux().Stats().Appended != 2 {
		t.Errorf("appended = %d", app.Mux().Stats().Appended)
	}
	if !strings.Contains(logs.String(), "replayed") {
		t.Errorf("expected replay log line, got:\n%s", logs.String())
	}
}

func TestDumpScriptError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.lua")
	writeFile(t, path, `mux.focus(9)`)
	app := newTestApp(t, Options{ScriptPath: path})

	err := app.Dump(context.Background(), &bytes.Buffer{})
	var ie *InitError
	if !errors.As(err, &ie) || ie.Component != "script" {
		t.Errorf("err = %v, want script InitError", err)
	}
}

func TestRunRoutesKeysUntilQuit(t *testing.T) {
	app := newTestApp(t, Options{})
	nb := backend.NewNullBackend(core.Width, core.Height)
	if err := app.SetBackend(nb); err != nil {
		t.Fatal(err)
	}

	for _, ev := range []key.Event{
		key.Char('a'), key.Char('b'),
		key.Raw(key.F2), key.Char('c'),
		key.Raw(key.CtrlQ),
		key.Char('z'),
	} {
		nb.PostEvent(keyEvent(ev))
	}

	err := app.Run(context.Background())
	if !errors.Is(err, ErrQuit) {
		t.Fatalf("Run = %v, want ErrQuit", err)
	}

	m := app.Mux()
	if m.Active() != 1 {
		t.Errorf("active = %d, want 1", m.Active())
	}
	w0, _ := m.Window(0)
	w1, _ := m.Window(1)
	if !strings.HasPrefix(w0.Row(0), "ab_") || !strings.HasPrefix(w1.Row(0), "c_") {
		t.Errorf("rows: %q %q", w0.Row(0), w1.Row(0))
	}
	if m.Stats().Keys != 4 {
		t.Errorf("keys = %d, want 4 (input after quit is not routed)", m.Stats().Keys)
	}
	if nb.Shows() < 1 {
		t.Error("no frame was shown")
	}
	snap := app.Metrics().Snapshot()
	if snap.InputCount != 4 || snap.FrameCount < 1 {
		t.Errorf("metrics = %+v", snap)
	}
	if app.IsRunning() {
		t.Error("still running after Run returned")
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	app := newTestApp(t, Options{})
	if err := app.SetBackend(backend.NewNullBackend(core.Width, core.Height)); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := app.Run(ctx); !errors.Is(err, ErrQuit) {
		t.Errorf("Run = %v, want ErrQuit", err)
	}
}

func TestRunWithoutBackend(t *testing.T) {
	app := newTestApp(t, Options{})
	if err := app.Run(context.Background()); !errors.Is(err, ErrNoBackend) {
		t.Errorf("Run = %v, want ErrNoBackend", err)
	}
}

func TestRunScriptFailureStops(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.lua")
	writeFile(t, path, `mux.key("NoSuchKey")`)

	app := newTestApp(t, Options{ScriptPath: path})
	if err := app.SetBackend(backend.NewNullBackend(core.Width, core.Height)); err != nil {
		t.Fatal(err)
	}

	err := app.Run(context.Background())
	var ie *InitError
	if !errors.As(err, &ie) || ie.Component != "script" {
		t.Errorf("Run = %v, want script InitError", err)
	}
}

func TestRunReloadsTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quadmux.toml")
	writeFile(t, path, "[app]\nfps = 60\n")

	app := newTestApp(t, Options{ConfigPath: path, Watch: true})
	if err := app.SetBackend(backend.NewNullBackend(core.Width, core.Height)); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	result := make(chan error, 1)
	go func() { result <- app.Run(ctx) }()

	// Give Run time to start the watcher, then change the file once.
	deadline := time.Now().Add(5 * time.Second)
	for !app.IsRunning() {
		if time.Now().After(deadline) {
			t.Fatal("Run never started")
		}
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(200 * time.Millisecond)
	writeFile(t, path, "[app]\nfps = 60\n\n[theme.content]\nfg = \"cyan\"\nbg = \"blue\"\n")

	for app.Metrics().Snapshot().Reloads == 0 {
		if time.Now().After(deadline) {
			cancel()
			<-result
			t.Fatal("config was never reloaded")
		}
		time.Sleep(20 * time.Millisecond)
	}

	cancel()
	if err := <-result; !errors.Is(err, ErrQuit) {
		t.Fatalf("Run = %v", err)
	}

	got := app.Mux().Theme().Content
	want := core.NewColorPair(core.ColorCyan, core.ColorBlue)
	if got != want {
		t.Errorf("content colors = %v, want %v", got, want)
	}
}

func TestSetBackendWhileRunning(t *testing.T) {
	app := newTestApp(t, Options{})
	app.running.Store(true)
	defer app.running.Store(false)

	if err := app.SetBackend(backend.NewNullBackend(1, 1)); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("SetBackend = %v, want ErrAlreadyRunning", err)
	}
	if err := app.Run(context.Background()); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("Run = %v, want ErrAlreadyRunning", err)
	}
}
