package script

import (
	"context"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/quadmux/internal/input/key"
	"github.com/dshills/quadmux/internal/logging"
	"github.com/dshills/quadmux/internal/window"
)

// Target receives scripted input. *mux.Multiplexer satisfies it.
type Target interface {
	Key(ev key.Event)
	Active() window.ID
	FocusKey(id window.ID) key.Code
	Window(id window.ID) (window.State, bool)
}

// Runner executes input scripts against a Target.
// A Runner is not safe for concurrent use.
type Runner struct {
	L      *lua.LState
	target Target
	log    *logging.Logger
	events int
	closed bool
}

// NewRunner creates a sandboxed Lua state bound to target.
func NewRunner(target Target, logger *logging.Logger) *Runner {
	if logger == nil {
		logger = logging.Null()
	}
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)

	r := &Runner{
		L:      L,
		target: target,
		log:    logger.WithComponent("script"),
	}
	r.installAPI()
	return r
}

// openSafeLibraries opens base, table, string and math, then strips the
// base functions that reach the filesystem or load code.
func openSafeLibraries(L *lua.LState) {
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.fn))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}
}

func (r *Runner) installAPI() {
	tbl := r.L.SetFuncs(r.L.NewTable(), map[string]lua.LGFunction{
		"focus":   r.luaFocus,
		"type":    r.luaType,
		"newline": r.luaNewline,
		"key":     r.luaKey,
		"active":  r.luaActive,
		"line":    r.luaLine,
	})
	r.L.SetGlobal("mux", tbl)
}

// RunString executes Lua source. Cancelling ctx aborts the script.
func (r *Runner) RunString(ctx context.Context, src string) error {
	return r.run(ctx, "<string>", func() error { return r.L.DoString(src) })
}

// RunFile executes a Lua file. Cancelling ctx aborts the script.
func (r *Runner) RunFile(ctx context.Context, path string) error {
	return r.run(ctx, path, func() error { return r.L.DoFile(path) })
}

func (r *Runner) run(ctx context.Context, source string, fn func() error) (err error) {
	if r.closed {
		return ErrRunnerClosed
	}

	r.L.SetContext(ctx)
	defer r.L.RemoveContext()

	before := r.events
	defer func() {
		if rec := recover(); rec != nil {
			err = &Error{Source: source, Err: fmt.Errorf("lua panic: %v", rec)}
		}
	}()

	if err := fn(); err != nil {
		return &Error{Source: source, Err: err}
	}
	r.log.Debug("ran %s: %d events", source, r.events-before)
	return nil
}

// Events returns the number of key events delivered so far.
func (r *Runner) Events() int {
	return r.events
}

// Close releases the Lua state.
func (r *Runner) Close() {
	if r.closed {
		return
	}
	r.closed = true
	r.L.Close()
}

func (r *Runner) send(ev key.Event) {
	r.events++
	r.target.Key(ev)
}

// windowArg reads a 1-based window number.
func windowArg(L *lua.LState, n int) window.ID {
	v := L.CheckInt(n)
	if v < 1 || v > window.Count {
		L.ArgError(n, fmt.Sprintf("window must be 1..%d", window.Count))
	}
	return window.ID(v - 1)
}

func (r *Runner) luaFocus(L *lua.LState) int {
	id := windowArg(L, 1)
	r.send(key.Raw(r.target.FocusKey(id)))
	return 0
}

func (r *Runner) luaType(L *lua.LState) int {
	s := L.CheckString(1)
	for _, ev := range key.FromString(s) {
		r.send(ev)
	}
	return 0
}

func (r *Runner) luaNewline(L *lua.LState) int {
	r.send(key.Char(key.Newline))
	return 0
}

func (r *Runner) luaKey(L *lua.LState) int {
	code, err := key.ParseName(L.CheckString(1))
	if err != nil {
		L.ArgError(1, err.Error())
	}
	r.send(key.Raw(code))
	return 0
}

func (r *Runner) luaActive(L *lua.LState) int {
	L.Push(lua.LNumber(int(r.target.Active()) + 1))
	return 1
}

func (r *Runner) luaLine(L *lua.LState) int {
	id := r.target.Active()
	if L.GetTop() >= 1 {
		id = windowArg(L, 1)
	}
	st, _ := r.target.Window(id)
	L.Push(lua.LString(st.Row(st.CursorRow())))
	return 1
}
