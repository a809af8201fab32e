package backend

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/quadmux/internal/input/key"
	"github.com/dshills/quadmux/internal/renderer/core"
)

// Terminal implements Backend using tcell for terminal output.
type Terminal struct {
	screen tcell.Screen
	mu     sync.Mutex
}

// NewTerminal creates a new terminal backend.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// newTerminalWithScreen wraps an existing screen, e.g. a simulation screen.
func newTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.SetStyle(convertColors(core.EmptyCell().Colors))
	t.screen.HideCursor()
	t.screen.Clear()
	return nil
}

func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

func (t *Terminal) SetCell(x, y int, cell core.Cell) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.SetContent(x, y, cell.Rune, nil, convertColors(cell.Colors))
}

func (t *Terminal) GetCell(x, y int) core.Cell {
	t.mu.Lock()
	defer t.mu.Unlock()

	w, h := t.screen.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return core.EmptyCell()
	}
	mainc, _, style, _ := t.screen.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
	fg, bg, _ := style.Decompose()
	return core.Cell{
		Rune:   mainc,
		Colors: core.NewColorPair(convertTcellColor(fg), convertTcellColor(bg)),
	}
}

func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
}

func (t *Terminal) PollEvent() Event {
	ev := t.screen.PollEvent()
	if ev == nil {
		// Screen finalized.
		return Event{Type: EventInterrupt}
	}
	return convertEvent(ev)
}

// PostEvent queues a synthetic event. It travels through tcell as an
// interrupt carrying the event, so no tcell key re-encoding is needed.
func (t *Terminal) PostEvent(event Event) {
	_ = t.screen.PostEvent(tcell.NewEventInterrupt(event)) // best-effort; event queue may be full
}

func (t *Terminal) Beep() {
	t.mu.Lock()
	defer t.mu.Unlock()

	_ = t.screen.Beep() // best-effort; terminal may not support beep
}

// ansiIndex maps text-mode palette order onto ANSI palette indices.
var ansiIndex = [16]int{
	core.ColorBlack:      0,
	core.ColorBlue:       4,
	core.ColorGreen:      2,
	core.ColorCyan:       6,
	core.ColorRed:        1,
	core.ColorMagenta:    5,
	core.ColorBrown:      3,
	core.ColorLightGray:  7,
	core.ColorDarkGray:   8,
	core.ColorLightBlue:  12,
	core.ColorLightGreen: 10,
	core.ColorLightCyan:  14,
	core.ColorLightRed:   9,
	core.ColorPink:       13,
	core.ColorYellow:     11,
	core.ColorWhite:      15,
}

// convertColor converts a palette color to a tcell color.
func convertColor(c core.Color) tcell.Color {
	if !c.Valid() {
		return tcell.ColorDefault
	}
	return tcell.PaletteColor(ansiIndex[c])
}

// convertColors converts a color pair to a tcell style.
func convertColors(p core.ColorPair) tcell.Style {
	return tcell.StyleDefault.
		Foreground(convertColor(p.Foreground)).
		Background(convertColor(p.Background))
}

// convertTcellColor converts a tcell palette color back to ours.
// Colors outside the 16-color palette map to light gray.
func convertTcellColor(tc tcell.Color) core.Color {
	if tc >= tcell.ColorValid && tc < tcell.ColorValid+16 {
		idx := int(tc - tcell.ColorValid)
		for c, a := range ansiIndex {
			if a == idx {
				return core.Color(c)
			}
		}
	}
	return core.ColorLightGray
}

// rawKeys maps tcell keys onto non-printable key codes.
var rawKeys = map[tcell.Key]key.Code{
	tcell.KeyEscape:     key.Escape,
	tcell.KeyBackspace:  key.Backspace,
	tcell.KeyBackspace2: key.Backspace,
	tcell.KeyDelete:     key.Delete,
	tcell.KeyInsert:     key.Insert,
	tcell.KeyHome:       key.Home,
	tcell.KeyEnd:        key.End,
	tcell.KeyPgUp:       key.PageUp,
	tcell.KeyPgDn:       key.PageDown,
	tcell.KeyUp:         key.Up,
	tcell.KeyDown:       key.Down,
	tcell.KeyLeft:       key.Left,
	tcell.KeyRight:      key.Right,
	tcell.KeyF1:         key.F1,
	tcell.KeyF2:         key.F2,
	tcell.KeyF3:         key.F3,
	tcell.KeyF4:         key.F4,
	tcell.KeyF5:         key.F5,
	tcell.KeyF6:         key.F6,
	tcell.KeyF7:         key.F7,
	tcell.KeyF8:         key.F8,
	tcell.KeyF9:         key.F9,
	tcell.KeyF10:        key.F10,
	tcell.KeyF11:        key.F11,
	tcell.KeyF12:        key.F12,
	tcell.KeyCtrlQ:      key.CtrlQ,
}

// convertKey decodes a tcell key event. Enter and Tab decode to the
// characters '\n' and '\t', the way a keyboard decoder reports them.
func convertKey(e *tcell.EventKey) (key.Event, bool) {
	switch e.Key() {
	case tcell.KeyRune:
		return key.Char(e.Rune()), true
	case tcell.KeyEnter, tcell.KeyLF:
		return key.Char(key.Newline), true
	case tcell.KeyTab:
		return key.Char('\t'), true
	}
	if code, ok := rawKeys[e.Key()]; ok {
		return key.Raw(code), true
	}
	return key.Event{}, false
}

// convertEvent converts tcell events to our Event type.
func convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		k, ok := convertKey(e)
		if !ok {
			return Event{Type: EventNone}
		}
		return Event{Type: EventKey, Key: k}

	case *tcell.EventResize:
		w, h := e.Size()
		return Event{Type: EventResize, Width: w, Height: h}

	case *tcell.EventInterrupt:
		if posted, ok := e.Data().(Event); ok {
			return posted
		}
		return Event{Type: EventInterrupt}

	default:
		return Event{Type: EventNone}
	}
}
