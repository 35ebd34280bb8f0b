package helix

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Terminal owns the tcell screen: raw mode, the alternate screen buffer,
// mouse capture, and the event stream. Close restores the terminal to its
// prior mode; the session defers it on every exit path.
type Terminal struct {
	screen tcell.Screen
	events chan tcell.Event
	quit   chan struct{}
}

// OpenTerminal acquires the real terminal in raw mode with mouse capture
// and a hidden cursor. Initialization failure (no TTY, unknown TERM) is
// fatal to the caller.
func OpenTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init terminal: %w", err)
	}
	return NewTerminal(screen), nil
}

// NewTerminal wraps an already initialized tcell screen. Tests pass a
// tcell.SimulationScreen here.
func NewTerminal(screen tcell.Screen) *Terminal {
	screen.SetStyle(tcell.StyleDefault)
	screen.EnableMouse()
	screen.HideCursor()
	screen.Clear()

	t := &Terminal{
		screen: screen,
		events: make(chan tcell.Event, 64),
		quit:   make(chan struct{}),
	}
	go screen.ChannelEvents(t.events, t.quit)
	return t
}

// Size returns the terminal dimensions in character cells.
func (t *Terminal) Size() (w, h int) {
	return t.screen.Size()
}

// Events returns the input event stream. The channel closes when the
// terminal is closed.
func (t *Terminal) Events() <-chan tcell.Event {
	return t.events
}

// SetCell writes one colored glyph at (col, row).
func (t *Terminal) SetCell(col, row int, glyph rune, color RGB) {
	style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(color.R), int32(color.G), int32(color.B)))
	t.screen.SetContent(col, row, glyph, nil, style)
}

// SetText writes a string starting at (col, row) in the default style.
func (t *Terminal) SetText(col, row int, text string) {
	for i, r := range []rune(text) {
		t.screen.SetContent(col+i, row, r, nil, tcell.StyleDefault)
	}
}

// Show presents the composed frame.
func (t *Terminal) Show() {
	t.screen.Show()
}

// Sync forces a full redraw. Called after resize events.
func (t *Terminal) Sync() {
	t.screen.Sync()
}

// Close stops the event pump and restores the terminal mode. Safe to call
// once; the session defers it in cmd/helix.
func (t *Terminal) Close() {
	close(t.quit)
	t.screen.Fini()
}
