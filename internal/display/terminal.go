package display

import (
	"github.com/gdamore/tcell/v2"
)

// Terminal implements Surface using tcell.
type Terminal struct {
	screen tcell.Screen
	style  tcell.Style
	status tcell.Style
}

// Ensure Terminal implements Surface.
var _ Surface = (*Terminal)(nil)

// NewTerminal creates a terminal surface. Init must be called before any
// drawing.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{
		screen: screen,
		style:  tcell.StyleDefault,
		status: tcell.StyleDefault.Reverse(true),
	}, nil
}

// Init takes over the terminal.
func (t *Terminal) Init() error {
	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnablePaste()
	t.screen.Clear()
	return nil
}

// Fini restores the terminal.
func (t *Terminal) Fini() {
	t.screen.Fini()
}

// Size returns the terminal dimensions in cells.
func (t *Terminal) Size() (int, int) {
	return t.screen.Size()
}

// RenderLine draws text on a row, clearing the rest of the row.
func (t *Terminal) RenderLine(row int, text string) {
	t.renderRow(row, text, t.style)
}

// RenderStatus draws the status line on the bottom row in reverse video.
func (t *Terminal) RenderStatus(text string) {
	_, height := t.screen.Size()
	if height == 0 {
		return
	}
	t.renderRow(height-1, text, t.status)
}

func (t *Terminal) renderRow(row int, text string, style tcell.Style) {
	width, height := t.screen.Size()
	if row < 0 || row >= height {
		return
	}

	col := 0
	for _, ch := range text {
		if col >= width {
			break
		}
		t.screen.SetContent(col, row, ch, nil, style)
		col++
	}
	for ; col < width; col++ {
		t.screen.SetContent(col, row, ' ', nil, style)
	}
}

// MoveCursor places the visible cursor.
func (t *Terminal) MoveCursor(col, row int) {
	t.screen.ShowCursor(col, row)
}

// Show flushes pending drawing to the terminal.
func (t *Terminal) Show() {
	t.screen.Show()
}

// PollKey blocks until a key press arrives. Resize and other non-key
// events are consumed and the screen re-synced.
func (t *Terminal) PollKey() Key {
	for {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventKey:
			if key, ok := decodeKey(ev); ok {
				return key
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

// decodeKey maps a tcell key event to the editor's key vocabulary.
// Unmapped chords are dropped.
func decodeKey(ev *tcell.EventKey) (Key, bool) {
	switch ev.Key() {
	case tcell.KeyRune:
		return RuneKey(ev.Rune()), true
	case tcell.KeyEnter:
		return Key{Code: CodeEnter}, true
	case tcell.KeyEscape:
		return Key{Code: CodeEscape}, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return Key{Code: CodeBackspace}, true
	case tcell.KeyDelete:
		return Key{Code: CodeDelete}, true
	case tcell.KeyUp:
		return Key{Code: CodeUp}, true
	case tcell.KeyDown:
		return Key{Code: CodeDown}, true
	case tcell.KeyLeft:
		return Key{Code: CodeLeft}, true
	case tcell.KeyRight:
		return Key{Code: CodeRight}, true
	case tcell.KeyHome:
		return Key{Code: CodeHome}, true
	case tcell.KeyEnd:
		return Key{Code: CodeEnd}, true
	case tcell.KeyPgUp:
		return Key{Code: CodePageUp}, true
	case tcell.KeyPgDn:
		return Key{Code: CodePageDown}, true
	case tcell.KeyTab:
		return Key{Code: CodeTab}, true
	case tcell.KeyCtrlC:
		return Key{Code: CodeCtrlC}, true
	case tcell.KeyCtrlS:
		return Key{Code: CodeCtrlS}, true
	case tcell.KeyCtrlQ:
		return Key{Code: CodeCtrlQ}, true
	}
	return Key{}, false
}
