package app

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/linecraft/internal/config"
	"github.com/dshills/linecraft/internal/display"
	"github.com/dshills/linecraft/internal/engine/document"
	"github.com/dshills/linecraft/internal/fileio"
)

// fakeSurface records rendering and feeds scripted key presses.
type fakeSurface struct {
	keys   []display.Key
	lines  map[int]string
	status string
}

func newFakeSurface(keys ...display.Key) *fakeSurface {
	return &fakeSurface{keys: keys, lines: make(map[int]string)}
}

func (f *fakeSurface) Init() error { return nil }
func (f *fakeSurface) Fini()       {}
func (f *fakeSurface) Size() (int, int) {
	return 80, 24
}
func (f *fakeSurface) RenderLine(row int, text string) {
	f.lines[row] = text
}
func (f *fakeSurface) RenderStatus(text string) {
	f.status = text
}
func (f *fakeSurface) MoveCursor(col, row int) {}
func (f *fakeSurface) Show()                   {}
func (f *fakeSurface) PollKey() display.Key {
	if len(f.keys) == 0 {
		return display.Key{Code: display.CodeEscape}
	}
	key := f.keys[0]
	f.keys = f.keys[1:]
	return key
}

func newTestApp(t *testing.T, names []string, files fileio.FileService, surface display.Surface, opts ...Option) *App {
	t.Helper()
	if files == nil {
		files = fileio.NewMem()
	}
	if surface == nil {
		surface = newFakeSurface()
	}
	a, err := New(surface, files, names, opts...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return a
}

func typeKeys(t *testing.T, a *App, keys ...display.Key) {
	t.Helper()
	for _, key := range keys {
		if err := a.HandleKey(key); err != nil {
			t.Fatalf("unexpected error on %v: %v", key, err)
		}
	}
}

func typeText(t *testing.T, a *App, text string) {
	t.Helper()
	for _, ch := range text {
		if ch == '\n' {
			typeKeys(t, a, display.Key{Code: display.CodeEnter})
			continue
		}
		typeKeys(t, a, display.RuneKey(ch))
	}
}

func TestTypingInsertsAndAdvancesCursor(t *testing.T) {
	a := newTestApp(t, nil, nil, nil)

	typeText(t, a, "Hi")

	if got := a.Session().Current().Text(); got != "Hi" {
		t.Errorf("expected %q, got %q", "Hi", got)
	}
	want := document.Position{Line: 0, Column: 2}
	if a.Cursor() != want {
		t.Errorf("expected cursor %v, got %v", want, a.Cursor())
	}
	if !a.Session().CurrentMeta().Dirty {
		t.Error("typing should mark the document dirty")
	}
}

func TestEnterSplitsLine(t *testing.T) {
	a := newTestApp(t, nil, nil, nil)

	typeText(t, a, "H\ni")

	if got := a.Session().Current().Text(); got != "H\ni" {
		t.Errorf("expected %q, got %q", "H\ni", got)
	}
	if a.Session().Current().LineCount() != 2 {
		t.Errorf("expected 2 lines, got %d", a.Session().Current().LineCount())
	}
	want := document.Position{Line: 1, Column: 1}
	if a.Cursor() != want {
		t.Errorf("expected cursor %v, got %v", want, a.Cursor())
	}
}

func TestBackspaceRemovesCharacter(t *testing.T) {
	a := newTestApp(t, nil, nil, nil)

	typeText(t, a, "Hey")
	typeKeys(t, a, display.Key{Code: display.CodeBackspace})

	if got := a.Session().Current().Text(); got != "He" {
		t.Errorf("expected %q, got %q", "He", got)
	}
	want := document.Position{Line: 0, Column: 2}
	if a.Cursor() != want {
		t.Errorf("expected cursor %v, got %v", want, a.Cursor())
	}
}

func TestBackspaceJoinsLines(t *testing.T) {
	a := newTestApp(t, nil, nil, nil)

	typeText(t, a, "ab\ncd")
	// Move to the start of the second line.
	typeKeys(t, a,
		display.Key{Code: display.CodeHome},
		display.Key{Code: display.CodeBackspace},
	)

	if got := a.Session().Current().Text(); got != "abcd" {
		t.Errorf("expected %q, got %q", "abcd", got)
	}
	want := document.Position{Line: 0, Column: 2}
	if a.Cursor() != want {
		t.Errorf("expected cursor %v, got %v", want, a.Cursor())
	}
}

func TestBackspaceAtBufferStartIsNoop(t *testing.T) {
	a := newTestApp(t, nil, nil, nil)

	typeKeys(t, a, display.Key{Code: display.CodeBackspace})

	if !a.Session().Current().IsEmpty() {
		t.Errorf("expected empty document, got %q", a.Session().Current().Text())
	}
}

func TestDeleteForward(t *testing.T) {
	a := newTestApp(t, nil, nil, nil)

	typeText(t, a, "abc")
	typeKeys(t, a,
		display.Key{Code: display.CodeHome},
		display.Key{Code: display.CodeRight},
		display.Key{Code: display.CodeDelete},
	)

	if got := a.Session().Current().Text(); got != "ac" {
		t.Errorf("expected %q, got %q", "ac", got)
	}
	want := document.Position{Line: 0, Column: 1}
	if a.Cursor() != want {
		t.Errorf("expected cursor %v, got %v", want, a.Cursor())
	}
}

func TestTabInsertsSpaces(t *testing.T) {
	cfg := config.Default()
	cfg.Editor.TabSize = 4
	a := newTestApp(t, nil, nil, nil, WithConfig(cfg))

	typeKeys(t, a, display.Key{Code: display.CodeTab})

	if got := a.Session().Current().Text(); got != "    " {
		t.Errorf("expected four spaces, got %q", got)
	}
}

func TestArrowMovementClamps(t *testing.T) {
	a := newTestApp(t, nil, nil, nil)
	typeText(t, a, "ab\ncd")

	// Moving past the document edges clamps rather than failing.
	typeKeys(t, a,
		display.Key{Code: display.CodeDown},
		display.Key{Code: display.CodeDown},
		display.Key{Code: display.CodeRight},
		display.Key{Code: display.CodeRight},
	)
	want := document.Position{Line: 1, Column: 2}
	if a.Cursor() != want {
		t.Errorf("expected cursor %v, got %v", want, a.Cursor())
	}

	typeKeys(t, a,
		display.Key{Code: display.CodeUp},
		display.Key{Code: display.CodeLeft},
		display.Key{Code: display.CodeLeft},
		display.Key{Code: display.CodeLeft},
	)
	want = document.Position{Line: 0, Column: 0}
	if a.Cursor() != want {
		t.Errorf("expected cursor %v, got %v", want, a.Cursor())
	}
}

func TestEscapeEntersCommandMode(t *testing.T) {
	a := newTestApp(t, nil, nil, nil)

	typeKeys(t, a, display.Key{Code: display.CodeEscape})
	if a.Mode() != ModeCommand {
		t.Errorf("expected command mode, got %v", a.Mode())
	}

	typeKeys(t, a, display.RuneKey('i'))
	if a.Mode() != ModeEdit {
		t.Errorf("expected edit mode, got %v", a.Mode())
	}
}

func TestColonStartsCommandFromEditMode(t *testing.T) {
	a := newTestApp(t, nil, nil, nil)

	typeKeys(t, a, display.RuneKey(':'))
	if a.Mode() != ModeCommand {
		t.Errorf("expected command mode, got %v", a.Mode())
	}
	// The colon is not inserted into the document.
	if !a.Session().Current().IsEmpty() {
		t.Errorf("expected empty document, got %q", a.Session().Current().Text())
	}
}

func TestUndoRedoSnapshots(t *testing.T) {
	a := newTestApp(t, nil, nil, nil)

	// Each keystroke snapshots the text before mutating, so the stack
	// holds "" and "a" after typing two characters.
	typeText(t, a, "ab")
	typeKeys(t, a, display.Key{Code: display.CodeEscape}, display.RuneKey('u'))

	if got := a.Session().Current().Text(); got != "" {
		t.Errorf("expected undo to restore %q, got %q", "", got)
	}

	typeKeys(t, a, display.RuneKey('r'))
	if got := a.Session().Current().Text(); got != "a" {
		t.Errorf("expected redo to restore %q, got %q", "a", got)
	}
}

func TestUndoNothingToUndo(t *testing.T) {
	a := newTestApp(t, nil, nil, nil)

	typeKeys(t, a, display.Key{Code: display.CodeEscape}, display.RuneKey('u'))
	if got := a.Session().Current().Text(); got != "" {
		t.Errorf("expected unchanged document, got %q", got)
	}
}

func TestSaveCommand(t *testing.T) {
	files := fileio.NewMem()
	files.Save("a.txt", "start")
	a := newTestApp(t, []string{"a.txt"}, files, nil)

	typeText(t, a, "X")
	typeKeys(t, a,
		display.RuneKey(':'),
		display.RuneKey('w'),
		display.Key{Code: display.CodeEnter},
	)

	content, err := files.Open("a.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content != "Xstart" {
		t.Errorf("expected %q, got %q", "Xstart", content)
	}
	if a.Session().CurrentMeta().Dirty {
		t.Error("save should clear the dirty flag")
	}
}

func TestSaveAsCommand(t *testing.T) {
	files := fileio.NewMem()
	a := newTestApp(t, nil, files, nil)

	typeText(t, a, "data")
	for _, ch := range ":w out.txt" {
		typeKeys(t, a, display.RuneKey(ch))
	}
	typeKeys(t, a, display.Key{Code: display.CodeEnter})

	content, err := files.Open("out.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content != "data" {
		t.Errorf("expected %q, got %q", "data", content)
	}
	if a.Session().CurrentMeta().Name != "out.txt" {
		t.Errorf("expected renamed document, got %q", a.Session().CurrentMeta().Name)
	}
}

func TestOpenCommand(t *testing.T) {
	files := fileio.NewMem()
	files.Save("b.txt", "bravo")
	a := newTestApp(t, nil, files, nil)

	for _, ch := range ":e b.txt" {
		typeKeys(t, a, display.RuneKey(ch))
	}
	typeKeys(t, a, display.Key{Code: display.CodeEnter})

	if a.Session().Current().Text() != "bravo" {
		t.Errorf("expected opened content, got %q", a.Session().Current().Text())
	}
	if a.Cursor() != (document.Position{}) {
		t.Errorf("expected cursor at origin, got %v", a.Cursor())
	}
}

func TestOpenMissingFileShowsMessage(t *testing.T) {
	a := newTestApp(t, nil, nil, nil)

	for _, ch := range ":e nope.txt" {
		typeKeys(t, a, display.RuneKey(ch))
	}
	typeKeys(t, a, display.Key{Code: display.CodeEnter})

	// The session is unchanged and the loop continues.
	if a.Session().Count() != 1 {
		t.Errorf("expected 1 document, got %d", a.Session().Count())
	}
}

func TestNewAndCycleCommands(t *testing.T) {
	a := newTestApp(t, nil, nil, nil)

	for _, ch := range ":new" {
		typeKeys(t, a, display.RuneKey(ch))
	}
	typeKeys(t, a, display.Key{Code: display.CodeEnter})

	if a.Session().Count() != 2 {
		t.Fatalf("expected 2 documents, got %d", a.Session().Count())
	}
	if a.Session().CurrentIndex() != 1 {
		t.Errorf("expected new document focused, got index %d", a.Session().CurrentIndex())
	}

	typeKeys(t, a, display.Key{Code: display.CodeEscape}, display.RuneKey('n'))
	if a.Session().CurrentIndex() != 0 {
		t.Errorf("expected next to wrap to 0, got %d", a.Session().CurrentIndex())
	}

	typeKeys(t, a, display.RuneKey('p'))
	if a.Session().CurrentIndex() != 1 {
		t.Errorf("expected previous to wrap to 1, got %d", a.Session().CurrentIndex())
	}
}

func TestCloseCommandKeepsLastDocument(t *testing.T) {
	a := newTestApp(t, nil, nil, nil)
	typeText(t, a, "temp")

	for _, ch := range ":bd" {
		typeKeys(t, a, display.RuneKey(ch))
	}
	typeKeys(t, a, display.Key{Code: display.CodeEnter})

	if a.Session().Count() != 1 {
		t.Fatalf("expected 1 document, got %d", a.Session().Count())
	}
	if !a.Session().Current().IsEmpty() {
		t.Errorf("expected fresh document, got %q", a.Session().Current().Text())
	}
}

func TestSelectionCopyAndPaste(t *testing.T) {
	files := fileio.NewMem()
	files.Save("a.txt", "Hello World")
	a := newTestApp(t, []string{"a.txt"}, files, nil)

	// Anchor at the origin, advance five columns, copy, then paste at
	// the cursor. Movement keys work in command mode so the selection
	// survives.
	typeKeys(t, a, display.Key{Code: display.CodeEscape}, display.RuneKey('v'))
	for i := 0; i < 5; i++ {
		typeKeys(t, a, display.Key{Code: display.CodeRight})
	}
	typeKeys(t, a, display.RuneKey('y'), display.RuneKey('P'))

	if got := a.Session().Current().Text(); got != "HelloHello World" {
		t.Errorf("expected %q, got %q", "HelloHello World", got)
	}
	want := document.Position{Line: 0, Column: 10}
	if a.Cursor() != want {
		t.Errorf("expected cursor %v, got %v", want, a.Cursor())
	}
}

func TestSelectionCut(t *testing.T) {
	files := fileio.NewMem()
	files.Save("a.txt", "Hello World")
	a := newTestApp(t, []string{"a.txt"}, files, nil)

	// Select " World" by anchoring at column 5 and moving to the end.
	typeKeys(t, a, display.Key{Code: display.CodeEscape})
	for i := 0; i < 5; i++ {
		typeKeys(t, a, display.Key{Code: display.CodeRight})
	}
	typeKeys(t, a, display.RuneKey('v'), display.Key{Code: display.CodeEnd}, display.RuneKey('x'))

	if got := a.Session().Current().Text(); got != "Hello" {
		t.Errorf("expected %q, got %q", "Hello", got)
	}
	if !a.Session().CurrentMeta().Dirty {
		t.Error("cut should mark the document dirty")
	}
}

func TestPasteEmptyClipboardShowsMessage(t *testing.T) {
	a := newTestApp(t, nil, nil, nil)

	typeKeys(t, a, display.Key{Code: display.CodeEscape}, display.RuneKey('P'))
	if !a.Session().Current().IsEmpty() {
		t.Errorf("expected unchanged document, got %q", a.Session().Current().Text())
	}
}

func TestReadOnlyBlocksEdits(t *testing.T) {
	a := newTestApp(t, nil, nil, nil, WithReadOnly(true))

	err := a.HandleKey(display.RuneKey('x'))
	if !errors.Is(err, ErrReadOnly) {
		t.Errorf("expected ErrReadOnly, got %v", err)
	}
	if !a.Session().Current().IsEmpty() {
		t.Errorf("expected unchanged document, got %q", a.Session().Current().Text())
	}
}

func TestQuitCleanSession(t *testing.T) {
	a := newTestApp(t, nil, nil, nil)

	err := a.HandleKey(display.Key{Code: display.CodeCtrlQ})
	if !errors.Is(err, ErrQuit) {
		t.Errorf("expected ErrQuit, got %v", err)
	}
}

func TestQuitPromptsWhenDirty(t *testing.T) {
	surface := newFakeSurface(display.RuneKey('n'))
	a := newTestApp(t, nil, nil, surface)
	typeText(t, a, "unsaved")

	err := a.HandleKey(display.Key{Code: display.CodeCtrlQ})
	if !errors.Is(err, ErrQuit) {
		t.Errorf("expected quit without saving, got %v", err)
	}
}

func TestQuitCancelled(t *testing.T) {
	surface := newFakeSurface(display.Key{Code: display.CodeEscape})
	a := newTestApp(t, nil, nil, surface)
	typeText(t, a, "unsaved")

	if err := a.HandleKey(display.Key{Code: display.CodeCtrlQ}); err != nil {
		t.Errorf("expected cancelled quit to continue, got %v", err)
	}
}

func TestQuitSavesAllWhenRequested(t *testing.T) {
	files := fileio.NewMem()
	files.Save("a.txt", "a")
	files.Save("b.txt", "b")

	surface := newFakeSurface(display.RuneKey('a'))
	a := newTestApp(t, []string{"a.txt", "b.txt"}, files, surface)

	typeText(t, a, "1")
	typeKeys(t, a, display.Key{Code: display.CodeEscape}, display.RuneKey('p'), display.RuneKey('i'))
	typeText(t, a, "2")

	err := a.HandleKey(display.Key{Code: display.CodeCtrlQ})
	if !errors.Is(err, ErrQuit) {
		t.Fatalf("expected ErrQuit, got %v", err)
	}

	first, _ := files.Open("a.txt")
	second, _ := files.Open("b.txt")
	if first != "2a" || second != "1b" {
		t.Errorf("expected both documents saved, got %q and %q", first, second)
	}
}

func TestApplyConfigTakesEffectOnNextKey(t *testing.T) {
	a := newTestApp(t, nil, nil, nil)

	next := config.Default()
	next.Editor.TabSize = 2
	a.ApplyConfig(next)

	typeKeys(t, a, display.Key{Code: display.CodeTab})

	if got := a.Session().Current().Text(); got != "  " {
		t.Errorf("expected two spaces after reload, got %q", got)
	}
}

func TestBufferListShowsDocumentIDs(t *testing.T) {
	files := fileio.NewMem()
	files.Save("a.txt", "alpha")
	files.Save("b.txt", "bravo")
	surface := newFakeSurface()
	a := newTestApp(t, []string{"a.txt", "b.txt"}, files, surface)

	for _, ch := range ":ls" {
		typeKeys(t, a, display.RuneKey(ch))
	}
	typeKeys(t, a, display.Key{Code: display.CodeEnter})

	for i, m := range a.Session().List() {
		line := surface.lines[i+1]
		if !strings.Contains(line, m.Name) {
			t.Errorf("expected list row %d to show %q, got %q", i+1, m.Name, line)
		}
		if !strings.Contains(line, m.ID.String()[:8]) {
			t.Errorf("expected list row %d to show document id, got %q", i+1, line)
		}
	}
}

func TestUnknownCommandShowsMessage(t *testing.T) {
	a := newTestApp(t, nil, nil, nil)

	for _, ch := range ":frobnicate" {
		typeKeys(t, a, display.RuneKey(ch))
	}
	typeKeys(t, a, display.Key{Code: display.CodeEnter})

	if a.Mode() != ModeEdit {
		t.Errorf("expected return to edit mode, got %v", a.Mode())
	}
}
