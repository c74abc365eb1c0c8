package app

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"unicode/utf8"

	"github.com/dshills/linecraft/internal/config"
	"github.com/dshills/linecraft/internal/display"
	"github.com/dshills/linecraft/internal/engine/clipboard"
	"github.com/dshills/linecraft/internal/engine/document"
	"github.com/dshills/linecraft/internal/engine/history"
	"github.com/dshills/linecraft/internal/fileio"
	"github.com/dshills/linecraft/internal/session"
)

// Mode is the editor's input mode.
type Mode int

const (
	// ModeEdit routes printable keys into the document.
	ModeEdit Mode = iota

	// ModeCommand routes keys to editor commands.
	ModeCommand
)

// String returns the mode name for the status line.
func (m Mode) String() string {
	if m == ModeCommand {
		return "COMMAND"
	}
	return "EDIT"
}

// App owns the editing state and the modal key loop.
type App struct {
	session *session.Session
	cursor  document.Position
	history *history.Stack[string]
	actions *history.Log
	clip    *clipboard.Clipboard
	surface display.Surface
	files   fileio.FileService
	cfg     *config.Config
	log     *Logger

	mode    Mode
	cmdBuf  string
	message string

	selAnchor int
	hasAnchor bool
	readonly  bool

	// pendingCfg hands a reloaded configuration from the watcher
	// goroutine to the key loop, which consumes it between key presses.
	pendingCfg atomic.Pointer[config.Config]
}

// Option configures an App.
type Option func(*App)

// WithLogger sets the application logger.
func WithLogger(log *Logger) Option {
	return func(a *App) {
		a.log = log
	}
}

// WithConfig sets the configuration.
func WithConfig(cfg *config.Config) Option {
	return func(a *App) {
		a.cfg = cfg
	}
}

// WithReadOnly disables all mutations.
func WithReadOnly(readonly bool) Option {
	return func(a *App) {
		a.readonly = readonly
	}
}

// New creates the editor over a display surface and file service, opening
// the named files. No names yields a single untitled document.
func New(surface display.Surface, files fileio.FileService, names []string, opts ...Option) (*App, error) {
	a := &App{
		surface: surface,
		files:   files,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.cfg == nil {
		a.cfg = config.Default()
	}
	if a.log == nil {
		a.log = DefaultLogger()
	}
	a.log = a.log.WithComponent("app")

	sess, err := session.FromFiles(files, names)
	if err != nil {
		return nil, NewOperationError("open", strings.Join(names, ","), err)
	}
	a.session = sess
	a.history = history.NewStack[string](a.cfg.History.MaxEntries)
	a.actions = history.NewLog(a.cfg.History.MaxEntries)
	a.clip = clipboard.New()

	return a, nil
}

// Session exposes the document session, mainly for tests.
func (a *App) Session() *session.Session {
	return a.session
}

// Cursor returns the current cursor position.
func (a *App) Cursor() document.Position {
	return a.cursor
}

// Mode returns the current input mode.
func (a *App) Mode() Mode {
	return a.mode
}

// ApplyConfig schedules a configuration to take effect before the next
// key press. Safe to call from any goroutine.
func (a *App) ApplyConfig(cfg *config.Config) {
	a.pendingCfg.Store(cfg)
}

// Run takes over the surface and drives the key loop until quit.
func (a *App) Run() error {
	if err := a.surface.Init(); err != nil {
		return NewOperationError("init", "display", err)
	}
	defer a.surface.Fini()

	a.log.Info("editor started with %d document(s)", a.session.Count())
	a.history.SaveState(a.session.Current().Text())

	for {
		a.render()

		key := a.surface.PollKey()
		if err := a.HandleKey(key); err != nil {
			if errors.Is(err, ErrQuit) {
				a.log.Info("editor exiting")
				return nil
			}
			// All engine errors are recoverable: surface them on the
			// status line and keep going.
			a.message = err.Error()
			a.log.Debug("key handling: %v", err)
		}
	}
}

// HandleKey dispatches one key press according to the current mode.
func (a *App) HandleKey(key display.Key) error {
	if next := a.pendingCfg.Swap(nil); next != nil {
		a.cfg = next
		a.log.Info("configuration updated")
	}

	switch a.mode {
	case ModeCommand:
		return a.handleCommandKey(key)
	default:
		return a.handleEditKey(key)
	}
}

func (a *App) handleEditKey(key display.Key) error {
	switch key.Code {
	case display.CodeUp:
		a.moveCursor(0, -1)
	case display.CodeDown:
		a.moveCursor(0, 1)
	case display.CodeLeft:
		a.moveCursor(-1, 0)
	case display.CodeRight:
		a.moveCursor(1, 0)

	case display.CodeHome:
		a.moveTo(document.Position{Line: a.cursor.Line, Column: 0})
	case display.CodeEnd:
		a.moveTo(document.Position{
			Line:   a.cursor.Line,
			Column: a.session.Current().LineLen(a.cursor.Line),
		})

	case display.CodeBackspace:
		if a.readonly {
			return ErrReadOnly
		}
		a.saveUndoState()
		return a.backspace()

	case display.CodeDelete:
		if a.readonly {
			return ErrReadOnly
		}
		a.saveUndoState()
		return a.deleteForward()

	case display.CodeTab:
		if a.readonly {
			return ErrReadOnly
		}
		a.saveUndoState()
		a.actions.StartGroup()
		for i := 0; i < a.cfg.Editor.TabSize; i++ {
			if err := a.insertChar(' '); err != nil {
				a.actions.EndGroup()
				return err
			}
		}
		a.actions.EndGroup()

	case display.CodeEnter:
		if a.readonly {
			return ErrReadOnly
		}
		a.saveUndoState()
		return a.insertChar('\n')

	case display.CodeEscape:
		a.mode = ModeCommand
		a.hasAnchor = false
		a.cmdBuf = ""

	case display.CodeCtrlS:
		return a.saveCurrent()
	case display.CodeCtrlQ, display.CodeCtrlC:
		return a.requestQuit()

	case display.CodeRune:
		if key.Ch == ':' {
			a.mode = ModeCommand
			a.cmdBuf = ":"
			return nil
		}
		if a.readonly {
			return ErrReadOnly
		}
		a.saveUndoState()
		return a.insertChar(key.Ch)
	}

	return nil
}

func (a *App) handleCommandKey(key display.Key) error {
	switch key.Code {
	case display.CodeUp:
		a.moveCursor(0, -1)
	case display.CodeDown:
		a.moveCursor(0, 1)
	case display.CodeLeft:
		a.moveCursor(-1, 0)
	case display.CodeRight:
		a.moveCursor(1, 0)
	case display.CodeHome:
		a.moveTo(document.Position{Line: a.cursor.Line, Column: 0})
	case display.CodeEnd:
		a.moveTo(document.Position{
			Line:   a.cursor.Line,
			Column: a.session.Current().LineLen(a.cursor.Line),
		})

	case display.CodeEnter:
		if a.cmdBuf != "" {
			err := a.execCommand(strings.TrimPrefix(a.cmdBuf, ":"))
			a.cmdBuf = ""
			a.mode = ModeEdit
			return err
		}
		a.mode = ModeEdit

	case display.CodeEscape:
		a.cmdBuf = ""
		a.mode = ModeEdit

	case display.CodeBackspace:
		if a.cmdBuf != "" {
			a.cmdBuf = a.cmdBuf[:len(a.cmdBuf)-1]
			if a.cmdBuf == "" {
				a.mode = ModeEdit
			}
		}

	case display.CodeCtrlQ, display.CodeCtrlC:
		return a.requestQuit()

	case display.CodeRune:
		if a.cmdBuf != "" {
			a.cmdBuf += string(key.Ch)
			return nil
		}
		return a.handleCommandShortcut(key.Ch)
	}

	return nil
}

// handleCommandShortcut runs the single-key commands available in command
// mode before a ':' command is started.
func (a *App) handleCommandShortcut(ch rune) error {
	switch ch {
	case 'q':
		return a.requestQuit()
	case 's':
		return a.saveCurrent()
	case 'i':
		a.mode = ModeEdit
	case 'u':
		a.undo()
	case 'r':
		a.redo()
	case 'n':
		if err := a.session.Next(); err != nil {
			return err
		}
		a.resetView()
	case 'p':
		if err := a.session.Previous(); err != nil {
			return err
		}
		a.resetView()
	case 'v':
		a.selAnchor = a.cursorOffset()
		a.hasAnchor = true
		a.message = "selection started"
	case 'y':
		return a.copySelection()
	case 'x':
		return a.cutSelection()
	case 'P':
		return a.paste()
	case 'h':
		a.showHelp()
	case ':':
		a.cmdBuf = ":"
	}
	return nil
}

// execCommand runs a ':' command line.
func (a *App) execCommand(command string) error {
	parts := strings.Fields(command)
	if len(parts) == 0 {
		return nil
	}

	switch parts[0] {
	case "q", "quit":
		return a.requestQuit()

	case "w", "write":
		if len(parts) > 1 {
			return a.saveAs(parts[1])
		}
		return a.saveCurrent()

	case "wq":
		if err := a.saveCurrent(); err != nil {
			return err
		}
		return ErrQuit

	case "e", "edit", "o", "open":
		if len(parts) > 1 {
			return a.openFile(parts[1])
		}

	case "new":
		a.session.NewEmpty()
		a.resetView()

	case "bd", "bdelete":
		index := a.session.CurrentIndex()
		if len(parts) > 1 {
			if n, err := strconv.Atoi(parts[1]); err == nil {
				index = n
			}
		}
		if err := a.session.Close(index); err != nil {
			return err
		}
		a.resetView()

	case "b", "buffer":
		if len(parts) > 1 {
			n, err := strconv.Atoi(parts[1])
			if err != nil || n <= 0 {
				return nil
			}
			if err := a.session.SwitchTo(n - 1); err != nil {
				return err
			}
			a.resetView()
		}

	case "ls", "buffers":
		a.showBufferList()

	case "help":
		a.showHelp()

	default:
		a.message = fmt.Sprintf("Unknown command: %s", command)
	}

	return nil
}

// cursorOffset translates the live cursor into an offset in the current
// document.
func (a *App) cursorOffset() int {
	return document.ToOffset(a.session.Current(), a.cursor)
}

func (a *App) constrainCursor() {
	a.cursor = document.Constrain(a.session.Current(), a.cursor)
}

func (a *App) moveCursor(dx, dy int) {
	line := a.cursor.Line + dy
	col := a.cursor.Column + dx
	if line < 0 {
		line = 0
	}
	if col < 0 {
		col = 0
	}
	a.cursor = document.Position{Line: line, Column: col}
	a.constrainCursor()
}

func (a *App) moveTo(pos document.Position) {
	a.cursor = pos
	a.constrainCursor()
}

// resetView re-homes the cursor after the current document changes
// identity (open, new, close, buffer switch).
func (a *App) resetView() {
	a.cursor = document.Position{}
	a.hasAnchor = false
}

func (a *App) insertChar(ch rune) error {
	offset := a.cursorOffset()
	if err := a.session.Insert(offset, ch); err != nil {
		return err
	}
	a.actions.Record(history.Action{Kind: history.ActionInsert, Offset: offset, Ch: ch})

	if ch == '\n' {
		a.cursor.Line++
		a.cursor.Column = 0
	} else {
		a.cursor.Column += utf8.RuneLen(ch)
	}
	a.constrainCursor()
	return nil
}

// backspace removes the character before the cursor, joining lines when
// the cursor sits at the start of one. At the very start of the document
// it does nothing.
func (a *App) backspace() error {
	if a.cursor.Column == 0 && a.cursor.Line == 0 {
		return nil
	}

	if a.cursor.Column == 0 {
		a.cursor.Line--
		a.cursor.Column = a.session.Current().LineLen(a.cursor.Line)
	} else {
		a.cursor.Column--
	}

	offset := a.cursorOffset()
	removed := a.charAt(offset)
	if err := a.session.Delete(offset); err != nil {
		return err
	}
	a.actions.Record(history.Action{Kind: history.ActionDelete, Offset: offset, Ch: removed})
	a.constrainCursor()
	return nil
}

// deleteForward removes the character under the cursor by stepping right
// and backspacing, then restoring the cursor.
func (a *App) deleteForward() error {
	start := a.cursor
	a.moveCursor(1, 0)
	if a.cursor == start {
		// Already at the end of the line; behaves like backspace, as
		// the cursor cannot advance past the final column.
		if err := a.backspace(); err != nil {
			return err
		}
		return nil
	}
	if err := a.backspace(); err != nil {
		return err
	}
	a.moveTo(start)
	return nil
}

func (a *App) charAt(offset int) rune {
	text := a.session.Current().Text()
	if offset < 0 || offset >= len(text) {
		return 0
	}
	ch, _ := utf8.DecodeRuneInString(text[offset:])
	return ch
}

func (a *App) saveUndoState() {
	a.history.SaveState(a.session.Current().Text())
}

// restore replaces the current document's content wholesale and
// re-constrains the cursor.
func (a *App) restore(content string) {
	a.session.Clear()
	if err := a.session.Append(content); err != nil {
		a.log.Error("restoring content: %v", err)
		return
	}
	a.constrainCursor()
}

func (a *App) undo() {
	if content, ok := a.history.Undo(); ok {
		a.restore(content)
		a.message = "undo"
		return
	}
	a.message = "nothing to undo"
}

func (a *App) redo() {
	if content, ok := a.history.Redo(); ok {
		a.restore(content)
		a.message = "redo"
		return
	}
	a.message = "nothing to redo"
}

func (a *App) selectionRange() (start, end int, ok bool) {
	if !a.hasAnchor {
		return 0, 0, false
	}
	start, end = a.selAnchor, a.cursorOffset()
	if start > end {
		start, end = end, start
	}
	return start, end, true
}

func (a *App) copySelection() error {
	start, end, ok := a.selectionRange()
	if !ok {
		a.message = "no selection"
		return nil
	}
	text, err := a.clip.Copy(a.session.Current(), start, end)
	if err != nil {
		return err
	}
	a.hasAnchor = false
	a.message = fmt.Sprintf("copied %d characters", utf8.RuneCountInString(text))
	return nil
}

func (a *App) cutSelection() error {
	start, end, ok := a.selectionRange()
	if !ok {
		a.message = "no selection"
		return nil
	}
	if a.readonly {
		return ErrReadOnly
	}

	a.saveUndoState()
	text, pos, err := a.clip.Cut(a.session.Current(), start, end)
	if err != nil {
		return err
	}
	a.session.MarkDirty()
	a.cursor = pos
	a.hasAnchor = false
	a.message = fmt.Sprintf("cut %d characters", utf8.RuneCountInString(text))
	return nil
}

func (a *App) paste() error {
	if a.readonly {
		return ErrReadOnly
	}
	if a.clip.IsEmpty() {
		a.message = "clipboard empty"
		return nil
	}

	a.saveUndoState()
	pos, err := a.clip.Paste(a.session.Current(), a.cursor)
	if err != nil {
		return err
	}
	a.session.MarkDirty()
	a.cursor = pos
	return nil
}

func (a *App) saveCurrent() error {
	if a.readonly {
		a.message = "Cannot save in read-only mode"
		return nil
	}

	name := a.session.CurrentMeta().Name
	if err := a.session.SaveCurrent(); err != nil {
		return NewOperationError("save", name, err)
	}
	a.log.Info("saved %s", name)
	a.message = "File saved"
	return nil
}

func (a *App) saveAs(name string) error {
	if a.readonly {
		a.message = "Cannot save in read-only mode"
		return nil
	}

	a.session.RenameCurrent(name)
	if err := a.session.SaveCurrent(); err != nil {
		return NewOperationError("save", name, err)
	}
	a.log.Info("saved as %s", name)
	a.message = fmt.Sprintf("Saved as %s", name)
	return nil
}

func (a *App) openFile(name string) error {
	index, err := a.session.OpenOrFocus(name)
	if err != nil {
		a.message = fmt.Sprintf("Error opening %s: %v", name, err)
		return nil
	}
	a.resetView()
	if m, ok := a.session.Meta(index); ok {
		a.log.Info("opened %s (doc %s)", name, m.ID)
	}
	a.message = fmt.Sprintf("Opened %s", name)
	return nil
}

// requestQuit exits immediately when nothing is modified; otherwise it
// prompts on the status line: save current and quit, save all and quit,
// quit without saving, or cancel.
func (a *App) requestQuit() error {
	var dirty []int
	for i, m := range a.session.List() {
		if m.Dirty {
			dirty = append(dirty, i)
		}
	}
	if len(dirty) == 0 {
		return ErrQuit
	}

	a.surface.RenderStatus(fmt.Sprintf("%d file(s) modified. Save before quit? (y/n/a)", len(dirty)))
	a.surface.Show()

	key := a.surface.PollKey()
	if key.Code != display.CodeRune {
		return nil
	}

	switch key.Ch {
	case 'y', 'Y':
		if err := a.saveCurrent(); err != nil {
			return err
		}
		return ErrQuit
	case 'a', 'A':
		for _, index := range dirty {
			if err := a.session.SwitchTo(index); err != nil {
				return err
			}
			if err := a.session.SaveCurrent(); err != nil {
				return err
			}
		}
		return ErrQuit
	case 'n', 'N':
		return ErrQuit
	default:
		return nil
	}
}

func (a *App) render() {
	_, height := a.surface.Size()
	rows := height - 1
	doc := a.session.Current()

	for row := 0; row < rows; row++ {
		line, _ := doc.Line(row)
		a.surface.RenderLine(row, line)
	}

	a.surface.RenderStatus(a.statusText())
	a.message = ""

	a.surface.MoveCursor(a.cursor.Column, a.cursor.Line)
	a.surface.Show()
}

func (a *App) statusText() string {
	if a.cmdBuf != "" {
		return fmt.Sprintf("%s | %s", a.cmdBuf, a.mode)
	}

	base := fmt.Sprintf("%s | %d:%d | %s",
		a.session.StatusLine(), a.cursor.Line+1, a.cursor.Column+1, a.mode)
	if a.message != "" {
		return fmt.Sprintf("%s | %s", a.message, base)
	}
	return base
}

// showFullScreen replaces the viewport with arbitrary text and waits for
// a key press.
func (a *App) showFullScreen(text string) {
	_, height := a.surface.Size()
	lines := strings.Split(text, "\n")
	for row := 0; row < height-1; row++ {
		line := ""
		if row < len(lines) {
			line = lines[row]
		}
		a.surface.RenderLine(row, line)
	}
	a.surface.RenderStatus("Press any key to continue...")
	a.surface.Show()
	a.surface.PollKey()
}

func (a *App) showBufferList() {
	var b strings.Builder
	b.WriteString("Documents:\n")

	current := a.session.CurrentIndex()
	for i, m := range a.session.List() {
		marker := " "
		if i == current {
			marker = "*"
		}
		modified := " "
		if m.Dirty {
			modified = "+"
		}
		fmt.Fprintf(&b, "%s%s%3d: %-24s %s\n", marker, modified, i+1, m.Name, m.ID.String()[:8])
	}

	a.showFullScreen(b.String())
}

func (a *App) showHelp() {
	a.showFullScreen(helpText)
}

const helpText = `Linecraft Help
==============

File Operations:
  :e <file>    - Edit/open file
  :o <file>    - Open file (same as :e)
  :w           - Write/save current file
  :w <file>    - Save as different filename
  :wq          - Write and quit
  :q           - Quit (prompts if modified)

Buffer Operations:
  :new         - Create new document
  :ls          - List all documents
  :b <num>     - Switch to document number
  :bd          - Close current document
  n            - Next document (in command mode)
  p            - Previous document (in command mode)

Edit Mode:
  Arrow keys   - Move cursor
  Backspace    - Delete character before cursor
  Delete       - Delete character at cursor
  Tab          - Insert spaces
  Enter        - New line
  Escape       - Switch to command mode
  :            - Start command input

Command Mode:
  i            - Switch to edit mode
  u            - Undo
  r            - Redo
  v            - Start selection at cursor
  y            - Copy selection
  x            - Cut selection
  P            - Paste at cursor
  h            - Show this help`
