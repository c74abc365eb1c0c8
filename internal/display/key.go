package display

// Code identifies a key press. Printable input carries CodeRune plus the
// character itself; everything else uses a reserved code.
type Code int

const (
	// CodeRune is a printable character.
	CodeRune Code = iota
	CodeEnter
	CodeEscape
	CodeBackspace
	CodeDelete
	CodeUp
	CodeDown
	CodeLeft
	CodeRight
	CodeHome
	CodeEnd
	CodePageUp
	CodePageDown
	CodeTab
	CodeCtrlC
	CodeCtrlS
	CodeCtrlQ
)

// String returns the code name.
func (c Code) String() string {
	switch c {
	case CodeRune:
		return "rune"
	case CodeEnter:
		return "enter"
	case CodeEscape:
		return "escape"
	case CodeBackspace:
		return "backspace"
	case CodeDelete:
		return "delete"
	case CodeUp:
		return "up"
	case CodeDown:
		return "down"
	case CodeLeft:
		return "left"
	case CodeRight:
		return "right"
	case CodeHome:
		return "home"
	case CodeEnd:
		return "end"
	case CodePageUp:
		return "pageup"
	case CodePageDown:
		return "pagedown"
	case CodeTab:
		return "tab"
	case CodeCtrlC:
		return "ctrl+c"
	case CodeCtrlS:
		return "ctrl+s"
	case CodeCtrlQ:
		return "ctrl+q"
	default:
		return "unknown"
	}
}

// Key is one decoded key press.
type Key struct {
	Code Code

	// Ch holds the character for CodeRune keys.
	Ch rune
}

// RuneKey builds a printable key press.
func RuneKey(ch rune) Key {
	return Key{Code: CodeRune, Ch: ch}
}
