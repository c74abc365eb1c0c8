package history

import "fmt"

// ActionKind discriminates the primitive edit actions.
type ActionKind uint8

const (
	// ActionInsert records a character inserted at an offset.
	ActionInsert ActionKind = iota

	// ActionDelete records a character removed at an offset.
	ActionDelete
)

// String returns the kind name.
func (k ActionKind) String() string {
	switch k {
	case ActionInsert:
		return "insert"
	case ActionDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Action is a single primitive edit: one character inserted or deleted at
// a byte offset.
type Action struct {
	Kind   ActionKind
	Offset int
	Ch     rune
}

// String returns a human-readable representation of the action.
func (a Action) String() string {
	return fmt.Sprintf("%s %q at %d", a.Kind, a.Ch, a.Offset)
}

// Inverse returns the action that undoes this one.
func (a Action) Inverse() Action {
	switch a.Kind {
	case ActionInsert:
		return Action{Kind: ActionDelete, Offset: a.Offset, Ch: a.Ch}
	default:
		return Action{Kind: ActionInsert, Offset: a.Offset, Ch: a.Ch}
	}
}

// Log records edit actions for action-level undo/redo, with optional
// grouping of a run of actions into one logical undo unit.
type Log struct {
	actions  *Stack[Action]
	grouping bool
	group    []Action
}

// NewLog creates an action log bounded by the given capacity.
func NewLog(capacity int) *Log {
	return &Log{actions: NewStack[Action](capacity)}
}

// Record adds an action to the log. While a group is open the action is
// buffered instead and only committed on EndGroup.
func (l *Log) Record(a Action) {
	if l.grouping {
		l.group = append(l.group, a)
		return
	}
	l.actions.SaveState(a)
}

// StartGroup begins buffering actions into a single undo unit. Starting a
// new group discards any actions buffered by an unfinished one.
func (l *Log) StartGroup() {
	l.grouping = true
	l.group = l.group[:0]
}

// EndGroup commits the open group. Only the last action recorded during
// the group is retained as the undo entry for the whole group; the
// intermediate actions are discarded rather than replayed. An empty group
// commits nothing.
func (l *Log) EndGroup() {
	if l.grouping && len(l.group) > 0 {
		l.actions.SaveState(l.group[len(l.group)-1])
	}
	l.grouping = false
	l.group = l.group[:0]
}

// UndoAction removes the most recently recorded action and returns its
// inverse, which the caller applies to walk the document backward.
func (l *Log) UndoAction() (Action, bool) {
	top, ok := l.actions.PeekUndo()
	if !ok {
		return Action{}, false
	}
	l.actions.Undo()
	return top.Inverse(), true
}

// RedoAction returns the most recently undone action as recorded, which
// the caller re-applies to walk the document forward.
func (l *Log) RedoAction() (Action, bool) {
	return l.actions.Redo()
}

// CanUndo returns true if an action is available to undo.
func (l *Log) CanUndo() bool {
	return l.actions.CanUndo()
}

// CanRedo returns true if an action is available to redo.
func (l *Log) CanRedo() bool {
	return l.actions.CanRedo()
}

// IsGrouping returns true while a group is open.
func (l *Log) IsGrouping() bool {
	return l.grouping
}

// Counts returns the number of recorded undo and redo actions.
func (l *Log) Counts() (undo, redo int) {
	return l.actions.UndoCount(), l.actions.RedoCount()
}

// Clear discards all recorded actions and any open group.
func (l *Log) Clear() {
	l.actions.Clear()
	l.grouping = false
	l.group = l.group[:0]
}
