package history

// DefaultCapacity bounds each side of a stack when no explicit capacity
// is given.
const DefaultCapacity = 100

// Stack is a bounded dual-stack of undo/redo states. Each side holds at
// most the configured capacity, evicting the oldest entry first. A Stack
// is owned by a single session and is not safe for concurrent use.
type Stack[T any] struct {
	undo     []T
	redo     []T
	capacity int
}

// NewStack creates a stack with the given capacity per side.
// Non-positive capacities fall back to DefaultCapacity.
func NewStack[T any](capacity int) *Stack[T] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Stack[T]{capacity: capacity}
}

// SaveState pushes a new state onto the undo side and clears the redo
// side: previously undone states are only reachable until the next fresh
// edit.
func (s *Stack[T]) SaveState(state T) {
	s.undo = append(s.undo, state)
	s.redo = nil
	s.evict()
}

// Undo moves the most recent state to the redo side and returns the state
// now on top of the undo side, which is the one to restore. The boolean
// is false when there was nothing to undo, or when the pop emptied the
// stack and no earlier state remains.
func (s *Stack[T]) Undo() (T, bool) {
	var zero T
	if len(s.undo) == 0 {
		return zero, false
	}

	top := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	s.redo = append(s.redo, top)
	s.evict()

	if len(s.undo) == 0 {
		return zero, false
	}
	return s.undo[len(s.undo)-1], true
}

// Redo moves the most recently undone state back to the undo side and
// returns it. Unlike Undo, the popped entry itself is the state to
// restore: redo steps forward onto a state, undo steps back behind one.
func (s *Stack[T]) Redo() (T, bool) {
	var zero T
	if len(s.redo) == 0 {
		return zero, false
	}

	state := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	s.undo = append(s.undo, state)
	s.evict()

	return state, true
}

// PeekUndo returns the most recent undo state without removing it.
func (s *Stack[T]) PeekUndo() (T, bool) {
	var zero T
	if len(s.undo) == 0 {
		return zero, false
	}
	return s.undo[len(s.undo)-1], true
}

// PeekRedo returns the most recent redo state without removing it.
func (s *Stack[T]) PeekRedo() (T, bool) {
	var zero T
	if len(s.redo) == 0 {
		return zero, false
	}
	return s.redo[len(s.redo)-1], true
}

// CanUndo returns true if an undo state is available.
func (s *Stack[T]) CanUndo() bool {
	return len(s.undo) > 0
}

// CanRedo returns true if a redo state is available.
func (s *Stack[T]) CanRedo() bool {
	return len(s.redo) > 0
}

// UndoCount returns the number of states on the undo side.
func (s *Stack[T]) UndoCount() int {
	return len(s.undo)
}

// RedoCount returns the number of states on the redo side.
func (s *Stack[T]) RedoCount() int {
	return len(s.redo)
}

// Capacity returns the per-side capacity.
func (s *Stack[T]) Capacity() int {
	return s.capacity
}

// Clear discards all undo and redo state.
func (s *Stack[T]) Clear() {
	s.undo = nil
	s.redo = nil
}

// evict trims both sides to capacity, discarding oldest entries first.
func (s *Stack[T]) evict() {
	if excess := len(s.undo) - s.capacity; excess > 0 {
		s.undo = append(s.undo[:0:0], s.undo[excess:]...)
	}
	if excess := len(s.redo) - s.capacity; excess > 0 {
		s.redo = append(s.redo[:0:0], s.redo[excess:]...)
	}
}
