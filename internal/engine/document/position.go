package document

import "fmt"

// Offset is a byte position into a document's flat text.
// Valid offsets lie in [0, Len()] inclusive; Len() is the append point.
type Offset = int

// Position is a line and column coordinate into a document's line view.
// Both fields are 0-indexed; Column is measured in bytes from the start
// of the line. A Position carries no inherent validity: whether it maps
// into a given document is decided at translation time.
type Position struct {
	Line   int
	Column int
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Position) Compare(other Position) int {
	if p.Line != other.Line {
		if p.Line < other.Line {
			return -1
		}
		return 1
	}
	if p.Column != other.Column {
		if p.Column < other.Column {
			return -1
		}
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// IsZero returns true if this is the origin position (0:0).
func (p Position) IsZero() bool {
	return p.Line == 0 && p.Column == 0
}
