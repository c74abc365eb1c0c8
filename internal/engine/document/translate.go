package document

// Translation between Position and Offset. These functions are pure with
// respect to a document snapshot and never fail: out-of-range input
// saturates to the nearest valid value. Interactive cursors drift stale by
// a keystroke all the time, and a hard failure here would surface on every
// such race with the buffer.

// ToOffset converts a position to a byte offset into the document's flat
// text. The line is clamped to the line count and the column to the length
// of the target line. The result is always a valid offset in [0, Len()].
func ToOffset(d *Document, pos Position) Offset {
	if pos.Line < 0 || pos.Column < 0 {
		return 0
	}

	offset := 0
	stop := min(pos.Line, d.LineCount())
	for i := 0; i < stop; i++ {
		offset += d.LineLen(i) + 1
	}
	offset += min(pos.Column, d.LineLen(pos.Line))

	return min(offset, d.Len())
}

// FromOffset converts a byte offset back to a position. Offsets past the
// end of the text map to the end of the last line.
func FromOffset(d *Document, offset Offset) Position {
	if offset <= 0 {
		return Position{}
	}

	pos := 0
	for i := 0; i < d.LineCount(); i++ {
		lineLen := d.LineLen(i)
		if pos+lineLen >= offset {
			return Position{Line: i, Column: offset - pos}
		}
		pos += lineLen + 1
	}

	last := d.LineCount() - 1
	return Position{Line: last, Column: d.LineLen(last)}
}

// Constrain clamps a position into the document: the line into
// [0, LineCount()-1] and the column into [0, LineLen(line)]. Callers must
// re-constrain the live cursor after every mutation that can shrink the
// document underneath it.
func Constrain(d *Document, pos Position) Position {
	if pos.Line < 0 {
		pos.Line = 0
	}
	if last := d.LineCount() - 1; pos.Line > last {
		pos.Line = last
	}

	if pos.Column < 0 {
		pos.Column = 0
	}
	if lineLen := d.LineLen(pos.Line); pos.Column > lineLen {
		pos.Column = lineLen
	}

	return pos
}
