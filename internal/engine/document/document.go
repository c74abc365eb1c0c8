package document

import (
	"errors"
	"strings"
)

// Errors returned by document operations.
var (
	ErrOutOfBounds      = errors.New("offset out of bounds")
	ErrInvalidOperation = errors.New("invalid operation")
)

// Document is a single in-memory text container with line decomposition.
// The flat text is canonical; lines are the derived split on line feeds.
// The line slice is never empty: a document with no content has exactly
// one empty line.
type Document struct {
	text  string
	lines []string
}

// New creates an empty document.
func New() *Document {
	return &Document{
		text:  "",
		lines: []string{""},
	}
}

// FromContent creates a document holding the given text.
func FromContent(content string) *Document {
	d := &Document{text: content}
	d.rebuildLines()
	return d
}

// rebuildText re-derives the flat text from the line slice.
func (d *Document) rebuildText() {
	d.text = strings.Join(d.lines, "\n")
}

// rebuildLines re-derives the line slice from the flat text.
// strings.Split always yields at least one element, so the one-empty-line
// invariant holds for empty text.
func (d *Document) rebuildLines() {
	d.lines = strings.Split(d.text, "\n")
}

// locate maps an offset to the line containing it and the column within
// that line. An offset that lands exactly on a line's trailing separator
// maps to (line, len(line)). Offsets past the end map to the end of the
// last line.
func (d *Document) locate(offset int) (line, col int) {
	pos := 0
	for i, l := range d.lines {
		if pos+len(l) >= offset {
			return i, offset - pos
		}
		pos += len(l) + 1
	}
	last := len(d.lines) - 1
	return last, len(d.lines[last])
}

// Text returns the full document content.
func (d *Document) Text() string {
	return d.text
}

// Len returns the content length in bytes.
func (d *Document) Len() int {
	return len(d.text)
}

// IsEmpty returns true if the document holds no content.
func (d *Document) IsEmpty() bool {
	return d.text == ""
}

// LineCount returns the number of lines. Always at least 1.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// LineLen returns the length of a line in bytes, without its separator.
// Returns 0 for out-of-range lines.
func (d *Document) LineLen(line int) int {
	if line < 0 || line >= len(d.lines) {
		return 0
	}
	return len(d.lines[line])
}

// Line returns the text of a line without its separator.
// The second result is false for out-of-range lines.
func (d *Document) Line(line int) (string, bool) {
	if line < 0 || line >= len(d.lines) {
		return "", false
	}
	return d.lines[line], true
}

// Insert inserts a single rune at the given offset. A line feed splits the
// line containing the offset at the corresponding column; any other rune is
// inserted into that line. Returns ErrOutOfBounds if the offset is past the
// end of the text; Len() itself is a valid insertion point.
func (d *Document) Insert(offset int, ch rune) error {
	if offset < 0 || offset > len(d.text) {
		return ErrOutOfBounds
	}

	line, col := d.locate(offset)
	cur := d.lines[line]

	if ch == '\n' {
		left, right := cur[:col], cur[col:]
		d.lines[line] = left
		d.lines = append(d.lines, "")
		copy(d.lines[line+2:], d.lines[line+1:])
		d.lines[line+1] = right
	} else {
		d.lines[line] = cur[:col] + string(ch) + cur[col:]
	}

	d.rebuildText()
	return nil
}

// Delete removes one character relative to the given offset. The exact
// semantics mirror the interactive backspace/forward-delete behavior the
// engine is built for:
//
//   - offset at column 0 of a non-first line removes the separator before
//     it, merging the line into the previous one
//   - offset on a line's trailing separator removes that separator, merging
//     the line with the next one
//   - any other mid-line offset removes the character it lands on
//   - offset 0 at the start of the buffer is ErrInvalidOperation
//
// Returns ErrOutOfBounds if the offset is at or past the end of the text.
func (d *Document) Delete(offset int) error {
	if offset < 0 || offset >= len(d.text) {
		return ErrOutOfBounds
	}

	line, col := d.locate(offset)

	switch {
	case line == 0 && col == 0:
		// True buffer start, even when the first line is empty and the
		// offset sits on its separator.
		return ErrInvalidOperation
	case col == 0:
		d.lines[line-1] += d.lines[line]
		d.lines = append(d.lines[:line], d.lines[line+1:]...)
	case col == len(d.lines[line]):
		// The bounds check guarantees a following line exists here.
		d.lines[line] += d.lines[line+1]
		d.lines = append(d.lines[:line+1], d.lines[line+2:]...)
	default:
		cur := d.lines[line]
		d.lines[line] = cur[:col] + cur[col+1:]
	}

	d.rebuildText()
	return nil
}

// Append concatenates text onto the end of the document and re-derives the
// line slice from the flat text. Empty input is a no-op.
func (d *Document) Append(text string) error {
	if text == "" {
		return nil
	}
	d.text += text
	d.rebuildLines()
	return nil
}

// Clear resets the document to the empty state: empty text, one empty line.
func (d *Document) Clear() {
	d.text = ""
	d.lines = []string{""}
}
