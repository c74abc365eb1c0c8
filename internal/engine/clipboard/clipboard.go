package clipboard

import (
	"unicode/utf8"

	"github.com/dshills/linecraft/internal/engine/document"
)

// Clipboard holds a single slot of copied text. Each copy or cut replaces
// the previous content.
type Clipboard struct {
	content string
	held    bool
}

// New creates an empty clipboard.
func New() *Clipboard {
	return &Clipboard{}
}

// Copy stores and returns the characters in [start, end) from the
// document. Indexes are character positions; the range must be non-empty
// and within the document.
func (c *Clipboard) Copy(doc *document.Document, start, end int) (string, error) {
	if start < 0 || start >= doc.Len() || end > doc.Len() || start >= end {
		return "", document.ErrInvalidOperation
	}
	chars := []rune(doc.Text())
	if end > len(chars) {
		end = len(chars)
	}
	c.content = string(chars[start:end])
	c.held = true
	return c.content, nil
}

// Cut copies the range and then removes it from the document. Each delete
// shifts the remaining characters left, so deleting at the fixed start
// offset consumes the whole range. It returns the copied text and the
// cursor position at the cut point.
func (c *Clipboard) Cut(doc *document.Document, start, end int) (string, document.Position, error) {
	text, err := c.Copy(doc, start, end)
	if err != nil {
		return "", document.Position{}, err
	}
	for i := start; i < end; i++ {
		if start >= doc.Len() {
			break
		}
		if err := doc.Delete(start); err != nil {
			return "", document.Position{}, err
		}
	}
	pos := document.FromOffset(doc, start)
	return text, document.Constrain(doc, pos), nil
}

// Paste inserts the clipboard content at the given position, one character
// at a time, and returns the position following the inserted text. Pasting
// an empty clipboard leaves the document unchanged.
func (c *Clipboard) Paste(doc *document.Document, pos document.Position) (document.Position, error) {
	if !c.held || c.content == "" {
		return pos, nil
	}
	offset := document.ToOffset(doc, pos)
	for _, ch := range c.content {
		if err := doc.Insert(offset, ch); err != nil {
			return document.FromOffset(doc, offset), err
		}
		offset += utf8.RuneLen(ch)
	}
	return document.FromOffset(doc, offset), nil
}

// Content returns the held text and whether anything has been stored.
func (c *Clipboard) Content() (string, bool) {
	return c.content, c.held
}

// SetContent replaces the held text directly.
func (c *Clipboard) SetContent(text string) {
	c.content = text
	c.held = true
}

// IsEmpty returns true if nothing has been copied.
func (c *Clipboard) IsEmpty() bool {
	return !c.held || c.content == ""
}

// Clear discards the held text.
func (c *Clipboard) Clear() {
	c.content = ""
	c.held = false
}
