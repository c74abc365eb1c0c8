package session

import (
	"fmt"

	"github.com/dshills/linecraft/internal/engine/document"
	"github.com/dshills/linecraft/internal/fileio"
)

// Session owns an ordered collection of documents plus per-document
// metadata, and routes text mutations to the current document.
type Session struct {
	docs    []*document.Document
	meta    []Metadata
	current int
	files   fileio.FileService

	// nextUntitled numbers placeholder names. It only counts up, so a
	// name is never reused even after its document is closed.
	nextUntitled int
}

// New creates a session holding a single untitled document.
func New(files fileio.FileService) *Session {
	s := &Session{files: files}
	s.NewEmpty()
	return s
}

// FromFiles creates a session with one document per named file, loaded
// through the file service. An empty name list yields a single untitled
// document.
func FromFiles(files fileio.FileService, names []string) (*Session, error) {
	s := &Session{files: files}
	if len(names) == 0 {
		s.NewEmpty()
		return s, nil
	}
	for _, name := range names {
		if _, err := s.OpenOrFocus(name); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Count returns the number of open documents.
func (s *Session) Count() int {
	return len(s.docs)
}

// CurrentIndex returns the index of the current document.
func (s *Session) CurrentIndex() int {
	return s.current
}

// Current returns the current document.
func (s *Session) Current() *document.Document {
	return s.docs[s.current]
}

// CurrentMeta returns the current document's metadata.
func (s *Session) CurrentMeta() Metadata {
	return s.meta[s.current]
}

// Meta returns the metadata at an index. The second result is false for
// out-of-range indexes.
func (s *Session) Meta(index int) (Metadata, bool) {
	if index < 0 || index >= len(s.meta) {
		return Metadata{}, false
	}
	return s.meta[index], true
}

// List returns a copy of all document metadata in order.
func (s *Session) List() []Metadata {
	out := make([]Metadata, len(s.meta))
	copy(out, s.meta)
	return out
}

// FindByName returns the index of the document with the given name.
func (s *Session) FindByName(name string) (int, bool) {
	for i, m := range s.meta {
		if m.Name == name {
			return i, true
		}
	}
	return 0, false
}

// OpenOrFocus opens the named file as a new document and focuses it. If a
// document with this name is already open it is focused instead, so
// opening the same name twice never duplicates it. File service errors
// surface unmodified.
func (s *Session) OpenOrFocus(name string) (int, error) {
	if index, ok := s.FindByName(name); ok {
		s.current = index
		return index, nil
	}

	content, err := s.files.Open(name)
	if err != nil {
		return 0, err
	}

	s.docs = append(s.docs, document.FromContent(content))
	s.meta = append(s.meta, NewMetadata(name))

	index := len(s.docs) - 1
	s.current = index
	return index, nil
}

// NewEmpty appends a fresh untitled document and focuses it.
func (s *Session) NewEmpty() int {
	name := fmt.Sprintf("*untitled-%d", s.nextUntitled)
	s.nextUntitled++

	s.docs = append(s.docs, document.New())
	s.meta = append(s.meta, NewMetadata(name))

	index := len(s.docs) - 1
	s.current = index
	return index
}

// SwitchTo focuses the document at an index.
func (s *Session) SwitchTo(index int) error {
	if index < 0 || index >= len(s.docs) {
		return document.ErrOutOfBounds
	}
	s.current = index
	return nil
}

// Close removes the document at an index. Closing the only remaining
// document replaces it in place with a fresh untitled one, so the session
// never drops below one document.
func (s *Session) Close(index int) error {
	if index < 0 || index >= len(s.docs) {
		return document.ErrOutOfBounds
	}

	if len(s.docs) == 1 {
		s.docs[0] = document.New()
		s.meta[0] = NewMetadata("*untitled*")
		return nil
	}

	s.docs = append(s.docs[:index], s.docs[index+1:]...)
	s.meta = append(s.meta[:index], s.meta[index+1:]...)

	if s.current >= index && s.current > 0 {
		s.current--
	} else if s.current >= len(s.docs) {
		s.current = len(s.docs) - 1
	}

	return nil
}

// Next cycles the current document forward, wrapping at the end.
func (s *Session) Next() error {
	if len(s.docs) == 0 {
		return document.ErrInvalidOperation
	}
	s.current = (s.current + 1) % len(s.docs)
	return nil
}

// Previous cycles the current document backward, wrapping at the start.
func (s *Session) Previous() error {
	if len(s.docs) == 0 {
		return document.ErrInvalidOperation
	}
	if s.current == 0 {
		s.current = len(s.docs) - 1
	} else {
		s.current--
	}
	return nil
}

// MarkDirty flags the current document as having unsaved changes. Used
// by callers that mutate the current document directly rather than
// through the session pass-throughs.
func (s *Session) MarkDirty() {
	s.meta[s.current].Dirty = true
}

// RenameCurrent changes the name the current document saves under.
func (s *Session) RenameCurrent(name string) {
	s.meta[s.current].Name = name
}

// SaveCurrent writes the current document through the file service under
// its metadata name. The dirty flag clears only when the write succeeds.
func (s *Session) SaveCurrent() error {
	if err := s.files.Save(s.meta[s.current].Name, s.docs[s.current].Text()); err != nil {
		return err
	}
	s.meta[s.current].Dirty = false
	return nil
}

// StatusLine describes the current document: its name, a modified marker,
// and its position within the session when more than one document is
// open.
func (s *Session) StatusLine() string {
	m := s.meta[s.current]

	modified := ""
	if m.Dirty {
		modified = "*"
	}

	position := ""
	if len(s.docs) > 1 {
		position = fmt.Sprintf(" [%d/%d]", s.current+1, len(s.docs))
	}

	return m.Name + modified + position
}

// Insert inserts a rune into the current document and marks it dirty on
// success.
func (s *Session) Insert(offset int, ch rune) error {
	if err := s.docs[s.current].Insert(offset, ch); err != nil {
		return err
	}
	s.meta[s.current].Dirty = true
	return nil
}

// Delete removes a character from the current document and marks it dirty
// on success.
func (s *Session) Delete(offset int) error {
	if err := s.docs[s.current].Delete(offset); err != nil {
		return err
	}
	s.meta[s.current].Dirty = true
	return nil
}

// Append adds text to the end of the current document. Appending empty
// text is a no-op and does not mark the document dirty.
func (s *Session) Append(text string) error {
	if text == "" {
		return nil
	}
	if err := s.docs[s.current].Append(text); err != nil {
		return err
	}
	s.meta[s.current].Dirty = true
	return nil
}

// Clear empties the current document and marks it dirty.
func (s *Session) Clear() {
	s.docs[s.current].Clear()
	s.meta[s.current].Dirty = true
}
