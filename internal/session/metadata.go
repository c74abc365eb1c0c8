package session

import "github.com/google/uuid"

// Metadata describes one open document.
type Metadata struct {
	// ID uniquely identifies the document for the lifetime of the
	// process, independent of its name or index.
	ID uuid.UUID

	// Name is the file name the document loads from and saves to, or an
	// untitled placeholder.
	Name string

	// Dirty is true when the document has unsaved changes.
	Dirty bool
}

// NewMetadata creates metadata for a clean document with the given name.
func NewMetadata(name string) Metadata {
	return Metadata{
		ID:   uuid.New(),
		Name: name,
	}
}

// IsUntitled returns true if the document has a placeholder name rather
// than a file name.
func (m Metadata) IsUntitled() bool {
	return len(m.Name) > 0 && m.Name[0] == '*'
}
