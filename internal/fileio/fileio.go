package fileio

import "errors"

// Validation errors returned by the Safe wrapper. I/O failures from the
// underlying storage surface unmodified.
var (
	ErrInvalidName = errors.New("invalid file name")
	ErrTooLarge    = errors.New("file exceeds maximum size")
)

// FileService loads and stores document content by name.
type FileService interface {
	// Open reads the entire content of the named file.
	Open(name string) (string, error)

	// Save writes content to the named file, replacing any previous
	// content.
	Save(name, content string) error
}
