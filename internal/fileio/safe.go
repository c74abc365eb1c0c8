package fileio

import (
	"fmt"
	"strings"
)

// DefaultMaxFileSize bounds file content in both directions for the Safe
// wrapper.
const DefaultMaxFileSize = 10 * 1024 * 1024

// Safe wraps a FileService with filename validation and a size ceiling
// applied to both opened and saved content.
type Safe struct {
	inner   FileService
	maxSize int
}

// Ensure Safe implements FileService.
var _ FileService = (*Safe)(nil)

// NewSafe wraps a file service. A non-positive maxSize selects
// DefaultMaxFileSize.
func NewSafe(inner FileService, maxSize int) *Safe {
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	return &Safe{inner: inner, maxSize: maxSize}
}

// MaxSize returns the size ceiling in bytes.
func (s *Safe) MaxSize() int {
	return s.maxSize
}

// Open validates the name, reads through the inner service, and rejects
// content over the size ceiling.
func (s *Safe) Open(name string) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}

	content, err := s.inner.Open(name)
	if err != nil {
		return "", err
	}
	if len(content) > s.maxSize {
		return "", fmt.Errorf("open %s: %d bytes: %w", name, len(content), ErrTooLarge)
	}
	return content, nil
}

// Save validates the name and size, then writes through the inner
// service.
func (s *Safe) Save(name, content string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if len(content) > s.maxSize {
		return fmt.Errorf("save %s: %d bytes: %w", name, len(content), ErrTooLarge)
	}
	return s.inner.Save(name, content)
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("empty name: %w", ErrInvalidName)
	}
	if strings.ContainsRune(name, 0) {
		return fmt.Errorf("name contains NUL: %w", ErrInvalidName)
	}
	return nil
}
