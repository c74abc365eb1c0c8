package fileio

import (
	"io/fs"
	"sync"
)

// Mem implements FileService with an in-memory map. It is primarily used
// for testing the editor without touching the disk.
//
// Mem is safe for concurrent use.
type Mem struct {
	mu    sync.RWMutex
	files map[string]string
}

// Ensure Mem implements FileService.
var _ FileService = (*Mem)(nil)

// NewMem creates an empty in-memory file service.
func NewMem() *Mem {
	return &Mem{files: make(map[string]string)}
}

// Open reads the content stored under the given name. A missing name
// returns fs.ErrNotExist wrapped in a PathError, matching OS behavior.
func (m *Mem) Open(name string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	content, ok := m.files[name]
	if !ok {
		return "", &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return content, nil
}

// Save stores content under the given name.
func (m *Mem) Save(name, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.files[name] = content
	return nil
}

// Exists returns true if a file is stored under the name.
func (m *Mem) Exists(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.files[name]
	return ok
}

// Remove deletes the named file if present.
func (m *Mem) Remove(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.files, name)
}

// Len returns the number of stored files.
func (m *Mem) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.files)
}
