package fileio

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// OS implements FileService against the operating system's file system.
// Relative names are resolved against a working directory fixed at
// construction.
type OS struct {
	workDir string
	backup  bool
}

// Ensure OS implements FileService.
var _ FileService = (*OS)(nil)

// OSOption configures an OS file service.
type OSOption func(*OS)

// WithBackup enables writing a backup copy before overwriting an existing
// file.
func WithBackup(enabled bool) OSOption {
	return func(o *OS) {
		o.backup = enabled
	}
}

// WithWorkDir sets the directory relative names resolve against.
func WithWorkDir(dir string) OSOption {
	return func(o *OS) {
		o.workDir = dir
	}
}

// NewOS creates an OS-backed file service. The working directory defaults
// to the process's current directory.
func NewOS(opts ...OSOption) (*OS, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	o := &OS{workDir: wd}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// Resolve returns the absolute path for a file name. Absolute names pass
// through unchanged.
func (o *OS) Resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(o.workDir, name)
}

// WorkDir returns the directory relative names resolve against.
func (o *OS) WorkDir() string {
	return o.workDir
}

// Exists returns true if the named file exists.
func (o *OS) Exists(name string) bool {
	_, err := os.Stat(o.Resolve(name))
	return err == nil
}

// Open reads the entire content of the named file.
func (o *OS) Open(name string) (string, error) {
	data, err := os.ReadFile(o.Resolve(name))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Save writes content to the named file. If the file already exists and
// backups are enabled, a copy is written alongside it first. Missing
// parent directories are created.
func (o *OS) Save(name, content string) error {
	path := o.Resolve(name)

	if o.backup {
		if err := o.backupFile(path); err != nil {
			return fmt.Errorf("backup %s: %w", name, err)
		}
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	return os.WriteFile(path, []byte(content), 0o644)
}

// backupFile copies an existing file to <path>.backup preserving its
// permissions. A missing file needs no backup.
func (o *OS) backupFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	return os.WriteFile(path+".backup", data, mode)
}
