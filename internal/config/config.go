package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds all editor settings.
type Config struct {
	Editor  EditorConfig  `toml:"editor"`
	History HistoryConfig `toml:"history"`
	Files   FilesConfig   `toml:"files"`
	Log     LogConfig     `toml:"log"`
}

// EditorConfig holds text editing settings.
type EditorConfig struct {
	// TabSize is the display width of a tab character.
	TabSize int `toml:"tab_size"`
}

// HistoryConfig holds undo/redo settings.
type HistoryConfig struct {
	// MaxEntries bounds both the undo and redo stacks.
	MaxEntries int `toml:"max_entries"`
}

// FilesConfig holds file service settings.
type FilesConfig struct {
	// MaxFileSize bounds opened and saved content in bytes.
	MaxFileSize int `toml:"max_file_size"`

	// AutoBackup enables writing a backup copy before overwriting an
	// existing file.
	AutoBackup bool `toml:"auto_backup"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`

	// File is the log destination. Empty disables file logging.
	File string `toml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			TabSize: 4,
		},
		History: HistoryConfig{
			MaxEntries: 100,
		},
		Files: FilesConfig{
			MaxFileSize: 10 * 1024 * 1024,
			AutoBackup:  true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns the conventional configuration file location under
// the user's config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "linecraft.toml"
	}
	return filepath.Join(dir, "linecraft", "linecraft.toml")
}

// Load reads configuration from a TOML file, applying defaults for any
// missing values. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// Validate checks that loaded values are usable.
func (c *Config) Validate() error {
	if c.Editor.TabSize <= 0 {
		return fmt.Errorf("editor.tab_size must be positive, got %d", c.Editor.TabSize)
	}
	if c.History.MaxEntries <= 0 {
		return fmt.Errorf("history.max_entries must be positive, got %d", c.History.MaxEntries)
	}
	if c.Files.MaxFileSize <= 0 {
		return fmt.Errorf("files.max_file_size must be positive, got %d", c.Files.MaxFileSize)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn, or error, got %q", c.Log.Level)
	}
	return nil
}
