package config

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// DefaultFileName is the configuration file name searched for under the
// XDG config directory.
const DefaultFileName = "arbor.toml"

// FileSystem abstracts the file reads the loader performs, so tests can
// run against an in-memory tree.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	Stat(path string) (fs.FileInfo, error)
}

// OSFS implements FileSystem using the real file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat returns file info for path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// DefaultFS returns the OS-backed file system.
func DefaultFS() FileSystem {
	return OSFS{}
}

// Loader reads arbor.toml.
type Loader struct {
	fs FileSystem
}

// NewLoader creates a loader against the real file system.
func NewLoader() *Loader {
	return &Loader{fs: DefaultFS()}
}

// NewLoaderWithFS creates a loader with a custom file system.
func NewLoaderWithFS(fsys FileSystem) *Loader {
	return &Loader{fs: fsys}
}

// Load reads the configuration at path. A missing file is not an error:
// the defaults come back untouched. A malformed file returns the
// defaults alongside a *ParseError, so the caller can warn and keep
// running.
func (l *Loader) Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := l.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return Default(), &ParseError{Path: path, Err: err}
	}
	return cfg, nil
}

// Locate resolves the config path to load: the explicit path when given,
// otherwise $XDG_CONFIG_HOME/arbor/arbor.toml (with the usual ~/.config
// fallback) if it exists. Empty means no config file.
func (l *Loader) Locate(explicit string) string {
	if explicit != "" {
		return explicit
	}

	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}

	path := filepath.Join(base, "arbor", DefaultFileName)
	if _, err := l.fs.Stat(path); err != nil {
		return ""
	}
	return path
}

// ParseError reports a malformed configuration file.
type ParseError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying decode error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
