package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	dirPermissions  = 0o755
	filePermissions = 0o644

	// DefaultDataFile is the container name used by earlier versions of the app.
	DefaultDataFile = "control_alimentacion.json"
)

// Manager centralizes where the record container lives on disk and how files
// are written.
type Manager struct {
	basePath string
}

// NewManager constructs a Manager rooted at the provided directory. If basePath
// is empty, it falls back to ~/.sugarlog (or another location determined by
// ResolveBasePath).
func NewManager(basePath string) (*Manager, error) {
	var err error
	if basePath == "" {
		basePath, err = ResolveBasePath()
		if err != nil {
			return nil, err
		}
	}
	basePath, err = ExpandHome(basePath)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, err
	}

	return &Manager{basePath: abs}, nil
}

// BasePath returns the root directory storing sugarlog data.
func (m *Manager) BasePath() string {
	return m.basePath
}

// DataPath resolves the container path. Absolute names are returned as-is,
// relative ones are placed under the base directory. An empty name selects
// DefaultDataFile.
func (m *Manager) DataPath(name string) string {
	if name == "" {
		name = DefaultDataFile
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(m.basePath, name)
}

// ReadFile returns the contents of path. A missing file is reported through
// os.ErrNotExist so callers can seed defaults.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return nil, storageErr("read", path, err)
	}
	return data, nil
}

// WriteFileAtomic replaces path with data. The content goes to a temporary
// file in the same directory which is renamed over the destination, so a
// failed write leaves the previous file untouched.
func WriteFileAtomic(path string, data []byte) error {
	if path == "" {
		return storageErr("write", path, errors.New("empty path"))
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return storageErr("write", path, fmt.Errorf("create directories: %w", err))
	}

	temp, err := os.CreateTemp(dir, ".sugarlog-*")
	if err != nil {
		return storageErr("write", path, err)
	}
	defer os.Remove(temp.Name())

	if _, err := temp.Write(data); err != nil {
		temp.Close()
		return storageErr("write", path, err)
	}
	if err := temp.Sync(); err != nil {
		temp.Close()
		return storageErr("write", path, err)
	}
	if err := temp.Close(); err != nil {
		return storageErr("write", path, err)
	}

	mode := os.FileMode(filePermissions)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	if err := os.Chmod(temp.Name(), mode); err != nil {
		return storageErr("write", path, err)
	}

	if err := os.Rename(temp.Name(), path); err != nil {
		return storageErr("write", path, err)
	}
	return nil
}
