package fs

import (
	iofs "io/fs"
	"path/filepath"
	"sync"
)

// MemoryFileSystem keeps written files in memory. Used for dry runs of the
// export.
type MemoryFileSystem struct {
	mu    sync.Mutex
	files map[string][]byte
	dirs  map[string]bool
}

func NewMemoryFileSystem() *MemoryFileSystem {
	return &MemoryFileSystem{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}
}

func (m *MemoryFileSystem) WriteFile(path string, data []byte, _ iofs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if dir := filepath.Dir(path); dir != "." && !m.dirs[dir] {
		return &iofs.PathError{Op: "write", Path: path, Err: iofs.ErrNotExist}
	}
	m.files[path] = append([]byte(nil), data...)
	return nil
}

func (m *MemoryFileSystem) MkdirAll(path string, _ iofs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for p := filepath.Clean(path); p != "." && p != string(filepath.Separator); p = filepath.Dir(p) {
		m.dirs[p] = true
	}
	return nil
}

func (m *MemoryFileSystem) ReadFile(path string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[path]
	return data, ok
}

func (m *MemoryFileSystem) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.files)
}
