package fs

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sync"

	"github.com/proj-coursebook/change-tracker/pkg/core"
)

// Memory is an in-memory core.FileSystem. Failures can be injected per
// operation to exercise error paths.
type Memory struct {
	mu    sync.RWMutex
	files map[string][]byte
	dirs  map[string]bool

	// Fail, when set, is consulted before every operation; a non-nil
	// return value is returned as that operation's error.
	Fail func(op, path string) error

	// Calls counts operations by name ("read", "write", "mkdir", "remove").
	Calls map[string]int
}

// NewMemory returns an empty in-memory filesystem.
func NewMemory() *Memory {
	return &Memory{
		files: make(map[string][]byte),
		dirs:  map[string]bool{"/": true, ".": true},
		Calls: make(map[string]int),
	}
}

func clean(p string) string {
	return path.Clean(filepath.ToSlash(p))
}

func (m *Memory) check(op, p string) error {
	m.Calls[op]++
	if m.Fail != nil {
		if err := m.Fail(op, p); err != nil {
			return &fs.PathError{Op: op, Path: p, Err: err}
		}
	}
	return nil
}

func (m *Memory) ReadFile(p string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check("read", p); err != nil {
		return nil, err
	}
	data, ok := m.files[clean(p)]
	if !ok {
		return nil, &fs.PathError{Op: "read", Path: p, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), data...), nil
}

func (m *Memory) WriteFile(p string, data []byte, _ os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check("write", p); err != nil {
		return err
	}
	key := clean(p)
	if !m.dirs[path.Dir(key)] {
		return &fs.PathError{Op: "write", Path: p, Err: fs.ErrNotExist}
	}
	m.files[key] = append([]byte(nil), data...)
	return nil
}

func (m *Memory) MkdirAll(p string, _ os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check("mkdir", p); err != nil {
		return err
	}
	for dir := clean(p); !m.dirs[dir]; dir = path.Dir(dir) {
		m.dirs[dir] = true
	}
	return nil
}

func (m *Memory) Remove(p string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check("remove", p); err != nil {
		return err
	}
	key := clean(p)
	if _, ok := m.files[key]; !ok {
		return &fs.PathError{Op: "remove", Path: p, Err: fs.ErrNotExist}
	}
	delete(m.files, key)
	return nil
}

func (m *Memory) IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// Exists reports whether a file is stored at p.
func (m *Memory) Exists(p string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.files[clean(p)]
	return ok
}

// Put stores a file directly, creating its parent directories.
func (m *Memory) Put(p string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := clean(p)
	for dir := path.Dir(key); !m.dirs[dir]; dir = path.Dir(dir) {
		m.dirs[dir] = true
	}
	m.files[key] = append([]byte(nil), data...)
}

// TotalCalls returns the number of operations performed so far.
func (m *Memory) TotalCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, c := range m.Calls {
		n += c
	}
	return n
}

var _ core.FileSystem = (*Memory)(nil)
