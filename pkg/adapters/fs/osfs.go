// Package fs provides core.FileSystem implementations: the real filesystem
// and an in-memory one for tests and dry runs.
package fs

import (
	"errors"
	"io/fs"
	"os"

	"github.com/proj-coursebook/change-tracker/pkg/core"
)

// OS is the production core.FileSystem backed by the os package.
type OS struct{}

// NewOS returns the OS filesystem adapter.
func NewOS() *OS {
	return &OS{}
}

func (OS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile writes atomically via a temp file and rename.
func (OS) WriteFile(path string, data []byte, perm os.FileMode) error {
	return writeFileAtomic(path, data, perm)
}

func (OS) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (OS) Remove(path string) error {
	return os.Remove(path)
}

func (OS) IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

var _ core.FileSystem = (*OS)(nil)
