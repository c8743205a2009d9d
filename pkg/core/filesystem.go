package core

import "os"

// FileSystem is the set of primitives the tracker needs to persist history.
// Errors follow os semantics so IsNotExist can classify them.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	// WriteFile replaces path with data. Implementations should make the
	// replacement atomic where the platform allows it.
	WriteFile(path string, data []byte, perm os.FileMode) error
	MkdirAll(path string, perm os.FileMode) error
	Remove(path string) error
	IsNotExist(err error) bool
}
