package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrHistoryPathNotSet = errors.New("history path not set")
	ErrInvalidInput      = errors.New("invalid input")
	// ErrHistoryWrite matches any *HistoryWriteError via errors.Is.
	ErrHistoryWrite = errors.New("history write failed")
)

// HistoryWriteError reports a failure to persist or remove the history file.
type HistoryWriteError struct {
	Path string
	Op   string // "mkdir", "marshal", "write" or "remove"
	Err  error
}

func (e *HistoryWriteError) Error() string {
	return fmt.Sprintf("history %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *HistoryWriteError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrHistoryWrite) match regardless of the cause.
func (e *HistoryWriteError) Is(target error) bool {
	return target == ErrHistoryWrite
}
