package tracker

import (
	fsadapter "github.com/proj-coursebook/change-tracker/pkg/adapters/fs"
	"github.com/proj-coursebook/change-tracker/pkg/core"
)

// options holds the collaborators of a Tracker.
type options struct {
	logger core.Logger
	fs     core.FileSystem
	hasher Hasher
}

// Option defines a functional option for configuring a Tracker.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		logger: core.NopLogger{},
		fs:     fsadapter.NewOS(),
		hasher: MD5,
	}
}

// WithLogger sets the logger. Nil keeps the silent default.
func WithLogger(logger core.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithFileSystem replaces the filesystem used for the history file.
func WithFileSystem(fs core.FileSystem) Option {
	return func(o *options) {
		if fs != nil {
			o.fs = fs
		}
	}
}

// WithHasher selects the fingerprint algorithm.
func WithHasher(h Hasher) Option {
	return func(o *options) {
		o.hasher = h
	}
}
