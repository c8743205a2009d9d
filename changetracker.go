package changetracker

import (
	"log/slog"

	"github.com/proj-coursebook/change-tracker/pkg/core"
	"github.com/proj-coursebook/change-tracker/pkg/logging"
	"github.com/proj-coursebook/change-tracker/pkg/tracker"
)

// Version of the library and command-line tool. Overridden at build time
// with -ldflags "-X github.com/proj-coursebook/change-tracker.Version=...".
var Version = "0.1.0-dev"

// --- Types ---

type (
	// Tracker is the change-detection engine.
	Tracker = tracker.Tracker
	// Config is the tracker configuration snapshot.
	Config = tracker.Config
	// ConfigUpdate is a partial configuration merged by Tracker.Update.
	ConfigUpdate = tracker.ConfigUpdate
	// FileRecord is an in-memory file.
	FileRecord = core.FileRecord
	// FileState is the reconciled state of one file.
	FileState = core.FileState
	// FileStates maps paths to their states.
	FileStates = core.FileStates
	// Fingerprint is a content digest.
	Fingerprint = core.Fingerprint
	// Status is a file's change status.
	Status = core.Status
)

const (
	StatusNew       = core.StatusNew
	StatusModified  = core.StatusModified
	StatusUnchanged = core.StatusUnchanged
	StatusUntracked = core.StatusUntracked
)

// Errors returned by the tracker.
var (
	ErrHistoryPathNotSet = core.ErrHistoryPathNotSet
	ErrHistoryWrite      = core.ErrHistoryWrite
	ErrInvalidInput      = core.ErrInvalidInput
)

// --- Configuration ---

type options struct {
	logger    *slog.Logger
	algorithm string
	fs        core.FileSystem
	enabled   bool
}

// Option defines a functional option for New.
type Option func(*options)

// WithLogger sets the logger. Per-file events are logged at logging.LevelTrace.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithAlgorithm selects the fingerprint algorithm ("md5" or "xxh3").
func WithAlgorithm(name string) Option {
	return func(o *options) {
		o.algorithm = name
	}
}

// WithFileSystem replaces the filesystem holding the history file.
func WithFileSystem(fs core.FileSystem) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// WithEnabled sets the initial enabled flag. Tracking is enabled by default.
func WithEnabled(enabled bool) Option {
	return func(o *options) {
		o.enabled = enabled
	}
}

// --- Factory ---

// New creates a Tracker persisting its history at historyPath.
func New(historyPath string, opts ...Option) (*Tracker, error) {
	o := &options{enabled: true}
	for _, opt := range opts {
		opt(o)
	}

	hasher, err := tracker.NewHasher(o.algorithm)
	if err != nil {
		return nil, err
	}

	cfg := tracker.DefaultConfig(historyPath)
	cfg.Enabled = o.enabled

	return tracker.New(cfg,
		tracker.WithLogger(logging.FromSlog(o.logger)),
		tracker.WithFileSystem(o.fs),
		tracker.WithHasher(hasher),
	), nil
}

// --- Helpers ---

// Files builds tracker input from raw contents.
func Files(contents map[string][]byte) map[string]FileRecord {
	out := make(map[string]FileRecord, len(contents))
	for path, content := range contents {
		out[path] = FileRecord{Content: content}
	}
	return out
}

// FingerprintOf digests content with the default algorithm.
func FingerprintOf(content []byte) (Fingerprint, error) {
	return tracker.Fingerprint(content)
}
