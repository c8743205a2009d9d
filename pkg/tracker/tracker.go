// Package tracker detects which in-memory files are new, modified or unchanged
// since the previous run by comparing content fingerprints against a
// persisted history file.
package tracker

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/proj-coursebook/change-tracker/pkg/core"
)

// Tracker is the change-detection engine.
//
// Operations on one Tracker run one at a time. Nothing coordinates separate
// Trackers or processes that share a history file; use one Tracker per
// history path.
type Tracker struct {
	run sync.Mutex // serializes TrackChanges and ClearHistory

	mu        sync.RWMutex
	cfg       Config
	states    core.FileStates
	lastRun   *time.Time
	lastRunID string

	hasher  Hasher
	history *historyStore
	logger  core.Logger
}

// New creates a Tracker with cfg as its initial configuration.
func New(cfg Config, opts ...Option) *Tracker {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	return &Tracker{
		cfg:     cfg,
		states:  make(core.FileStates),
		hasher:  o.hasher,
		history: &historyStore{fs: o.fs, logger: o.logger},
		logger:  o.logger,
	}
}

// Config returns the current configuration snapshot.
func (t *Tracker) Config() Config {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cfg
}

// Enable turns tracking on or off, leaving the rest of the configuration as is.
func (t *Tracker) Enable(enabled bool) {
	t.Update(ConfigUpdate{Enabled: &enabled})
}

// Update merges u into the configuration. The next TrackChanges call observes it.
func (t *Tracker) Update(u ConfigUpdate) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cfg = t.cfg.Apply(u)
	t.logger.Debug("configuration updated", "history_path", t.cfg.HistoryPath, "enabled", t.cfg.Enabled)
}

// GetFileState returns the state computed for path by the latest run.
// ok is false if path was never tracked or has since been pruned.
func (t *Tracker) GetFileState(path string) (state core.FileState, ok bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	state, ok = t.states[path]
	return state, ok
}

// States returns a copy of the runtime state of the latest run.
func (t *Tracker) States() core.FileStates {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.states.Clone()
}

// TrackChanges computes the state of every file relative to the persisted
// history, records the new fingerprints and returns the states.
//
// When tracking is disabled every file is reported untracked and the history
// file is left alone. Otherwise the returned error is core.ErrHistoryPathNotSet,
// a core.ErrInvalidInput from fingerprinting (nothing is changed), or a
// *core.HistoryWriteError from saving, in which case the runtime state has
// already been updated but the history on disk has not.
func (t *Tracker) TrackChanges(ctx context.Context, files map[string]core.FileRecord) (core.FileStates, error) {
	t.run.Lock()
	defer t.run.Unlock()

	cfg := t.Config()
	runID := uuid.NewString()
	paths := slices.Sorted(maps.Keys(files))

	if !cfg.Enabled {
		t.logger.Debug("tracking disabled, marking files untracked", "run_id", runID, "files", len(paths))
		next := make(core.FileStates, len(paths))
		for _, p := range paths {
			next[p] = core.UntrackedState()
		}
		return t.commit(runID, next), nil
	}

	if cfg.HistoryPath == "" {
		return nil, core.ErrHistoryPathNotSet
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	previous, err := t.history.Load(cfg.HistoryPath)
	if err != nil {
		return nil, err
	}

	current := make(core.History, len(paths))
	for _, p := range paths {
		fp, err := t.hasher.Fingerprint(files[p].Content)
		if err != nil {
			t.logger.Error("fingerprinting failed", "run_id", runID, "path", p, "error", err)
			return nil, fmt.Errorf("fingerprint %s: %w", p, err)
		}
		t.logger.Trace("fingerprint computed", "run_id", runID, "path", p, "fingerprint", fp)
		current[p] = fp
	}
	t.logger.Debug("fingerprints computed", "run_id", runID, "files", len(current), "algorithm", t.hasher.Name())

	next := make(core.FileStates, len(paths))
	for _, p := range paths {
		next[p] = reconcile(previous, p, current[p])
		t.logger.Trace("file state", "run_id", runID, "path", p, "status", next[p].Status())
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result := t.commit(runID, next)

	if err := t.history.Save(cfg.HistoryPath, current); err != nil {
		t.logger.Error("failed to save history", "run_id", runID, "path", cfg.HistoryPath, "error", err)
		return nil, err
	}

	counts := result.Counts()
	t.logger.Info("changes tracked",
		"run_id", runID,
		"new", counts[core.StatusNew],
		"modified", counts[core.StatusModified],
		"unchanged", counts[core.StatusUnchanged],
	)
	return result, nil
}

// reconcile derives the state of path from its recorded and current fingerprints.
func reconcile(previous core.History, path string, current core.Fingerprint) core.FileState {
	prev, ok := previous[path]
	switch {
	case !ok:
		return core.NewState()
	case prev != current:
		return core.ModifiedState(prev)
	default:
		return core.UnchangedState(prev)
	}
}

// commit replaces the runtime state with next, pruning paths absent from the
// run, and returns a copy for the caller.
func (t *Tracker) commit(runID string, next core.FileStates) core.FileStates {
	t.mu.Lock()
	defer t.mu.Unlock()

	for p := range t.states {
		if _, ok := next[p]; !ok {
			t.logger.Trace("file removed from tracking", "run_id", runID, "path", p)
		}
	}
	t.states = next
	now := time.Now()
	t.lastRun = &now
	t.lastRunID = runID

	return next.Clone()
}

// ClearHistory deletes the history file and forgets all runtime state.
// A missing history file is not an error.
func (t *Tracker) ClearHistory(ctx context.Context) error {
	t.run.Lock()
	defer t.run.Unlock()

	path := t.Config().HistoryPath
	if path == "" {
		return core.ErrHistoryPathNotSet
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := t.history.Remove(path); err != nil {
		t.logger.Error("failed to clear history", "path", path, "error", err)
		return err
	}

	t.mu.Lock()
	t.states = make(core.FileStates)
	t.mu.Unlock()

	t.logger.Info("history cleared", "path", path)
	return nil
}
