package tracker

import (
	"time"

	"github.com/aretw0/introspection"
)

// TrackerState exposes internal state for observability.
type TrackerState struct {
	HistoryPath string         `json:"history_path"`
	Enabled     bool           `json:"enabled"`
	Algorithm   string         `json:"algorithm"`
	Tracked     int            `json:"tracked"`
	Counts      map[string]int `json:"counts,omitempty"`
	LastRun     *time.Time     `json:"last_run,omitempty"`
	LastRunID   string         `json:"last_run_id,omitempty"`
}

// State implements introspection.Introspectable.
func (t *Tracker) State() any {
	t.mu.RLock()
	defer t.mu.RUnlock()

	counts := make(map[string]int)
	for status, n := range t.states.Counts() {
		counts[status.String()] = n
	}

	return TrackerState{
		HistoryPath: t.cfg.HistoryPath,
		Enabled:     t.cfg.Enabled,
		Algorithm:   t.hasher.Name(),
		Tracked:     len(t.states),
		Counts:      counts,
		LastRun:     t.lastRun,
		LastRunID:   t.lastRunID,
	}
}

// ComponentType implements introspection.Component.
func (t *Tracker) ComponentType() string {
	return "change-tracker"
}

var _ introspection.Introspectable = (*Tracker)(nil)
var _ introspection.Component = (*Tracker)(nil)
