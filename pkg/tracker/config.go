package tracker

// Config is an immutable configuration snapshot. Tracker replaces it wholesale
// on every update.
type Config struct {
	// HistoryPath is where fingerprints are persisted. Empty fails every
	// history-touching operation with core.ErrHistoryPathNotSet.
	HistoryPath string
	// Enabled toggles tracking. When false every file reports untracked and
	// the history file is never read or written.
	Enabled bool
}

// DefaultConfig returns an enabled configuration for historyPath.
func DefaultConfig(historyPath string) Config {
	return Config{
		HistoryPath: historyPath,
		Enabled:     true,
	}
}

// ConfigUpdate is a partial configuration. Nil fields keep their current value.
type ConfigUpdate struct {
	HistoryPath *string
	Enabled     *bool
}

// WithHistoryPath returns a copy of u that sets the history path.
func (u ConfigUpdate) WithHistoryPath(path string) ConfigUpdate {
	u.HistoryPath = &path
	return u
}

// WithEnabled returns a copy of u that sets the enabled flag.
func (u ConfigUpdate) WithEnabled(enabled bool) ConfigUpdate {
	u.Enabled = &enabled
	return u
}

// Apply returns c with the fields set in u merged over it.
func (c Config) Apply(u ConfigUpdate) Config {
	if u.HistoryPath != nil {
		c.HistoryPath = *u.HistoryPath
	}
	if u.Enabled != nil {
		c.Enabled = *u.Enabled
	}
	return c
}
