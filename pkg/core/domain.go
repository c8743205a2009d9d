// Package core holds the domain types of the change tracker.
package core

// FileRecord is a caller-owned, in-memory file. Only its content is inspected.
// A nil Content means the content field is absent and is rejected by fingerprinting.
type FileRecord struct {
	Content []byte
}

// Fingerprint is a fixed-length lowercase hex digest of a file's content.
type Fingerprint string

// History maps a logical file path to the fingerprint recorded by the last successful run.
type History map[string]Fingerprint

// FileStates maps a logical file path to its state after a run.
type FileStates map[string]FileState

// Clone returns an independent copy of the states.
func (s FileStates) Clone() FileStates {
	out := make(FileStates, len(s))
	for path, state := range s {
		out[path] = state
	}
	return out
}

// Counts returns how many states carry each status.
func (s FileStates) Counts() map[Status]int {
	counts := make(map[Status]int, 4)
	for _, state := range s {
		counts[state.Status()]++
	}
	return counts
}

// Changed returns the subset of states whose status is not unchanged.
func (s FileStates) Changed() FileStates {
	out := make(FileStates, len(s))
	for path, state := range s {
		if state.Changed() {
			out[path] = state
		}
	}
	return out
}
