package core

import (
	"encoding/json"
	"fmt"
)

// Status is the change status of a file relative to the persisted history.
type Status uint8

const (
	// StatusNew means the path had no recorded fingerprint.
	StatusNew Status = iota + 1
	// StatusModified means the content fingerprint differs from the recorded one.
	StatusModified
	// StatusUnchanged means the content fingerprint equals the recorded one.
	StatusUnchanged
	// StatusUntracked means tracking is disabled; content was not compared.
	StatusUntracked
)

var statusNames = map[Status]string{
	StatusNew:       "new",
	StatusModified:  "modified",
	StatusUnchanged: "unchanged",
	StatusUntracked: "untracked",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", uint8(s))
}

// ParseStatus converts a status name back into a Status.
func ParseStatus(name string) (Status, error) {
	for status, n := range statusNames {
		if n == name {
			return status, nil
		}
	}
	return 0, fmt.Errorf("unknown status %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	if _, ok := statusNames[s]; !ok {
		return nil, fmt.Errorf("invalid status %d", uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// FileState is the outcome of reconciling one file.
// The previous fingerprint is present only for modified and unchanged files;
// the constructors are the only way to build a valid state.
type FileState struct {
	status   Status
	previous Fingerprint
}

// NewState reports a file with no recorded fingerprint.
func NewState() FileState { return FileState{status: StatusNew} }

// ModifiedState reports a file whose content changed since prev was recorded.
func ModifiedState(prev Fingerprint) FileState {
	return FileState{status: StatusModified, previous: prev}
}

// UnchangedState reports a file whose content still hashes to prev.
func UnchangedState(prev Fingerprint) FileState {
	return FileState{status: StatusUnchanged, previous: prev}
}

// UntrackedState reports a file seen while tracking was disabled.
func UntrackedState() FileState { return FileState{status: StatusUntracked} }

// Status returns the change status.
func (f FileState) Status() Status { return f.status }

// PreviousFingerprint returns the recorded fingerprint, if the status carries one.
func (f FileState) PreviousFingerprint() (Fingerprint, bool) {
	switch f.status {
	case StatusModified, StatusUnchanged:
		return f.previous, true
	default:
		return "", false
	}
}

// Changed reports whether a pipeline should treat the file as needing work.
// Untracked files always count as changed.
func (f FileState) Changed() bool {
	return f.status != StatusUnchanged
}

type fileStateJSON struct {
	Status              Status      `json:"status"`
	PreviousFingerprint Fingerprint `json:"previousFingerprint,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (f FileState) MarshalJSON() ([]byte, error) {
	prev, _ := f.PreviousFingerprint()
	return json.Marshal(fileStateJSON{Status: f.status, PreviousFingerprint: prev})
}

// UnmarshalJSON implements json.Unmarshaler and enforces the previous-fingerprint rule.
func (f *FileState) UnmarshalJSON(data []byte) error {
	var raw fileStateJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw.Status {
	case StatusNew:
		*f = NewState()
	case StatusUntracked:
		*f = UntrackedState()
	case StatusModified, StatusUnchanged:
		if raw.PreviousFingerprint == "" {
			return fmt.Errorf("status %s requires previousFingerprint", raw.Status)
		}
		*f = FileState{status: raw.Status, previous: raw.PreviousFingerprint}
	default:
		return fmt.Errorf("invalid status %d", uint8(raw.Status))
	}
	return nil
}
