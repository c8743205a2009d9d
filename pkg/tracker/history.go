package tracker

import (
	"encoding/json"
	"path/filepath"

	"github.com/proj-coursebook/change-tracker/pkg/core"
)

const (
	historyFilePerm = 0644
	historyDirPerm  = 0755
)

// historyStore loads and saves the path -> fingerprint mapping as indented JSON.
type historyStore struct {
	fs     core.FileSystem
	logger core.Logger
}

// Load reads the history at path. A missing, unreadable or corrupt file
// yields an empty history so tracking starts fresh.
func (h *historyStore) Load(path string) (core.History, error) {
	if path == "" {
		return nil, core.ErrHistoryPathNotSet
	}

	data, err := h.fs.ReadFile(path)
	if err != nil {
		if h.fs.IsNotExist(err) {
			h.logger.Debug("no history found, starting fresh", "path", path)
		} else {
			h.logger.Error("failed to read history, starting fresh", "path", path, "error", err)
		}
		return core.History{}, nil
	}

	var history core.History
	if err := json.Unmarshal(data, &history); err != nil || history == nil {
		// null or a non-object payload is as unusable as a syntax error.
		h.logger.Error("history is corrupt, starting fresh", "path", path, "error", err)
		return core.History{}, nil
	}

	h.logger.Debug("history loaded", "path", path, "entries", len(history))
	return history, nil
}

// Save replaces the history at path with history, creating parent directories.
func (h *historyStore) Save(path string, history core.History) error {
	if path == "" {
		return core.ErrHistoryPathNotSet
	}

	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return &core.HistoryWriteError{Path: path, Op: "marshal", Err: err}
	}
	data = append(data, '\n')

	if err := h.fs.MkdirAll(filepath.Dir(path), historyDirPerm); err != nil {
		return &core.HistoryWriteError{Path: path, Op: "mkdir", Err: err}
	}

	if err := h.fs.WriteFile(path, data, historyFilePerm); err != nil {
		return &core.HistoryWriteError{Path: path, Op: "write", Err: err}
	}

	h.logger.Info("history saved", "path", path, "entries", len(history))
	return nil
}

// Remove deletes the history file. A missing file is not an error.
func (h *historyStore) Remove(path string) error {
	if path == "" {
		return core.ErrHistoryPathNotSet
	}
	if err := h.fs.Remove(path); err != nil && !h.fs.IsNotExist(err) {
		return &core.HistoryWriteError{Path: path, Op: "remove", Err: err}
	}
	return nil
}
