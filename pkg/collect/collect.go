// Package collect gathers files from a directory tree into the records
// consumed by the tracker.
package collect

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	ctfs "github.com/proj-coursebook/change-tracker/pkg/adapters/fs"
	"github.com/proj-coursebook/change-tracker/pkg/core"
)

// Options selects which files are collected. Patterns use doublestar syntax
// and are matched against slash-separated paths relative to the root.
type Options struct {
	// Include defaults to "**" when empty.
	Include []string
	Exclude []string
	// Skip lists paths (files or directories) that are never collected,
	// such as the history file itself. Temp files left next to a Skip entry
	// by an atomic write are skipped too.
	Skip []string
}

// Skipped reports whether path is a Skip entry or an atomic-write temp file
// in the same directory as one.
func (o Options) Skipped(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	temp := strings.HasPrefix(filepath.Base(abs), ctfs.TempFilePrefix)
	for _, s := range o.Skip {
		skipAbs, err := filepath.Abs(s)
		if err != nil {
			continue
		}
		if skipAbs == abs || (temp && filepath.Dir(skipAbs) == filepath.Dir(abs)) {
			return true
		}
	}
	return false
}

// Validate reports the first malformed pattern.
func (o Options) Validate() error {
	for _, p := range append(append([]string{}, o.Include...), o.Exclude...) {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid pattern %q", p)
		}
	}
	return nil
}

func (o Options) included(rel string) bool {
	if len(o.Include) == 0 {
		return true
	}
	return matchAny(o.Include, rel)
}

// Excluded reports whether the slash-separated relative path matches an exclude pattern.
func (o Options) Excluded(rel string) bool {
	return matchAny(o.Exclude, rel)
}

func matchAny(patterns []string, rel string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

// Collect walks root and returns the content of every regular file selected
// by opts, keyed by its slash-separated path relative to root.
func Collect(root string, opts Options) (map[string]core.FileRecord, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	out := make(map[string]core.FileRecord)
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == absRoot {
			return nil
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if opts.Skipped(path) || opts.Excluded(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || opts.Skipped(path) {
			return nil
		}
		if !opts.included(rel) || opts.Excluded(rel) {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", rel, err)
		}
		out[rel] = core.FileRecord{Content: content}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}
