// Package changetracker tells build and processing pipelines which of their
// inputs changed since the previous run.
//
// Each run fingerprints the content of every file it is given, compares the
// fingerprints with the history saved by the previous run, reports every file
// as new, modified or unchanged, and then replaces the history with the
// current fingerprints. Files missing from a run are forgotten. With tracking
// disabled every file is reported untracked and the history is not touched.
//
// Usage:
//
//	tr, err := changetracker.New(".cache/history.json",
//		changetracker.WithLogger(logger),
//	)
//
//	states, err := tr.TrackChanges(ctx, changetracker.Files(map[string][]byte{
//		"index.md": content,
//	}))
//	if states["index.md"].Changed() {
//		// rebuild
//	}
package changetracker
