// Package watch re-runs change tracking whenever files under a root change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/aretw0/lifecycle/pkg/core/worker"
	"github.com/fsnotify/fsnotify"

	"github.com/proj-coursebook/change-tracker/pkg/collect"
	"github.com/proj-coursebook/change-tracker/pkg/core"
)

// DefaultDebounce is the quiet period that ends a burst of events.
const DefaultDebounce = 100 * time.Millisecond

// Tracker is the subset of *tracker.Tracker the worker drives.
type Tracker interface {
	TrackChanges(ctx context.Context, files map[string]core.FileRecord) (core.FileStates, error)
}

// Config configures a Worker.
type Config struct {
	Root     string
	Collect  collect.Options
	Debounce time.Duration
	Logger   *slog.Logger
	// ErrorHandler receives watcher and tracking errors; the loop keeps running.
	ErrorHandler func(error)
}

// Result is the outcome of one tracking pass.
type Result struct {
	States core.FileStates
	Err    error
	At     time.Time
}

// String implements lifecycle.Event.
func (r Result) String() string {
	if r.Err != nil {
		return fmt.Sprintf("tracking failed: %v", r.Err)
	}
	counts := r.States.Counts()
	return fmt.Sprintf("tracked %d files: %d new, %d modified, %d unchanged, %d untracked",
		len(r.States),
		counts[core.StatusNew],
		counts[core.StatusModified],
		counts[core.StatusUnchanged],
		counts[core.StatusUntracked],
	)
}

// Worker is a lifecycle worker that tracks once on start and again after
// every debounced burst of filesystem events.
type Worker struct {
	*worker.BaseWorker
	cfg     Config
	tracker Tracker
	results chan<- Result
	watcher *fsnotify.Watcher
	cancel  context.CancelFunc
}

// New creates a Worker that publishes each pass on results.
func New(tr Tracker, cfg Config, results chan<- Result) *Worker {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	return &Worker{
		BaseWorker: worker.NewBaseWorker("change-watcher"),
		cfg:        cfg,
		tracker:    tr,
		results:    results,
	}
}

func (w *Worker) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	status := w.State().Status
	if status != worker.StatusCreated && status != worker.StatusPending {
		return fmt.Errorf("watcher already started (status: %s)", status)
	}

	if err := w.cfg.Collect.Validate(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := w.addRecursive(watcher, w.cfg.Root); err != nil {
		_ = watcher.Close()
		return err
	}
	w.watcher = watcher

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.SetStatus(worker.StatusRunning)
	return w.StartFunc(runCtx, w.run)
}

func (w *Worker) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.StopRequested = true
		w.cancel()
	}

	return w.BaseWorker.Stop(ctx)
}

func (w *Worker) State() worker.State {
	return w.ExportState(func(s *worker.State) {
		s.Metadata = map[string]string{
			worker.MetadataType: string(worker.TypeGoroutine),
			"root":              w.cfg.Root,
		}
	})
}

// addRecursive watches dir and every directory below it that is not excluded.
func (w *Worker) addRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && w.ignored(path) {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

// ignored reports whether events under path can never change the collected set.
func (w *Worker) ignored(path string) bool {
	if w.cfg.Collect.Skipped(path) {
		return true
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	root, err := filepath.Abs(w.cfg.Root)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return false
	}
	return w.cfg.Collect.Excluded(filepath.ToSlash(rel))
}

func (w *Worker) track(ctx context.Context) {
	files, err := collect.Collect(w.cfg.Root, w.cfg.Collect)
	var states core.FileStates
	if err == nil {
		states, err = w.tracker.TrackChanges(ctx, files)
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		w.reportError(err)
	}

	w.cfg.Logger.Debug("tracking pass finished", "root", w.cfg.Root, "files", len(states))
	select {
	case w.results <- Result{States: states, Err: err, At: time.Now()}:
	case <-ctx.Done():
	}
}

func (w *Worker) reportError(err error) {
	w.cfg.Logger.Error("watch error", "error", err)
	if w.cfg.ErrorHandler != nil {
		w.cfg.ErrorHandler(err)
	}
}

// handleEvent returns true when the event should schedule a tracking pass.
func (w *Worker) handleEvent(event fsnotify.Event) bool {
	w.cfg.Logger.Debug("event received", "name", event.Name, "op", event.Op.String())

	if w.ignored(event.Name) {
		return false
	}

	// New directories must be watched before their contents change.
	if event.Has(fsnotify.Create) {
		if info, err := statDir(event.Name); err == nil && info {
			if err := w.addRecursive(w.watcher, event.Name); err != nil {
				w.reportError(err)
			}
		}
	}

	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

func (w *Worker) run(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			panicErr := fmt.Errorf("watcher panic: %v", recovered)
			if w.cfg.Logger.Enabled(ctx, slog.LevelDebug) {
				w.cfg.Logger.Error("watcher panic", "error", panicErr, "stack", string(debug.Stack()))
			} else {
				w.cfg.Logger.Error("watcher panic", "error", panicErr)
			}
			err = panicErr
		}
	}()
	defer w.watcher.Close()

	w.track(ctx)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			if !w.handleEvent(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.cfg.Debounce)
			} else {
				timer.Reset(w.cfg.Debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.track(ctx)

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.reportError(wErr)
		}
	}
}
