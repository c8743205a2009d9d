package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/proj-coursebook/change-tracker/pkg/adapters/watch"
)

// SourceOption configures NewSource.
type SourceOption func(*resultSource)

// ChangedOnly trims every successful pass to its changed states and drops
// passes in which nothing changed. Failed passes are always forwarded.
func ChangedOnly() SourceOption {
	return func(s *resultSource) {
		s.changedOnly = true
	}
}

type resultSource struct {
	results     <-chan watch.Result
	out         chan lifecycle.Event
	changedOnly bool
}

// NewSource creates a lifecycle.Source that emits one watch.Result event per
// tracking pass of a watch.Worker.
func NewSource(results <-chan watch.Result, opts ...SourceOption) lifecycle.Source {
	s := &resultSource{
		results: results,
		out:     make(chan lifecycle.Event),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *resultSource) Events() <-chan lifecycle.Event {
	return s.out
}

// filter reports whether r should be emitted, and in which form.
func (s *resultSource) filter(r watch.Result) (watch.Result, bool) {
	if !s.changedOnly || r.Err != nil {
		return r, true
	}
	r.States = r.States.Changed()
	return r, len(r.States) > 0
}

func (s *resultSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case r, ok := <-s.results:
				if !ok {
					return nil
				}
				event, emit := s.filter(r)
				if !emit {
					continue
				}
				select {
				case s.out <- event:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
