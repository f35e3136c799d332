package timeline

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"dealgraph.app/insight/internal/model"
)

// ErrProjectNotFound is returned when the knowledge backend reports the
// requested project absent. Recoverable: callers show a specific message,
// not a generic failure.
var ErrProjectNotFound = errors.New("project not found in knowledge base")

// TransportError covers every other fetch failure: backend errors, decode
// failures, malformed events.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("timeline fetch failed: %s", e.Op)
	}
	return fmt.Sprintf("timeline fetch failed: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Source fetches a project's raw timeline from the knowledge backend.
// Implementations must return ErrProjectNotFound when the project is absent
// and wrap everything else in a TransportError.
type Source interface {
	GetTimeline(ctx context.Context, project string) (model.Timeline, error)
}

// Assembler turns a backend timeline into a render-ready narrative:
// validated whole, sorted by step. It holds no state between calls and
// never caches; every fetch is a fresh source-of-truth read.
type Assembler struct {
	source Source
}

func NewAssembler(source Source) *Assembler {
	return &Assembler{source: source}
}

// FetchTimeline retrieves, validates, and orders the timeline for project.
// Backend ordering is not trusted: events are sorted by step ascending
// before being handed back. A single malformed event rejects the whole
// timeline; partial narratives are never returned.
func (a *Assembler) FetchTimeline(ctx context.Context, project string) (model.Timeline, error) {
	if project == "" {
		return model.Timeline{}, fmt.Errorf("project name is required")
	}

	tl, err := a.source.GetTimeline(ctx, project)
	if err != nil {
		return model.Timeline{}, err
	}

	for i, ev := range tl.Events {
		if err := validateEvent(ev); err != nil {
			return model.Timeline{}, &TransportError{
				Op:  fmt.Sprintf("event %d of project %q", i, project),
				Err: err,
			}
		}
	}

	sort.SliceStable(tl.Events, func(i, j int) bool {
		return tl.Events[i].Step < tl.Events[j].Step
	})

	return tl, nil
}

func validateEvent(ev model.TimelineEvent) error {
	if ev.Step <= 0 {
		return fmt.Errorf("step must be a positive integer, got %d", ev.Step)
	}
	if ev.Date == "" {
		return fmt.Errorf("date is required")
	}
	if ev.Sender == "" {
		return fmt.Errorf("sender is required")
	}
	if ev.Summary == "" {
		return fmt.Errorf("summary is required")
	}
	if node := ev.LogicNode; node != nil {
		if !node.NodeType.Valid() {
			return fmt.Errorf("unknown logic node type %q", node.NodeType)
		}
		if node.Description == "" {
			return fmt.Errorf("logic node description is required")
		}
	}
	return nil
}
