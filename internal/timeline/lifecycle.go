package timeline

import (
	"sync"

	"github.com/google/uuid"

	"dealgraph.app/insight/internal/model"
)

type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateSuccess State = "success"
	StateError   State = "error"
)

// Snapshot is a point-in-time copy of the lifecycle: current state plus
// whichever payload that state carries.
type Snapshot struct {
	State      State
	Key        string
	Generation string
	Timeline   *model.Timeline
	Err        error
}

// Lifecycle is the fetch state machine for one inspection session:
// Idle -> Loading -> (Success | Error), then back to Loading on the next
// Start. Each Start mints a new generation token; resolutions carrying a
// superseded token are discarded, which makes the outcome last-request-wins
// rather than last-to-resolve-wins. The controller is reusable across
// arbitrarily many requests and its state transitions are its only
// observable effect.
type Lifecycle struct {
	mu         sync.Mutex
	state      State
	key        string
	generation string
	timeline   *model.Timeline
	err        error
}

func NewLifecycle() *Lifecycle {
	return &Lifecycle{state: StateIdle}
}

// Start transitions to Loading and records key as the authoritative target
// of this request generation. The returned token is what Resolve and Reject
// must present; a later Start invalidates it. There is no Loading->Loading
// self-transition: starting over an in-flight request supersedes it.
func (l *Lifecycle) Start(key string) string {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.state = StateLoading
	l.key = key
	l.generation = uuid.NewString()
	l.timeline = nil
	l.err = nil
	return l.generation
}

// Resolve transitions to Success with tl, but only while generation is
// still the token of the most recent Start. Stale resolutions are dropped
// and reported as false.
func (l *Lifecycle) Resolve(generation string, tl model.Timeline) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.current(generation) {
		return false
	}
	l.state = StateSuccess
	l.timeline = &tl
	l.err = nil
	return true
}

// Reject transitions to Error with err under the same staleness rule as
// Resolve.
func (l *Lifecycle) Reject(generation string, err error) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.current(generation) {
		return false
	}
	l.state = StateError
	l.timeline = nil
	l.err = err
	return true
}

func (l *Lifecycle) current(generation string) bool {
	return l.state == StateLoading && generation == l.generation
}

// Snapshot returns the current state and payload.
func (l *Lifecycle) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap := Snapshot{
		State:      l.state,
		Key:        l.key,
		Generation: l.generation,
		Err:        l.err,
	}
	if l.timeline != nil {
		tl := *l.timeline
		snap.Timeline = &tl
	}
	return snap
}
