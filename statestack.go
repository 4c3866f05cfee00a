package arbor

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

type requestAction uint8

const (
	actionPush requestAction = iota
	actionPop
	actionClear
)

func (a requestAction) String() string {
	switch a {
	case actionPush:
		return "push"
	case actionPop:
		return "pop"
	default:
		return "clear"
	}
}

type pendingRequest struct {
	action requestAction
	key    string
}

type stackEntry struct {
	key   string
	state State
}

// StateStack holds the active states, bottom first. Push, pop and clear are
// never applied immediately: they are queued and applied in request order
// once the current event or update pass over the stack has finished, so
// states never see the stack change under them mid-pass.
type StateStack struct {
	entries  []stackEntry
	requests Queue[pendingRequest]
	factory  *StateFactory
	ctx      *Context
	log      *debugLogger

	snapshot []State
	applied  int
}

// NewStateStack returns an empty stack whose states are built with ctx.
func NewStateStack(ctx *Context) *StateStack {
	return &StateStack{factory: NewStateFactory(), ctx: ctx}
}

// RegisterState binds key to ctor. It panics if key is already registered.
func (s *StateStack) RegisterState(key string, ctor StateConstructor) {
	s.factory.Register(key, ctor)
}

// Factory returns the stack's state factory.
func (s *StateStack) Factory() *StateFactory {
	return s.factory
}

// Context returns the context passed to state constructors.
func (s *StateStack) Context() *Context {
	return s.ctx
}

// RequestPush queues a push of the state registered under key.
func (s *StateStack) RequestPush(key string) {
	s.requests.Enqueue(pendingRequest{action: actionPush, key: key})
}

// RequestPop queues removal of the top state.
func (s *StateStack) RequestPop() {
	s.requests.Enqueue(pendingRequest{action: actionPop})
}

// RequestClear queues removal of every state.
func (s *StateStack) RequestClear() {
	s.requests.Enqueue(pendingRequest{action: actionClear})
}

// PendingRequests returns the number of queued, unapplied requests.
func (s *StateStack) PendingRequests() int {
	return s.requests.Len()
}

// IsEmpty reports whether no states are active.
func (s *StateStack) IsEmpty() bool {
	return len(s.entries) == 0
}

// Len returns the number of active states.
func (s *StateStack) Len() int {
	return len(s.entries)
}

// Keys returns the keys of the active states, bottom first.
func (s *StateStack) Keys() []string {
	keys := make([]string, len(s.entries))
	for i, e := range s.entries {
		keys[i] = e.key
	}
	return keys
}

// Top returns the top state, or nil when the stack is empty.
func (s *StateStack) Top() State {
	if len(s.entries) == 0 {
		return nil
	}
	return s.entries[len(s.entries)-1].state
}

// HandleEvent offers ev to each state from the top down until one returns
// false, then applies pending requests.
func (s *StateStack) HandleEvent(ev Event) error {
	for _, st := range s.topDown() {
		if !st.HandleEvent(ev) {
			break
		}
	}
	s.releaseSnapshot()
	return s.ApplyPending()
}

// Update advances each state from the top down until one returns false, then
// applies pending requests.
func (s *StateStack) Update(dt float64) error {
	for _, st := range s.topDown() {
		if !st.Update(dt) {
			break
		}
	}
	s.releaseSnapshot()
	return s.ApplyPending()
}

// Render draws every state from the bottom up.
func (s *StateStack) Render(screen *ebiten.Image) {
	for _, e := range s.entries {
		e.state.Render(screen)
	}
}

// ApplyPending applies queued requests in order. A push whose key is not
// registered discards the remaining requests and returns an error wrapping
// ErrUnknownState. Requests queued by a constructor run in the same call.
func (s *StateStack) ApplyPending() error {
	for !s.requests.IsEmpty() {
		req, err := s.requests.Dequeue()
		if err != nil {
			return err
		}
		s.applied++
		switch req.action {
		case actionPush:
			st, err := s.factory.Create(req.key, s, s.ctx)
			if err != nil {
				s.requests.Clear()
				return fmt.Errorf("push state: %w", err)
			}
			s.entries = append(s.entries, stackEntry{key: req.key, state: st})
			s.log.printf("push %q (depth %d)", req.key, len(s.entries))
		case actionPop:
			if len(s.entries) == 0 {
				s.log.warnf("pop on empty state stack ignored")
				continue
			}
			top := s.entries[len(s.entries)-1]
			s.entries[len(s.entries)-1] = stackEntry{}
			s.entries = s.entries[:len(s.entries)-1]
			dispose(top.state)
			s.log.printf("pop %q (depth %d)", top.key, len(s.entries))
		case actionClear:
			for i := len(s.entries) - 1; i >= 0; i-- {
				dispose(s.entries[i].state)
				s.entries[i] = stackEntry{}
			}
			s.entries = s.entries[:0]
			s.log.printf("clear")
		}
	}
	return nil
}

func dispose(st State) {
	if d, ok := st.(Disposer); ok {
		d.Dispose()
	}
}

// topDown fills the snapshot buffer with the active states, top first.
// Requests issued during the pass cannot change what the pass visits.
func (s *StateStack) topDown() []State {
	s.snapshot = s.snapshot[:0]
	for i := len(s.entries) - 1; i >= 0; i-- {
		s.snapshot = append(s.snapshot, s.entries[i].state)
	}
	return s.snapshot
}

func (s *StateStack) releaseSnapshot() {
	clear(s.snapshot)
	s.snapshot = s.snapshot[:0]
}

// takeApplied returns and resets the count of applied requests.
func (s *StateStack) takeApplied() int {
	n := s.applied
	s.applied = 0
	return n
}

// setLogger enables stack diagnostics on the given logger; nil disables them.
func (s *StateStack) setLogger(l *debugLogger) {
	s.log = l
}
