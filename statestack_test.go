package arbor

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hajimehoshi/ebiten/v2"
)

// probeState records hook calls into a shared log and lets tests script
// its return values and side effects.
type probeState struct {
	name     string
	log      *[]string
	stack    *StateStack
	pass     bool
	onEvent  func(s *probeState)
	onUpdate func(s *probeState)
	disposed bool
}

func (p *probeState) HandleEvent(ev Event) bool {
	*p.log = append(*p.log, p.name+".event")
	if p.onEvent != nil {
		p.onEvent(p)
	}
	return p.pass
}

func (p *probeState) Update(dt float64) bool {
	*p.log = append(*p.log, p.name+".update")
	if p.onUpdate != nil {
		p.onUpdate(p)
	}
	return p.pass
}

func (p *probeState) Render(screen *ebiten.Image) {
	*p.log = append(*p.log, p.name+".render")
}

func (p *probeState) Dispose() {
	p.disposed = true
	*p.log = append(*p.log, p.name+".dispose")
}

// probeStack returns a stack with states "a", "b" and "c" registered. Every
// constructed state is recorded in built, keyed by name.
func probeStack(log *[]string, built map[string]*probeState) *StateStack {
	s := NewStateStack(&Context{Config: DefaultConfig()})
	for _, name := range []string{"a", "b", "c"} {
		s.RegisterState(name, func(stack *StateStack, ctx *Context) State {
			p := &probeState{name: name, log: log, stack: stack, pass: true}
			built[name] = p
			return p
		})
	}
	return s
}

func pushAll(t *testing.T, s *StateStack, keys ...string) {
	t.Helper()
	for _, k := range keys {
		s.RequestPush(k)
	}
	if err := s.ApplyPending(); err != nil {
		t.Fatalf("ApplyPending: %v", err)
	}
}

func TestStateStackOrdering(t *testing.T) {
	var log []string
	built := map[string]*probeState{}
	s := probeStack(&log, built)
	pushAll(t, s, "a", "b", "c")

	if err := s.HandleEvent(KeyEvent{Kind: EventKeyDown}); err != nil {
		t.Fatal(err)
	}
	if err := s.Update(0.016); err != nil {
		t.Fatal(err)
	}
	s.Render(ebiten.NewImage(1, 1))

	want := []string{
		"c.event", "b.event", "a.event",
		"c.update", "b.update", "a.update",
		"a.render", "b.render", "c.render",
	}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("call order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, s.Keys()); diff != "" {
		t.Errorf("Keys mismatch (-want +got):\n%s", diff)
	}
	if s.Top() != State(built["c"]) {
		t.Error("Top should be c")
	}
}

func TestStateStackShortCircuit(t *testing.T) {
	var log []string
	built := map[string]*probeState{}
	s := probeStack(&log, built)
	pushAll(t, s, "a", "b", "c")
	built["b"].pass = false

	_ = s.HandleEvent(KeyEvent{Kind: EventKeyDown})
	_ = s.Update(0)
	s.Render(ebiten.NewImage(1, 1))

	want := []string{
		"c.event", "b.event",
		"c.update", "b.update",
		"a.render", "b.render", "c.render",
	}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("call order mismatch (-want +got):\n%s", diff)
	}
}

func TestStateStackDeferredRequests(t *testing.T) {
	var log []string
	built := map[string]*probeState{}
	s := probeStack(&log, built)
	pushAll(t, s, "a", "b")

	// b asks for a pop and a push mid-pass; a must still see the event and
	// the stack must not change until the pass ends.
	built["b"].onEvent = func(p *probeState) {
		p.stack.RequestPop()
		p.stack.RequestPush("c")
		if p.stack.Len() != 2 {
			t.Errorf("stack changed mid-pass: len %d", p.stack.Len())
		}
	}
	if err := s.HandleEvent(KeyEvent{Kind: EventKeyDown}); err != nil {
		t.Fatal(err)
	}

	want := []string{"b.event", "a.event", "b.dispose"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("call order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "c"}, s.Keys()); diff != "" {
		t.Errorf("Keys mismatch (-want +got):\n%s", diff)
	}
	if s.PendingRequests() != 0 {
		t.Errorf("PendingRequests = %d, want 0", s.PendingRequests())
	}
}

// Applying requests one at a time must give the same stack as the deferred
// batch.
func TestStateStackReplayEquivalence(t *testing.T) {
	type req struct {
		action requestAction
		key    string
	}
	seqs := [][]req{
		{{actionPush, "a"}, {actionPush, "b"}, {actionPop, ""}, {actionPush, "c"}},
		{{actionPush, "a"}, {actionClear, ""}, {actionPush, "b"}, {actionPush, "c"}},
		{{actionPop, ""}, {actionPush, "c"}, {actionPush, "a"}, {actionPop, ""}},
	}
	issue := func(s *StateStack, r req) {
		switch r.action {
		case actionPush:
			s.RequestPush(r.key)
		case actionPop:
			s.RequestPop()
		case actionClear:
			s.RequestClear()
		}
	}
	for i, seq := range seqs {
		var log []string
		batch := probeStack(&log, map[string]*probeState{})
		for _, r := range seq {
			issue(batch, r)
		}
		if err := batch.ApplyPending(); err != nil {
			t.Fatal(err)
		}

		single := probeStack(&log, map[string]*probeState{})
		for _, r := range seq {
			issue(single, r)
			if err := single.ApplyPending(); err != nil {
				t.Fatal(err)
			}
		}
		if diff := cmp.Diff(single.Keys(), batch.Keys()); diff != "" {
			t.Errorf("seq %d: batch differs from one-at-a-time (-single +batch):\n%s", i, diff)
		}
	}
}

func TestStateStackPopEmptyIsNoOp(t *testing.T) {
	var log []string
	s := probeStack(&log, map[string]*probeState{})
	s.RequestPop()
	s.RequestPush("a")
	if err := s.ApplyPending(); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a"}, s.Keys()); diff != "" {
		t.Errorf("Keys mismatch (-want +got):\n%s", diff)
	}
}

func TestStateStackClearDisposesTopDown(t *testing.T) {
	var log []string
	built := map[string]*probeState{}
	s := probeStack(&log, built)
	pushAll(t, s, "a", "b", "c")
	s.RequestClear()
	if err := s.ApplyPending(); err != nil {
		t.Fatal(err)
	}
	want := []string{"c.dispose", "b.dispose", "a.dispose"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("dispose order mismatch (-want +got):\n%s", diff)
	}
	if !s.IsEmpty() || s.Top() != nil {
		t.Error("stack should be empty after clear")
	}
}

func TestStateStackUnknownKey(t *testing.T) {
	var log []string
	s := probeStack(&log, map[string]*probeState{})
	s.RequestPush("a")
	s.RequestPush("missing")
	s.RequestPush("b")

	err := s.ApplyPending()
	if !errors.Is(err, ErrUnknownState) {
		t.Fatalf("err = %v, want ErrUnknownState", err)
	}
	if !strings.Contains(err.Error(), "missing") {
		t.Errorf("error should name the key: %v", err)
	}
	// Requests before the failure are applied; the rest are discarded.
	if diff := cmp.Diff([]string{"a"}, s.Keys()); diff != "" {
		t.Errorf("Keys mismatch (-want +got):\n%s", diff)
	}
	if s.PendingRequests() != 0 {
		t.Errorf("PendingRequests = %d, want 0", s.PendingRequests())
	}
}

func TestStateStackUpdateAppliesRequests(t *testing.T) {
	var log []string
	built := map[string]*probeState{}
	s := probeStack(&log, built)
	pushAll(t, s, "a")
	built["a"].onUpdate = func(p *probeState) { p.stack.RequestPop() }
	if err := s.Update(0); err != nil {
		t.Fatal(err)
	}
	if !s.IsEmpty() {
		t.Errorf("Keys = %v, want empty", s.Keys())
	}
	if !built["a"].disposed {
		t.Error("popped state should be disposed")
	}
}

func TestStateStackConstructorRequests(t *testing.T) {
	s := NewStateStack(nil)
	var log []string
	s.RegisterState("boot", func(stack *StateStack, ctx *Context) State {
		stack.RequestPop()
		stack.RequestPush("menu")
		return &probeState{name: "boot", log: &log, pass: true}
	})
	s.RegisterState("menu", func(stack *StateStack, ctx *Context) State {
		return &probeState{name: "menu", log: &log, pass: true}
	})
	pushAll(t, s, "boot")
	if diff := cmp.Diff([]string{"menu"}, s.Keys()); diff != "" {
		t.Errorf("Keys mismatch (-want +got):\n%s", diff)
	}
}

func TestRegisterStateDuplicatePanics(t *testing.T) {
	s := NewStateStack(nil)
	ctor := func(*StateStack, *Context) State { return nil }
	s.RegisterState("menu", ctor)
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	s.RegisterState("menu", ctor)
}
