package arbor

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/hajimehoshi/ebiten/v2"
)

// fakeClock advances by step on every call, starting at a fixed instant.
type fakeClock struct {
	now  time.Time
	step time.Duration
}

func (c *fakeClock) Now() time.Time {
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

// newTestApp returns an App wired to a fake input and a 20ms clock. The fake
// cursor starts outside the canvas so no pointer events are produced.
func newTestApp(t *testing.T) (*App, *fakeInput) {
	t.Helper()
	cfg := DefaultConfig()
	app := NewApp(cfg)
	in := newFakeInput()
	in.x, in.y = -1, -1
	app.SetEventSource(NewEventSourceFrom(in, Rect{Width: float64(cfg.Width), Height: float64(cfg.Height)}))
	clock := &fakeClock{now: time.Unix(1000, 0), step: 20 * time.Millisecond}
	app.SetClock(clock.Now)
	return app, in
}

// frame runs one Update and Draw.
func frame(t *testing.T, app *App, screen *ebiten.Image) error {
	t.Helper()
	if err := app.Update(); err != nil {
		return err
	}
	app.Draw(screen)
	return nil
}

type recordingSink struct{ events []Event }

func (r *recordingSink) EmitEvent(ev Event) { r.events = append(r.events, ev) }

type commandLog struct{ names []string }

func (c *commandLog) OnCommand(cmd Command) { c.names = append(c.names, cmd.Name) }

func TestAppNotStartedTerminates(t *testing.T) {
	app, _ := newTestApp(t)
	if err := app.Update(); !errors.Is(err, ebiten.Termination) {
		t.Errorf("Update before Start = %v, want ebiten.Termination", err)
	}
}

func TestAppDeltaAndFPS(t *testing.T) {
	app, _ := newTestApp(t)
	var log []string
	app.RegisterState("a", func(stack *StateStack, ctx *Context) State {
		return &probeState{name: "a", log: &log, pass: true}
	})
	if err := app.Start("a"); err != nil {
		t.Fatal(err)
	}
	screen := ebiten.NewImage(8, 8)

	if err := frame(t, app, screen); err != nil {
		t.Fatal(err)
	}
	if app.Delta() != 0 || app.FPS() != 0 {
		t.Errorf("first frame dt=%v fps=%v, want 0, 0", app.Delta(), app.FPS())
	}
	if err := frame(t, app, screen); err != nil {
		t.Fatal(err)
	}
	if app.Delta() != 0.02 {
		t.Errorf("dt = %v, want 0.02", app.Delta())
	}
	if app.FPS() != 50 {
		t.Errorf("FPS = %v, want 50", app.FPS())
	}
}

func TestAppStopsWhenStackEmpties(t *testing.T) {
	app, _ := newTestApp(t)
	var log []string
	var st *probeState
	app.RegisterState("a", func(stack *StateStack, ctx *Context) State {
		st = &probeState{name: "a", log: &log, stack: stack, pass: true}
		return st
	})
	if err := app.Start("a"); err != nil {
		t.Fatal(err)
	}
	screen := ebiten.NewImage(8, 8)

	// The state pops itself on its first event.
	st.onEvent = func(p *probeState) { p.stack.RequestPop() }
	app.Events().Push(KeyEvent{Kind: EventKeyDown, Code: ebiten.KeyEscape})

	if err := frame(t, app, screen); err != nil {
		t.Fatalf("final frame should still run: %v", err)
	}
	if app.Running() {
		t.Error("app should be flagged to stop")
	}
	if err := app.Update(); !errors.Is(err, ebiten.Termination) {
		t.Errorf("Update after stop = %v, want ebiten.Termination", err)
	}
	want := []string{"a.event", "a.dispose"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("log mismatch (-want +got):\n%s", diff)
	}
}

func TestAppDrainsWholeQueue(t *testing.T) {
	app, _ := newTestApp(t)
	sink := &recordingSink{}
	app.SetEventSink(sink)
	var log []string
	app.RegisterState("a", func(stack *StateStack, ctx *Context) State {
		return &probeState{name: "a", log: &log, pass: true}
	})
	if err := app.Start("a"); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		app.Events().Push(KeyEvent{Kind: EventKeyDown, Code: ebiten.KeyA})
	}
	if err := app.Update(); err != nil {
		t.Fatal(err)
	}
	if !app.Events().IsEmpty() {
		t.Error("queue should be drained")
	}
	want := []string{"a.event", "a.event", "a.event", "a.update"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("log mismatch (-want +got):\n%s", diff)
	}
	if len(sink.events) != 3 {
		t.Errorf("sink saw %d events, want 3", len(sink.events))
	}
}

func TestAppKeyboardAndCommands(t *testing.T) {
	app, in := newTestApp(t)
	target := &commandLog{}
	app.SetInputController(NewKeyBindings(
		KeyBinding{Key: ebiten.KeySpace, Command: Command{Name: "jump"}},
		KeyBinding{Key: ebiten.KeyD, Command: Command{Name: "right"}, Realtime: true},
	), target)
	app.RegisterState("a", func(stack *StateStack, ctx *Context) State {
		b := NewBaseState(stack, ctx)
		return &b
	})
	if err := app.Start("a"); err != nil {
		t.Fatal(err)
	}

	in.justPressed = []ebiten.Key{ebiten.KeySpace, ebiten.KeyD}
	if err := app.Update(); err != nil {
		t.Fatal(err)
	}
	in.endFrame()
	if err := app.Update(); err != nil {
		t.Fatal(err)
	}

	if !app.Keyboard().IsKeyPressed(ebiten.KeyD) {
		t.Error("keyboard should track D as held")
	}
	want := []string{"jump", "right", "right"}
	if diff := cmp.Diff(want, target.names); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}
}

func TestAppRequireController(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RequireController = true
	app := NewApp(cfg)
	if err := app.Start(); !errors.Is(err, ErrNoInputController) {
		t.Errorf("Start = %v, want ErrNoInputController", err)
	}
	app.SetInputController(NewKeyBindings(), nil)
	if err := app.Start(); err != nil {
		t.Errorf("Start with controller: %v", err)
	}
}

func TestAppUnknownStateAbortsFrame(t *testing.T) {
	app, _ := newTestApp(t)
	app.RegisterState("a", func(stack *StateStack, ctx *Context) State {
		b := NewBaseState(stack, ctx)
		return &b
	})
	if err := app.Start("a"); err != nil {
		t.Fatal(err)
	}
	app.Stack().RequestPush("nope")
	app.Events().Push(KeyEvent{Kind: EventKeyDown})
	if err := app.Update(); !errors.Is(err, ErrUnknownState) {
		t.Errorf("Update = %v, want ErrUnknownState", err)
	}
}

func TestAppStartUnknownState(t *testing.T) {
	app, _ := newTestApp(t)
	if err := app.Start("missing"); !errors.Is(err, ErrUnknownState) {
		t.Errorf("Start = %v, want ErrUnknownState", err)
	}
}

func TestAppDrawNilPanics(t *testing.T) {
	app, _ := newTestApp(t)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil screen")
		}
	}()
	app.Draw(nil)
}

func TestAppLayout(t *testing.T) {
	app, _ := newTestApp(t)
	w, h := app.Layout(1920, 1080)
	if w != 800 || h != 600 {
		t.Errorf("Layout = %dx%d, want 800x600", w, h)
	}
}

func TestAppStop(t *testing.T) {
	app, _ := newTestApp(t)
	app.RegisterState("a", func(stack *StateStack, ctx *Context) State {
		b := NewBaseState(stack, ctx)
		return &b
	})
	if err := app.Start("a"); err != nil {
		t.Fatal(err)
	}
	app.Stop()
	if err := app.Update(); !errors.Is(err, ebiten.Termination) {
		t.Errorf("Update after Stop = %v, want ebiten.Termination", err)
	}
}

func TestAppLifecycleHooks(t *testing.T) {
	app, _ := newTestApp(t)
	var log []string
	app.RegisterState("a", func(stack *StateStack, ctx *Context) State {
		return &probeState{name: "a", log: &log, pass: true}
	})
	app.OnStart = func() {
		log = append(log, "start:"+strings.Join(app.Stack().Keys(), ","))
	}
	app.BeforeUpdate = func(dt float64) { log = append(log, "beforeUpdate") }
	app.BeforeRender = func(screen *ebiten.Image) { log = append(log, "beforeRender") }

	if err := app.Start("a"); err != nil {
		t.Fatal(err)
	}
	app.Events().Push(KeyEvent{Kind: EventKeyDown, Code: ebiten.KeyA})
	if err := frame(t, app, ebiten.NewImage(8, 8)); err != nil {
		t.Fatal(err)
	}

	want := []string{"start:a", "a.event", "beforeUpdate", "a.update", "beforeRender", "a.render"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("log mismatch (-want +got):\n%s", diff)
	}
}
