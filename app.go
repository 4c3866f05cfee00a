package arbor

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// ErrNoInputController is returned by Start when the config requires an
// input controller and none was set.
var ErrNoInputController = errors.New("arbor: input controller required")

// EventSink observes every event routed by the App, after the keyboard and
// controller have seen it and before the state stack does.
type EventSink interface {
	EmitEvent(ev Event)
}

// App drives the frame loop: it drains input into events, routes them
// through the state stack, updates and renders. It implements ebiten.Game.
type App struct {
	config     *Config
	background Color
	source     *EventSource
	stack      *StateStack
	ctx        *Context
	commands   Queue[Command]
	sink       EventSink

	clock   func() time.Time
	last    time.Time
	dt      float64
	fps     float64
	running bool
	stopped bool

	log   *debugLogger
	stats debugStats
	frame uint64

	// Optional lifecycle hooks. OnStart runs once at the end of Start,
	// after the initial states are on the stack. BeforeUpdate runs each
	// frame after events are routed and before the states update.
	// BeforeRender runs after the screen is cleared and before the states
	// render.
	OnStart      func()
	BeforeUpdate func(dt float64)
	BeforeRender func(screen *ebiten.Image)

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir   string
	screenshotQueue []string
	testRunner      *TestRunner
}

// NewApp creates an App from cfg. A nil cfg uses DefaultConfig.
func NewApp(cfg *Config) *App {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	ctx := &Context{
		Config:   cfg,
		Assets:   NewAssets(),
		Keyboard: NewKeyboard(),
	}
	a := &App{
		config:        cfg,
		background:    cfg.BackgroundColor(),
		source:        NewEventSource(Rect{Width: float64(cfg.Width), Height: float64(cfg.Height)}),
		stack:         NewStateStack(ctx),
		ctx:           ctx,
		clock:         time.Now,
		ScreenshotDir: cfg.ScreenshotDir,
	}
	a.SetDebugMode(cfg.Debug)
	return a
}

// Config returns the configuration the App was built with.
func (a *App) Config() *Config { return a.config }

// Context returns the services shared with every state.
func (a *App) Context() *Context { return a.ctx }

// Stack returns the state stack.
func (a *App) Stack() *StateStack { return a.stack }

// Events returns the event source, for injecting synthetic input.
func (a *App) Events() *EventSource { return a.source }

// Assets returns the shared asset store.
func (a *App) Assets() *Assets { return a.ctx.Assets }

// Keyboard returns the shared keyboard state.
func (a *App) Keyboard() *Keyboard { return a.ctx.Keyboard }

// RegisterState binds key to ctor on the state stack.
func (a *App) RegisterState(key string, ctor StateConstructor) {
	a.stack.RegisterState(key, ctor)
}

// SetInputController installs c and the target its commands are sent to.
func (a *App) SetInputController(c InputController, target Commandable) {
	a.ctx.Controller = c
	a.ctx.Target = target
}

// SetEventSink installs an observer for every routed event.
func (a *App) SetEventSink(sink EventSink) {
	a.sink = sink
}

// SetEventSource replaces the event source, e.g. with one reading a fake
// RawInput in tests.
func (a *App) SetEventSource(src *EventSource) {
	a.source = src
}

// SetClock replaces the time source used to compute frame deltas.
func (a *App) SetClock(clock func() time.Time) {
	a.clock = clock
}

// SetDebugMode enables per-frame diagnostics on stderr.
func (a *App) SetDebugMode(enabled bool) {
	if enabled {
		a.log = newDebugLogger(os.Stderr)
	} else {
		a.log = nil
	}
	a.stack.setLogger(a.log)
}

// FPS returns round(1/dt) for the last frame, or 0 before the second frame.
func (a *App) FPS() float64 { return a.fps }

// Delta returns the last frame's duration in seconds.
func (a *App) Delta() float64 { return a.dt }

// Running reports whether the loop is still scheduled to continue.
func (a *App) Running() bool { return a.running && !a.stopped }

// Stop ends the loop after the current frame has been drawn.
func (a *App) Stop() { a.stopped = true }

// Start pushes the initial states, bottom first, and marks the App running.
func (a *App) Start(initial ...string) error {
	if a.config.RequireController && a.ctx.Controller == nil {
		return ErrNoInputController
	}
	if err := a.config.Validate(); err != nil {
		return err
	}
	for _, key := range initial {
		a.stack.RequestPush(key)
	}
	if err := a.stack.ApplyPending(); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	a.running = true
	a.stopped = false
	a.last = time.Time{}
	if a.OnStart != nil {
		a.OnStart()
	}
	return nil
}

// Update runs one frame of input routing and state updates. It returns
// ebiten.Termination once a stop flagged on the previous frame has been
// drawn.
func (a *App) Update() error {
	if !a.running || a.stopped {
		return ebiten.Termination
	}
	a.frame++
	if a.testRunner != nil {
		a.testRunner.step(a)
	}

	now := a.clock()
	a.dt = 0
	if !a.last.IsZero() {
		a.dt = now.Sub(a.last).Seconds()
	}
	a.last = now
	if a.dt > 0 {
		a.fps = math.Round(1 / a.dt)
	}

	t0 := time.Now()
	a.source.Poll()
	if err := a.routeEvents(); err != nil {
		return err
	}
	if a.stack.IsEmpty() {
		a.stopped = true
	}
	a.dispatchCommands()
	a.stats.eventTime = time.Since(t0)

	if a.BeforeUpdate != nil {
		a.BeforeUpdate(a.dt)
	}

	t0 = time.Now()
	err := a.stack.Update(a.dt)
	a.stats.updateTime = time.Since(t0)
	return err
}

// routeEvents drains the event source completely.
func (a *App) routeEvents() error {
	kb := a.ctx.Keyboard
	ctl := a.ctx.Controller
	for !a.source.IsEmpty() {
		ev, err := a.source.PollEvent()
		if err != nil {
			return err
		}
		a.stats.eventCount++
		kb.HandleEvent(ev)
		if ke, ok := ev.(KeyEvent); ok && ctl != nil {
			ctl.HandleKeyboardEvent(ke, &a.commands)
		}
		if a.sink != nil {
			a.sink.EmitEvent(ev)
		}
		if err := a.stack.HandleEvent(ev); err != nil {
			return err
		}
	}
	if ctl != nil {
		ctl.HandleRealtimeInput(kb, &a.commands)
	}
	return nil
}

// dispatchCommands sends queued commands to the target. Without a target
// they are dropped.
func (a *App) dispatchCommands() {
	target := a.ctx.Target
	for !a.commands.IsEmpty() {
		cmd, _ := a.commands.Dequeue()
		if target != nil {
			target.OnCommand(cmd)
		}
	}
}

// Draw clears the screen to the configured background, renders the state
// stack bottom up and captures queued screenshots.
func (a *App) Draw(screen *ebiten.Image) {
	if screen == nil {
		panic("arbor: Draw called without a drawing surface")
	}
	t0 := time.Now()
	if !a.background.Transparent() {
		screen.Fill(a.background.RGBA())
	}
	if a.BeforeRender != nil {
		a.BeforeRender(screen)
	}
	a.stack.Render(screen)
	if a.config.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.0f", a.fps))
	}
	a.flushScreenshots(screen)
	a.stats.renderTime = time.Since(t0)

	a.stats.requestCount = a.stack.takeApplied()
	a.stats.stackDepth = a.stack.Len()
	a.log.frame(a.frame, a.stats)
	a.stats = debugStats{}
}

// Layout reports the configured logical screen size.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.config.Width, a.config.Height
}
