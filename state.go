package arbor

import "github.com/hajimehoshi/ebiten/v2"

// State is one screen of the application, such as a menu or a level.
//
// HandleEvent and Update return whether the states beneath should also
// receive the event or update; returning false stops propagation down the
// stack. Render is always called for every state, bottom to top.
type State interface {
	HandleEvent(ev Event) bool
	Update(dt float64) bool
	Render(screen *ebiten.Image)
}

// Disposer is implemented by states that release resources when popped or
// cleared off the stack.
type Disposer interface {
	Dispose()
}

// Context carries the services shared by every state. It is built once by
// the App and passed to each state constructor.
type Context struct {
	Config     *Config
	Assets     *Assets
	Keyboard   *Keyboard
	Controller InputController
	// Target receives commands produced by Controller.
	Target Commandable
}

// BaseState provides the canvas and stack plumbing most states need. Embed
// it and override the hooks that need more than canvas fan-out.
type BaseState struct {
	Canvas  *Canvas
	Stack   *StateStack
	Context *Context
}

// NewBaseState creates a BaseState whose canvas covers the configured
// window size.
func NewBaseState(stack *StateStack, ctx *Context) BaseState {
	cfg := DefaultConfig()
	if ctx != nil && ctx.Config != nil {
		cfg = ctx.Config
	}
	return BaseState{
		Canvas:  NewCanvas(0, 0, float64(cfg.Width), float64(cfg.Height)),
		Stack:   stack,
		Context: ctx,
	}
}

// RequestPush asks the stack to push the state registered under key once
// the current event or update pass finishes.
func (s *BaseState) RequestPush(key string) {
	s.Stack.RequestPush(key)
}

// RequestPop asks the stack to pop the top state.
func (s *BaseState) RequestPop() {
	s.Stack.RequestPop()
}

// RequestClear asks the stack to remove every state.
func (s *BaseState) RequestClear() {
	s.Stack.RequestClear()
}

// HandleEvent forwards ev to the canvas and lets it propagate.
func (s *BaseState) HandleEvent(ev Event) bool {
	s.Canvas.HandleEvent(ev)
	return true
}

// Update advances the canvas and lets the update propagate.
func (s *BaseState) Update(dt float64) bool {
	s.Canvas.Update(dt)
	return true
}

// Render draws the canvas.
func (s *BaseState) Render(screen *ebiten.Image) {
	s.Canvas.Render(screen)
}
