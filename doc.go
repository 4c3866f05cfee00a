// Package arbor is a small 2D application framework for [Ebitengine]: a
// per-frame loop, a typed input event pipeline, a push-down stack of screens
// and a retained-mode UI layer laid out against a canvas.
//
// # Quick start
//
// Register the screens of the application as states, then hand the App to
// [Run] with the key of the first one:
//
//	app := arbor.NewApp(arbor.DefaultConfig())
//	app.RegisterState("menu", newMenuState)
//	if err := app.Run("menu"); err != nil {
//		log.Fatal(err)
//	}
//
// The App implements [ebiten.Game], so it can also be driven by a custom
// ebiten.RunGame call after [App.Start]. The loop ends once the state stack
// is empty or [App.Stop] is called.
//
// # States
//
// A [State] handles events, updates and renders one screen. Events and
// updates visit the stack top down and stop at the first state that returns
// false, so a modal dialog can swallow input meant for the level beneath it.
// Rendering always goes bottom up.
//
// States never change the stack directly. [StateStack.RequestPush],
// [StateStack.RequestPop] and [StateStack.RequestClear] queue requests that
// are applied once the current pass is over:
//
//	func (m *menu) HandleEvent(ev arbor.Event) bool {
//		if ke, ok := ev.(arbor.KeyEvent); ok && ke.Kind == arbor.EventKeyDown {
//			m.RequestPush("game")
//		}
//		return m.BaseState.HandleEvent(ev)
//	}
//
// Embed [BaseState] to get a full-window [Canvas] and the request helpers.
//
// # Components
//
// UI elements embed [Component]. Each has a position, size, [Padding],
// border and background color, and tracks hover with enter, over and leave
// callbacks. Added to a canvas with an [Anchor], its position and size are
// recomputed from the canvas on every read:
//
//	btn := arbor.NewTextButton(arbor.ButtonProps{Label: "Play"})
//	btn.OnClick = func(arbor.MouseButtonEvent) { m.RequestPush("game") }
//	m.Canvas.MustAddElement("play", btn, arbor.Center())
//
// Ready-made kinds are [Text], [Image], [TextButton] and [FPSText].
// Position, color and alpha can be animated with tweens (via [gween]).
//
// # Input
//
// Each frame the [EventSource] samples the keyboard and mouse and queues
// typed events: [KeyEvent], [MouseButtonEvent], [MouseMoveEvent] and
// [MouseWheelEvent]. Mouse events are only produced while the cursor is
// inside the canvas region. The App drains the whole queue every frame.
// Key bindings turn keys into commands through an [InputController].
//
// Other systems can observe every event through an [EventSink]; the
// arbor/ecs module publishes them as [Donburi] events.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package arbor
