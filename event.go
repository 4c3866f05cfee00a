package arbor

import "github.com/hajimehoshi/ebiten/v2"

// EventType identifies a kind of input event.
type EventType uint8

const (
	EventKeyDown    EventType = iota // a key was pressed
	EventKeyUp                       // a key was released
	EventMouseDown                   // a mouse button was pressed inside the canvas
	EventMouseUp                     // a mouse button was released inside the canvas
	EventMouseMove                   // the cursor moved inside the canvas
	EventMouseEnter                  // the cursor entered the canvas (or a component)
	EventMouseLeave                  // the cursor left the canvas (or a component)
	EventMouseWheel                  // the wheel scrolled while over the canvas
)

var eventTypeNames = [...]string{
	EventKeyDown:    "KeyDown",
	EventKeyUp:      "KeyUp",
	EventMouseDown:  "MouseDown",
	EventMouseUp:    "MouseUp",
	EventMouseMove:  "MouseMove",
	EventMouseEnter: "MouseEnter",
	EventMouseLeave: "MouseLeave",
	EventMouseWheel: "MouseWheel",
}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "EventType(?)"
}

// Event is a typed input record. The set of implementations is closed:
// KeyEvent, MouseButtonEvent, MouseMoveEvent and MouseWheelEvent. Events are
// values; handlers receive copies and cannot affect what other handlers see.
type Event interface {
	Type() EventType
	Modifiers() KeyModifiers
	isEvent()
}

// PointerEvent is an Event that carries a canvas-local cursor position.
type PointerEvent interface {
	Event
	Position() (x, y int)
}

// KeyEvent is a KeyDown or KeyUp event.
type KeyEvent struct {
	Kind EventType // EventKeyDown or EventKeyUp
	Code ebiten.Key
	Key  string // layout-dependent printable name, lowercase when single-rune
	Mods KeyModifiers
}

func (e KeyEvent) Type() EventType { return e.Kind }
func (e KeyEvent) Modifiers() KeyModifiers { return e.Mods }
func (KeyEvent) isEvent() {}

// MouseButtonEvent is a MouseDown or MouseUp event.
type MouseButtonEvent struct {
	Kind   EventType // EventMouseDown or EventMouseUp
	X, Y   int
	Button MouseButton
	Mods   KeyModifiers
}

func (e MouseButtonEvent) Type() EventType { return e.Kind }
func (e MouseButtonEvent) Modifiers() KeyModifiers { return e.Mods }
func (e MouseButtonEvent) Position() (int, int) { return e.X, e.Y }
func (MouseButtonEvent) isEvent() {}

// MouseMoveEvent is a MouseMove, MouseEnter or MouseLeave event.
type MouseMoveEvent struct {
	Kind EventType // EventMouseMove, EventMouseEnter or EventMouseLeave
	X, Y int
	Mods KeyModifiers
}

func (e MouseMoveEvent) Type() EventType { return e.Kind }
func (e MouseMoveEvent) Modifiers() KeyModifiers { return e.Mods }
func (e MouseMoveEvent) Position() (int, int) { return e.X, e.Y }
func (MouseMoveEvent) isEvent() {}

// MouseWheelEvent is a MouseWheel event. Delta is the vertical scroll amount,
// or the horizontal amount when there was no vertical scroll. Positive values
// follow Ebitengine's convention (up / left).
type MouseWheelEvent struct {
	X, Y  int
	Delta float64
	Mods  KeyModifiers
}

func (MouseWheelEvent) Type() EventType { return EventMouseWheel }
func (e MouseWheelEvent) Modifiers() KeyModifiers { return e.Mods }
func (e MouseWheelEvent) Position() (int, int) { return e.X, e.Y }
func (MouseWheelEvent) isEvent() {}
