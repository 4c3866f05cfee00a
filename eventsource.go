package arbor

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// RawInput is the platform input surface polled by an EventSource once per
// frame. ebitenInput is the real implementation; tests substitute their own.
type RawInput interface {
	CursorPosition() (x, y int)
	IsMouseButtonPressed(button ebiten.MouseButton) bool
	Wheel() (xoff, yoff float64)
	IsKeyPressed(key ebiten.Key) bool
	AppendJustPressedKeys(keys []ebiten.Key) []ebiten.Key
	AppendJustReleasedKeys(keys []ebiten.Key) []ebiten.Key
}

type ebitenInput struct{}

func (ebitenInput) CursorPosition() (int, int) { return ebiten.CursorPosition() }
func (ebitenInput) IsMouseButtonPressed(b ebiten.MouseButton) bool {
	return ebiten.IsMouseButtonPressed(b)
}
func (ebitenInput) Wheel() (float64, float64) { return ebiten.Wheel() }
func (ebitenInput) IsKeyPressed(k ebiten.Key) bool { return ebiten.IsKeyPressed(k) }
func (ebitenInput) AppendJustPressedKeys(keys []ebiten.Key) []ebiten.Key {
	return inpututil.AppendJustPressedKeys(keys)
}
func (ebitenInput) AppendJustReleasedKeys(keys []ebiten.Key) []ebiten.Key {
	return inpututil.AppendJustReleasedKeys(keys)
}

// trackedButtons maps the buttons an EventSource reports to Ebitengine's.
var trackedButtons = [...]struct {
	button   MouseButton
	platform ebiten.MouseButton
}{
	{MouseButtonLeft, ebiten.MouseButtonLeft},
	{MouseButtonMiddle, ebiten.MouseButtonMiddle},
	{MouseButtonRight, ebiten.MouseButtonRight},
}

// EventSource turns raw platform input into typed events and queues them in
// arrival order. Mouse events are accepted only while the cursor is inside
// Region, and their coordinates are translated into Region-local space.
type EventSource struct {
	// Region is the canvas area in window coordinates. A zero Region accepts
	// mouse input anywhere.
	Region Rect

	raw   RawInput
	queue Queue[Event]

	keyBuf       []ebiten.Key
	inside       bool
	lastX, lastY int
	buttonsDown  [len(trackedButtons)]bool

	injectQueue []syntheticInput
}

// NewEventSource creates an EventSource reading from Ebitengine.
func NewEventSource(region Rect) *EventSource {
	return NewEventSourceFrom(ebitenInput{}, region)
}

// NewEventSourceFrom creates an EventSource reading from raw.
func NewEventSourceFrom(raw RawInput, region Rect) *EventSource {
	return &EventSource{Region: region, raw: raw, lastX: math.MinInt, lastY: math.MinInt}
}

// IsEmpty reports whether no events are waiting.
func (s *EventSource) IsEmpty() bool {
	return s.queue.IsEmpty()
}

// Len returns the number of waiting events.
func (s *EventSource) Len() int {
	return s.queue.Len()
}

// PollEvent removes and returns the oldest waiting event. Callers must check
// IsEmpty first; polling an empty source returns an error wrapping
// ErrEmptyQueue.
func (s *EventSource) PollEvent() (Event, error) {
	ev, err := s.queue.Dequeue()
	if err != nil {
		return nil, fmt.Errorf("poll event: %w", err)
	}
	return ev, nil
}

// Push appends ev to the queue as if it had arrived from the platform.
func (s *EventSource) Push(ev Event) {
	s.queue.Enqueue(ev)
}

// Poll samples the raw input once and queues every resulting event. It is
// called by the App at the start of each frame. When synthetic input is
// pending, one synthetic signal replaces the real pointer state this frame.
func (s *EventSource) Poll() {
	mods := readModifiers(s.raw)
	s.pollKeys(mods)

	if s.processInjectedInput(mods) {
		return
	}

	cx, cy := s.raw.CursorPosition()
	var pressed [len(trackedButtons)]bool
	for i, b := range trackedButtons {
		pressed[i] = s.raw.IsMouseButtonPressed(b.platform)
	}
	wx, wy := s.raw.Wheel()
	s.processPointer(float64(cx), float64(cy), pressed, wx, wy, mods)
}

func (s *EventSource) pollKeys(mods KeyModifiers) {
	s.keyBuf = s.raw.AppendJustPressedKeys(s.keyBuf[:0])
	for _, k := range s.keyBuf {
		s.queue.Enqueue(KeyEvent{Kind: EventKeyDown, Code: k, Key: keyName(k), Mods: mods})
	}
	s.keyBuf = s.raw.AppendJustReleasedKeys(s.keyBuf[:0])
	for _, k := range s.keyBuf {
		s.queue.Enqueue(KeyEvent{Kind: EventKeyUp, Code: k, Key: keyName(k), Mods: mods})
	}
}

// accepts reports whether a window-space point targets the canvas region.
func (s *EventSource) accepts(wx, wy float64) bool {
	if s.Region.Width == 0 && s.Region.Height == 0 {
		return true
	}
	return s.Region.Contains(wx, wy)
}

// toLocal translates window coordinates into floored region-local ints.
func (s *EventSource) toLocal(wx, wy float64) (int, int) {
	return int(math.Floor(wx - s.Region.X)), int(math.Floor(wy - s.Region.Y))
}

// processPointer classifies one sample of pointer state into events.
func (s *EventSource) processPointer(wx, wy float64, pressed [len(trackedButtons)]bool, wheelX, wheelY float64, mods KeyModifiers) {
	x, y := s.toLocal(wx, wy)
	inside := s.accepts(wx, wy)

	if inside != s.inside {
		kind := EventMouseLeave
		if inside {
			kind = EventMouseEnter
		}
		s.queue.Enqueue(MouseMoveEvent{Kind: kind, X: x, Y: y, Mods: mods})
		s.inside = inside
	} else if inside && (x != s.lastX || y != s.lastY) {
		s.queue.Enqueue(MouseMoveEvent{Kind: EventMouseMove, X: x, Y: y, Mods: mods})
	}
	s.lastX, s.lastY = x, y

	for i, b := range trackedButtons {
		if pressed[i] == s.buttonsDown[i] {
			continue
		}
		s.buttonsDown[i] = pressed[i]
		if !inside {
			continue
		}
		kind := EventMouseUp
		if pressed[i] {
			kind = EventMouseDown
		}
		s.queue.Enqueue(MouseButtonEvent{Kind: kind, X: x, Y: y, Button: b.button, Mods: mods})
	}

	if inside && (wheelX != 0 || wheelY != 0) {
		delta := wheelY
		if delta == 0 {
			delta = wheelX
		}
		s.queue.Enqueue(MouseWheelEvent{X: x, Y: y, Delta: delta, Mods: mods})
	}
}

// readModifiers reads the current keyboard modifier state.
func readModifiers(raw RawInput) KeyModifiers {
	var mods KeyModifiers
	if raw.IsKeyPressed(ebiten.KeyShift) || raw.IsKeyPressed(ebiten.KeyShiftLeft) || raw.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= ModShift
	}
	if raw.IsKeyPressed(ebiten.KeyControl) || raw.IsKeyPressed(ebiten.KeyControlLeft) || raw.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= ModCtrl
	}
	if raw.IsKeyPressed(ebiten.KeyAlt) || raw.IsKeyPressed(ebiten.KeyAltLeft) || raw.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= ModAlt
	}
	if raw.IsKeyPressed(ebiten.KeyMeta) || raw.IsKeyPressed(ebiten.KeyMetaLeft) || raw.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= ModMeta
	}
	return mods
}
