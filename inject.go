package arbor

import "github.com/hajimehoshi/ebiten/v2"

// syntheticInput represents a single injected raw signal. Window coordinates
// are used, identical to real cursor input, so injected pointer signals go
// through the same region filter and translation.
type syntheticInput struct {
	x, y    float64
	pressed bool
	isKey   bool
	key     ebiten.Key
	keyDown bool
}

// InjectPress queues a left-button press at the given window coordinates.
// The signal is consumed on the next Poll.
func (s *EventSource) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticInput{x: x, y: y, pressed: true})
}

// InjectMove queues a cursor move with the left button held. Use this
// between InjectPress and InjectRelease to simulate a drag.
func (s *EventSource) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticInput{x: x, y: y, pressed: true})
}

// InjectHover queues a cursor move with no button held.
func (s *EventSource) InjectHover(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticInput{x: x, y: y})
}

// InjectRelease queues a left-button release at the given window coordinates.
func (s *EventSource) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticInput{x: x, y: y})
}

// InjectClick is a convenience that queues a press followed by a release
// at the same coordinates. Consumes two polls.
func (s *EventSource) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). The total sequence consumes `frames` polls.
// Minimum frames is 2 (press + release).
func (s *EventSource) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectRelease(toX, toY)
}

// InjectKey queues a key press followed by its release. Consumes two polls.
func (s *EventSource) InjectKey(key ebiten.Key) {
	s.injectQueue = append(s.injectQueue,
		syntheticInput{isKey: true, key: key, keyDown: true},
		syntheticInput{isKey: true, key: key},
	)
}

// Pending returns the number of synthetic signals not yet consumed.
func (s *EventSource) Pending() int {
	return len(s.injectQueue)
}

// processInjectedInput pops one synthetic signal and feeds it through the
// same classification as real input. Returns true if a signal was consumed
// (real pointer input is skipped for this poll).
func (s *EventSource) processInjectedInput(mods KeyModifiers) bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	in := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	if in.isKey {
		kind := EventKeyUp
		if in.keyDown {
			kind = EventKeyDown
		}
		s.queue.Enqueue(KeyEvent{Kind: kind, Code: in.key, Key: keyName(in.key), Mods: mods})
		return true
	}

	var pressed [len(trackedButtons)]bool
	pressed[MouseButtonLeft] = in.pressed
	s.processPointer(in.x, in.y, pressed, 0, 0, mods)
	return true
}
