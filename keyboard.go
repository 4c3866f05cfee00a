package arbor

import (
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
)

// Keyboard tracks which keys are currently held, fed from KeyDown/KeyUp
// events. It is owned by the App and shared read-only with states through the
// Context; nothing about it is global. The zero value has no keys held.
type Keyboard struct {
	pressed map[ebiten.Key]bool
}

// NewKeyboard returns a Keyboard with no keys held.
func NewKeyboard() *Keyboard {
	return &Keyboard{pressed: make(map[ebiten.Key]bool)}
}

// HandleEvent records key presses and releases. Non-keyboard events are
// ignored.
func (k *Keyboard) HandleEvent(ev Event) {
	ke, ok := ev.(KeyEvent)
	if !ok {
		return
	}
	switch ke.Kind {
	case EventKeyDown:
		if k.pressed == nil {
			k.pressed = make(map[ebiten.Key]bool)
		}
		k.pressed[ke.Code] = true
	case EventKeyUp:
		delete(k.pressed, ke.Code)
	}
}

// IsKeyPressed reports whether key is currently held.
func (k *Keyboard) IsKeyPressed(key ebiten.Key) bool {
	return k.pressed[key]
}

// Reset releases every key, e.g. when the window loses focus.
func (k *Keyboard) Reset() {
	clear(k.pressed)
}

// keyName returns the printable name for key. Single-rune names are
// lowercased so letter keys read the way they are typed.
func keyName(key ebiten.Key) string {
	name := key.String()
	if utf8.RuneCountInString(name) == 1 {
		return strings.ToLower(name)
	}
	return name
}
