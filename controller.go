package arbor

import "github.com/hajimehoshi/ebiten/v2"

// Command is a named action produced by an InputController and executed
// against a Commandable target.
type Command struct {
	Name   string
	Action func(target Commandable)
}

// Commandable receives commands dispatched by the App.
type Commandable interface {
	OnCommand(cmd Command)
}

// InputController turns keyboard input into commands. HandleKeyboardEvent
// sees each key event as it is routed; HandleRealtimeInput runs once per
// frame after routing and may inspect held keys.
type InputController interface {
	HandleKeyboardEvent(ev KeyEvent, commands *Queue[Command])
	HandleRealtimeInput(kb *Keyboard, commands *Queue[Command])
}

// KeyBinding maps a key to a command. Realtime bindings fire every frame
// while the key is held; the others fire once per key press.
type KeyBinding struct {
	Key      ebiten.Key
	Command  Command
	Realtime bool
}

// KeyBindings is a table-driven InputController.
type KeyBindings struct {
	bindings []KeyBinding
}

// NewKeyBindings returns a controller with the given bindings.
func NewKeyBindings(bindings ...KeyBinding) *KeyBindings {
	kb := &KeyBindings{}
	for _, b := range bindings {
		kb.Bind(b)
	}
	return kb
}

// Bind adds b, replacing any binding for the same key.
func (k *KeyBindings) Bind(b KeyBinding) {
	for i := range k.bindings {
		if k.bindings[i].Key == b.Key {
			k.bindings[i] = b
			return
		}
	}
	k.bindings = append(k.bindings, b)
}

// Unbind removes the binding for key, if any.
func (k *KeyBindings) Unbind(key ebiten.Key) {
	for i := range k.bindings {
		if k.bindings[i].Key == key {
			k.bindings = append(k.bindings[:i], k.bindings[i+1:]...)
			return
		}
	}
}

// HandleKeyboardEvent queues the command of a non-realtime binding on key
// down.
func (k *KeyBindings) HandleKeyboardEvent(ev KeyEvent, commands *Queue[Command]) {
	if ev.Kind != EventKeyDown {
		return
	}
	for _, b := range k.bindings {
		if b.Key == ev.Code && !b.Realtime {
			commands.Enqueue(b.Command)
			return
		}
	}
}

// HandleRealtimeInput queues the command of every realtime binding whose key
// is held, in binding order.
func (k *KeyBindings) HandleRealtimeInput(kb *Keyboard, commands *Queue[Command]) {
	for _, b := range k.bindings {
		if b.Realtime && kb.IsKeyPressed(b.Key) {
			commands.Enqueue(b.Command)
		}
	}
}
