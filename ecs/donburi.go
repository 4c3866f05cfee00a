package ecs

import (
	"github.com/phanxgames/arbor"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InputEventType is the Donburi event type for arbor input events.
// Subscribe to this in your ECS systems to receive key, button, move and
// wheel events. Type-switch on the payload to get the concrete event.
var InputEventType = events.NewEventType[arbor.Event]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Events are published to InputEventType and delivered when the world's
// systems call ProcessEvents.
func NewDonburiSink(world donburi.World) arbor.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(ev arbor.Event) {
	InputEventType.Publish(s.world, ev)
}
