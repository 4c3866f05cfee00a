// Package ecs provides ECS adapters for arbor's input events.
//
// The primary adapter is [NewDonburiSink], which publishes every event the
// App routes into a [Donburi] world as a typed event. Subscribe to
// [InputEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	app.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
