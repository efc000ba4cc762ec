// Package ecs provides ECS adapters for glide's motion notifications.
//
// [NewDonburiSink] bridges glide motion events (reveals, cursor targets,
// active sections, slider values) into a [Donburi] world as typed events.
// Subscribe to [MotionEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	stage.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
