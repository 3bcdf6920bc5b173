// Package ecs provides ECS adapters for arbuild's manipulation events.
//
// The primary adapter is [NewDonburiSink], which bridges arbuild events
// (create, select, deselect, move, rotate, scale) into a [Donburi] world as
// typed events. Subscribe to [ManipulationEventType] in your ECS systems to
// receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	builder.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
