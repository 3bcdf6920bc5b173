// Package ecs provides ECS adapters for arbuild.
package ecs

import (
	"github.com/phanxgames/arbuild"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// ManipulationEventType is the Donburi event type for arbuild events.
// Subscribe to this in your ECS systems to mirror placed objects.
var ManipulationEventType = events.NewEventType[arbuild.Event]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Manipulation events are published to ManipulationEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) arbuild.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event arbuild.Event) {
	ManipulationEventType.Publish(s.world, event)
}
