package ecs

import (
	"github.com/phanxgames/glide"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// MotionEventType is the Donburi event type for glide motion events.
var MotionEventType = events.NewEventType[glide.MotionEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// queued on MotionEventType and delivered by ProcessEvents.
func NewDonburiSink(world donburi.World) glide.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event glide.MotionEvent) {
	MotionEventType.Publish(s.world, event)
}
