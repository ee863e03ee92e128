package ecs

import (
	"github.com/phanxgames/marionette"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// PhysicsEventType is the Donburi event type for marionette physics events.
var PhysicsEventType = events.NewEventType[marionette.PhysicsEvent]()

// SinkOption configures a sink created by NewDonburiSink.
type SinkOption func(*donburiSink)

// OnlyChanges drops events whose value moved less than epsilon on both axes
// since the last event published for the same driver and parameter. A
// resting pendulum then stops flooding the world with identical events.
func OnlyChanges(epsilon float32) SinkOption {
	return func(s *donburiSink) {
		s.epsilon = epsilon
		s.last = make(map[driverKey]marionette.Vec2)
	}
}

type driverKey struct {
	node  marionette.NodeID
	param string
}

type donburiSink struct {
	world   donburi.World
	epsilon float32
	last    map[driverKey]marionette.Vec2 // nil publishes every event
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Physics
// events are published to PhysicsEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World, opts ...SinkOption) marionette.EventSink {
	s := &donburiSink{world: world}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *donburiSink) EmitEvent(event marionette.PhysicsEvent) {
	if s.last != nil {
		key := driverKey{node: event.Node, param: event.Param}
		if prev, ok := s.last[key]; ok && near(prev, event.Value, s.epsilon) {
			return
		}
		s.last[key] = event.Value
	}
	PhysicsEventType.Publish(s.world, event)
}

func near(a, b marionette.Vec2, epsilon float32) bool {
	d := a.Sub(b)
	return max(d[0], -d[0]) <= epsilon && max(d[1], -d[1]) <= epsilon
}
