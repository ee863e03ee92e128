package ecs

import (
	"testing"

	"github.com/phanxgames/marionette"
	"github.com/phanxgames/marionette/internal/demo"

	"github.com/yohamta/donburi"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []marionette.PhysicsEvent
	PhysicsEventType.Subscribe(world, func(w donburi.World, e marionette.PhysicsEvent) {
		received = append(received, e)
	})

	sink.EmitEvent(marionette.PhysicsEvent{Node: 8, Param: "Hair:: Sway", Value: marionette.Vec2{-0.25, 0.1}})
	sink.EmitEvent(marionette.PhysicsEvent{Node: 9, Param: "Tail", Value: marionette.Vec2{0.5, 1}})

	if len(received) != 0 {
		t.Fatalf("events must queue until processed, got %d", len(received))
	}

	// Events are queued; process them.
	PhysicsEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	e0 := received[0]
	if e0.Node != 8 || e0.Param != "Hair:: Sway" || e0.Value != (marionette.Vec2{-0.25, 0.1}) {
		t.Errorf("event 0 = %+v", e0)
	}
	if received[1].Param != "Tail" {
		t.Errorf("event 1 param = %q, want Tail", received[1].Param)
	}
}

func TestDonburiSink_PuppetWorld(t *testing.T) {
	p := demo.Build(marionette.DefaultConfig())
	world := p.World().Donburi()
	p.SetEventSink(NewDonburiSink(world))

	var swings int
	PhysicsEventType.Subscribe(world, func(w donburi.World, e marionette.PhysicsEvent) {
		if e.Node != demo.NodeHairAnchor || e.Param != demo.ParamSway {
			t.Errorf("unexpected event %+v", e)
		}
		swings++
	})

	for range 3 {
		p.BeginSetParams()
		p.EndSetParams(1.0 / 60)
		PhysicsEventType.ProcessEvents(world)
	}
	if swings != 3 {
		t.Fatalf("expected one event per frame, got %d", swings)
	}
}

func TestDonburiSink_OnlyChanges(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world, OnlyChanges(0.01))

	var received []marionette.PhysicsEvent
	PhysicsEventType.Subscribe(world, func(w donburi.World, e marionette.PhysicsEvent) {
		received = append(received, e)
	})

	sway := func(x float32) marionette.PhysicsEvent {
		return marionette.PhysicsEvent{Node: 8, Param: "Hair:: Sway", Value: marionette.Vec2{x, 0}}
	}
	sink.EmitEvent(sway(0.2))
	sink.EmitEvent(sway(0.205)) // within epsilon of the last published value
	sink.EmitEvent(sway(0.3))
	sink.EmitEvent(marionette.PhysicsEvent{Node: 9, Param: "Hair:: Sway", Value: marionette.Vec2{0.3, 0}})
	PhysicsEventType.ProcessEvents(world)

	if len(received) != 3 {
		t.Fatalf("expected 3 events, got %d: %+v", len(received), received)
	}
	if received[1].Value[0] != 0.3 || received[2].Node != 9 {
		t.Errorf("unexpected events %+v", received)
	}
}

func TestDonburiSink_OnlyChangesOnPuppet(t *testing.T) {
	const epsilon = 0.05
	p := demo.Build(marionette.DefaultConfig())
	world := p.World().Donburi()
	p.SetEventSink(NewDonburiSink(world, OnlyChanges(epsilon)))

	var values []marionette.Vec2
	PhysicsEventType.Subscribe(world, func(w donburi.World, e marionette.PhysicsEvent) {
		values = append(values, e.Value)
	})

	for range 60 {
		p.BeginSetParams()
		p.EndSetParams(1.0 / 60)
		PhysicsEventType.ProcessEvents(world)
	}
	if len(values) == 0 || len(values) > 60 {
		t.Fatalf("published %d events over 60 frames", len(values))
	}
	for i := 1; i < len(values); i++ {
		d := values[i].Sub(values[i-1])
		if max(d[0], -d[0]) <= epsilon && max(d[1], -d[1]) <= epsilon {
			t.Errorf("event %d repeats %v within epsilon of %v", i, values[i], values[i-1])
		}
	}
}
