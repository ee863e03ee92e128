// Package ecs bridges marionette physics events into a [Donburi] world.
//
// [NewDonburiSink] returns a [marionette.EventSink] that publishes every
// physics output as a typed Donburi event. Subscribe to [PhysicsEventType]
// in your ECS systems to react when a simulated parameter changes, e.g. to
// play a sound when hair swings past a threshold.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	puppet.SetEventSink(sink)
//
// A puppet's own component world can carry the events too:
//
//	puppet.SetEventSink(ecs.NewDonburiSink(puppet.World().Donburi()))
//
// [OnlyChanges] keeps a settled pendulum from publishing the same output
// every frame:
//
//	sink := ecs.NewDonburiSink(world, ecs.OnlyChanges(1e-3))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
