package marionette

import (
	"fmt"

	"github.com/yohamta/donburi"
)

// World stores the optional per-node components of one puppet. Each node is
// backed by a donburi entity; a node has a capability purely by carrying the
// matching component.
//
// Components describing per-frame results (transforms, z-sort, deform
// stacks) are reset at the start of every frame. [SimplePhysics] integrator
// state lives in its component and is never reset by the frame loop.
//
// Pointers returned by Get are invalidated by a later Add on the same node.
type World struct {
	ecs      donburi.World
	entities map[NodeID]donburi.Entity
}

var nodeTag = donburi.NewTag()

// NewWorld creates an empty component store.
func NewWorld() *World {
	return &World{
		ecs:      donburi.NewWorld(),
		entities: make(map[NodeID]donburi.Entity),
	}
}

// Donburi exposes the backing ECS world, e.g. to publish events into it.
func (w *World) Donburi() donburi.World {
	return w.ecs
}

// entry returns the entity entry for id, creating the entity when create is
// set. Returns nil for an unknown id when create is false.
func (w *World) entry(id NodeID, create bool) *donburi.Entry {
	e, ok := w.entities[id]
	if !ok {
		if !create {
			return nil
		}
		e = w.ecs.Create(nodeTag)
		w.entities[id] = e
	}
	return w.ecs.Entry(e)
}

// ComponentType is a typed handle for one component kind. The set of kinds
// is closed and declared as package-level variables.
type ComponentType[T any] struct {
	name string
	ct   *donburi.ComponentType[T]
}

func newComponentType[T any](name string) *ComponentType[T] {
	return &ComponentType[T]{name: name, ct: donburi.NewComponentType[T]()}
}

// Name returns the component kind's name.
func (c *ComponentType[T]) Name() string {
	return c.name
}

// Add attaches v to node id. Attaching a second value of the same kind
// panics in debug mode; otherwise the first value is kept and the second is
// dropped.
func (c *ComponentType[T]) Add(w *World, id NodeID, v T) {
	entry := w.entry(id, true)
	if entry.HasComponent(c.ct) {
		if globalDebug {
			panic(fmt.Sprintf("marionette: node %d already has a %s component", id, c.name))
		}
		Logger().Debug("duplicate component ignored", "node", id, "component", c.name)
		return
	}
	donburi.Add(entry, c.ct, &v)
}

// Get returns the component attached to id. ok is false when the node lacks
// this capability.
func (c *ComponentType[T]) Get(w *World, id NodeID) (v *T, ok bool) {
	entry := w.entry(id, false)
	if entry == nil || !entry.HasComponent(c.ct) {
		return nil, false
	}
	return c.ct.Get(entry), true
}

// Has reports whether id carries this component.
func (c *ComponentType[T]) Has(w *World, id NodeID) bool {
	entry := w.entry(id, false)
	return entry != nil && entry.HasComponent(c.ct)
}

// mustGet returns a component that is structurally guaranteed to exist.
// A missing component means the pipeline is inconsistent and panics.
func (c *ComponentType[T]) mustGet(w *World, id NodeID) *T {
	v, ok := c.Get(w, id)
	if !ok {
		panic(fmt.Sprintf("marionette: node %d is missing its %s component", id, c.name))
	}
	return v
}
