package event

import "github.com/cubos/engine/internal/core/ecs"

// WorldObserver forwards a World's structural changes to a Bus. Install it
// through ecs.Options.Observer.
type WorldObserver struct {
	bus   *Bus
	world string
}

var _ ecs.Observer = (*WorldObserver)(nil)

func NewWorldObserver(bus *Bus, world string) *WorldObserver {
	return &WorldObserver{bus: bus, world: world}
}

func (o *WorldObserver) EntityCreated(id ecs.EntityID) {
	Emit(o.bus, EntityCreated{World: o.world, Entity: id})
}

func (o *WorldObserver) EntityDestroyed(id ecs.EntityID) {
	Emit(o.bus, EntityDestroyed{World: o.world, Entity: id})
}

func (o *WorldObserver) ComponentAttached(id ecs.EntityID, c ecs.ComponentTypeID) {
	Emit(o.bus, ComponentAttached{World: o.world, Entity: id, Component: c})
}

func (o *WorldObserver) ComponentDetached(id ecs.EntityID, c ecs.ComponentTypeID) {
	Emit(o.bus, ComponentDetached{World: o.world, Entity: id, Component: c})
}
