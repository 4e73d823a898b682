package ecs

// Observer receives structural changes after the World has applied them.
// Callbacks run synchronously on the mutating goroutine and must not mutate
// the World.
type Observer interface {
	EntityCreated(id EntityID)
	EntityDestroyed(id EntityID)
	ComponentAttached(id EntityID, c ComponentTypeID)
	ComponentDetached(id EntityID, c ComponentTypeID)
}

type nopObserver struct{}

func (nopObserver) EntityCreated(EntityID)                      {}
func (nopObserver) EntityDestroyed(EntityID)                    {}
func (nopObserver) ComponentAttached(EntityID, ComponentTypeID) {}
func (nopObserver) ComponentDetached(EntityID, ComponentTypeID) {}
