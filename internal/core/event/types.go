package event

import "github.com/cubos/engine/internal/core/ecs"

// Structural events mirrored from a World by WorldObserver.

type EntityCreated struct {
	World  string
	Entity ecs.EntityID
}

type EntityDestroyed struct {
	World  string
	Entity ecs.EntityID
}

type ComponentAttached struct {
	World     string
	Entity    ecs.EntityID
	Component ecs.ComponentTypeID
}

type ComponentDetached struct {
	World     string
	Entity    ecs.EntityID
	Component ecs.ComponentTypeID
}
