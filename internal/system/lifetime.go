package system

import (
	"time"

	"github.com/cubos/engine/internal/component"
	"github.com/cubos/engine/internal/core/ecs"
	coresys "github.com/cubos/engine/internal/core/system"
)

// LifetimeSystem counts down Lifetime components and marks expired entities
// for destruction. CleanupSystem destroys them at the end of the same tick.
// Phase PostUpdate.
type LifetimeSystem struct {
	world *ecs.World
}

func NewLifetimeSystem(world *ecs.World) *LifetimeSystem {
	return &LifetimeSystem{world: world}
}

func (s *LifetimeSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *LifetimeSystem) Update(dt time.Duration) {
	ecs.Each1(s.world, func(id ecs.EntityID, l *component.Lifetime) {
		l.Remaining -= dt
		if l.Remaining <= 0 {
			s.world.MarkForDestruction(id)
		}
	})
}
