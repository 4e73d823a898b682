package system

import (
	"time"

	"github.com/cubos/engine/internal/component"
	"github.com/cubos/engine/internal/core/ecs"
	coresys "github.com/cubos/engine/internal/core/system"
)

// MovementSystem integrates Velocity into Position. Phase Update.
type MovementSystem struct {
	world *ecs.World
}

func NewMovementSystem(world *ecs.World) *MovementSystem {
	return &MovementSystem{world: world}
}

func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *MovementSystem) Update(dt time.Duration) {
	sec := dt.Seconds()
	ecs.Each2(s.world, func(_ ecs.EntityID, p *component.Position, v *component.Velocity) {
		p.X += v.DX * sec
		p.Y += v.DY * sec
	})
}
