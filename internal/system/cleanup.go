package system

import (
	"time"

	"github.com/cubos/engine/internal/core/ecs"
	coresys "github.com/cubos/engine/internal/core/system"
	"go.uber.org/zap"
)

// CleanupSystem flushes the deferred entity destruction queue at tick end.
// Phase Cleanup.
type CleanupSystem struct {
	world     *ecs.World
	log       *zap.Logger
	destroyed int
}

func NewCleanupSystem(world *ecs.World, log *zap.Logger) *CleanupSystem {
	return &CleanupSystem{world: world, log: log}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	if n := s.world.FlushDestroyQueue(); n > 0 {
		s.destroyed += n
		s.log.Debug("destroyed queued entities", zap.Int("count", n))
	}
}

// Destroyed returns the total number of entities flushed so far.
func (s *CleanupSystem) Destroyed() int { return s.destroyed }
