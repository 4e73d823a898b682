package system

import (
	"time"

	"github.com/cubos/engine/internal/component"
	"github.com/cubos/engine/internal/core/ecs"
	"github.com/cubos/engine/internal/core/event"
	coresys "github.com/cubos/engine/internal/core/system"
	"go.uber.org/zap"
)

// StatsSystem counts structural events from the bus and logs a world summary
// every N ticks. Phase PostUpdate.
type StatsSystem struct {
	world *ecs.World
	log   *zap.Logger
	every int
	ticks int

	created   int
	destroyed int
}

// NewStatsSystem subscribes to bus. every <= 0 disables the periodic log line.
func NewStatsSystem(world *ecs.World, bus *event.Bus, every int, log *zap.Logger) *StatsSystem {
	s := &StatsSystem{world: world, log: log, every: every}
	event.Subscribe(bus, func(event.EntityCreated) { s.created++ })
	event.Subscribe(bus, func(event.EntityDestroyed) { s.destroyed++ })
	return s
}

func (s *StatsSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *StatsSystem) Update(_ time.Duration) {
	s.ticks++
	if s.every <= 0 || s.ticks%s.every != 0 {
		return
	}
	st := s.world.Stats()
	s.log.Info("world stats",
		zap.Int("tick", s.ticks),
		zap.Int("entities", st.Entities),
		zap.Uint32("rows", st.Rows),
		zap.Int("free_rows", st.FreeRows),
		zap.Int("component_types", st.ComponentTypes),
		zap.Int("moving", ecs.Query2[component.Position, component.Velocity](s.world).Count()),
		zap.Int("created", s.created),
		zap.Int("destroyed", s.destroyed),
	)
}

// Created and Destroyed return event totals seen so far. Events lag one tick.
func (s *StatsSystem) Created() int   { return s.created }
func (s *StatsSystem) Destroyed() int { return s.destroyed }
