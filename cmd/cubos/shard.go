package main

import (
	"context"
	"fmt"
	"time"

	"github.com/cubos/engine/internal/component"
	"github.com/cubos/engine/internal/config"
	"github.com/cubos/engine/internal/core/ecs"
	"github.com/cubos/engine/internal/core/event"
	coresys "github.com/cubos/engine/internal/core/system"
	"github.com/cubos/engine/internal/data"
	"github.com/cubos/engine/internal/system"
	"go.uber.org/zap"
)

// shard is one independent world with its own bus and system runner. The
// world is only touched under guarded, so the monitor can read it while the
// shard goroutine ticks.
type shard struct {
	name    string
	guarded *ecs.Guarded
	runner  *coresys.Runner
	stats   *system.StatsSystem
	cleanup *system.CleanupSystem
	log     *zap.Logger
}

type shardStatus struct {
	ticks    uint64
	entities int
	moving   int
}

func newShard(cfg *config.Config, index int, reg *ecs.Registry, scene *data.Scene, log *zap.Logger) (*shard, error) {
	name := fmt.Sprintf("%s-%d", cfg.World.Name, index)
	slog := log.With(zap.String("shard", name))
	bus := event.NewBus()
	w := ecs.NewWorld(ecs.Options{
		Name:            name,
		Registry:        reg,
		InitialEntities: cfg.World.InitialEntities,
		Logger:          slog,
		Observer:        event.NewWorldObserver(bus, name),
	})

	if scene != nil {
		ids, err := system.SpawnScene(w, scene)
		if err != nil {
			return nil, err
		}
		slog.Debug("scene spawned", zap.String("scene", scene.Name), zap.Int("entities", len(ids)))
	}

	s := &shard{
		name:    name,
		guarded: ecs.NewGuarded(w),
		runner:  coresys.NewRunner(),
		stats:   system.NewStatsSystem(w, bus, cfg.Simulation.StatsEvery, slog),
		cleanup: system.NewCleanupSystem(w, slog),
		log:     slog,
	}
	s.runner.Register(
		system.NewEventDispatchSystem(bus),
		system.NewMovementSystem(w),
		system.NewLifetimeSystem(w),
		s.stats,
		s.cleanup,
	)
	return s, nil
}

// run ticks the shard every tick until ctx is done or, when ticks > 0, the
// budget is spent. A panicking system stops the shard with an error.
func (s *shard) run(ctx context.Context, tick time.Duration, ticks int) error {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := s.guarded.Update(func(*ecs.World) error { return s.tick(tick) }); err != nil {
				return err
			}
			if ticks > 0 && s.runner.Ticks() >= uint64(ticks) {
				s.log.Debug("tick budget spent", zap.Int("ticks", ticks))
				return nil
			}
		}
	}
}

func (s *shard) tick(dt time.Duration) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: tick %d: %v", s.name, s.runner.Ticks()+1, r)
		}
	}()
	s.runner.Tick(dt)
	return nil
}

func (s *shard) status() shardStatus {
	var st shardStatus
	s.guarded.Read(func(w *ecs.World) {
		st.ticks = s.runner.Ticks()
		st.entities = w.Len()
		st.moving = ecs.Query2[component.Position, component.Velocity](w).Count()
	})
	return st
}

func (s *shard) summary() {
	st := s.status()
	s.log.Info("shard finished",
		zap.Uint64("ticks", st.ticks),
		zap.Int("entities", st.entities),
		zap.Int("moving", st.moving),
		zap.Int("destroyed", s.cleanup.Destroyed()))
}

// monitor logs every shard's status until ctx is done.
func monitor(ctx context.Context, shards []*shard, every time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, s := range shards {
				st := s.status()
				log.Info("shard status",
					zap.String("shard", s.name),
					zap.Uint64("ticks", st.ticks),
					zap.Int("entities", st.entities),
					zap.Int("moving", st.moving))
			}
		}
	}
}
