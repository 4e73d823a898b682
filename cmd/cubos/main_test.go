package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/cubos/engine/internal/component"
	"github.com/cubos/engine/internal/config"
	"github.com/cubos/engine/internal/core/ecs"
	coresys "github.com/cubos/engine/internal/core/system"
	"github.com/cubos/engine/internal/data"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func TestCatalogKeepsIDsAcrossRuns(t *testing.T) {
	ctx := context.Background()
	log := zaptest.NewLogger(t)
	store := fileCatalog{path: filepath.Join(t.TempDir(), "catalog.yaml")}

	first := ecs.NewRegistry(0)
	require.NoError(t, restoreCatalog(ctx, store, "arena", first, log))
	ecs.MustTypeOf[component.Label](first)
	require.NoError(t, component.Register(first))
	require.NoError(t, saveCatalog(ctx, store, "arena", first))

	second := ecs.NewRegistry(0)
	require.NoError(t, restoreCatalog(ctx, store, "arena", second, log))
	require.NoError(t, component.Register(second))
	require.Equal(t, first.Names(), second.Names())
	require.Equal(t, ecs.ComponentTypeID(0), ecs.MustTypeOf[component.Label](second))
	require.Equal(t, first.Fingerprint(), second.Fingerprint())

	err := restoreCatalog(ctx, store, "other", ecs.NewRegistry(0), log)
	require.ErrorContains(t, err, `not "other"`)

	require.NoError(t, fileCatalog{}.Save(ctx, &data.Catalog{}))
	c, err := fileCatalog{}.Load(ctx, "arena")
	require.NoError(t, err)
	require.Nil(t, c)
}

const shardScene = `
name: shard-test
groups:
  - name: movers
    count: 4
    position: {x: 0, y: 0}
    velocity: {dx: 1, dy: 0}
  - name: sparks
    count: 2
    lifetime: 1ms
`

func newTestShard(t *testing.T) *shard {
	t.Helper()
	cfg := config.Default()
	cfg.Simulation.StatsEvery = 0
	scene, err := data.ParseScene([]byte(shardScene))
	require.NoError(t, err)
	reg := ecs.NewRegistry(0)
	require.NoError(t, component.Register(reg))
	s, err := newShard(cfg, 0, reg, scene, zaptest.NewLogger(t))
	require.NoError(t, err)
	return s
}

func TestShardRunsTickBudget(t *testing.T) {
	s := newTestShard(t)
	require.Equal(t, "cubos-0", s.name)
	require.Equal(t, 6, s.status().entities)

	require.NoError(t, s.run(context.Background(), time.Millisecond, 3))
	st := s.status()
	require.Equal(t, uint64(3), st.ticks)
	require.Equal(t, 4, st.entities, "sparks expire on the first tick")
	require.Equal(t, 4, st.moving)
	require.Equal(t, 2, s.cleanup.Destroyed())
	s.summary()
}

func TestShardStopsOnCancel(t *testing.T) {
	s := newTestShard(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, s.run(ctx, time.Hour, 0))
	require.Equal(t, uint64(0), s.status().ticks)
}

type panicSystem struct{}

func (panicSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (panicSystem) Update(time.Duration) { panic("boom") }

func TestShardPanicStopsShard(t *testing.T) {
	s := newTestShard(t)
	s.runner.Register(panicSystem{})
	err := s.run(context.Background(), time.Millisecond, 0)
	require.ErrorContains(t, err, "cubos-0: tick 1: boom")
}

func TestMonitorStops(t *testing.T) {
	s := newTestShard(t)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	monitor(ctx, []*shard{s}, time.Millisecond, zaptest.NewLogger(t))
	require.Error(t, ctx.Err())
}

type shardOnly struct{}

func TestShardWorldLogsCarryShard(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	cfg := config.Default()
	reg := ecs.NewRegistry(0)
	s, err := newShard(cfg, 1, reg, nil, zap.New(core))
	require.NoError(t, err)

	require.NoError(t, s.guarded.Update(func(w *ecs.World) error {
		_, err := ecs.ComponentTypeOf[shardOnly](w)
		return err
	}))

	entries := logs.FilterMessage("component type registered").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, "cubos-1", fields["shard"])
	require.Equal(t, "cubos-1", fields["world"])
}
