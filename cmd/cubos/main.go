package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cubos/engine/internal/component"
	"github.com/cubos/engine/internal/config"
	"github.com/cubos/engine/internal/core/ecs"
	"github.com/cubos/engine/internal/data"
	"github.com/cubos/engine/internal/persist"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config
	cfgPath := "config/cubos.toml"
	if p := os.Getenv("CUBOS_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Optional database for the component catalog
	var catalogs catalogStore = fileCatalog{path: cfg.Simulation.CatalogPath}
	if cfg.Database.Enabled {
		dbCtx, dbCancel := context.WithTimeout(ctx, 30*time.Second)
		defer dbCancel()

		db, err := persist.NewDB(dbCtx, cfg.Database, log)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()

		version, err := persist.RunMigrations(dbCtx, db.Pool)
		if err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		log.Info("migrations applied", zap.Int64("version", version))
		catalogs = dbCatalog{repo: persist.NewCatalogRepo(db)}
	}

	// 4. Shared component registry, ids fixed by the saved catalog
	reg := ecs.NewRegistry(cfg.World.MaxComponentTypes)
	if err := restoreCatalog(ctx, catalogs, cfg.World.Name, reg, log); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	if err := component.Register(reg); err != nil {
		return err
	}

	// 5. Scene
	var scene *data.Scene
	if cfg.Simulation.ScenePath != "" {
		scene, err = data.LoadScene(cfg.Simulation.ScenePath)
		if err != nil {
			return fmt.Errorf("scene: %w", err)
		}
		log.Info("scene loaded",
			zap.String("scene", scene.Name),
			zap.Int("groups", len(scene.Groups)),
			zap.Int("entities", scene.Total()))
	}

	// 6. Build shards
	shards := make([]*shard, cfg.World.Shards)
	for i := range shards {
		s, err := newShard(cfg, i, reg, scene, log)
		if err != nil {
			return fmt.Errorf("shard %d: %w", i, err)
		}
		shards[i] = s
	}

	// 7. Run until the tick budget is spent or a signal arrives
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(shutdownCh)
	go func() {
		select {
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			cancel()
		case <-ctx.Done():
		}
	}()

	log.Info("simulation started",
		zap.String("world", cfg.World.Name),
		zap.Int("shards", len(shards)),
		zap.Duration("tick", cfg.Simulation.TickRate),
		zap.Int("ticks", cfg.Simulation.Ticks),
		zap.String("catalog_fingerprint", fingerprint(reg)))

	g, gctx := errgroup.WithContext(ctx)
	for _, s := range shards {
		g.Go(func() error {
			return s.run(gctx, cfg.Simulation.TickRate, cfg.Simulation.Ticks)
		})
	}
	monCtx, stopMonitor := context.WithCancel(gctx)
	monDone := make(chan struct{})
	go func() {
		defer close(monDone)
		monitor(monCtx, shards, 5*time.Second, log)
	}()
	runErr := g.Wait()
	stopMonitor()
	<-monDone
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return fmt.Errorf("simulation: %w", runErr)
	}

	for _, s := range shards {
		s.summary()
	}

	// 8. Persist the catalog so the next run assigns the same ids
	saveCtx, saveCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer saveCancel()
	if err := saveCatalog(saveCtx, catalogs, cfg.World.Name, reg); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	log.Info("simulation stopped")
	return nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
