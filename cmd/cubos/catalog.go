package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/cubos/engine/internal/core/ecs"
	"github.com/cubos/engine/internal/data"
	"github.com/cubos/engine/internal/persist"
	"go.uber.org/zap"
)

// catalogStore loads and saves a world's component catalog. Load returns nil
// when nothing was saved yet.
type catalogStore interface {
	Load(ctx context.Context, world string) (*data.Catalog, error)
	Save(ctx context.Context, c *data.Catalog) error
}

type fileCatalog struct {
	path string
}

func (f fileCatalog) Load(_ context.Context, world string) (*data.Catalog, error) {
	if f.path == "" {
		return nil, nil
	}
	c, err := data.LoadCatalog(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if c.World != "" && c.World != world {
		return nil, fmt.Errorf("%s holds the catalog of world %q, not %q", f.path, c.World, world)
	}
	return c, nil
}

func (f fileCatalog) Save(_ context.Context, c *data.Catalog) error {
	if f.path == "" {
		return nil
	}
	return data.SaveCatalog(f.path, c)
}

type dbCatalog struct {
	repo *persist.CatalogRepo
}

func (d dbCatalog) Load(ctx context.Context, world string) (*data.Catalog, error) {
	row, err := d.repo.Load(ctx, world)
	if err != nil || row == nil {
		return nil, err
	}
	return &data.Catalog{World: row.World, Fingerprint: row.Fingerprint, Components: row.Names}, nil
}

func (d dbCatalog) Save(ctx context.Context, c *data.Catalog) error {
	return d.repo.Save(ctx, &persist.CatalogRow{World: c.World, Fingerprint: c.Fingerprint, Names: c.Components})
}

func fingerprint(reg *ecs.Registry) string {
	return fmt.Sprintf("%016x", reg.Fingerprint())
}

// restoreCatalog reserves the saved catalog in reg so types keep their ids.
func restoreCatalog(ctx context.Context, store catalogStore, world string, reg *ecs.Registry, log *zap.Logger) error {
	c, err := store.Load(ctx, world)
	if err != nil {
		return err
	}
	if c == nil {
		log.Info("no component catalog yet, ids follow registration order")
		return nil
	}
	if err := reg.Reserve(c.Components...); err != nil {
		return err
	}
	if got := fingerprint(reg); c.Fingerprint != "" && got != c.Fingerprint {
		log.Warn("catalog fingerprint mismatch", zap.String("saved", c.Fingerprint), zap.String("restored", got))
	}
	log.Info("component catalog restored", zap.Int("types", len(c.Components)))
	return nil
}

func saveCatalog(ctx context.Context, store catalogStore, world string, reg *ecs.Registry) error {
	return store.Save(ctx, &data.Catalog{
		World:       world,
		Fingerprint: fingerprint(reg),
		Components:  reg.Names(),
	})
}
