package persist

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// CatalogRow is the stored component catalog of one world.
type CatalogRow struct {
	World       string
	Fingerprint string
	Names       []string // index is the component type id
}

// CatalogRepo stores component catalogs so type ids survive restarts.
type CatalogRepo struct {
	db *DB
}

func NewCatalogRepo(db *DB) *CatalogRepo {
	return &CatalogRepo{db: db}
}

// Load returns the catalog of world, or nil if none was saved.
func (r *CatalogRepo) Load(ctx context.Context, world string) (*CatalogRow, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT position, type_name, fingerprint
		 FROM component_catalog WHERE world = $1 ORDER BY position`, world,
	)
	if err != nil {
		return nil, fmt.Errorf("catalog query: %w", err)
	}
	defer rows.Close()

	row := &CatalogRow{World: world}
	for rows.Next() {
		var (
			pos  int32
			name string
		)
		if err := rows.Scan(&pos, &name, &row.Fingerprint); err != nil {
			return nil, fmt.Errorf("catalog scan: %w", err)
		}
		if int(pos) != len(row.Names) {
			return nil, fmt.Errorf("catalog %s: gap before position %d", world, pos)
		}
		row.Names = append(row.Names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog rows: %w", err)
	}
	if len(row.Names) == 0 {
		return nil, nil
	}
	return row, nil
}

// Save replaces the catalog of c.World in a single transaction.
func (r *CatalogRepo) Save(ctx context.Context, c *CatalogRow) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("catalog begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM component_catalog WHERE world = $1`, c.World); err != nil {
		return fmt.Errorf("catalog delete: %w", err)
	}

	batch := &pgx.Batch{}
	for i, name := range c.Names {
		batch.Queue(
			`INSERT INTO component_catalog (world, position, type_name, fingerprint)
			 VALUES ($1, $2, $3, $4)`,
			c.World, int32(i), name, c.Fingerprint,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("catalog insert: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("catalog commit: %w", err)
	}
	r.db.log.Debug("component catalog saved",
		zap.String("world", c.World), zap.Int("types", len(c.Names)))
	return nil
}
