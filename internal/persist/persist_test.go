package persist

import (
	"context"
	"io/fs"
	"os"
	"testing"
	"time"

	"github.com/cubos/engine/internal/config"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestEmbeddedMigrations(t *testing.T) {
	names, err := fs.Glob(migrations, "migrations/*.sql")
	require.NoError(t, err)
	require.Contains(t, names, "migrations/00001_component_catalog.sql")

	raw, err := fs.ReadFile(migrations, "migrations/00001_component_catalog.sql")
	require.NoError(t, err)
	require.Contains(t, string(raw), "-- +goose Up")
	require.Contains(t, string(raw), "-- +goose Down")
}

func TestPoolConfig(t *testing.T) {
	pc, err := poolConfig(config.DatabaseConfig{
		DSN:             "postgres://u:p@db.local:5432/cubos?sslmode=disable",
		MaxOpenConns:    6,
		MaxIdleConns:    10,
		ConnMaxLifetime: time.Minute,
	})
	require.NoError(t, err)
	require.Equal(t, int32(6), pc.MaxConns)
	require.Equal(t, int32(6), pc.MinConns, "idle connections never exceed the pool size")
	require.Equal(t, time.Minute, pc.MaxConnLifetime)
	require.Equal(t, "db.local", pc.ConnConfig.Host)
	require.Equal(t, "cubos", pc.ConnConfig.Database)

	def, err := poolConfig(config.DatabaseConfig{DSN: "postgres://u@localhost/cubos"})
	require.NoError(t, err)
	require.Positive(t, def.MaxConns, "zero sizes keep pgxpool defaults")
	require.Zero(t, def.MinConns)

	_, err = poolConfig(config.DatabaseConfig{DSN: "postgres://u@localhost:notaport/x"})
	require.ErrorContains(t, err, "parse dsn")
}

// TestCatalogRepo runs against a live database named by CUBOS_TEST_DSN.
func TestCatalogRepo(t *testing.T) {
	dsn := os.Getenv("CUBOS_TEST_DSN")
	if dsn == "" {
		t.Skip("CUBOS_TEST_DSN not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := NewDB(ctx, config.DatabaseConfig{DSN: dsn, MaxOpenConns: 2}, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer db.Close()

	version, err := RunMigrations(ctx, db.Pool)
	require.NoError(t, err)
	require.GreaterOrEqual(t, version, int64(1))

	repo := NewCatalogRepo(db)
	world := "test-" + t.Name()

	got, err := repo.Load(ctx, world)
	require.NoError(t, err)
	require.Nil(t, got)

	want := &CatalogRow{World: world, Fingerprint: "abc", Names: []string{"x.A", "x.B"}}
	require.NoError(t, repo.Save(ctx, want))
	got, err = repo.Load(ctx, world)
	require.NoError(t, err)
	require.Equal(t, want, got)

	want.Names = []string{"x.B"}
	want.Fingerprint = "def"
	require.NoError(t, repo.Save(ctx, want))
	got, err = repo.Load(ctx, world)
	require.NoError(t, err)
	require.Equal(t, want, got)

	require.NoError(t, repo.Save(ctx, &CatalogRow{World: world}))
	got, err = repo.Load(ctx, world)
	require.NoError(t, err)
	require.Nil(t, got)
}
