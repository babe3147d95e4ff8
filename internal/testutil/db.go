package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/udisondev/turnbattle/internal/db/migrations"
)

const (
	testDBImage    = "postgres:16-alpine"
	testDBName     = "turnbattle_test"
	testDBUser     = "turnbattle"
	testDBPassword = "turnbattle"
)

// SetupTestDB starts a throwaway PostgreSQL container, applies the battle
// schema and returns a pool onto it. Container and pool are released by
// t.Cleanup.
func SetupTestDB(tb testing.TB) *pgxpool.Pool {
	tb.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx, testDBImage,
		postgres.WithDatabase(testDBName),
		postgres.WithUsername(testDBUser),
		postgres.WithPassword(testDBPassword),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		tb.Fatalf("starting battle db container: %v", err)
	}
	tb.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			tb.Logf("terminating battle db container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		tb.Fatalf("battle db dsn: %v", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		tb.Fatalf("connecting to battle db: %v", err)
	}
	tb.Cleanup(pool.Close)

	applied, err := migrateBattles(ctx, pool)
	if err != nil {
		tb.Fatalf("migrating battle db: %v", err)
	}
	tb.Logf("battle db ready, %d migrations applied", applied)

	return pool
}

// migrateBattles applies the embedded battle schema through a goose
// provider bound to the pool and reports how many migrations ran.
func migrateBattles(ctx context.Context, pool *pgxpool.Pool) (int, error) {
	sqlDB := stdlib.OpenDBFromPool(pool)
	defer sqlDB.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, sqlDB, migrations.FS)
	if err != nil {
		return 0, fmt.Errorf("creating goose provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("applying battle migrations: %w", err)
	}
	return len(results), nil
}
