// Package databasetest starts a disposable migrated Postgres for
// integration tests.
package databasetest

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	schema "github.com/JaimeStill/portfolio-api/internal/database"
)

const image = "postgres:17-alpine"

// Open runs a Postgres container, applies every migration and returns a
// connection pool. The test is skipped under -short or without Docker.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()

	ctr, err := postgres.Run(ctx, image,
		postgres.WithDatabase("portfolio"),
		postgres.WithUsername("portfolio"),
		postgres.WithPassword("portfolio"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := schema.Migrate(db, logger); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return db
}
