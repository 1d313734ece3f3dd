// Package testutil provides shared helpers for tests that need a real database.
package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/rs/zerolog"

	"github.com/maxviazov/pokedex-service/internal/config"
	"github.com/maxviazov/pokedex-service/internal/migrate"
	"github.com/maxviazov/pokedex-service/internal/repository/sqlite"
)

// NewSQLite returns a migrated private in-memory database closed at test end.
func NewSQLite(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()
	log := zerolog.Nop()

	db, err := sqlite.Open(ctx, ":memory:", log)
	if err != nil {
		t.Fatalf("testutil.NewSQLite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	m, err := migrate.New(db, config.DriverSQLite, log)
	if err != nil {
		t.Fatalf("testutil.NewSQLite: %v", err)
	}
	if err := m.Up(ctx); err != nil {
		t.Fatalf("testutil.NewSQLite: migrate: %v", err)
	}
	return db
}
