// Package sqlite implements the repositories on SQLite through the pure-Go modernc.org/sqlite driver.
// It backs local development and the test suites that need real SQL without a server.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

var pragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA busy_timeout=5000",
	"PRAGMA synchronous=NORMAL",
	"PRAGMA foreign_keys=ON",
}

// Open opens the database at path (":memory:" for a private in-memory database).
// The pool is limited to one connection: SQLite serialises writers anyway and an in-memory
// database exists only on the connection that created it.
func Open(ctx context.Context, path string, logger zerolog.Logger) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", p, err)
		}
	}

	logger.Info().Str("path", path).Msg("opened SQLite database")
	return db, nil
}
