// Package migrate applies the embedded goose migrations for the configured database driver.
package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"

	"github.com/maxviazov/pokedex-service/internal/config"
	"github.com/maxviazov/pokedex-service/migrations"
)

// goose keeps its dialect, FS and logger in package globals
var mu sync.Mutex

type Migrator struct {
	db      *sql.DB
	dialect string
	dir     string
	log     zerolog.Logger
}

// New returns a Migrator for db, which must be opened with the driver named by driver.
func New(db *sql.DB, driver string, logger zerolog.Logger) (*Migrator, error) {
	m := &Migrator{
		db:  db,
		log: logger.With().Str("module", "migrate").Logger(),
	}
	switch driver {
	case config.DriverPostgres:
		m.dialect, m.dir = "postgres", "postgres"
	case config.DriverSQLite:
		m.dialect, m.dir = "sqlite3", "sqlite"
	default:
		return nil, fmt.Errorf("migrate: unsupported driver %q", driver)
	}
	return m, nil
}

func (m *Migrator) Up(ctx context.Context) error {
	return m.with(func() error { return goose.UpContext(ctx, m.db, m.dir) })
}

// Down rolls back the most recent migration.
func (m *Migrator) Down(ctx context.Context) error {
	return m.with(func() error { return goose.DownContext(ctx, m.db, m.dir) })
}

// Status logs the applied state of every migration.
func (m *Migrator) Status(ctx context.Context) error {
	return m.with(func() error { return goose.StatusContext(ctx, m.db, m.dir) })
}

func (m *Migrator) with(fn func() error) error {
	mu.Lock()
	defer mu.Unlock()

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(gooseLogger{log: m.log})
	if err := goose.SetDialect(m.dialect); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if err := fn(); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// gooseLogger routes goose output through zerolog.
type gooseLogger struct{ log zerolog.Logger }

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.log.Info().Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Fatal().Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l gooseLogger) Print(v ...interface{})   { l.log.Info().Msg(strings.TrimSpace(fmt.Sprint(v...))) }
func (l gooseLogger) Println(v ...interface{}) { l.log.Info().Msg(strings.TrimSpace(fmt.Sprintln(v...))) }
func (l gooseLogger) Fatal(v ...interface{})   { l.log.Fatal().Msg(strings.TrimSpace(fmt.Sprint(v...))) }
