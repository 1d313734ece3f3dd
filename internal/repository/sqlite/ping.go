package sqlite

import (
	"context"
	"database/sql"

	"github.com/maxviazov/pokedex-service/internal/repository"
)

type pinger struct{ db *sql.DB }

// NewPinger reports ready once the database answers and the pokemons table exists.
func NewPinger(db *sql.DB) repository.Pinger { return &pinger{db: db} }

func (p *pinger) Ping(ctx context.Context) error {
	if err := ensureDB(p.db); err != nil {
		return err
	}
	var n int
	err := p.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'pokemons'`).Scan(&n)
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotMigrated
	}
	return nil
}
