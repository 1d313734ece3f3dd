package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxviazov/pokedex-service/internal/repository"
)

type pinger struct{ pool *pgxpool.Pool }

// NewPinger reports ready once the server answers and the pokemons table exists.
func NewPinger(pool *pgxpool.Pool) repository.Pinger { return &pinger{pool: pool} }

func (p *pinger) Ping(ctx context.Context) error {
	if err := ensurePool(p.pool); err != nil {
		return err
	}
	var migrated bool
	if err := p.pool.QueryRow(ctx, `SELECT to_regclass('pokemons') IS NOT NULL`).Scan(&migrated); err != nil {
		return err
	}
	if !migrated {
		return repository.ErrNotMigrated
	}
	return nil
}
