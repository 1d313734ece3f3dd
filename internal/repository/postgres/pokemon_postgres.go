package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxviazov/pokedex-service/internal/model"
	"github.com/maxviazov/pokedex-service/internal/repository"
	"github.com/maxviazov/pokedex-service/internal/repository/paginate"
)

type pokemonRepository struct {
	pool  *pgxpool.Pool
	tx    *TxManager
	pager *paginate.Paginator
}

// NewPokemonRepository returns the Postgres catalog repository. Listings go through pager.
func NewPokemonRepository(pool *pgxpool.Pool, pager *paginate.Paginator) repository.PokemonRepository {
	return &pokemonRepository{pool: pool, tx: NewTxManager(pool), pager: pager}
}

func (r *pokemonRepository) Create(ctx context.Context, in model.CreatePokemon) (model.Pokemon, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Pokemon{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		repository.PokemonInsertSQL(paginate.Dollar),
		repository.PokemonValues(in)...,
	)
	return scanOne(row)
}

func (r *pokemonRepository) GetByID(ctx context.Context, id int64) (model.Pokemon, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Pokemon{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`SELECT `+repository.PokemonColumns+` FROM pokemons WHERE id = $1`, id,
	)
	return scanOne(row)
}

func (r *pokemonRepository) List(ctx context.Context, f repository.PokemonFilter, p repository.PageRequest) (paginate.Page[model.Pokemon], error) {
	if err := ensurePool(r.pool); err != nil {
		return paginate.Page[model.Pokemon]{}, err
	}
	q := paginate.Paginate(repository.PokemonBaseQuery(f, paginate.Dollar), p.Page, p.PageSize)
	page, err := paginate.LoadPage(ctx, r.pager, q, r.tx, repository.ScanPokemon)
	if err != nil {
		return paginate.Page[model.Pokemon]{}, repository.MapPgError(err)
	}
	return page, nil
}

func (r *pokemonRepository) Update(ctx context.Context, id int64, in model.UpdatePokemon) (model.Pokemon, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Pokemon{}, err
	}
	args := append(repository.PokemonValues(in), id)
	row := getQ(ctx, r.pool).QueryRow(ctx, repository.PokemonReplaceSQL(paginate.Dollar), args...)
	return scanOne(row)
}

func (r *pokemonRepository) Patch(ctx context.Context, id int64, in model.PatchPokemon) (model.Pokemon, error) {
	sql, args, ok := repository.PokemonPatchSQL(in, id, paginate.Dollar)
	if !ok {
		return r.GetByID(ctx, id)
	}
	if err := ensurePool(r.pool); err != nil {
		return model.Pokemon{}, err
	}
	return scanOne(getQ(ctx, r.pool).QueryRow(ctx, sql, args...))
}

func (r *pokemonRepository) Delete(ctx context.Context, id int64) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	tag, err := getQ(ctx, r.pool).Exec(ctx, `DELETE FROM pokemons WHERE id = $1`, id)
	if err != nil {
		return repository.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *pokemonRepository) DeleteAll(ctx context.Context) (int64, error) {
	if err := ensurePool(r.pool); err != nil {
		return 0, err
	}
	tag, err := getQ(ctx, r.pool).Exec(ctx, `DELETE FROM pokemons`)
	if err != nil {
		return 0, repository.MapPgError(err)
	}
	return tag.RowsAffected(), nil
}

func scanOne(row pgx.Row) (model.Pokemon, error) {
	var out model.Pokemon
	if err := row.Scan(repository.ScanPokemon(&out)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Pokemon{}, repository.ErrNotFound
		}
		return model.Pokemon{}, repository.MapPgError(err)
	}
	return out, nil
}

var _ repository.PokemonRepository = (*pokemonRepository)(nil)
