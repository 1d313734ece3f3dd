package sqlite

import (
	"context"
	"database/sql"

	"github.com/maxviazov/pokedex-service/internal/model"
	"github.com/maxviazov/pokedex-service/internal/repository"
	"github.com/maxviazov/pokedex-service/internal/repository/paginate"
)

type pokemonRepository struct {
	db    *sql.DB
	tx    *TxManager
	pager *paginate.Paginator
}

// NewPokemonRepository returns the SQLite catalog repository. Listings go through pager.
func NewPokemonRepository(db *sql.DB, pager *paginate.Paginator) repository.PokemonRepository {
	return &pokemonRepository{db: db, tx: NewTxManager(db), pager: pager}
}

func (r *pokemonRepository) Create(ctx context.Context, in model.CreatePokemon) (model.Pokemon, error) {
	if err := ensureDB(r.db); err != nil {
		return model.Pokemon{}, err
	}
	row := getQ(ctx, r.db).QueryRowContext(ctx,
		repository.PokemonInsertSQL(paginate.Question),
		repository.PokemonValues(in)...,
	)
	return scanOne(row)
}

func (r *pokemonRepository) GetByID(ctx context.Context, id int64) (model.Pokemon, error) {
	if err := ensureDB(r.db); err != nil {
		return model.Pokemon{}, err
	}
	row := getQ(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+repository.PokemonColumns+` FROM pokemons WHERE id = ?`, id,
	)
	return scanOne(row)
}

func (r *pokemonRepository) List(ctx context.Context, f repository.PokemonFilter, p repository.PageRequest) (paginate.Page[model.Pokemon], error) {
	if err := ensureDB(r.db); err != nil {
		return paginate.Page[model.Pokemon]{}, err
	}
	q := paginate.Paginate(repository.PokemonBaseQuery(f, paginate.Question), p.Page, p.PageSize)
	page, err := paginate.LoadPage(ctx, r.pager, q, r.tx, repository.ScanPokemon)
	if err != nil {
		return paginate.Page[model.Pokemon]{}, mapError(err)
	}
	return page, nil
}

func (r *pokemonRepository) Update(ctx context.Context, id int64, in model.UpdatePokemon) (model.Pokemon, error) {
	if err := ensureDB(r.db); err != nil {
		return model.Pokemon{}, err
	}
	args := append(repository.PokemonValues(in), id)
	row := getQ(ctx, r.db).QueryRowContext(ctx, repository.PokemonReplaceSQL(paginate.Question), args...)
	return scanOne(row)
}

func (r *pokemonRepository) Patch(ctx context.Context, id int64, in model.PatchPokemon) (model.Pokemon, error) {
	query, args, ok := repository.PokemonPatchSQL(in, id, paginate.Question)
	if !ok {
		return r.GetByID(ctx, id)
	}
	if err := ensureDB(r.db); err != nil {
		return model.Pokemon{}, err
	}
	return scanOne(getQ(ctx, r.db).QueryRowContext(ctx, query, args...))
}

func (r *pokemonRepository) Delete(ctx context.Context, id int64) error {
	if err := ensureDB(r.db); err != nil {
		return err
	}
	res, err := getQ(ctx, r.db).ExecContext(ctx, `DELETE FROM pokemons WHERE id = ?`, id)
	if err != nil {
		return mapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return mapError(err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *pokemonRepository) DeleteAll(ctx context.Context) (int64, error) {
	if err := ensureDB(r.db); err != nil {
		return 0, err
	}
	res, err := getQ(ctx, r.db).ExecContext(ctx, `DELETE FROM pokemons`)
	if err != nil {
		return 0, mapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, mapError(err)
	}
	return n, nil
}

func scanOne(row *sql.Row) (model.Pokemon, error) {
	var out model.Pokemon
	if err := row.Scan(repository.ScanPokemon(&out)...); err != nil {
		return model.Pokemon{}, mapError(err)
	}
	return out, nil
}

var _ repository.PokemonRepository = (*pokemonRepository)(nil)
