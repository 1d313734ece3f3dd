package repository

import (
	"context"

	"github.com/maxviazov/pokedex-service/internal/model"
	"github.com/maxviazov/pokedex-service/internal/repository/paginate"
)

// Pinger represents a minimal readiness probe capability.
// I use it to decouple health checks from storage implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TxFunc is the unit of work executed within a transaction boundary.
// I pass context through so nested calls can honor cancellations and deadlines.
type TxFunc func(ctx context.Context) error

// TxManager abstracts transactional execution for repositories that support it.
// Calls made with a context that already carries a transaction join it.
type TxManager interface {
	WithinTx(ctx context.Context, fn TxFunc) error
	// WithinSnapshot runs fn in a read-only transaction whose statements share one snapshot.
	// Inside a read-write transaction it fails with ErrNotSnapshot.
	WithinSnapshot(ctx context.Context, fn TxFunc) error
}

// PokemonRepository declares persistence operations for catalog entries.
// I return domain models and surface domain errors from errors.go rather than driver codes.
type PokemonRepository interface {
	Create(ctx context.Context, in model.CreatePokemon) (model.Pokemon, error)
	GetByID(ctx context.Context, id int64) (model.Pokemon, error)
	// List returns one page of entries matching f, ordered by number then id.
	List(ctx context.Context, f PokemonFilter, p PageRequest) (paginate.Page[model.Pokemon], error)
	Update(ctx context.Context, id int64, in model.UpdatePokemon) (model.Pokemon, error)
	// Patch applies only the present fields; an empty patch returns the current entry.
	Patch(ctx context.Context, id int64, in model.PatchPokemon) (model.Pokemon, error)
	Delete(ctx context.Context, id int64) error
	// DeleteAll empties the catalog and reports how many entries were removed.
	DeleteAll(ctx context.Context) (int64, error)
}
