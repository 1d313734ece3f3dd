package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxviazov/pokedex-service/internal/repository"
	"github.com/maxviazov/pokedex-service/internal/repository/paginate"
)

// q is a minimal query executor implemented by both pgxpool.Pool and pgx.Tx.
type q interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type (
	txKey       struct{}
	readOnlyKey struct{}
)

func withTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

func txFrom(ctx context.Context) (pgx.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(pgx.Tx)
	return tx, ok && tx != nil
}

func getQ(ctx context.Context, pool *pgxpool.Pool) q {
	if tx, ok := txFrom(ctx); ok {
		return tx
	}
	return pool
}

var snapshotOptions = pgx.TxOptions{
	IsoLevel:   pgx.RepeatableRead,
	AccessMode: pgx.ReadOnly,
}

// TxManager runs repository work in pgx transactions. It also serves as the paginate.Executor
// of the Postgres repositories.
type TxManager struct{ pool *pgxpool.Pool }

func NewTxManager(pool *pgxpool.Pool) *TxManager { return &TxManager{pool: pool} }

func (m *TxManager) WithinTx(ctx context.Context, fn repository.TxFunc) error {
	return repository.MapPgError(m.run(ctx, pgx.TxOptions{}, fn))
}

func (m *TxManager) WithinSnapshot(ctx context.Context, fn repository.TxFunc) error {
	return repository.MapPgError(m.run(ctx, snapshotOptions, fn))
}

// Snapshot implements paginate.Executor. Errors of fn come back unmapped.
func (m *TxManager) Snapshot(ctx context.Context, fn func(ctx context.Context, conn paginate.Conn) error) error {
	return m.run(ctx, snapshotOptions, func(ctx context.Context) error {
		return fn(ctx, pgxConn{q: getQ(ctx, m.pool)})
	})
}

func (m *TxManager) run(ctx context.Context, opts pgx.TxOptions, fn repository.TxFunc) error {
	if err := ensurePool(m.pool); err != nil {
		return err
	}
	readOnly := opts.AccessMode == pgx.ReadOnly
	if _, ok := txFrom(ctx); ok {
		// an outer read-write tx does not give the statements of fn one snapshot
		if readOnly && ctx.Value(readOnlyKey{}) == nil {
			return repository.ErrNotSnapshot
		}
		return fn(ctx)
	}

	tx, err := m.pool.BeginTx(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		// no-op after a successful commit
		_ = tx.Rollback(context.Background())
	}()

	ctx = withTx(ctx, tx)
	if readOnly {
		ctx = context.WithValue(ctx, readOnlyKey{}, true)
	}
	if err := fn(ctx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// pgxConn narrows q to paginate.Conn.
type pgxConn struct{ q q }

func (c pgxConn) Query(ctx context.Context, sql string, args ...any) (paginate.Rows, error) {
	rows, err := c.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (c pgxConn) QueryRow(ctx context.Context, sql string, args ...any) paginate.Row {
	return c.q.QueryRow(ctx, sql, args...)
}

var (
	_ repository.TxManager = (*TxManager)(nil)
	_ paginate.Executor    = (*TxManager)(nil)
)

// helper to assert we didn't accidentally nil the pool
func ensurePool(pool *pgxpool.Pool) error {
	if pool == nil {
		return errors.New("pgx pool is nil")
	}
	return nil
}
