package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/maxviazov/pokedex-service/internal/repository"
	"github.com/maxviazov/pokedex-service/internal/repository/paginate"
)

// q is implemented by both *sql.DB and *sql.Tx.
type q interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type (
	txKey       struct{}
	readOnlyKey struct{}
)

func withTx(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

func txFrom(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(*sql.Tx)
	return tx, ok && tx != nil
}

func getQ(ctx context.Context, db *sql.DB) q {
	if tx, ok := txFrom(ctx); ok {
		return tx
	}
	return db
}

// TxManager runs repository work in database/sql transactions and is the paginate.Executor of
// the SQLite repositories. A SQLite transaction reads from a single snapshot of the database,
// so a read-only transaction at the default isolation already gives what WithinSnapshot promises.
type TxManager struct{ db *sql.DB }

var snapshotOptions = &sql.TxOptions{ReadOnly: true}

func NewTxManager(db *sql.DB) *TxManager { return &TxManager{db: db} }

func (m *TxManager) WithinTx(ctx context.Context, fn repository.TxFunc) error {
	return mapError(m.run(ctx, nil, fn))
}

func (m *TxManager) WithinSnapshot(ctx context.Context, fn repository.TxFunc) error {
	return mapError(m.run(ctx, snapshotOptions, fn))
}

// Snapshot implements paginate.Executor. Errors of fn come back unmapped.
func (m *TxManager) Snapshot(ctx context.Context, fn func(ctx context.Context, conn paginate.Conn) error) error {
	return m.run(ctx, snapshotOptions, func(ctx context.Context) error {
		return fn(ctx, sqlConn{q: getQ(ctx, m.db)})
	})
}

func (m *TxManager) run(ctx context.Context, opts *sql.TxOptions, fn repository.TxFunc) error {
	if err := ensureDB(m.db); err != nil {
		return err
	}
	readOnly := opts != nil && opts.ReadOnly
	if _, ok := txFrom(ctx); ok {
		// snapshots only join snapshots, same rule as the postgres manager
		if readOnly && ctx.Value(readOnlyKey{}) == nil {
			return repository.ErrNotSnapshot
		}
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	ctx = withTx(ctx, tx)
	if readOnly {
		ctx = context.WithValue(ctx, readOnlyKey{}, true)
	}
	if err := fn(ctx); err != nil {
		return err
	}
	return tx.Commit()
}

// sqlConn adapts database/sql to paginate.Conn.
type sqlConn struct{ q q }

func (c sqlConn) Query(ctx context.Context, query string, args ...any) (paginate.Rows, error) {
	rows, err := c.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return sqlRows{rows}, nil
}

func (c sqlConn) QueryRow(ctx context.Context, query string, args ...any) paginate.Row {
	return c.q.QueryRowContext(ctx, query, args...)
}

type sqlRows struct{ *sql.Rows }

func (r sqlRows) Close() { _ = r.Rows.Close() }

var (
	_ repository.TxManager = (*TxManager)(nil)
	_ paginate.Executor    = (*TxManager)(nil)
)

func ensureDB(db *sql.DB) error {
	if db == nil {
		return errors.New("sqlite db is nil")
	}
	return nil
}
