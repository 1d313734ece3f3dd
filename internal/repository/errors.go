package repository

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Domain-level errors repository implementations surface instead of driver codes.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrConflict      = errors.New("conflict")
	// ErrConstraint is a row rejected by a CHECK or NOT NULL constraint.
	ErrConstraint = errors.New("constraint violation")
	// ErrNotMigrated means the schema is missing; run the migrations first.
	ErrNotMigrated = errors.New("database schema is not migrated")
	// ErrNotSnapshot is returned when a snapshot is requested inside a read-write transaction.
	ErrNotSnapshot = errors.New("snapshot requested inside a read-write transaction")
)

var pgCodes = map[string]error{
	pgerrcode.UniqueViolation:     ErrAlreadyExists,
	pgerrcode.ForeignKeyViolation: ErrConflict,
	pgerrcode.CheckViolation:      ErrConstraint,
	pgerrcode.NotNullViolation:    ErrConstraint,
	pgerrcode.UndefinedTable:      ErrNotMigrated,
}

// MapPgError translates the Postgres errors higher layers handle explicitly.
// Everything else passes through unchanged.
func MapPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if mapped, ok := pgCodes[pgErr.Code]; ok {
			return mapped
		}
	}
	return err
}
