package sqlite

import (
	"database/sql"
	"errors"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/maxviazov/pokedex-service/internal/repository"
)

// mapError translates SQLite result codes to domain errors, mirroring repository.MapPgError.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	var sqErr *sqlite.Error
	if errors.As(err, &sqErr) {
		switch sqErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return repository.ErrAlreadyExists
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return repository.ErrConflict
		case sqlite3.SQLITE_CONSTRAINT_CHECK, sqlite3.SQLITE_CONSTRAINT_NOTNULL:
			return repository.ErrConstraint
		}
		// SQLite has no dedicated code for a missing table, only the generic SQLITE_ERROR.
		if sqErr.Code()&0xff == sqlite3.SQLITE_ERROR && strings.Contains(sqErr.Error(), "no such table") {
			return repository.ErrNotMigrated
		}
	}
	return err
}
