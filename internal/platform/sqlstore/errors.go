package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/flashcards-api/internal/store"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// PostgreSQL error codes
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	notNullViolationCode    = "23502"
)

// violation classifies a constraint failure independently of the driver.
type violation int

const (
	noViolation violation = iota
	uniqueViolation
	foreignKeyViolation
	checkViolation
	notNullViolation
)

// classify inspects PostgreSQL and SQLite driver errors.
func classify(err error) (violation, string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return uniqueViolation, pgErr.ConstraintName
		case foreignKeyViolationCode:
			return foreignKeyViolation, pgErr.ConstraintName
		case checkViolationCode:
			return checkViolation, pgErr.ConstraintName
		case notNullViolationCode:
			return notNullViolation, pgErr.ColumnName
		}
		return noViolation, ""
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return uniqueViolation, ""
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return foreignKeyViolation, ""
		case sqlite3.SQLITE_CONSTRAINT_CHECK:
			return checkViolation, ""
		case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
			return notNullViolation, ""
		}
		// Extended codes are disabled on some connections.
		if strings.Contains(liteErr.Error(), "FOREIGN KEY constraint failed") {
			return foreignKeyViolation, ""
		}
	}

	return noViolation, ""
}

// MapError maps a database error to an appropriate store error.
// It wraps the original error to preserve context.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	switch kind, name := classify(err); kind {
	case uniqueViolation:
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	case foreignKeyViolation:
		return fmt.Errorf("%w: foreign key violation (%s): %v", store.ErrReferentialIntegrity, name, err)
	case checkViolation:
		return fmt.Errorf("%w: check constraint violation (%s): %v", store.ErrInvalidEntity, name, err)
	case notNullViolation:
		return fmt.Errorf("%w: not null violation (%s): %v", store.ErrInvalidEntity, name, err)
	}

	return err
}

// IsUniqueViolation reports whether err is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	kind, _ := classify(err)
	return kind == uniqueViolation
}

// IsForeignKeyViolation reports whether err is a foreign key violation.
func IsForeignKeyViolation(err error) bool {
	kind, _ := classify(err)
	return kind == foreignKeyViolation
}

// CheckRowsAffected examines the number of rows affected by a database operation.
// If no rows were affected, it returns notFound.
func CheckRowsAffected(result sql.Result, notFound error) error {
	if result == nil {
		return fmt.Errorf("nil result provided to CheckRowsAffected")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		if notFound == nil {
			return store.ErrNotFound
		}
		return notFound
	}

	return nil
}
