// Package repository implements the data access layer for the course platform.
package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrConflict reports that a conditional engagement write lost a race with a
// concurrent writer. Callers are expected to re-read and decide again.
var ErrConflict = errors.New("concurrent engagement write")

const pgUniqueViolation = "23505"

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	// Untranslated driver errors (sqlite without TranslateError).
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}
