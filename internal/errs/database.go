package errs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether err came from a unique index rejecting a row.
// gorm translates driver errors when TranslateError is enabled; the pgconn check
// covers connections opened without it.
func IsUniqueViolation(err error) bool {
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
	return false
}

// IsRecordNotFound reports whether a gorm lookup came back empty.
func IsRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// NewDatabaseError maps a repository failure on entity to the error a caller should
// see: missing rows become NotFound, uniqueness rejections become Conflict and
// anything else is an internal error carrying the cause for the logs.
func NewDatabaseError(operation, entity string, cause error) *ApiErr {
	switch {
	case IsRecordNotFound(cause):
		return NewNotFound(entity)
	case IsUniqueViolation(cause):
		e := NewConflict(entity + " already exists")
		e.Cause = cause
		return e
	}
	return NewInternalWithCause(fmt.Errorf("failed to %s %s: %w", operation, strings.ToLower(entity), cause))
}
