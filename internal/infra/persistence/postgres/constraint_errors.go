package postgres

import (
	"strings"

	"civic/internal/domain/repository"
	"civic/internal/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes the repositories react to.
const (
	pgUniqueViolation     = "23505"
	pgNotNullViolation    = "23502"
	pgForeignKeyViolation = "23503"
)

// Index names created by the accounts migration.
const (
	accountsEmailLiveKey    = "accounts_email_live_key"
	accountsUsernameLiveKey = "accounts_username_live_key"
)

// uniqueFieldByConstraint maps a unique index on accounts to the field it guards.
var uniqueFieldByConstraint = map[string]repository.UniqueField{
	accountsEmailLiveKey:    repository.UniqueFieldEmail,
	accountsUsernameLiveKey: repository.UniqueFieldUsername,
}

func asPgError(err error) (*pgconn.PgError, bool) {
	return errors.AsTarget[*pgconn.PgError](err)
}

func isUniqueConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	pgErr, ok := asPgError(err)

	return ok && pgErr.Code == pgUniqueViolation
}

func isForeignKeyConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	pgErr, ok := asPgError(err)

	return ok && pgErr.Code == pgForeignKeyViolation
}

func isNotNullConstraintViolation(err error) bool {
	pgErr, ok := asPgError(err)

	return ok && pgErr.Code == pgNotNullViolation
}

// accountConstraintViolation converts a unique violation on the accounts table into a
// *repository.ConstraintViolationError naming the violated field. Any other error is
// reported as not handled.
func accountConstraintViolation(err error) (*repository.ConstraintViolationError, bool) {
	pgErr, ok := asPgError(err)
	if !ok || pgErr.Code != pgUniqueViolation {
		return nil, false
	}

	if field, known := uniqueFieldByConstraint[pgErr.ConstraintName]; known {
		return &repository.ConstraintViolationError{Field: field, Err: err}, true
	}

	// Constraint names are truncated or renamed by hand-written migrations now and then;
	// fall back to the column mentioned in the constraint name or detail.
	hint := strings.ToLower(pgErr.ConstraintName + " " + pgErr.Detail)
	switch {
	case strings.Contains(hint, "email"):
		return &repository.ConstraintViolationError{Field: repository.UniqueFieldEmail, Err: err}, true
	case strings.Contains(hint, "username"):
		return &repository.ConstraintViolationError{Field: repository.UniqueFieldUsername, Err: err}, true
	default:
		return nil, false
	}
}
