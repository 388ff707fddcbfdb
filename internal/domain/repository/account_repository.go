// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"fmt"
	"time"

	"civic/internal/domain/entity"
	"civic/internal/errors"
)

// ErrAccountNotFound is returned when no live account matches a lookup.
var ErrAccountNotFound = errors.New("account not found")

// UniqueField names an account column guarded by a uniqueness constraint.
type UniqueField string

const (
	// UniqueFieldEmail is the live-account email uniqueness constraint.
	UniqueFieldEmail UniqueField = "email"
	// UniqueFieldUsername is the live-account username uniqueness constraint.
	UniqueFieldUsername UniqueField = "username"
)

// ConstraintViolationError is returned by Create when the store's own uniqueness
// constraint rejects the insert, e.g. when a concurrent registration claimed the
// same normalized email between the existence check and the insert.
type ConstraintViolationError struct {
	Field UniqueField
	Err   error
}

func (e *ConstraintViolationError) Error() string {
	return fmt.Sprintf("unique constraint violated on %s", e.Field)
}

func (e *ConstraintViolationError) Unwrap() error {
	return e.Err
}

// FindOptions tunes account lookups.
type FindOptions struct {
	// IncludeSecret loads the password hash. Only credential verification should set it.
	IncludeSecret bool
}

// AccountUpdate lists the fields Update may change. Nil fields are left untouched.
type AccountUpdate struct {
	FailedLoginAttempts *int
	LastLoginAt         *time.Time
}

// IsEmpty reports whether the update carries no field.
func (u AccountUpdate) IsEmpty() bool {
	return u.FailedLoginAttempts == nil && u.LastLoginAt == nil
}

// AccountRepository is the credential store consumed by the account service.
// Every lookup only considers live (not soft-deleted) accounts.
type AccountRepository interface {
	// Create inserts a new account and fills in its ID and CreatedAt.
	// It returns *ConstraintViolationError when the email or username is already taken.
	Create(ctx context.Context, account *entity.Account) error

	// FindByEmail retrieves a live account by case-insensitive exact email match.
	FindByEmail(ctx context.Context, email string, opts FindOptions) (*entity.Account, error)

	// FindByUsername retrieves a live account by case-insensitive exact username match.
	FindByUsername(ctx context.Context, username string) (*entity.Account, error)

	// Update merges the non-nil fields into the account. Callers needing the
	// resulting record must fetch it again.
	Update(ctx context.Context, id int64, fields AccountUpdate) error
}
