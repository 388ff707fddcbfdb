// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"civic/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Email     string
	Username  string
	Password  string
	FirstName string
	LastName  string
}

// LoginInput defines the data required for an account to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// LoginOutput carries the issued bearer token and the public view of the account.
type LoginOutput struct {
	Token string
	User  *entity.AccountView
}

// AccountUsecase defines the credential operations the delivery layer depends on.
type AccountUsecase interface {
	// Register creates an account. It fails with ErrDuplicateEmail or ErrDuplicateUsername
	// when a live account already holds the normalized email or username.
	Register(ctx context.Context, input RegisterInput) (*entity.AccountView, error)

	// Login verifies the credentials and issues a token. Unknown email and wrong
	// password both fail with ErrInvalidCredentials.
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)
}
