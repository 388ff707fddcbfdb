// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

import "context"

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password.
	Hash(ctx context.Context, password string) (string, error)

	// Check compares a plaintext password with a hash in constant time.
	// A mismatch or a malformed hash yields false with a nil error; the error is
	// reserved for the hasher being unable to run at all (e.g. ctx cancelled).
	Check(ctx context.Context, password, hash string) (bool, error)
}
