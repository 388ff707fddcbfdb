// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"context"
	"runtime"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
	"go.uber.org/fx"

	"civic/config"
	"civic/internal/domain/service"
	"civic/internal/errors"
)

const defaultBcryptCost = 10

// HasherParams holds dependencies for the bcrypt hasher.
type HasherParams struct {
	fx.In

	Config *config.Config
}

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
// Every Hash and Check holds one slot of a weighted semaphore while bcrypt runs.
type bcryptHasher struct {
	cost  int
	slots *semaphore.Weighted
}

// NewBcryptHasher builds the hasher from the auth section of the configuration.
func NewBcryptHasher(params HasherParams) (service.PasswordHasher, error) {
	cost, workers := defaultBcryptCost, 0
	if auth := params.Config.Auth; auth != nil {
		if auth.BcryptCost != 0 {
			cost = auth.BcryptCost
		}
		workers = auth.HashWorkers
	}

	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, errors.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	return NewBcryptHasherWithCost(cost, workers), nil
}

// NewBcryptHasherWithCost creates a hasher with an explicit cost and pool size.
// A non-positive workers value means GOMAXPROCS.
func NewBcryptHasherWithCost(cost, workers int) service.PasswordHasher {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	return &bcryptHasher{
		cost:  cost,
		slots: semaphore.NewWeighted(int64(workers)),
	}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
func (h *bcryptHasher) Hash(ctx context.Context, password string) (string, error) {
	if err := h.slots.Acquire(ctx, 1); err != nil {
		return "", errors.Wrap(err, "acquire hashing slot")
	}
	defer h.slots.Release(1)

	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", errors.Wrap(err, "bcrypt generate")
	}

	return string(digest), nil
}

// Check compares a plaintext password with a bcrypt hash.
// A malformed hash is reported as a mismatch.
func (h *bcryptHasher) Check(ctx context.Context, password, hash string) (bool, error) {
	if err := h.slots.Acquire(ctx, 1); err != nil {
		return false, errors.Wrap(err, "acquire hashing slot")
	}
	defer h.slots.Release(1)

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	return err == nil, nil
}
