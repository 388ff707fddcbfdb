package service

import (
	"time"

	"civic/internal/domain/entity"
)

// TokenService signs and parses bearer tokens carrying account claims.
type TokenService interface {
	// Issue signs the claims into a token valid for ttl from now.
	Issue(claims entity.Claims, ttl time.Duration) (string, error)

	// Parse verifies a token's signature and expiry and returns its claims.
	Parse(token string) (*entity.Claims, error)
}
