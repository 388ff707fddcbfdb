package auth

import (
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/fx"

	"civic/config"
	"civic/internal/domain/entity"
	"civic/internal/domain/service"
	"civic/internal/errors"
)

// developmentSecret signs tokens only when no secret is configured in a development environment.
const developmentSecret = "civic-development-secret-do-not-use-in-production"

// TokenParams holds dependencies for the JWT service.
type TokenParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// accountClaims is the token payload: the account identity plus the registered iat/exp claims.
type accountClaims struct {
	ID    int64       `json:"id"`
	Email string      `json:"email"`
	Role  entity.Role `json:"role"`
	jwt.RegisteredClaims
}

// jwtService is a concrete implementation of the TokenService interface using HS256 JWTs.
type jwtService struct {
	secret []byte
	now    func() time.Time
}

// NewJWTService creates the token service. A missing secret is an error unless the
// configured environment is a development one, where the built-in key is used instead.
func NewJWTService(params TokenParams) (service.TokenService, error) {
	secret := strings.TrimSpace(params.Config.JWT.Secret)
	if secret == "" {
		if !params.Config.IsDevelopment() {
			return nil, errors.Errorf("jwt secret must be configured (JWT_SECRET) in environment %q", params.Config.Env.Env)
		}

		if params.Logger != nil {
			params.Logger.Warn("JWT secret not configured, using development secret",
				slog.String("env", params.Config.Env.Env),
			)
		}
		secret = developmentSecret
	}

	return newJWTService(secret, time.Now), nil
}

func newJWTService(secret string, now func() time.Time) *jwtService {
	return &jwtService{
		secret: []byte(secret),
		now:    now,
	}
}

// Issue signs a token carrying the given claims that expires after ttl.
func (s *jwtService) Issue(claims entity.Claims, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		return "", errors.Errorf("token ttl must be positive, got %s", ttl)
	}

	issuedAt := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, accountClaims{
		ID:    claims.AccountID,
		Email: claims.Email,
		Role:  claims.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}

	return signed, nil
}

// Parse verifies the signature and expiry of a token and returns its claims.
func (s *jwtService) Parse(tokenString string) (*entity.Claims, error) {
	claims := &accountClaims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Wrapf(jwt.ErrSignatureInvalid, "unexpected signing method %v", token.Header["alg"])
		}

		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, errors.Wrap(err, "parse token")
	}

	return &entity.Claims{
		AccountID: claims.ID,
		Email:     claims.Email,
		Role:      claims.Role,
	}, nil
}
