package middleware

import (
	"strings"

	deliverycontext "civic/internal/delivery/context"
	"civic/internal/domain/entity"
	domainerrors "civic/internal/domain/errors"
	"civic/internal/domain/service"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	TokenService service.TokenService
}

// AuthMiddleware authenticates requests carrying a bearer access token.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: params.TokenService}
}

// Authenticate validates the bearer token and stores its claims on the context.
// It checks identity only; no route requires a particular role.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		scheme, token, found := strings.Cut(c.Request().Header.Get(echo.HeaderAuthorization), " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return domainerrors.ErrUnauthorized
		}

		claims, err := m.tokenSvc.Parse(strings.TrimSpace(token))
		if err != nil {
			return domainerrors.ErrUnauthorized.WithDetails(err.Error())
		}

		deliverycontext.SetClaims(c, claims)

		return next(c)
	}
}

// GetClaims returns the claims of the authenticated account.
func GetClaims(c echo.Context) (*entity.Claims, bool) {
	return deliverycontext.GetClaims(c)
}
