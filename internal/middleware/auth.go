// Package middleware holds the echo route guards: bearer authentication,
// role resolution and permission checks.
package middleware

import (
	"context"
	"errors"
	"strings"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"cmsapi/internal/auth"
	apperrors "cmsapi/internal/errors"
	"cmsapi/internal/metrics"
	"cmsapi/internal/rbac"
)

// Context keys set by the guards.
const (
	ClaimsKey = "claims"
	RoleKey   = "role"
)

const bearerPrefix = "Bearer "

// RoleResolver returns the role a user holds at request time.
type RoleResolver interface {
	CurrentRole(ctx context.Context, userID uint) (rbac.Role, error)
}

// Authenticate verifies the bearer access token and stores its claims under
// ClaimsKey. Expired tokens fail with ErrTokenExpired so clients know to
// refresh; every other failure is ErrUnauthorized.
func Authenticate(tokens *auth.TokenService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  ClaimsKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":" + bearerPrefix,
		ParseTokenFunc: func(_ echo.Context, raw string) (interface{}, error) {
			return tokens.VerifyAccessToken(raw)
		},
		ErrorHandler: func(_ echo.Context, err error) error {
			if errors.Is(err, apperrors.ErrTokenExpired) {
				return apperrors.ErrTokenExpired
			}
			return apperrors.ErrUnauthorized
		},
	})
}

// ResolveRole loads the acting user's current role and stores it under
// RoleKey. The role claim is never taken from the token: it is read from
// the user store so changes apply without reissuing tokens. When no earlier
// Authenticate step ran, the bearer token is verified here.
func ResolveRole(resolver RoleResolver, tokens *auth.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				verified, err := verifyBearer(c, tokens)
				if err != nil {
					return apperrors.ErrForbidden
				}
				claims = verified
				c.Set(ClaimsKey, claims)
			}

			role, err := resolver.CurrentRole(c.Request().Context(), claims.UserID)
			if err != nil {
				return err
			}
			c.Set(RoleKey, role)
			return next(c)
		}
	}
}

// RequirePermission rejects requests whose resolved role lacks p.
func RequirePermission(p rbac.Permission) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := RoleFrom(c)
			if !ok || !rbac.Allowed(role, p) {
				metrics.AccessDenied.WithLabelValues(string(p)).Inc()
				return apperrors.ErrForbidden
			}
			return next(c)
		}
	}
}

// ClaimsFrom returns the verified access token claims of the request.
func ClaimsFrom(c echo.Context) (*auth.Claims, bool) {
	claims, ok := c.Get(ClaimsKey).(*auth.Claims)
	return claims, ok && claims != nil
}

// RoleFrom returns the role resolved for the request.
func RoleFrom(c echo.Context) (rbac.Role, bool) {
	role, ok := c.Get(RoleKey).(rbac.Role)
	return role, ok && role != ""
}

func verifyBearer(c echo.Context, tokens *auth.TokenService) (*auth.Claims, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(header, bearerPrefix) {
		return nil, apperrors.ErrUnauthorized
	}
	return tokens.VerifyAccessToken(strings.TrimPrefix(header, bearerPrefix))
}
