package middleware

import (
	"context"
	"strings"

	"github.com/anonto42/inkwell/backend/internal/errs"
	"github.com/anonto42/inkwell/backend/internal/models"
	"github.com/labstack/echo/v4"
)

const userContextKey = "user"

// TokenResolver maps a bearer token to its user, or nil.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) *models.User
}

// ResolveUser reads "Authorization: Bearer <token>" and returns the user it
// belongs to. A missing or malformed header, a bad token or an unknown user all
// yield nil.
func ResolveUser(c echo.Context, resolver TokenResolver) *models.User {
	token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
	if !ok {
		return nil
	}
	return resolver.ResolveToken(c.Request().Context(), token)
}

// OptionalAuth stores the resolved user, if any, and always continues.
func OptionalAuth(resolver TokenResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if user := ResolveUser(c, resolver); user != nil {
				c.Set(userContextKey, user)
			}
			return next(c)
		}
	}
}

// RequireAuth rejects requests without a resolvable user with 401.
func RequireAuth(resolver TokenResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := ResolveUser(c, resolver)
			if user == nil {
				return errs.Unauthorized
			}
			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user stored by OptionalAuth or RequireAuth, or nil.
func CurrentUser(c echo.Context) *models.User {
	user, _ := c.Get(userContextKey).(*models.User)
	return user
}

// CurrentUserID is CurrentUser's id, 0 when anonymous.
func CurrentUserID(c echo.Context) uint {
	if user := CurrentUser(c); user != nil {
		return user.ID
	}
	return 0
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
