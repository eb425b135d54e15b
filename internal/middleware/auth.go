package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/poskasir/catalog-api/internal/models"
	"github.com/poskasir/catalog-api/internal/tokens"
)

const principalKey = "principal"

// Principal is the already-authenticated caller handed to protected handlers.
type Principal struct {
	ID    string
	Email string
	Role  string
}

type AuthMiddleware struct {
	Secret []byte
}

func NewAuthMiddleware(secret []byte) *AuthMiddleware {
	return &AuthMiddleware{Secret: secret}
}

// RequireAuth verifies the bearer token and stores the principal in the
// request context. Missing, malformed or expired tokens are all 401.
func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
		}

		claims, err := tokens.AccessClaimsFromToken(raw, m.Secret)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}

		c.Set(principalKey, Principal{
			ID:    claims.Subject,
			Email: claims.Email,
			Role:  claims.Role,
		})
		return next(c)
	}
}

// RequireSuperadmin gates role-restricted mutations. Runs after RequireAuth.
func (m *AuthMiddleware) RequireSuperadmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		p, ok := PrincipalFrom(c)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
		}
		if p.Role != models.RoleSuperadmin {
			return echo.NewHTTPError(http.StatusForbidden, "Superadmin access required")
		}
		return next(c)
	}
}

func PrincipalFrom(c echo.Context) (Principal, bool) {
	p, ok := c.Get(principalKey).(Principal)
	return p, ok
}
