package middleware

import (
	"net/http"
	"slices"

	"github.com/labstack/echo/v4"
)

// RequireScope enforces that the authenticated token grants scope.
func RequireScope(scope string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			scopes, ok := c.Get(ContextKeyScopes).([]string)
			if !ok || len(scopes) == 0 {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "missing scopes"})
			}
			if !slices.Contains(scopes, scope) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "insufficient permissions"})
			}
			return next(c)
		}
	}
}

// RequireScopeIfAuthenticated enforces scope for callers that presented a token and lets
// anonymous requests through unchanged.
func RequireScopeIfAuthenticated(scope string) echo.MiddlewareFunc {
	required := RequireScope(scope)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		guarded := required(next)
		return func(c echo.Context) error {
			if OwnerFromContext(c) == "" {
				return next(c)
			}
			return guarded(c)
		}
	}
}
