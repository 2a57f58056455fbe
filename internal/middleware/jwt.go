package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	authpkg "github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/auth"
)

// JWT requires a valid bearer token and stores the caller identity in the request context.
func JWT(manager *authpkg.JWTManager) echo.MiddlewareFunc {
	return jwtMiddleware(manager, false)
}

// OptionalJWT lets anonymous requests through but still rejects malformed or
// invalid tokens when one is presented.
func OptionalJWT(manager *authpkg.JWTManager) echo.MiddlewareFunc {
	return jwtMiddleware(manager, true)
}

func jwtMiddleware(manager *authpkg.JWTManager, optional bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				if optional {
					return next(c)
				}
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing authorization header"})
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid authorization header"})
			}

			claims, err := manager.ParseToken(strings.TrimSpace(parts[1]))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			}

			c.Set(ContextKeyOwner, claims.Subject)
			c.Set(ContextKeyScopes, claims.Scopes)

			return next(c)
		}
	}
}
