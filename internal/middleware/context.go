package middleware

import "github.com/labstack/echo/v4"

// Context keys used to store caller identity and tracing metadata.
const (
	ContextKeyOwner     = "owner"
	ContextKeyScopes    = "scopes"
	ContextKeyRequestID = "request_id"
)

// OwnerFromContext returns the authenticated caller, or "" for anonymous requests.
func OwnerFromContext(c echo.Context) string {
	if val, ok := c.Get(ContextKeyOwner).(string); ok {
		return val
	}
	return ""
}
