package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole returns a middleware that enforces that the authenticated
// user has one of the specified roles. The accepted values correspond to
// the JWT's "role" claim, which JWTAuth stores in the context. Requests
// with a missing or disallowed role are aborted with 403. This guards
// the restaurant-scoped reservation listing, which would otherwise be
// readable by any authenticated customer.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(string)
			if !ok || !allowed[role] {
				return c.JSON(http.StatusForbidden, echo.Map{
					"success": false,
					"message": "Insufficient permissions",
				})
			}
			return next(c)
		}
	}
}
