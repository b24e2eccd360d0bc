package middleware // middleware provides shared request processing for handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dineout-gr/dineout-api/internal/utils"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the token's identity claims into the request context. The
// provided secret must match the one used when issuing tokens. Protected
// routes wrap themselves with this middleware so handlers can read the
// authenticated user via c.Get("user_id"), c.Get("email") and
// c.Get("role"). A missing, malformed or expired token is rejected with
// a single uniform 401 before any handler logic runs.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"success": false,
					"message": "Access denied. No token provided",
				})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			ident, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				// One message for bad signature, garbage and expiry alike.
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"success": false,
					"message": "Invalid or expired token",
				})
			}

			c.Set("user_id", ident.UserID)
			c.Set("email", ident.Email)
			c.Set("role", ident.Role)
			return next(c)
		}
	}
}
