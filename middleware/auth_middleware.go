// middleware/auth_middleware.go
package middleware

import (
	"net/http"

	"github.com/bhavesh4825f/project/models"
	"github.com/labstack/echo/v4"
)

// RequireAdmin allows the request through only when the authenticated
// role is admin. It composes after JWTMiddleware and knows nothing
// about the entities behind the route.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := ExtractUserRole(c)
			if role == "" {
				return c.JSON(http.StatusUnauthorized, models.Response{
					Success: false,
					Message: "Not authorized, no token",
				})
			}
			if role != "admin" {
				return c.JSON(http.StatusForbidden, models.Response{
					Success: false,
					Message: "Access denied. Admin privileges required.",
				})
			}
			return next(c)
		}
	}
}
