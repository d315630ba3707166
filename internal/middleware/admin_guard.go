package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/lmirsal/binershare/internal/apperr"
)

// AdminGuard restricts a route group to profiles with the admin role. It runs
// after JWTMiddleware, which stores the role claim on the context.
func AdminGuard(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		role, ok := c.Get("role").(string)
		if !ok || role != "admin" {
			return apperr.JSON(c, apperr.Clone(apperr.ErrForbidden, "khusus admin"))
		}
		return next(c)
	}
}
