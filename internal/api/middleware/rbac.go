package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/mdip/intelligence-platform/internal/core/domain"
)

// RBAC enforces role-based access control. Denials surface as
// domain.ErrForbidden so the central error handler renders the 403.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
