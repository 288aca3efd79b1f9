package auth

import (
	"net/http"
	"slices"

	"github.com/gofiber/fiber/v2"

	"github.com/emsworks/employment-service/internal/domain"
)

var errUnauthenticated = fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))

// guard builds a handler that admits the request when allow accepts the principal.
func guard(allow func(*Principal) bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return errUnauthenticated
		}
		if !allow(principal) {
			return fiber.NewError(http.StatusForbidden, "insufficient role")
		}
		return c.Next()
	}
}

// RequireRole admits principals holding one of the given roles.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	roles := slices.Clone(allowed)
	return guard(func(p *Principal) bool { return slices.Contains(roles, p.Role()) })
}

// RequireManager admits admin and hr.
func RequireManager() fiber.Handler {
	return RequireRole(domain.RoleAdmin, domain.RoleHR)
}

// RequireAuthenticated rejects requests without a principal.
func RequireAuthenticated() fiber.Handler {
	return guard(func(*Principal) bool { return true })
}
