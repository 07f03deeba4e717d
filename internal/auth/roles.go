package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// RequirePrincipal ensures Handle ran and admitted the caller.
func RequirePrincipal() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			c.Status(http.StatusUnauthorized)
			return nil
		}
		return c.Next()
	}
}
