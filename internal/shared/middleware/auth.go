package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"imobcrm/internal/services"
	appError "imobcrm/internal/shared/error"
)

const (
	LocalsProfileID = "profile_id"
	LocalsRole      = "role"
)

// AuthMiddleware validates the Bearer token and stores the caller's
// identity in fiber locals for the handlers.
func AuthMiddleware(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return appError.ErrMissingAuthToken
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			return appError.ErrInvalidAuthToken
		}

		claims, err := auth.ParseToken(tokenString)
		if err != nil {
			return err
		}

		c.Locals(LocalsProfileID, claims.Subject)
		c.Locals(LocalsRole, string(claims.Role))
		return c.Next()
	}
}
