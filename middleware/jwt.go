package middleware

import (
	"strings"

	"campy/utils"

	"github.com/gofiber/fiber/v2"
)

// TokenVerifier resolves a bearer token to a user id.
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

// JWTMiddleware checks for a valid bearer token and stores the user id in
// c.Locals("userId").
func JWTMiddleware(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return utils.NewAuthError("No token provided. Please login.")
		}

		// The token should be prefixed with "Bearer "
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return utils.NewAuthError("Invalid Authorization header format")
		}

		tokenString := strings.TrimSpace(authHeader[len("Bearer "):])
		userID, err := verifier.VerifyToken(tokenString)
		if err != nil {
			return err
		}

		c.Locals("userId", userID)
		return c.Next()
	}
}

// CurrentUserID returns the id stored by JWTMiddleware.
func CurrentUserID(c *fiber.Ctx) (string, bool) {
	id, ok := c.Locals("userId").(string)
	return id, ok && id != ""
}
