package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"relwatch/internal/logging"
)

// AuthConfig configures the bearer-token middleware.
type AuthConfig struct {
	Secret string
	// Skip exempts a request from authentication.
	Skip func(c *fiber.Ctx) bool
}

// Auth validates the Authorization: Bearer token on every request.
func Auth(cfg AuthConfig) fiber.Handler {
	secret := []byte(cfg.Secret)
	return func(c *fiber.Ctx) error {
		if cfg.Skip != nil && cfg.Skip(c) {
			return c.Next()
		}

		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		token, err := jwt.Parse(strings.TrimPrefix(header, "Bearer "), func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			logging.Logger.Warnf("JWT validation failed: %v", err)
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
		}
		return c.Next()
	}
}
