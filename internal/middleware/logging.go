package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"relwatch/internal/logging"
)

// Logging records one line per request with method, path, status and latency.
func Logging() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		logging.Logger.Infof("%s %s %d %s", c.Method(), c.Path(), status, time.Since(start))
		return err
	}
}
