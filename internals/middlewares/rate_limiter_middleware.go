package middlewares

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"iglesiamqv_backend/internals/configs"
)

// Global limiter: contador por IP en ventana de 15 minutos. Los assets
// estáticos y el health check del contenedor quedan exentos.
func GlobalRateLimiter() fiber.Handler {
	max := 100
	if configs.IsProduction() {
		max = 1000
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: 15 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		Next: func(c *fiber.Ctx) bool {
			path := c.Path()
			return strings.HasPrefix(path, "/public") ||
				strings.HasPrefix(path, "/uploads") ||
				strings.HasPrefix(path, "/assets") ||
				path == "/health"
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"message": "Demasiadas solicitudes desde esta IP. Intenta de nuevo en 15 minutos.",
			})
		},
	})
}

// Rate limiter para login (más estricto)
func LoginRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"message": "Demasiados intentos de login. Intenta de nuevo más tarde.",
			})
		},
	})
}
