package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"iglesiamqv_backend/internals/middlewares/logger"
)

// SetupMiddlewares registra los middlewares globales en orden.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}
