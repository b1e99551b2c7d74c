package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"

	database "iglesiamqv_backend/internals/databases"
)

func BaseRoutes(app *fiber.App, store *database.Store) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("API Iglesia Más Que Vencedores 🙌")
	})

	// Siempre 200: el sitio sigue en pie aunque la base de datos no, y el
	// estado real va en el cuerpo.
	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "disconnected"
		if store.Available() {
			dbStatus = "connected"
		}

		return c.JSON(fiber.Map{
			"message":   "OK",
			"database":  dbStatus,
			"uptime":    int(time.Since(startTime).Seconds()),
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})
}
