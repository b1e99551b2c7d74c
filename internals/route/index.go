package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"iglesiamqv_backend/internals/configs"
	database "iglesiamqv_backend/internals/databases"
	helper "iglesiamqv_backend/internals/helpers"
	"iglesiamqv_backend/internals/helpers/storage"
	routeDetails "iglesiamqv_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, store *database.Store) {
	startTime = time.Now()

	st := storage.NewLocalStorage("uploads", configs.MaxFileSize)

	log.Println("[INFO] Registrando rutas base...")
	BaseRoutes(app, store)

	log.Println("[INFO] Registrando rutas de autenticación...")
	routeDetails.AuthRoutes(app, store)

	log.Println("[INFO] Registrando rutas de ministerios...")
	routeDetails.MinisterioRoutes(app, store, st)

	log.Println("[INFO] Registrando panel de administración...")
	routeDetails.AdminRoutes(app, store, st)

	// Fallback 404 en JSON para cualquier ruta no registrada.
	app.Use(func(c *fiber.Ctx) error {
		return helper.JsonError(c, fiber.StatusNotFound, "Ruta no encontrada.")
	})
}
