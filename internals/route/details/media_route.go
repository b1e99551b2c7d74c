package details

import (
	"github.com/gofiber/fiber/v2"

	database "iglesiamqv_backend/internals/databases"
	mediaController "iglesiamqv_backend/internals/features/media/controller"
	"iglesiamqv_backend/internals/helpers/storage"
	authmw "iglesiamqv_backend/internals/middlewares/auth"
)

// Rutas públicas y protegidas de la galería por ministerio.
func MinisterioRoutes(app *fiber.App, store *database.Store, st *storage.LocalStorage) {
	ctrl := mediaController.NewMediaController(store, st)

	api := app.Group("/api/ministerios")

	// Público: lista de ministerios y galería paginada.
	api.Get("/", ctrl.GetMinisterios)
	api.Get("/:ministerio", ctrl.ListByMinisterio)

	// Protegido: subir requiere además pertenecer al ministerio (o admin).
	protegido := api.Group("", authmw.AuthMiddleware(store))
	protegido.Get("/:ministerio/stats", ctrl.Stats)
	protegido.Post("/:ministerio/upload", authmw.MinisterioGate(), ctrl.Upload)
	protegido.Put("/:ministerio/:mediaId", ctrl.Update)
	protegido.Delete("/:ministerio/:mediaId", ctrl.Delete)
}
