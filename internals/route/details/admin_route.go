package details

import (
	"github.com/gofiber/fiber/v2"

	database "iglesiamqv_backend/internals/databases"
	configController "iglesiamqv_backend/internals/features/config/controller"
	mediaController "iglesiamqv_backend/internals/features/media/controller"
	userController "iglesiamqv_backend/internals/features/users/user/controller"
	authService "iglesiamqv_backend/internals/features/users/auth/service"
	"iglesiamqv_backend/internals/helpers/storage"
	"iglesiamqv_backend/internals/middlewares"
	authmw "iglesiamqv_backend/internals/middlewares/auth"
)

// Panel de administración: login web por cookie + API JSON del panel.
func AdminRoutes(app *fiber.App, store *database.Store, st *storage.LocalStorage) {
	admin := app.Group("/admin")

	// Login web (form). Sin autenticación previa.
	admin.Get("/login", func(c *fiber.Ctx) error {
		return c.SendFile("./public/admin/login.html")
	})
	admin.Post("/login", middlewares.LoginRateLimiter(), func(c *fiber.Ctx) error {
		return authService.LoginWeb(store, c)
	})
	admin.Get("/logout", func(c *fiber.Ctx) error {
		return authService.LogoutWeb(c)
	})

	// Todo lo demás detrás de la variante web: sin sesión → 302 a /admin/login.
	panel := admin.Group("", authmw.WebAuthMiddleware(store))

	panel.Get("/dashboard", func(c *fiber.Ctx) error {
		return c.SendFile("./public/admin/dashboard.html")
	})

	// Gestión de usuarios: solo admin.
	users := userController.NewUserController(store)
	usuarios := panel.Group("/usuarios", authmw.AdminOnly())
	usuarios.Get("/", users.List)
	usuarios.Post("/", users.Create)
	usuarios.Put("/:id", users.Update)
	usuarios.Delete("/:id", users.Delete)

	// Medios desde el panel: cualquier usuario autenticado, con alcance
	// implícito a su ministerio.
	medios := mediaController.NewMediaController(store, st)
	panel.Get("/medios", medios.AdminList)
	panel.Post("/medios", medios.AdminUpload)
	panel.Delete("/medios/:mediaId", medios.AdminDelete)

	// Configuración del sitio: solo admin. No hay DELETE.
	config := configController.NewConfiguracionController(store)
	configuracion := panel.Group("/configuracion", authmw.AdminOnly())
	configuracion.Get("/", config.List)
	configuracion.Get("/:clave", config.Get)
	configuracion.Put("/", config.Upsert)
}
