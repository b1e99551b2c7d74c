package details

import (
	"github.com/gofiber/fiber/v2"

	database "iglesiamqv_backend/internals/databases"
	authService "iglesiamqv_backend/internals/features/users/auth/service"
	"iglesiamqv_backend/internals/middlewares"
	authmw "iglesiamqv_backend/internals/middlewares/auth"
)

func AuthRoutes(app *fiber.App, store *database.Store) {
	api := app.Group("/api/auth")

	api.Post("/login", middlewares.LoginRateLimiter(), func(c *fiber.Ctx) error {
		return authService.Login(store, c)
	})
	api.Post("/logout", func(c *fiber.Ctx) error {
		return authService.Logout(c)
	})

	protegido := api.Group("", authmw.AuthMiddleware(store))
	protegido.Get("/verify", func(c *fiber.Ctx) error {
		return authService.Verify(c)
	})
	protegido.Post("/change-password", func(c *fiber.Ctx) error {
		return authService.ChangePassword(store, c)
	})
}
