// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"iglesiamqv_backend/internals/constants"
	database "iglesiamqv_backend/internals/databases"
	userModel "iglesiamqv_backend/internals/features/users/user/model"
	helper "iglesiamqv_backend/internals/helpers"
)

// Locals keys
const (
	LocUser           = "user"
	LocUserID         = "user_id"
	LocUserRole       = "userRole"
	LocUserMinisterio = "userMinisterio"
)

// DemoAdminID es el user_id del token emitido por el login de demostración.
// Solo se acepta mientras la base de datos no está disponible.
const DemoAdminID = "demo-admin"

var (
	errNoToken      = errors.New("Acceso denegado. No se proporcionó token.")
	errTokenInvalid = errors.New("Token inválido o usuario inactivo.")
)

// AuthMiddleware verifica el JWT (Bearer primero, cookie después), carga el
// usuario sin el campo password y lo adjunta al contexto. Cualquier fallo
// responde 401 JSON; nunca propaga un panic.
func AuthMiddleware(store *database.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := resolveUser(store, c)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
		}
		attachUser(c, user)
		return c.Next()
	}
}

// WebAuthMiddleware: variante para páginas del panel. En vez de 401 JSON,
// limpia la cookie y redirige al login; expone el usuario para las vistas.
func WebAuthMiddleware(store *database.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := resolveUser(store, c)
		if err != nil {
			helper.ClearTokenCookie(c)
			return c.Redirect("/admin/login", fiber.StatusFound)
		}
		attachUser(c, user)
		c.Locals("viewUser", user)
		return c.Next()
	}
}

func resolveUser(store *database.Store, c *fiber.Ctx) (*userModel.UserModel, error) {
	raw := helper.GetRawToken(c)
	if raw == "" {
		return nil, errNoToken
	}

	claims, err := helper.ParseToken(raw)
	if err != nil {
		log.Printf("[WARN] Token rechazado: %v", err)
		return nil, errTokenInvalid
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return nil, errTokenInvalid
	}

	// Token de demostración: válido únicamente sin base de datos.
	if userID == DemoAdminID {
		if store.Available() {
			return nil, errTokenInvalid
		}
		return demoAdminUser(claims), nil
	}

	if !store.Available() {
		return nil, errTokenInvalid
	}

	var user userModel.UserModel
	if err := store.DB.Omit("password").First(&user, "id = ?", userID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[ERROR] DB error cargando usuario: %v", err)
		}
		return nil, errTokenInvalid
	}
	if !user.Activo {
		return nil, errTokenInvalid
	}
	return &user, nil
}

func attachUser(c *fiber.Ctx, user *userModel.UserModel) {
	c.Locals(LocUser, user)
	c.Locals(LocUserID, user.ID.String())
	c.Locals(LocUserRole, user.Role)
	c.Locals(LocUserMinisterio, user.Ministerio)
}

func demoAdminUser(claims map[string]any) *userModel.UserModel {
	username, _ := claims["username"].(string)
	if username == "" {
		username = "admin"
	}
	return &userModel.UserModel{
		Username:     username,
		Email:        "admin@iglesiamqv.com",
		Role:         constants.RoleAdmin,
		Ministerio:   constants.MinisterioAdministracion,
		Activo:       true,
		UltimoAcceso: time.Now(),
	}
}

// CurrentUser devuelve el usuario autenticado adjuntado por el middleware.
func CurrentUser(c *fiber.Ctx) *userModel.UserModel {
	user, _ := c.Locals(LocUser).(*userModel.UserModel)
	return user
}
