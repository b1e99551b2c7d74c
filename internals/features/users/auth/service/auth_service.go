package service

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"iglesiamqv_backend/internals/constants"
	database "iglesiamqv_backend/internals/databases"
	"iglesiamqv_backend/internals/features/users/user/dto"
	"iglesiamqv_backend/internals/features/users/user/model"
	helper "iglesiamqv_backend/internals/helpers"
	authmw "iglesiamqv_backend/internals/middlewares/auth"
)

// Mensaje uniforme: no revela si falló el usuario, el estado o la contraseña.
const msgCredencialesInvalidas = "Credenciales inválidas."

// Credenciales del modo demostración (solo sin base de datos).
const (
	demoUsername = "admin"
	demoPassword = "admin123"
)

// ========================== LOGIN ==========================
// POST /api/auth/login {username|email, password} → {success, user, token}
func Login(store *database.Store, c *fiber.Ctx) error {
	var input struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		// el login del panel llega como form
		input.Username = c.FormValue("username")
		input.Password = c.FormValue("password")
	}

	identifier := strings.TrimSpace(input.Username)
	if identifier == "" {
		identifier = strings.TrimSpace(input.Email)
	}
	if identifier == "" || input.Password == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Usuario y contraseña son requeridos.")
	}

	if !store.Available() {
		return loginDemo(c, identifier, input.Password)
	}

	var user model.UserModel
	err := store.DB.
		Where("username = ? OR email = ?", identifier, strings.ToLower(identifier)).
		First(&user).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Printf("[ERROR] Login: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno del servidor.")
		}
		return helper.JsonError(c, fiber.StatusUnauthorized, msgCredencialesInvalidas)
	}
	if !user.Activo || !user.ComparePassword(input.Password) {
		return helper.JsonError(c, fiber.StatusUnauthorized, msgCredencialesInvalidas)
	}

	now := time.Now()
	if err := store.DB.Model(&user).UpdateColumn("ultimo_acceso", now).Error; err != nil {
		log.Printf("[WARN] No se pudo actualizar ultimo_acceso: %v", err)
	}
	user.UltimoAcceso = now

	token, err := helper.CreateToken(user.ID.String(), helper.TokenTTL)
	if err != nil {
		log.Printf("[ERROR] Firmando token: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno del servidor.")
	}
	helper.SetTokenCookie(c, token, helper.TokenTTL)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login exitoso",
		"user":    dto.ToUserResponse(&user),
		"token":   token,
	})
}

// Modo demostración: un único par de credenciales hard-coded mantiene el
// panel accesible cuando la base de datos está caída. Bypass deliberado de
// DB y hashing; modo de confianza reducida, no un bug.
func loginDemo(c *fiber.Ctx, identifier, password string) error {
	if identifier != demoUsername || password != demoPassword {
		return helper.JsonError(c, fiber.StatusUnauthorized, msgCredencialesInvalidas)
	}

	claims := map[string]any{
		"username":   demoUsername,
		"role":       constants.RoleAdmin,
		"ministerio": constants.MinisterioAdministracion,
	}
	token, err := helper.CreateTokenWithClaims(authmw.DemoAdminID, claims, helper.DemoTokenTTL)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno del servidor.")
	}
	helper.SetTokenCookie(c, token, helper.DemoTokenTTL)

	log.Println("✅ Login exitoso (modo demostración)")
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login exitoso (modo demostración)",
		"user": fiber.Map{
			"username":   demoUsername,
			"role":       constants.RoleAdmin,
			"ministerio": constants.MinisterioAdministracion,
		},
		"token": token,
	})
}

// ========================== LOGOUT ==========================
func Logout(c *fiber.Ctx) error {
	helper.ClearTokenCookie(c)
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logout exitoso",
	})
}

// ========================== VERIFY ==========================
// GET /api/auth/verify (requiere auth)
func Verify(c *fiber.Ctx) error {
	user := authmw.CurrentUser(c)
	return c.JSON(fiber.Map{
		"success": true,
		"user":    dto.ToUserResponse(user),
	})
}

// ========================== CHANGE PASSWORD ==========================
// POST /api/auth/change-password {currentPassword, newPassword}
func ChangePassword(store *database.Store, c *fiber.Ctx) error {
	var input struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Formato de entrada inválido.")
	}
	if input.CurrentPassword == "" || input.NewPassword == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Contraseña actual y nueva contraseña son requeridas.")
	}
	if len(input.NewPassword) < 6 {
		return helper.JsonError(c, fiber.StatusBadRequest, "La nueva contraseña debe tener al menos 6 caracteres.")
	}

	if !store.Available() {
		return helper.JsonError(c, fiber.StatusBadRequest, "No disponible en modo demostración.")
	}

	// Recarga con password: el middleware adjunta el usuario sin ese campo.
	var user model.UserModel
	if err := store.DB.First(&user, "id = ?", authmw.CurrentUser(c).ID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Usuario no encontrado.")
	}

	if !user.ComparePassword(input.CurrentPassword) {
		return helper.JsonError(c, fiber.StatusBadRequest, "La contraseña actual es incorrecta.")
	}

	if err := user.SetPassword(input.NewPassword); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := store.DB.Save(&user).Error; err != nil {
		log.Printf("[ERROR] Actualizando contraseña: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno del servidor.")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Contraseña cambiada exitosamente.",
	})
}

// ========================== LOGIN WEB (panel) ==========================
// POST /admin/login (form): como Login pero redirige al dashboard. El
// fallback de demostración emite el token corto de 24h.
func LoginWeb(store *database.Store, c *fiber.Ctx) error {
	username := strings.TrimSpace(c.FormValue("username"))
	password := c.FormValue("password")
	if username == "" || password == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Usuario y contraseña son requeridos.")
	}

	if !store.Available() {
		if username != demoUsername || password != demoPassword {
			return helper.JsonError(c, fiber.StatusUnauthorized, msgCredencialesInvalidas)
		}
		claims := map[string]any{
			"username":   demoUsername,
			"role":       constants.RoleAdmin,
			"ministerio": constants.MinisterioAdministracion,
		}
		token, err := helper.CreateTokenWithClaims(authmw.DemoAdminID, claims, helper.DemoTokenTTL)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno del servidor.")
		}
		helper.SetTokenCookie(c, token, helper.DemoTokenTTL)
		log.Println("✅ Login exitoso (modo demostración)")
		return c.Redirect("/admin/dashboard", fiber.StatusFound)
	}

	var user model.UserModel
	err := store.DB.
		Where("username = ? OR email = ?", username, strings.ToLower(username)).
		First(&user).Error
	if err != nil || !user.Activo || !user.ComparePassword(password) {
		return helper.JsonError(c, fiber.StatusUnauthorized, msgCredencialesInvalidas)
	}

	now := time.Now()
	if err := store.DB.Model(&user).UpdateColumn("ultimo_acceso", now).Error; err != nil {
		log.Printf("[WARN] No se pudo actualizar ultimo_acceso: %v", err)
	}

	token, err := helper.CreateToken(user.ID.String(), helper.TokenTTL)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno del servidor.")
	}
	helper.SetTokenCookie(c, token, helper.TokenTTL)
	return c.Redirect("/admin/dashboard", fiber.StatusFound)
}

// GET|POST /admin/logout
func LogoutWeb(c *fiber.Ctx) error {
	helper.ClearTokenCookie(c)
	return c.Redirect("/admin/login", fiber.StatusFound)
}
