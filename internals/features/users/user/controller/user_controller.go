package controller

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"iglesiamqv_backend/internals/constants"
	database "iglesiamqv_backend/internals/databases"
	"iglesiamqv_backend/internals/features/users/user/dto"
	"iglesiamqv_backend/internals/features/users/user/model"
	helper "iglesiamqv_backend/internals/helpers"
	authmw "iglesiamqv_backend/internals/middlewares/auth"
)

type UserController struct {
	Store *database.Store
}

func NewUserController(store *database.Store) *UserController {
	return &UserController{Store: store}
}

// 🟢 GET /admin/usuarios
func (ctrl *UserController) List(c *fiber.Ctx) error {
	if !ctrl.Store.Available() {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Base de datos no disponible.")
	}

	var usuarios []model.UserModel
	if err := ctrl.Store.DB.Omit("password").Order("created_at DESC").Find(&usuarios).Error; err != nil {
		log.Printf("[ERROR] Cargando usuarios: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error cargando usuarios.")
	}

	return helper.JsonOK(c, "", dto.ToUserResponses(usuarios))
}

// 🟢 POST /admin/usuarios
func (ctrl *UserController) Create(c *fiber.Ctx) error {
	if !ctrl.Store.Available() {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Base de datos no disponible.")
	}

	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Formato de entrada inválido.")
	}

	nuevo := model.UserModel{
		Username:   req.Username,
		Email:      req.Email,
		Role:       req.Role,
		Ministerio: req.Ministerio,
		Activo:     true,
	}
	if err := nuevo.SetPassword(req.Password); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := nuevo.Validate(); err != nil {
		return helper.JsonValidationError(c, err)
	}

	// Pre-chequeo de duplicados. La ventana de carrera entre el chequeo y
	// el insert la cubre la traducción del unique violation más abajo.
	var existe int64
	if err := ctrl.Store.DB.Model(&model.UserModel{}).
		Where("username = ? OR email = ?", nuevo.Username, nuevo.Email).
		Count(&existe).Error; err != nil {
		log.Printf("[ERROR] Chequeando duplicados: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error creando usuario.")
	}
	if existe > 0 {
		return helper.JsonErrorCode(c, fiber.StatusBadRequest, "CONFLICT", "El usuario o email ya existe.")
	}

	if err := ctrl.Store.DB.Create(&nuevo).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonErrorCode(c, fiber.StatusBadRequest, "CONFLICT", "El usuario o email ya existe.")
		}
		log.Printf("[ERROR] Creando usuario: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error creando usuario.")
	}

	return helper.JsonCreated(c, "Usuario creado exitosamente.", dto.ToUserResponse(&nuevo))
}

// 🟡 PUT /admin/usuarios/:id
// Actualización parcial: solo los campos presentes cambian.
func (ctrl *UserController) Update(c *fiber.Ctx) error {
	if !ctrl.Store.Available() {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Base de datos no disponible.")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID de usuario inválido.")
	}

	var user model.UserModel
	if err := ctrl.Store.DB.Omit("password").First(&user, "id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Usuario no encontrado.")
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Formato de entrada inválido.")
	}

	updates := map[string]interface{}{}
	if req.Username != nil {
		updates["username"] = strings.TrimSpace(*req.Username)
	}
	if req.Email != nil {
		updates["email"] = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Ministerio != nil {
		if !constants.IsValidMinisterioUsuario(*req.Ministerio) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Ministerio no válido.")
		}
		updates["ministerio"] = *req.Ministerio
	}
	if req.Role != nil {
		if *req.Role != constants.RoleAdmin && *req.Role != constants.RoleMinisterio {
			return helper.JsonError(c, fiber.StatusBadRequest, "Rol no válido.")
		}
		updates["role"] = *req.Role
	}
	if req.Activo != nil {
		updates["activo"] = *req.Activo
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "No hay campos para actualizar.")
	}

	if err := ctrl.Store.DB.Model(&user).Updates(updates).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonErrorCode(c, fiber.StatusBadRequest, "CONFLICT", "El usuario o email ya existe.")
		}
		log.Printf("[ERROR] Actualizando usuario: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error actualizando usuario.")
	}

	if err := ctrl.Store.DB.Omit("password").First(&user, "id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error cargando usuario actualizado.")
	}
	return helper.JsonUpdated(c, "Usuario actualizado exitosamente.", dto.ToUserResponse(&user))
}

// 🔴 DELETE /admin/usuarios/:id (lógico: activo=false)
func (ctrl *UserController) Delete(c *fiber.Ctx) error {
	if !ctrl.Store.Available() {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Base de datos no disponible.")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID de usuario inválido.")
	}

	if actor := authmw.CurrentUser(c); actor != nil && actor.ID == id {
		return helper.JsonError(c, fiber.StatusBadRequest, "No puedes eliminarte a ti mismo.")
	}

	res := ctrl.Store.DB.Model(&model.UserModel{}).Where("id = ?", id).Update("activo", false)
	if res.Error != nil {
		log.Printf("[ERROR] Desactivando usuario: %v", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error eliminando usuario.")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Usuario no encontrado.")
	}

	return helper.JsonDeleted(c, "Usuario desactivado exitosamente.")
}
