// internals/middlewares/auth/policy.go
//
// Tabla de políticas declarativa: recurso × acción × predicado, evaluada en
// un solo punto. Cada handler y middleware de autorización consulta Can();
// la regla vive aquí y en ningún otro lado.
package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"iglesiamqv_backend/internals/constants"
	userModel "iglesiamqv_backend/internals/features/users/user/model"
	helper "iglesiamqv_backend/internals/helpers"
)

type Resource string

type Action string

const (
	ResUsuarios      Resource = "usuarios"
	ResMedios        Resource = "medios"
	ResConfiguracion Resource = "configuracion"
)

const (
	ActCreate Action = "create"
	ActRead   Action = "read"
	ActUpdate Action = "update"
	ActDelete Action = "delete"
)

// Target identifica el objeto concreto sobre el que se actúa.
type Target struct {
	Ministerio  string
	SubidoPorID uuid.UUID
}

type predicate func(u *userModel.UserModel, t Target) bool

func isAdmin(u *userModel.UserModel, _ Target) bool {
	return u.IsAdmin()
}

func adminOMismoMinisterio(u *userModel.UserModel, t Target) bool {
	return u.IsAdmin() || u.Ministerio == t.Ministerio
}

// Regla unificada de edición/borrado de medios: admin o quien lo subió.
func adminOUploader(u *userModel.UserModel, t Target) bool {
	return u.IsAdmin() || (u.ID != uuid.Nil && u.ID == t.SubidoPorID)
}

func authenticatedOnly(_ *userModel.UserModel, _ Target) bool {
	return true
}

var policies = map[Resource]map[Action]predicate{
	ResUsuarios: {
		ActCreate: isAdmin,
		ActRead:   isAdmin,
		ActUpdate: isAdmin,
		ActDelete: isAdmin,
	},
	ResMedios: {
		ActCreate: adminOMismoMinisterio,
		ActRead:   authenticatedOnly,
		ActUpdate: adminOUploader,
		ActDelete: adminOUploader,
	},
	ResConfiguracion: {
		ActCreate: isAdmin,
		ActRead:   isAdmin,
		ActUpdate: isAdmin,
	},
}

// Can evalúa la política. Sin entrada en la tabla, se niega.
func Can(u *userModel.UserModel, res Resource, act Action, t Target) bool {
	if u == nil {
		return false
	}
	actions, ok := policies[res]
	if !ok {
		return false
	}
	pred, ok := actions[act]
	if !ok {
		return false
	}
	return pred(u, t)
}

// AdminOnly: gate de rol compuesto después del middleware de autenticación.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !Can(CurrentUser(c), ResUsuarios, ActRead, Target{}) {
			return helper.JsonError(c, fiber.StatusForbidden, constants.ErrSoloAdmin)
		}
		return c.Next()
	}
}

// MinisterioGate: admin o pertenencia al ministerio nombrado en la ruta/form.
func MinisterioGate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		target := Target{Ministerio: helper.MinisterioParam(c)}
		if !Can(CurrentUser(c), ResMedios, ActCreate, target) {
			return helper.JsonError(c, fiber.StatusForbidden, constants.ErrMinisterioAjeno)
		}
		return c.Next()
	}
}
