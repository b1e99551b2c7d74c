package constants

// Roles del sistema
const (
	RoleAdmin      = "admin"
	RoleMinisterio = "ministerio"
)

// Mensajes de error de autorización
const (
	ErrSoloAdmin        = "Acceso denegado. Se requieren permisos de administrador."
	ErrMinisterioAjeno  = "No tienes permisos para acceder a este ministerio."
	ErrSinPermisoEditar = "No tienes permisos para editar este archivo."
	ErrSinPermisoBorrar = "No tienes permisos para eliminar este archivo."
)

var (
	AllRoles  = []string{RoleAdmin, RoleMinisterio}
	AdminOnly = []string{RoleAdmin}
)
