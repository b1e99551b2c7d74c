package constants

import "strings"

// Ministerios públicos: los únicos que aceptan medios.
var Ministerios = []string{
	"Adoración y Música",
	"Jóvenes",
	"Niños",
	"Mujeres",
	"Hombres",
	"Intercesión",
	"Evangelismo",
	"Misiones",
	"Diaconos",
}

// MinisterioAdministracion existe solo como adscripción de usuarios.
const MinisterioAdministracion = "Administración"

// MinisteriosUsuario: valores válidos para el campo ministerio de un usuario.
var MinisteriosUsuario = append(append([]string{}, Ministerios...), MinisterioAdministracion)

func IsValidMinisterio(nombre string) bool {
	for _, m := range Ministerios {
		if m == nombre {
			return true
		}
	}
	return false
}

func IsValidMinisterioUsuario(nombre string) bool {
	return IsValidMinisterio(nombre) || nombre == MinisterioAdministracion
}

// MinisterioSlug deriva el nombre de directorio: espacios → "_", minúsculas.
// "Adoración y Música" → "adoración_y_música"
func MinisterioSlug(nombre string) string {
	return strings.ToLower(strings.Join(strings.Fields(nombre), "_"))
}
