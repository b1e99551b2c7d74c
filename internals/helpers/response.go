package helper

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// JsonValidationError traduce errores de validator.v10 a un 400 con el
// detalle por campo.
func JsonValidationError(c *fiber.Ctx, err error) error {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return JsonError(c, fiber.StatusBadRequest, "Datos de entrada inválidos.")
	}

	errorsMap := make(map[string]string, len(ve))
	for _, fieldErr := range ve {
		switch fieldErr.Tag() {
		case "required":
			errorsMap[fieldErr.Field()] = "es requerido."
		case "email":
			errorsMap[fieldErr.Field()] = "formato de email inválido."
		case "min":
			errorsMap[fieldErr.Field()] = "debe tener al menos " + fieldErr.Param() + " caracteres."
		case "max":
			errorsMap[fieldErr.Field()] = "debe tener como máximo " + fieldErr.Param() + " caracteres."
		case "oneof":
			errorsMap[fieldErr.Field()] = "debe ser uno de: " + fieldErr.Param() + "."
		default:
			errorsMap[fieldErr.Field()] = "formato inválido."
		}
	}

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success":    false,
		"message":    "Validación fallida.",
		"error_code": "VALIDATION_ERROR",
		"errors":     errorsMap,
	})
}
