package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"iglesiamqv_backend/internals/features/media/dto"
	helper "iglesiamqv_backend/internals/helpers"
)

// Contenido estático que se sirve en la página pública cuando la base de
// datos no responde, para que el sitio no quede en blanco.
var demoMedios = []dto.MediaResponse{
	{
		Titulo:      "Noche de adoración",
		Descripcion: "Contenido de demostración (modo sin base de datos).",
		Tipo:        "foto",
		Ministerio:  "Adoración y Música",
		FechaEvento: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		Destacado:   true,
	},
	{
		Titulo:      "Campamento de jóvenes",
		Descripcion: "Contenido de demostración (modo sin base de datos).",
		Tipo:        "foto",
		Ministerio:  "Jóvenes",
		FechaEvento: time.Date(2024, 7, 20, 0, 0, 0, 0, time.UTC),
	},
	{
		Titulo:      "Escuela dominical",
		Descripcion: "Contenido de demostración (modo sin base de datos).",
		Tipo:        "video",
		Ministerio:  "Niños",
		FechaEvento: time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC),
	},
}

func listDemo(c *fiber.Ctx, ministerio, tipo string, paging helper.Paging) error {
	filtrados := make([]dto.MediaResponse, 0, len(demoMedios))
	for _, m := range demoMedios {
		if m.Ministerio != ministerio {
			continue
		}
		if tipo != "" && m.Tipo != tipo {
			continue
		}
		filtrados = append(filtrados, m)
	}

	total := int64(len(filtrados))
	inicio := paging.Offset
	if inicio > len(filtrados) {
		inicio = len(filtrados)
	}
	fin := inicio + paging.Limit
	if fin > len(filtrados) {
		fin = len(filtrados)
	}

	return helper.JsonList(c, fiber.Map{
		"ministerio": ministerio,
		"medios":     filtrados[inicio:fin],
		"demo":       true,
	}, helper.BuildPagination(total, paging.Page, paging.Limit))
}
