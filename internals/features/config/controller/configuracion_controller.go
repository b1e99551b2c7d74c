package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	database "iglesiamqv_backend/internals/databases"
	"iglesiamqv_backend/internals/features/config/dto"
	"iglesiamqv_backend/internals/features/config/model"
	helper "iglesiamqv_backend/internals/helpers"
)

type ConfiguracionController struct {
	Store *database.Store
}

func NewConfiguracionController(store *database.Store) *ConfiguracionController {
	return &ConfiguracionController{Store: store}
}

// 🟢 GET /admin/configuracion — todas las claves.
func (ctrl *ConfiguracionController) List(c *fiber.Ctx) error {
	if !ctrl.Store.Available() {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Base de datos no disponible.")
	}

	var items []model.ConfiguracionModel
	if err := ctrl.Store.DB.Order("clave ASC").Find(&items).Error; err != nil {
		log.Printf("[ERROR] Listando configuración: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno del servidor.")
	}

	return helper.JsonOK(c, "", dto.ToConfiguracionResponses(items))
}

// 🟢 GET /admin/configuracion/:clave
func (ctrl *ConfiguracionController) Get(c *fiber.Ctx) error {
	if !ctrl.Store.Available() {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Base de datos no disponible.")
	}

	clave := strings.TrimSpace(c.Params("clave"))
	var item model.ConfiguracionModel
	if err := ctrl.Store.DB.First(&item, "clave = ?", clave).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Configuración no encontrada.")
		}
		log.Printf("[ERROR] Cargando configuración: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno del servidor.")
	}

	return helper.JsonOK(c, "", dto.ToConfiguracionResponse(&item))
}

// 🟡 PUT /admin/configuracion — upsert por clave. No hay DELETE: las claves
// se sobreescriben, nunca se quitan.
func (ctrl *ConfiguracionController) Upsert(c *fiber.Ctx) error {
	if !ctrl.Store.Available() {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Base de datos no disponible.")
	}

	var req dto.UpsertConfiguracionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Formato de entrada inválido.")
	}

	req.Clave = strings.TrimSpace(req.Clave)
	if req.Clave == "" || len(req.Clave) > 100 {
		return helper.JsonError(c, fiber.StatusBadRequest, "La clave es requerida (máximo 100 caracteres).")
	}

	item := model.ConfiguracionModel{
		Clave:       req.Clave,
		Descripcion: strings.TrimSpace(req.Descripcion),
	}
	if err := item.SetValor(req.Valor); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	err := ctrl.Store.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "clave"}},
		DoUpdates: clause.AssignmentColumns([]string{"valor_tipo", "valor", "descripcion", "updated_at"}),
	}).Create(&item).Error
	if err != nil {
		log.Printf("[ERROR] Guardando configuración %s: %v", req.Clave, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error guardando configuración.")
	}

	if err := ctrl.Store.DB.First(&item, "clave = ?", req.Clave).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error cargando configuración guardada.")
	}

	return helper.JsonUpdated(c, "Configuración guardada exitosamente.", dto.ToConfiguracionResponse(&item))
}
