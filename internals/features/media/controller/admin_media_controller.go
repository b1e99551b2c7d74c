package controller

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"iglesiamqv_backend/internals/constants"
	"iglesiamqv_backend/internals/features/media/dto"
	"iglesiamqv_backend/internals/features/media/model"
	helper "iglesiamqv_backend/internals/helpers"
	authmw "iglesiamqv_backend/internals/middlewares/auth"
	"gorm.io/gorm"
)

// 🟢 GET /admin/medios?ministerio&tipo&page&limit
// Un usuario de ministerio solo ve su propio ministerio, sin importar los
// filtros que mande; el admin filtra libremente.
func (ctrl *MediaController) AdminList(c *fiber.Ctx) error {
	if !ctrl.Store.Available() {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Base de datos no disponible.")
	}

	user := authmw.CurrentUser(c)
	paging := helper.ResolvePaging(c, 12, 100)

	q := ctrl.Store.DB.Model(&model.MediaModel{}).Where("activo = ?", true)

	if user.IsAdmin() {
		if m := c.Query("ministerio"); m != "" {
			q = q.Where("ministerio = ?", m)
		}
	} else {
		q = q.Where("ministerio = ?", user.Ministerio)
	}
	if tipo := c.Query("tipo"); tipo != "" {
		q = q.Where("tipo = ?", tipo)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Printf("[ERROR] Contando medios (panel): %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno del servidor.")
	}

	var medios []model.MediaModel
	err := q.
		Preload("SubidoPor", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "username", "ministerio")
		}).
		Order("created_at DESC").
		Offset(paging.Offset).
		Limit(paging.Limit).
		Find(&medios).Error
	if err != nil {
		log.Printf("[ERROR] Listando medios (panel): %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno del servidor.")
	}

	return helper.JsonList(c, fiber.Map{
		"medios": dto.ToMediaResponses(medios),
	}, helper.BuildPagination(total, paging.Page, paging.Limit))
}

// 🟢 POST /admin/medios — subida desde el panel. El ministerio destino viene
// en el form; aplica la misma regla que la ruta pública (admin o propio
// ministerio).
func (ctrl *MediaController) AdminUpload(c *fiber.Ctx) error {
	ministerio := strings.TrimSpace(c.FormValue("ministerio"))
	if !constants.IsValidMinisterio(ministerio) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Ministerio no válido.")
	}

	user := authmw.CurrentUser(c)
	if !authmw.Can(user, authmw.ResMedios, authmw.ActCreate, authmw.Target{Ministerio: ministerio}) {
		return helper.JsonError(c, fiber.StatusForbidden, constants.ErrMinisterioAjeno)
	}

	return ctrl.Upload(c)
}

// 🔴 DELETE /admin/medios/:mediaId — borrado desde el panel, misma regla
// admin-o-uploader que la ruta pública.
func (ctrl *MediaController) AdminDelete(c *fiber.Ctx) error {
	if !ctrl.Store.Available() {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Base de datos no disponible.")
	}

	media, errResp := ctrl.loadMedia(c)
	if errResp != nil {
		return errResp(c)
	}

	user := authmw.CurrentUser(c)
	if !authmw.Can(user, authmw.ResMedios, authmw.ActDelete, authmw.Target{SubidoPorID: media.SubidoPorID}) {
		return helper.JsonError(c, fiber.StatusForbidden, constants.ErrSinPermisoBorrar)
	}

	ctrl.Storage.Remove(media.Archivo.Path)

	if err := ctrl.Store.DB.Model(media).Update("activo", false).Error; err != nil {
		log.Printf("[ERROR] Desactivando medio (panel): %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error eliminando archivo.")
	}

	return helper.JsonDeleted(c, "Archivo eliminado exitosamente.")
}
