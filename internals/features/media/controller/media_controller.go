package controller

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"iglesiamqv_backend/internals/constants"
	database "iglesiamqv_backend/internals/databases"
	"iglesiamqv_backend/internals/features/media/dto"
	"iglesiamqv_backend/internals/features/media/model"
	helper "iglesiamqv_backend/internals/helpers"
	"iglesiamqv_backend/internals/helpers/storage"
	authmw "iglesiamqv_backend/internals/middlewares/auth"
)

type MediaController struct {
	Store   *database.Store
	Storage *storage.LocalStorage
}

func NewMediaController(store *database.Store, st *storage.LocalStorage) *MediaController {
	return &MediaController{Store: store, Storage: st}
}

// 🟢 GET /api/ministerios
func (ctrl *MediaController) GetMinisterios(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success":     true,
		"ministerios": constants.Ministerios,
	})
}

// 🟢 GET /api/ministerios/:ministerio?page&limit&tipo (público, paginado)
func (ctrl *MediaController) ListByMinisterio(c *fiber.Ctx) error {
	ministerio := helper.MinisterioParam(c)
	if !constants.IsValidMinisterio(ministerio) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Ministerio no válido.")
	}

	paging := helper.ResolvePaging(c, 12, 100)
	tipo := c.Query("tipo")

	// Página pública en modo degradado: contenido de demostración estático
	// en vez de fallar.
	if !ctrl.Store.Available() {
		return listDemo(c, ministerio, tipo, paging)
	}

	q := ctrl.Store.DB.Model(&model.MediaModel{}).
		Where("ministerio = ? AND activo = ?", ministerio, true)
	if tipo != "" {
		q = q.Where("tipo = ?", tipo)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Printf("[ERROR] Contando medios: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno del servidor.")
	}

	var medios []model.MediaModel
	err := q.
		Preload("SubidoPor", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "username", "ministerio")
		}).
		Order("destacado DESC, fecha_evento DESC").
		Offset(paging.Offset).
		Limit(paging.Limit).
		Find(&medios).Error
	if err != nil {
		log.Printf("[ERROR] Listando medios: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno del servidor.")
	}

	return helper.JsonList(c, fiber.Map{
		"ministerio": ministerio,
		"medios":     dto.ToMediaResponses(medios),
	}, helper.BuildPagination(total, paging.Page, paging.Limit))
}

// 🟢 POST /api/ministerios/:ministerio/upload (auth + gate de ministerio)
// Multipart, campo "archivos", máximo 5. Un registro Media por archivo.
func (ctrl *MediaController) Upload(c *fiber.Ctx) error {
	ministerio := helper.MinisterioParam(c)
	if !constants.IsValidMinisterio(ministerio) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Ministerio no válido.")
	}
	if !ctrl.Store.Available() {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Base de datos no disponible.")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "No se seleccionaron archivos.")
	}

	files := storage.CollectArchivos(form)
	saved, err := ctrl.Storage.SaveAll(files, ministerio)
	if err != nil {
		return uploadError(c, err)
	}

	user := authmw.CurrentUser(c)
	titulo := strings.TrimSpace(c.FormValue("titulo"))
	descripcion := strings.TrimSpace(c.FormValue("descripcion"))
	destacado := c.FormValue("destacado") == "true"

	fechaEvento, okFecha := dto.ParseFecha(c.FormValue("fechaEvento"))

	creados := make([]model.MediaModel, 0, len(saved))
	for _, archivo := range saved {
		// Thumbnail best-effort para fotos; nunca bloquea el alta.
		if strings.HasPrefix(archivo.Mimetype, "image/") {
			if _, terr := storage.MakeWebPThumbnail(archivo.Path, archivo.Mimetype); terr != nil {
				log.Printf("[WARN] Thumbnail falló para %s: %v", archivo.Filename, terr)
			}
		}

		nuevo := model.MediaModel{
			Titulo:      titulo,
			Descripcion: descripcion,
			Archivo: model.Archivo{
				Filename:     archivo.Filename,
				OriginalName: archivo.OriginalName,
				Mimetype:     archivo.Mimetype,
				Size:         archivo.Size,
				Path:         archivo.Path,
			},
			Ministerio:  ministerio,
			SubidoPorID: user.ID,
			Activo:      true,
			Destacado:   destacado,
		}
		if nuevo.Titulo == "" {
			nuevo.Titulo = archivo.OriginalName
		}
		if okFecha {
			nuevo.FechaEvento = fechaEvento
		}

		if err := nuevo.Validate(); err != nil {
			return helper.JsonValidationError(c, err)
		}
		// Los inserts no son un lote transaccional: si este falla, los
		// archivos anteriores quedan persistidos y referenciados.
		if err := ctrl.Store.DB.Create(&nuevo).Error; err != nil {
			log.Printf("[ERROR] Guardando medio %s: %v", archivo.Filename, err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Error subiendo archivos.")
		}
		nuevo.SubidoPor = user
		creados = append(creados, nuevo)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("%d archivo(s) subido(s) exitosamente al ministerio %s.", len(creados), ministerio),
		"data":    dto.ToMediaResponses(creados),
	})
}

// 🟡 PUT /api/ministerios/:ministerio/:mediaId
func (ctrl *MediaController) Update(c *fiber.Ctx) error {
	media, errResp := ctrl.loadMediaForMinisterio(c)
	if errResp != nil {
		return errResp(c)
	}

	user := authmw.CurrentUser(c)
	if !authmw.Can(user, authmw.ResMedios, authmw.ActUpdate, authmw.Target{SubidoPorID: media.SubidoPorID}) {
		return helper.JsonError(c, fiber.StatusForbidden, constants.ErrSinPermisoEditar)
	}

	var req dto.UpdateMediaRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Formato de entrada inválido.")
	}

	updates := map[string]interface{}{}
	if req.Titulo != nil && strings.TrimSpace(*req.Titulo) != "" {
		if len(*req.Titulo) > 200 {
			return helper.JsonError(c, fiber.StatusBadRequest, "El título supera los 200 caracteres.")
		}
		updates["titulo"] = strings.TrimSpace(*req.Titulo)
	}
	if req.Descripcion != nil {
		if len(*req.Descripcion) > 1000 {
			return helper.JsonError(c, fiber.StatusBadRequest, "La descripción supera los 1000 caracteres.")
		}
		updates["descripcion"] = strings.TrimSpace(*req.Descripcion)
	}
	if req.FechaEvento != nil {
		fecha, ok := dto.ParseFecha(*req.FechaEvento)
		if !ok {
			return helper.JsonError(c, fiber.StatusBadRequest, "Fecha de evento inválida.")
		}
		updates["fecha_evento"] = fecha
	}
	if req.Destacado != nil {
		updates["destacado"] = *req.Destacado
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "No hay campos para actualizar.")
	}

	if err := ctrl.Store.DB.Model(media).Updates(updates).Error; err != nil {
		log.Printf("[ERROR] Actualizando medio: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error actualizando archivo.")
	}

	if err := ctrl.Store.DB.
		Preload("SubidoPor", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "username", "ministerio")
		}).
		First(media, "id = ?", media.ID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error cargando archivo actualizado.")
	}

	return helper.JsonUpdated(c, "Archivo actualizado exitosamente.", dto.ToMediaResponse(media))
}

// 🔴 DELETE /api/ministerios/:ministerio/:mediaId
// Borrado lógico + eliminación física best-effort del archivo.
func (ctrl *MediaController) Delete(c *fiber.Ctx) error {
	media, errResp := ctrl.loadMediaForMinisterio(c)
	if errResp != nil {
		return errResp(c)
	}

	user := authmw.CurrentUser(c)
	if !authmw.Can(user, authmw.ResMedios, authmw.ActDelete, authmw.Target{SubidoPorID: media.SubidoPorID}) {
		return helper.JsonError(c, fiber.StatusForbidden, constants.ErrSinPermisoBorrar)
	}

	ctrl.Storage.Remove(media.Archivo.Path)

	if err := ctrl.Store.DB.Model(media).Update("activo", false).Error; err != nil {
		log.Printf("[ERROR] Desactivando medio: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error eliminando archivo.")
	}

	return helper.JsonDeleted(c, "Archivo eliminado exitosamente.")
}

// 🟢 GET /api/ministerios/:ministerio/stats (auth)
func (ctrl *MediaController) Stats(c *fiber.Ctx) error {
	ministerio := helper.MinisterioParam(c)
	if !constants.IsValidMinisterio(ministerio) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Ministerio no válido.")
	}
	if !ctrl.Store.Available() {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Base de datos no disponible.")
	}

	base := func() *gorm.DB {
		return ctrl.Store.DB.Model(&model.MediaModel{}).
			Where("ministerio = ? AND activo = ?", ministerio, true)
	}

	var fotos, videos, destacados int64
	if err := base().Where("tipo = ?", "foto").Count(&fotos).Error; err != nil {
		return statsError(c, err)
	}
	if err := base().Where("tipo = ?", "video").Count(&videos).Error; err != nil {
		return statsError(c, err)
	}
	if err := base().Where("destacado = ?", true).Count(&destacados).Error; err != nil {
		return statsError(c, err)
	}

	return helper.JsonOK(c, "", dto.StatsResponse{
		Ministerio:      ministerio,
		TotalFotos:      fotos,
		TotalVideos:     videos,
		TotalDestacados: destacados,
		Total:           fotos + videos,
	})
}

// loadMediaForMinisterio resuelve el medio de la ruta y verifica que
// pertenezca al ministerio del path (400 por mismatch, independiente del
// chequeo de permisos 403).
func (ctrl *MediaController) loadMediaForMinisterio(c *fiber.Ctx) (*model.MediaModel, func(*fiber.Ctx) error) {
	ministerio := helper.MinisterioParam(c)
	if !ctrl.Store.Available() {
		return nil, func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Base de datos no disponible.")
		}
	}

	media, errResp := ctrl.loadMedia(c)
	if errResp != nil {
		return nil, errResp
	}

	if media.Ministerio != ministerio {
		return nil, func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusBadRequest, "El archivo no pertenece a este ministerio.")
		}
	}

	return media, nil
}

func (ctrl *MediaController) loadMedia(c *fiber.Ctx) (*model.MediaModel, func(*fiber.Ctx) error) {
	id, err := uuid.Parse(c.Params("mediaId"))
	if err != nil {
		return nil, func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusNotFound, "Archivo no encontrado.")
		}
	}

	var media model.MediaModel
	if err := ctrl.Store.DB.First(&media, "id = ?", id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[ERROR] Cargando medio: %v", err)
		}
		return nil, func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusNotFound, "Archivo no encontrado.")
		}
	}

	return &media, nil
}

func uploadError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, storage.ErrSinArchivos):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, storage.ErrTipoNoPermitido):
		return helper.JsonErrorCode(c, fiber.StatusBadRequest, "UPLOAD_TYPE_NOT_ALLOWED", err.Error())
	case errors.Is(err, storage.ErrArchivoGrande):
		return helper.JsonErrorCode(c, fiber.StatusBadRequest, "UPLOAD_FILE_TOO_LARGE", err.Error())
	case errors.Is(err, storage.ErrMuchosArchivos):
		return helper.JsonErrorCode(c, fiber.StatusBadRequest, "UPLOAD_TOO_MANY_FILES", err.Error())
	default:
		log.Printf("[ERROR] Upload: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error subiendo archivos.")
	}
}

func statsError(c *fiber.Ctx, err error) error {
	log.Printf("[ERROR] Estadísticas: %v", err)
	return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno del servidor.")
}
