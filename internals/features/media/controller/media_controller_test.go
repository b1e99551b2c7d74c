package controller_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iglesiamqv_backend/internals/constants"
	database "iglesiamqv_backend/internals/databases"
	"iglesiamqv_backend/internals/features/media/model"
	userModel "iglesiamqv_backend/internals/features/users/user/model"
	"iglesiamqv_backend/internals/helpers/storage"
	routeDetails "iglesiamqv_backend/internals/route/details"
	"iglesiamqv_backend/internals/testutil"
)

type mediaEnv struct {
	app     *fiber.App
	store   *database.Store
	baseDir string
}

func newMediaEnv(t *testing.T) mediaEnv {
	t.Helper()
	store := testutil.OpenStore(t)
	dir := t.TempDir()

	app := fiber.New()
	st := storage.NewLocalStorage(dir, 10*1024*1024)
	routeDetails.MinisterioRoutes(app, store, st)
	routeDetails.AdminRoutes(app, store, st)

	return mediaEnv{app: app, store: store, baseDir: dir}
}

func (e mediaEnv) get(t *testing.T, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (e mediaEnv) jsonReq(t *testing.T, method, path string, body any, token string) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

type archivoUpload struct {
	filename, mimetype, contenido string
}

func (e mediaEnv) upload(t *testing.T, path, token string, campos map[string]string, archivos []archivoUpload) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range campos {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, a := range archivos {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="archivos"; filename=%q`, a.filename))
		h.Set("Content-Type", a.mimetype)
		pw, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = pw.Write([]byte(a.contenido))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(fiber.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func parseBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func rutaMinisterio(ministerio, resto string) string {
	return "/api/ministerios/" + url.PathEscape(ministerio) + resto
}

// seedMedia inserta un medio directamente en la base.
func seedMedia(t *testing.T, store *database.Store, owner *userModel.UserModel, ministerio, titulo, mimetype string, destacado bool, fecha time.Time) *model.MediaModel {
	t.Helper()
	m := &model.MediaModel{
		Titulo: titulo,
		Archivo: model.Archivo{
			Filename:     titulo + ".bin",
			OriginalName: titulo + ".bin",
			Mimetype:     mimetype,
			Size:         10,
			Path:         "uploads/test/" + titulo + ".bin",
		},
		Ministerio:  ministerio,
		SubidoPorID: owner.ID,
		Activo:      true,
		Destacado:   destacado,
		FechaEvento: fecha,
	}
	require.NoError(t, store.DB.Create(m).Error)
	return m
}

func TestGetMinisterios(t *testing.T) {
	e := newMediaEnv(t)

	resp := e.get(t, "/api/ministerios/", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := parseBody(t, resp)
	lista := body["ministerios"].([]any)
	require.Len(t, lista, 9)
	assert.Contains(t, lista, "Jóvenes")
	assert.Contains(t, lista, "Adoración y Música")
	// Administración es interno, nunca se publica
	assert.NotContains(t, lista, constants.MinisterioAdministracion)
}

func TestListaMinisterioInvalido(t *testing.T) {
	e := newMediaEnv(t)
	resp := e.get(t, "/api/ministerios/Inexistente", "")
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body := parseBody(t, resp)
	assert.Equal(t, "Ministerio no válido.", body["message"])
}

// Flujo completo: crear usuaria, subir una foto a su ministerio y verla en
// la galería pública con tipo derivado y uploader poblado.
func TestSubirYListar(t *testing.T) {
	e := newMediaEnv(t)
	alice := testutil.CreateUser(t, e.store, "alice", "clave123", constants.RoleMinisterio, "Niños")

	resp := e.upload(t, rutaMinisterio("Niños", "/upload"), testutil.TokenFor(t, alice),
		map[string]string{"titulo": "Clase de domingo", "destacado": "false"},
		[]archivoUpload{{"clase.jpg", "image/jpeg", "fotodata"}},
	)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := parseBody(t, resp)
	assert.Equal(t, true, body["success"])
	subidos := body["data"].([]any)
	require.Len(t, subidos, 1)

	// galería pública, sin token
	resp = e.get(t, rutaMinisterio("Niños", ""), "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := parseBody(t, resp)["data"].(map[string]any)
	assert.Equal(t, "Niños", data["ministerio"])
	medios := data["medios"].([]any)
	require.Len(t, medios, 1)

	medio := medios[0].(map[string]any)
	assert.Equal(t, "Clase de domingo", medio["titulo"])
	assert.Equal(t, "foto", medio["tipo"])
	subidoPor := medio["subidoPor"].(map[string]any)
	assert.Equal(t, "alice", subidoPor["username"])

	// el archivo quedó en disco bajo el slug del ministerio
	archivo := medio["archivo"].(map[string]any)
	_, err := os.Stat(archivo["path"].(string))
	assert.NoError(t, err)
}

func TestSubirAMinisterioAjeno(t *testing.T) {
	e := newMediaEnv(t)
	bruno := testutil.CreateUser(t, e.store, "bruno", "clave123", constants.RoleMinisterio, "Jóvenes")

	resp := e.upload(t, rutaMinisterio("Niños", "/upload"), testutil.TokenFor(t, bruno),
		nil, []archivoUpload{{"x.jpg", "image/jpeg", "x"}})
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// el admin sí puede subir a cualquier ministerio
	admin := testutil.CreateAdmin(t, e.store)
	resp = e.upload(t, rutaMinisterio("Niños", "/upload"), testutil.TokenFor(t, admin),
		nil, []archivoUpload{{"x.jpg", "image/jpeg", "x"}})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSubirSinToken(t *testing.T) {
	e := newMediaEnv(t)
	resp := e.upload(t, rutaMinisterio("Jóvenes", "/upload"), "",
		nil, []archivoUpload{{"x.jpg", "image/jpeg", "x"}})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestSubirTipoNoPermitido(t *testing.T) {
	e := newMediaEnv(t)
	alice := testutil.CreateUser(t, e.store, "alice", "clave123", constants.RoleMinisterio, "Niños")

	resp := e.upload(t, rutaMinisterio("Niños", "/upload"), testutil.TokenFor(t, alice),
		nil, []archivoUpload{{"doc.pdf", "application/pdf", "pdfdata"}})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body := parseBody(t, resp)
	assert.Equal(t, "UPLOAD_TYPE_NOT_ALLOWED", body["error_code"])

	var total int64
	require.NoError(t, e.store.DB.Model(&model.MediaModel{}).Count(&total).Error)
	assert.Zero(t, total)
}

func TestSubirSinArchivos(t *testing.T) {
	e := newMediaEnv(t)
	alice := testutil.CreateUser(t, e.store, "alice", "clave123", constants.RoleMinisterio, "Niños")

	resp := e.upload(t, rutaMinisterio("Niños", "/upload"), testutil.TokenFor(t, alice),
		map[string]string{"titulo": "sin nada"}, nil)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body := parseBody(t, resp)
	assert.Equal(t, "No se seleccionaron archivos.", body["message"])
}

// 13 elementos con límite 12: la página 1 trae 12 con hasNext, la 2 trae el
// restante sin hasNext.
func TestPaginacion(t *testing.T) {
	e := newMediaEnv(t)
	owner := testutil.CreateUser(t, e.store, "pagi", "clave123", constants.RoleMinisterio, "Jóvenes")
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 13; i++ {
		seedMedia(t, e.store, owner, "Jóvenes", fmt.Sprintf("foto-%02d", i), "image/jpeg", false, base.Add(time.Duration(i)*time.Hour))
	}

	resp := e.get(t, rutaMinisterio("Jóvenes", ""), "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := parseBody(t, resp)["data"].(map[string]any)
	assert.Len(t, data["medios"].([]any), 12)

	pag := data["pagination"].(map[string]any)
	assert.EqualValues(t, 1, pag["currentPage"])
	assert.EqualValues(t, 2, pag["totalPages"])
	assert.EqualValues(t, 13, pag["totalItems"])
	assert.Equal(t, true, pag["hasNext"])
	assert.Equal(t, false, pag["hasPrev"])

	resp = e.get(t, rutaMinisterio("Jóvenes", "?page=2"), "")
	data = parseBody(t, resp)["data"].(map[string]any)
	assert.Len(t, data["medios"].([]any), 1)
	pag = data["pagination"].(map[string]any)
	assert.Equal(t, false, pag["hasNext"])
	assert.Equal(t, true, pag["hasPrev"])
}

func TestOrdenDestacadosPrimero(t *testing.T) {
	e := newMediaEnv(t)
	owner := testutil.CreateUser(t, e.store, "orden", "clave123", constants.RoleMinisterio, "Misiones")
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	seedMedia(t, e.store, owner, "Misiones", "reciente", "image/jpeg", false, base.AddDate(0, 6, 0))
	seedMedia(t, e.store, owner, "Misiones", "vieja-destacada", "image/jpeg", true, base)
	seedMedia(t, e.store, owner, "Misiones", "intermedia", "image/jpeg", false, base.AddDate(0, 3, 0))

	resp := e.get(t, rutaMinisterio("Misiones", ""), "")
	data := parseBody(t, resp)["data"].(map[string]any)
	medios := data["medios"].([]any)
	require.Len(t, medios, 3)

	titulos := make([]string, 0, 3)
	for _, m := range medios {
		titulos = append(titulos, m.(map[string]any)["titulo"].(string))
	}
	assert.Equal(t, []string{"vieja-destacada", "reciente", "intermedia"}, titulos)
}

func TestFiltroPorTipo(t *testing.T) {
	e := newMediaEnv(t)
	owner := testutil.CreateUser(t, e.store, "tipos", "clave123", constants.RoleMinisterio, "Hombres")
	seedMedia(t, e.store, owner, "Hombres", "una-foto", "image/png", false, time.Now())
	seedMedia(t, e.store, owner, "Hombres", "un-video", "video/mp4", false, time.Now())

	resp := e.get(t, rutaMinisterio("Hombres", "?tipo=video"), "")
	data := parseBody(t, resp)["data"].(map[string]any)
	medios := data["medios"].([]any)
	require.Len(t, medios, 1)
	assert.Equal(t, "un-video", medios[0].(map[string]any)["titulo"])
}

func TestActualizarMedio(t *testing.T) {
	e := newMediaEnv(t)
	alice := testutil.CreateUser(t, e.store, "alice", "clave123", constants.RoleMinisterio, "Niños")
	carla := testutil.CreateUser(t, e.store, "carla", "clave123", constants.RoleMinisterio, "Niños")
	m := seedMedia(t, e.store, alice, "Niños", "original", "image/jpeg", false, time.Now())

	ruta := rutaMinisterio("Niños", "/"+m.ID.String())

	// otra usuaria del mismo ministerio no puede editar lo ajeno
	resp := e.jsonReq(t, fiber.MethodPut, ruta, fiber.Map{"titulo": "hackeada"}, testutil.TokenFor(t, carla))
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// quien lo subió sí
	resp = e.jsonReq(t, fiber.MethodPut, ruta, fiber.Map{"titulo": "editada", "destacado": true}, testutil.TokenFor(t, alice))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var releido model.MediaModel
	require.NoError(t, e.store.DB.First(&releido, "id = ?", m.ID).Error)
	assert.Equal(t, "editada", releido.Titulo)
	assert.True(t, releido.Destacado)

	// ministerio equivocado en la ruta: 400, no 404 ni 403
	resp = e.jsonReq(t, fiber.MethodPut, rutaMinisterio("Jóvenes", "/"+m.ID.String()),
		fiber.Map{"titulo": "x"}, testutil.TokenFor(t, alice))
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body := parseBody(t, resp)
	assert.Equal(t, "El archivo no pertenece a este ministerio.", body["message"])

	// id inexistente: 404
	resp = e.jsonReq(t, fiber.MethodPut, rutaMinisterio("Niños", "/no-es-uuid"),
		fiber.Map{"titulo": "x"}, testutil.TokenFor(t, alice))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

// El borrado es lógico: la fila queda con activo=false, desaparece de la
// galería y el archivo físico se elimina.
func TestEliminarMedio(t *testing.T) {
	e := newMediaEnv(t)
	alice := testutil.CreateUser(t, e.store, "alice", "clave123", constants.RoleMinisterio, "Niños")

	resp := e.upload(t, rutaMinisterio("Niños", "/upload"), testutil.TokenFor(t, alice),
		nil, []archivoUpload{{"borrable.jpg", "image/jpeg", "x"}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var m model.MediaModel
	require.NoError(t, e.store.DB.First(&m).Error)
	_, err := os.Stat(m.Archivo.Path)
	require.NoError(t, err)

	resp = e.jsonReq(t, fiber.MethodDelete, rutaMinisterio("Niños", "/"+m.ID.String()), fiber.Map{}, testutil.TokenFor(t, alice))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// fila intacta pero inactiva
	var releido model.MediaModel
	require.NoError(t, e.store.DB.First(&releido, "id = ?", m.ID).Error)
	assert.False(t, releido.Activo)

	// archivo físico eliminado
	_, err = os.Stat(m.Archivo.Path)
	assert.True(t, os.IsNotExist(err))

	// fuera de la galería pública
	resp = e.get(t, rutaMinisterio("Niños", ""), "")
	data := parseBody(t, resp)["data"].(map[string]any)
	assert.Empty(t, data["medios"].([]any))
}

func TestEliminarMedioAjeno(t *testing.T) {
	e := newMediaEnv(t)
	alice := testutil.CreateUser(t, e.store, "alice", "clave123", constants.RoleMinisterio, "Niños")
	carla := testutil.CreateUser(t, e.store, "carla", "clave123", constants.RoleMinisterio, "Niños")
	m := seedMedia(t, e.store, alice, "Niños", "ajena", "image/jpeg", false, time.Now())

	resp := e.jsonReq(t, fiber.MethodDelete, rutaMinisterio("Niños", "/"+m.ID.String()), fiber.Map{}, testutil.TokenFor(t, carla))
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// el admin siempre puede
	admin := testutil.CreateAdmin(t, e.store)
	resp = e.jsonReq(t, fiber.MethodDelete, rutaMinisterio("Niños", "/"+m.ID.String()), fiber.Map{}, testutil.TokenFor(t, admin))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestStats(t *testing.T) {
	e := newMediaEnv(t)
	owner := testutil.CreateUser(t, e.store, "stats", "clave123", constants.RoleMinisterio, "Evangelismo")
	seedMedia(t, e.store, owner, "Evangelismo", "f1", "image/jpeg", true, time.Now())
	seedMedia(t, e.store, owner, "Evangelismo", "f2", "image/png", false, time.Now())
	seedMedia(t, e.store, owner, "Evangelismo", "v1", "video/mp4", false, time.Now())
	// otro ministerio no cuenta
	seedMedia(t, e.store, owner, "Jóvenes", "fx", "image/jpeg", false, time.Now())

	resp := e.get(t, rutaMinisterio("Evangelismo", "/stats"), testutil.TokenFor(t, owner))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := parseBody(t, resp)["data"].(map[string]any)
	assert.EqualValues(t, 2, data["totalFotos"])
	assert.EqualValues(t, 1, data["totalVideos"])
	assert.EqualValues(t, 1, data["totalDestacados"])
	assert.EqualValues(t, 3, data["total"])

	// sin token: 401
	resp = e.get(t, rutaMinisterio("Evangelismo", "/stats"), "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

// Con la base caída, la galería pública responde contenido de demostración
// en vez de un error.
func TestListaModoDemostracion(t *testing.T) {
	app := fiber.New()
	st := storage.NewLocalStorage(t.TempDir(), 10*1024*1024)
	routeDetails.MinisterioRoutes(app, database.NewStore(nil), st)

	req := httptest.NewRequest(fiber.MethodGet, rutaMinisterio("Jóvenes", ""), nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := parseBody(t, resp)["data"].(map[string]any)
	assert.Equal(t, true, data["demo"])
	medios := data["medios"].([]any)
	require.NotEmpty(t, medios)
	for _, m := range medios {
		assert.Equal(t, "Jóvenes", m.(map[string]any)["ministerio"])
	}
}

// El listado del panel acota implícitamente a los usuarios de ministerio:
// un miembro de Jóvenes recibe solo Jóvenes aunque filtre por otro.
func TestPanelAlcanceImplicito(t *testing.T) {
	e := newMediaEnv(t)
	bruno := testutil.CreateUser(t, e.store, "bruno", "clave123", constants.RoleMinisterio, "Jóvenes")
	admin := testutil.CreateAdmin(t, e.store)
	seedMedia(t, e.store, bruno, "Jóvenes", "propia", "image/jpeg", false, time.Now())
	seedMedia(t, e.store, admin, "Niños", "ajena", "image/jpeg", false, time.Now())

	resp := e.get(t, "/admin/medios?ministerio="+url.QueryEscape("Niños"), testutil.TokenFor(t, bruno))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := parseBody(t, resp)["data"].(map[string]any)
	medios := data["medios"].([]any)
	require.Len(t, medios, 1)
	assert.Equal(t, "propia", medios[0].(map[string]any)["titulo"])

	// el admin ve lo que pida
	resp = e.get(t, "/admin/medios?ministerio="+url.QueryEscape("Niños"), testutil.TokenFor(t, admin))
	data = parseBody(t, resp)["data"].(map[string]any)
	medios = data["medios"].([]any)
	require.Len(t, medios, 1)
	assert.Equal(t, "ajena", medios[0].(map[string]any)["titulo"])
}
