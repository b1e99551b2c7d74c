package controller_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iglesiamqv_backend/internals/constants"
	database "iglesiamqv_backend/internals/databases"
	"iglesiamqv_backend/internals/features/config/controller"
	"iglesiamqv_backend/internals/features/config/model"
	authmw "iglesiamqv_backend/internals/middlewares/auth"
	"iglesiamqv_backend/internals/testutil"
)

func newConfigApp(t *testing.T) (*fiber.App, *database.Store, string) {
	t.Helper()
	store := testutil.OpenStore(t)
	admin := testutil.CreateAdmin(t, store)

	app := fiber.New()
	ctrl := controller.NewConfiguracionController(store)
	grp := app.Group("/admin/configuracion", authmw.AuthMiddleware(store), authmw.AdminOnly())
	grp.Get("/", ctrl.List)
	grp.Get("/:clave", ctrl.Get)
	grp.Put("/", ctrl.Upsert)

	return app, store, testutil.TokenFor(t, admin)
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, token string) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func readBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

// Cada upsert etiqueta el valor con su tipo y lo devuelve intacto.
func TestUpsertTiposDeValor(t *testing.T) {
	app, _, token := newConfigApp(t)

	casos := []struct {
		clave    string
		valor    any
		tipoEsp  string
		valorEsp any
	}{
		{"sitio_nombre", "Iglesia MQV", "string", "Iglesia MQV"},
		{"max_destacados", float64(6), "number", float64(6)},
		{"galeria_publica", true, "boolean", true},
		{"redes", map[string]any{"facebook": "mqv"}, "object", map[string]any{"facebook": "mqv"}},
	}

	for _, caso := range casos {
		resp := doJSON(t, app, fiber.MethodPut, "/admin/configuracion/", fiber.Map{
			"clave": caso.clave,
			"valor": caso.valor,
		}, token)
		require.Equal(t, fiber.StatusOK, resp.StatusCode, caso.clave)

		data := readBody(t, resp)["data"].(map[string]any)
		assert.Equal(t, caso.tipoEsp, data["valorTipo"], caso.clave)
		assert.Equal(t, caso.valorEsp, data["valor"], caso.clave)
	}
}

// El upsert sobre una clave existente actualiza en lugar de duplicar.
func TestUpsertSobreescribe(t *testing.T) {
	app, store, token := newConfigApp(t)

	for _, valor := range []any{"v1", "v2"} {
		resp := doJSON(t, app, fiber.MethodPut, "/admin/configuracion/", fiber.Map{
			"clave": "lema",
			"valor": valor,
		}, token)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	var total int64
	require.NoError(t, store.DB.Model(&model.ConfiguracionModel{}).Count(&total).Error)
	assert.EqualValues(t, 1, total)

	resp := doJSON(t, app, fiber.MethodGet, "/admin/configuracion/lema", nil, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := readBody(t, resp)["data"].(map[string]any)
	assert.Equal(t, "v2", data["valor"])
}

func TestUpsertValidaciones(t *testing.T) {
	app, _, token := newConfigApp(t)

	// clave vacía
	resp := doJSON(t, app, fiber.MethodPut, "/admin/configuracion/", fiber.Map{
		"clave": "  ",
		"valor": "x",
	}, token)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// valor nulo
	resp = doJSON(t, app, fiber.MethodPut, "/admin/configuracion/", fiber.Map{
		"clave": "algo",
	}, token)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestConfiguracionNoEncontrada(t *testing.T) {
	app, _, token := newConfigApp(t)
	resp := doJSON(t, app, fiber.MethodGet, "/admin/configuracion/no_existe", nil, token)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestConfiguracionSoloAdmin(t *testing.T) {
	app, store, _ := newConfigApp(t)
	comun := testutil.CreateUser(t, store, "comun", "clave123", constants.RoleMinisterio, "Jóvenes")

	resp := doJSON(t, app, fiber.MethodGet, "/admin/configuracion/", nil, testutil.TokenFor(t, comun))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
