package routes_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	database "iglesiamqv_backend/internals/databases"
	routes "iglesiamqv_backend/internals/route"
	"iglesiamqv_backend/internals/testutil"
)

func getJSON(t *testing.T, app *fiber.App, path string) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil), -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

// El health responde 200 incluso sin base de datos; el estado real va en el
// cuerpo.
func TestHealthSinBase(t *testing.T) {
	app := fiber.New()
	routes.SetupRoutes(app, database.NewStore(nil))

	status, body := getJSON(t, app, "/health")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "OK", body["message"])
	assert.Equal(t, "disconnected", body["database"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestHealthConBase(t *testing.T) {
	app := fiber.New()
	routes.SetupRoutes(app, testutil.OpenStore(t))

	status, body := getJSON(t, app, "/health")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "connected", body["database"])
}

func TestRutaNoEncontrada(t *testing.T) {
	app := fiber.New()
	routes.SetupRoutes(app, database.NewStore(nil))

	status, body := getJSON(t, app, "/api/no-existe")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "NOT_FOUND", body["error_code"])
}
