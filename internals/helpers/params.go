package helper

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
)

// MinisterioParam resuelve el ministerio del path (URL-decodificado) o, si
// no viene en la ruta, del form (ruta de upload del panel).
func MinisterioParam(c *fiber.Ctx) string {
	raw := c.Params("ministerio")
	if raw == "" {
		return c.FormValue("ministerio")
	}
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}
