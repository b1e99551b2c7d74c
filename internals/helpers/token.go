// file: internals/helpers/token.go
package helper

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"iglesiamqv_backend/internals/configs"
)

const TokenCookieName = "token"

// Duraciones de sesión
const (
	TokenTTL     = 7 * 24 * time.Hour // login normal por API
	DemoTokenTTL = 24 * time.Hour     // fallback del panel admin en modo demostración
)

// GetRawToken devuelve el token en este orden de prioridad:
// 1) Authorization: Bearer <token>
// 2) cookie "token"
func GetRawToken(c *fiber.Ctx) string {
	const p = "Bearer "
	if auth := c.Get("Authorization"); strings.HasPrefix(auth, p) {
		if v := strings.TrimSpace(auth[len(p):]); v != "" {
			return v
		}
	}
	return strings.TrimSpace(c.Cookies(TokenCookieName))
}

// CreateToken firma un JWT HS256 con el claim user_id.
func CreateToken(userID string, ttl time.Duration) (string, error) {
	return CreateTokenWithClaims(userID, nil, ttl)
}

// CreateTokenWithClaims permite claims adicionales (token de demostración).
func CreateTokenWithClaims(userID string, extra map[string]any, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(ttl).Unix(),
	}
	for k, v := range extra {
		claims[k] = v
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(configs.JWTSecret))
}

// ParseToken verifica firma y expiración, y devuelve los claims.
func ParseToken(raw string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(configs.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, errors.New("token inválido")
	}
	return claims, nil
}

// SetTokenCookie emite la cookie httpOnly; `secure` solo fuera de desarrollo.
func SetTokenCookie(c *fiber.Ctx, token string, ttl time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     TokenCookieName,
		Value:    token,
		HTTPOnly: true,
		Secure:   configs.IsProduction(),
		SameSite: "Lax",
		Path:     "/",
		Expires:  time.Now().Add(ttl),
	})
}

func ClearTokenCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     TokenCookieName,
		Value:    "",
		HTTPOnly: true,
		Secure:   configs.IsProduction(),
		SameSite: "Lax",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
	})
}
