package configs

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	// Fallback inseguro: solo para que el servidor arranque en desarrollo.
	// En producción JWT_SECRET es obligatorio.
	fallbackJWTSecret = "fallback_secret"

	defaultMaxFileSize = 10 * 1024 * 1024 // 10 MiB por archivo
)

var (
	JWTSecret   string
	MaxFileSize int
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No se encontró archivo .env, usando ENV del sistema")
	} else {
		log.Println("✅ Archivo .env cargado")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	if JWTSecret == "" {
		JWTSecret = fallbackJWTSecret
		log.Println("❌ JWT_SECRET no está definido - usando secreto por defecto (INSEGURO, no usar en producción)")
	} else {
		log.Println("✅ JWT_SECRET cargado.")
	}

	MaxFileSize = defaultMaxFileSize
	if raw := GetEnv("MAX_FILE_SIZE"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			MaxFileSize = n
		} else {
			log.Printf("⚠️ MAX_FILE_SIZE inválido (%q), usando %d", raw, defaultMaxFileSize)
		}
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

// AppEnv devuelve el ambiente de ejecución ("production" | "development").
func AppEnv() string {
	return GetEnv("APP_ENV", "development")
}

func IsProduction() bool {
	return AppEnv() == "production"
}
