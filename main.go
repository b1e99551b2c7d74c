package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/utils"

	"iglesiamqv_backend/internals/configs"
	database "iglesiamqv_backend/internals/databases"
	middlewares "iglesiamqv_backend/internals/middlewares"
	routes "iglesiamqv_backend/internals/route"
	seeds "iglesiamqv_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
		BodyLimit:               configs.MaxFileSize * 6, // 5 archivos + margen para los campos del form
	})

	// middleware base + rendimiento
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// Request-ID + timing
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		ctx, cancel := context.WithTimeout(c.Context(), 30*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		err := c.Next()
		dur := time.Since(start)
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), dur)
		return err
	})

	middlewares.SetupMiddlewares(app)

	// Conexión a la base de datos. Si falla, el servidor arranca igual en
	// modo demostración: el panel admin queda accesible con admin/admin123.
	store := database.Connect()
	if store.Available() {
		database.TunePool(store)
		if err := database.Migrate(store); err != nil {
			log.Printf("[ERROR] Migración falló: %v", err)
		}
		seeds.RunAllSeeds(store)
	} else {
		log.Println("⚠️  Base de datos no disponible - Modo demostración activo")
	}

	// Archivos estáticos: exentos de rate limiting (ver middlewares)
	app.Static("/public", "./public")
	app.Static("/uploads", "./uploads")

	routes.SetupRoutes(app, store)

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 60 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	go func() {
		log.Printf("🚀 Servidor corriendo en puerto :%s (env=%s)", port, configs.AppEnv())
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	store.Close()
}
