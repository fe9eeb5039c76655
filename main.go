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

	"sei_backend/internals/cache"
	"sei_backend/internals/configs"
	database "sei_backend/internals/databases"
	scheduler "sei_backend/internals/features/users/auth/scheduler"
	helper "sei_backend/internals/helpers"
	middlewares "sei_backend/internals/middlewares"
	routes "sei_backend/internals/route"
	"sei_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		ErrorHandler:            helper.ErrorHandler,
		DisableStartupMessage:   true,
		BodyLimit:               configs.GetIntEnv("IMAGE_MAX_UPLOAD_BYTES", 5<<20) + 1<<20,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	app.Use(middlewares.RequestID(5 * time.Second))
	middlewares.SetupMiddlewares(app)

	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()

	if configs.GetBoolEnv("DB_AUTO_MIGRATE", true) {
		if err := database.Migrate(database.DB); err != nil {
			log.Fatalf("[ERROR] migrate: %v", err)
		}
	}
	if configs.GetBoolEnv("SEED", false) {
		if err := seeds.RunAllSeeds(database.DB); err != nil {
			log.Fatalf("[ERROR] seed: %v", err)
		}
	}

	bg, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	statsCache := cache.New(bg)
	defer statsCache.Close()

	scheduler.StartBlacklistCleanupScheduler(bg, database.DB)

	routes.SetupRoutes(app, database.DB, statsCache)

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := configs.GetEnv("PORT", "3000")

	go func() {
		log.Printf("[INFO] Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("[ERROR] server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("[INFO] shutting down...")

	stopBackground()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
