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

	"attendance_backend/internals/configs"
	database "attendance_backend/internals/databases"
	scheduler "attendance_backend/internals/features/users/auth/scheduler"
	helper "attendance_backend/internals/helpers"
	middlewares "attendance_backend/internals/middlewares"
	routes "attendance_backend/internals/route"
	"attendance_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()
	cfg := configs.Load()

	app := fiber.New(fiber.Config{
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ErrorHandler:          helper.FromFiberError,
		ProxyHeader:           fiber.HeaderXForwardedFor,
		BodyLimit:             8 * 1024 * 1024, // bulk mark & import siswa
	})

	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// Request-ID + timeout guard (selaras dengan statement_timeout di DB)
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUIDv4()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)

		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	})

	middlewares.SetupMiddlewares(app, cfg)

	// DB connect + pool + warm-up
	db := database.ConnectDB(cfg)
	database.TunePool(db)
	database.WarmUpQueries(db)

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("[ERROR] AutoMigrate gagal: %v", err)
	}
	if err := seeds.RunAllSeeds(db, cfg); err != nil {
		log.Fatalf("[ERROR] Seed gagal: %v", err)
	}

	// scheduler setelah DB siap
	cleanup, err := scheduler.StartBlacklistCleanupScheduler(db, cfg.BlacklistCleanupCron)
	if err != nil {
		log.Fatalf("[ERROR] Jadwal cleanup tidak valid: %v", err)
	}

	routes.SetupRoutes(app, db, cfg)

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	go func() {
		log.Printf("[INFO] Listening on :%s", cfg.Port)
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown: stop cron, server, lalu pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	<-cleanup.Stop().Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
