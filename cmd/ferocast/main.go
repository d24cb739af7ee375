package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/MilanKovacevic/FeroCast/app/repository"
	"github.com/MilanKovacevic/FeroCast/internal/pkg/cache"
	"github.com/MilanKovacevic/FeroCast/internal/pkg/database"
	"github.com/MilanKovacevic/FeroCast/internal/pkg/env"
	"github.com/MilanKovacevic/FeroCast/internal/pkg/mediastore"
	"github.com/MilanKovacevic/FeroCast/internal/pkg/router"
)

func main() {
	env.SetupEnvFile()

	db, err := database.Connect(database.ConfigFromEnv())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Printf("closing database pool: %v", err)
		}
	}()

	cache.SetupCache()

	media := mediastore.NewFromEnv()
	app := NewApplication(repository.NewFactory(db), media)

	// Shut down cleanly so the pool is disposed by the deferred Close
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	addr := fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000"))
	if err := app.Listen(addr); err != nil {
		log.Printf("server stopped: %v", err)
	}
}

func NewApplication(factory *repository.Factory, media *mediastore.Store) *fiber.App {
	app := fiber.New(fiber.Config{
		// Headroom for the largest multipart batch: 10 gallery images
		// + 8 documents + hero in one product submission.
		BodyLimit: 160 * 1024 * 1024,
	})

	// recovery and logging; dev runs also surface the debug-level
	// cache fall-through logs
	app.Use(recover.New(), logger.New())
	if env.IsDev() {
		fiberlog.SetLevel(fiberlog.LevelDebug)
	}

	// locally stored uploads are served straight from disk
	if media.UsesLocalDisk() {
		app.Static("/uploads", env.GetEnv("UPLOAD_DIR", "./uploads"), fiber.Static{
			CacheDuration: 10 * time.Second,
			Compress:      false,
			MaxAge:        604800, // 7 days
		})
	}

	// ROUTER
	router.InstallRouter(app, factory, media)

	return app
}
