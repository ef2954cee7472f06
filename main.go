package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/mrisho2348/matimbwa-ss-sub000/app/config"
	"github.com/mrisho2348/matimbwa-ss-sub000/app/database"
	"github.com/mrisho2348/matimbwa-ss-sub000/app/events"
	"github.com/mrisho2348/matimbwa-ss-sub000/app/routes/results"
	"github.com/mrisho2348/matimbwa-ss-sub000/app/routes/sessions"
	"github.com/mrisho2348/matimbwa-ss-sub000/app/routes/settings"
	"github.com/mrisho2348/matimbwa-ss-sub000/app/services"
)

// customErrorHandler keeps API error responses uniform
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"code":    code,
	})
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	db, err := config.OpenDB(cfg)
	if err != nil {
		log.Fatal("Cannot establish database connection:", err)
	}
	defer db.Close()

	// Run database migrations
	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}
	if err := database.SeedReferenceData(db); err != nil {
		log.Fatal("Failed to seed reference data:", err)
	}

	// Change bus and recompute orchestrator
	bus := events.NewBus()
	defer bus.Close()
	rec := services.NewRecomputer(services.NewStore(db), bus, cfg.RecomputeDebounce, cfg.RecomputeMaxCoalesce)
	rec.Start(context.Background())

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Routes
	sessions.SetupSessionsRoutes(app, db)
	results.SetupResultsRoutes(app, db, rec)
	settings.SetupSettingsRoutes(app, db, rec)

	log.Printf("Results engine listening on :%d", cfg.HTTPPort)
	log.Fatal(app.Listen(fmt.Sprintf(":%d", cfg.HTTPPort)))
}
