package settings

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/mrisho2348/matimbwa-ss-sub000/app/services"
)

// SetupSettingsRoutes sets up grading reference-data routes
func SetupSettingsRoutes(app *fiber.App, db *sql.DB, rec *services.Recomputer) {
	gradesAPI := app.Group("/api/settings/grading-scales")
	gradesAPI.Get("/", func(c *fiber.Ctx) error { return GetGradingScalesAPI(c, db) })
	gradesAPI.Post("/", func(c *fiber.Ctx) error { return CreateGradingScaleAPI(c, db, rec) })
	gradesAPI.Put("/:id", func(c *fiber.Ctx) error { return UpdateGradingScaleAPI(c, db, rec) })
	gradesAPI.Delete("/:id", func(c *fiber.Ctx) error { return DeleteGradingScaleAPI(c, db, rec) })

	divisionsAPI := app.Group("/api/settings/division-scales")
	divisionsAPI.Get("/", func(c *fiber.Ctx) error { return GetDivisionScalesAPI(c, db) })
	divisionsAPI.Post("/", func(c *fiber.Ctx) error { return CreateDivisionScaleAPI(c, db, rec) })
	divisionsAPI.Put("/:id", func(c *fiber.Ctx) error { return UpdateDivisionScaleAPI(c, db, rec) })
	divisionsAPI.Delete("/:id", func(c *fiber.Ctx) error { return DeleteDivisionScaleAPI(c, db, rec) })
}
