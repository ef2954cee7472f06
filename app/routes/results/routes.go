package results

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/mrisho2348/matimbwa-ss-sub000/app/services"
)

// SetupResultsRoutes sets up all results-related routes
func SetupResultsRoutes(app *fiber.App, db *sql.DB, rec *services.Recomputer) {
	api := app.Group("/api/sessions")
	api.Get("/:id/results", func(c *fiber.Ctx) error { return GetSessionResults(c, db) })
	api.Get("/:id/students/:studentID", func(c *fiber.Ctx) error { return GetStudentReport(c, db) })
	api.Post("/:id/results", func(c *fiber.Ctx) error { return BatchSaveResults(c, db, rec) })
	api.Post("/:id/recompute", func(c *fiber.Ctx) error { return RecomputeSession(c, db, rec) })
}
