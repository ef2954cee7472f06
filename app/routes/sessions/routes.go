package sessions

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
)

// SetupSessionsRoutes sets up exam session management routes
func SetupSessionsRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/sessions")
	api.Get("/", func(c *fiber.Ctx) error { return ListSessions(c, db) })
	api.Post("/", func(c *fiber.Ctx) error { return CreateSession(c, db) })
	api.Get("/:id", func(c *fiber.Ctx) error { return GetSession(c, db) })
	api.Post("/:id/state", func(c *fiber.Ctx) error { return TransitionSession(c, db) })
}
