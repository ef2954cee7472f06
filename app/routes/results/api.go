package results

import (
	"database/sql"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"github.com/mrisho2348/matimbwa-ss-sub000/app/database"
	"github.com/mrisho2348/matimbwa-ss-sub000/app/models"
	"github.com/mrisho2348/matimbwa-ss-sub000/app/services"
)

var validate = validator.New()

// GetSessionResults returns the full projection for every student in a
// published session.
func GetSessionResults(c *fiber.Ctx, db *sql.DB) error {
	sessionID := c.Params("id")

	sess, err := database.GetExamSession(c.Context(), db, sessionID)
	if err != nil {
		if errors.Is(err, database.ErrSessionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Session not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch session",
		})
	}
	if sess.State != models.SessionPublished {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Session results are not published",
		})
	}

	reports, err := database.ReadSessionReport(c.Context(), db, sessionID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch results",
		})
	}
	return c.JSON(fiber.Map{
		"session": sess,
		"results": reports,
	})
}

// GetStudentReport returns one student's projection in a published session.
func GetStudentReport(c *fiber.Ctx, db *sql.DB) error {
	sessionID := c.Params("id")
	studentID := c.Params("studentID")

	sess, err := database.GetExamSession(c.Context(), db, sessionID)
	if err != nil {
		if errors.Is(err, database.ErrSessionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Session not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch session",
		})
	}
	if sess.State != models.SessionPublished {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Session results are not published",
		})
	}

	report, err := database.ReadStudentReport(c.Context(), db, sessionID, studentID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch student report",
		})
	}
	if report == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No results for this student in the session",
		})
	}
	return c.JSON(report)
}

// BatchSaveResults handles atomic batch create/update of raw marks for a
// session. The whole batch is rejected if any row is invalid.
func BatchSaveResults(c *fiber.Ctx, db *sql.DB, rec *services.Recomputer) error {
	sessionID := c.Params("id")

	var request struct {
		Results []database.ResultUpsert `json:"results" validate:"required,min=1,dive"`
	}
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	sess, err := database.GetExamSession(c.Context(), db, sessionID)
	if err != nil {
		if errors.Is(err, database.ErrSessionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Session not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch session",
		})
	}
	if sess.State == models.SessionPublished {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Session is already published",
		})
	}

	// Serialize with any flush of the same session.
	lock := rec.Locks().Get(sessionID)
	lock.Lock()
	err = database.BulkUpsertResults(c.Context(), db, rec.Bus(), sessionID, request.Results)
	lock.Unlock()
	if err != nil {
		if errors.Is(err, database.ErrInvalidMarks) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save results",
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"saved":   len(request.Results),
	})
}

// RecomputeSession forces a synchronous flush regardless of the debounce
// window.
func RecomputeSession(c *fiber.Ctx, db *sql.DB, rec *services.Recomputer) error {
	sessionID := c.Params("id")

	stats, err := rec.Flush(c.Context(), sessionID)
	if err != nil {
		if errors.Is(err, database.ErrSessionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Session not found",
			})
		}
		if errors.Is(err, services.ErrReferenceData) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Reference data missing",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Recompute failed",
		})
	}
	return c.JSON(fiber.Map{
		"success":    true,
		"recomputed": stats.Students,
		"failed":     stats.Failed,
	})
}
