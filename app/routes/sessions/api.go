package sessions

import (
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"github.com/mrisho2348/matimbwa-ss-sub000/app/database"
	"github.com/mrisho2348/matimbwa-ss-sub000/app/models"
)

var validate = validator.New()

// CreateSession creates a draft exam session.
func CreateSession(c *fiber.Ctx, db *sql.DB) error {
	var request struct {
		ExamTypeID   string           `json:"exam_type_id" validate:"required,uuid"`
		AcademicYear int              `json:"academic_year" validate:"required"`
		Term         int              `json:"term" validate:"required,min=1,max=3"`
		ClassLevel   models.LevelCode `json:"class_level" validate:"required"`
		StreamClass  *string          `json:"stream_class"`
		ExamDate     string           `json:"exam_date" validate:"required"`
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
	examDate, err := time.Parse("2006-01-02", request.ExamDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "exam_date must be YYYY-MM-DD",
		})
	}

	sess := &models.ExamSession{
		ExamTypeID:   request.ExamTypeID,
		AcademicYear: request.AcademicYear,
		Term:         request.Term,
		ClassLevel:   request.ClassLevel,
		StreamClass:  request.StreamClass,
		ExamDate:     examDate,
	}
	if err := database.CreateExamSession(c.Context(), db, sess); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create session",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(sess)
}

// GetSession returns one session.
func GetSession(c *fiber.Ctx, db *sql.DB) error {
	sess, err := database.GetExamSession(c.Context(), db, c.Params("id"))
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
	return c.JSON(sess)
}

// ListSessions returns all sessions, newest first.
func ListSessions(c *fiber.Ctx, db *sql.DB) error {
	sessions, err := database.ListExamSessions(c.Context(), db)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch sessions",
		})
	}
	return c.JSON(sessions)
}

// TransitionSession advances a session along draft -> submitted -> verified
// -> published.
func TransitionSession(c *fiber.Ctx, db *sql.DB) error {
	var request struct {
		State models.SessionState `json:"state" validate:"required"`
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

	err := database.TransitionSessionState(c.Context(), db, c.Params("id"), request.State)
	if err != nil {
		if errors.Is(err, database.ErrSessionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Session not found",
			})
		}
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"success": true, "state": request.State})
}
