package settings

import (
	"database/sql"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/mrisho2348/matimbwa-ss-sub000/app/database"
	"github.com/mrisho2348/matimbwa-ss-sub000/app/models"
	"github.com/mrisho2348/matimbwa-ss-sub000/app/services"
)

// GetGradingScalesAPI returns all configured grading scales.
func GetGradingScalesAPI(c *fiber.Ctx, db *sql.DB) error {
	scales, err := getAllGradingScales(db)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch grading scales",
		})
	}
	return c.JSON(scales)
}

// CreateGradingScaleAPI adds a grading scale row and recomputes sessions at
// its level.
func CreateGradingScaleAPI(c *fiber.Ctx, db *sql.DB, rec *services.Recomputer) error {
	s := &models.GradingScale{}
	if err := c.BodyParser(s); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if s.Level == "" || s.Grade == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "level and grade are required",
		})
	}
	if s.MaxMark.LessThan(s.MinMark) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "max_mark must not be below min_mark",
		})
	}
	if err := createGradingScale(db, s); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create grading scale",
		})
	}
	recomputeLevel(c, db, rec, s.Level)
	return c.Status(fiber.StatusCreated).JSON(s)
}

// UpdateGradingScaleAPI edits a grading scale row and recomputes sessions at
// its level, so every affected grade, total and position follows the edit.
func UpdateGradingScaleAPI(c *fiber.Ctx, db *sql.DB, rec *services.Recomputer) error {
	s := &models.GradingScale{}
	if err := c.BodyParser(s); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if s.MaxMark.LessThan(s.MinMark) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "max_mark must not be below min_mark",
		})
	}
	s.ID = c.Params("id")
	if err := updateGradingScale(db, s); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Grading scale not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update grading scale",
		})
	}
	recomputeLevel(c, db, rec, s.Level)
	return c.JSON(s)
}

// DeleteGradingScaleAPI removes a grading scale row.
func DeleteGradingScaleAPI(c *fiber.Ctx, db *sql.DB, rec *services.Recomputer) error {
	level, err := deleteGradingScale(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Grading scale not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete grading scale",
		})
	}
	recomputeLevel(c, db, rec, level)
	return c.JSON(fiber.Map{"success": true})
}

// GetDivisionScalesAPI returns all configured division bands.
func GetDivisionScalesAPI(c *fiber.Ctx, db *sql.DB) error {
	scales, err := getAllDivisionScales(db)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch division scales",
		})
	}
	return c.JSON(scales)
}

// CreateDivisionScaleAPI adds a division band.
func CreateDivisionScaleAPI(c *fiber.Ctx, db *sql.DB, rec *services.Recomputer) error {
	d := &models.DivisionScale{}
	if err := c.BodyParser(d); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if d.Level == "" || d.Division == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "level and division are required",
		})
	}
	if d.MaxPoints.LessThan(d.MinPoints) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "max_points must not be below min_points",
		})
	}
	if err := createDivisionScale(db, d); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create division scale",
		})
	}
	recomputeLevel(c, db, rec, d.Level)
	return c.Status(fiber.StatusCreated).JSON(d)
}

// UpdateDivisionScaleAPI edits a division band.
func UpdateDivisionScaleAPI(c *fiber.Ctx, db *sql.DB, rec *services.Recomputer) error {
	d := &models.DivisionScale{}
	if err := c.BodyParser(d); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if d.MaxPoints.LessThan(d.MinPoints) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "max_points must not be below min_points",
		})
	}
	d.ID = c.Params("id")
	if err := updateDivisionScale(db, d); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Division scale not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update division scale",
		})
	}
	recomputeLevel(c, db, rec, d.Level)
	return c.JSON(d)
}

// DeleteDivisionScaleAPI removes a division band.
func DeleteDivisionScaleAPI(c *fiber.Ctx, db *sql.DB, rec *services.Recomputer) error {
	level, err := deleteDivisionScale(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Division scale not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete division scale",
		})
	}
	recomputeLevel(c, db, rec, level)
	return c.JSON(fiber.Map{"success": true})
}

// recomputeLevel schedules a recompute of every session at the level after a
// reference-data edit.
func recomputeLevel(c *fiber.Ctx, db *sql.DB, rec *services.Recomputer, level models.LevelCode) {
	ids, err := database.SessionIDsForLevel(c.Context(), db, level)
	if err != nil {
		log.Printf("Failed to list sessions for level %s after scale edit: %v", level, err)
		return
	}
	for _, id := range ids {
		rec.EnqueueSession(id)
	}
}
