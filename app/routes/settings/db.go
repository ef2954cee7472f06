package settings

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/mrisho2348/matimbwa-ss-sub000/app/models"
)

func getAllGradingScales(db *sql.DB) ([]*models.GradingScale, error) {
	rows, err := db.Query(`
		SELECT id, level, grade, min_mark, max_mark, points, remark, created_at, updated_at
		FROM grading_scales
		ORDER BY level, min_mark DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scales []*models.GradingScale
	for rows.Next() {
		s := &models.GradingScale{}
		if err := rows.Scan(&s.ID, &s.Level, &s.Grade, &s.MinMark, &s.MaxMark,
			&s.Points, &s.Remark, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		scales = append(scales, s)
	}
	return scales, rows.Err()
}

func createGradingScale(db *sql.DB, s *models.GradingScale) error {
	s.ID = uuid.New().String()
	return db.QueryRow(`
		INSERT INTO grading_scales (id, level, grade, min_mark, max_mark, points, remark)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`,
		s.ID, s.Level, s.Grade, s.MinMark, s.MaxMark, s.Points, s.Remark,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
}

func updateGradingScale(db *sql.DB, s *models.GradingScale) error {
	return db.QueryRow(`
		UPDATE grading_scales
		SET grade = $1, min_mark = $2, max_mark = $3, points = $4, remark = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING level, updated_at`,
		s.Grade, s.MinMark, s.MaxMark, s.Points, s.Remark, s.ID,
	).Scan(&s.Level, &s.UpdatedAt)
}

func deleteGradingScale(db *sql.DB, id string) (models.LevelCode, error) {
	var level models.LevelCode
	err := db.QueryRow(`DELETE FROM grading_scales WHERE id = $1 RETURNING level`, id).Scan(&level)
	return level, err
}

func getAllDivisionScales(db *sql.DB) ([]*models.DivisionScale, error) {
	rows, err := db.Query(`
		SELECT id, level, division, min_points, max_points, created_at, updated_at
		FROM division_scales
		ORDER BY level, min_points`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scales []*models.DivisionScale
	for rows.Next() {
		d := &models.DivisionScale{}
		if err := rows.Scan(&d.ID, &d.Level, &d.Division, &d.MinPoints, &d.MaxPoints,
			&d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		scales = append(scales, d)
	}
	return scales, rows.Err()
}

func createDivisionScale(db *sql.DB, d *models.DivisionScale) error {
	d.ID = uuid.New().String()
	return db.QueryRow(`
		INSERT INTO division_scales (id, level, division, min_points, max_points)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`,
		d.ID, d.Level, d.Division, d.MinPoints, d.MaxPoints,
	).Scan(&d.CreatedAt, &d.UpdatedAt)
}

func updateDivisionScale(db *sql.DB, d *models.DivisionScale) error {
	return db.QueryRow(`
		UPDATE division_scales
		SET division = $1, min_points = $2, max_points = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING level, updated_at`,
		d.Division, d.MinPoints, d.MaxPoints, d.ID,
	).Scan(&d.Level, &d.UpdatedAt)
}

func deleteDivisionScale(db *sql.DB, id string) (models.LevelCode, error) {
	var level models.LevelCode
	err := db.QueryRow(`DELETE FROM division_scales WHERE id = $1 RETURNING level`, id).Scan(&level)
	return level, err
}
