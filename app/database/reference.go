package database

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/mrisho2348/matimbwa-ss-sub000/app/grading"
	"github.com/mrisho2348/matimbwa-ss-sub000/app/models"
)

// LoadSnapshot reads all reference tables into an immutable grading.Snapshot.
// A recompute flush calls this once up front so concurrent scale edits cannot
// tear a batch.
func LoadSnapshot(ctx context.Context, db *sql.DB) (*grading.Snapshot, error) {
	scales, err := loadGradingScales(ctx, db)
	if err != nil {
		return nil, errors.Wrap(err, "load grading scales")
	}
	divisions, err := loadDivisionScales(ctx, db)
	if err != nil {
		return nil, errors.Wrap(err, "load division scales")
	}
	examTypes, err := loadExamTypes(ctx, db)
	if err != nil {
		return nil, errors.Wrap(err, "load exam types")
	}
	combinations, err := loadCombinationSubjects(ctx, db)
	if err != nil {
		return nil, errors.Wrap(err, "load combination subjects")
	}
	compulsory, err := loadCompulsorySubjects(ctx, db)
	if err != nil {
		return nil, errors.Wrap(err, "load compulsory subjects")
	}
	return grading.NewSnapshot(scales, divisions, examTypes, combinations, compulsory), nil
}

func loadGradingScales(ctx context.Context, db *sql.DB) ([]models.GradingScale, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, level, grade, min_mark, max_mark, points, remark
		FROM grading_scales
		ORDER BY level, min_mark`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scales []models.GradingScale
	for rows.Next() {
		var s models.GradingScale
		if err := rows.Scan(&s.ID, &s.Level, &s.Grade, &s.MinMark, &s.MaxMark, &s.Points, &s.Remark); err != nil {
			return nil, err
		}
		scales = append(scales, s)
	}
	return scales, rows.Err()
}

func loadDivisionScales(ctx context.Context, db *sql.DB) ([]models.DivisionScale, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, level, division, min_points, max_points
		FROM division_scales
		ORDER BY level, min_points`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var divisions []models.DivisionScale
	for rows.Next() {
		var d models.DivisionScale
		if err := rows.Scan(&d.ID, &d.Level, &d.Division, &d.MinPoints, &d.MaxPoints); err != nil {
			return nil, err
		}
		divisions = append(divisions, d)
	}
	return divisions, rows.Err()
}

func loadExamTypes(ctx context.Context, db *sql.DB) ([]models.ExamType, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, code, name, max_score, weight FROM exam_types`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []models.ExamType
	for rows.Next() {
		var t models.ExamType
		if err := rows.Scan(&t.ID, &t.Code, &t.Name, &t.MaxScore, &t.Weight); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

func loadCombinationSubjects(ctx context.Context, db *sql.DB) ([]models.CombinationSubject, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT combination_id, subject_id, role FROM combination_subjects`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []models.CombinationSubject
	for rows.Next() {
		var cs models.CombinationSubject
		if err := rows.Scan(&cs.CombinationID, &cs.SubjectID, &cs.Role); err != nil {
			return nil, err
		}
		subs = append(subs, cs)
	}
	return subs, rows.Err()
}

func loadCompulsorySubjects(ctx context.Context, db *sql.DB) (map[models.LevelCode][]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, level FROM subjects WHERE is_compulsory = true`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	compulsory := make(map[models.LevelCode][]string)
	for rows.Next() {
		var id string
		var level models.LevelCode
		if err := rows.Scan(&id, &level); err != nil {
			return nil, err
		}
		compulsory[level] = append(compulsory[level], id)
	}
	return compulsory, rows.Err()
}
