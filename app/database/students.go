package database

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/mrisho2348/matimbwa-ss-sub000/app/models"
)

// GetStudent fetches one student with their optional-subject IDs.
func GetStudent(ctx context.Context, db *sql.DB, studentID string) (*models.Student, error) {
	st := &models.Student{}
	err := db.QueryRowContext(ctx, `
		SELECT id, reg_no, first_name, last_name, class_level, stream, combination_id, status
		FROM students WHERE id = $1`, studentID).Scan(
		&st.ID, &st.RegNo, &st.FirstName, &st.LastName, &st.ClassLevel,
		&st.Stream, &st.CombinationID, &st.Status,
	)
	if err == sql.ErrNoRows {
		return nil, errors.Errorf("student %s not found", studentID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "get student")
	}

	rows, err := db.QueryContext(ctx, `
		SELECT subject_id FROM student_optional_subjects WHERE student_id = $1`, studentID)
	if err != nil {
		return nil, errors.Wrap(err, "get optional subjects")
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		st.OptionalSubjectIDs = append(st.OptionalSubjectIDs, id)
	}
	return st, rows.Err()
}

// StudentIDsWithResults returns every student who has at least one result row
// in the session, active or not.
func StudentIDsWithResults(ctx context.Context, db *sql.DB, sessionID string) ([]string, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT DISTINCT student_id FROM student_results WHERE session_id = $1`, sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "students with results")
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
