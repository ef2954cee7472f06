package database

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/mrisho2348/matimbwa-ss-sub000/app/events"
	"github.com/mrisho2348/matimbwa-ss-sub000/app/grading"
	"github.com/mrisho2348/matimbwa-ss-sub000/app/models"
)

// ErrInvalidMarks is returned when marks fall outside 0..max_score for the
// session's exam type. Nothing is written.
var ErrInvalidMarks = errors.New("marks out of range")

// ResultUpsert is one incoming mark entry. Null marks record an absence.
type ResultUpsert struct {
	StudentID string              `json:"student_id" validate:"required,uuid"`
	SubjectID string              `json:"subject_id" validate:"required,uuid"`
	Marks     decimal.NullDecimal `json:"marks"`
}

func validateMarks(items []ResultUpsert, maxScore decimal.Decimal) error {
	for _, item := range items {
		if !item.Marks.Valid {
			continue
		}
		m := item.Marks.Decimal
		if m.IsNegative() || m.GreaterThan(maxScore) {
			return errors.Wrapf(ErrInvalidMarks, "student %s subject %s: %s not in [0, %s]",
				item.StudentID, item.SubjectID, m.String(), maxScore.String())
		}
	}
	return nil
}

// UpsertResult saves one student's marks for a subject and publishes the
// change on the bus.
func UpsertResult(ctx context.Context, db *sql.DB, bus *events.Bus, sessionID string, item ResultUpsert) error {
	return BulkUpsertResults(ctx, db, bus, sessionID, []ResultUpsert{item})
}

// BulkUpsertResults saves a batch of marks for one session in a single
// transaction. Every row is validated against the exam type's max score
// before anything is written; one bad row rejects the whole batch. A change
// event per student is published after commit.
func BulkUpsertResults(ctx context.Context, db *sql.DB, bus *events.Bus, sessionID string, items []ResultUpsert) error {
	sess, err := GetExamSession(ctx, db, sessionID)
	if err != nil {
		return err
	}
	if err := validateMarks(items, sess.ExamType.MaxScore); err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO student_results (session_id, student_id, subject_id, marks)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (session_id, student_id, subject_id)
		DO UPDATE SET marks = EXCLUDED.marks,
		              percentage = NULL, grade = NULL, grade_point = NULL,
		              updated_at = NOW()`)
	if err != nil {
		return errors.Wrap(err, "prepare upsert")
	}
	defer stmt.Close()

	for _, item := range items {
		if _, err := stmt.ExecContext(ctx, sessionID, item.StudentID, item.SubjectID, item.Marks); err != nil {
			return errors.Wrapf(err, "upsert result for student %s", item.StudentID)
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit results")
	}

	if bus != nil {
		seen := make(map[string]bool, len(items))
		for _, item := range items {
			if seen[item.StudentID] {
				continue
			}
			seen[item.StudentID] = true
			bus.Publish(events.Change{SessionID: sessionID, StudentID: item.StudentID})
		}
	}
	return nil
}

// ResultsForStudent loads all of a student's result rows in a session.
func ResultsForStudent(ctx context.Context, db *sql.DB, sessionID, studentID string) ([]*models.StudentResult, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, session_id, student_id, subject_id, marks, percentage, grade, grade_point
		FROM student_results
		WHERE session_id = $1 AND student_id = $2`, sessionID, studentID)
	if err != nil {
		return nil, errors.Wrap(err, "results for student")
	}
	defer rows.Close()

	var results []*models.StudentResult
	for rows.Next() {
		r := &models.StudentResult{}
		if err := rows.Scan(&r.ID, &r.SessionID, &r.StudentID, &r.SubjectID,
			&r.Marks, &r.Percentage, &r.Grade, &r.GradePoint); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// SessionRankEntries returns the ranking input for every eligible, active
// student in the session: their metrics sort key plus registration number
// and stream.
func SessionRankEntries(ctx context.Context, db *sql.DB, sessionID string) ([]grading.RankEntry, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT m.student_id, s.reg_no, s.stream, m.average_percentage, m.total_marks
		FROM student_exam_metrics m
		JOIN students s ON m.student_id = s.id
		WHERE m.session_id = $1 AND s.status = 'active'`, sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "session rank entries")
	}
	defer rows.Close()

	var entries []grading.RankEntry
	for rows.Next() {
		var e grading.RankEntry
		if err := rows.Scan(&e.StudentID, &e.RegNo, &e.Stream, &e.AveragePercentage, &e.TotalMarks); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ApplyFlush persists one recompute cycle atomically: derived result fields,
// metrics upserts and deletes, and the full position set for the session all
// commit together, so readers see either the old state or the complete new one.
func ApplyFlush(ctx context.Context, db *sql.DB, sessionID string, comps []*grading.Computation, positions []models.StudentExamPosition) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin flush transaction")
	}
	defer tx.Rollback()

	resultStmt, err := tx.PrepareContext(ctx, `
		UPDATE student_results
		SET percentage = $1, grade = $2, grade_point = $3, updated_at = NOW()
		WHERE id = $4`)
	if err != nil {
		return errors.Wrap(err, "prepare result update")
	}
	defer resultStmt.Close()

	metricsStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO student_exam_metrics
			(session_id, student_id, total_marks, average_marks, average_percentage,
			 average_grade, average_remark, total_grade_points, division, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		ON CONFLICT (session_id, student_id)
		DO UPDATE SET total_marks = EXCLUDED.total_marks,
		              average_marks = EXCLUDED.average_marks,
		              average_percentage = EXCLUDED.average_percentage,
		              average_grade = EXCLUDED.average_grade,
		              average_remark = EXCLUDED.average_remark,
		              total_grade_points = EXCLUDED.total_grade_points,
		              division = EXCLUDED.division,
		              updated_at = NOW()`)
	if err != nil {
		return errors.Wrap(err, "prepare metrics upsert")
	}
	defer metricsStmt.Close()

	for _, comp := range comps {
		for _, r := range comp.Results {
			if _, err := resultStmt.ExecContext(ctx, r.Percentage, r.Grade, r.GradePoint, r.ID); err != nil {
				return errors.Wrapf(err, "update result %s", r.ID)
			}
		}
		if comp.Metrics != nil {
			m := comp.Metrics
			if _, err := metricsStmt.ExecContext(ctx, sessionID, m.StudentID,
				m.TotalMarks, m.AverageMarks, m.AveragePercentage,
				m.AverageGrade, m.AverageRemark, m.TotalGradePoints, m.Division); err != nil {
				return errors.Wrapf(err, "upsert metrics for student %s", m.StudentID)
			}
		} else {
			if _, err := tx.ExecContext(ctx, `
				DELETE FROM student_exam_metrics WHERE session_id = $1 AND student_id = $2`,
				sessionID, comp.StudentID); err != nil {
				return errors.Wrapf(err, "delete metrics for student %s", comp.StudentID)
			}
		}
	}

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM student_exam_positions WHERE session_id = $1`, sessionID); err != nil {
		return errors.Wrap(err, "clear positions")
	}
	posStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO student_exam_positions
			(session_id, student_id, class_position, stream_position, eligibility_reason, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())`)
	if err != nil {
		return errors.Wrap(err, "prepare position insert")
	}
	defer posStmt.Close()
	for _, p := range positions {
		if _, err := posStmt.ExecContext(ctx, sessionID, p.StudentID, p.ClassPosition, p.StreamPosition, p.EligibilityReason); err != nil {
			return errors.Wrapf(err, "insert position for student %s", p.StudentID)
		}
	}

	return errors.Wrap(tx.Commit(), "commit flush")
}

// ReadMetrics returns a student's metrics row, or nil when none exists.
func ReadMetrics(ctx context.Context, db *sql.DB, sessionID, studentID string) (*models.StudentExamMetrics, error) {
	m := &models.StudentExamMetrics{}
	err := db.QueryRowContext(ctx, `
		SELECT session_id, student_id, total_marks, average_marks, average_percentage,
		       average_grade, average_remark, total_grade_points, division, updated_at
		FROM student_exam_metrics
		WHERE session_id = $1 AND student_id = $2`, sessionID, studentID).Scan(
		&m.SessionID, &m.StudentID, &m.TotalMarks, &m.AverageMarks, &m.AveragePercentage,
		&m.AverageGrade, &m.AverageRemark, &m.TotalGradePoints, &m.Division, &m.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read metrics")
	}
	return m, nil
}

// ReadPositions returns all position rows for a session, best class rank first.
func ReadPositions(ctx context.Context, db *sql.DB, sessionID string) ([]models.StudentExamPosition, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT session_id, student_id, class_position, stream_position, eligibility_reason, updated_at
		FROM student_exam_positions
		WHERE session_id = $1
		ORDER BY class_position NULLS LAST, student_id`, sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "read positions")
	}
	defer rows.Close()

	var positions []models.StudentExamPosition
	for rows.Next() {
		var p models.StudentExamPosition
		if err := rows.Scan(&p.SessionID, &p.StudentID, &p.ClassPosition, &p.StreamPosition, &p.EligibilityReason, &p.UpdatedAt); err != nil {
			return nil, err
		}
		positions = append(positions, p)
	}
	return positions, rows.Err()
}
