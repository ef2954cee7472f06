package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/mrisho2348/matimbwa-ss-sub000/app/models"
)

// ErrSessionNotFound is returned when an exam session ID does not exist.
var ErrSessionNotFound = errors.New("exam session not found")

// GetExamSession fetches one session with its exam type.
func GetExamSession(ctx context.Context, db *sql.DB, sessionID string) (*models.ExamSession, error) {
	sess := &models.ExamSession{ExamType: &models.ExamType{}}
	err := db.QueryRowContext(ctx, `
		SELECT s.id, s.exam_type_id, s.academic_year, s.term, s.class_level,
		       s.stream_class, s.exam_date, s.state, s.created_at, s.updated_at,
		       t.id, t.code, t.name, t.max_score, t.weight
		FROM exam_sessions s
		JOIN exam_types t ON s.exam_type_id = t.id
		WHERE s.id = $1`, sessionID).Scan(
		&sess.ID, &sess.ExamTypeID, &sess.AcademicYear, &sess.Term, &sess.ClassLevel,
		&sess.StreamClass, &sess.ExamDate, &sess.State, &sess.CreatedAt, &sess.UpdatedAt,
		&sess.ExamType.ID, &sess.ExamType.Code, &sess.ExamType.Name,
		&sess.ExamType.MaxScore, &sess.ExamType.Weight,
	)
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "get exam session")
	}
	return sess, nil
}

// CreateExamSession inserts a new session in draft state.
func CreateExamSession(ctx context.Context, db *sql.DB, sess *models.ExamSession) error {
	sess.ID = uuid.New().String()
	err := db.QueryRowContext(ctx, `
		INSERT INTO exam_sessions (id, exam_type_id, academic_year, term, class_level, stream_class, exam_date, state)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'draft')
		RETURNING state, created_at, updated_at`,
		sess.ID, sess.ExamTypeID, sess.AcademicYear, sess.Term, sess.ClassLevel, sess.StreamClass, sess.ExamDate,
	).Scan(&sess.State, &sess.CreatedAt, &sess.UpdatedAt)
	return errors.Wrap(err, "create exam session")
}

// TransitionSessionState advances a session to the next lifecycle state.
func TransitionSessionState(ctx context.Context, db *sql.DB, sessionID string, next models.SessionState) error {
	sess, err := GetExamSession(ctx, db, sessionID)
	if err != nil {
		return err
	}
	if !sess.State.CanTransitionTo(next) {
		return fmt.Errorf("invalid state transition %s -> %s", sess.State, next)
	}
	_, err = db.ExecContext(ctx, `
		UPDATE exam_sessions SET state = $1, updated_at = NOW() WHERE id = $2`,
		next, sessionID)
	return errors.Wrap(err, "transition session state")
}

// ListExamSessions returns all sessions, newest exam date first.
func ListExamSessions(ctx context.Context, db *sql.DB) ([]*models.ExamSession, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, exam_type_id, academic_year, term, class_level, stream_class,
		       exam_date, state, created_at, updated_at
		FROM exam_sessions
		ORDER BY exam_date DESC, created_at DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "list exam sessions")
	}
	defer rows.Close()

	var sessions []*models.ExamSession
	for rows.Next() {
		sess := &models.ExamSession{}
		if err := rows.Scan(
			&sess.ID, &sess.ExamTypeID, &sess.AcademicYear, &sess.Term, &sess.ClassLevel,
			&sess.StreamClass, &sess.ExamDate, &sess.State, &sess.CreatedAt, &sess.UpdatedAt,
		); err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// SessionIDsForLevel returns the sessions of one class level; used to fan a
// grading-scale edit out into recomputes.
func SessionIDsForLevel(ctx context.Context, db *sql.DB, level models.LevelCode) ([]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT id FROM exam_sessions WHERE class_level = $1`, level)
	if err != nil {
		return nil, errors.Wrap(err, "sessions for level")
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
