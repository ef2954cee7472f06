package database

import (
	"context"
	"database/sql"
	"sort"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/mrisho2348/matimbwa-ss-sub000/app/models"
)

// SubjectLine is one subject's marks and derived grade in a report.
type SubjectLine struct {
	SubjectID   string              `json:"subject_id"`
	SubjectCode string              `json:"subject_code"`
	SubjectName string              `json:"subject_name"`
	Marks       decimal.NullDecimal `json:"marks"`
	Percentage  decimal.NullDecimal `json:"percentage"`
	Grade       *string             `json:"grade"`
	GradePoint  decimal.NullDecimal `json:"grade_point"`
}

// EligibilityView is the eligibility discriminator exposed to readers.
type EligibilityView struct {
	Status string `json:"status"` // "eligible" or "ineligible"
	Reason string `json:"reason,omitempty"`
}

// StudentReport is the full projection of one student's results in a session.
type StudentReport struct {
	StudentID      string                     `json:"student_id"`
	RegNo          string                     `json:"reg_no"`
	FirstName      string                     `json:"first_name"`
	LastName       string                     `json:"last_name"`
	Subjects       []SubjectLine              `json:"subjects"`
	Metrics        *models.StudentExamMetrics `json:"metrics,omitempty"`
	ClassPosition  *int                       `json:"class_position"`
	StreamPosition *int                       `json:"stream_position"`
	Eligibility    EligibilityView            `json:"eligibility"`
}

// ReadSessionReport builds the per-student projection for every student with
// results in the session, ordered by class position then registration number.
func ReadSessionReport(ctx context.Context, db *sql.DB, sessionID string) ([]*StudentReport, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT r.student_id, st.reg_no, st.first_name, st.last_name,
		       r.subject_id, sub.code, sub.name,
		       r.marks, r.percentage, r.grade, r.grade_point
		FROM student_results r
		JOIN students st ON r.student_id = st.id
		JOIN subjects sub ON r.subject_id = sub.id
		WHERE r.session_id = $1
		ORDER BY st.reg_no, sub.code`, sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "read session results")
	}
	defer rows.Close()

	byStudent := make(map[string]*StudentReport)
	var order []string
	for rows.Next() {
		var (
			studentID, regNo, first, last string
			line                          SubjectLine
		)
		if err := rows.Scan(&studentID, &regNo, &first, &last,
			&line.SubjectID, &line.SubjectCode, &line.SubjectName,
			&line.Marks, &line.Percentage, &line.Grade, &line.GradePoint); err != nil {
			return nil, err
		}
		rep, ok := byStudent[studentID]
		if !ok {
			rep = &StudentReport{
				StudentID:   studentID,
				RegNo:       regNo,
				FirstName:   first,
				LastName:    last,
				Eligibility: EligibilityView{Status: "ineligible", Reason: "no results"},
			}
			byStudent[studentID] = rep
			order = append(order, studentID)
		}
		rep.Subjects = append(rep.Subjects, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := attachMetrics(ctx, db, sessionID, byStudent); err != nil {
		return nil, err
	}
	if err := attachPositions(ctx, db, sessionID, byStudent); err != nil {
		return nil, err
	}

	reports := make([]*StudentReport, 0, len(order))
	for _, id := range order {
		reports = append(reports, byStudent[id])
	}
	sort.SliceStable(reports, func(i, j int) bool {
		a, b := reports[i].ClassPosition, reports[j].ClassPosition
		switch {
		case a != nil && b != nil:
			return *a < *b
		case a != nil:
			return true
		case b != nil:
			return false
		default:
			return reports[i].RegNo < reports[j].RegNo
		}
	})
	return reports, nil
}

// ReadStudentReport builds the projection for one student, or nil when the
// student has no results in the session.
func ReadStudentReport(ctx context.Context, db *sql.DB, sessionID, studentID string) (*StudentReport, error) {
	reports, err := ReadSessionReport(ctx, db, sessionID)
	if err != nil {
		return nil, err
	}
	for _, rep := range reports {
		if rep.StudentID == studentID {
			return rep, nil
		}
	}
	return nil, nil
}

func attachMetrics(ctx context.Context, db *sql.DB, sessionID string, byStudent map[string]*StudentReport) error {
	rows, err := db.QueryContext(ctx, `
		SELECT session_id, student_id, total_marks, average_marks, average_percentage,
		       average_grade, average_remark, total_grade_points, division, updated_at
		FROM student_exam_metrics
		WHERE session_id = $1`, sessionID)
	if err != nil {
		return errors.Wrap(err, "read session metrics")
	}
	defer rows.Close()

	for rows.Next() {
		m := &models.StudentExamMetrics{}
		if err := rows.Scan(&m.SessionID, &m.StudentID, &m.TotalMarks, &m.AverageMarks,
			&m.AveragePercentage, &m.AverageGrade, &m.AverageRemark,
			&m.TotalGradePoints, &m.Division, &m.UpdatedAt); err != nil {
			return err
		}
		if rep, ok := byStudent[m.StudentID]; ok {
			rep.Metrics = m
			rep.Eligibility = EligibilityView{Status: "eligible"}
		}
	}
	return rows.Err()
}

func attachPositions(ctx context.Context, db *sql.DB, sessionID string, byStudent map[string]*StudentReport) error {
	positions, err := ReadPositions(ctx, db, sessionID)
	if err != nil {
		return err
	}
	for _, p := range positions {
		rep, ok := byStudent[p.StudentID]
		if !ok {
			continue
		}
		rep.ClassPosition = p.ClassPosition
		rep.StreamPosition = p.StreamPosition
		if rep.Metrics == nil && p.EligibilityReason != nil {
			rep.Eligibility.Reason = *p.EligibilityReason
		}
	}
	return nil
}
