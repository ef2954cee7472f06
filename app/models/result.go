package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StudentResult stores a student's raw marks for one subject in an exam
// session, plus the derived percentage, grade and grade point. Null marks mean
// the student was absent for the paper.
type StudentResult struct {
	ID         string              `json:"id" validate:"required,uuid"`
	SessionID  string              `json:"session_id" validate:"required,uuid"`
	StudentID  string              `json:"student_id" validate:"required,uuid"`
	SubjectID  string              `json:"subject_id" validate:"required,uuid"`
	Marks      decimal.NullDecimal `json:"marks"`
	Percentage decimal.NullDecimal `json:"percentage"`
	Grade      *string             `json:"grade,omitempty"`
	GradePoint decimal.NullDecimal `json:"grade_point"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

// Scored reports whether the student actually sat the paper.
func (r *StudentResult) Scored() bool {
	return r.Marks.Valid
}
