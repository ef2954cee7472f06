package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StudentExamMetrics holds the aggregates derived from a student's results in
// one exam session. A row exists only for eligible students; TotalGradePoints
// and Division stay null for levels that do not aggregate grade points.
type StudentExamMetrics struct {
	SessionID         string              `json:"session_id" validate:"required,uuid"`
	StudentID         string              `json:"student_id" validate:"required,uuid"`
	TotalMarks        decimal.Decimal     `json:"total_marks"`
	AverageMarks      decimal.Decimal     `json:"average_marks"`
	AveragePercentage decimal.Decimal     `json:"average_percentage"`
	AverageGrade      string              `json:"average_grade"`
	AverageRemark     string              `json:"average_remark"`
	TotalGradePoints  decimal.NullDecimal `json:"total_grade_points"`
	Division          *Division           `json:"division,omitempty"`
	UpdatedAt         time.Time           `json:"updated_at"`
}
