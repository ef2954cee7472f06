package models

import "time"

// ExamSession is one assessment event for a class level (optionally a single
// stream) in a given year and term. Sessions own their results, metrics and
// positions; deleting a session cascades to all of them.
type ExamSession struct {
	ID           string       `json:"id" validate:"required,uuid"`
	ExamTypeID   string       `json:"exam_type_id" validate:"required,uuid"`
	AcademicYear int          `json:"academic_year" validate:"required"`
	Term         int          `json:"term" validate:"required,min=1,max=3"`
	ClassLevel   LevelCode    `json:"class_level" validate:"required"`
	StreamClass  *string      `json:"stream_class,omitempty"`
	ExamDate     time.Time    `json:"exam_date"`
	State        SessionState `json:"state"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	ExamType     *ExamType    `json:"exam_type,omitempty"`
}
