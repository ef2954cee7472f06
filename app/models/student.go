package models

import "time"

// Student is identified by a stable registration number, e.g. S2348/0010/2025.
// Only active students participate in ranking. OptionalSubjectIDs lists the
// elective subjects an O-Level student sat for; CombinationID points at an
// A-Level student's subject combination.
type Student struct {
	ID                 string        `json:"id" validate:"required,uuid"`
	RegNo              string        `json:"reg_no" validate:"required"`
	FirstName          string        `json:"first_name"`
	LastName           string        `json:"last_name"`
	ClassLevel         LevelCode     `json:"class_level" validate:"required"`
	Stream             *string       `json:"stream,omitempty"`
	CombinationID      *string       `json:"combination_id,omitempty" validate:"omitempty,uuid"`
	Status             StudentStatus `json:"status"`
	OptionalSubjectIDs []string      `json:"optional_subject_ids,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}
