package models

import "time"

// Combination is a named A-Level subject set, e.g. PCM.
type Combination struct {
	ID        string    `json:"id" validate:"required,uuid"`
	Code      string    `json:"code" validate:"required"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CombinationSubject ties a subject into a combination as CORE or SUBSIDIARY.
type CombinationSubject struct {
	CombinationID string      `json:"combination_id" validate:"required,uuid"`
	SubjectID     string      `json:"subject_id" validate:"required,uuid"`
	Role          SubjectRole `json:"role" validate:"required"`
}
