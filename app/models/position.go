package models

import "time"

// StudentExamPosition records a student's rank within an exam session. Both
// positions are null for students who have results but are not eligible.
// Non-null class positions within a session form a permutation of
// 1..N_eligible; likewise stream positions within each stream.
type StudentExamPosition struct {
	SessionID         string    `json:"session_id" validate:"required,uuid"`
	StudentID         string    `json:"student_id" validate:"required,uuid"`
	ClassPosition     *int      `json:"class_position"`
	StreamPosition    *int      `json:"stream_position"`
	EligibilityReason *string   `json:"eligibility_reason,omitempty"`
	UpdatedAt         time.Time `json:"updated_at"`
}
