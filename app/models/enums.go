package models

// LevelCode identifies an educational level.
type LevelCode string

const (
	LevelNursery LevelCode = "NURSERY"
	LevelPrimary LevelCode = "PRIMARY"
	LevelOLevel  LevelCode = "O_LEVEL"
	LevelALevel  LevelCode = "A_LEVEL"
)

// UsesGradePoints reports whether total grade points are aggregated at this level.
func (l LevelCode) UsesGradePoints() bool {
	return l == LevelOLevel || l == LevelALevel
}

// Division is a coarse achievement band derived from total grade points.
type Division string

const (
	DivisionI    Division = "I"
	DivisionII   Division = "II"
	DivisionIII  Division = "III"
	DivisionIV   Division = "IV"
	DivisionZero Division = "0"
)

// StudentStatus defines the lifecycle status of a student.
type StudentStatus string

const (
	StudentActive      StudentStatus = "active"
	StudentCompleted   StudentStatus = "completed"
	StudentSuspended   StudentStatus = "suspended"
	StudentWithdrawn   StudentStatus = "withdrawn"
	StudentTransferred StudentStatus = "transferred"
)

// SessionState defines the lifecycle state of an exam session.
type SessionState string

const (
	SessionDraft     SessionState = "draft"
	SessionSubmitted SessionState = "submitted"
	SessionVerified  SessionState = "verified"
	SessionPublished SessionState = "published"
)

// CanTransitionTo reports whether a session may move from its current state to next.
// The lifecycle is strictly forward: draft -> submitted -> verified -> published.
func (s SessionState) CanTransitionTo(next SessionState) bool {
	order := map[SessionState]int{
		SessionDraft:     0,
		SessionSubmitted: 1,
		SessionVerified:  2,
		SessionPublished: 3,
	}
	cur, ok := order[s]
	if !ok {
		return false
	}
	n, ok := order[next]
	if !ok {
		return false
	}
	return n == cur+1
}

// SubjectRole tags a subject inside an A-Level combination.
type SubjectRole string

const (
	RoleCore       SubjectRole = "CORE"
	RoleSubsidiary SubjectRole = "SUBSIDIARY"
)
