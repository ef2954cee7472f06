package grading

import (
	"fmt"

	"github.com/mrisho2348/matimbwa-ss-sub000/app/models"
)

// Minimum counted subjects for O-Level metrics and minimum graded CORE
// subjects for A-Level metrics.
const (
	OLevelMinSubjects = 7
	ALevelMinCore     = 3
)

// Eligibility says whether a student receives metrics and a position for a
// session, and why not when they don't.
type Eligibility struct {
	Eligible bool
	Reason   string
}

func eligible() Eligibility { return Eligibility{Eligible: true} }

func notEligible(format string, args ...interface{}) Eligibility {
	return Eligibility{Reason: fmt.Sprintf(format, args...)}
}

// SubjectSet is the classified set of a student's scored results for a
// session. Core and Subsidiary are only populated for A-Level students;
// for other levels every counted result sits in Scored.
type SubjectSet struct {
	Scored     []*models.StudentResult
	Core       []*models.StudentResult
	Subsidiary []*models.StudentResult
}

// ClassifySubjects determines which of the student's scored results count for
// metrics under the level rule and whether the student is eligible. Results
// must already carry their resolved grade points.
//
// Primary / Nursery: every scored subject counts, any number is eligible.
// O-Level: subjects in (compulsory union student's optionals) count; at least
// seven with a resolved grade point are required.
// A-Level: only subjects of the student's combination count, split by role;
// at least three graded CORE subjects are required.
func (s *Snapshot) ClassifySubjects(student *models.Student, results []*models.StudentResult) (SubjectSet, Eligibility) {
	var set SubjectSet

	scored := make([]*models.StudentResult, 0, len(results))
	for _, r := range results {
		if r.Scored() {
			scored = append(scored, r)
		}
	}
	if len(scored) == 0 {
		return set, notEligible("no results")
	}

	switch student.ClassLevel {
	case models.LevelPrimary, models.LevelNursery:
		set.Scored = scored
		return set, eligible()

	case models.LevelOLevel:
		counted := make(map[string]bool)
		for _, id := range s.CompulsorySubjects(models.LevelOLevel) {
			counted[id] = true
		}
		for _, id := range student.OptionalSubjectIDs {
			counted[id] = true
		}
		graded := 0
		for _, r := range scored {
			if len(counted) > 0 && !counted[r.SubjectID] {
				continue
			}
			set.Scored = append(set.Scored, r)
			if r.GradePoint.Valid {
				graded++
			}
		}
		if graded < OLevelMinSubjects {
			return set, notEligible("fewer than %d subjects with grade points (%d)", OLevelMinSubjects, graded)
		}
		return set, eligible()

	case models.LevelALevel:
		if student.CombinationID == nil {
			return set, notEligible("no combination assigned")
		}
		subs, err := s.CombinationSubjects(*student.CombinationID)
		if err != nil {
			return set, notEligible("combination not configured")
		}
		roles := make(map[string]models.SubjectRole, len(subs))
		for _, cs := range subs {
			roles[cs.SubjectID] = cs.Role
		}
		gradedCore := 0
		for _, r := range scored {
			role, ok := roles[r.SubjectID]
			if !ok {
				continue
			}
			set.Scored = append(set.Scored, r)
			switch role {
			case models.RoleCore:
				set.Core = append(set.Core, r)
				if r.GradePoint.Valid {
					gradedCore++
				}
			case models.RoleSubsidiary:
				set.Subsidiary = append(set.Subsidiary, r)
			}
		}
		if gradedCore < ALevelMinCore {
			return set, notEligible("fewer than %d core subjects with grade points (%d)", ALevelMinCore, gradedCore)
		}
		return set, eligible()
	}

	return set, notEligible("unknown level %s", student.ClassLevel)
}
