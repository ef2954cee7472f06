package grading

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/mrisho2348/matimbwa-ss-sub000/app/models"
)

// ErrNotConfigured is returned when a lookup falls outside every configured
// reference interval for the level.
var ErrNotConfigured = errors.New("reference data not configured")

// NoScaleError reports a percentage not covered by any grading scale row.
type NoScaleError struct {
	Level      models.LevelCode
	Percentage decimal.Decimal
}

func (e *NoScaleError) Error() string {
	return "no grading scale covers " + e.Percentage.StringFixed(2) + " for level " + string(e.Level)
}

// Unwrap lets callers match NoScaleError with errors.Is(err, ErrNotConfigured).
func (e *NoScaleError) Unwrap() error { return ErrNotConfigured }

// Snapshot is an immutable copy of the reference tables captured at the start
// of a recompute flush. All lookups are pure so a whole flush sees one
// consistent grading policy even while an operator edits the live tables.
type Snapshot struct {
	scalesByLevel    map[models.LevelCode][]models.GradingScale
	divisionsByLevel map[models.LevelCode][]models.DivisionScale
	examTypesByID    map[string]models.ExamType
	combinations     map[string][]models.CombinationSubject
	compulsory       map[models.LevelCode][]string
}

// NewSnapshot builds a snapshot from fully-loaded reference rows. Scale and
// division slices are copied and sorted by their lower bounds.
func NewSnapshot(
	scales []models.GradingScale,
	divisions []models.DivisionScale,
	examTypes []models.ExamType,
	combinations []models.CombinationSubject,
	compulsorySubjects map[models.LevelCode][]string,
) *Snapshot {
	s := &Snapshot{
		scalesByLevel:    make(map[models.LevelCode][]models.GradingScale),
		divisionsByLevel: make(map[models.LevelCode][]models.DivisionScale),
		examTypesByID:    make(map[string]models.ExamType),
		combinations:     make(map[string][]models.CombinationSubject),
		compulsory:       make(map[models.LevelCode][]string),
	}
	for _, sc := range scales {
		s.scalesByLevel[sc.Level] = append(s.scalesByLevel[sc.Level], sc)
	}
	for level := range s.scalesByLevel {
		rows := s.scalesByLevel[level]
		sort.Slice(rows, func(i, j int) bool { return rows[i].MinMark.LessThan(rows[j].MinMark) })
	}
	for _, d := range divisions {
		s.divisionsByLevel[d.Level] = append(s.divisionsByLevel[d.Level], d)
	}
	for level := range s.divisionsByLevel {
		rows := s.divisionsByLevel[level]
		sort.Slice(rows, func(i, j int) bool { return rows[i].MinPoints.LessThan(rows[j].MinPoints) })
	}
	for _, et := range examTypes {
		s.examTypesByID[et.ID] = et
	}
	for _, cs := range combinations {
		s.combinations[cs.CombinationID] = append(s.combinations[cs.CombinationID], cs)
	}
	for level, ids := range compulsorySubjects {
		s.compulsory[level] = append([]string(nil), ids...)
	}
	return s
}

// ScaleFor returns the grading scale row whose interval contains pct.
func (s *Snapshot) ScaleFor(level models.LevelCode, pct decimal.Decimal) (models.GradingScale, error) {
	for _, row := range s.scalesByLevel[level] {
		if row.Contains(pct) {
			return row, nil
		}
	}
	return models.GradingScale{}, &NoScaleError{Level: level, Percentage: pct}
}

// DivisionFor returns the division band containing the given total points.
func (s *Snapshot) DivisionFor(level models.LevelCode, points decimal.Decimal) (models.DivisionScale, error) {
	for _, row := range s.divisionsByLevel[level] {
		if row.Contains(points) {
			return row, nil
		}
	}
	return models.DivisionScale{}, errors.Wrapf(ErrNotConfigured,
		"no division band covers %s points for level %s", points.String(), level)
}

// CombinationSubjects returns the subjects of an A-Level combination with
// their CORE/SUBSIDIARY roles.
func (s *Snapshot) CombinationSubjects(combinationID string) ([]models.CombinationSubject, error) {
	subs, ok := s.combinations[combinationID]
	if !ok || len(subs) == 0 {
		return nil, errors.Wrapf(ErrNotConfigured, "combination %s has no subjects", combinationID)
	}
	return subs, nil
}

// ExamType returns the exam type by ID.
func (s *Snapshot) ExamType(id string) (models.ExamType, error) {
	et, ok := s.examTypesByID[id]
	if !ok {
		return models.ExamType{}, errors.Wrapf(ErrNotConfigured, "exam type %s not found", id)
	}
	return et, nil
}

// CompulsorySubjects returns the IDs of subjects every student of the level sits.
func (s *Snapshot) CompulsorySubjects(level models.LevelCode) []string {
	return s.compulsory[level]
}
