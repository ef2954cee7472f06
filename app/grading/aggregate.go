package grading

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/mrisho2348/matimbwa-ss-sub000/app/models"
)

var oneHundred = decimal.NewFromInt(100)

// Computation is the full outcome of aggregating one student in one session:
// the result rows with their derived fields rewritten, the metrics row when
// the student is eligible, and the eligibility verdict. The caller persists
// Results either way, upserts Metrics when eligible and deletes any existing
// metrics row when not.
type Computation struct {
	StudentID   string
	Results     []*models.StudentResult
	Metrics     *models.StudentExamMetrics
	Eligibility Eligibility
}

// ComputeMetrics derives per-subject grades and the session aggregates for
// one student. It is pure: all inputs are in memory and results are mutated
// in place, never written anywhere.
func (s *Snapshot) ComputeMetrics(sess *models.ExamSession, student *models.Student, results []*models.StudentResult) (*Computation, error) {
	comp := &Computation{StudentID: student.ID, Results: results}

	examType, err := s.ExamType(sess.ExamTypeID)
	if err != nil {
		return nil, err
	}
	if examType.MaxScore.LessThanOrEqual(decimal.Zero) {
		return nil, errors.Wrapf(ErrNotConfigured, "exam type %s has max score %s", examType.Code, examType.MaxScore)
	}

	scaleMissing := false
	scored := 0
	for _, r := range results {
		if !r.Scored() {
			r.Percentage = decimal.NullDecimal{}
			r.Grade = nil
			r.GradePoint = decimal.NullDecimal{}
			continue
		}
		scored++
		pct := r.Marks.Decimal.Div(examType.MaxScore).Mul(oneHundred).RoundBank(2)
		r.Percentage = decimal.NullDecimal{Decimal: pct, Valid: true}

		resolved, err := s.ResolveGrade(sess.ClassLevel, pct)
		if err != nil {
			if !errors.Is(err, ErrNotConfigured) {
				return nil, err
			}
			// Uncovered percentage: empty grade, zero points, and the
			// student drops out of metrics for this session.
			empty := ""
			r.Grade = &empty
			r.GradePoint = decimal.NullDecimal{Decimal: decimal.Zero, Valid: true}
			scaleMissing = true
			continue
		}
		grade := resolved.Grade
		r.Grade = &grade
		r.GradePoint = decimal.NullDecimal{Decimal: resolved.Points, Valid: true}
	}

	if scored == 0 {
		comp.Eligibility = notEligible("no results")
		return comp, nil
	}
	if scaleMissing {
		comp.Eligibility = notEligible("scale missing")
		return comp, nil
	}

	set, elig := s.ClassifySubjects(student, results)
	if !elig.Eligible {
		comp.Eligibility = elig
		return comp, nil
	}

	// Totals run over every scored subject, not just the best-N that feed
	// the grade-point aggregate.
	totalMarks := decimal.Zero
	for _, r := range results {
		if r.Scored() {
			totalMarks = totalMarks.Add(r.Marks.Decimal)
		}
	}
	averageMarks := totalMarks.Div(decimal.NewFromInt(int64(scored))).RoundBank(2)
	averagePct := averageMarks.Div(examType.MaxScore).Mul(oneHundred).RoundBank(2)
	averageGrade, averageRemark := ResolveAverageGrade(averagePct)

	metrics := &models.StudentExamMetrics{
		SessionID:         sess.ID,
		StudentID:         student.ID,
		TotalMarks:        totalMarks,
		AverageMarks:      averageMarks,
		AveragePercentage: averagePct,
		AverageGrade:      averageGrade,
		AverageRemark:     averageRemark,
	}

	switch sess.ClassLevel {
	case models.LevelOLevel:
		points := sumTopPoints(set.Scored, OLevelMinSubjects)
		metrics.TotalGradePoints = decimal.NullDecimal{Decimal: points, Valid: true}
	case models.LevelALevel:
		points := sumTopPoints(set.Core, ALevelMinCore).Add(sumTopPoints(set.Subsidiary, 1))
		metrics.TotalGradePoints = decimal.NullDecimal{Decimal: points, Valid: true}
	}

	if metrics.TotalGradePoints.Valid {
		metrics.TotalGradePoints.Decimal = metrics.TotalGradePoints.Decimal.RoundBank(1)
		band, err := s.DivisionFor(sess.ClassLevel, metrics.TotalGradePoints.Decimal.Floor())
		if err != nil {
			if !errors.Is(err, ErrNotConfigured) {
				return nil, err
			}
			comp.Eligibility = notEligible("scale missing")
			return comp, nil
		}
		div := band.Division
		metrics.Division = &div
	}

	comp.Metrics = metrics
	comp.Eligibility = eligible()
	return comp, nil
}

// sumTopPoints sums the n largest grade points among the given results.
func sumTopPoints(results []*models.StudentResult, n int) decimal.Decimal {
	points := make([]decimal.Decimal, 0, len(results))
	for _, r := range results {
		if r.GradePoint.Valid {
			points = append(points, r.GradePoint.Decimal)
		}
	}
	sort.Slice(points, func(i, j int) bool { return points[i].GreaterThan(points[j]) })
	if n > len(points) {
		n = len(points)
	}
	sum := decimal.Zero
	for _, p := range points[:n] {
		sum = sum.Add(p)
	}
	return sum
}
