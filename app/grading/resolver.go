package grading

import (
	"github.com/shopspring/decimal"

	"github.com/mrisho2348/matimbwa-ss-sub000/app/models"
)

// ResolvedGrade is the outcome of looking a percentage up in the configured
// grading scales.
type ResolvedGrade struct {
	Grade  string
	Points decimal.Decimal
	Remark string
}

// ResolveGrade maps a percentage to its configured grade for the level. The
// percentage is rounded to two decimals with banker's rounding before the
// interval match, so it lands on the same side of a boundary as the value
// printed on report cards.
func (s *Snapshot) ResolveGrade(level models.LevelCode, percentage decimal.Decimal) (ResolvedGrade, error) {
	pct := percentage.RoundBank(2)
	row, err := s.ScaleFor(level, pct)
	if err != nil {
		return ResolvedGrade{}, err
	}
	return ResolvedGrade{Grade: row.Grade, Points: row.Points, Remark: row.Remark}, nil
}

// fixed thresholds for the coarse average grade; these deliberately stay
// independent of the configured scales so the aggregate grade remains defined
// even when a level's scale table has gaps.
var averageBands = []struct {
	min    decimal.Decimal
	grade  string
	remark string
}{
	{decimal.NewFromInt(80), "A", "Excellent"},
	{decimal.NewFromInt(70), "B", "Very Good"},
	{decimal.NewFromInt(60), "C", "Good"},
	{decimal.NewFromInt(50), "D", "Satisfactory"},
	{decimal.NewFromInt(40), "E", "Fair"},
}

// ResolveAverageGrade maps an average percentage to the coarse letter grade
// and remark used for the session aggregate.
func ResolveAverageGrade(pct decimal.Decimal) (grade, remark string) {
	for _, band := range averageBands {
		if pct.GreaterThanOrEqual(band.min) {
			return band.grade, band.remark
		}
	}
	return "F", "Poor"
}
