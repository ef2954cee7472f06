package grading

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrisho2348/matimbwa-ss-sub000/app/models"
)

func TestComputeMetricsOLevelSevenSubjects(t *testing.T) {
	snap := testSnapshot()
	sess := oLevelSession()
	student := &models.Student{ID: "s1", RegNo: "S2348/0010/2025", ClassLevel: models.LevelOLevel, Status: models.StudentActive}

	// Grades A,A,B,B,C,C,D with points 1,1,2,2,3,3,4.
	marks := []float64{85, 85, 70, 70, 55, 55, 40}
	results := make([]*models.StudentResult, 0, len(marks))
	for i, m := range marks {
		sub := fmt.Sprintf("sub-%d", i)
		results = append(results, result(sub, "s1", sub, m))
	}

	comp, err := snap.ComputeMetrics(sess, student, results)
	require.NoError(t, err)
	require.True(t, comp.Eligibility.Eligible)
	require.NotNil(t, comp.Metrics)

	m := comp.Metrics
	assert.Equal(t, "460", m.TotalMarks.String())
	assert.Equal(t, "65.71", m.AverageMarks.StringFixed(2))
	assert.Equal(t, "65.71", m.AveragePercentage.StringFixed(2))
	assert.Equal(t, "C", m.AverageGrade)
	assert.Equal(t, "Good", m.AverageRemark)

	require.True(t, m.TotalGradePoints.Valid)
	assert.Equal(t, "16", m.TotalGradePoints.Decimal.String())
	require.NotNil(t, m.Division)
	assert.Equal(t, models.DivisionII, *m.Division)

	// Per-subject derived fields are rewritten in place.
	require.NotNil(t, results[0].Grade)
	assert.Equal(t, "A", *results[0].Grade)
	assert.Equal(t, "85.00", results[0].Percentage.Decimal.StringFixed(2))
	assert.Equal(t, "4", results[6].GradePoint.Decimal.String())
}

func TestComputeMetricsOLevelBelowMinimumHasNoMetrics(t *testing.T) {
	snap := testSnapshot()
	sess := oLevelSession()
	student := &models.Student{ID: "s1", RegNo: "S2348/0010/2025", ClassLevel: models.LevelOLevel, Status: models.StudentActive}

	results := []*models.StudentResult{
		result("r1", "s1", "eng", 82),
		result("r2", "s1", "math", 67),
		result("r3", "s1", "phys", 58),
		result("r4", "s1", "chem", 45),
	}
	comp, err := snap.ComputeMetrics(sess, student, results)
	require.NoError(t, err)
	assert.False(t, comp.Eligibility.Eligible)
	assert.Contains(t, comp.Eligibility.Reason, "fewer than 7")
	assert.Nil(t, comp.Metrics)

	// Per-subject grading still happened even though the student misses metrics.
	require.NotNil(t, results[0].Grade)
	assert.Equal(t, "A", *results[0].Grade)
}

func TestComputeMetricsALevelCombination(t *testing.T) {
	snap := testSnapshot()
	sess := aLevelSession()
	comb := "pcm"
	student := &models.Student{
		ID:            "s1",
		RegNo:         "S2348/0042/2024",
		ClassLevel:    models.LevelALevel,
		CombinationID: &comb,
		Status:        models.StudentActive,
	}

	results := []*models.StudentResult{
		result("r1", "s1", "phys", 75),
		result("r2", "s1", "chem", 65),
		result("r3", "s1", "math", 85),
		result("r4", "s1", "gs", 65),
		result("r5", "s1", "bio", 55),
	}
	comp, err := snap.ComputeMetrics(sess, student, results)
	require.NoError(t, err)
	require.True(t, comp.Eligibility.Eligible)
	require.NotNil(t, comp.Metrics)

	m := comp.Metrics
	// Best three core (math 1, phys 2, chem 3) plus the subsidiary (gs 3);
	// biology is outside the combination and contributes no points.
	require.True(t, m.TotalGradePoints.Valid)
	assert.Equal(t, "9", m.TotalGradePoints.Decimal.String())
	require.NotNil(t, m.Division)
	assert.Equal(t, models.DivisionI, *m.Division)

	// Totals still run over every scored subject, biology included.
	assert.Equal(t, "345", m.TotalMarks.String())
	assert.Equal(t, "69.00", m.AveragePercentage.StringFixed(2))
}

func TestComputeMetricsPrimaryHasNoGradePoints(t *testing.T) {
	snap := testSnapshot()
	sess := &models.ExamSession{ID: "sess-p", ExamTypeID: "terminal", ClassLevel: models.LevelPrimary}
	student := &models.Student{ID: "s1", RegNo: "P100", ClassLevel: models.LevelPrimary, Status: models.StudentActive}

	results := []*models.StudentResult{
		result("r1", "s1", "eng", 90),
		result("r2", "s1", "math", 70),
	}
	comp, err := snap.ComputeMetrics(sess, student, results)
	require.NoError(t, err)
	require.True(t, comp.Eligibility.Eligible)
	require.NotNil(t, comp.Metrics)
	assert.False(t, comp.Metrics.TotalGradePoints.Valid)
	assert.Nil(t, comp.Metrics.Division)
	assert.Equal(t, "80.00", comp.Metrics.AveragePercentage.StringFixed(2))
	assert.Equal(t, "A", comp.Metrics.AverageGrade)
}

func TestComputeMetricsScalesPercentageToMaxScore(t *testing.T) {
	snap := testSnapshot()
	sess := &models.ExamSession{ID: "sess-m", ExamTypeID: "midterm50", ClassLevel: models.LevelOLevel}
	student := &models.Student{ID: "s1", RegNo: "S2348/0010/2025", ClassLevel: models.LevelOLevel, Status: models.StudentActive}

	// 40 out of 50 is 80 percent, an A.
	results := []*models.StudentResult{result("r1", "s1", "eng", 40)}
	comp, err := snap.ComputeMetrics(sess, student, results)
	require.NoError(t, err)

	require.True(t, results[0].Percentage.Valid)
	assert.Equal(t, "80.00", results[0].Percentage.Decimal.StringFixed(2))
	require.NotNil(t, results[0].Grade)
	assert.Equal(t, "A", *results[0].Grade)
	assert.False(t, comp.Eligibility.Eligible)
}

func TestComputeMetricsClearsDerivedFieldsOnAbsent(t *testing.T) {
	snap := testSnapshot()
	sess := oLevelSession()
	student := &models.Student{ID: "s1", RegNo: "S2348/0010/2025", ClassLevel: models.LevelOLevel, Status: models.StudentActive}

	stale := "B"
	r := absent("r1", "s1", "eng")
	r.Percentage = nd(70)
	r.Grade = &stale
	r.GradePoint = nd(2)

	comp, err := snap.ComputeMetrics(sess, student, []*models.StudentResult{r})
	require.NoError(t, err)
	assert.False(t, comp.Eligibility.Eligible)
	assert.Equal(t, "no results", comp.Eligibility.Reason)
	assert.False(t, r.Percentage.Valid)
	assert.Nil(t, r.Grade)
	assert.False(t, r.GradePoint.Valid)
}

func TestComputeMetricsScaleGapMakesIneligible(t *testing.T) {
	// A scale covering only 0-50 leaves higher percentages unresolvable.
	snap := NewSnapshot(
		[]models.GradingScale{scale(models.LevelOLevel, "F", 0, 50, 5, "Fail")},
		nil,
		[]models.ExamType{{ID: "terminal", Code: "TERMINAL", Name: "Terminal Exam", MaxScore: d(100), Weight: d(1)}},
		nil, nil,
	)
	sess := oLevelSession()
	student := &models.Student{ID: "s1", RegNo: "S2348/0010/2025", ClassLevel: models.LevelOLevel, Status: models.StudentActive}

	r := result("r1", "s1", "eng", 82)
	comp, err := snap.ComputeMetrics(sess, student, []*models.StudentResult{r})
	require.NoError(t, err)
	assert.False(t, comp.Eligibility.Eligible)
	assert.Equal(t, "scale missing", comp.Eligibility.Reason)
	assert.Nil(t, comp.Metrics)

	// The uncovered subject keeps an empty grade and zero points.
	require.NotNil(t, r.Grade)
	assert.Equal(t, "", *r.Grade)
	require.True(t, r.GradePoint.Valid)
	assert.True(t, r.GradePoint.Decimal.IsZero())
}

func TestComputeMetricsUnknownExamType(t *testing.T) {
	snap := testSnapshot()
	sess := &models.ExamSession{ID: "sess-x", ExamTypeID: "nope", ClassLevel: models.LevelOLevel}
	student := &models.Student{ID: "s1", RegNo: "S2348/0010/2025", ClassLevel: models.LevelOLevel, Status: models.StudentActive}

	_, err := snap.ComputeMetrics(sess, student, []*models.StudentResult{result("r1", "s1", "eng", 50)})
	require.Error(t, err)
}
