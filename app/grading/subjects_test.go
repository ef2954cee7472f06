package grading

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrisho2348/matimbwa-ss-sub000/app/models"
)

func graded(r *models.StudentResult, points float64) *models.StudentResult {
	r.GradePoint = nd(points)
	return r
}

func TestClassifySubjectsPrimary(t *testing.T) {
	snap := testSnapshot()
	student := &models.Student{ID: "s1", ClassLevel: models.LevelPrimary, Status: models.StudentActive}

	results := []*models.StudentResult{
		result("r1", "s1", "eng", 70),
		result("r2", "s1", "math", 55),
		absent("r3", "s1", "sci"),
	}
	set, elig := snap.ClassifySubjects(student, results)
	assert.True(t, elig.Eligible)
	assert.Len(t, set.Scored, 2)
	assert.Empty(t, set.Core)
	assert.Empty(t, set.Subsidiary)
}

func TestClassifySubjectsNoResults(t *testing.T) {
	snap := testSnapshot()
	student := &models.Student{ID: "s1", ClassLevel: models.LevelOLevel, Status: models.StudentActive}

	_, elig := snap.ClassifySubjects(student, []*models.StudentResult{absent("r1", "s1", "eng")})
	assert.False(t, elig.Eligible)
	assert.Equal(t, "no results", elig.Reason)
}

func TestClassifySubjectsOLevelBelowMinimum(t *testing.T) {
	snap := testSnapshot()
	student := &models.Student{ID: "s1", ClassLevel: models.LevelOLevel, Status: models.StudentActive}

	results := make([]*models.StudentResult, 0, 4)
	for i := 0; i < 4; i++ {
		sub := fmt.Sprintf("sub-%d", i)
		results = append(results, graded(result(sub, "s1", sub, 70), 2))
	}
	set, elig := snap.ClassifySubjects(student, results)
	assert.False(t, elig.Eligible)
	assert.Contains(t, elig.Reason, "fewer than 7")
	assert.Len(t, set.Scored, 4)
}

func TestClassifySubjectsOLevelSevenSubjects(t *testing.T) {
	snap := testSnapshot()
	student := &models.Student{ID: "s1", ClassLevel: models.LevelOLevel, Status: models.StudentActive}

	results := make([]*models.StudentResult, 0, 7)
	for i := 0; i < 7; i++ {
		sub := fmt.Sprintf("sub-%d", i)
		results = append(results, graded(result(sub, "s1", sub, 70), 2))
	}
	set, elig := snap.ClassifySubjects(student, results)
	assert.True(t, elig.Eligible)
	assert.Len(t, set.Scored, 7)
}

func TestClassifySubjectsOLevelUngradedDoNotCount(t *testing.T) {
	snap := testSnapshot()
	student := &models.Student{ID: "s1", ClassLevel: models.LevelOLevel, Status: models.StudentActive}

	// Seven scored subjects but only six carry a grade point.
	results := make([]*models.StudentResult, 0, 7)
	for i := 0; i < 6; i++ {
		sub := fmt.Sprintf("sub-%d", i)
		results = append(results, graded(result(sub, "s1", sub, 70), 2))
	}
	results = append(results, result("sub-6", "s1", "sub-6", 70))

	_, elig := snap.ClassifySubjects(student, results)
	assert.False(t, elig.Eligible)
	assert.Contains(t, elig.Reason, "(6)")
}

func TestClassifySubjectsALevel(t *testing.T) {
	snap := testSnapshot()
	comb := "pcm"
	student := &models.Student{
		ID:            "s1",
		ClassLevel:    models.LevelALevel,
		CombinationID: &comb,
		Status:        models.StudentActive,
	}

	results := []*models.StudentResult{
		graded(result("r1", "s1", "phys", 75), 2),
		graded(result("r2", "s1", "chem", 65), 3),
		graded(result("r3", "s1", "math", 85), 1),
		graded(result("r4", "s1", "gs", 65), 3),
		// Biology is not in PCM and must be ignored entirely.
		graded(result("r5", "s1", "bio", 55), 4),
	}
	set, elig := snap.ClassifySubjects(student, results)
	require.True(t, elig.Eligible)
	assert.Len(t, set.Scored, 4)
	assert.Len(t, set.Core, 3)
	assert.Len(t, set.Subsidiary, 1)
	for _, r := range set.Scored {
		assert.NotEqual(t, "bio", r.SubjectID)
	}
}

func TestClassifySubjectsALevelMissingCombination(t *testing.T) {
	snap := testSnapshot()
	student := &models.Student{ID: "s1", ClassLevel: models.LevelALevel, Status: models.StudentActive}

	_, elig := snap.ClassifySubjects(student, []*models.StudentResult{
		graded(result("r1", "s1", "phys", 75), 2),
	})
	assert.False(t, elig.Eligible)
	assert.Equal(t, "no combination assigned", elig.Reason)

	unknown := "hgl"
	student.CombinationID = &unknown
	_, elig = snap.ClassifySubjects(student, []*models.StudentResult{
		graded(result("r1", "s1", "phys", 75), 2),
	})
	assert.False(t, elig.Eligible)
	assert.Equal(t, "combination not configured", elig.Reason)
}

func TestClassifySubjectsALevelTooFewCore(t *testing.T) {
	snap := testSnapshot()
	comb := "pcm"
	student := &models.Student{
		ID:            "s1",
		ClassLevel:    models.LevelALevel,
		CombinationID: &comb,
		Status:        models.StudentActive,
	}

	results := []*models.StudentResult{
		graded(result("r1", "s1", "phys", 75), 2),
		graded(result("r2", "s1", "chem", 65), 3),
		graded(result("r3", "s1", "gs", 65), 3),
	}
	_, elig := snap.ClassifySubjects(student, results)
	assert.False(t, elig.Eligible)
	assert.Contains(t, elig.Reason, "fewer than 3 core")
}
