package grading

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrisho2348/matimbwa-ss-sub000/app/models"
)

func entry(studentID, regNo string, stream *string, avgPct, totalMarks float64) RankEntry {
	return RankEntry{
		StudentID:         studentID,
		RegNo:             regNo,
		Stream:            stream,
		AveragePercentage: d(avgPct),
		TotalMarks:        d(totalMarks),
	}
}

func classPositionOf(t *testing.T, rows []models.StudentExamPosition, studentID string) int {
	t.Helper()
	for _, row := range rows {
		if row.StudentID == studentID {
			require.NotNil(t, row.ClassPosition, "student %s has no class position", studentID)
			return *row.ClassPosition
		}
	}
	t.Fatalf("student %s not ranked", studentID)
	return 0
}

func TestRankSessionOrdersByAverageThenTotalThenRegNo(t *testing.T) {
	entries := []RankEntry{
		entry("s1", "S2348/0003/2025", nil, 70.00, 490),
		entry("s2", "S2348/0001/2025", nil, 78.50, 540),
		entry("s3", "S2348/0002/2025", nil, 78.50, 550),
	}
	rows := RankSession("sess-o", entries, nil)
	require.Len(t, rows, 3)

	assert.Equal(t, 1, classPositionOf(t, rows, "s3"))
	assert.Equal(t, 2, classPositionOf(t, rows, "s2"))
	assert.Equal(t, 3, classPositionOf(t, rows, "s1"))
}

func TestRankSessionBreaksFullTieByRegNo(t *testing.T) {
	// Identical average and total: the lower registration number wins.
	entries := []RankEntry{
		entry("bob", "S2348/0011/2025", nil, 78.50, 550),
		entry("alice", "S2348/0010/2025", nil, 78.50, 550),
	}
	rows := RankSession("sess-o", entries, nil)
	assert.Equal(t, 1, classPositionOf(t, rows, "alice"))
	assert.Equal(t, 2, classPositionOf(t, rows, "bob"))
}

func TestRankSessionPositionsAreAPermutation(t *testing.T) {
	const n = 40
	entries := make([]RankEntry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, entry(
			fmt.Sprintf("s%02d", i),
			fmt.Sprintf("S2348/%04d/2025", i),
			nil,
			float64(40+i%7)+0.25*float64(i%3),
			float64(300+i%11),
		))
	}
	rows := RankSession("sess-o", entries, nil)
	require.Len(t, rows, n)

	seen := make(map[int]bool, n)
	for _, row := range rows {
		require.NotNil(t, row.ClassPosition)
		assert.False(t, seen[*row.ClassPosition], "duplicate position %d", *row.ClassPosition)
		seen[*row.ClassPosition] = true
		assert.GreaterOrEqual(t, *row.ClassPosition, 1)
		assert.LessOrEqual(t, *row.ClassPosition, n)
	}
}

func TestRankSessionDeterministicUnderShuffle(t *testing.T) {
	entries := make([]RankEntry, 0, 20)
	for i := 0; i < 20; i++ {
		entries = append(entries, entry(
			fmt.Sprintf("s%02d", i),
			fmt.Sprintf("S2348/%04d/2025", i),
			nil,
			float64(50+i%5),
			float64(400+i%4),
		))
	}
	want := RankSession("sess-o", entries, nil)

	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 5; trial++ {
		shuffled := append([]RankEntry(nil), entries...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		got := RankSession("sess-o", shuffled, nil)
		for _, w := range want {
			assert.Equal(t, *w.ClassPosition, classPositionOf(t, got, w.StudentID))
		}
	}
}

func TestRankSessionStreamPositions(t *testing.T) {
	streamA, streamB := "A", "B"
	entries := []RankEntry{
		entry("s1", "S2348/0001/2025", &streamA, 90, 630),
		entry("s2", "S2348/0002/2025", &streamB, 85, 600),
		entry("s3", "S2348/0003/2025", &streamA, 80, 560),
		entry("s4", "S2348/0004/2025", nil, 75, 520),
	}
	rows := RankSession("sess-o", entries, nil)

	byID := make(map[string]models.StudentExamPosition)
	for _, row := range rows {
		byID[row.StudentID] = row
	}

	require.NotNil(t, byID["s1"].StreamPosition)
	assert.Equal(t, 1, *byID["s1"].StreamPosition)
	require.NotNil(t, byID["s3"].StreamPosition)
	assert.Equal(t, 2, *byID["s3"].StreamPosition)
	require.NotNil(t, byID["s2"].StreamPosition)
	assert.Equal(t, 1, *byID["s2"].StreamPosition)
	assert.Nil(t, byID["s4"].StreamPosition)
	assert.Equal(t, 4, classPositionOf(t, rows, "s4"))
}

func TestRankSessionIneligibleRows(t *testing.T) {
	entries := []RankEntry{
		entry("s1", "S2348/0001/2025", nil, 70, 490),
	}
	ineligible := []Ineligible{
		{StudentID: "s2", Reason: "fewer than 7 subjects with grade points (4)"},
	}
	rows := RankSession("sess-o", entries, ineligible)
	require.Len(t, rows, 2)

	byID := make(map[string]models.StudentExamPosition)
	for _, row := range rows {
		byID[row.StudentID] = row
	}
	assert.Nil(t, byID["s2"].ClassPosition)
	assert.Nil(t, byID["s2"].StreamPosition)
	require.NotNil(t, byID["s2"].EligibilityReason)
	assert.Contains(t, *byID["s2"].EligibilityReason, "fewer than 7")
	assert.Equal(t, "sess-o", byID["s2"].SessionID)
}

func TestRankSessionEmpty(t *testing.T) {
	rows := RankSession("sess-o", nil, nil)
	assert.Empty(t, rows)
}
