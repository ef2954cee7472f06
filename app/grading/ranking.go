package grading

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mrisho2348/matimbwa-ss-sub000/app/models"
)

// Ineligible names a student who has results in the session but no metrics,
// with the reason they were excluded.
type Ineligible struct {
	StudentID string
	Reason    string
}

// RankEntry is one eligible student's sort key for position assignment.
type RankEntry struct {
	StudentID         string
	RegNo             string
	Stream            *string
	AveragePercentage decimal.Decimal
	TotalMarks        decimal.Decimal
}

// RankSession orders the eligible students of a session and assigns unique
// class and stream positions 1..N. The sort key is (average percentage
// descending, total marks descending, registration number ascending); the
// registration number makes every ordering deterministic, so two students can
// never share a rank. Ineligible students get a row with null positions and
// the recorded reason.
func RankSession(sessionID string, entries []RankEntry, ineligible []Ineligible) []models.StudentExamPosition {
	ranked := append([]RankEntry(nil), entries...)
	sort.Slice(ranked, func(i, j int) bool { return less(ranked[i], ranked[j]) })

	positions := make([]models.StudentExamPosition, 0, len(ranked)+len(ineligible))
	byStudent := make(map[string]*models.StudentExamPosition, len(ranked))
	for i := range ranked {
		pos := i + 1
		positions = append(positions, models.StudentExamPosition{
			SessionID:     sessionID,
			StudentID:     ranked[i].StudentID,
			ClassPosition: &pos,
		})
		byStudent[ranked[i].StudentID] = &positions[len(positions)-1]
	}

	// Stream positions: rank again within each stream; students without a
	// stream keep a null stream position.
	byStream := make(map[string][]RankEntry)
	for _, e := range ranked {
		if e.Stream == nil || *e.Stream == "" {
			continue
		}
		byStream[*e.Stream] = append(byStream[*e.Stream], e)
	}
	for _, group := range byStream {
		sort.Slice(group, func(i, j int) bool { return less(group[i], group[j]) })
		for i := range group {
			pos := i + 1
			byStudent[group[i].StudentID].StreamPosition = &pos
		}
	}

	for _, in := range ineligible {
		reason := in.Reason
		positions = append(positions, models.StudentExamPosition{
			SessionID:         sessionID,
			StudentID:         in.StudentID,
			EligibilityReason: &reason,
		})
	}
	return positions
}

func less(a, b RankEntry) bool {
	if !a.AveragePercentage.Equal(b.AveragePercentage) {
		return a.AveragePercentage.GreaterThan(b.AveragePercentage)
	}
	if !a.TotalMarks.Equal(b.TotalMarks) {
		return a.TotalMarks.GreaterThan(b.TotalMarks)
	}
	return a.RegNo < b.RegNo
}
