package grading

import (
	"github.com/shopspring/decimal"

	"github.com/mrisho2348/matimbwa-ss-sub000/app/models"
)

func d(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func decimalFromInt(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func nd(f float64) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.NewFromFloat(f), Valid: true}
}

func scale(level models.LevelCode, grade string, min, max, points float64, remark string) models.GradingScale {
	return models.GradingScale{
		Level:   level,
		Grade:   grade,
		MinMark: d(min),
		MaxMark: d(max),
		Points:  d(points),
		Remark:  remark,
	}
}

func division(level models.LevelCode, div models.Division, min, max float64) models.DivisionScale {
	return models.DivisionScale{
		Level:     level,
		Division:  div,
		MinPoints: d(min),
		MaxPoints: d(max),
	}
}

// testSnapshot configures the O-Level scale A>=80, B>=65, C>=50, D>=35, F<35
// with points 1..5, an A-Level scale with points 1..7, and division bands for
// both levels. The PCM combination has Physics, Chemistry and Mathematics as
// CORE and General Studies as SUBSIDIARY.
func testSnapshot() *Snapshot {
	scales := []models.GradingScale{
		scale(models.LevelOLevel, "A", 80, 100, 1, "Excellent"),
		scale(models.LevelOLevel, "B", 65, 79.99, 2, "Very Good"),
		scale(models.LevelOLevel, "C", 50, 64.99, 3, "Good"),
		scale(models.LevelOLevel, "D", 35, 49.99, 4, "Satisfactory"),
		scale(models.LevelOLevel, "F", 0, 34.99, 5, "Fail"),

		scale(models.LevelALevel, "A", 80, 100, 1, "Excellent"),
		scale(models.LevelALevel, "B", 70, 79.99, 2, "Very Good"),
		scale(models.LevelALevel, "C", 60, 69.99, 3, "Good"),
		scale(models.LevelALevel, "D", 50, 59.99, 4, "Satisfactory"),
		scale(models.LevelALevel, "E", 40, 49.99, 5, "Pass"),
		scale(models.LevelALevel, "S", 35, 39.99, 6, "Subsidiary Pass"),
		scale(models.LevelALevel, "F", 0, 34.99, 7, "Fail"),

		scale(models.LevelPrimary, "A", 80, 100, 0, "Excellent"),
		scale(models.LevelPrimary, "B", 65, 79.99, 0, "Very Good"),
		scale(models.LevelPrimary, "C", 50, 64.99, 0, "Good"),
		scale(models.LevelPrimary, "D", 35, 49.99, 0, "Satisfactory"),
		scale(models.LevelPrimary, "F", 0, 34.99, 0, "Fail"),
	}
	divisions := []models.DivisionScale{
		division(models.LevelOLevel, models.DivisionI, 7, 15),
		division(models.LevelOLevel, models.DivisionII, 16, 21),
		division(models.LevelOLevel, models.DivisionIII, 22, 25),
		division(models.LevelOLevel, models.DivisionIV, 26, 32),
		division(models.LevelOLevel, models.DivisionZero, 33, 35),

		division(models.LevelALevel, models.DivisionI, 3, 9),
		division(models.LevelALevel, models.DivisionII, 10, 12),
		division(models.LevelALevel, models.DivisionIII, 13, 17),
		division(models.LevelALevel, models.DivisionIV, 18, 19),
		division(models.LevelALevel, models.DivisionZero, 20, 28),
	}
	examTypes := []models.ExamType{
		{ID: "terminal", Code: "TERMINAL", Name: "Terminal Exam", MaxScore: d(100), Weight: d(1)},
		{ID: "midterm50", Code: "MIDTERM", Name: "Mid Term Exam", MaxScore: d(50), Weight: d(1)},
	}
	combinations := []models.CombinationSubject{
		{CombinationID: "pcm", SubjectID: "phys", Role: models.RoleCore},
		{CombinationID: "pcm", SubjectID: "chem", Role: models.RoleCore},
		{CombinationID: "pcm", SubjectID: "math", Role: models.RoleCore},
		{CombinationID: "pcm", SubjectID: "gs", Role: models.RoleSubsidiary},
	}
	return NewSnapshot(scales, divisions, examTypes, combinations, nil)
}

func oLevelSession() *models.ExamSession {
	return &models.ExamSession{
		ID:         "sess-o",
		ExamTypeID: "terminal",
		ClassLevel: models.LevelOLevel,
	}
}

func aLevelSession() *models.ExamSession {
	return &models.ExamSession{
		ID:         "sess-a",
		ExamTypeID: "terminal",
		ClassLevel: models.LevelALevel,
	}
}

func result(id, studentID, subjectID string, marks float64) *models.StudentResult {
	return &models.StudentResult{
		ID:        id,
		SessionID: "sess-o",
		StudentID: studentID,
		SubjectID: subjectID,
		Marks:     nd(marks),
	}
}

func absent(id, studentID, subjectID string) *models.StudentResult {
	return &models.StudentResult{
		ID:        id,
		SessionID: "sess-o",
		StudentID: studentID,
		SubjectID: subjectID,
	}
}
