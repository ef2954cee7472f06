package database

import (
	"database/sql"
	"log"
)

// SeedReferenceData installs default grading scales, division bands and exam
// types when the reference tables are empty. Existing rows are never touched.
func SeedReferenceData(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM grading_scales`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	log.Println("Seeding default grading reference data...")

	seeds := []string{
		// O-Level grade bands; points ascend as performance drops so that a
		// low total means a strong division.
		`INSERT INTO grading_scales (level, grade, min_mark, max_mark, points, remark) VALUES
			('O_LEVEL', 'A', 80, 100, 1, 'Excellent'),
			('O_LEVEL', 'B', 65, 79.99, 2, 'Very Good'),
			('O_LEVEL', 'C', 50, 64.99, 3, 'Good'),
			('O_LEVEL', 'D', 35, 49.99, 4, 'Satisfactory'),
			('O_LEVEL', 'F', 0, 34.99, 5, 'Fail')`,
		`INSERT INTO grading_scales (level, grade, min_mark, max_mark, points, remark) VALUES
			('A_LEVEL', 'A', 80, 100, 1, 'Excellent'),
			('A_LEVEL', 'B', 70, 79.99, 2, 'Very Good'),
			('A_LEVEL', 'C', 60, 69.99, 3, 'Good'),
			('A_LEVEL', 'D', 50, 59.99, 4, 'Satisfactory'),
			('A_LEVEL', 'E', 40, 49.99, 5, 'Pass'),
			('A_LEVEL', 'S', 35, 39.99, 6, 'Subsidiary Pass'),
			('A_LEVEL', 'F', 0, 34.99, 7, 'Fail')`,
		`INSERT INTO grading_scales (level, grade, min_mark, max_mark, points, remark) VALUES
			('PRIMARY', 'A', 80, 100, 0, 'Excellent'),
			('PRIMARY', 'B', 65, 79.99, 0, 'Very Good'),
			('PRIMARY', 'C', 50, 64.99, 0, 'Good'),
			('PRIMARY', 'D', 35, 49.99, 0, 'Satisfactory'),
			('PRIMARY', 'F', 0, 34.99, 0, 'Fail')`,
		`INSERT INTO division_scales (level, division, min_points, max_points) VALUES
			('O_LEVEL', 'I', 7, 17),
			('O_LEVEL', 'II', 18, 21),
			('O_LEVEL', 'III', 22, 25),
			('O_LEVEL', 'IV', 26, 32),
			('O_LEVEL', '0', 33, 35)`,
		`INSERT INTO division_scales (level, division, min_points, max_points) VALUES
			('A_LEVEL', 'I', 3, 9),
			('A_LEVEL', 'II', 10, 12),
			('A_LEVEL', 'III', 13, 17),
			('A_LEVEL', 'IV', 18, 19),
			('A_LEVEL', '0', 20, 28)`,
		`INSERT INTO exam_types (code, name, max_score) VALUES
			('MIDTERM', 'Mid Term Exam', 100),
			('TERMINAL', 'Terminal Exam', 100),
			('ANNUAL', 'Annual Exam', 100),
			('MOCK', 'Mock Exam', 100)
			ON CONFLICT (code) DO NOTHING`,
	}
	for _, stmt := range seeds {
		if _, err := db.Exec(stmt); err != nil {
			log.Printf("Failed to seed reference data: %v", err)
			return err
		}
	}
	log.Println("Reference data seeded")
	return nil
}
