package database

import (
	"database/sql"
	"log"
)

// RunMigrations checks and applies necessary schema updates
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	if err := createTables(db); err != nil {
		return err
	}
	if err := addExamTypeWeightColumn(db); err != nil {
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createTables(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS exam_types (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			code VARCHAR(30) UNIQUE NOT NULL,
			name VARCHAR(100) NOT NULL,
			max_score NUMERIC(7,2) NOT NULL CHECK (max_score > 0),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS grading_scales (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			level VARCHAR(20) NOT NULL,
			grade VARCHAR(5) NOT NULL,
			min_mark NUMERIC(5,2) NOT NULL,
			max_mark NUMERIC(5,2) NOT NULL,
			points NUMERIC(4,1) NOT NULL DEFAULT 0 CHECK (points >= 0),
			remark VARCHAR(50) NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (level, grade)
		)`,
		`CREATE TABLE IF NOT EXISTS division_scales (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			level VARCHAR(20) NOT NULL,
			division VARCHAR(5) NOT NULL,
			min_points NUMERIC(5,1) NOT NULL,
			max_points NUMERIC(5,1) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (level, division)
		)`,
		`CREATE TABLE IF NOT EXISTS subjects (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			code VARCHAR(20) UNIQUE NOT NULL,
			name VARCHAR(100) NOT NULL,
			level VARCHAR(20) NOT NULL,
			is_compulsory BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS combinations (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			code VARCHAR(20) UNIQUE NOT NULL,
			name VARCHAR(100) NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS combination_subjects (
			combination_id UUID NOT NULL REFERENCES combinations(id) ON DELETE CASCADE,
			subject_id UUID NOT NULL REFERENCES subjects(id),
			role VARCHAR(15) NOT NULL CHECK (role IN ('CORE', 'SUBSIDIARY')),
			PRIMARY KEY (combination_id, subject_id)
		)`,
		`CREATE TABLE IF NOT EXISTS students (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			reg_no VARCHAR(40) UNIQUE NOT NULL,
			first_name VARCHAR(60) NOT NULL DEFAULT '',
			last_name VARCHAR(60) NOT NULL DEFAULT '',
			class_level VARCHAR(20) NOT NULL,
			stream VARCHAR(20),
			combination_id UUID REFERENCES combinations(id),
			status VARCHAR(20) NOT NULL DEFAULT 'active',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS student_optional_subjects (
			student_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			subject_id UUID NOT NULL REFERENCES subjects(id),
			PRIMARY KEY (student_id, subject_id)
		)`,
		`CREATE TABLE IF NOT EXISTS exam_sessions (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			exam_type_id UUID NOT NULL REFERENCES exam_types(id),
			academic_year INT NOT NULL,
			term INT NOT NULL CHECK (term BETWEEN 1 AND 3),
			class_level VARCHAR(20) NOT NULL,
			stream_class VARCHAR(20),
			exam_date DATE NOT NULL,
			state VARCHAR(15) NOT NULL DEFAULT 'draft',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS student_results (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			session_id UUID NOT NULL REFERENCES exam_sessions(id) ON DELETE CASCADE,
			student_id UUID NOT NULL REFERENCES students(id),
			subject_id UUID NOT NULL REFERENCES subjects(id),
			marks NUMERIC(7,2),
			percentage NUMERIC(5,2),
			grade VARCHAR(5),
			grade_point NUMERIC(4,1),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (session_id, student_id, subject_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_student_results_session_student
			ON student_results (session_id, student_id)`,
		`CREATE TABLE IF NOT EXISTS student_exam_metrics (
			session_id UUID NOT NULL REFERENCES exam_sessions(id) ON DELETE CASCADE,
			student_id UUID NOT NULL REFERENCES students(id),
			total_marks NUMERIC(9,2) NOT NULL,
			average_marks NUMERIC(7,2) NOT NULL,
			average_percentage NUMERIC(5,2) NOT NULL,
			average_grade VARCHAR(5) NOT NULL,
			average_remark VARCHAR(30) NOT NULL,
			total_grade_points NUMERIC(5,1),
			division VARCHAR(5),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (session_id, student_id)
		)`,
		`CREATE TABLE IF NOT EXISTS student_exam_positions (
			session_id UUID NOT NULL REFERENCES exam_sessions(id) ON DELETE CASCADE,
			student_id UUID NOT NULL REFERENCES students(id),
			class_position INT,
			stream_position INT,
			eligibility_reason VARCHAR(100),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (session_id, student_id)
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			log.Printf("Failed to run schema statement: %v", err)
			return err
		}
	}
	return nil
}

func addExamTypeWeightColumn(db *sql.DB) error {
	query := `
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1
				FROM information_schema.columns
				WHERE table_name = 'exam_types'
				AND column_name = 'weight'
			) THEN
				ALTER TABLE exam_types ADD COLUMN weight NUMERIC(5,2) NOT NULL DEFAULT 1;
				RAISE NOTICE 'Added weight column to exam_types';
			END IF;
		END $$;
	`
	_, err := db.Exec(query)
	if err != nil {
		log.Printf("Failed to run migration for weight column: %v", err)
		return err
	}
	return nil
}
