package services

import (
	"context"
	"database/sql"

	"github.com/mrisho2348/matimbwa-ss-sub000/app/database"
	"github.com/mrisho2348/matimbwa-ss-sub000/app/grading"
	"github.com/mrisho2348/matimbwa-ss-sub000/app/models"
)

// Store is the slice of the results repository a recompute flush needs.
type Store interface {
	Session(ctx context.Context, sessionID string) (*models.ExamSession, error)
	Snapshot(ctx context.Context) (*grading.Snapshot, error)
	Student(ctx context.Context, studentID string) (*models.Student, error)
	Results(ctx context.Context, sessionID, studentID string) ([]*models.StudentResult, error)
	StudentIDsWithResults(ctx context.Context, sessionID string) ([]string, error)
	RankEntries(ctx context.Context, sessionID string) ([]grading.RankEntry, error)
	Positions(ctx context.Context, sessionID string) ([]models.StudentExamPosition, error)
	Apply(ctx context.Context, sessionID string, comps []*grading.Computation, positions []models.StudentExamPosition) error
}

// sqlStore adapts the database package to the Store interface.
type sqlStore struct {
	db *sql.DB
}

// NewStore wraps a database handle as a flush Store.
func NewStore(db *sql.DB) Store {
	return &sqlStore{db: db}
}

func (s *sqlStore) Session(ctx context.Context, sessionID string) (*models.ExamSession, error) {
	return database.GetExamSession(ctx, s.db, sessionID)
}

func (s *sqlStore) Snapshot(ctx context.Context) (*grading.Snapshot, error) {
	return database.LoadSnapshot(ctx, s.db)
}

func (s *sqlStore) Student(ctx context.Context, studentID string) (*models.Student, error) {
	return database.GetStudent(ctx, s.db, studentID)
}

func (s *sqlStore) Results(ctx context.Context, sessionID, studentID string) ([]*models.StudentResult, error) {
	return database.ResultsForStudent(ctx, s.db, sessionID, studentID)
}

func (s *sqlStore) StudentIDsWithResults(ctx context.Context, sessionID string) ([]string, error) {
	return database.StudentIDsWithResults(ctx, s.db, sessionID)
}

func (s *sqlStore) RankEntries(ctx context.Context, sessionID string) ([]grading.RankEntry, error) {
	return database.SessionRankEntries(ctx, s.db, sessionID)
}

func (s *sqlStore) Positions(ctx context.Context, sessionID string) ([]models.StudentExamPosition, error) {
	return database.ReadPositions(ctx, s.db, sessionID)
}

func (s *sqlStore) Apply(ctx context.Context, sessionID string, comps []*grading.Computation, positions []models.StudentExamPosition) error {
	return database.ApplyFlush(ctx, s.db, sessionID, comps, positions)
}
