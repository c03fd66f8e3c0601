package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/vocapets/vocapets/internal/db"
	"github.com/vocapets/vocapets/internal/models"
	"github.com/vocapets/vocapets/internal/repository"
	"github.com/vocapets/vocapets/internal/repository/sqlite"
	"github.com/vocapets/vocapets/internal/testutil"
)

type MasteryRepositorySuite struct {
	suite.Suite
	db   *db.DB
	repo repository.MasteryRepository
	now  time.Time
}

func (s *MasteryRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewMasteryRepository(s.db.DB)
	s.now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	_, err := s.db.ExecContext(context.Background(), `
INSERT INTO profiles (id, name, created_at) VALUES ('p1', 'tester', ?)
`, s.now)
	s.Require().NoError(err)
}

func (s *MasteryRepositorySuite) record(wordID string, level int, nextReviewAt time.Time) models.MasteryRecord {
	return models.MasteryRecord{
		ProfileID:      "p1",
		WordID:         wordID,
		Level:          level,
		MasteredAt:     s.now,
		LastReviewedAt: s.now,
		NextReviewAt:   nextReviewAt,
		CorrectStreak:  1,
	}
}

func (s *MasteryRepositorySuite) TestInsertGetUpdate() {
	ctx := context.Background()

	id, err := s.repo.Insert(ctx, s.record("w1", 1, s.now.Add(24*time.Hour)))
	s.Require().NoError(err)
	s.Positive(id)

	got, err := s.repo.Get(ctx, "p1", "w1")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(1, got.Level)
	s.Equal(id, got.ID)

	got.Level = 2
	got.ReviewCount = 1
	got.NextReviewAt = s.now.Add(3 * 24 * time.Hour)
	s.Require().NoError(s.repo.Update(ctx, *got))

	updated, err := s.repo.Get(ctx, "p1", "w1")
	s.Require().NoError(err)
	s.Equal(2, updated.Level)
	s.Equal(1, updated.ReviewCount)
}

func (s *MasteryRepositorySuite) TestGet_AbsentReturnsNil() {
	got, err := s.repo.Get(context.Background(), "p1", "missing")
	s.Require().NoError(err)
	s.Nil(got)
}

func (s *MasteryRepositorySuite) TestInsert_DuplicateWordRejected() {
	ctx := context.Background()

	_, err := s.repo.Insert(ctx, s.record("w1", 1, s.now))
	s.Require().NoError(err)
	_, err = s.repo.Insert(ctx, s.record("w1", 2, s.now))
	s.Error(err)
}

func (s *MasteryRepositorySuite) TestDueWords_OrderAndLimit() {
	ctx := context.Background()

	_, err := s.repo.Insert(ctx, s.record("late", 1, s.now.Add(-time.Hour)))
	s.Require().NoError(err)
	_, err = s.repo.Insert(ctx, s.record("latest", 1, s.now.Add(-2*time.Hour)))
	s.Require().NoError(err)
	_, err = s.repo.Insert(ctx, s.record("future", 1, s.now.Add(time.Hour)))
	s.Require().NoError(err)

	due, err := s.repo.DueWords(ctx, "p1", s.now, 0)
	s.Require().NoError(err)
	s.Require().Len(due, 2)
	s.Equal("latest", due[0].WordID, "soonest-due first")
	s.Equal("late", due[1].WordID)

	limited, err := s.repo.DueWords(ctx, "p1", s.now, 1)
	s.Require().NoError(err)
	s.Require().Len(limited, 1)
	s.Equal("latest", limited[0].WordID)
}

func TestMasteryRepositorySuite(t *testing.T) {
	suite.Run(t, new(MasteryRepositorySuite))
}
