package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/vocapets/vocapets/internal/db"
	"github.com/vocapets/vocapets/internal/models"
	"github.com/vocapets/vocapets/internal/repository"
	"github.com/vocapets/vocapets/internal/repository/sqlite"
	"github.com/vocapets/vocapets/internal/testutil"
)

type ProfileRepositorySuite struct {
	suite.Suite
	db   *db.DB
	repo repository.ProfileRepository
}

func (s *ProfileRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewProfileRepository(s.db.DB)

	_, err := s.db.ExecContext(context.Background(), `
INSERT INTO profiles (id, name, created_at) VALUES ('p1', 'tester', ?)
`, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	s.Require().NoError(err)
}

func (s *ProfileRepositorySuite) TestCheckIn_CommitsLoginAndPayoutTogether() {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	p, err := s.repo.CheckIn(ctx, "p1", func(p *models.Profile) (int, error) {
		p.LoginStreak = 1
		p.LastLoginAt = &now
		return 5, nil
	})
	s.Require().NoError(err)
	s.Equal(1, p.LoginStreak)
	s.Equal(5, p.Stars)
	s.Equal(5, p.TotalStars)

	stored, err := s.repo.Get(ctx, "p1")
	s.Require().NoError(err)
	s.Equal(1, stored.LoginStreak)
	s.Require().NotNil(stored.LastLoginAt)
	s.Equal(5, stored.Stars)
}

func (s *ProfileRepositorySuite) TestCheckIn_ErrorRollsBackEverything() {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	boom := errors.New("boom")
	_, err := s.repo.CheckIn(ctx, "p1", func(p *models.Profile) (int, error) {
		p.LoginStreak = 1
		p.LastLoginAt = &now
		return 5, boom
	})
	s.Require().ErrorIs(err, boom)

	// Neither the streak nor the balance moved.
	stored, err := s.repo.Get(ctx, "p1")
	s.Require().NoError(err)
	s.Zero(stored.LoginStreak)
	s.Nil(stored.LastLoginAt)
	s.Zero(stored.Stars)
}

func (s *ProfileRepositorySuite) TestCheckIn_NoPayoutLeavesBalanceAlone() {
	ctx := context.Background()

	p, err := s.repo.CheckIn(ctx, "p1", func(p *models.Profile) (int, error) {
		return 0, nil
	})
	s.Require().NoError(err)
	s.Zero(p.Stars)
}

func (s *ProfileRepositorySuite) TestAddStars_UnknownProfile() {
	_, err := s.repo.AddStars(context.Background(), "ghost", 5)
	s.Require().Error(err)
}

func TestProfileRepositorySuite(t *testing.T) {
	suite.Run(t, new(ProfileRepositorySuite))
}
