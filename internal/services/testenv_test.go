package services_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vocapets/vocapets/internal/db"
	"github.com/vocapets/vocapets/internal/pets"
	"github.com/vocapets/vocapets/internal/repository"
	"github.com/vocapets/vocapets/internal/repository/sqlite"
	"github.com/vocapets/vocapets/internal/services"
	"github.com/vocapets/vocapets/internal/testutil"
)

// stepClock is a settable clock for walking over day, week and cooldown
// boundaries.
type stepClock struct {
	t time.Time
}

func (c *stepClock) Now() time.Time { return c.t }

func (c *stepClock) advance(d time.Duration) { c.t = c.t.Add(d) }

// env wires every service over a fresh in-memory database.
type env struct {
	db      *db.DB
	clk     *stepClock
	profile services.ProfileService
	mastery services.MasteryService
	quest   services.QuestService
	reward  services.RewardService

	profileRepo   repository.ProfileRepository
	petRepo       repository.PetRepository
	questRepo     repository.QuestRepository
	challengeRepo repository.ChallengeRepository
}

func newEnv(t *testing.T, start time.Time) *env {
	t.Helper()

	database := testutil.NewTestDB(t)
	clk := &stepClock{t: start}
	rng := rand.New(rand.NewSource(1))

	profileRepo := sqlite.NewProfileRepository(database.DB)
	masteryRepo := sqlite.NewMasteryRepository(database.DB)
	rewardRepo := sqlite.NewRewardRepository(database.DB)
	questRepo := sqlite.NewQuestRepository(database.DB)
	challengeRepo := sqlite.NewChallengeRepository(database.DB)
	petRepo := sqlite.NewPetRepository(database.DB)

	questSvc := services.NewQuestService(questRepo, challengeRepo, profileRepo, clk, rng)

	return &env{
		db:      database,
		clk:     clk,
		profile: services.NewProfileService(profileRepo, petRepo, questSvc, clk),
		mastery: services.NewMasteryService(masteryRepo, profileRepo, clk),
		quest:   questSvc,
		reward: services.NewRewardService(
			rewardRepo, profileRepo, petRepo, questSvc,
			pets.DefaultCatalog(), pets.LookupTypes, pets.TypeBonus, pets.ComputeStatus,
			nil, clk, rng,
		),
		profileRepo:   profileRepo,
		petRepo:       petRepo,
		questRepo:     questRepo,
		challengeRepo: challengeRepo,
	}
}

func (e *env) createProfile(t *testing.T, id string) {
	t.Helper()
	_, err := e.db.ExecContext(context.Background(), `
INSERT INTO profiles (id, name, created_at) VALUES (?, 'tester', ?)
`, id, e.clk.Now())
	require.NoError(t, err)
}

func (e *env) stars(t *testing.T, profileID string) int {
	t.Helper()
	var stars int
	err := e.db.QueryRowContext(context.Background(), `SELECT stars FROM profiles WHERE id = ?`, profileID).Scan(&stars)
	require.NoError(t, err)
	return stars
}
