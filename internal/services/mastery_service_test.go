package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vocapets/vocapets/internal/errors"
)

var masteryStart = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func TestSeedMastered_NewWords(t *testing.T) {
	e := newEnv(t, masteryStart)
	e.createProfile(t, "p1")
	ctx := context.Background()

	require.NoError(t, e.mastery.SeedMastered(ctx, "p1", []string{"w1", "w2"}))

	// Nothing is due yet: both words sit on a one-day interval.
	due, err := e.mastery.DueWords(ctx, "p1", 0)
	require.NoError(t, err)
	assert.Empty(t, due)

	e.clk.advance(24 * time.Hour)
	due, err = e.mastery.DueWords(ctx, "p1", 0)
	require.NoError(t, err)
	require.Len(t, due, 2)
	assert.Equal(t, 1, due[0].Level)
	assert.Equal(t, 1, due[0].CorrectStreak)
}

func TestSeedMastered_ExistingWordAdvances(t *testing.T) {
	e := newEnv(t, masteryStart)
	e.createProfile(t, "p1")
	ctx := context.Background()

	require.NoError(t, e.mastery.SeedMastered(ctx, "p1", []string{"w1"}))
	// Re-mastering in a later quiz counts as a correct review.
	require.NoError(t, e.mastery.SeedMastered(ctx, "p1", []string{"w1"}))

	e.clk.advance(3 * 24 * time.Hour)
	due, err := e.mastery.DueWords(ctx, "p1", 0)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, 2, due[0].Level)
	assert.Equal(t, 2, due[0].CorrectStreak)
	assert.Equal(t, 1, due[0].ReviewCount)
}

func TestReview_AdvancesAndDemotes(t *testing.T) {
	e := newEnv(t, masteryStart)
	e.createProfile(t, "p1")
	ctx := context.Background()

	require.NoError(t, e.mastery.SeedMastered(ctx, "p1", []string{"w1"}))

	rec, err := e.mastery.Review(ctx, "p1", "w1", true)
	require.NoError(t, err)
	assert.Equal(t, 2, rec.Level)
	assert.Equal(t, e.clk.Now().Add(3*24*time.Hour), rec.NextReviewAt)

	rec, err = e.mastery.Review(ctx, "p1", "w1", false)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Level)
	assert.Zero(t, rec.CorrectStreak)

	// The level never drops below the floor.
	rec, err = e.mastery.Review(ctx, "p1", "w1", false)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Level)
}

func TestReview_UnknownWord(t *testing.T) {
	e := newEnv(t, masteryStart)
	e.createProfile(t, "p1")

	_, err := e.mastery.Review(context.Background(), "p1", "missing", true)
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.Status)
}

func TestSeedMastered_Validation(t *testing.T) {
	e := newEnv(t, masteryStart)
	e.createProfile(t, "p1")
	ctx := context.Background()

	require.Error(t, e.mastery.SeedMastered(ctx, "", []string{"w1"}))
	require.Error(t, e.mastery.SeedMastered(ctx, "p1", nil))
	require.Error(t, e.mastery.SeedMastered(ctx, "p1", []string{""}))

	err := e.mastery.SeedMastered(ctx, "ghost", []string{"w1"})
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.Status)
}

func TestDueWords_ReadsDoNotMutate(t *testing.T) {
	e := newEnv(t, masteryStart)
	e.createProfile(t, "p1")
	ctx := context.Background()

	require.NoError(t, e.mastery.SeedMastered(ctx, "p1", []string{"w1"}))
	e.clk.advance(48 * time.Hour)

	for i := 0; i < 3; i++ {
		due, err := e.mastery.DueWords(ctx, "p1", 0)
		require.NoError(t, err)
		require.Len(t, due, 1, "read %d must not reschedule the word", i+1)
	}
}
