package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vocapets/vocapets/internal/errors"
	"github.com/vocapets/vocapets/internal/models"
)

var awardStart = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newWords(ids ...string) []models.WordResult {
	words := make([]models.WordResult, len(ids))
	for i, id := range ids {
		words[i] = models.WordResult{WordID: id, Correct: true}
	}
	return words
}

func TestAwardStars_SingleNovelWord(t *testing.T) {
	e := newEnv(t, awardStart)
	e.createProfile(t, "p1")

	bd, err := e.reward.AwardStars(context.Background(), models.AwardRequest{
		ProfileID:    "p1",
		FileID:       "f1",
		CorrectCount: 1,
		TotalCount:   1,
		WordResults:  newWords("w1"),
	})
	require.NoError(t, err)

	// Novel word pays double; quiz too short for an accuracy bonus.
	assert.Equal(t, 2, bd.BaseStars)
	assert.Zero(t, bd.AccuracyBonus)
	assert.Equal(t, 1.0, bd.CooldownMultiplier)
	assert.Equal(t, 2, bd.StarsEarned)
	assert.Equal(t, 2, bd.NewTotal)
}

func TestAwardStars_RepeatSubmissionsDampened(t *testing.T) {
	e := newEnv(t, awardStart)
	e.createProfile(t, "p1")

	req := models.AwardRequest{
		ProfileID:    "p1",
		FileID:       "f1",
		CorrectCount: 5,
		TotalCount:   5,
		WordResults:  newWords("w1", "w2", "w3", "w4", "w5"),
	}

	// Familiarity decays as attempt history accumulates, and the cooldown
	// halves, quarters and finally zeroes the payout within the window.
	wantStars := []int{15, 5, 3, 0}
	for i, want := range wantStars {
		bd, err := e.reward.AwardStars(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, want, bd.StarsEarned, "submission %d", i+1)
		e.clk.advance(time.Minute)
	}

	// After the window expires the cooldown resets. Each word now has four
	// correct answers at mastery zero, so it pays half: round(5 * 0.5) = 3
	// base plus the accuracy bonus.
	e.clk.advance(30 * time.Minute)
	bd, err := e.reward.AwardStars(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1.0, bd.CooldownMultiplier)
	assert.Equal(t, 3, bd.BaseStars)
	assert.Equal(t, 8, bd.StarsEarned)
}

func TestAwardStars_FractionalBaseUnderCooldown(t *testing.T) {
	e := newEnv(t, awardStart)
	e.createProfile(t, "p1")
	ctx := context.Background()

	req := models.AwardRequest{
		ProfileID:    "p1",
		FileID:       "f1",
		CorrectCount: 1,
		TotalCount:   1,
		WordResults:  newWords("w1"),
	}

	// Drill the word to four correct answers so it pays a half contribution,
	// resetting the cooldown between submissions.
	for i := 0; i < 4; i++ {
		_, err := e.reward.AwardStars(ctx, req)
		require.NoError(t, err)
		e.clk.advance(31 * time.Minute)
	}

	// Fresh window: round(0.5 * 1) = 1.
	bd, err := e.reward.AwardStars(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 1, bd.BaseStars)
	assert.Equal(t, 1, bd.StarsEarned)

	// Second submission inside the window: the half contribution stays
	// fractional through the cooldown step, so round(0.5 * 0.5) = 0.
	e.clk.advance(time.Minute)
	bd, err = e.reward.AwardStars(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 0.5, bd.CooldownMultiplier)
	assert.Zero(t, bd.StarsEarned)
}

func TestAwardStars_LegacyFallback(t *testing.T) {
	e := newEnv(t, awardStart)
	e.createProfile(t, "p1")

	// No fileId and no word results: supplied base plus accuracy bonus.
	bd, err := e.reward.AwardStars(context.Background(), models.AwardRequest{
		ProfileID:    "p1",
		CorrectCount: 8,
		TotalCount:   10,
		BaseStars:    12,
	})
	require.NoError(t, err)
	assert.Equal(t, 12, bd.BaseStars)
	assert.Equal(t, 2, bd.AccuracyBonus)
	assert.Equal(t, 14, bd.StarsEarned)
	assert.Equal(t, 1.0, bd.CooldownMultiplier)

	// Without a supplied base the correct count stands in.
	bd, err = e.reward.AwardStars(context.Background(), models.AwardRequest{
		ProfileID:    "p1",
		CorrectCount: 4,
		TotalCount:   10,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, bd.StarsEarned)
}

func TestAwardStars_ModifierChain(t *testing.T) {
	e := newEnv(t, awardStart)
	e.createProfile(t, "p1")

	bd, err := e.reward.AwardStars(context.Background(), models.AwardRequest{
		ProfileID:            "p1",
		FileID:               "f1",
		CorrectCount:         5,
		TotalCount:           5,
		WordResults:          newWords("w1", "w2", "w3", "w4", "w5"),
		DoubleStarActive:     true,
		DifficultyMultiplier: 1.5,
	})
	require.NoError(t, err)

	// (10 + 5) * 1 = 15, doubled to 30, then round(30 * 1.5) = 45.
	assert.Equal(t, 45, bd.StarsEarned)
}

func TestAwardStars_CompanionTypeAndEquipment(t *testing.T) {
	e := newEnv(t, awardStart)
	e.createProfile(t, "p1")

	pet, err := e.profile.CreatePet(context.Background(), "p1", "beetle")
	require.NoError(t, err)
	require.NoError(t, e.petRepo.Equip(context.Background(), pet.ID, "neck", "collar_lucky"))

	bd, err := e.reward.AwardStars(context.Background(), models.AwardRequest{
		ProfileID:    "p1",
		FileID:       "f1",
		CorrectCount: 5,
		TotalCount:   5,
		WordResults:  newWords("w1", "w2", "w3", "w4", "w5"),
		Category:     "science",
	})
	require.NoError(t, err)

	// (10 + 5) * 1 = 15, equipment +10% -> round(16.5) = 17, nature vs
	// science +20% -> round(20.4) = 20. Beetles have no ability.
	assert.Equal(t, 1.2, bd.TypeBonusMultiplier)
	assert.Zero(t, bd.AbilityBonus)
	assert.Equal(t, 20, bd.StarsEarned)
}

func TestAwardStars_DisplayedPetAbility(t *testing.T) {
	e := newEnv(t, awardStart)
	e.createProfile(t, "p1")

	_, err := e.profile.CreatePet(context.Background(), "p1", "chick_bird")
	require.NoError(t, err)

	bd, err := e.reward.AwardStars(context.Background(), models.AwardRequest{
		ProfileID:    "p1",
		FileID:       "f1",
		CorrectCount: 1,
		TotalCount:   1,
		WordResults:  newWords("w1"),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, bd.AbilityBonus)
	assert.Equal(t, 3, bd.StarsEarned)
}

func TestAwardStars_ForeignCompanionRejected(t *testing.T) {
	e := newEnv(t, awardStart)
	e.createProfile(t, "p1")
	e.createProfile(t, "p2")

	pet, err := e.profile.CreatePet(context.Background(), "p2", "beetle")
	require.NoError(t, err)

	_, err = e.reward.AwardStars(context.Background(), models.AwardRequest{
		ProfileID:      "p1",
		FileID:         "f1",
		CorrectCount:   1,
		TotalCount:     1,
		WordResults:    newWords("w1"),
		CompanionPetID: pet.ID,
	})
	require.Error(t, err)

	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.Status)
}

func TestAwardStars_Validation(t *testing.T) {
	e := newEnv(t, awardStart)
	e.createProfile(t, "p1")

	tests := []struct {
		name string
		req  models.AwardRequest
	}{
		{"empty profile", models.AwardRequest{TotalCount: 1}},
		{"zero total", models.AwardRequest{ProfileID: "p1"}},
		{"correct above total", models.AwardRequest{ProfileID: "p1", CorrectCount: 3, TotalCount: 2}},
		{"negative multiplier", models.AwardRequest{ProfileID: "p1", TotalCount: 1, DifficultyMultiplier: -1}},
		{"blank word id", models.AwardRequest{ProfileID: "p1", TotalCount: 1, FileID: "f1", WordResults: []models.WordResult{{}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.reward.AwardStars(context.Background(), tt.req)
			require.Error(t, err)
			appErr, ok := err.(*errors.AppError)
			require.True(t, ok)
			assert.Equal(t, 400, appErr.Status)
		})
	}

	_, err := e.reward.AwardStars(context.Background(), models.AwardRequest{ProfileID: "ghost", TotalCount: 1})
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.Status)
}

func TestAwardStars_BumpsWeeklyChallenge(t *testing.T) {
	e := newEnv(t, awardStart)
	e.createProfile(t, "p1")

	_, err := e.reward.AwardStars(context.Background(), models.AwardRequest{
		ProfileID:    "p1",
		FileID:       "f1",
		CorrectCount: 3,
		TotalCount:   5,
		WordResults:  newWords("w1", "w2", "w3"),
	})
	require.NoError(t, err)

	challenge, _, err := e.quest.GetWeeklyChallenge(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 3, challenge.ProgressWords)
	assert.Equal(t, 1, challenge.ProgressQuiz)
}
