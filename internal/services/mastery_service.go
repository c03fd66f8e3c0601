package services

import (
	"context"

	"github.com/vocapets/vocapets/internal/clock"
	"github.com/vocapets/vocapets/internal/errors"
	"github.com/vocapets/vocapets/internal/logger"
	"github.com/vocapets/vocapets/internal/models"
	"github.com/vocapets/vocapets/internal/repository"
	"github.com/vocapets/vocapets/internal/srs"
)

// MasteryService handles spaced-repetition scheduling for mastered words
type MasteryService interface {
	SeedMastered(ctx context.Context, profileID string, wordIDs []string) error
	Review(ctx context.Context, profileID, wordID string, correct bool) (*models.MasteryRecord, error)
	DueWords(ctx context.Context, profileID string, limit int) ([]models.MasteryRecord, error)
}

type masteryService struct {
	masteryRepo repository.MasteryRepository
	profileRepo repository.ProfileRepository
	clock       clock.Clock
}

// NewMasteryService creates a new MasteryService
func NewMasteryService(masteryRepo repository.MasteryRepository, profileRepo repository.ProfileRepository, clk clock.Clock) MasteryService {
	return &masteryService{masteryRepo: masteryRepo, profileRepo: profileRepo, clock: clk}
}

// SeedMastered creates a level-1 mastery record for each word that has none
// yet. Words already mastered are advanced as if reviewed correctly.
func (s *masteryService) SeedMastered(ctx context.Context, profileID string, wordIDs []string) error {
	log := logger.FromContext(ctx)
	log.Debug("seeding mastered words: profile_id=%s, words=%d", profileID, len(wordIDs))

	if profileID == "" {
		return errors.NewValidationError("profileId", "must not be empty")
	}
	if len(wordIDs) == 0 {
		return errors.NewValidationError("wordIds", "must not be empty")
	}
	for _, id := range wordIDs {
		if id == "" {
			return errors.NewValidationError("wordIds", "word ids must not be empty")
		}
	}

	profile, err := s.profileRepo.Get(ctx, profileID)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if profile == nil {
		return errors.NewNotFoundError("profile", profileID)
	}

	now := s.clock.Now()
	for _, wordID := range wordIDs {
		rec, err := s.masteryRepo.Get(ctx, profileID, wordID)
		if err != nil {
			return errors.NewInternalError(err)
		}
		if rec == nil {
			level, next := srs.Advance(0, true, now)
			_, err := s.masteryRepo.Insert(ctx, models.MasteryRecord{
				ProfileID:      profileID,
				WordID:         wordID,
				Level:          level,
				MasteredAt:     now,
				LastReviewedAt: now,
				NextReviewAt:   next,
				ReviewCount:    0,
				CorrectStreak:  1,
			})
			if err != nil {
				return errors.NewInternalError(err)
			}
			continue
		}
		if err := s.applyReview(ctx, rec, true); err != nil {
			return err
		}
	}
	return nil
}

// Review advances one mastery record after a review outcome.
func (s *masteryService) Review(ctx context.Context, profileID, wordID string, correct bool) (*models.MasteryRecord, error) {
	log := logger.FromContext(ctx)
	log.Debug("reviewing word: profile_id=%s, word_id=%s, correct=%t", profileID, wordID, correct)

	if profileID == "" || wordID == "" {
		return nil, errors.NewValidationError("id", "profile and word ids must not be empty")
	}

	rec, err := s.masteryRepo.Get(ctx, profileID, wordID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if rec == nil {
		return nil, errors.NewNotFoundError("mastery record", wordID)
	}

	if err := s.applyReview(ctx, rec, correct); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *masteryService) applyReview(ctx context.Context, rec *models.MasteryRecord, correct bool) error {
	now := s.clock.Now()
	rec.Level, rec.NextReviewAt = srs.Advance(rec.Level, correct, now)
	rec.LastReviewedAt = now
	rec.ReviewCount++
	if correct {
		rec.CorrectStreak++
	} else {
		rec.CorrectStreak = 0
	}

	if err := s.masteryRepo.Update(ctx, *rec); err != nil {
		return errors.NewInternalError(err)
	}
	return nil
}

// DueWords lists records whose review is due, soonest first. Reads never
// advance scheduling state.
func (s *masteryService) DueWords(ctx context.Context, profileID string, limit int) ([]models.MasteryRecord, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing due words: profile_id=%s", profileID)

	if profileID == "" {
		return nil, errors.NewValidationError("profileId", "must not be empty")
	}

	records, err := s.masteryRepo.DueWords(ctx, profileID, s.clock.Now(), limit)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return records, nil
}
