package services

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/vocapets/vocapets/internal/clock"
	"github.com/vocapets/vocapets/internal/errors"
	"github.com/vocapets/vocapets/internal/logger"
	"github.com/vocapets/vocapets/internal/models"
	"github.com/vocapets/vocapets/internal/repository"
)

// questCatalog is the fixed template pool daily quests are sampled from.
var questCatalog = []models.QuestTemplate{
	{Type: models.QuestTypeQuizComplete, Target: 3, Reward: 10},
	{Type: models.QuestTypeWordsCorrect, Target: 20, Reward: 15},
	{Type: models.QuestTypeAccuracy, Target: 90, Reward: 10},
	{Type: models.QuestTypeStarsEarned, Target: 30, Reward: 10},
	{Type: models.QuestTypePerfectQuiz, Target: 1, Reward: 20},
}

// allCompletedBonus pays once when all three daily slots finish.
const allCompletedBonus = 25

// QuestService handles daily quests and the weekly challenge
type QuestService interface {
	GetDailyQuests(ctx context.Context, profileID string) (*models.DailyQuestSet, error)
	UpdateProgress(ctx context.Context, profileID, questType string, value int) (*models.DailyQuestSet, int, error)
	GetWeeklyChallenge(ctx context.Context, profileID string) (*models.WeeklyChallenge, int, error)
	ClaimWeeklyReward(ctx context.Context, profileID string) (*models.WeeklyRewards, error)
	BumpWeekly(ctx context.Context, profileID string, words, quizzes int) error
	MarkActiveDay(ctx context.Context, profileID string) error
}

type questService struct {
	questRepo     repository.QuestRepository
	challengeRepo repository.ChallengeRepository
	profileRepo   repository.ProfileRepository
	clock         clock.Clock
	rand          *rand.Rand
}

// NewQuestService creates a new QuestService. The random source drives daily
// quest sampling; tests pass a seeded one.
func NewQuestService(questRepo repository.QuestRepository, challengeRepo repository.ChallengeRepository, profileRepo repository.ProfileRepository, clk clock.Clock, rng *rand.Rand) QuestService {
	return &questService{
		questRepo:     questRepo,
		challengeRepo: challengeRepo,
		profileRepo:   profileRepo,
		clock:         clk,
		rand:          rng,
	}
}

// GetDailyQuests returns today's quest set, generating it on first access.
// Generation is idempotent: a concurrent first access inserts at most one
// set and both callers read the same row back.
func (s *questService) GetDailyQuests(ctx context.Context, profileID string) (*models.DailyQuestSet, error) {
	log := logger.FromContext(ctx)

	if profileID == "" {
		return nil, errors.NewValidationError("profileId", "must not be empty")
	}
	profile, err := s.profileRepo.Get(ctx, profileID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if profile == nil {
		return nil, errors.NewNotFoundError("profile", profileID)
	}

	today := localDate(s.clock.Now())
	set := models.DailyQuestSet{
		ProfileID: profileID,
		QuestDate: today,
		Slots:     s.sampleSlots(),
	}
	if err := s.questRepo.CreateIfAbsent(ctx, set); err != nil {
		return nil, errors.NewInternalError(err)
	}

	stored, err := s.questRepo.Get(ctx, profileID, today)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if stored == nil {
		return nil, errors.NewInternalError(fmt.Errorf("quest set missing after create: profile=%s date=%s", profileID, today))
	}
	log.Debug("daily quests ready: profile_id=%s, date=%s", profileID, today)
	return stored, nil
}

// sampleSlots draws three templates without replacement, keeping types
// distinct. If the catalog runs out of distinct types it pads by reusing
// templates until three slots are filled.
func (s *questService) sampleSlots() []models.QuestSlot {
	shuffled := make([]models.QuestTemplate, len(questCatalog))
	copy(shuffled, questCatalog)
	s.rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	slots := make([]models.QuestSlot, 0, 3)
	seen := map[string]bool{}
	for _, t := range shuffled {
		if len(slots) == 3 {
			break
		}
		if seen[t.Type] {
			continue
		}
		seen[t.Type] = true
		slots = append(slots, models.QuestSlot{Type: t.Type, Target: t.Target, Reward: t.Reward})
	}
	for i := 0; len(slots) < 3; i++ {
		t := shuffled[i%len(shuffled)]
		slots = append(slots, models.QuestSlot{Type: t.Type, Target: t.Target, Reward: t.Reward})
	}
	return slots
}

// UpdateProgress advances every matching slot in today's set. Accuracy
// slots keep their best value; all other types accumulate. Each slot pays
// its reward exactly once, and finishing all three pays a flat bonus once.
func (s *questService) UpdateProgress(ctx context.Context, profileID, questType string, value int) (*models.DailyQuestSet, int, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating quest progress: profile_id=%s, type=%s, value=%d", profileID, questType, value)

	if questType == "" {
		return nil, 0, errors.NewValidationError("questType", "must not be empty")
	}
	if value < 0 {
		return nil, 0, errors.NewValidationError("value", "must not be negative")
	}

	// Make sure today's set exists before mutating it.
	if _, err := s.GetDailyQuests(ctx, profileID); err != nil {
		return nil, 0, err
	}

	earned := 0
	set, err := s.questRepo.Mutate(ctx, profileID, localDate(s.clock.Now()), func(set *models.DailyQuestSet) (int, error) {
		for i := range set.Slots {
			slot := &set.Slots[i]
			if slot.Type != questType || slot.Done {
				continue
			}
			if slot.Type == models.QuestTypeAccuracy {
				if value > slot.Progress {
					slot.Progress = value
				}
			} else {
				slot.Progress += value
			}
			if slot.Progress >= slot.Target {
				slot.Done = true
				earned += slot.Reward
			}
		}

		if !set.AllCompleted && set.Slots[0].Done && set.Slots[1].Done && set.Slots[2].Done {
			set.AllCompleted = true
			earned += allCompletedBonus
		}
		return earned, nil
	})
	if err != nil {
		return nil, 0, errors.NewInternalError(err)
	}
	if earned > 0 {
		log.Info("quest rewards paid: profile_id=%s, stars=%d", profileID, earned)
	}
	return set, earned, nil
}

// GetWeeklyChallenge returns this ISO week's challenge, creating it on
// first access, along with the number of days left in the week.
func (s *questService) GetWeeklyChallenge(ctx context.Context, profileID string) (*models.WeeklyChallenge, int, error) {
	if profileID == "" {
		return nil, 0, errors.NewValidationError("profileId", "must not be empty")
	}
	profile, err := s.profileRepo.Get(ctx, profileID)
	if err != nil {
		return nil, 0, errors.NewInternalError(err)
	}
	if profile == nil {
		return nil, 0, errors.NewNotFoundError("profile", profileID)
	}

	now := s.clock.Now()
	week := isoWeekKey(now)
	if err := s.challengeRepo.CreateIfAbsent(ctx, profileID, week); err != nil {
		return nil, 0, errors.NewInternalError(err)
	}
	challenge, err := s.challengeRepo.Get(ctx, profileID, week)
	if err != nil {
		return nil, 0, errors.NewInternalError(err)
	}
	if challenge == nil {
		return nil, 0, errors.NewInternalError(fmt.Errorf("weekly challenge missing after create: profile=%s week=%s", profileID, week))
	}
	return challenge, daysLeftInWeek(now), nil
}

// ClaimWeeklyReward pays the weekly reward once all three targets are met.
// The claim flips reward_claimed permanently; a second claim is rejected
// without paying again.
func (s *questService) ClaimWeeklyReward(ctx context.Context, profileID string) (*models.WeeklyRewards, error) {
	log := logger.FromContext(ctx)

	if _, _, err := s.GetWeeklyChallenge(ctx, profileID); err != nil {
		return nil, err
	}

	week := isoWeekKey(s.clock.Now())
	_, err := s.challengeRepo.Mutate(ctx, profileID, week, func(c *models.WeeklyChallenge) (int, error) {
		if c.RewardClaimed {
			return 0, errors.NewConflictError("weekly reward already claimed")
		}
		if !c.TargetsMet() {
			return 0, errors.NewValidationError("challenge", "targets not met")
		}
		c.RewardClaimed = true
		return models.WeeklyRewardStars, nil
	})
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			return nil, appErr
		}
		return nil, errors.NewInternalError(err)
	}

	log.Info("weekly reward claimed: profile_id=%s, week=%s", profileID, week)
	return &models.WeeklyRewards{
		Stars:   models.WeeklyRewardStars,
		Sticker: models.WeeklyRewardSticker,
	}, nil
}

// BumpWeekly adds word and quiz progress to this week's challenge. Callers
// on the award path treat a failure here as best-effort.
func (s *questService) BumpWeekly(ctx context.Context, profileID string, words, quizzes int) error {
	if words <= 0 && quizzes <= 0 {
		return nil
	}
	week := isoWeekKey(s.clock.Now())
	if err := s.challengeRepo.CreateIfAbsent(ctx, profileID, week); err != nil {
		return err
	}
	_, err := s.challengeRepo.Mutate(ctx, profileID, week, func(c *models.WeeklyChallenge) (int, error) {
		c.ProgressWords += words
		c.ProgressQuiz += quizzes
		return 0, nil
	})
	return err
}

// MarkActiveDay bumps the challenge's day counter, at most once per
// calendar day, guarded by the stored last active date.
func (s *questService) MarkActiveDay(ctx context.Context, profileID string) error {
	now := s.clock.Now()
	week := isoWeekKey(now)
	today := localDate(now)
	if err := s.challengeRepo.CreateIfAbsent(ctx, profileID, week); err != nil {
		return err
	}
	_, err := s.challengeRepo.Mutate(ctx, profileID, week, func(c *models.WeeklyChallenge) (int, error) {
		if c.LastActiveDate == today {
			return 0, nil
		}
		c.LastActiveDate = today
		c.ProgressDays++
		return 0, nil
	})
	return err
}

// localDate normalizes a time to its local calendar date.
func localDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// isoWeekKey buckets a time into its ISO week (weeks start Monday 00:00).
func isoWeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// daysLeftInWeek counts remaining days of the ISO week including today.
func daysLeftInWeek(t time.Time) int {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	return 7 - weekday + 1
}
