package repository

import (
	"context"
	"time"

	"github.com/vocapets/vocapets/internal/models"
)

// ComputeAward turns the in-transaction read set into the final payout and
// its display breakdown. It must be pure: the repository calls it exactly
// once between its reads and its writes.
type ComputeAward func(snap models.AwardSnapshot) (int, models.AwardBreakdown)

// ProfileRepository handles profile data access. CheckIn runs fn on the
// stored profile inside a transaction and commits the login fields fn
// mutates together with the stars it awards, so a streak advance can never
// outlive a failed payout.
type ProfileRepository interface {
	Get(ctx context.Context, id string) (*models.Profile, error)
	Insert(ctx context.Context, profile models.Profile) error
	AddStars(ctx context.Context, id string, stars int) (newTotal int, err error)
	CheckIn(ctx context.Context, id string, fn func(*models.Profile) (starsEarned int, err error)) (*models.Profile, error)
}

// MasteryRepository handles mastery record data access
type MasteryRepository interface {
	Get(ctx context.Context, profileID, wordID string) (*models.MasteryRecord, error)
	Insert(ctx context.Context, rec models.MasteryRecord) (int64, error)
	Update(ctx context.Context, rec models.MasteryRecord) error
	DueWords(ctx context.Context, profileID string, now time.Time, limit int) ([]models.MasteryRecord, error)
}

// RewardRepository owns the atomic award transaction: cooldown upsert,
// attempt upserts and the balance increment commit together or not at all.
type RewardRepository interface {
	Award(ctx context.Context, profileID, fileID string, words []models.WordResult, now time.Time, window time.Duration, compute ComputeAward) (models.AwardBreakdown, error)
}

// QuestRepository handles daily quest set data access. Mutate runs fn on the
// stored set inside a transaction and pays the returned stars atomically.
type QuestRepository interface {
	CreateIfAbsent(ctx context.Context, set models.DailyQuestSet) error
	Get(ctx context.Context, profileID, questDate string) (*models.DailyQuestSet, error)
	Mutate(ctx context.Context, profileID, questDate string, fn func(*models.DailyQuestSet) (starsEarned int, err error)) (*models.DailyQuestSet, error)
}

// ChallengeRepository handles weekly challenge data access. Mutate follows
// the same transactional contract as QuestRepository.Mutate.
type ChallengeRepository interface {
	CreateIfAbsent(ctx context.Context, profileID, weekKey string) error
	Get(ctx context.Context, profileID, weekKey string) (*models.WeeklyChallenge, error)
	Mutate(ctx context.Context, profileID, weekKey string, fn func(*models.WeeklyChallenge) (starsEarned int, err error)) (*models.WeeklyChallenge, error)
}

// PetRepository handles pet and equipment data access
type PetRepository interface {
	Get(ctx context.Context, id string) (*models.Pet, error)
	GetDisplayed(ctx context.Context, profileID string) (*models.Pet, error)
	Insert(ctx context.Context, pet models.Pet) error
	Equip(ctx context.Context, petID, slot, itemID string) error
	EquippedItems(ctx context.Context, petID string) ([]string, error)
}
