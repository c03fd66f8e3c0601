package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vocapets/vocapets/internal/clock"
	"github.com/vocapets/vocapets/internal/errors"
	"github.com/vocapets/vocapets/internal/logger"
	"github.com/vocapets/vocapets/internal/models"
	"github.com/vocapets/vocapets/internal/repository"
)

// CheckLoginResult is what a daily login check hands back: the refreshed
// profile, today's quest set, and the streak reward when a new day started.
type CheckLoginResult struct {
	Profile    *models.Profile       `json:"profile"`
	DailyQuest *models.DailyQuestSet `json:"dailyQuest"`
	Reward     *models.LoginReward   `json:"loginReward"`
}

// ProfileService handles profiles, their pets and the login streak
type ProfileService interface {
	Create(ctx context.Context, name string) (*models.Profile, error)
	Get(ctx context.Context, id string) (*models.Profile, error)
	CheckLogin(ctx context.Context, profileID string) (*CheckLoginResult, error)
	CreatePet(ctx context.Context, profileID, species string) (*models.Pet, error)
}

type profileService struct {
	profileRepo repository.ProfileRepository
	petRepo     repository.PetRepository
	questSvc    QuestService
	clock       clock.Clock
}

// NewProfileService creates a new ProfileService
func NewProfileService(profileRepo repository.ProfileRepository, petRepo repository.PetRepository, questSvc QuestService, clk clock.Clock) ProfileService {
	return &profileService{profileRepo: profileRepo, petRepo: petRepo, questSvc: questSvc, clock: clk}
}

func (s *profileService) Create(ctx context.Context, name string) (*models.Profile, error) {
	log := logger.FromContext(ctx)

	if name == "" {
		return nil, errors.NewValidationError("name", "must not be empty")
	}

	profile := models.Profile{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: s.clock.Now(),
	}
	if err := s.profileRepo.Insert(ctx, profile); err != nil {
		return nil, errors.NewInternalError(err)
	}
	log.Info("profile created: id=%s, name=%s", profile.ID, profile.Name)
	return &profile, nil
}

func (s *profileService) Get(ctx context.Context, id string) (*models.Profile, error) {
	if id == "" {
		return nil, errors.NewValidationError("id", "must not be empty")
	}
	profile, err := s.profileRepo.Get(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if profile == nil {
		return nil, errors.NewNotFoundError("profile", id)
	}
	return profile, nil
}

// CheckLogin advances the login streak when a new calendar day has started
// and pays the streak-tiered reward. A repeat call on the same day changes
// nothing and returns no reward.
func (s *profileService) CheckLogin(ctx context.Context, profileID string) (*CheckLoginResult, error) {
	log := logger.FromContext(ctx)

	if _, err := s.Get(ctx, profileID); err != nil {
		return nil, err
	}

	// Streak decision and payout commit together: the check-in transaction
	// rereads the profile, so two racing check-ins cannot both pay.
	now := s.clock.Now()
	var reward *models.LoginReward
	profile, err := s.profileRepo.CheckIn(ctx, profileID, func(p *models.Profile) (int, error) {
		if p.LastLoginAt != nil && sameDay(*p.LastLoginAt, now) {
			return 0, nil
		}
		streak := 1
		if p.LastLoginAt != nil && dayDiff(*p.LastLoginAt, now) == 1 {
			streak = p.LoginStreak + 1
		}
		p.LoginStreak = streak
		p.LastLoginAt = &now

		stars := streakReward(streak)
		reward = &models.LoginReward{NewStreak: streak, StarsEarned: stars, IsNewDay: true}
		return stars, nil
	})
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	if reward != nil {
		log.Info("login streak advanced: profile_id=%s, streak=%d, stars=%d", profileID, reward.NewStreak, reward.StarsEarned)

		// Active-day bump is best-effort; a failure must not fail the login.
		if err := s.questSvc.MarkActiveDay(ctx, profileID); err != nil {
			log.Warn("active day bump failed: profile_id=%s: %v", profileID, err)
		}
	}

	quests, err := s.questSvc.GetDailyQuests(ctx, profileID)
	if err != nil {
		return nil, err
	}

	return &CheckLoginResult{Profile: profile, DailyQuest: quests, Reward: reward}, nil
}

// CreatePet adds a pet to a profile. The profile's first pet becomes the
// displayed one.
func (s *profileService) CreatePet(ctx context.Context, profileID, species string) (*models.Pet, error) {
	log := logger.FromContext(ctx)

	if species == "" {
		return nil, errors.NewValidationError("species", "must not be empty")
	}
	if _, err := s.Get(ctx, profileID); err != nil {
		return nil, err
	}

	displayed, err := s.petRepo.GetDisplayed(ctx, profileID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	pet := models.Pet{
		ID:        uuid.NewString(),
		ProfileID: profileID,
		Species:   species,
		Displayed: displayed == nil,
		CreatedAt: s.clock.Now(),
	}
	if err := s.petRepo.Insert(ctx, pet); err != nil {
		return nil, errors.NewInternalError(err)
	}
	log.Info("pet created: id=%s, profile_id=%s, species=%s", pet.ID, profileID, species)
	return &pet, nil
}

// streakReward maps a streak length to its payout tier.
func streakReward(streak int) int {
	switch {
	case streak == 3:
		return 10
	case streak == 7:
		return 20
	case streak == 14:
		return 50
	case streak%30 == 0:
		return 100
	default:
		return 5
	}
}

func sameDay(a, b time.Time) bool {
	return dayDiff(a, b) == 0
}

// dayDiff counts calendar days between two times as seen in to's location.
// Times read back from the database carry UTC, so from must be converted
// before the dates are compared.
func dayDiff(from, to time.Time) int {
	from = from.In(to.Location())
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a) / (24 * time.Hour))
}
