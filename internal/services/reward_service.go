package services

import (
	"context"
	"math/rand"
	"time"

	"github.com/vocapets/vocapets/internal/clock"
	"github.com/vocapets/vocapets/internal/economy"
	"github.com/vocapets/vocapets/internal/errors"
	"github.com/vocapets/vocapets/internal/logger"
	"github.com/vocapets/vocapets/internal/models"
	"github.com/vocapets/vocapets/internal/pets"
	"github.com/vocapets/vocapets/internal/repository"
	"github.com/vocapets/vocapets/internal/worker"
)

// cooldownWindow is the rolling window within which repeated submissions of
// the same file dampen the payout.
const cooldownWindow = 30 * time.Minute

// RewardService runs the star award pipeline
type RewardService interface {
	AwardStars(ctx context.Context, req models.AwardRequest) (*models.AwardBreakdown, error)
}

type rewardService struct {
	rewardRepo  repository.RewardRepository
	profileRepo repository.ProfileRepository
	petRepo     repository.PetRepository
	questSvc    QuestService
	catalog     pets.EquipmentCatalog
	lookupTypes pets.TypeLookupFunc
	typeBonus   pets.TypeBonusFunc
	status      pets.StatusFunc
	pool        *worker.Pool
	clock       clock.Clock
	rand        *rand.Rand
}

// NewRewardService creates a new RewardService. The pool is optional; with a
// nil pool weekly-challenge bumps run inline, still best-effort. The random
// source feeds chance-based pet abilities.
func NewRewardService(
	rewardRepo repository.RewardRepository,
	profileRepo repository.ProfileRepository,
	petRepo repository.PetRepository,
	questSvc QuestService,
	catalog pets.EquipmentCatalog,
	lookupTypes pets.TypeLookupFunc,
	typeBonus pets.TypeBonusFunc,
	status pets.StatusFunc,
	pool *worker.Pool,
	clk clock.Clock,
	rng *rand.Rand,
) RewardService {
	return &rewardService{
		rewardRepo:  rewardRepo,
		profileRepo: profileRepo,
		petRepo:     petRepo,
		questSvc:    questSvc,
		catalog:     catalog,
		lookupTypes: lookupTypes,
		typeBonus:   typeBonus,
		status:      status,
		pool:        pool,
		clock:       clk,
		rand:        rng,
	}
}

// AwardStars validates a quiz submission and runs it through the award
// pipeline. Submissions without per-word results take the legacy fallback
// formula instead.
func (s *rewardService) AwardStars(ctx context.Context, req models.AwardRequest) (*models.AwardBreakdown, error) {
	log := logger.FromContext(ctx)
	log.Debug("awarding stars: profile_id=%s, file_id=%s, correct=%d/%d", req.ProfileID, req.FileID, req.CorrectCount, req.TotalCount)

	if req.ProfileID == "" {
		return nil, errors.NewValidationError("profileId", "must not be empty")
	}
	if req.TotalCount <= 0 {
		return nil, errors.NewValidationError("totalCount", "must be positive")
	}
	if req.CorrectCount < 0 || req.CorrectCount > req.TotalCount {
		return nil, errors.NewValidationError("correctCount", "must be between 0 and totalCount")
	}
	if req.DifficultyMultiplier < 0 || req.BonusMultiplier < 0 {
		return nil, errors.NewValidationError("multiplier", "must not be negative")
	}
	for _, w := range req.WordResults {
		if w.WordID == "" {
			return nil, errors.NewValidationError("wordResults", "word ids must not be empty")
		}
	}

	profile, err := s.profileRepo.Get(ctx, req.ProfileID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if profile == nil {
		return nil, errors.NewNotFoundError("profile", req.ProfileID)
	}

	var breakdown *models.AwardBreakdown
	if req.FileID == "" || len(req.WordResults) == 0 {
		breakdown, err = s.awardLegacy(ctx, req)
	} else {
		breakdown, err = s.awardFull(ctx, req)
	}
	if err != nil {
		return nil, err
	}

	s.bumpWeekly(ctx, req)

	log.Info("stars awarded: profile_id=%s, stars=%d, new_total=%d", req.ProfileID, breakdown.StarsEarned, breakdown.NewTotal)
	return breakdown, nil
}

// awardLegacy is the backward-compatibility shim for callers that cannot
// supply per-word results: supplied base (or the raw correct count) plus the
// accuracy bonus, no familiarity scaling, cooldown fixed at 1.
func (s *rewardService) awardLegacy(ctx context.Context, req models.AwardRequest) (*models.AwardBreakdown, error) {
	base := req.BaseStars
	if base <= 0 {
		base = req.CorrectCount
	}
	bonus := economy.AccuracyBonus(req.CorrectCount, req.TotalCount)
	stars := base + bonus
	if stars < 0 {
		stars = 0
	}

	newTotal, err := s.profileRepo.AddStars(ctx, req.ProfileID, stars)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return &models.AwardBreakdown{
		StarsEarned:         stars,
		NewTotal:            newTotal,
		CooldownMultiplier:  1,
		BaseStars:           base,
		AccuracyBonus:       bonus,
		TypeBonusMultiplier: 1,
	}, nil
}

// awardFull runs the full pipeline. Companion pet, equipment and type data
// are resolved up front; the payout itself is computed inside the award
// transaction from the cooldown and per-word state read there.
func (s *rewardService) awardFull(ctx context.Context, req models.AwardRequest) (*models.AwardBreakdown, error) {
	pet, err := s.resolveCompanion(ctx, req)
	if err != nil {
		return nil, err
	}

	equipPercent := 0
	typeMult := 1.0
	var ability economy.Ability
	if pet != nil {
		equipPercent, err = s.equipmentStarsPercent(ctx, pet.ID)
		if err != nil {
			return nil, errors.NewInternalError(err)
		}
		if req.Category != "" {
			stage := s.status(pet.Exp, pet.Species, pet.EvolutionPath).Stage
			typeMult = s.typeBonus(s.lookupTypes(pet.Species, pet.EvolutionPath, stage), req.Category)
		}
		ability, _ = economy.AbilityFor(pet.Species)
	}

	compute := func(snap models.AwardSnapshot) (int, models.AwardBreakdown) {
		return s.computeAward(req, snap, equipPercent, typeMult, ability)
	}

	breakdown, err := s.rewardRepo.Award(ctx, req.ProfileID, req.FileID, req.WordResults, s.clock.Now(), cooldownWindow, compute)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return &breakdown, nil
}

// computeAward applies the payout steps in their fixed order. The order is
// load-bearing: every multiplier rounds half-up as it is applied, so
// reordering changes outcomes.
func (s *rewardService) computeAward(req models.AwardRequest, snap models.AwardSnapshot, equipPercent int, typeMult float64, ability economy.Ability) (int, models.AwardBreakdown) {
	cooldown := economy.CooldownMultiplier(snap.CooldownAttempts)

	baseSum := 0.0
	for _, w := range req.WordResults {
		if !w.Correct {
			continue
		}
		stats := snap.Words[w.WordID]
		baseSum += economy.FamiliarityMultiplier(stats.CorrectCount, stats.MasteryLevel)
	}
	accBonus := economy.AccuracyBonus(req.CorrectCount, req.TotalCount)

	// The base sum stays fractional until the cooldown is applied; only the
	// breakdown reports it rounded.
	stars := economy.Round((baseSum + float64(accBonus)) * cooldown)
	if req.DoubleStarActive {
		stars *= 2
	}
	if req.DifficultyMultiplier > 1 {
		stars = economy.Round(float64(stars) * req.DifficultyMultiplier)
	}
	if req.BonusMultiplier > 1 {
		stars = economy.Round(float64(stars) * req.BonusMultiplier)
	}
	if equipPercent > 0 {
		stars = economy.Round(float64(stars) * (1 + float64(equipPercent)/100))
	}
	if typeMult != 1.0 {
		stars = economy.Round(float64(stars) * typeMult)
	}

	abilityBonus := 0
	if ability != nil {
		stars, abilityBonus = ability(economy.AbilityContext{
			Stars:        stars,
			CorrectCount: req.CorrectCount,
			TotalCount:   req.TotalCount,
			Rand:         s.rand,
		})
	}

	if stars < 0 {
		stars = 0
	}
	return stars, models.AwardBreakdown{
		StarsEarned:         stars,
		CooldownMultiplier:  cooldown,
		BaseStars:           economy.Round(baseSum),
		AccuracyBonus:       accBonus,
		TypeBonusMultiplier: typeMult,
		AbilityBonus:        abilityBonus,
	}
}

// resolveCompanion prefers the explicitly supplied companion id and falls
// back to the profile's displayed pet. A missing explicit companion is a
// validation error; having no pet at all is fine.
func (s *rewardService) resolveCompanion(ctx context.Context, req models.AwardRequest) (*models.Pet, error) {
	if req.CompanionPetID != "" {
		pet, err := s.petRepo.Get(ctx, req.CompanionPetID)
		if err != nil {
			return nil, errors.NewInternalError(err)
		}
		if pet == nil {
			return nil, errors.NewNotFoundError("pet", req.CompanionPetID)
		}
		if pet.ProfileID != req.ProfileID {
			return nil, errors.NewValidationError("companionPetId", "pet belongs to another profile")
		}
		return pet, nil
	}

	pet, err := s.petRepo.GetDisplayed(ctx, req.ProfileID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return pet, nil
}

// equipmentStarsPercent sums the stars-typed bonus values of everything the
// pet wears. Items missing from the catalog are skipped.
func (s *rewardService) equipmentStarsPercent(ctx context.Context, petID string) (int, error) {
	itemIDs, err := s.petRepo.EquippedItems(ctx, petID)
	if err != nil {
		return 0, err
	}
	sum := 0
	for _, id := range itemIDs {
		item, ok := s.catalog.Item(id)
		if !ok || item.BonusType != "stars" {
			continue
		}
		sum += item.BonusValue
	}
	return sum, nil
}

// bumpWeekly pushes the submission's counts onto the weekly challenge.
// Strictly best-effort: it runs off the award transaction, on the pool when
// one is wired, and its failure never surfaces to the caller.
func (s *rewardService) bumpWeekly(ctx context.Context, req models.AwardRequest) {
	job := &worker.ChallengeBumpJob{
		Quests:    s.questSvc,
		ProfileID: req.ProfileID,
		Words:     req.CorrectCount,
		Quizzes:   1,
	}
	if s.pool != nil {
		s.pool.Submit(job)
		return
	}
	if err := job.Run(ctx); err != nil {
		logger.FromContext(ctx).Warn("weekly challenge bump failed: %v", err)
	}
}
