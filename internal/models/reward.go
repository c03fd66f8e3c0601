package models

import "time"

// WordResult is one graded answer in a quiz submission.
type WordResult struct {
	WordID  string `json:"wordId"`
	Correct bool   `json:"correct"`
}

// AwardRequest is a quiz submission entering the star award pipeline.
// The legacy form omits FileID and WordResults and takes the fallback path.
type AwardRequest struct {
	ProfileID            string       `json:"profileId"`
	FileID               string       `json:"fileId"`
	CorrectCount         int          `json:"correctCount"`
	TotalCount           int          `json:"totalCount"`
	WordResults          []WordResult `json:"wordResults"`
	BaseStars            int          `json:"baseStars"`
	DoubleStarActive     bool         `json:"doubleStarActive"`
	DifficultyMultiplier float64      `json:"difficultyMultiplier"`
	BonusMultiplier      float64      `json:"bonusMultiplier"`
	CompanionPetID       string       `json:"companionPetId"`
	Category             string       `json:"category"`
}

// AwardBreakdown reports how the final payout was assembled, for display.
type AwardBreakdown struct {
	StarsEarned         int     `json:"starsEarned"`
	NewTotal            int     `json:"newTotal"`
	CooldownMultiplier  float64 `json:"cooldownMultiplier"`
	BaseStars           int     `json:"baseStars"`
	AccuracyBonus       int     `json:"accuracyBonus"`
	TypeBonusMultiplier float64 `json:"typeBonusMultiplier"`
	AbilityBonus        int     `json:"abilityBonus"`
}

// WordStats is the per-word history the familiarity estimator reads:
// the attempt record's correct count and the mastery level (both zero when
// no record exists yet).
type WordStats struct {
	CorrectCount int
	MasteryLevel int
}

// AwardSnapshot is the in-transaction read set handed to the pipeline
// computation before any write happens.
type AwardSnapshot struct {
	CooldownAttempts int
	Words            map[string]WordStats
	Now              time.Time
}
