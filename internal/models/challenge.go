package models

// Weekly challenge targets. Fixed for every profile and week.
const (
	WeeklyTargetWords = 50
	WeeklyTargetQuiz  = 10
	WeeklyTargetDays  = 5

	WeeklyRewardStars   = 100
	WeeklyRewardSticker = "sticker_weekly_champion"
)

// WeeklyChallenge is one record per profile per ISO week (Monday 00:00
// boundary). progress_days increments at most once per calendar day and
// reward_claimed never reverts to false.
type WeeklyChallenge struct {
	ID             int64  `json:"id"`
	ProfileID      string `json:"profile_id"`
	WeekKey        string `json:"week_key"` // e.g. 2026-W35
	ProgressWords  int    `json:"progress_words"`
	ProgressQuiz   int    `json:"progress_quiz"`
	ProgressDays   int    `json:"progress_days"`
	LastActiveDate string `json:"last_active_date"`
	RewardClaimed  bool   `json:"reward_claimed"`
}

// TargetsMet reports whether all three counters reached their targets.
func (c WeeklyChallenge) TargetsMet() bool {
	return c.ProgressWords >= WeeklyTargetWords &&
		c.ProgressQuiz >= WeeklyTargetQuiz &&
		c.ProgressDays >= WeeklyTargetDays
}

// WeeklyRewards is the one-time payout of a claimed weekly challenge.
type WeeklyRewards struct {
	Stars   int    `json:"stars"`
	Sticker string `json:"sticker"`
}
