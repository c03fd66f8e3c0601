package economy

import "math"

// CooldownWindow and multiplier table: repeated submissions of the same file
// inside the window dampen the whole payout to block farming.
const cooldownMaxRewarded = 3

// Round rounds to the nearest integer with ties going up (0.5 -> 1).
// Every multiplier application in the pipeline uses this.
func Round(x float64) int {
	return int(math.Floor(x + 0.5))
}

// CooldownMultiplier maps the attempt count within the window to the payout
// dampening factor: 1, 0.5, 0.25, then 0 from the fourth attempt on.
func CooldownMultiplier(attemptCount int) float64 {
	switch {
	case attemptCount <= 1:
		return 1
	case attemptCount == 2:
		return 0.5
	case attemptCount == cooldownMaxRewarded:
		return 0.25
	default:
		return 0
	}
}

// FamiliarityMultiplier scales a correct word's reward by how drilled the
// word already is. A word never answered correctly pays double; a word with
// a few correct answers but low mastery pays half; a word past that pays
// nothing.
//
// Note: a level >= 3 with correctCount in 3..5 yields 0 even though level 3
// normally implies more history. A record promoted in level without matching
// attempt history hits this zero-reward edge; kept as-is on purpose.
func FamiliarityMultiplier(correctCount, masteryLevel int) float64 {
	switch {
	case correctCount == 0:
		return 2
	case correctCount <= 2:
		return 1
	case correctCount <= 5 && masteryLevel < 3:
		return 0.5
	default:
		return 0
	}
}

// AccuracyBonus pays flat stars for high accuracy: 5 for a perfect score on
// a quiz of at least five questions, 2 for 80% and up, otherwise nothing.
// A perfect score on a shorter quiz pays no bonus at all; below five
// questions any accuracy of 80% or more is necessarily 100%, so the two-star
// tier only ever fires on longer quizzes.
func AccuracyBonus(correct, total int) int {
	if total <= 0 {
		return 0
	}
	accuracy := Round(float64(correct) / float64(total) * 100)
	switch {
	case accuracy == 100:
		if total >= 5 {
			return 5
		}
		return 0
	case accuracy >= 80:
		return 2
	default:
		return 0
	}
}
