package economy

import "math/rand"

// AbilityContext is what a species ability sees when it runs: the stars
// computed by all generic multipliers, the submission shape, and a random
// source for chance-based abilities.
type AbilityContext struct {
	Stars        int
	CorrectCount int
	TotalCount   int
	Rand         *rand.Rand
}

// Ability adjusts the final payout for a companion pet's species and reports
// its own delta for display. Abilities run after every generic multiplier
// and a pet has exactly one.
type Ability func(AbilityContext) (stars, delta int)

var abilities = map[string]Ability{
	// Flat +15% on every submission.
	"electric_mouse": func(c AbilityContext) (int, int) {
		adjusted := Round(float64(c.Stars) * 1.15)
		return adjusted, adjusted - c.Stars
	},
	// +30% on a perfect score with at least five questions.
	"sky_dragon": func(c AbilityContext) (int, int) {
		if c.TotalCount >= 5 && c.CorrectCount == c.TotalCount {
			adjusted := Round(float64(c.Stars) * 1.3)
			return adjusted, adjusted - c.Stars
		}
		return c.Stars, 0
	},
	// Always one extra star.
	"chick_bird": func(c AbilityContext) (int, int) {
		return c.Stars + 1, 1
	},
	// 10% chance to double the already-computed total.
	"mimic_lizard": func(c AbilityContext) (int, int) {
		if c.Rand != nil && c.Rand.Float64() < 0.1 {
			return c.Stars * 2, c.Stars
		}
		return c.Stars, 0
	},
	// +5% on an all-correct submission with at least three questions.
	"jungle_cub": func(c AbilityContext) (int, int) {
		if c.TotalCount >= 3 && c.CorrectCount == c.TotalCount {
			adjusted := Round(float64(c.Stars) * 1.05)
			return adjusted, adjusted - c.Stars
		}
		return c.Stars, 0
	},
}

// AbilityFor looks up the species ability registry. New species register an
// entry here instead of editing the award pipeline.
func AbilityFor(species string) (Ability, bool) {
	a, ok := abilities[species]
	return a, ok
}

// RegisterAbility adds or replaces a species ability.
func RegisterAbility(species string, a Ability) {
	abilities[species] = a
}
