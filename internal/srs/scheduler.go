package srs

import "time"

// Mastery levels run 1..6. Each level maps to a fixed review interval; the
// interval always derives from the level reached after a review, never from
// elapsed time or history.
const (
	MinLevel = 1
	MaxLevel = 6
)

var intervalDays = map[int]int{
	1: 1,
	2: 3,
	3: 7,
	4: 14,
	5: 30,
	6: 60,
}

// Interval returns the review interval for a level. Levels outside the
// table fall back to the longest interval.
func Interval(level int) time.Duration {
	days, ok := intervalDays[level]
	if !ok {
		days = 60
	}
	return time.Duration(days) * 24 * time.Hour
}

// Advance moves a mastery level one step after a review outcome and returns
// the new level with its next-due timestamp. A brand-new mastery is seeded
// with Advance(0, true), which lands on level 1 and a 1-day interval.
func Advance(level int, correct bool, now time.Time) (int, time.Time) {
	if correct {
		level++
		if level > MaxLevel {
			level = MaxLevel
		}
	} else {
		level--
		if level < MinLevel {
			level = MinLevel
		}
	}
	return level, now.Add(Interval(level))
}

// Due reports whether a record scheduled at nextReviewAt is due.
func Due(nextReviewAt, now time.Time) bool {
	return !nextReviewAt.After(now)
}
