package models

import "time"

// Profile carries the balance fields the reward engine mutates. All engine
// mutations are additive: stars never go negative and total_stars only grows.
type Profile struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Stars       int        `json:"stars"`
	TotalStars  int        `json:"total_stars"`
	LoginStreak int        `json:"login_streak"`
	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// LoginReward is the payout of a successful daily check-in.
type LoginReward struct {
	NewStreak   int  `json:"new_streak"`
	StarsEarned int  `json:"stars_earned"`
	IsNewDay    bool `json:"is_new_day"`
}
