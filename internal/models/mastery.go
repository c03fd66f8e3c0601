package models

import "time"

// MasteryRecord tracks spaced-repetition strength for one profile/word pair.
// Created on the first correct answer, mutated only by the SRS scheduler,
// never deleted except by an explicit profile reset.
type MasteryRecord struct {
	ID             int64     `json:"id"`
	ProfileID      string    `json:"profile_id"`
	WordID         string    `json:"word_id"`
	Level          int       `json:"level"`
	MasteredAt     time.Time `json:"mastered_at"`
	LastReviewedAt time.Time `json:"last_reviewed_at"`
	NextReviewAt   time.Time `json:"next_review_at"`
	ReviewCount    int       `json:"review_count"`
	CorrectStreak  int       `json:"correct_streak"`
}

// AttemptRecord counts submissions for one profile/word pair. Incremented on
// every submission regardless of correctness; feeds the familiarity estimator.
type AttemptRecord struct {
	ID            int64     `json:"id"`
	ProfileID     string    `json:"profile_id"`
	WordID        string    `json:"word_id"`
	TotalCount    int       `json:"total_count"`
	CorrectCount  int       `json:"correct_count"`
	LastAttemptAt time.Time `json:"last_attempt_at"`
}

// CooldownRecord tracks repeated submissions of one file inside a rolling
// window. attempt_count is always >= 1 once the record exists.
type CooldownRecord struct {
	ID             int64     `json:"id"`
	ProfileID      string    `json:"profile_id"`
	FileID         string    `json:"file_id"`
	AttemptCount   int       `json:"attempt_count"`
	FirstAttemptAt time.Time `json:"first_attempt_at"`
	LastAttemptAt  time.Time `json:"last_attempt_at"`
}
