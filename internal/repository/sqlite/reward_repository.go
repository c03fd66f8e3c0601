package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vocapets/vocapets/internal/db"
	"github.com/vocapets/vocapets/internal/logger"
	"github.com/vocapets/vocapets/internal/models"
	"github.com/vocapets/vocapets/internal/repository"
)

type rewardRepository struct {
	db *sql.DB
}

// NewRewardRepository creates a new RewardRepository implementation
func NewRewardRepository(sqlDB *sql.DB) repository.RewardRepository {
	return &rewardRepository{db: sqlDB}
}

// Award runs the whole submission commit as one transaction: touch the
// cooldown record, read the per-word history, hand both to compute, then
// write the attempt counters and the balance increment. Any failure rolls
// everything back, so a cooldown bump can never outlive a failed payout.
func (r *rewardRepository) Award(ctx context.Context, profileID, fileID string, words []models.WordResult, now time.Time, window time.Duration, compute repository.ComputeAward) (models.AwardBreakdown, error) {
	log := logger.FromContext(ctx).WithPrefix("reward_repo")
	log.Debug("awarding stars: profile_id=%s, file_id=%s, words=%d", profileID, fileID, len(words))

	var breakdown models.AwardBreakdown
	err := db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		attempts, err := touchCooldown(ctx, tx, profileID, fileID, now, window)
		if err != nil {
			return err
		}

		snap := models.AwardSnapshot{
			CooldownAttempts: attempts,
			Words:            make(map[string]models.WordStats, len(words)),
			Now:              now,
		}
		for _, w := range words {
			if !w.Correct {
				continue
			}
			stats, err := wordStats(ctx, tx, profileID, w.WordID)
			if err != nil {
				return err
			}
			snap.Words[w.WordID] = stats
		}

		stars, bd := compute(snap)
		breakdown = bd

		for _, w := range words {
			if err := upsertAttempt(ctx, tx, profileID, w.WordID, w.Correct, now); err != nil {
				return err
			}
		}

		res, err := tx.ExecContext(ctx, `
UPDATE profiles
SET stars = stars + ?, total_stars = total_stars + ?
WHERE id = ?
`, stars, stars, profileID)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return sql.ErrNoRows
		}

		return tx.QueryRowContext(ctx, `SELECT stars FROM profiles WHERE id = ?`, profileID).Scan(&breakdown.NewTotal)
	})
	if err != nil {
		log.Error("award transaction failed: %v", err)
		return models.AwardBreakdown{}, err
	}

	log.Debug("award committed: stars=%d, new_total=%d", breakdown.StarsEarned, breakdown.NewTotal)
	return breakdown, nil
}

// touchCooldown creates, resets or increments the per-(profile, file)
// cooldown record and returns the attempt count inside the current window.
func touchCooldown(ctx context.Context, tx *sql.Tx, profileID, fileID string, now time.Time, window time.Duration) (int, error) {
	var count int
	var first time.Time
	err := tx.QueryRowContext(ctx, `
SELECT attempt_count, first_attempt_at
FROM cooldown_records
WHERE profile_id = ? AND file_id = ?
`, profileID, fileID).Scan(&count, &first)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.ExecContext(ctx, `
INSERT INTO cooldown_records (profile_id, file_id, attempt_count, first_attempt_at, last_attempt_at)
VALUES (?, ?, 1, ?, ?)
`, profileID, fileID, now, now)
		return 1, err
	case err != nil:
		return 0, err
	case now.Sub(first) > window:
		_, err = tx.ExecContext(ctx, `
UPDATE cooldown_records
SET attempt_count = 1, first_attempt_at = ?, last_attempt_at = ?
WHERE profile_id = ? AND file_id = ?
`, now, now, profileID, fileID)
		return 1, err
	default:
		count++
		_, err = tx.ExecContext(ctx, `
UPDATE cooldown_records
SET attempt_count = ?, last_attempt_at = ?
WHERE profile_id = ? AND file_id = ?
`, count, now, profileID, fileID)
		return count, err
	}
}

// wordStats reads the familiarity inputs for one word: the attempt record's
// correct count and the mastery level, both zero when no record exists.
func wordStats(ctx context.Context, tx *sql.Tx, profileID, wordID string) (models.WordStats, error) {
	var stats models.WordStats

	err := tx.QueryRowContext(ctx, `
SELECT correct_count FROM attempt_records WHERE profile_id = ? AND word_id = ?
`, profileID, wordID).Scan(&stats.CorrectCount)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return stats, err
	}

	err = tx.QueryRowContext(ctx, `
SELECT level FROM mastery_records WHERE profile_id = ? AND word_id = ?
`, profileID, wordID).Scan(&stats.MasteryLevel)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return stats, err
	}

	return stats, nil
}

func upsertAttempt(ctx context.Context, tx *sql.Tx, profileID, wordID string, correct bool, now time.Time) error {
	correctInc := 0
	if correct {
		correctInc = 1
	}
	_, err := tx.ExecContext(ctx, `
INSERT INTO attempt_records (profile_id, word_id, total_count, correct_count, last_attempt_at)
VALUES (?, ?, 1, ?, ?)
ON CONFLICT (profile_id, word_id) DO UPDATE SET
    total_count = total_count + 1,
    correct_count = correct_count + excluded.correct_count,
    last_attempt_at = excluded.last_attempt_at
`, profileID, wordID, correctInc, now)
	return err
}
