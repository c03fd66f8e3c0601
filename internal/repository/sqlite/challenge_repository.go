package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vocapets/vocapets/internal/db"
	"github.com/vocapets/vocapets/internal/logger"
	"github.com/vocapets/vocapets/internal/models"
	"github.com/vocapets/vocapets/internal/repository"
)

type challengeRepository struct {
	db *sql.DB
}

// NewChallengeRepository creates a new ChallengeRepository implementation
func NewChallengeRepository(sqlDB *sql.DB) repository.ChallengeRepository {
	return &challengeRepository{db: sqlDB}
}

func (r *challengeRepository) CreateIfAbsent(ctx context.Context, profileID, weekKey string) error {
	log := logger.FromContext(ctx).WithPrefix("challenge_repo")
	log.Debug("creating weekly challenge if absent: profile_id=%s, week=%s", profileID, weekKey)

	_, err := r.db.ExecContext(ctx, `
INSERT OR IGNORE INTO weekly_challenges (profile_id, week_key)
VALUES (?, ?)
`, profileID, weekKey)
	if err != nil {
		log.Error("failed to create weekly challenge: %v", err)
	}
	return err
}

func (r *challengeRepository) Get(ctx context.Context, profileID, weekKey string) (*models.WeeklyChallenge, error) {
	log := logger.FromContext(ctx).WithPrefix("challenge_repo")
	log.Debug("getting weekly challenge: profile_id=%s, week=%s", profileID, weekKey)

	var c models.WeeklyChallenge
	err := r.db.QueryRowContext(ctx, `
SELECT id, profile_id, week_key, progress_words, progress_quiz, progress_days, last_active_date, reward_claimed
FROM weekly_challenges
WHERE profile_id = ? AND week_key = ?
`, profileID, weekKey).Scan(&c.ID, &c.ProfileID, &c.WeekKey, &c.ProgressWords, &c.ProgressQuiz, &c.ProgressDays, &c.LastActiveDate, &c.RewardClaimed)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("weekly challenge not found: week=%s", weekKey)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get weekly challenge: %v", err)
		return nil, err
	}
	return &c, nil
}

// Mutate applies fn to the stored challenge and commits the updated row
// together with the stars fn awarded, all in one transaction.
func (r *challengeRepository) Mutate(ctx context.Context, profileID, weekKey string, fn func(*models.WeeklyChallenge) (int, error)) (*models.WeeklyChallenge, error) {
	log := logger.FromContext(ctx).WithPrefix("challenge_repo")

	var result *models.WeeklyChallenge
	err := db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		var c models.WeeklyChallenge
		err := tx.QueryRowContext(ctx, `
SELECT id, profile_id, week_key, progress_words, progress_quiz, progress_days, last_active_date, reward_claimed
FROM weekly_challenges
WHERE profile_id = ? AND week_key = ?
`, profileID, weekKey).Scan(&c.ID, &c.ProfileID, &c.WeekKey, &c.ProgressWords, &c.ProgressQuiz, &c.ProgressDays, &c.LastActiveDate, &c.RewardClaimed)
		if err != nil {
			return err
		}

		stars, err := fn(&c)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `
UPDATE weekly_challenges SET
    progress_words = ?, progress_quiz = ?, progress_days = ?,
    last_active_date = ?, reward_claimed = ?
WHERE id = ?
`, c.ProgressWords, c.ProgressQuiz, c.ProgressDays, c.LastActiveDate, c.RewardClaimed, c.ID); err != nil {
			return err
		}

		if stars > 0 {
			if _, err := tx.ExecContext(ctx, `
UPDATE profiles SET stars = stars + ?, total_stars = total_stars + ? WHERE id = ?
`, stars, stars, profileID); err != nil {
				return err
			}
		}

		result = &c
		return nil
	})
	if err != nil {
		log.Error("challenge mutation failed: %v", err)
		return nil, err
	}
	return result, nil
}
