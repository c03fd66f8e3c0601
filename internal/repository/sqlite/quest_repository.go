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

type questRepository struct {
	db *sql.DB
}

// NewQuestRepository creates a new QuestRepository implementation
func NewQuestRepository(sqlDB *sql.DB) repository.QuestRepository {
	return &questRepository{db: sqlDB}
}

// CreateIfAbsent inserts a freshly generated quest set unless one already
// exists for the profile and day. INSERT OR IGNORE keeps concurrent first
// access safe without a separate existence check.
func (r *questRepository) CreateIfAbsent(ctx context.Context, set models.DailyQuestSet) error {
	log := logger.FromContext(ctx).WithPrefix("quest_repo")
	log.Debug("creating quest set if absent: profile_id=%s, date=%s", set.ProfileID, set.QuestDate)

	if len(set.Slots) != 3 {
		return errors.New("quest set must have exactly 3 slots")
	}
	s := set.Slots
	_, err := r.db.ExecContext(ctx, `
INSERT OR IGNORE INTO daily_quest_sets (
    profile_id, quest_date,
    quest1_type, quest1_target, quest1_progress, quest1_reward, quest1_done,
    quest2_type, quest2_target, quest2_progress, quest2_reward, quest2_done,
    quest3_type, quest3_target, quest3_progress, quest3_reward, quest3_done,
    all_completed
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0)
`, set.ProfileID, set.QuestDate,
		s[0].Type, s[0].Target, s[0].Progress, s[0].Reward, s[0].Done,
		s[1].Type, s[1].Target, s[1].Progress, s[1].Reward, s[1].Done,
		s[2].Type, s[2].Target, s[2].Progress, s[2].Reward, s[2].Done)
	if err != nil {
		log.Error("failed to create quest set: %v", err)
	}
	return err
}

func (r *questRepository) Get(ctx context.Context, profileID, questDate string) (*models.DailyQuestSet, error) {
	log := logger.FromContext(ctx).WithPrefix("quest_repo")
	log.Debug("getting quest set: profile_id=%s, date=%s", profileID, questDate)

	set, err := scanQuestSet(r.db.QueryRowContext(ctx, questSelect+`
WHERE profile_id = ? AND quest_date = ?
`, profileID, questDate))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("quest set not found: date=%s", questDate)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get quest set: %v", err)
		return nil, err
	}
	return set, nil
}

// Mutate applies fn to the stored quest set and commits the updated set
// together with the stars fn awarded, all in one transaction.
func (r *questRepository) Mutate(ctx context.Context, profileID, questDate string, fn func(*models.DailyQuestSet) (int, error)) (*models.DailyQuestSet, error) {
	log := logger.FromContext(ctx).WithPrefix("quest_repo")

	var result *models.DailyQuestSet
	err := db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		set, err := scanQuestSet(tx.QueryRowContext(ctx, questSelect+`
WHERE profile_id = ? AND quest_date = ?
`, profileID, questDate))
		if err != nil {
			return err
		}

		stars, err := fn(set)
		if err != nil {
			return err
		}

		s := set.Slots
		if _, err := tx.ExecContext(ctx, `
UPDATE daily_quest_sets SET
    quest1_progress = ?, quest1_done = ?,
    quest2_progress = ?, quest2_done = ?,
    quest3_progress = ?, quest3_done = ?,
    all_completed = ?
WHERE id = ?
`, s[0].Progress, s[0].Done, s[1].Progress, s[1].Done, s[2].Progress, s[2].Done, set.AllCompleted, set.ID); err != nil {
			return err
		}

		if stars > 0 {
			if _, err := tx.ExecContext(ctx, `
UPDATE profiles SET stars = stars + ?, total_stars = total_stars + ? WHERE id = ?
`, stars, stars, profileID); err != nil {
				return err
			}
		}

		result = set
		return nil
	})
	if err != nil {
		log.Error("quest mutation failed: %v", err)
		return nil, err
	}
	return result, nil
}

const questSelect = `
SELECT id, profile_id, quest_date,
    quest1_type, quest1_target, quest1_progress, quest1_reward, quest1_done,
    quest2_type, quest2_target, quest2_progress, quest2_reward, quest2_done,
    quest3_type, quest3_target, quest3_progress, quest3_reward, quest3_done,
    all_completed
FROM daily_quest_sets
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestSet(row rowScanner) (*models.DailyQuestSet, error) {
	var set models.DailyQuestSet
	set.Slots = make([]models.QuestSlot, 3)
	s := set.Slots
	err := row.Scan(&set.ID, &set.ProfileID, &set.QuestDate,
		&s[0].Type, &s[0].Target, &s[0].Progress, &s[0].Reward, &s[0].Done,
		&s[1].Type, &s[1].Target, &s[1].Progress, &s[1].Reward, &s[1].Done,
		&s[2].Type, &s[2].Target, &s[2].Progress, &s[2].Reward, &s[2].Done,
		&set.AllCompleted)
	if err != nil {
		return nil, err
	}
	return &set, nil
}
