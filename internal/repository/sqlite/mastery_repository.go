package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vocapets/vocapets/internal/logger"
	"github.com/vocapets/vocapets/internal/models"
	"github.com/vocapets/vocapets/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type masteryRepository struct {
	db *sql.DB
}

// NewMasteryRepository creates a new MasteryRepository implementation
func NewMasteryRepository(db *sql.DB) repository.MasteryRepository {
	return &masteryRepository{db: db}
}

func (r *masteryRepository) Get(ctx context.Context, profileID, wordID string) (*models.MasteryRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("mastery_repo")
	log.Debug("getting mastery record: profile_id=%s, word_id=%s", profileID, wordID)

	var m models.MasteryRecord
	err := r.db.QueryRowContext(ctx, `
SELECT id, profile_id, word_id, level, mastered_at, last_reviewed_at, next_review_at, review_count, correct_streak
FROM mastery_records
WHERE profile_id = ? AND word_id = ?
`, profileID, wordID).Scan(&m.ID, &m.ProfileID, &m.WordID, &m.Level, &m.MasteredAt, &m.LastReviewedAt, &m.NextReviewAt, &m.ReviewCount, &m.CorrectStreak)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("mastery record not found: word_id=%s", wordID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get mastery record: %v", err)
		return nil, err
	}
	return &m, nil
}

func (r *masteryRepository) Insert(ctx context.Context, rec models.MasteryRecord) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("mastery_repo")
	log.Debug("inserting mastery record: profile_id=%s, word_id=%s, level=%d", rec.ProfileID, rec.WordID, rec.Level)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO mastery_records (profile_id, word_id, level, mastered_at, last_reviewed_at, next_review_at, review_count, correct_streak)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, rec.ProfileID, rec.WordID, rec.Level, rec.MasteredAt, rec.LastReviewedAt, rec.NextReviewAt, rec.ReviewCount, rec.CorrectStreak)
	if err != nil {
		log.Error("failed to insert mastery record: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get mastery record id: %v", err)
		return 0, err
	}
	log.Debug("mastery record inserted: id=%d", id)
	return id, nil
}

func (r *masteryRepository) Update(ctx context.Context, rec models.MasteryRecord) error {
	log := logger.FromContext(ctx).WithPrefix("mastery_repo")
	log.Debug("updating mastery record: id=%d, level=%d", rec.ID, rec.Level)

	_, err := r.db.ExecContext(ctx, `
UPDATE mastery_records
SET level = ?, last_reviewed_at = ?, next_review_at = ?, review_count = ?, correct_streak = ?
WHERE id = ?
`, rec.Level, rec.LastReviewedAt, rec.NextReviewAt, rec.ReviewCount, rec.CorrectStreak, rec.ID)
	if err != nil {
		log.Error("failed to update mastery record: %v", err)
	}
	return err
}

// DueWords returns the records whose next review time has passed, soonest
// first. Read-only: scheduling state is never advanced by a read.
func (r *masteryRepository) DueWords(ctx context.Context, profileID string, now time.Time, limit int) ([]models.MasteryRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("mastery_repo")
	log.Debug("fetching due words: profile_id=%s, limit=%d", profileID, limit)

	query := sqlBuilder.Select(
		"id", "profile_id", "word_id", "level", "mastered_at",
		"last_reviewed_at", "next_review_at", "review_count", "correct_streak",
	).From("mastery_records").
		Where(squirrel.Eq{"profile_id": profileID}).
		Where(squirrel.LtOrEq{"next_review_at": now}).
		OrderBy("next_review_at ASC")

	if limit > 0 {
		query = query.Limit(uint64(limit))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query due words: %v", err)
		return nil, err
	}
	defer rows.Close()

	var records []models.MasteryRecord
	for rows.Next() {
		var m models.MasteryRecord
		if err := rows.Scan(&m.ID, &m.ProfileID, &m.WordID, &m.Level, &m.MasteredAt, &m.LastReviewedAt, &m.NextReviewAt, &m.ReviewCount, &m.CorrectStreak); err != nil {
			log.Error("failed to scan mastery row: %v", err)
			return nil, err
		}
		records = append(records, m)
	}
	log.Debug("found %d due words", len(records))
	return records, rows.Err()
}
