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

type profileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new ProfileRepository implementation
func NewProfileRepository(db *sql.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Get(ctx context.Context, id string) (*models.Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("getting profile: id=%s", id)

	var p models.Profile
	var lastLogin sql.NullTime
	err := r.db.QueryRowContext(ctx, `
SELECT id, name, stars, total_stars, login_streak, last_login_at, created_at
FROM profiles
WHERE id = ?
`, id).Scan(&p.ID, &p.Name, &p.Stars, &p.TotalStars, &p.LoginStreak, &lastLogin, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("profile not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get profile: %v", err)
		return nil, err
	}
	if lastLogin.Valid {
		p.LastLoginAt = &lastLogin.Time
	}
	return &p, nil
}

func (r *profileRepository) Insert(ctx context.Context, profile models.Profile) error {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("inserting profile: id=%s, name=%s", profile.ID, profile.Name)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO profiles (id, name, stars, total_stars, login_streak, created_at)
VALUES (?, ?, ?, ?, ?, ?)
`, profile.ID, profile.Name, profile.Stars, profile.TotalStars, profile.LoginStreak, profile.CreatedAt)
	if err != nil {
		log.Error("failed to insert profile: %v", err)
	}
	return err
}

func (r *profileRepository) AddStars(ctx context.Context, id string, stars int) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("adding stars: id=%s, stars=%d", id, stars)

	res, err := r.db.ExecContext(ctx, `
UPDATE profiles
SET stars = stars + ?, total_stars = total_stars + ?
WHERE id = ?
`, stars, stars, id)
	if err != nil {
		log.Error("failed to add stars: %v", err)
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return 0, sql.ErrNoRows
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT stars FROM profiles WHERE id = ?`, id).Scan(&total); err != nil {
		log.Error("failed to read new balance: %v", err)
		return 0, err
	}
	return total, nil
}

// CheckIn applies fn to the stored profile and commits the login fields and
// the payout in one transaction. The returned profile carries the refreshed
// balance.
func (r *profileRepository) CheckIn(ctx context.Context, id string, fn func(*models.Profile) (int, error)) (*models.Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("checking in: id=%s", id)

	var result *models.Profile
	err := db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		var p models.Profile
		var lastLogin sql.NullTime
		err := tx.QueryRowContext(ctx, `
SELECT id, name, stars, total_stars, login_streak, last_login_at, created_at
FROM profiles
WHERE id = ?
`, id).Scan(&p.ID, &p.Name, &p.Stars, &p.TotalStars, &p.LoginStreak, &lastLogin, &p.CreatedAt)
		if err != nil {
			return err
		}
		if lastLogin.Valid {
			p.LastLoginAt = &lastLogin.Time
		}

		stars, err := fn(&p)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `
UPDATE profiles
SET login_streak = ?, last_login_at = ?
WHERE id = ?
`, p.LoginStreak, p.LastLoginAt, id); err != nil {
			return err
		}

		if stars > 0 {
			if _, err := tx.ExecContext(ctx, `
UPDATE profiles
SET stars = stars + ?, total_stars = total_stars + ?
WHERE id = ?
`, stars, stars, id); err != nil {
				return err
			}
		}

		if err := tx.QueryRowContext(ctx, `SELECT stars, total_stars FROM profiles WHERE id = ?`, id).Scan(&p.Stars, &p.TotalStars); err != nil {
			return err
		}
		result = &p
		return nil
	})
	if err != nil {
		log.Error("check-in transaction failed: %v", err)
		return nil, err
	}
	return result, nil
}
