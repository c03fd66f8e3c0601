package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vocapets/vocapets/internal/logger"
	"github.com/vocapets/vocapets/internal/models"
	"github.com/vocapets/vocapets/internal/repository"
)

type petRepository struct {
	db *sql.DB
}

// NewPetRepository creates a new PetRepository implementation
func NewPetRepository(db *sql.DB) repository.PetRepository {
	return &petRepository{db: db}
}

const petColumns = `id, profile_id, species, evolution_path, exp, displayed, created_at`

func (r *petRepository) Get(ctx context.Context, id string) (*models.Pet, error) {
	log := logger.FromContext(ctx).WithPrefix("pet_repo")
	log.Debug("getting pet: id=%s", id)

	var p models.Pet
	err := r.db.QueryRowContext(ctx, `
SELECT `+petColumns+` FROM pets WHERE id = ?
`, id).Scan(&p.ID, &p.ProfileID, &p.Species, &p.EvolutionPath, &p.Exp, &p.Displayed, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("pet not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get pet: %v", err)
		return nil, err
	}
	return &p, nil
}

func (r *petRepository) GetDisplayed(ctx context.Context, profileID string) (*models.Pet, error) {
	log := logger.FromContext(ctx).WithPrefix("pet_repo")
	log.Debug("getting displayed pet: profile_id=%s", profileID)

	var p models.Pet
	err := r.db.QueryRowContext(ctx, `
SELECT `+petColumns+` FROM pets WHERE profile_id = ? AND displayed = 1
`, profileID).Scan(&p.ID, &p.ProfileID, &p.Species, &p.EvolutionPath, &p.Exp, &p.Displayed, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get displayed pet: %v", err)
		return nil, err
	}
	return &p, nil
}

func (r *petRepository) Insert(ctx context.Context, pet models.Pet) error {
	log := logger.FromContext(ctx).WithPrefix("pet_repo")
	log.Debug("inserting pet: id=%s, species=%s", pet.ID, pet.Species)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO pets (id, profile_id, species, evolution_path, exp, displayed, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, pet.ID, pet.ProfileID, pet.Species, pet.EvolutionPath, pet.Exp, pet.Displayed, pet.CreatedAt)
	if err != nil {
		log.Error("failed to insert pet: %v", err)
	}
	return err
}

func (r *petRepository) Equip(ctx context.Context, petID, slot, itemID string) error {
	log := logger.FromContext(ctx).WithPrefix("pet_repo")
	log.Debug("equipping item: pet_id=%s, slot=%s, item_id=%s", petID, slot, itemID)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO pet_equipment (pet_id, slot, item_id)
VALUES (?, ?, ?)
ON CONFLICT (pet_id, slot) DO UPDATE SET item_id = excluded.item_id
`, petID, slot, itemID)
	if err != nil {
		log.Error("failed to equip item: %v", err)
	}
	return err
}

func (r *petRepository) EquippedItems(ctx context.Context, petID string) ([]string, error) {
	log := logger.FromContext(ctx).WithPrefix("pet_repo")
	log.Debug("listing equipped items: pet_id=%s", petID)

	rows, err := r.db.QueryContext(ctx, `
SELECT item_id FROM pet_equipment WHERE pet_id = ?
`, petID)
	if err != nil {
		log.Error("failed to query equipment: %v", err)
		return nil, err
	}
	defer rows.Close()

	var items []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			log.Error("failed to scan equipment row: %v", err)
			return nil, err
		}
		items = append(items, id)
	}
	return items, rows.Err()
}
