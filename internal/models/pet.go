package models

import "time"

// Pet is a profile's companion creature. The displayed pet is the default
// companion for quiz submissions when no explicit companion id is supplied.
type Pet struct {
	ID            string    `json:"id"`
	ProfileID     string    `json:"profile_id"`
	Species       string    `json:"species"`
	EvolutionPath string    `json:"evolution_path"`
	Exp           int       `json:"exp"`
	Displayed     bool      `json:"displayed"`
	CreatedAt     time.Time `json:"created_at"`
}

// PetEquipment maps an equipment slot of a pet to a catalog item id.
type PetEquipment struct {
	PetID  string `json:"pet_id"`
	Slot   string `json:"slot"`
	ItemID string `json:"item_id"`
}
