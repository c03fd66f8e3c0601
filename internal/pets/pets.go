package pets

// ElementType is a pet's elemental affinity, matched against quiz categories
// for the type-effectiveness bonus.
type ElementType string

const (
	TypeNature   ElementType = "nature"
	TypeElectric ElementType = "electric"
	TypeWater    ElementType = "water"
	TypeRock     ElementType = "rock"
	TypeAir      ElementType = "air"
	TypeSpirit   ElementType = "spirit"
)

// Status is the derived growth state of a pet.
type Status struct {
	Level                int  `json:"level"`
	Stage                int  `json:"stage"`
	ExpToNext            int  `json:"exp_to_next"`
	CurrentExp           int  `json:"current_exp"`
	NeedsEvolutionChoice bool `json:"needs_evolution_choice"`
}

// StatusFunc derives a pet's growth state from its accumulated experience.
type StatusFunc func(exp int, species, evolutionPath string) Status

// TypeLookupFunc returns a pet's element types for its species, chosen
// evolution path and growth stage.
type TypeLookupFunc func(species, evolutionPath string, stage int) []ElementType

// TypeBonusFunc compares a pet's types against a quiz category and returns
// the payout multiplier (1.0 means no effect).
type TypeBonusFunc func(types []ElementType, category string) float64

// EquipmentItem is a catalog entry for a wearable pet item.
type EquipmentItem struct {
	Slot       string `json:"slot"`
	BonusType  string `json:"bonus_type"` // "exp" or "stars"
	BonusValue int    `json:"bonus_value"`
}

// EquipmentCatalog resolves an item id to its slot and bonus.
type EquipmentCatalog interface {
	Item(id string) (EquipmentItem, bool)
}
