package pets

import "strings"

// speciesTypes maps each base species to its element types. Evolution paths
// keep the base typing; stage is accepted for forward compatibility with
// stage-specific typings.
var speciesTypes = map[string][]ElementType{
	"spirit_dog":     {TypeSpirit},
	"chick_bird":     {TypeAir},
	"young_scale":    {TypeWater},
	"beetle":         {TypeNature},
	"electric_mouse": {TypeElectric},
	"hard_crab":      {TypeWater, TypeRock},
	"mimic_lizard":   {TypeSpirit},
	"seed_ball":      {TypeNature},
	"jellyfish":      {TypeWater},
	"ore_giant":      {TypeRock},
	"jungle_cub":     {TypeNature},
	"sky_dragon":     {TypeAir},
	"dune_bug":       {TypeRock, TypeNature},
	"sonic_bat":      {TypeAir, TypeSpirit},
	"snow_beast":     {TypeWater},
	"circuit_fish":   {TypeElectric, TypeWater},
	"mushroom":       {TypeNature, TypeSpirit},
	"crystal_beast":  {TypeRock, TypeSpirit},
	"nebula_fish":    {TypeWater, TypeSpirit},
	"clockwork_bird": {TypeElectric, TypeAir},
}

// categoryTypes maps quiz categories to the element type they resonate with.
var categoryTypes = map[string]ElementType{
	"science":    TypeNature,
	"nature":     TypeNature,
	"technology": TypeElectric,
	"math":       TypeElectric,
	"geography":  TypeWater,
	"history":    TypeRock,
	"language":   TypeAir,
	"arts":       TypeSpirit,
}

// LookupTypes is the default TypeLookupFunc backed by the static species
// table. Unknown species have no types.
func LookupTypes(species, evolutionPath string, stage int) []ElementType {
	_ = evolutionPath
	_ = stage
	return speciesTypes[species]
}

// TypeBonus is the default TypeBonusFunc: a pet whose typing matches the
// quiz category earns 20% extra, otherwise the multiplier is neutral.
func TypeBonus(types []ElementType, category string) float64 {
	want, ok := categoryTypes[strings.ToLower(category)]
	if !ok {
		return 1.0
	}
	for _, t := range types {
		if t == want {
			return 1.2
		}
	}
	return 1.0
}

// Growth curve: each level costs 100 exp, stages advance every 10 levels,
// and an evolution choice opens at stage boundaries until a path is picked.
const (
	expPerLevel    = 100
	levelsPerStage = 10
)

// ComputeStatus is the default StatusFunc.
func ComputeStatus(exp int, species, evolutionPath string) Status {
	if exp < 0 {
		exp = 0
	}
	level := exp/expPerLevel + 1
	stage := (level-1)/levelsPerStage + 1
	return Status{
		Level:                level,
		Stage:                stage,
		ExpToNext:            expPerLevel - exp%expPerLevel,
		CurrentExp:           exp,
		NeedsEvolutionChoice: stage > 1 && evolutionPath == "",
	}
}

// staticCatalog is the built-in equipment catalog.
type staticCatalog map[string]EquipmentItem

func (c staticCatalog) Item(id string) (EquipmentItem, bool) {
	item, ok := c[id]
	return item, ok
}

// DefaultCatalog returns the built-in equipment catalog.
func DefaultCatalog() EquipmentCatalog {
	return staticCatalog{
		"collar_lucky":  {Slot: "neck", BonusType: "stars", BonusValue: 10},
		"charm_star":    {Slot: "charm", BonusType: "stars", BonusValue: 5},
		"crown_golden":  {Slot: "head", BonusType: "stars", BonusValue: 20},
		"band_scholar":  {Slot: "charm", BonusType: "exp", BonusValue: 10},
		"goggles_study": {Slot: "head", BonusType: "exp", BonusValue: 15},
		"cape_voyager":  {Slot: "back", BonusType: "exp", BonusValue: 5},
	}
}
