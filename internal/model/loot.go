package model

// Rarity is the loot tier.
type Rarity string

const (
	RarityCommon Rarity = "common"
	RarityRare   Rarity = "rare"
	RarityEpic   Rarity = "epic"
)

// Valid reports whether r is one of the known tiers.
func (r Rarity) Valid() bool {
	switch r {
	case RarityCommon, RarityRare, RarityEpic:
		return true
	}
	return false
}

// LootEffect is a set of additive bonuses. Absent effects are zero.
type LootEffect struct {
	AttackBonus         float64 `yaml:"attack_bonus,omitempty"`
	ArmorBonus          float64 `yaml:"armor_bonus,omitempty"`
	MaxHPBonus          int     `yaml:"max_hp_bonus,omitempty"`
	AbilityChargesBonus int     `yaml:"ability_charges_bonus,omitempty"`
	GoldBonus           int     `yaml:"gold_bonus,omitempty"`
}

// LootItem is a rolled reward. ID is unique per roll.
type LootItem struct {
	ID          string
	Name        string
	Rarity      Rarity
	Description string
	Effects     LootEffect
}
