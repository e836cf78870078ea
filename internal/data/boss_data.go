package data

import (
	"slices"

	"github.com/udisondev/mathduel/internal/model"
	"github.com/udisondev/mathduel/internal/rng"
)

// RandomBossID asks PickBoss for a uniformly random boss.
const RandomBossID = "random"

// OverlordID is the boss whose defeat boosts every loot weight.
const OverlordID = "overlord"

var bossTable = []model.Boss{
	{
		ID:               "golem",
		Name:             "Granite Golem",
		Title:            "Keeper of Fractions",
		Description:      "High armor and reflective spikes punish clean hits.",
		Ability:          model.AbilityThorns,
		MaxHP:            120,
		DamageMultiplier: 0.95,
		Resistance:       0.14,
		RewardGold:       44,
		TimePressure:     0,
		QuestionBonus:    1,
	},
	{
		ID:               "wyrm",
		Name:             "Chrono Wyrm",
		Title:            "Timebreaker",
		Description:      "Bends the clock and gives you less time each round.",
		Ability:          model.AbilityTimeWarp,
		MaxHP:            102,
		DamageMultiplier: 1.08,
		Resistance:       0.06,
		RewardGold:       48,
		TimePressure:     1,
		QuestionBonus:    2,
	},
	{
		ID:               "lich",
		Name:             "Lich of Algebra",
		Title:            "Soul Divider",
		Description:      "Drains life whenever your answer is wrong or late.",
		Ability:          model.AbilityDrain,
		MaxHP:            96,
		DamageMultiplier: 1.18,
		Resistance:       0.08,
		RewardGold:       55,
		TimePressure:     0,
		QuestionBonus:    2,
	},
	{
		ID:               OverlordID,
		Name:             "Prime Overlord",
		Title:            "Lord of Constants",
		Description:      "Enrages below 40% HP, gaining damage and resistance.",
		Ability:          model.AbilityEnrage,
		MaxHP:            132,
		DamageMultiplier: 1.14,
		Resistance:       0.17,
		RewardGold:       70,
		TimePressure:     1,
		QuestionBonus:    3,
	},
}

// Bosses returns a copy of the boss catalog in catalog order.
func Bosses() []model.Boss {
	return slices.Clone(bossTable)
}

// GetBoss returns the catalog boss with the given id.
func GetBoss(id string) (model.Boss, bool) {
	for _, b := range bossTable {
		if b.ID == id {
			return b, true
		}
	}
	return model.Boss{}, false
}

// PickBoss returns the boss matching id. RandomBossID or an unknown id
// yields a uniformly random catalog boss; it never fails.
func PickBoss(src rng.Source, id string) model.Boss {
	if id != RandomBossID {
		if b, ok := GetBoss(id); ok {
			return b
		}
	}
	return rng.Pick(src, bossTable)
}
