package data

import (
	"math"
	"slices"

	"github.com/udisondev/mathduel/internal/model"
)

// UnaffordableCost is returned by UpgradeCost for unknown upgrade keys.
const UnaffordableCost = math.MaxInt

// Upgrade describes a purchasable upgrade track. Each level adds PerLevel
// to the player's bonuses and costs BaseCost + level*Growth.
type Upgrade struct {
	Key         model.UpgradeKey
	Name        string
	Description string
	BaseCost    int
	Growth      int
	PerLevel    model.LootEffect
}

var upgradeTable = []Upgrade{
	{
		Key:         model.UpgradeBlade,
		Name:        "Blade Training",
		Description: "+8% attack damage each level.",
		BaseCost:    60,
		Growth:      42,
		PerLevel:    model.LootEffect{AttackBonus: 0.08},
	},
	{
		Key:         model.UpgradeBulwark,
		Name:        "Bulwark Drills",
		Description: "+7% damage reduction each level.",
		BaseCost:    60,
		Growth:      42,
		PerLevel:    model.LootEffect{ArmorBonus: 0.07},
	},
	{
		Key:         model.UpgradeVitality,
		Name:        "Vitality Runes",
		Description: "+10 max HP each level.",
		BaseCost:    75,
		Growth:      50,
		PerLevel:    model.LootEffect{MaxHPBonus: 10},
	},
	{
		Key:         model.UpgradeFocus,
		Name:        "Focus Mastery",
		Description: "+1 starting charge for each ability each level.",
		BaseCost:    85,
		Growth:      56,
		PerLevel:    model.LootEffect{AbilityChargesBonus: 1},
	},
}

// Upgrades returns a copy of the upgrade definitions in shop order.
func Upgrades() []Upgrade {
	return slices.Clone(upgradeTable)
}

// GetUpgrade returns the definition for key.
func GetUpgrade(key model.UpgradeKey) (Upgrade, bool) {
	for _, u := range upgradeTable {
		if u.Key == key {
			return u, true
		}
	}
	return Upgrade{}, false
}

// UpgradeCost returns the price of buying the next level when the track
// is at level. Unknown keys cost UnaffordableCost.
func UpgradeCost(key model.UpgradeKey, level int) int {
	u, ok := GetUpgrade(key)
	if !ok {
		return UnaffordableCost
	}
	return u.BaseCost + level*u.Growth
}
