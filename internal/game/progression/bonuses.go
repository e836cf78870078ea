// Package progression holds the cross-battle economy: upgrade levels,
// gold, the loot inventory and the player bonuses derived from them.
package progression

import (
	"github.com/udisondev/mathduel/internal/data"
	"github.com/udisondev/mathduel/internal/model"
)

// UpgradeState is the purchased level of every upgrade track.
// Levels only ever increase.
type UpgradeState struct {
	Blade    int `yaml:"blade"`
	Bulwark  int `yaml:"bulwark"`
	Vitality int `yaml:"vitality"`
	Focus    int `yaml:"focus"`
}

// Level returns the level of key; false for unknown keys.
func (s UpgradeState) Level(key model.UpgradeKey) (int, bool) {
	switch key {
	case model.UpgradeBlade:
		return s.Blade, true
	case model.UpgradeBulwark:
		return s.Bulwark, true
	case model.UpgradeVitality:
		return s.Vitality, true
	case model.UpgradeFocus:
		return s.Focus, true
	}
	return 0, false
}

func (s *UpgradeState) increment(key model.UpgradeKey) {
	switch key {
	case model.UpgradeBlade:
		s.Blade++
	case model.UpgradeBulwark:
		s.Bulwark++
	case model.UpgradeVitality:
		s.Vitality++
	case model.UpgradeFocus:
		s.Focus++
	}
}

// PlayerBonuses are the combat bonuses derived from upgrades and loot.
// Always recomputed, never stored.
type PlayerBonuses struct {
	AttackBonus         float64
	ArmorBonus          float64
	MaxHPBonus          int
	AbilityChargesBonus int
}

func (b PlayerBonuses) add(e model.LootEffect, times int) PlayerBonuses {
	f := float64(times)
	b.AttackBonus += e.AttackBonus * f
	b.ArmorBonus += e.ArmorBonus * f
	b.MaxHPBonus += e.MaxHPBonus * times
	b.AbilityChargesBonus += e.AbilityChargesBonus * times
	return b
}

// CalculatePlayerBonuses sums per-level upgrade contributions and every
// inventory item's effects. Totals are not capped here; the round
// resolver bounds armor and resistance where they are applied.
func CalculatePlayerBonuses(upgrades UpgradeState, items []model.LootItem) PlayerBonuses {
	var b PlayerBonuses
	for _, u := range data.Upgrades() {
		level, _ := upgrades.Level(u.Key)
		b = b.add(u.PerLevel, level)
	}
	for _, item := range items {
		b = b.add(item.Effects, 1)
	}
	return b
}
