package progression

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/mathduel/internal/data"
	"github.com/udisondev/mathduel/internal/model"
)

var (
	// ErrUnknownUpgrade is returned when purchasing an upgrade that is not in the catalog.
	ErrUnknownUpgrade = errors.New("unknown upgrade")
	// ErrInsufficientGold is returned when the profile cannot pay for an upgrade.
	ErrInsufficientGold = errors.New("insufficient gold")
)

// Profile is the player's session-scoped progress: gold, upgrades and loot.
// It lives in memory only and is owned by a single goroutine.
type Profile struct {
	gold      int
	upgrades  UpgradeState
	inventory *model.Inventory
}

// NewProfile creates an empty profile.
func NewProfile() *Profile {
	return &Profile{inventory: model.NewInventory(model.DefaultInventoryCapacity)}
}

// Gold returns the current gold balance.
func (p *Profile) Gold() int {
	return p.gold
}

// Upgrades returns a copy of the upgrade levels.
func (p *Profile) Upgrades() UpgradeState {
	return p.upgrades
}

// Items returns the inventory contents, most recent first.
func (p *Profile) Items() []model.LootItem {
	return p.inventory.Items()
}

// Bonuses derives the current player bonuses.
func (p *Profile) Bonuses() PlayerBonuses {
	return CalculatePlayerBonuses(p.upgrades, p.inventory.Items())
}

// NextCost returns the price of the next level of key.
func (p *Profile) NextCost(key model.UpgradeKey) int {
	level, ok := p.upgrades.Level(key)
	if !ok {
		return data.UnaffordableCost
	}
	return data.UpgradeCost(key, level)
}

// Purchase buys one level of key and returns the price paid.
func (p *Profile) Purchase(key model.UpgradeKey) (int, error) {
	level, ok := p.upgrades.Level(key)
	if !ok {
		return 0, fmt.Errorf("purchase %q: %w", key, ErrUnknownUpgrade)
	}

	cost := data.UpgradeCost(key, level)
	if p.gold < cost {
		return 0, fmt.Errorf("purchase %s level %d: cost %d, have %d: %w",
			key, level+1, cost, p.gold, ErrInsufficientGold)
	}

	p.gold -= cost
	p.upgrades.increment(key)

	slog.Info("upgrade purchased",
		"upgrade", key,
		"level", level+1,
		"cost", cost,
		"gold", p.gold)

	return cost, nil
}

// Award credits a battle victory: gold plus one loot item.
// Implements battle.Rewarder.
func (p *Profile) Award(gold int, item model.LootItem) {
	p.gold += gold
	if evicted, ok := p.inventory.Add(item); ok {
		slog.Debug("inventory full, oldest item dropped", "item", evicted.Name)
	}

	slog.Info("victory reward",
		"gold", gold,
		"loot", item.Name,
		"rarity", item.Rarity,
		"balance", p.gold)
}
