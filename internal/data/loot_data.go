package data

import (
	"slices"

	"github.com/google/uuid"

	"github.com/udisondev/mathduel/internal/model"
	"github.com/udisondev/mathduel/internal/rng"
)

// Loot weight multipliers.
const (
	AffinityWeightMultiplier = 1.45 // template affinity matches the boss ability
	OverlordWeightMultiplier = 1.15 // applies to every template when the overlord falls
)

// LootTemplate describes a loot entry and its roll weight.
type LootTemplate struct {
	Name        string
	Rarity      model.Rarity
	Description string
	Weight      float64
	Affinity    model.BossAbility // empty: no affinity
	Effects     model.LootEffect
}

var lootTable = []LootTemplate{
	{
		Name:        "Bronze Abacus Ring",
		Rarity:      model.RarityCommon,
		Description: "+4% attack.",
		Weight:      34,
		Effects:     model.LootEffect{AttackBonus: 0.04},
	},
	{
		Name:        "Guard Sigil",
		Rarity:      model.RarityCommon,
		Description: "+4% armor.",
		Weight:      34,
		Effects:     model.LootEffect{ArmorBonus: 0.04},
	},
	{
		Name:        "Sage Notebook",
		Rarity:      model.RarityCommon,
		Description: "+1 starting ability charge.",
		Weight:      30,
		Affinity:    model.AbilityTimeWarp,
		Effects:     model.LootEffect{AbilityChargesBonus: 1},
	},
	{
		Name:        "Runed Bracers",
		Rarity:      model.RarityRare,
		Description: "+8% attack and +6% armor.",
		Weight:      18,
		Affinity:    model.AbilityThorns,
		Effects:     model.LootEffect{AttackBonus: 0.08, ArmorBonus: 0.06},
	},
	{
		Name:        "Heart of Quartz",
		Rarity:      model.RarityRare,
		Description: "+18 max HP.",
		Weight:      16,
		Affinity:    model.AbilityDrain,
		Effects:     model.LootEffect{MaxHPBonus: 18},
	},
	{
		Name:        "Pocket Chronometer",
		Rarity:      model.RarityRare,
		Description: "+2 starting ability charges.",
		Weight:      14,
		Affinity:    model.AbilityTimeWarp,
		Effects:     model.LootEffect{AbilityChargesBonus: 2},
	},
	{
		Name:        "Overlord Crest",
		Rarity:      model.RarityEpic,
		Description: "+12% attack, +12% armor, +15 max HP, +1 charge.",
		Weight:      6,
		Affinity:    model.AbilityEnrage,
		Effects:     model.LootEffect{AttackBonus: 0.12, ArmorBonus: 0.12, MaxHPBonus: 15, AbilityChargesBonus: 1},
	},
	{
		Name:        "Arcane Treasury Map",
		Rarity:      model.RarityEpic,
		Description: "+80 bonus gold and +6% attack.",
		Weight:      5,
		Effects:     model.LootEffect{AttackBonus: 0.06, GoldBonus: 80},
	},
}

// LootTemplates returns a copy of the loot table in roll order.
func LootTemplates() []LootTemplate {
	return slices.Clone(lootTable)
}

// weightedTable holds the effective weights of lootTable for one boss.
type weightedTable struct {
	weights []float64
	total   float64
}

// lootTables caches the weighted table of every catalog boss.
var lootTables = buildLootTables()

func buildLootTables() map[string]weightedTable {
	tables := make(map[string]weightedTable, len(bossTable))
	for _, b := range bossTable {
		tables[b.ID] = newWeightedTable(b)
	}
	return tables
}

// EffectiveWeight returns the roll weight of tmpl when fighting boss.
func EffectiveWeight(tmpl LootTemplate, boss model.Boss) float64 {
	w := tmpl.Weight
	if tmpl.Affinity != "" && tmpl.Affinity == boss.Ability {
		w *= AffinityWeightMultiplier
	}
	if boss.ID == OverlordID {
		w *= OverlordWeightMultiplier
	}
	return w
}

func newWeightedTable(boss model.Boss) weightedTable {
	t := weightedTable{weights: make([]float64, len(lootTable))}
	for i, tmpl := range lootTable {
		t.weights[i] = EffectiveWeight(tmpl, boss)
		t.total += t.weights[i]
	}
	return t
}

// tableFor returns the cached table for catalog bosses and a fresh one
// for anything else.
func tableFor(boss model.Boss) weightedTable {
	if t, ok := lootTables[boss.ID]; ok {
		if catalog, _ := GetBoss(boss.ID); catalog.Ability == boss.Ability {
			return t
		}
	}
	return newWeightedTable(boss)
}

// RollLoot draws a loot item for defeating boss.
//
// A roll is drawn uniformly in [0, total weight) and the effective weights
// are subtracted in table order; the first template that brings the roll
// to zero or below wins. The last template is the fallback if rounding
// exhausts the table.
func RollLoot(src rng.Source, boss model.Boss) model.LootItem {
	t := tableFor(boss)

	roll := src.Float64() * t.total
	picked := len(lootTable) - 1
	for i, w := range t.weights {
		roll -= w
		if roll <= 0 {
			picked = i
			break
		}
	}
	return newLootItem(lootTable[picked])
}

func newLootItem(tmpl LootTemplate) model.LootItem {
	return model.LootItem{
		ID:          string(tmpl.Rarity) + "-" + uuid.NewString(),
		Name:        tmpl.Name,
		Rarity:      tmpl.Rarity,
		Description: tmpl.Description,
		Effects:     tmpl.Effects,
	}
}
