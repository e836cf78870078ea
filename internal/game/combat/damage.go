package combat

import "math"

// Damage constants.
const (
	HitBaseDamage     = 12
	StreakDamageStep  = 2
	StreakDamageCap   = 18 // streak bonus stops growing at streak 9
	MissBaseDamage    = 10
	TimeoutBaseDamage = 16

	ArcaneStrikeMultiplier = 1.5
	GuardMultiplier        = 0.5

	// MinArmorFactor keeps at least 25% of incoming damage regardless of armor.
	MinArmorFactor = 0.25
	// MaxResistance caps boss resistance.
	MaxResistance = 0.7
)

// ClampResistance bounds a boss resistance to [0, MaxResistance].
func ClampResistance(r float64) float64 {
	return min(MaxResistance, max(0, r))
}

// ArmorFactor returns the multiplier applied to damage taken by the player.
// Never below MinArmorFactor.
func ArmorFactor(armorBonus float64) float64 {
	return max(MinArmorFactor, 1-armorBonus)
}

// StreakDamage returns the base damage of a hit landing at the given
// (already incremented) streak.
func StreakDamage(streak int) int {
	return HitBaseDamage + min(StreakDamageCap, streak*StreakDamageStep)
}

// CalcHitDamage computes damage dealt to the boss by a correct answer.
// Minimum 1.
func CalcHitDamage(streak int, m RoundModifiers) int {
	dmg := float64(StreakDamage(streak)) * (1 + m.AttackBonus)
	if m.ArcaneStrikeActive {
		dmg *= ArcaneStrikeMultiplier
	}
	dmg *= 1 - ClampResistance(m.BossResistance)
	return max(1, int(math.Round(dmg)))
}

// CalcIncomingDamage computes damage dealt to the player from a nominal
// base (miss or timeout). Minimum 1.
func CalcIncomingDamage(base float64, m RoundModifiers) int {
	dmg := base * m.BossDamageMultiplier
	if m.GuardActive {
		dmg *= GuardMultiplier
	}
	dmg *= ArmorFactor(m.ArmorBonus)
	return max(1, int(math.Round(dmg)))
}
