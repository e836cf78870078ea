package model

// BossAbility is the special trait a boss applies during battle.
type BossAbility string

const (
	// AbilityThorns reflects damage back to the player on every hit.
	AbilityThorns BossAbility = "thorns"
	// AbilityDrain heals the boss whenever the player misses or times out.
	AbilityDrain BossAbility = "drain"
	// AbilityEnrage raises damage and resistance once the boss is low on HP.
	AbilityEnrage BossAbility = "enrage"
	// AbilityTimeWarp shortens the round timer (see Boss.TimePressure).
	AbilityTimeWarp BossAbility = "time-warp"
)

// Boss is a catalog-defined opponent. Immutable for the duration of a battle;
// the boss's current HP is tracked by the battle, not here.
type Boss struct {
	ID          string
	Name        string
	Title       string
	Description string
	Ability     BossAbility

	MaxHP            int
	DamageMultiplier float64
	Resistance       float64 // fraction of player damage absorbed
	RewardGold       int
	TimePressure     int // seconds removed from the round timer
	QuestionBonus    int // added to question difficulty
}
