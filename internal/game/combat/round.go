// Package combat resolves a single battle round: given whether the answer
// was correct or timed out, the current streak and the round modifiers, it
// computes damage on both sides, the score change and the next streak.
//
// Everything here is pure. The battle orchestrator folds the returned
// BattleResolution into HP, score and streak.
package combat

// Outcome is the result category of a round.
type Outcome string

const (
	OutcomeHit     Outcome = "hit"
	OutcomeMiss    Outcome = "miss"
	OutcomeTimeout Outcome = "timeout"
)

// Score deltas.
const (
	HitScoreBase   = 10
	MissPenalty    = -1
	TimeoutPenalty = -2
)

// RoundModifiers bundles everything besides correctness that affects a
// round. Build it with NewRoundModifiers so unset fields stay neutral.
type RoundModifiers struct {
	AttackBonus          float64
	ArmorBonus           float64
	BossDamageMultiplier float64
	BossResistance       float64
	GuardActive          bool
	ArcaneStrikeActive   bool
}

// DefaultRoundModifiers returns neutral modifiers.
func DefaultRoundModifiers() RoundModifiers {
	return RoundModifiers{BossDamageMultiplier: 1}
}

// ModifierOption overrides one field of the default modifiers.
type ModifierOption func(*RoundModifiers)

// NewRoundModifiers merges opts over DefaultRoundModifiers.
func NewRoundModifiers(opts ...ModifierOption) RoundModifiers {
	m := DefaultRoundModifiers()
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func WithAttackBonus(v float64) ModifierOption {
	return func(m *RoundModifiers) { m.AttackBonus = v }
}

func WithArmorBonus(v float64) ModifierOption {
	return func(m *RoundModifiers) { m.ArmorBonus = v }
}

func WithBossDamageMultiplier(v float64) ModifierOption {
	return func(m *RoundModifiers) { m.BossDamageMultiplier = v }
}

func WithBossResistance(v float64) ModifierOption {
	return func(m *RoundModifiers) { m.BossResistance = v }
}

func WithGuard(active bool) ModifierOption {
	return func(m *RoundModifiers) { m.GuardActive = active }
}

func WithArcaneStrike(active bool) ModifierOption {
	return func(m *RoundModifiers) { m.ArcaneStrikeActive = active }
}

// BattleResolution is the outcome of one round.
type BattleResolution struct {
	Outcome        Outcome
	DamageToEnemy  int
	DamageToPlayer int
	ScoreDelta     int
	NextStreak     int
}

// ResolveRound computes the result of a round. A timeout wins over
// isCorrect. Boss resistance is clamped to [0, MaxResistance] whatever the
// caller passes.
func ResolveRound(isCorrect bool, streak int, timedOut bool, m RoundModifiers) BattleResolution {
	switch {
	case timedOut:
		return BattleResolution{
			Outcome:        OutcomeTimeout,
			DamageToPlayer: CalcIncomingDamage(TimeoutBaseDamage, m),
			ScoreDelta:     TimeoutPenalty,
		}

	case isCorrect:
		next := streak + 1
		return BattleResolution{
			Outcome:       OutcomeHit,
			DamageToEnemy: CalcHitDamage(next, m),
			ScoreDelta:    HitScoreBase + next,
			NextStreak:    next,
		}

	default:
		return BattleResolution{
			Outcome:        OutcomeMiss,
			DamageToPlayer: CalcIncomingDamage(MissBaseDamage, m),
			ScoreDelta:     MissPenalty,
		}
	}
}
