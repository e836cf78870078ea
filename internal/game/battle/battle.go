// Package battle sequences the rounds of a boss fight.
//
// A Battle owns the mutable fight state (HP, round, streak, score, ability
// charges, countdown) and folds each combat.BattleResolution into it. It
// applies the boss special abilities, decides when the fight ends and who
// won, and pays out gold and loot on victory.
//
// Battle is driven by a single goroutine. Every resolving call carries the
// round number it was issued for, so a late timer tick and an answer racing
// for the same round resolve it at most once.
package battle

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/udisondev/mathduel/internal/config"
	"github.com/udisondev/mathduel/internal/data"
	"github.com/udisondev/mathduel/internal/game/combat"
	"github.com/udisondev/mathduel/internal/game/progression"
	"github.com/udisondev/mathduel/internal/game/question"
	"github.com/udisondev/mathduel/internal/model"
	"github.com/udisondev/mathduel/internal/rng"
)

//go:generate go tool mockgen -destination=mocks/mock_rewarder.go -package=mocks . Rewarder

// Battle tuning.
const (
	BaseMaxHP          = 100
	BaseAbilityCharges = 1
	FocusTimeBoost     = 4 // seconds added by the focus ability
	MinRoundSeconds    = 4
)

// Boss special abilities.
const (
	EnrageThreshold       = 0.4 // fraction of boss max HP
	EnrageDamageBonus     = 0.35
	EnrageResistanceBonus = 0.1
	ThornsDamage          = 4
	DrainHeal             = 6
)

// Rewards and log labels.
const (
	RewardScoreFactor    = 0.45
	MinPerformanceReward = 10

	TimedOutAnswerLabel = "TIME"
	EmptyAnswerLabel    = "-"
)

// Phase is the stage of a game session.
type Phase string

const (
	PhaseSetup   Phase = "setup"
	PhaseBattle  Phase = "battle"
	PhaseSummary Phase = "summary"
)

// Ability is a consumable player ability.
type Ability string

const (
	// AbilityFocus adds FocusTimeBoost seconds to the current countdown.
	AbilityFocus Ability = "focus"
	// AbilityGuard halves the damage taken in the next resolution.
	AbilityGuard Ability = "guard"
	// AbilityArcane multiplies the next hit by combat.ArcaneStrikeMultiplier.
	AbilityArcane Ability = "arcane"
)

var (
	ErrBattleOver     = errors.New("battle is over")
	ErrStaleRound     = errors.New("stale round")
	ErrNoCharges      = errors.New("no charges left")
	ErrUnknownAbility = errors.New("unknown ability")
)

// Rewarder receives victory rewards. Implemented by progression.Profile.
type Rewarder interface {
	Award(gold int, item model.LootItem)
}

// Charges is the remaining uses of every ability.
type Charges struct {
	Focus  int
	Guard  int
	Arcane int
}

func (c *Charges) slot(a Ability) (*int, bool) {
	switch a {
	case AbilityFocus:
		return &c.Focus, true
	case AbilityGuard:
		return &c.Guard, true
	case AbilityArcane:
		return &c.Arcane, true
	}
	return nil, false
}

// LogEntry records one resolved round.
type LogEntry struct {
	Round          int
	Question       string
	PlayerAnswer   string
	ExpectedAnswer int
	Outcome        combat.Outcome
	DamageToEnemy  int
	DamageToPlayer int // includes thorns
	Note           string
}

// Summary describes a finished battle.
type Summary struct {
	Won            bool
	Score          int
	BestStreak     int
	CorrectAnswers int
	Answered       int
	Accuracy       int // percent
	RewardGold     int
	Loot           *model.LootItem
}

// Battle is one fight against one boss.
type Battle struct {
	src      rng.Source
	settings config.Settings
	boss     model.Boss
	bonuses  progression.PlayerBonuses
	rewarder Rewarder

	phase       Phase
	round       int
	playerHP    int
	playerMaxHP int
	enemyHP     int
	score       int
	streak      int
	bestStreak  int
	correct     int
	question    question.Question
	timeLeft    int
	charges     Charges
	guard       bool
	arcane      bool
	log         []LogEntry
	summary     Summary
}

// New starts a battle against boss. rewarder may be nil.
func New(src rng.Source, settings config.Settings, boss model.Boss, bonuses progression.PlayerBonuses, rewarder Rewarder) (*Battle, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("new battle: %w", err)
	}

	maxHP := BaseMaxHP + bonuses.MaxHPBonus
	charges := max(1, BaseAbilityCharges+bonuses.AbilityChargesBonus)

	b := &Battle{
		src:         src,
		settings:    settings,
		boss:        boss,
		bonuses:     bonuses,
		rewarder:    rewarder,
		phase:       PhaseBattle,
		round:       1,
		playerHP:    maxHP,
		playerMaxHP: maxHP,
		enemyHP:     boss.MaxHP,
		charges:     Charges{Focus: charges, Guard: charges, Arcane: charges},
	}
	b.timeLeft = b.RoundSeconds()
	b.question = question.Generate(src, settings.Operations, b.round, boss.QuestionBonus)

	slog.Debug("battle started",
		"boss", boss.ID,
		"player_hp", maxHP,
		"enemy_hp", boss.MaxHP,
		"rounds", settings.Rounds,
		"round_seconds", b.timeLeft)

	return b, nil
}

func (b *Battle) Phase() Phase { return b.phase }
func (b *Battle) Round() int { return b.round }
func (b *Battle) Boss() model.Boss { return b.boss }
func (b *Battle) Question() question.Question { return b.question }
func (b *Battle) TimeLeft() int { return b.timeLeft }
func (b *Battle) PlayerHP() int { return b.playerHP }
func (b *Battle) PlayerMaxHP() int { return b.playerMaxHP }
func (b *Battle) EnemyHP() int { return b.enemyHP }
func (b *Battle) Score() int { return b.score }
func (b *Battle) Streak() int { return b.streak }
func (b *Battle) Charges() Charges { return b.charges }
func (b *Battle) GuardActive() bool { return b.guard }
func (b *Battle) ArcaneActive() bool { return b.arcane }
func (b *Battle) Settings() config.Settings { return b.settings }
func (b *Battle) Bonuses() progression.PlayerBonuses { return b.bonuses }

// Log returns the resolved rounds, most recent first.
func (b *Battle) Log() []LogEntry {
	out := make([]LogEntry, len(b.log))
	copy(out, b.log)
	return out
}

// Summary returns the result once the battle is over.
func (b *Battle) Summary() (Summary, bool) {
	return b.summary, b.phase == PhaseSummary
}

// RoundSeconds is the countdown every round starts with.
func (b *Battle) RoundSeconds() int {
	return max(MinRoundSeconds, b.settings.SecondsPerRound-b.boss.TimePressure)
}

// Enraged reports whether the boss enrage ability is currently active.
func (b *Battle) Enraged() bool {
	return b.boss.Ability == model.AbilityEnrage &&
		float64(b.enemyHP) <= float64(b.boss.MaxHP)*EnrageThreshold
}

// Activate spends one charge of ability.
func (b *Battle) Activate(ability Ability) error {
	if b.phase != PhaseBattle {
		return ErrBattleOver
	}
	slot, ok := b.charges.slot(ability)
	if !ok {
		return fmt.Errorf("activate %q: %w", ability, ErrUnknownAbility)
	}
	if *slot <= 0 {
		return fmt.Errorf("activate %s: %w", ability, ErrNoCharges)
	}
	*slot--

	switch ability {
	case AbilityFocus:
		b.timeLeft += FocusTimeBoost
	case AbilityGuard:
		b.guard = true
	case AbilityArcane:
		b.arcane = true
	}

	slog.Debug("ability activated", "ability", ability, "round", b.round, "left", *slot)
	return nil
}

// Submit resolves round with the player's answer.
func (b *Battle) Submit(round int, answer string) (LogEntry, error) {
	if err := b.check(round); err != nil {
		return LogEntry{}, err
	}
	return b.resolve(answer, false), nil
}

// Expire resolves round as a timeout.
func (b *Battle) Expire(round int) (LogEntry, error) {
	if err := b.check(round); err != nil {
		return LogEntry{}, err
	}
	return b.resolve("", true), nil
}

// Tick advances the countdown of round by one second. When the countdown
// runs out the round resolves as a timeout and the entry is returned with
// resolved set.
func (b *Battle) Tick(round int) (entry LogEntry, resolved bool, err error) {
	if err := b.check(round); err != nil {
		return LogEntry{}, false, err
	}
	if b.timeLeft > 1 {
		b.timeLeft--
		return LogEntry{}, false, nil
	}
	b.timeLeft = 0
	return b.resolve("", true), true, nil
}

func (b *Battle) check(round int) error {
	if b.phase != PhaseBattle {
		return ErrBattleOver
	}
	if round != b.round {
		slog.Debug("stale round input dropped", "got", round, "current", b.round)
		return fmt.Errorf("round %d, current %d: %w", round, b.round, ErrStaleRound)
	}
	return nil
}

func isCorrectAnswer(answer string, want int) bool {
	if answer == "" {
		return false
	}
	v, err := strconv.ParseFloat(answer, 64)
	return err == nil && v == float64(want)
}

func (b *Battle) resolve(answer string, timedOut bool) LogEntry {
	answer = strings.TrimSpace(answer)
	isCorrect := !timedOut && isCorrectAnswer(answer, b.question.Answer)

	enraged := b.Enraged()
	mods := combat.NewRoundModifiers(
		combat.WithAttackBonus(b.bonuses.AttackBonus),
		combat.WithArmorBonus(b.bonuses.ArmorBonus),
		combat.WithBossDamageMultiplier(b.boss.DamageMultiplier),
		combat.WithBossResistance(b.boss.Resistance),
		combat.WithGuard(b.guard),
		combat.WithArcaneStrike(b.arcane),
	)
	if enraged {
		mods.BossDamageMultiplier += EnrageDamageBonus
		mods.BossResistance += EnrageResistanceBonus
	}

	res := combat.ResolveRound(isCorrect, b.streak, timedOut, mods)

	var (
		thorns  int
		healing int
		notes   []string
	)
	if b.boss.Ability == model.AbilityThorns && res.Outcome == combat.OutcomeHit {
		thorns = ThornsDamage
		notes = append(notes, fmt.Sprintf("Thorns reflect %d damage.", ThornsDamage))
	}
	if b.boss.Ability == model.AbilityDrain && res.Outcome != combat.OutcomeHit {
		healing = DrainHeal
		notes = append(notes, fmt.Sprintf("Boss drains %d HP.", DrainHeal))
	}
	if enraged {
		notes = append(notes, "Enrage active.")
	}

	b.playerHP = max(0, b.playerHP-res.DamageToPlayer-thorns)
	b.enemyHP = max(0, min(b.boss.MaxHP, b.enemyHP-res.DamageToEnemy+healing))
	b.score += res.ScoreDelta
	b.streak = res.NextStreak
	b.bestStreak = max(b.bestStreak, res.NextStreak)
	if isCorrect {
		b.correct++
	}

	played := answer
	switch {
	case timedOut:
		played = TimedOutAnswerLabel
	case played == "":
		played = EmptyAnswerLabel
	}

	entry := LogEntry{
		Round:          b.round,
		Question:       b.question.Text,
		PlayerAnswer:   played,
		ExpectedAnswer: b.question.Answer,
		Outcome:        res.Outcome,
		DamageToEnemy:  res.DamageToEnemy,
		DamageToPlayer: res.DamageToPlayer + thorns,
		Note:           strings.Join(notes, " "),
	}
	b.log = append([]LogEntry{entry}, b.log...)

	b.guard = false
	if b.arcane && res.Outcome == combat.OutcomeHit {
		b.arcane = false
	}

	slog.Debug("round resolved",
		"round", b.round,
		"outcome", res.Outcome,
		"damage_to_enemy", entry.DamageToEnemy,
		"damage_to_player", entry.DamageToPlayer,
		"player_hp", b.playerHP,
		"enemy_hp", b.enemyHP)

	finalRound := b.round >= b.settings.Rounds
	if b.playerHP <= 0 || b.enemyHP <= 0 || finalRound {
		// A strict HP lead is required on the final round; a tie is a loss.
		won := b.enemyHP <= 0 || (finalRound && b.enemyHP < b.playerHP)
		b.finish(won)
		return entry
	}

	b.round++
	b.timeLeft = b.RoundSeconds()
	b.question = question.Generate(b.src, b.settings.Operations, b.round, b.boss.QuestionBonus)
	return entry
}

func (b *Battle) finish(won bool) {
	b.phase = PhaseSummary
	b.summary = Summary{
		Won:            won,
		Score:          b.score,
		BestStreak:     b.bestStreak,
		CorrectAnswers: b.correct,
		Answered:       len(b.log),
		Accuracy:       accuracy(b.correct, len(b.log)),
	}

	if won {
		loot := data.RollLoot(b.src, b.boss)
		performance := int(math.Floor(float64(b.score)*RewardScoreFactor)) + b.correct
		gold := b.boss.RewardGold + max(MinPerformanceReward, performance) + loot.Effects.GoldBonus

		b.summary.RewardGold = gold
		b.summary.Loot = &loot
		if b.rewarder != nil {
			b.rewarder.Award(gold, loot)
		}
	}

	slog.Info("battle finished",
		"boss", b.boss.ID,
		"won", won,
		"score", b.score,
		"rounds", len(b.log),
		"reward_gold", b.summary.RewardGold)
}

func accuracy(correct, answered int) int {
	if answered == 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(answered) * 100))
}
