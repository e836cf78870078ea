package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/udisondev/mathduel/internal/config"
	"github.com/udisondev/mathduel/internal/data"
	"github.com/udisondev/mathduel/internal/game/battle"
	"github.com/udisondev/mathduel/internal/game/combat"
	"github.com/udisondev/mathduel/internal/game/progression"
	"github.com/udisondev/mathduel/internal/game/question"
	"github.com/udisondev/mathduel/internal/model"
)

// errQuit stops the errgroup when the player leaves.
var errQuit = errors.New("quit")

const abilityPrefix = "!"

// terminal drives a Game from line input and a one second ticker.
// All Game access happens on the Run goroutine.
type terminal struct {
	out         io.Writer
	game        *battle.Game
	defaultBoss string

	// restartClock restarts the one second countdown; nil when no clock runs.
	restartClock func()
}

func newTerminal(out io.Writer, game *battle.Game, defaultBoss string) *terminal {
	return &terminal{out: out, game: game, defaultBoss: defaultBoss}
}

// Run processes lines and clock ticks until ctx is done, lines is closed
// or the player quits (errQuit).
func (t *terminal) Run(ctx context.Context, lines <-chan string) error {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	t.restartClock = func() { ticker.Reset(time.Second) }

	return t.loop(ctx, lines, ticker.C)
}

func (t *terminal) loop(ctx context.Context, lines <-chan string, ticks <-chan time.Time) error {
	t.printf("MathDuel. Type 'help' for commands.\n")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return errQuit
			}
			if err := t.handle(line); err != nil {
				return err
			}
		case <-ticks:
			t.tick()
		}
	}
}

func (t *terminal) handle(line string) error {
	line = strings.TrimSpace(line)
	if t.game.Phase() == battle.PhaseBattle {
		t.handleBattle(line)
		return nil
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	switch cmd, args := strings.ToLower(fields[0]), fields[1:]; cmd {
	case "fight":
		bossID := t.defaultBoss
		if len(args) > 0 {
			bossID = args[0]
		}
		t.fight(bossID)
	case "buy":
		if len(args) == 0 {
			t.printf("usage: buy <%s>\n", joinKeys())
			return nil
		}
		t.buy(model.UpgradeKey(strings.ToLower(args[0])))
	case "set":
		t.set(args)
	case "shop":
		t.shop()
	case "loot":
		t.loot()
	case "inv":
		t.inventory()
	case "bosses":
		t.bosses()
	case "help":
		t.help()
	case "quit", "exit":
		t.printf("Farewell. Gold: %d\n", t.game.Profile().Gold())
		return errQuit
	default:
		t.printf("unknown command %q, type 'help'\n", cmd)
	}
	return nil
}

func (t *terminal) handleBattle(line string) {
	b := t.game.Battle()

	if name, ok := strings.CutPrefix(line, abilityPrefix); ok {
		if err := b.Activate(battle.Ability(strings.ToLower(name))); err != nil {
			t.printf("  %v\n", err)
			return
		}
		t.resetClock()
		t.printf("  %s active. %s\n", name, t.status(b))
		return
	}

	entry, err := b.Submit(b.Round(), line)
	if err != nil {
		slog.Debug("answer rejected", "err", err)
		return
	}
	t.afterRound(b, entry)
}

func (t *terminal) tick() {
	if t.game.Phase() != battle.PhaseBattle {
		return
	}
	b := t.game.Battle()
	entry, resolved, err := b.Tick(b.Round())
	if err != nil {
		slog.Debug("tick rejected", "err", err)
		return
	}
	if resolved {
		t.afterRound(b, entry)
	}
}

func (t *terminal) fight(bossID string) {
	b, err := t.game.Start(bossID)
	if err != nil {
		t.printf("cannot start: %v\n", err)
		return
	}
	boss := b.Boss()
	t.printf("\n%s, %s (%s)\n%s\n", boss.Name, boss.Title, boss.Ability, boss.Description)
	t.printf("%d seconds per round. Abilities: !focus !guard !arcane\n", b.RoundSeconds())
	t.askQuestion(b)
}

func (t *terminal) afterRound(b *battle.Battle, e battle.LogEntry) {
	t.printf("  %s\n", formatEntry(e))
	if b.Phase() != battle.PhaseBattle {
		if s, ok := b.Summary(); ok {
			t.printSummary(s)
		}
		return
	}
	t.askQuestion(b)
}

// askQuestion shows the current question. The countdown restarts with it
// so the first tick of a round comes a full second after the prompt.
func (t *terminal) askQuestion(b *battle.Battle) {
	t.resetClock()
	t.printf("[%d/%d] %s  %s\n  %s = ?\n",
		b.Round(), b.Settings().Rounds, t.status(b), timerLabel(b), b.Question().Text)
}

func (t *terminal) status(b *battle.Battle) string {
	c := b.Charges()
	return fmt.Sprintf("HP %d/%d | %s %d/%d | streak %d | charges F%d G%d A%d",
		b.PlayerHP(), b.PlayerMaxHP(), b.Boss().Name, b.EnemyHP(), b.Boss().MaxHP,
		b.Streak(), c.Focus, c.Guard, c.Arcane)
}

func timerLabel(b *battle.Battle) string {
	if b.Enraged() {
		return fmt.Sprintf("%ds ENRAGED", b.TimeLeft())
	}
	return fmt.Sprintf("%ds", b.TimeLeft())
}

func (t *terminal) printSummary(s battle.Summary) {
	if s.Won {
		t.printf("\nVICTORY! ")
	} else {
		t.printf("\nDEFEAT. ")
	}
	t.printf("score %d, best streak %d, accuracy %d%% (%d/%d)\n",
		s.Score, s.BestStreak, s.Accuracy, s.CorrectAnswers, s.Answered)
	if s.Won {
		t.printf("Reward: %d gold\n", s.RewardGold)
	}
	if s.Loot != nil {
		t.printf("Loot: %s\n", formatItem(*s.Loot))
	}
	t.printf("Gold: %d. Type 'fight' for another battle or 'shop'.\n", t.game.Profile().Gold())
}

func (t *terminal) resetClock() {
	if t.restartClock != nil {
		t.restartClock()
	}
}

// set applies "set rounds N", "set seconds N" or "set ops + - * /" on top
// of the current settings.
func (t *terminal) set(args []string) {
	if len(args) < 2 {
		s := t.game.Settings()
		t.printf("rounds %d, seconds %d, ops %s\n", s.Rounds, s.SecondsPerRound, joinOps(s.Operations))
		t.printf("usage: set rounds <%d-%d> | set seconds <%d-%d> | set ops <+ - * />\n",
			config.MinRounds, config.MaxRounds, config.MinSecondsPerRound, config.MaxSecondsPerRound)
		return
	}

	var change config.Settings
	switch field, values := strings.ToLower(args[0]), args[1:]; field {
	case "rounds", "seconds":
		n, err := strconv.Atoi(values[0])
		if err != nil {
			t.printf("%s must be a number, got %q\n", field, values[0])
			return
		}
		if field == "rounds" {
			change.Rounds = n
		} else {
			change.SecondsPerRound = n
		}
	case "ops":
		for _, v := range values {
			op, err := question.ParseOperation(v)
			if err != nil {
				t.printf("%v\n", err)
				return
			}
			change.Operations = append(change.Operations, op)
		}
	default:
		t.printf("unknown setting %q\n", field)
		return
	}

	settings, err := config.ParseSettings(t.game.Settings().Merge(change))
	if err != nil {
		t.printf("%v\n", err)
		return
	}
	if err := t.game.Configure(settings); err != nil {
		t.printf("cannot change settings: %v\n", err)
		return
	}
	t.printf("rounds %d, seconds %d, ops %s\n",
		settings.Rounds, settings.SecondsPerRound, joinOps(settings.Operations))
}

func (t *terminal) buy(key model.UpgradeKey) {
	cost, err := t.game.Purchase(key)
	switch {
	case errors.Is(err, progression.ErrInsufficientGold):
		t.printf("not enough gold: need %d, have %d\n",
			t.game.Profile().NextCost(key), t.game.Profile().Gold())
	case err != nil:
		t.printf("cannot buy %s: %v\n", key, err)
	default:
		level, _ := t.game.Profile().Upgrades().Level(key)
		t.printf("%s is now level %d for %d gold. Gold left: %d\n", key, level, cost, t.game.Profile().Gold())
	}
}

func (t *terminal) shop() {
	p := t.game.Profile()
	t.printf("Gold: %d\n", p.Gold())
	for _, u := range data.Upgrades() {
		level, _ := p.Upgrades().Level(u.Key)
		t.printf("  %-9s lv %d  %4d gold  %s\n", u.Key, level, p.NextCost(u.Key), u.Description)
	}
}

func (t *terminal) inventory() {
	p := t.game.Profile()
	items := p.Items()
	if len(items) == 0 {
		t.printf("Inventory is empty.\n")
	}
	for _, it := range items {
		t.printf("  %s\n", formatItem(it))
	}
	bon := p.Bonuses()
	t.printf("Bonuses: attack +%.0f%%, armor +%.0f%%, max HP +%d, charges +%d\n",
		bon.AttackBonus*100, bon.ArmorBonus*100, bon.MaxHPBonus, bon.AbilityChargesBonus)
}

func (t *terminal) loot() {
	for _, tmpl := range data.LootTemplates() {
		affinity := "-"
		if tmpl.Affinity != "" {
			affinity = string(tmpl.Affinity)
		}
		t.printf("  %-20s %-6s weight %3.0f  affinity %-9s %s\n",
			tmpl.Name, tmpl.Rarity, tmpl.Weight, affinity, tmpl.Description)
	}
}

func (t *terminal) bosses() {
	for _, b := range data.Bosses() {
		t.printf("  %-9s %s, %s: %s\n", b.ID, b.Name, b.Title, b.Description)
	}
}

func (t *terminal) help() {
	t.printf(`Commands:
  fight [boss]   start a battle (%s or a boss id, see 'bosses')
  buy <key>      buy an upgrade level (%s)
  set <k> <v>    change rounds, seconds or ops for the next battle
  shop           list upgrades and prices
  loot           list the loot table
  inv            show loot and bonuses
  bosses         list bosses
  quit           leave
In battle type the answer, or !focus, !guard, !arcane.
`, data.RandomBossID, joinKeys())
}

func (t *terminal) printf(format string, args ...any) {
	fmt.Fprintf(t.out, format, args...)
}

func formatEntry(e battle.LogEntry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "R%d %s = %d, you: %s -> %s", e.Round, e.Question, e.ExpectedAnswer, e.PlayerAnswer, e.Outcome)
	if e.Outcome == combat.OutcomeHit {
		fmt.Fprintf(&sb, ", dealt %d", e.DamageToEnemy)
	}
	if e.DamageToPlayer > 0 {
		fmt.Fprintf(&sb, ", took %d", e.DamageToPlayer)
	}
	if e.Note != "" {
		fmt.Fprintf(&sb, " (%s)", e.Note)
	}
	return sb.String()
}

func formatItem(it model.LootItem) string {
	return fmt.Sprintf("%s [%s] %s", it.Name, it.Rarity, it.Description)
}

func joinOps(ops []question.Operation) string {
	parts := make([]string, len(ops))
	for i, op := range ops {
		parts[i] = string(op)
	}
	return strings.Join(parts, " ")
}

func joinKeys() string {
	keys := make([]string, len(model.UpgradeKeys))
	for i, k := range model.UpgradeKeys {
		keys[i] = string(k)
	}
	return strings.Join(keys, "|")
}
