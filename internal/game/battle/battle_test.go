package battle

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/udisondev/mathduel/internal/config"
	"github.com/udisondev/mathduel/internal/data"
	"github.com/udisondev/mathduel/internal/game/battle/mocks"
	"github.com/udisondev/mathduel/internal/game/combat"
	"github.com/udisondev/mathduel/internal/game/progression"
	"github.com/udisondev/mathduel/internal/game/question"
	"github.com/udisondev/mathduel/internal/model"
	"github.com/udisondev/mathduel/internal/testutil"
)

// --- helpers ---

func testSettings(rounds int) config.Settings {
	return config.Settings{
		Rounds:          rounds,
		SecondsPerRound: 12,
		Operations:      []question.Operation{question.OpAdd},
	}
}

func dummyBoss(maxHP int) model.Boss {
	return model.Boss{ID: "dummy", Name: "Training Dummy", MaxHP: maxHP, DamageMultiplier: 1}
}

func catalogBoss(t *testing.T, id string) model.Boss {
	t.Helper()
	b, ok := data.GetBoss(id)
	require.True(t, ok, "boss %q", id)
	return b
}

func newBattle(t *testing.T, boss model.Boss, settings config.Settings, bonuses progression.PlayerBonuses, r Rewarder) *Battle {
	t.Helper()
	// A constant zero draw makes every question "d + d" and every loot roll
	// the first template.
	b, err := New(testutil.NewSequenceSource(), settings, boss, bonuses, r)
	require.NoError(t, err)
	return b
}

func hit(t *testing.T, b *Battle) LogEntry {
	t.Helper()
	e, err := b.Submit(b.Round(), strconv.Itoa(b.Question().Answer))
	require.NoError(t, err)
	require.Equal(t, combat.OutcomeHit, e.Outcome)
	return e
}

func miss(t *testing.T, b *Battle) LogEntry {
	t.Helper()
	e, err := b.Submit(b.Round(), "-1")
	require.NoError(t, err)
	require.Equal(t, combat.OutcomeMiss, e.Outcome)
	return e
}

// --- tests ---

func TestNew_InitialState(t *testing.T) {
	t.Parallel()

	bonuses := progression.PlayerBonuses{MaxHPBonus: 18, AbilityChargesBonus: 2}
	b := newBattle(t, catalogBoss(t, "wyrm"), testSettings(10), bonuses, nil)

	assert.Equal(t, PhaseBattle, b.Phase())
	assert.Equal(t, 1, b.Round())
	assert.Equal(t, 118, b.PlayerHP())
	assert.Equal(t, 118, b.PlayerMaxHP())
	assert.Equal(t, 102, b.EnemyHP())
	assert.Equal(t, Charges{Focus: 3, Guard: 3, Arcane: 3}, b.Charges())
	assert.Equal(t, 11, b.TimeLeft(), "wyrm removes one second")

	// round 1 with wyrm question bonus 2: difficulty 3
	assert.Equal(t, "3 + 3", b.Question().Text)
}

func TestNew_RejectsInvalidSettings(t *testing.T) {
	t.Parallel()

	_, err := New(testutil.NewSequenceSource(), config.Settings{Rounds: 1}, dummyBoss(10), progression.PlayerBonuses{}, nil)
	assert.ErrorIs(t, err, config.ErrInvalidRounds)
}

func TestNew_ChargesNeverBelowOne(t *testing.T) {
	t.Parallel()

	b := newBattle(t, dummyBoss(50), testSettings(5), progression.PlayerBonuses{AbilityChargesBonus: -4}, nil)
	assert.Equal(t, Charges{Focus: 1, Guard: 1, Arcane: 1}, b.Charges())
}

func TestRoundSeconds_HasFloor(t *testing.T) {
	t.Parallel()

	boss := dummyBoss(50)
	boss.TimePressure = 3
	settings := testSettings(5)
	settings.SecondsPerRound = 5

	b := newBattle(t, boss, settings, progression.PlayerBonuses{}, nil)
	assert.Equal(t, MinRoundSeconds, b.RoundSeconds())
	assert.Equal(t, MinRoundSeconds, b.TimeLeft())
}

func TestBattle_GolemThornsVictory(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	rewarder := mocks.NewMockRewarder(ctrl)
	rewarder.EXPECT().
		Award(95, gomock.Cond(func(x any) bool {
			item, ok := x.(model.LootItem)
			return ok && item.Name == "Bronze Abacus Ring"
		})).
		Times(1)

	b := newBattle(t, catalogBoss(t, "golem"), testSettings(10), progression.PlayerBonuses{}, rewarder)

	wantDamage := []int{12, 14, 15, 17, 19, 21, 22}
	for i, want := range wantDamage {
		e := hit(t, b)
		assert.Equal(t, i+1, e.Round)
		assert.Equal(t, want, e.DamageToEnemy, "round %d", i+1)
		assert.Equal(t, ThornsDamage, e.DamageToPlayer)
		assert.Equal(t, "Thorns reflect 4 damage.", e.Note)
	}

	assert.Equal(t, PhaseSummary, b.Phase())
	assert.Equal(t, 0, b.EnemyHP())
	assert.Equal(t, 72, b.PlayerHP())

	sum, ok := b.Summary()
	require.True(t, ok)
	assert.True(t, sum.Won)
	assert.Equal(t, 98, sum.Score)
	assert.Equal(t, 7, sum.BestStreak)
	assert.Equal(t, 7, sum.CorrectAnswers)
	assert.Equal(t, 100, sum.Accuracy)
	assert.Equal(t, 95, sum.RewardGold)
	require.NotNil(t, sum.Loot)
	assert.Equal(t, model.RarityCommon, sum.Loot.Rarity)

	log := b.Log()
	require.Len(t, log, 7)
	assert.Equal(t, 7, log[0].Round, "log is most recent first")
}

func TestBattle_LichDrain(t *testing.T) {
	t.Parallel()

	b := newBattle(t, catalogBoss(t, "lich"), testSettings(10), progression.PlayerBonuses{}, nil)

	e := miss(t, b)
	assert.Equal(t, 12, e.DamageToPlayer)
	assert.Equal(t, "Boss drains 6 HP.", e.Note)
	assert.Equal(t, 96, b.EnemyHP(), "healing is capped at max HP")
	assert.Equal(t, 88, b.PlayerHP())

	e = hit(t, b)
	assert.Equal(t, 13, e.DamageToEnemy)
	assert.Empty(t, e.Note)
	assert.Equal(t, 83, b.EnemyHP())

	miss(t, b)
	assert.Equal(t, 89, b.EnemyHP())
	assert.Equal(t, 76, b.PlayerHP())
	assert.Zero(t, b.Streak())
}

func TestBattle_EnrageBelowThreshold(t *testing.T) {
	t.Parallel()

	boss := dummyBoss(20)
	boss.Ability = model.AbilityEnrage
	b := newBattle(t, boss, testSettings(5), progression.PlayerBonuses{}, nil)

	assert.False(t, b.Enraged())
	hit(t, b)
	assert.Equal(t, 6, b.EnemyHP())
	assert.True(t, b.Enraged())

	e := miss(t, b)
	assert.Equal(t, 14, e.DamageToPlayer, "10 × 1.35 rounds to 14")
	assert.Equal(t, "Enrage active.", e.Note)

	e = hit(t, b)
	assert.Equal(t, 13, e.DamageToEnemy, "enrage adds 10% resistance")
	assert.Equal(t, PhaseSummary, b.Phase())

	sum, _ := b.Summary()
	assert.True(t, sum.Won)
}

func TestBattle_FinalRoundTieIsALoss(t *testing.T) {
	t.Parallel()

	// miss (player 90), hit 14, hit 16: enemy 120 → 90.
	b := newBattle(t, dummyBoss(120), testSettings(3), progression.PlayerBonuses{}, nil)
	miss(t, b)
	hit(t, b)
	hit(t, b)

	require.Equal(t, PhaseSummary, b.Phase())
	assert.Equal(t, 90, b.PlayerHP())
	assert.Equal(t, 90, b.EnemyHP())

	sum, _ := b.Summary()
	assert.False(t, sum.Won)
	assert.Zero(t, sum.RewardGold)
	assert.Nil(t, sum.Loot)
}

func TestBattle_FinalRoundStrictLeadWins(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	rewarder := mocks.NewMockRewarder(ctrl)
	// score -1 + 11 + 12 = 22: floor(22 × 0.45) + 2 correct = 11
	rewarder.EXPECT().Award(11, gomock.Any()).Times(1)

	b := newBattle(t, dummyBoss(119), testSettings(3), progression.PlayerBonuses{}, rewarder)
	miss(t, b)
	hit(t, b)
	hit(t, b)

	sum, ok := b.Summary()
	require.True(t, ok)
	assert.True(t, sum.Won)
	assert.Equal(t, 89, b.EnemyHP())
	assert.Equal(t, 11, sum.RewardGold)
	assert.Equal(t, 67, sum.Accuracy)
}

func TestBattle_PlayerDeathEndsEarly(t *testing.T) {
	t.Parallel()

	boss := dummyBoss(100)
	boss.DamageMultiplier = 20
	b := newBattle(t, boss, testSettings(10), progression.PlayerBonuses{}, nil)

	miss(t, b)
	assert.Equal(t, 0, b.PlayerHP())

	sum, ok := b.Summary()
	require.True(t, ok)
	assert.False(t, sum.Won)
	assert.Equal(t, 1, sum.Answered)

	_, err := b.Submit(1, "4")
	assert.ErrorIs(t, err, ErrBattleOver)
	assert.ErrorIs(t, b.Activate(AbilityGuard), ErrBattleOver)
}

func TestBattle_TickResolvesTimeoutExactlyOnce(t *testing.T) {
	t.Parallel()

	settings := testSettings(5)
	settings.SecondsPerRound = 5
	b := newBattle(t, dummyBoss(100), settings, progression.PlayerBonuses{}, nil)

	for want := 4; want >= 1; want-- {
		_, resolved, err := b.Tick(1)
		require.NoError(t, err)
		require.False(t, resolved)
		assert.Equal(t, want, b.TimeLeft())
	}

	e, resolved, err := b.Tick(1)
	require.NoError(t, err)
	require.True(t, resolved)
	assert.Equal(t, combat.OutcomeTimeout, e.Outcome)
	assert.Equal(t, TimedOutAnswerLabel, e.PlayerAnswer)
	assert.Equal(t, 16, e.DamageToPlayer)
	assert.Equal(t, -2, b.Score())

	// The round has moved on: late inputs for round 1 are dropped.
	_, _, err = b.Tick(1)
	assert.ErrorIs(t, err, ErrStaleRound)
	_, err = b.Submit(1, "4")
	assert.ErrorIs(t, err, ErrStaleRound)
	_, err = b.Expire(1)
	assert.ErrorIs(t, err, ErrStaleRound)

	assert.Equal(t, 2, b.Round())
	assert.Equal(t, 5, b.TimeLeft())
	assert.Len(t, b.Log(), 1)
}

func TestBattle_Expire(t *testing.T) {
	t.Parallel()

	b := newBattle(t, dummyBoss(100), testSettings(5), progression.PlayerBonuses{}, nil)
	e, err := b.Expire(1)
	require.NoError(t, err)
	assert.Equal(t, combat.OutcomeTimeout, e.Outcome)
	assert.Equal(t, 84, b.PlayerHP())
}

func TestBattle_Abilities(t *testing.T) {
	t.Parallel()

	b := newBattle(t, dummyBoss(200), testSettings(10), progression.PlayerBonuses{}, nil)

	require.NoError(t, b.Activate(AbilityFocus))
	assert.Equal(t, 12+FocusTimeBoost, b.TimeLeft())
	assert.ErrorIs(t, b.Activate(AbilityFocus), ErrNoCharges)

	require.NoError(t, b.Activate(AbilityGuard))
	assert.True(t, b.GuardActive())
	assert.Equal(t, 5, miss(t, b).DamageToPlayer)
	assert.False(t, b.GuardActive(), "guard lasts one round")
	assert.Equal(t, 10, miss(t, b).DamageToPlayer)

	require.NoError(t, b.Activate(AbilityArcane))
	miss(t, b)
	assert.True(t, b.ArcaneActive(), "arcane survives a miss")
	assert.Equal(t, 21, hit(t, b).DamageToEnemy)
	assert.False(t, b.ArcaneActive(), "arcane is spent by a hit")

	assert.ErrorIs(t, b.Activate("teleport"), ErrUnknownAbility)
	assert.Equal(t, Charges{}, b.Charges())
}

func TestBattle_AnswerParsing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		answer      string
		wantOutcome combat.Outcome
		wantLabel   string
	}{
		{"exact", "2", combat.OutcomeHit, "2"},
		{"padded", "  2 \n", combat.OutcomeHit, "2"},
		{"decimal form", "2.0", combat.OutcomeHit, "2.0"},
		{"wrong", "5", combat.OutcomeMiss, "5"},
		{"empty", "   ", combat.OutcomeMiss, EmptyAnswerLabel},
		{"garbage", "four", combat.OutcomeMiss, "four"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			// dummy boss has no question bonus: round 1 is "1 + 1"
			b := newBattle(t, dummyBoss(100), testSettings(5), progression.PlayerBonuses{}, nil)
			require.Equal(t, 2, b.Question().Answer)

			e, err := b.Submit(1, tt.answer)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOutcome, e.Outcome)
			assert.Equal(t, tt.wantLabel, e.PlayerAnswer)
			assert.Equal(t, "1 + 1", e.Question)
			assert.Equal(t, 2, e.ExpectedAnswer)
		})
	}
}

func TestBattle_BonusesFeedResolver(t *testing.T) {
	t.Parallel()

	bonuses := progression.PlayerBonuses{AttackBonus: 0.5, ArmorBonus: 0.5}
	b := newBattle(t, dummyBoss(100), testSettings(5), bonuses, nil)

	assert.Equal(t, 21, hit(t, b).DamageToEnemy)
	assert.Equal(t, 5, miss(t, b).DamageToPlayer)
}
