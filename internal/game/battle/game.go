package battle

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/mathduel/internal/config"
	"github.com/udisondev/mathduel/internal/data"
	"github.com/udisondev/mathduel/internal/game/progression"
	"github.com/udisondev/mathduel/internal/model"
	"github.com/udisondev/mathduel/internal/rng"
)

// ErrBattleInProgress is returned for actions only allowed between battles.
var ErrBattleInProgress = errors.New("battle in progress")

// Game is a play session: the player's profile plus the current battle.
// Phases run setup → battle → summary, and back to battle on the next Start.
type Game struct {
	src      rng.Source
	settings config.Settings
	profile  *progression.Profile
	current  *Battle
}

// NewGame creates a session in the setup phase.
func NewGame(src rng.Source, settings config.Settings, profile *progression.Profile) (*Game, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}
	if profile == nil {
		profile = progression.NewProfile()
	}
	return &Game{src: src, settings: settings, profile: profile}, nil
}

// Phase returns the session phase.
func (g *Game) Phase() Phase {
	if g.current == nil {
		return PhaseSetup
	}
	return g.current.Phase()
}

// Profile returns the player's profile.
func (g *Game) Profile() *progression.Profile {
	return g.profile
}

// Battle returns the current or most recent battle, nil in setup.
func (g *Game) Battle() *Battle {
	return g.current
}

// Settings returns the settings used for new battles.
func (g *Game) Settings() config.Settings {
	return g.settings
}

// Configure replaces the settings for the next battle.
func (g *Game) Configure(settings config.Settings) error {
	if g.Phase() == PhaseBattle {
		return ErrBattleInProgress
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("configure: %w", err)
	}
	g.settings = settings
	return nil
}

// Start begins a battle against bossID (or data.RandomBossID) with the
// profile's current bonuses.
func (g *Game) Start(bossID string) (*Battle, error) {
	if g.Phase() == PhaseBattle {
		return nil, ErrBattleInProgress
	}

	boss := data.PickBoss(g.src, bossID)
	b, err := New(g.src, g.settings, boss, g.profile.Bonuses(), g.profile)
	if err != nil {
		return nil, fmt.Errorf("start battle vs %s: %w", boss.ID, err)
	}
	g.current = b

	slog.Info("battle started", "boss", boss.Name, "requested", bossID, "rounds", g.settings.Rounds)
	return b, nil
}

// Purchase buys an upgrade level between battles.
func (g *Game) Purchase(key model.UpgradeKey) (int, error) {
	if g.Phase() == PhaseBattle {
		return 0, ErrBattleInProgress
	}
	return g.profile.Purchase(key)
}
