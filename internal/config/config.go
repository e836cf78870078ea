package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/mathduel/internal/game/question"
)

// Settings bounds.
const (
	MinRounds          = 3
	MaxRounds          = 20
	MinSecondsPerRound = 5
	MaxSecondsPerRound = 45
)

var (
	ErrInvalidRounds    = errors.New("rounds out of range")
	ErrInvalidSeconds   = errors.New("seconds per round out of range")
	ErrNoOperations     = errors.New("at least one operation is required")
	ErrUnknownOperation = errors.New("unknown operation")
)

// Settings configures one battle.
type Settings struct {
	Rounds          int                  `yaml:"rounds"`
	SecondsPerRound int                  `yaml:"seconds_per_round"`
	Operations      []question.Operation `yaml:"operations"`
}

// DefaultSettings returns 10 rounds of 12 seconds with every operation enabled.
func DefaultSettings() Settings {
	return Settings{
		Rounds:          10,
		SecondsPerRound: 12,
		Operations:      slices.Clone(question.AllOperations),
	}
}

// Validate checks the settings bounds.
func (s Settings) Validate() error {
	if s.Rounds < MinRounds || s.Rounds > MaxRounds {
		return fmt.Errorf("rounds %d not in [%d, %d]: %w", s.Rounds, MinRounds, MaxRounds, ErrInvalidRounds)
	}
	if s.SecondsPerRound < MinSecondsPerRound || s.SecondsPerRound > MaxSecondsPerRound {
		return fmt.Errorf("seconds per round %d not in [%d, %d]: %w",
			s.SecondsPerRound, MinSecondsPerRound, MaxSecondsPerRound, ErrInvalidSeconds)
	}
	if len(s.Operations) == 0 {
		return ErrNoOperations
	}
	for _, op := range s.Operations {
		if !op.Valid() {
			return fmt.Errorf("operation %q: %w", op, ErrUnknownOperation)
		}
	}
	return nil
}

// Merge returns s with every non-zero field of override applied.
func (s Settings) Merge(override Settings) Settings {
	out := s
	if override.Rounds != 0 {
		out.Rounds = override.Rounds
	}
	if override.SecondsPerRound != 0 {
		out.SecondsPerRound = override.SecondsPerRound
	}
	if override.Operations != nil {
		out.Operations = slices.Clone(override.Operations)
	}
	return out
}

// ParseSettings merges override over the defaults and validates the result.
func ParseSettings(override Settings) (Settings, error) {
	s := DefaultSettings().Merge(override)
	if err := s.Validate(); err != nil {
		return DefaultSettings(), fmt.Errorf("invalid settings: %w", err)
	}
	return s, nil
}

// Game holds all configuration for the mathduel binary.
type Game struct {
	LogLevel string   `yaml:"log_level"`
	Seed     uint64   `yaml:"seed"` // 0: seed from the clock
	Boss     string   `yaml:"boss"` // boss id or "random"
	Settings Settings `yaml:"settings"`
}

// DefaultGame returns Game config with sensible defaults.
func DefaultGame() Game {
	return Game{
		LogLevel: "info",
		Boss:     "random",
		Settings: DefaultSettings(),
	}
}

// LoadGame loads the config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadGame(path string) (Game, error) {
	cfg := DefaultGame()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	settings, err := ParseSettings(cfg.Settings)
	if err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.Settings = settings

	return cfg, nil
}
