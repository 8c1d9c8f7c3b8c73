package experiments

import (
	"errors"
	"fmt"
	"os"

	"connectfour/experiments/metrics"

	"gopkg.in/yaml.v3"
)

var ErrInvalidSetup = errors.New("invalid setup")

// Setup describes a tournament. Without explicit match ups every bot plays
// every other bot.
type Setup struct {
	Name     string              `yaml:"name"`
	Games    int                 `yaml:"games"` // Per match up
	Workers  int                 `yaml:"workers"`
	Seed     uint64              `yaml:"seed"`
	Bots     []metrics.BotConfig `yaml:"bots"`
	MatchUps [][2]int            `yaml:"matchups"` // Pairs of BotConfig.ID
}

func LoadSetup(path string) (Setup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Setup{}, fmt.Errorf("failed to read setup: %w", err)
	}
	return ParseSetup(data)
}

func ParseSetup(data []byte) (Setup, error) {
	var setup Setup
	if err := yaml.Unmarshal(data, &setup); err != nil {
		return Setup{}, fmt.Errorf("failed to parse setup: %w", err)
	}
	return setup, nil
}

func (s Setup) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidSetup)
	}
	if s.Games <= 0 {
		return fmt.Errorf("%w: games must be positive, got %d", ErrInvalidSetup, s.Games)
	}
	if len(s.Bots) < 2 {
		return fmt.Errorf("%w: need at least two bots, got %d", ErrInvalidSetup, len(s.Bots))
	}

	ids := make(map[int]bool, len(s.Bots))
	for _, bot := range s.Bots {
		if ids[bot.ID] {
			return fmt.Errorf("%w: duplicate bot id %d", ErrInvalidSetup, bot.ID)
		}
		ids[bot.ID] = true
	}
	for _, m := range s.MatchUps {
		if !ids[m[0]] || !ids[m[1]] {
			return fmt.Errorf("%w: match up %v names an unknown bot", ErrInvalidSetup, m)
		}
		if m[0] == m[1] {
			return fmt.Errorf("%w: bot %d cannot play itself", ErrInvalidSetup, m[0])
		}
	}
	return nil
}

func (s Setup) matchUps() [][2]int {
	if len(s.MatchUps) > 0 {
		return s.MatchUps
	}
	var matchUps [][2]int
	for i := 0; i < len(s.Bots); i++ {
		for j := i + 1; j < len(s.Bots); j++ {
			matchUps = append(matchUps, [2]int{s.Bots[i].ID, s.Bots[j].ID})
		}
	}
	return matchUps
}
