package agent

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"connectfour/experiments/metrics"
	"connectfour/game"
	"connectfour/searcher"

	"golang.org/x/exp/rand"
)

// Bot kinds understood by FromConfig
const (
	KindMonkey     = "monkey"
	KindLefty      = "lefty"
	KindMonteCarlo = "montecarlo"
	KindShort      = "mcss"
	KindMCTS       = "mcts"
	KindSampling   = "mcts-sampling"
)

var ErrUnknownBot = errors.New("unknown bot")

var presets = map[string]metrics.BotConfig{
	"monkey": {Kind: KindMonkey},
	"lefty":  {Kind: KindLefty},

	// Simple Monte Carlo
	"smc100": {Kind: KindMonteCarlo, Tries: 100},
	"smc300": {Kind: KindMonteCarlo, Tries: 300},
	"smc50k": {Kind: KindMonteCarlo, Tries: 50000},

	// Depth with loss bonus
	"depth100": {Kind: KindMonteCarlo, Tries: 100, Depth: 2, WinBonus: 1, LossBonus: 100},
	"depth300": {Kind: KindMonteCarlo, Tries: 300, Depth: 2, WinBonus: 1, LossBonus: 100},
	"depth50k": {Kind: KindMonteCarlo, Tries: 50000, Depth: 2, WinBonus: 1, LossBonus: 100},

	// Parity
	"parity100": {Kind: KindMonteCarlo, Tries: 100, Depth: 2, WinBonus: 1, LossBonus: 100, ParityBonus: 2},
	"parity300": {Kind: KindMonteCarlo, Tries: 300, Depth: 2, WinBonus: 1, LossBonus: 100, ParityBonus: 2},
	"parity50k": {Kind: KindMonteCarlo, Tries: 50000, Depth: 2, WinBonus: 1, LossBonus: 100, ParityBonus: 2},

	// Short circuit Monte Carlo
	"mcss100": {Kind: KindShort, Tries: 100},
	"mcss500": {Kind: KindShort, Tries: 500},
	"mcss50k": {Kind: KindShort, Tries: 50000},

	"mcts100":   {Kind: KindMCTS, Tries: 100},
	"mcts300":   {Kind: KindMCTS, Tries: 300},
	"mcts1000":  {Kind: KindMCTS, Tries: 1000},
	"mctss300":  {Kind: KindSampling, Tries: 300},
	"mctss1000": {Kind: KindSampling, Tries: 1000},
}

// Names lists the preset bots in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Preset returns the configuration of a named bot.
func Preset(name string) (metrics.BotConfig, error) {
	config, ok := presets[name]
	if !ok {
		return metrics.BotConfig{}, fmt.Errorf("%w: %q", ErrUnknownBot, name)
	}
	return config, nil
}

// Lookup returns the factory of a preset bot. Bots created by the factory
// draw their seeds from seed, so a run is reproducible.
func Lookup(name string, seed uint64) (Factory, error) {
	config, err := Preset(name)
	if err != nil {
		return nil, err
	}
	config.Seed = seed
	return FromConfig(config)
}

// FromConfig returns a factory for the bot described by config. The factory
// is safe for concurrent use.
func FromConfig(config metrics.BotConfig) (Factory, error) {
	if err := validate(config); err != nil {
		return nil, err
	}

	var mu sync.Mutex
	seeds := rand.New(rand.NewSource(config.Seed))
	nextRand := func() *rand.Rand {
		mu.Lock()
		defer mu.Unlock()
		return rand.New(rand.NewSource(seeds.Uint64()))
	}

	return func(color game.Color) Bot {
		rng := nextRand()
		switch config.Kind {
		case KindMonkey:
			return NewChaosMonkey(color, rng)
		case KindLefty:
			return NewLefty(color)
		case KindMonteCarlo:
			return NewMonteCarlo(color, Params{
				Tries:       config.Tries,
				Depth:       config.Depth,
				WinBonus:    config.WinBonus,
				LossBonus:   config.LossBonus,
				ParityBonus: config.ParityBonus,
			}, rng)
		case KindShort:
			return NewMonteCarloShort(color, config.Tries, rng)
		case KindMCTS:
			return NewMCTS(color, newSearch(config, rng))
		default: // KindSampling
			return NewSamplingMCTS(color, newSearch(config, rng), DefaultTemperature, rng)
		}
	}, nil
}

func validate(config metrics.BotConfig) error {
	switch config.Kind {
	case KindMonkey, KindLefty:
		return nil
	case KindMonteCarlo, KindShort, KindMCTS, KindSampling:
		if config.Tries <= 0 {
			return fmt.Errorf("%w: %s bot needs positive tries, got %d", ErrUnknownBot, config.Kind, config.Tries)
		}
		return nil
	default:
		return fmt.Errorf("%w: kind %q", ErrUnknownBot, config.Kind)
	}
}

func newSearch(config metrics.BotConfig, rng *rand.Rand) *searcher.MCTS {
	return searcher.NewMCTS(
		searcher.WithTries(config.Tries),
		searcher.WithRand(rng),
		searcher.WithMetrics(),
	)
}
