package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"connectfour/experiments"
	"connectfour/experiments/metrics"
	"connectfour/gamemaster"
	"connectfour/meta"
	"connectfour/searcher/agent"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

func main() {
	mode := flag.String("mode", "fight", "One of fight, human or bots")
	setupPath := flag.String("setup", "", "YAML tournament setup for fight mode")
	bots := flag.String("bots", "depth100,mcss100", "Comma separated preset bots for fight mode without a setup")
	workers := flag.Int("workers", 1, "Number of games played concurrently in fight mode")
	opponent := flag.String("opponent", "mcts", "Preset bot to play against in human mode, mcts uses the configured tries")
	first := flag.String("first", "random", "Who moves first in human mode: human, bot or random")
	colored := flag.Bool("color", true, "Color the pieces in human mode")
	envFile := flag.String("env", ".env", "Environment file with CONNECT4_* settings")
	flag.Parse()

	cfg := meta.Load(*envFile)
	meta.SetupLogging(os.Stderr, cfg.LogLevel)

	var err error
	switch *mode {
	case "fight":
		err = fight(cfg, *setupPath, *bots, *workers)
	case "human":
		err = human(cfg, *opponent, *first, *colored)
	case "bots":
		fmt.Println(strings.Join(agent.Names(), "\n"))
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s failed", *mode)
	}
}

func fight(cfg meta.Config, setupPath, bots string, workers int) error {
	var setup experiments.Setup
	if setupPath != "" {
		var err error
		setup, err = experiments.LoadSetup(setupPath)
		if err != nil {
			return err
		}
	} else {
		setup = experiments.Setup{Name: "battle_royale", Workers: workers, Seed: cfg.Seed}
		for i, name := range strings.Split(bots, ",") {
			config, err := agent.Preset(strings.TrimSpace(name))
			if err != nil {
				return err
			}
			config.ID = i + 1
			config.Seed = cfg.Seed + uint64(i)
			setup.Bots = append(setup.Bots, config)
		}
	}
	if setup.Games == 0 {
		setup.Games = cfg.Games
	}

	log.Info().Msg("starting battle royale...")
	report, err := experiments.Run(setup, cfg.OutDir)
	if err != nil {
		return err
	}
	log.Info().Msgf("results stored in %s", report.Dir)
	return nil
}

func human(cfg meta.Config, opponent, first string, colored bool) error {
	config := metrics.BotConfig{Kind: agent.KindMCTS, Tries: cfg.Tries}
	if opponent != "mcts" {
		var err error
		config, err = agent.Preset(opponent)
		if err != nil {
			return err
		}
	}
	config.Seed = cfg.Seed
	factory, err := agent.FromConfig(config)
	if err != nil {
		return err
	}

	var humanFirst bool
	switch first {
	case "human":
		humanFirst = true
	case "bot":
		humanFirst = false
	default:
		humanFirst = rand.New(rand.NewSource(cfg.Seed)).Intn(2) == 0
	}

	g, err := gamemaster.NewHumanGame(factory, humanFirst)
	if err != nil {
		return err
	}
	return gamemaster.RunConsole(g, colored)
}
