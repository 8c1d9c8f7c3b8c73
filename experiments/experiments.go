package experiments

import (
	"fmt"
	"sync"

	"connectfour/experiments/metrics"
	"connectfour/game"
	"connectfour/searcher/agent"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Report struct {
	Dir         string
	Games       []metrics.GameRecord
	Standings   []metrics.Standing
	Throughputs []Throughput
}

type job struct {
	id     int
	a, b   metrics.BotConfig
	aIsRed bool
	red    agent.Bot
	black  agent.Bot
}

type result struct {
	job
	game Game
	err  error
}

// Run plays every match up of setup, then stores bot configs, game records,
// move records and a results chart in a new directory under outDir.
func Run(setup Setup, outDir string) (Report, error) {
	if err := setup.Validate(); err != nil {
		return Report{}, err
	}

	configs := make(map[int]metrics.BotConfig, len(setup.Bots))
	factories := make(map[int]agent.Factory, len(setup.Bots))
	for _, config := range setup.Bots {
		factory, err := agent.FromConfig(config)
		if err != nil {
			return Report{}, fmt.Errorf("bot %d: %w", config.ID, err)
		}
		configs[config.ID] = config
		factories[config.ID] = factory
	}

	// Bots are created up front so seeds do not depend on worker scheduling
	rng := rand.New(rand.NewSource(setup.Seed))
	var jobs []job
	for _, m := range setup.matchUps() {
		a, b := configs[m[0]], configs[m[1]]
		for i := 0; i < setup.Games; i++ {
			j := job{id: len(jobs) + 1, a: a, b: b, aIsRed: rng.Intn(2) == 0}
			if j.aIsRed {
				j.red, j.black = factories[a.ID](game.Red), factories[b.ID](game.Black)
			} else {
				j.red, j.black = factories[b.ID](game.Red), factories[a.ID](game.Black)
			}
			jobs = append(jobs, j)
		}
	}

	log.Info().Msgf("starting %s experiment with %d games...", setup.Name, len(jobs))
	results := play(jobs, setup.Workers)

	var gameRecords []metrics.GameRecord
	var moveRecords []metrics.MoveRecord
	for _, r := range results {
		if r.err != nil {
			return Report{}, fmt.Errorf("game %d between bots %d and %d: %w", r.id, r.a.ID, r.b.ID, r.err)
		}
		gameRecords = append(gameRecords, metrics.GameRecord{
			ID:         r.id,
			BotA:       r.a.ID,
			BotB:       r.b.ID,
			WinnerID:   r.game.WinnerID,
			GameMetric: r.game.Metric,
		})
		for _, mm := range r.game.Moves {
			moveRecords = append(moveRecords, metrics.MoveRecord{
				Game:       r.id,
				MoveMetric: mm,
			})
		}
	}
	log.Info().Msgf("completed %s experiment", setup.Name)

	report := Report{
		Games:       gameRecords,
		Standings:   standings(setup.Bots, factories, gameRecords),
		Throughputs: MeasureThroughput(moveRecords),
	}
	for _, s := range report.Standings {
		log.Info().Msgf("%s: %d wins, %d losses, %d draws", s.Bot, s.Wins, s.Losses, s.Draws)
	}
	for _, t := range report.Throughputs {
		log.Info().Msgf("%s: %.0f episodes/s over %d moves", t.Bot, t.EpisodesPerSecond(), t.Moves)
	}

	dir, err := store(setup, outDir, gameRecords, moveRecords, report.Standings)
	if err != nil {
		return report, err
	}
	report.Dir = dir
	return report, nil
}

// play runs the jobs on workers goroutines and returns the results in job
// order.
func play(jobs []job, workers int) []result {
	if workers < 1 {
		workers = 1
	}
	results := make([]result, len(jobs))
	queue := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range queue {
				j := jobs[i]
				g, err := PlaySingle(j.red, j.black)
				if err == nil {
					g.WinnerID = winnerID(g.Board.Status(), j.aIsRed)
					log.Debug().Msgf("game %d of %d won by %d", j.id, len(jobs), g.WinnerID)
				}
				results[i] = result{job: j, game: g, err: err}
			}
		}()
	}
	for i := range jobs {
		queue <- i
	}
	close(queue)
	wg.Wait()
	return results
}

func standings(bots []metrics.BotConfig, factories map[int]agent.Factory, records []metrics.GameRecord) []metrics.Standing {
	index := make(map[int]int, len(bots))
	result := make([]metrics.Standing, len(bots))
	for i, config := range bots {
		index[config.ID] = i
		result[i].Bot = fmt.Sprintf("%d %s", config.ID, factories[config.ID](game.Red).Description())
	}

	for _, r := range records {
		a, b := &result[index[r.BotA]], &result[index[r.BotB]]
		switch r.WinnerID {
		case BotAID:
			a.Wins++
			b.Losses++
		case BotBID:
			b.Wins++
			a.Losses++
		default:
			a.Draws++
			b.Draws++
		}
	}
	return result
}

func store(setup Setup, outDir string, games []metrics.GameRecord, moves []metrics.MoveRecord, standings []metrics.Standing) (string, error) {
	writer, err := metrics.NewWriter(outDir, setup.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteBotConfigs(setup.Bots); err != nil {
		return writer.Dir(), fmt.Errorf("failed to store bot configs: %w", err)
	}
	log.Info().Msg("stored bot configs")

	if err := writer.WriteGameRecords(games); err != nil {
		return writer.Dir(), fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moves); err != nil {
		return writer.Dir(), fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	if err := writer.WriteStandingsChart(setup.Name, standings); err != nil {
		return writer.Dir(), fmt.Errorf("failed to write results chart: %w", err)
	}
	log.Info().Msgf("stored results in %s", writer.Dir())
	return writer.Dir(), nil
}
