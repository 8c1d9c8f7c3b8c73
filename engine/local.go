package engine

import (
	"fmt"
	"time"

	"connectfour/experiments/metrics"
	"connectfour/game"
	"connectfour/searcher/agent"

	"github.com/rs/zerolog/log"
)

type Local struct {
	Board *game.Board
	red   agent.Bot
	black agent.Bot
}

// LocalEngine sets up a game between two bots, red moving first.
func LocalEngine(red, black agent.Bot) *Local {
	if red.Color() != game.Red || black.Color() != game.Black {
		panic("bots do not match their colors")
	}
	return &Local{
		Board: game.NewBoard(),
		red:   red,
		black: black,
	}
}

func (e *Local) bot(color game.Color) agent.Bot {
	if color == game.Red {
		return e.red
	}
	return e.black
}

// Run executes the game loop until the board is decided.
func (e *Local) Run() (*game.Board, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		Red:       e.red.Description(),
		Black:     e.black.Description(),
		StartTime: time.Now(),
	}
	log.Debug().Msgf("%s (red) vs %s (black)", gameMetric.Red, gameMetric.Black)

	var moveMetrics []metrics.MoveMetric
	for step := 1; e.Board.Status() == game.InProgress; step++ {
		color := e.Board.Turn()
		bot := e.bot(color)

		start := time.Now()
		move, err := bot.NextMove(e.Board)
		if err != nil {
			return e.Board, gameMetric, moveMetrics, fmt.Errorf("%s failed to find a move: %w", bot.Description(), err)
		}
		elapsed := time.Since(start)

		if err := e.Board.MakeMove(move); err != nil {
			log.Error().Err(err).Msgf("%s chose column %d\n%s", bot.Description(), move, e.Board)
			return e.Board, gameMetric, moveMetrics, fmt.Errorf("%s played an illegal move: %w", bot.Description(), err)
		}

		var search metrics.SearchMetric
		if reporter, ok := bot.(metrics.Reporter); ok {
			search = reporter.LastSearch()
		}
		if search.Duration == 0 {
			search.Duration = elapsed
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       color.String(),
			Bot:          bot.Description(),
			Column:       move,
			SearchMetric: search,
		})
		log.Trace().Msgf("step %d: %s played %d", step, color, move)
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = e.Board.Moves()
	gameMetric.Winner = Winner(e.Board.Status())
	log.Debug().Msgf("game over after %d moves: %s", gameMetric.TotalMoves, e.Board.Status())

	return e.Board, gameMetric, moveMetrics, nil
}
