package experiments

import (
	"errors"
	"fmt"
	"io"

	"connectfour/engine"
	"connectfour/experiments/metrics"
	"connectfour/game"
	"connectfour/searcher/agent"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

var ErrNoLossFound = errors.New("no loss found")

// Winner ids of a game between bot A and bot B
const (
	DrawID = 0
	BotAID = 1
	BotBID = 2
)

type Game struct {
	WinnerID int
	Red      agent.Bot
	Black    agent.Bot
	Winner   agent.Bot // nil on a draw
	Loser    agent.Bot // nil on a draw
	Board    *game.Board
	Metric   metrics.GameMetric
	Moves    []metrics.MoveMetric
}

// PlaySingle plays red against black until the game is decided.
func PlaySingle(red, black agent.Bot) (Game, error) {
	board, gameMetric, moveMetrics, err := engine.LocalEngine(red, black).Run()
	g := Game{
		Red:    red,
		Black:  black,
		Board:  board,
		Metric: gameMetric,
		Moves:  moveMetrics,
	}
	if err != nil {
		return g, err
	}

	switch board.Status() {
	case game.RedWon:
		g.Winner, g.Loser = red, black
	case game.BlackWon:
		g.Winner, g.Loser = black, red
	}
	return g, nil
}

// pairGame plays bot A against bot B, A taking red when aIsRed.
func pairGame(a, b agent.Factory, aIsRed bool) (Game, error) {
	var red, black agent.Bot
	if aIsRed {
		red, black = a(game.Red), b(game.Black)
	} else {
		red, black = b(game.Red), a(game.Black)
	}
	g, err := PlaySingle(red, black)
	if err != nil {
		return g, err
	}
	g.WinnerID = winnerID(g.Board.Status(), aIsRed)
	return g, nil
}

func winnerID(status game.Status, aIsRed bool) int {
	switch status {
	case game.RedWon:
		if aIsRed {
			return BotAID
		}
		return BotBID
	case game.BlackWon:
		if aIsRed {
			return BotBID
		}
		return BotAID
	default:
		return DrawID
	}
}

// PlayMany plays n games between fresh bots from a and b. Colors are drawn
// at random for every game so both bots get to move first.
func PlayMany(a, b agent.Factory, n int, rng *rand.Rand) ([]Game, error) {
	games := make([]Game, 0, n)
	for i := 0; i < n; i++ {
		log.Debug().Msgf("playing game %d of %d", i+1, n)
		g, err := pairGame(a, b, rng.Intn(2) == 0)
		if err != nil {
			return games, fmt.Errorf("game %d failed: %w", i+1, err)
		}
		games = append(games, g)
	}
	return games, nil
}

// BattleRoyale pits every factory against every other one for n games.
func BattleRoyale(factories []agent.Factory, n int, rng *rand.Rand) ([][]Game, error) {
	var matches [][]Game
	for i := 0; i < len(factories); i++ {
		for j := i + 1; j < len(factories); j++ {
			games, err := PlayMany(factories[i], factories[j], n, rng)
			if err != nil {
				return matches, fmt.Errorf("match %d vs %d: %w", i, j, err)
			}
			matches = append(matches, games)
		}
	}
	return matches, nil
}

// Totals counts wins per color and per bot description. Bots that only
// lost are listed with zero wins.
type Totals struct {
	Red   int
	Black int
	Draw  int
	Wins  map[string]int
}

func Summarize(games []Game) Totals {
	totals := Totals{Wins: map[string]int{}}
	for _, g := range games {
		if g.Winner == nil {
			totals.Draw++
			continue
		}
		if g.Winner.Color() == game.Red {
			totals.Red++
		} else {
			totals.Black++
		}
		totals.Wins[g.Winner.Description()]++
		if _, ok := totals.Wins[g.Loser.Description()]; !ok {
			totals.Wins[g.Loser.Description()] = 0
		}
	}
	return totals
}

func (t Totals) String() string {
	return fmt.Sprintf("red: %d, black: %d, draw: %d, wins: %v", t.Red, t.Black, t.Draw, t.Wins)
}

// FindLoss plays single games until the bot with desiredLoserID loses.
// It gives up after maxAttempts games.
func FindLoss(a, b agent.Factory, desiredLoserID, maxAttempts int, rng *rand.Rand) (Game, int, error) {
	winner := BotAID
	if desiredLoserID == BotAID {
		winner = BotBID
	}
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		g, err := pairGame(a, b, rng.Intn(2) == 0)
		if err != nil {
			return g, attempts, err
		}
		if g.WinnerID == winner {
			log.Info().Msgf("lost game found in %d attempts", attempts)
			return g, attempts, nil
		}
	}
	return Game{}, maxAttempts, fmt.Errorf("%w: bot %d won or drew %d games", ErrNoLossFound, desiredLoserID, maxAttempts)
}

type Side int

const (
	WinnerSide Side = iota
	LoserSide
)

type weightsReporter interface {
	WeightsHistory() [][game.Width]int
}

// Replay writes every board of g to w. When the bot of side kept Monte Carlo
// weights, the weights it chose its next move with follow the board.
func Replay(w io.Writer, g Game, side Side) error {
	bot := g.Winner
	if side == LoserSide {
		bot = g.Loser
	}
	if bot == nil {
		return fmt.Errorf("game was drawn, there is no %s", side)
	}
	weights, _ := bot.(weightsReporter)

	board := game.NewBoard()
	if _, err := fmt.Fprintf(w, "%s (red) vs %s (black), winner: %s\n%s\n",
		g.Red.Description(), g.Black.Description(), g.Metric.Winner, board); err != nil {
		return err
	}
	if weights != nil && bot.Color() == game.Red {
		if err := printWeights(w, weights, 0); err != nil {
			return err
		}
	}

	turn := 0
	if bot.Color() == game.Red {
		turn = 1
	}
	for _, pos := range g.Board.History() {
		if err := board.MakeMove(pos.Column); err != nil {
			return fmt.Errorf("replay diverged: %w", err)
		}
		if _, err := fmt.Fprintln(w, board); err != nil {
			return err
		}
		if weights != nil && board.Turn() == bot.Color() && board.Status() == game.InProgress {
			if err := printWeights(w, weights, turn); err != nil {
				return err
			}
			turn++
		}
	}
	return nil
}

func printWeights(w io.Writer, weights weightsReporter, turn int) error {
	history := weights.WeightsHistory()
	if turn >= len(history) {
		return nil
	}
	_, err := fmt.Fprintf(w, "weights: %v\n", history[turn])
	return err
}

func (s Side) String() string {
	if s == LoserSide {
		return "loser"
	}
	return "winner"
}
