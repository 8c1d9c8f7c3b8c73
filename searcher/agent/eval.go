package agent

import (
	"fmt"

	"connectfour/experiments/metrics"
	"connectfour/game"
	"connectfour/searcher"
)

// MCTS plays the robust child of a fresh search every turn.
type MCTS struct {
	colored
	mcts *searcher.MCTS
	last searcher.Result
}

// NewMCTS returns a bot for actual game play during evaluation.
func NewMCTS(color game.Color, mcts *searcher.MCTS) *MCTS {
	return &MCTS{colored: colored{color}, mcts: mcts}
}

func (a *MCTS) Description() string {
	return describeMCTS("MCTS", a.mcts)
}

func (a *MCTS) NextMove(board *game.Board) (int, error) {
	result, err := a.mcts.Search(board, a.color)
	if err != nil {
		return -1, err
	}
	a.last = result
	return result.Move, nil
}

// LastResult returns the outcome of the most recent search.
func (a *MCTS) LastResult() searcher.Result {
	return a.last
}

func (a *MCTS) LastSearch() metrics.SearchMetric {
	return a.last.Metric
}

func describeMCTS(name string, mcts *searcher.MCTS) string {
	if mcts.Tries() > 0 {
		return fmt.Sprintf("%s: %d", name, mcts.Tries())
	}
	return fmt.Sprintf("%s: %s", name, mcts.Duration())
}
