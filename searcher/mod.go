package searcher

import (
	"errors"
	"math"
)

// Hyperparameters for MCTS

const Exploration = math.Sqrt2 // C in the UCT formula

const noMove = -1 // Move of the root placeholder

// ErrNoLegalMoves means selection reached a node whose children are all
// illegal: a decided position was descended into or the tree is corrupt.
var ErrNoLegalMoves = errors.New("node has no legal moves")

// uct = wins/visits + c*sqrt(ln(rootVisits)/visits)
func uct(wins, visits, rootVisits int, c float64) float64 {
	if visits == 0 {
		return 0
	}

	exploitation := float64(wins) / float64(visits)
	exploration := c * math.Sqrt(math.Log(float64(rootVisits))/float64(visits))
	return exploitation + exploration
}
