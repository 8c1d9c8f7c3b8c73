package agent

import (
	"fmt"

	"connectfour/game"

	"golang.org/x/exp/rand"
)

// Penalty for sampling a column that cannot be played
const illegalPenalty = 1000

// Params tune the flat Monte Carlo bot. Wins and losses reached within Depth
// plies score WinBonus and LossBonus instead of 1.
type Params struct {
	Tries       int
	Depth       int
	WinBonus    int
	LossBonus   int
	ParityBonus int // Extra score for a win on a row of the mover's parity
}

// MonteCarlo samples random first columns and plays each sample out at
// random, scoring the columns by the outcomes.
type MonteCarlo struct {
	colored
	params  Params
	rng     *rand.Rand
	weights [][game.Width]int
}

func NewMonteCarlo(color game.Color, params Params, rng *rand.Rand) *MonteCarlo {
	return &MonteCarlo{colored: colored{color}, params: params, rng: rng}
}

func (m *MonteCarlo) Description() string {
	p := m.params
	return fmt.Sprintf("Depth Matters 2: #%d D%d W%d L%d P%d", p.Tries, p.Depth, p.WinBonus, p.LossBonus, p.ParityBonus)
}

// WeightsHistory returns the column scores of every move made so far.
func (m *MonteCarlo) WeightsHistory() [][game.Width]int {
	return m.weights
}

func (m *MonteCarlo) NextMove(board *game.Board) (int, error) {
	var scores [game.Width]int
	for t := 0; t < m.params.Tries; t++ {
		move := game.RandomColumn(m.rng)
		if !board.IsLegalMove(move) {
			scores[move] -= illegalPenalty
			continue
		}

		b := board.Clone()
		if err := b.MakeMove(move); err != nil {
			return -1, err
		}
		status, err := game.Playout(b, game.RandomPolicy(m.rng))
		if err != nil {
			return -1, err
		}
		scores[move] += m.score(status, b, b.Moves()-board.Moves())
	}
	m.weights = append(m.weights, scores)

	best := -1
	for _, move := range board.LegalMoves() {
		if best == -1 || scores[move] > scores[best] {
			best = move
		}
	}
	if best == -1 {
		return -1, fmt.Errorf("%w: status %q", game.ErrNoLegalMovesFound, board.Status())
	}
	return best, nil
}

func (m *MonteCarlo) score(status game.Status, final *game.Board, depth int) int {
	switch {
	case status.IsWinFor(m.color):
		score := 1
		if depth <= m.params.Depth {
			score = m.params.WinBonus
		}
		last, _ := final.LastMove()
		// Red threatens on odd rows, black on even ones
		if (m.color == game.Black) == (last.Row%2 == 0) {
			score += m.params.ParityBonus
		}
		return score
	case status.IsLossFor(m.color):
		if depth <= m.params.Depth {
			return -m.params.LossBonus
		}
		return -1
	default:
		return 0
	}
}

// MonteCarloShort tries every legal column a fixed number of times. Its
// playouts take an immediate win for either side whenever one exists.
type MonteCarloShort struct {
	colored
	tries int
	rng   *rand.Rand
}

func NewMonteCarloShort(color game.Color, triesPerMove int, rng *rand.Rand) *MonteCarloShort {
	return &MonteCarloShort{colored: colored{color}, tries: triesPerMove, rng: rng}
}

func (m *MonteCarloShort) Description() string {
	return "Monte Carlo, short circuit"
}

func (m *MonteCarloShort) NextMove(board *game.Board) (int, error) {
	if move := game.WinningMove(board); move != -1 {
		return move, nil
	}

	best, bestScore := -1, -1
	for _, move := range board.LegalMoves() {
		score := 0
		for t := 0; t < m.tries; t++ {
			b := board.Clone()
			if err := b.MakeMove(move); err != nil {
				return -1, err
			}
			status, err := game.Playout(b, m.shortCircuit)
			if err != nil {
				return -1, err
			}
			if status.IsWinFor(m.color) {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = move, score
		}
	}
	if best == -1 {
		return -1, fmt.Errorf("%w: status %q", game.ErrNoLegalMovesFound, board.Status())
	}
	return best, nil
}

func (m *MonteCarloShort) shortCircuit(b *game.Board) (int, error) {
	if move := game.WinningMove(b); move != -1 {
		return move, nil
	}
	return game.RandomLegalMove(b, m.rng)
}
