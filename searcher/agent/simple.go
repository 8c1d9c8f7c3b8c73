package agent

import (
	"fmt"

	"connectfour/game"

	"golang.org/x/exp/rand"
)

// ChaosMonkey plays any legal move.
type ChaosMonkey struct {
	colored
	rng *rand.Rand
}

func NewChaosMonkey(color game.Color, rng *rand.Rand) *ChaosMonkey {
	return &ChaosMonkey{colored: colored{color}, rng: rng}
}

func (m *ChaosMonkey) Description() string {
	return "Chaos Monkey"
}

func (m *ChaosMonkey) NextMove(board *game.Board) (int, error) {
	return game.RandomLegalMove(board, m.rng)
}

// Lefty plays the leftmost legal move.
type Lefty struct {
	colored
}

func NewLefty(color game.Color) *Lefty {
	return &Lefty{colored{color}}
}

func (l *Lefty) Description() string {
	return "Lefty"
}

func (l *Lefty) NextMove(board *game.Board) (int, error) {
	for column := 0; column < game.Width; column++ {
		if board.IsLegalMove(column) {
			return column, nil
		}
	}
	return -1, fmt.Errorf("%w: status %q", game.ErrNoLegalMovesFound, board.Status())
}
