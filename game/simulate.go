package game

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// Policy picks the next column to play on a board.
type Policy func(b *Board) (int, error)

// Playout plays b to completion with policy, mutating b. Clone first when
// the original position must survive.
func Playout(b *Board, policy Policy) (Status, error) {
	for b.Status() == InProgress {
		move, err := policy(b)
		if err != nil {
			return b.Status(), err
		}
		if err := b.MakeMove(move); err != nil {
			return b.Status(), err
		}
	}
	return b.Status(), nil
}

// RandomPolicy plays uniformly random legal moves.
func RandomPolicy(rng *rand.Rand) Policy {
	return func(b *Board) (int, error) {
		return RandomLegalMove(b, rng)
	}
}

// RandomLegalMove picks uniformly among the legal columns of b.
func RandomLegalMove(b *Board, rng *rand.Rand) (int, error) {
	moves := b.LegalMoves()
	if len(moves) == 0 {
		return -1, fmt.Errorf("%w: status %q after %d moves", ErrNoLegalMovesFound, b.Status(), b.Moves())
	}
	return moves[rng.Intn(len(moves))], nil
}

// RandomColumn draws any column, legal or not.
func RandomColumn(rng *rand.Rand) int {
	return rng.Intn(Width)
}

// WinningMove returns a column that ends the game right away for the player
// to move, or -1 if there is none.
func WinningMove(b *Board) int {
	for _, move := range b.LegalMoves() {
		next := b.Clone()
		if err := next.MakeMove(move); err != nil {
			continue
		}
		if next.Status() != InProgress {
			return move
		}
	}
	return -1
}
