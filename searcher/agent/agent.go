package agent

import (
	"connectfour/game"
)

type Bot interface {
	// NextMove returns the column to play on board, which is never mutated
	NextMove(board *game.Board) (int, error)
	Description() string
	Color() game.Color
}

// Factory creates a fresh bot for one game.
type Factory func(color game.Color) Bot

type colored struct {
	color game.Color
}

func (c colored) Color() game.Color {
	return c.color
}
