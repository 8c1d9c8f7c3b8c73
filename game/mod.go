package game

import "errors"

const (
	Width  = 7
	Height = 6
	Cells  = Width * Height
)

// Color is the content of a cell and also identifies the players.
type Color byte

const (
	Empty Color = '.'
	Red   Color = 'r' // Always moves first
	Black Color = 'b'
)

func (c Color) Opponent() Color {
	if c == Red {
		return Black
	}
	return Red
}

func (c Color) String() string {
	switch c {
	case Red:
		return "red"
	case Black:
		return "black"
	default:
		return "empty"
	}
}

// Status of a game. Once a board leaves InProgress it never returns to it.
type Status int

const (
	InProgress Status = iota
	RedWon
	BlackWon
	Draw
)

func (s Status) String() string {
	switch s {
	case RedWon:
		return "red wins!"
	case BlackWon:
		return "black wins!"
	case Draw:
		return "draw"
	default:
		return "in progress..."
	}
}

func (s Status) Terminal() bool {
	return s != InProgress
}

func (s Status) IsWinFor(c Color) bool {
	return (c == Red && s == RedWon) || (c == Black && s == BlackWon)
}

func (s Status) IsLossFor(c Color) bool {
	return s.IsWinFor(c.Opponent())
}

func winFor(c Color) Status {
	if c == Red {
		return RedWon
	}
	return BlackWon
}

// Position of a placed piece, (0, 0) is the bottom left cell.
type Position struct {
	Column int
	Row    int
}

var (
	// ErrIllegalMove is returned when a piece is dropped into a full column,
	// outside the board, or after the game is over.
	ErrIllegalMove = errors.New("illegal move")
	// ErrNoLegalMovesFound signals that a random move helper could not find
	// a legal column to play.
	ErrNoLegalMovesFound = errors.New("no legal moves found")
)
