package game

import (
	"fmt"
	"strings"
)

// Board is a Connect Four position. It is only changed through MakeMove;
// explore hypothetical continuations on a Clone.
type Board struct {
	grid    [Width][Height]Color // Column major
	turn    Color
	status  Status
	history []Position
}

var directions = [][][2]int{
	{{0, -1}},          // Vertical, only cells below can be filled
	{{1, 0}, {-1, 0}},  // Horizontal
	{{1, 1}, {-1, -1}}, // Diagonal /
	{{-1, 1}, {1, -1}}, // Diagonal \
}

// NewBoard returns an empty board with red to move.
func NewBoard() *Board {
	b := &Board{
		turn:    Red,
		status:  InProgress,
		history: make([]Position, 0, Cells),
	}
	for x := range b.grid {
		for y := range b.grid[x] {
			b.grid[x][y] = Empty
		}
	}
	return b
}

// Clone returns a deep copy sharing no mutable state with b.
func (b *Board) Clone() *Board {
	history := make([]Position, len(b.history), Cells)
	copy(history, b.history)

	return &Board{
		grid:    b.grid, // Arrays copy by value
		turn:    b.turn,
		status:  b.status,
		history: history,
	}
}

func (b *Board) Turn() Color {
	return b.turn
}

func (b *Board) Status() Status {
	return b.status
}

// At returns the piece at the given cell, Empty when out of bounds.
func (b *Board) At(column, row int) Color {
	if !inBounds(column, row) {
		return Empty
	}
	return b.grid[column][row]
}

// History returns a copy of the moves played so far, in order.
func (b *Board) History() []Position {
	history := make([]Position, len(b.history))
	copy(history, b.history)
	return history
}

// Moves returns the number of pieces on the board.
func (b *Board) Moves() int {
	return len(b.history)
}

// LastMove returns the most recently placed piece.
func (b *Board) LastMove() (Position, bool) {
	if len(b.history) == 0 {
		return Position{}, false
	}
	return b.history[len(b.history)-1], true
}

func (b *Board) IsLegalMove(column int) bool {
	return column >= 0 && column < Width &&
		b.grid[column][Height-1] == Empty &&
		b.status == InProgress
}

// LegalMoves returns the playable columns in ascending order.
func (b *Board) LegalMoves() []int {
	moves := make([]int, 0, Width)
	for x := 0; x < Width; x++ {
		if b.IsLegalMove(x) {
			moves = append(moves, x)
		}
	}
	return moves
}

// MakeMove drops a piece of the current player into column. An illegal move
// leaves the board untouched.
func (b *Board) MakeMove(column int) error {
	if !b.IsLegalMove(column) {
		return fmt.Errorf("%w: column %d (status %q)", ErrIllegalMove, column, b.status)
	}

	y := Height - 1
	for y > 0 && b.grid[column][y-1] == Empty {
		y--
	}
	pos := Position{Column: column, Row: y}
	b.grid[column][y] = b.turn
	b.history = append(b.history, pos)
	b.status = b.calcStatus(pos, b.turn)
	b.turn = b.turn.Opponent()
	return nil
}

// calcStatus only looks at lines through pos: a new line of four must
// contain the piece just played.
func (b *Board) calcStatus(pos Position, turn Color) Status {
	for _, axis := range directions {
		run := 0
		for _, vec := range axis {
			run += b.dirCheck(pos, turn, vec)
		}
		if run >= 3 {
			return winFor(turn)
		}
	}

	if len(b.history) >= Cells {
		return Draw
	}
	return InProgress
}

// dirCheck counts the consecutive pieces of color turn next to pos in the
// direction vec, looking at most three cells away.
func (b *Board) dirCheck(pos Position, turn Color, vec [2]int) int {
	for factor := 1; factor <= 3; factor++ {
		x := pos.Column + vec[0]*factor
		y := pos.Row + vec[1]*factor
		if !inBounds(x, y) || b.grid[x][y] != turn {
			return factor - 1
		}
	}
	return 3
}

func inBounds(x, y int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Height
}

func (b *Board) String() string {
	return b.Format(func(c Color) string {
		return string(rune(c))
	})
}

// Format lays the board out like String, rendering every cell with cell.
func (b *Board) Format(cell func(Color) string) string {
	rows := make([]string, 0, Height+4)
	rows = append(rows, "0  1  2  3  4  5  6")
	rows = append(rows, "-------------------")
	for y := Height - 1; y >= 0; y-- {
		row := make([]string, Width)
		for x := 0; x < Width; x++ {
			row[x] = cell(b.grid[x][y])
		}
		rows = append(rows, strings.Join(row, "  "))
	}
	rows = append(rows, "===================")
	rows = append(rows, "Status: "+b.status.String())
	return strings.Join(rows, "\n")
}
