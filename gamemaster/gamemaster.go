package gamemaster

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"connectfour/game"

	"github.com/logrusorgru/aurora"
)

var ErrInvalidColumn = errors.New("please enter a number 0-6")

var columnPattern = regexp.MustCompile(`^[0-6]$`)

// ParseColumn reads a single column digit, ignoring surrounding whitespace.
func ParseColumn(input string) (int, error) {
	trimmed := strings.TrimSpace(input)
	if !columnPattern.MatchString(trimmed) {
		return -1, fmt.Errorf("%w: got %q", ErrInvalidColumn, input)
	}
	return int(trimmed[0] - '0'), nil
}

// Render draws the board with red and black pieces in color when colored is
// set, matching Board.String otherwise.
func Render(board *game.Board, colored bool) string {
	au := aurora.NewAurora(colored)
	return board.Format(func(c game.Color) string {
		piece := string(rune(c))
		switch c {
		case game.Red:
			return au.Red(piece).String()
		case game.Black:
			return au.Yellow(piece).String()
		default:
			return piece
		}
	})
}
