package gamemaster

import (
	"errors"
	"fmt"

	"connectfour/game"
	"connectfour/searcher/agent"

	"github.com/rs/zerolog/log"
)

var ErrGameOver = errors.New("game is over - no moves allowed")

// HumanGame is a game between a human and a bot. The bot replies to every
// human move right away.
type HumanGame struct {
	board       *game.Board
	bot         agent.Bot
	human       game.Color
	lastBotMove int
}

// NewHumanGame starts a game against a bot from factory. When the human does
// not go first the bot has already made its opening move.
func NewHumanGame(factory agent.Factory, humanFirst bool) (*HumanGame, error) {
	human := game.Black
	if humanFirst {
		human = game.Red
	}
	g := &HumanGame{
		board:       game.NewBoard(),
		bot:         factory(human.Opponent()),
		human:       human,
		lastBotMove: -1,
	}
	if !humanFirst {
		if err := g.botMove(); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (g *HumanGame) Board() *game.Board {
	return g.board
}

func (g *HumanGame) Human() game.Color {
	return g.human
}

func (g *HumanGame) Bot() agent.Bot {
	return g.bot
}

// LastBotMove returns the column of the bot's latest move, -1 before it
// moved.
func (g *HumanGame) LastBotMove() int {
	return g.lastBotMove
}

func (g *HumanGame) Over() bool {
	return g.board.Status().Terminal()
}

// Move plays column for the human, then lets the bot reply unless the game
// is decided.
func (g *HumanGame) Move(column int) (game.Status, error) {
	if g.Over() {
		return g.board.Status(), ErrGameOver
	}
	if err := g.board.MakeMove(column); err != nil {
		return g.board.Status(), err
	}
	if !g.Over() {
		if err := g.botMove(); err != nil {
			return g.board.Status(), err
		}
	}
	return g.board.Status(), nil
}

func (g *HumanGame) botMove() error {
	move, err := g.bot.NextMove(g.board)
	if err != nil {
		return fmt.Errorf("%s failed to move: %w", g.bot.Description(), err)
	}
	if err := g.board.MakeMove(move); err != nil {
		return fmt.Errorf("%s played an illegal move: %w", g.bot.Description(), err)
	}
	g.lastBotMove = move
	log.Debug().Msgf("bot moved at: %d", move)
	return nil
}
