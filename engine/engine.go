package engine

import (
	"connectfour/experiments/metrics"
	"connectfour/game"
)

type Engine interface {
	// Run plays a game to the end and returns the final board
	Run() (board *game.Board, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}

// Winner names the winning color of a decided status, "draw" otherwise.
func Winner(status game.Status) string {
	switch status {
	case game.RedWon:
		return game.Red.String()
	case game.BlackWon:
		return game.Black.String()
	case game.Draw:
		return "draw"
	default:
		return ""
	}
}
