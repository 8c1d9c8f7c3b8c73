package experiments

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"connectfour/experiments/metrics"
	"connectfour/game"
	"connectfour/searcher/agent"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func lefty(color game.Color) agent.Bot {
	return agent.NewLefty(color)
}

func TestPlayMany(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	games, err := PlayMany(lefty, lefty, 10, rng)
	require.NoError(t, err)
	require.Len(t, games, 10)

	for _, g := range games {
		require.Equal(t, game.RedWon, g.Board.Status(), "Lefty mirror matches are always won by red")
		require.Same(t, g.Red, g.Winner)
		require.Same(t, g.Black, g.Loser)
		require.Contains(t, []int{BotAID, BotBID}, g.WinnerID)
	}

	totals := Summarize(games)
	require.Equal(t, 10, totals.Red)
	require.Zero(t, totals.Black)
	require.Zero(t, totals.Draw)
	require.Equal(t, map[string]int{"Lefty": 10}, totals.Wins)
}

func TestWinnerID(t *testing.T) {
	require.Equal(t, BotAID, winnerID(game.RedWon, true))
	require.Equal(t, BotBID, winnerID(game.RedWon, false))
	require.Equal(t, BotBID, winnerID(game.BlackWon, true))
	require.Equal(t, BotAID, winnerID(game.BlackWon, false))
	require.Equal(t, DrawID, winnerID(game.Draw, true))
}

func TestSummarize(t *testing.T) {
	red, black := agent.NewLefty(game.Red), agent.NewChaosMonkey(game.Black, nil)
	games := []Game{
		{Red: red, Black: black, Winner: red, Loser: black},
		{Red: red, Black: black},
	}
	totals := Summarize(games)
	require.Equal(t, 1, totals.Red)
	require.Equal(t, 1, totals.Draw)
	require.Equal(t, map[string]int{"Lefty": 1, "Chaos Monkey": 0}, totals.Wins,
		"Losers should be listed with zero wins")
}

func TestBattleRoyale(t *testing.T) {
	monkey, err := agent.Lookup("monkey", 2)
	require.NoError(t, err)

	matches, err := BattleRoyale([]agent.Factory{lefty, monkey, lefty}, 3, rand.New(rand.NewSource(2)))
	require.NoError(t, err)
	require.Len(t, matches, 3, "Three bots make three pairings")
	for _, games := range matches {
		require.Len(t, games, 3)
	}
}

func TestFindLoss(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	t.Run("lefty loses as black", func(t *testing.T) {
		g, attempts, err := FindLoss(lefty, lefty, BotAID, 100, rng)
		require.NoError(t, err)
		require.Positive(t, attempts)
		require.Equal(t, BotBID, g.WinnerID)
	})

	t.Run("gives up", func(t *testing.T) {
		_, _, err := FindLoss(lefty, lefty, BotAID, 0, rng)
		require.ErrorIs(t, err, ErrNoLossFound)
	})
}

func TestReplay(t *testing.T) {
	var g Game
	for seed := uint64(4); g.Winner == nil; seed++ {
		mc := func(color game.Color) agent.Bot {
			return agent.NewMonteCarlo(color, agent.Params{Tries: 20}, rand.New(rand.NewSource(seed)))
		}
		var err error
		g, err = pairGame(mc, lefty, false)
		require.NoError(t, err)
	}

	var mcSide, leftySide Side = WinnerSide, LoserSide
	if g.Winner.Description() == "Lefty" {
		mcSide, leftySide = LoserSide, WinnerSide
	}

	t.Run("monte carlo side prints weights", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Replay(&buf, g, mcSide))

		out := buf.String()
		require.Equal(t, g.Board.Moves()+1, strings.Count(out, "Status:"), "Every position should be printed")
		mcMoves := g.Board.Moves() / 2
		require.Equal(t, mcMoves, strings.Count(out, "weights:"), "Every Monte Carlo move should show its weights")
	})

	t.Run("lefty side prints boards only", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Replay(&buf, g, leftySide))
		require.NotContains(t, buf.String(), "weights:")
	})

	t.Run("drawn games have no winner", func(t *testing.T) {
		require.Error(t, Replay(&bytes.Buffer{}, Game{Board: game.NewBoard()}, WinnerSide))
	})
}

const setupYAML = `
name: smoke
games: 2
workers: 2
seed: 5
bots:
  - id: 1
    kind: lefty
  - id: 2
    kind: monkey
  - id: 3
    kind: mcts
    tries: 20
`

func TestSetup(t *testing.T) {
	setup, err := ParseSetup([]byte(setupYAML))
	require.NoError(t, err)
	require.NoError(t, setup.Validate())
	require.Equal(t, "smoke", setup.Name)
	require.Equal(t, metrics.BotConfig{ID: 3, Kind: "mcts", Tries: 20}, setup.Bots[2])
	require.Equal(t, [][2]int{{1, 2}, {1, 3}, {2, 3}}, setup.matchUps(), "Every pair should meet by default")

	t.Run("explicit match ups", func(t *testing.T) {
		s, err := ParseSetup([]byte(setupYAML + "matchups:\n  - [3, 1]\n"))
		require.NoError(t, err)
		require.NoError(t, s.Validate())
		require.Equal(t, [][2]int{{3, 1}}, s.matchUps())
	})

	t.Run("invalid setups", func(t *testing.T) {
		tests := map[string]string{
			"no games":      "name: x\nbots: [{id: 1, kind: lefty}, {id: 2, kind: lefty}]\n",
			"one bot":       "name: x\ngames: 1\nbots: [{id: 1, kind: lefty}]\n",
			"duplicate ids": "name: x\ngames: 1\nbots: [{id: 1, kind: lefty}, {id: 1, kind: lefty}]\n",
			"unknown bot":   "name: x\ngames: 1\nbots: [{id: 1, kind: lefty}, {id: 2, kind: lefty}]\nmatchups: [[1, 3]]\n",
		}
		for name, data := range tests {
			s, err := ParseSetup([]byte(data))
			require.NoError(t, err, name)
			require.ErrorIs(t, s.Validate(), ErrInvalidSetup, name)
		}
	})

	t.Run("bundled setup", func(t *testing.T) {
		s, err := LoadSetup(filepath.Join("setups", "royale.yaml"))
		require.NoError(t, err)
		require.NoError(t, s.Validate())
		require.Len(t, s.Bots, 4)
		require.Equal(t, 100, s.Bots[0].LossBonus)
		require.Len(t, s.matchUps(), 5)

		_, err = LoadSetup(filepath.Join("setups", "missing.yaml"))
		require.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := ParseSetup([]byte("bots: {"))
		require.Error(t, err)
	})
}

func TestRun(t *testing.T) {
	setup, err := ParseSetup([]byte(setupYAML))
	require.NoError(t, err)

	report, err := Run(setup, t.TempDir())
	require.NoError(t, err)

	require.Len(t, report.Games, 6, "Three match ups of two games")
	for i, g := range report.Games {
		require.Equal(t, i+1, g.ID, "Records should keep game order")
	}

	require.Len(t, report.Standings, 3)
	for _, s := range report.Standings {
		require.Equal(t, 4, s.Wins+s.Losses+s.Draws, "Every bot plays two match ups of two games")
	}
	require.True(t, strings.HasPrefix(report.Standings[2].Bot, "3 MCTS: 20"))

	require.Len(t, report.Throughputs, 1, "Only the MCTS bot searches")
	require.Positive(t, report.Throughputs[0].Episodes)

	for _, name := range []string{"bot_configs.csv", "game_records.csv", "move_records.csv", "results.html"} {
		require.FileExists(t, filepath.Join(report.Dir, name))
	}

	t.Run("invalid setup", func(t *testing.T) {
		_, err := Run(Setup{Name: "empty"}, t.TempDir())
		require.ErrorIs(t, err, ErrInvalidSetup)
	})

	t.Run("unknown kind", func(t *testing.T) {
		s := setup
		s.Bots = []metrics.BotConfig{{ID: 1, Kind: "lefty"}, {ID: 2, Kind: "alphago"}}
		_, err := Run(s, t.TempDir())
		require.ErrorIs(t, err, agent.ErrUnknownBot)
	})
}

func TestMeasureThroughput(t *testing.T) {
	moves := []metrics.MoveRecord{
		{MoveMetric: metrics.MoveMetric{Bot: "MCTS: 10", SearchMetric: metrics.SearchMetric{Episodes: 10, Duration: time.Second}}},
		{MoveMetric: metrics.MoveMetric{Bot: "Lefty"}},
		{MoveMetric: metrics.MoveMetric{Bot: "MCTS: 10", SearchMetric: metrics.SearchMetric{Episodes: 10, Duration: time.Second}}},
	}
	got := MeasureThroughput(moves)
	require.Equal(t, []Throughput{{Bot: "MCTS: 10", Moves: 2, Episodes: 20, Duration: 2 * time.Second}}, got)
	require.InDelta(t, 10.0, got[0].EpisodesPerSecond(), 1e-9)
	require.Zero(t, Throughput{}.EpisodesPerSecond())
}
