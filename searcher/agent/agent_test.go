package agent

import (
	"testing"

	"connectfour/experiments/metrics"
	"connectfour/game"
	"connectfour/searcher"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func boardAfter(t *testing.T, moves ...int) *game.Board {
	t.Helper()
	b := game.NewBoard()
	for _, move := range moves {
		require.NoError(t, b.MakeMove(move))
	}
	return b
}

func TestLefty(t *testing.T) {
	l := NewLefty(game.Red)
	require.Equal(t, "Lefty", l.Description())
	require.Equal(t, game.Red, l.Color())

	move, err := l.NextMove(game.NewBoard())
	require.NoError(t, err)
	require.Zero(t, move)

	move, err = l.NextMove(boardAfter(t, 0, 0, 0, 0, 0, 0))
	require.NoError(t, err)
	require.Equal(t, 1, move, "Should skip the full column")

	_, err = l.NextMove(boardAfter(t, 3, 0, 3, 0, 3, 0, 3))
	require.ErrorIs(t, err, game.ErrNoLegalMovesFound)
}

func TestChaosMonkey(t *testing.T) {
	m := NewChaosMonkey(game.Black, rand.New(rand.NewSource(1)))
	require.Equal(t, "Chaos Monkey", m.Description())

	b := boardAfter(t, 2, 2, 2, 2, 2, 2)
	for i := 0; i < 100; i++ {
		move, err := m.NextMove(b)
		require.NoError(t, err)
		require.True(t, b.IsLegalMove(move))
	}
}

func TestMonteCarlo(t *testing.T) {
	depth := Params{Tries: 700, Depth: 2, WinBonus: 1, LossBonus: 100}

	t.Run("description", func(t *testing.T) {
		m := NewMonteCarlo(game.Red, Params{Tries: 100, Depth: 2, WinBonus: 1, LossBonus: 100, ParityBonus: 2}, nil)
		require.Equal(t, "Depth Matters 2: #100 D2 W1 L100 P2", m.Description())
	})

	t.Run("blocks a vertical three", func(t *testing.T) {
		m := NewMonteCarlo(game.Black, depth, rand.New(rand.NewSource(2)))
		move, err := m.NextMove(boardAfter(t, 3, 0, 3, 0, 3))
		require.NoError(t, err)
		require.Equal(t, 3, move, "Any other column loses within two plies")
	})

	t.Run("never plays a full column", func(t *testing.T) {
		m := NewMonteCarlo(game.Red, Params{Tries: 3}, rand.New(rand.NewSource(3)))
		b := boardAfter(t, 0, 0, 0, 0, 0, 0)
		for i := 0; i < 20; i++ {
			move, err := m.NextMove(b)
			require.NoError(t, err)
			require.NotZero(t, move)
		}
	})

	t.Run("weights history", func(t *testing.T) {
		m := NewMonteCarlo(game.Red, Params{Tries: 50}, rand.New(rand.NewSource(4)))
		b := boardAfter(t, 5, 5, 5, 5, 5, 5)
		_, err := m.NextMove(b)
		require.NoError(t, err)
		_, err = m.NextMove(b)
		require.NoError(t, err)

		history := m.WeightsHistory()
		require.Len(t, history, 2, "One weights entry per move")
		require.LessOrEqual(t, history[0][5], 0, "Full column should only collect penalties")
	})

	t.Run("scoring", func(t *testing.T) {
		parity := NewMonteCarlo(game.Red, Params{Depth: 2, WinBonus: 5, LossBonus: 100, ParityBonus: 2}, nil)

		// Red wins on row 0, which is even
		won := boardAfter(t, 0, 6, 1, 6, 2, 6, 3)
		require.Equal(t, 5, parity.score(won.Status(), won, 1), "Near win scores the bonus")
		require.Equal(t, 1, parity.score(won.Status(), won, 3), "Far win scores 1")

		// Red wins on row 1, which is odd
		high := boardAfter(t, 3, 0, 0, 1, 1, 2, 2, 6, 3)
		require.Equal(t, game.RedWon, high.Status())
		require.Equal(t, 1+2, parity.score(high.Status(), high, 3), "Odd row win earns the parity bonus for red")

		lost := boardAfter(t, 0, 6, 1, 6, 2, 6, 5, 6)
		require.Equal(t, -100, parity.score(lost.Status(), lost, 2))
		require.Equal(t, -1, parity.score(lost.Status(), lost, 4))
		require.Zero(t, parity.score(game.Draw, lost, 1))
	})
}

func TestMonteCarloShort(t *testing.T) {
	m := NewMonteCarloShort(game.Black, 20, rand.New(rand.NewSource(5)))
	require.Equal(t, "Monte Carlo, short circuit", m.Description())

	t.Run("takes an immediate win", func(t *testing.T) {
		move, err := m.NextMove(boardAfter(t, 3, 0, 3, 0, 3, 0, 1))
		require.NoError(t, err)
		require.Zero(t, move)
	})

	t.Run("blocks a vertical three", func(t *testing.T) {
		move, err := m.NextMove(boardAfter(t, 3, 0, 3, 0, 3))
		require.NoError(t, err)
		require.Equal(t, 3, move)
	})
}

func TestMCTSBot(t *testing.T) {
	mcts := searcher.NewMCTS(searcher.WithTries(100), searcher.WithSeed(6), searcher.WithMetrics())
	bot := NewMCTS(game.Red, mcts)
	require.Equal(t, "MCTS: 100", bot.Description())

	b := game.NewBoard()
	move, err := bot.NextMove(b)
	require.NoError(t, err)
	require.True(t, b.IsLegalMove(move))
	require.Zero(t, b.Moves(), "Search should not touch the board")
	require.Equal(t, move, bot.LastResult().Move)
	require.Equal(t, 100, bot.LastSearch().Episodes)

	_, err = bot.NextMove(boardAfter(t, 3, 0, 3, 0, 3, 0, 3))
	require.ErrorIs(t, err, searcher.ErrNoLegalMoves)
}

func TestSamplingMCTS(t *testing.T) {
	t.Run("temperature", func(t *testing.T) {
		children := []searcher.ChildStat{
			{Move: 0, Legal: true, Visits: 30},
			{Move: 1, Legal: false, Visits: 1},
			{Move: 2, Legal: true, Visits: 10},
		}
		policy := adjustTemperature(children, 1.0)
		require.Len(t, policy, 2, "Illegal children should get no probability")
		require.InDelta(t, 0.75, policy[0], 1e-9)
		require.InDelta(t, 0.25, policy[2], 1e-9)

		sharp := adjustTemperature(children, 0.5)
		require.Greater(t, sharp[0], policy[0], "Lower temperature should favor the most visited child")
	})

	t.Run("sample", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		for i := 0; i < 20; i++ {
			require.Equal(t, 4, sample(map[int]float64{4: 1}, rng, 0))
		}
		require.Equal(t, 6, sample(map[int]float64{}, rng, 6), "Empty policy should fall back")
	})

	t.Run("plays legal moves", func(t *testing.T) {
		rng := rand.New(rand.NewSource(8))
		bot := NewSamplingMCTS(game.Black, searcher.NewMCTS(searcher.WithTries(50), searcher.WithRand(rng)), 0, rng)
		require.Equal(t, "MCTS sampling: 50 T1.0", bot.Description())

		b := boardAfter(t, 1, 1, 1, 1, 1)
		move, err := bot.NextMove(b)
		require.NoError(t, err)
		require.True(t, b.IsLegalMove(move))
	})
}

func TestRegistry(t *testing.T) {
	t.Run("every preset builds", func(t *testing.T) {
		for _, name := range Names() {
			factory, err := Lookup(name, 1)
			require.NoError(t, err, name)
			bot := factory(game.Black)
			require.Equal(t, game.Black, bot.Color(), name)
			require.NotEmpty(t, bot.Description(), name)
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := Lookup("alphago", 1)
		require.ErrorIs(t, err, ErrUnknownBot)
	})

	t.Run("invalid config", func(t *testing.T) {
		_, err := FromConfig(metrics.BotConfig{Kind: KindMCTS})
		require.ErrorIs(t, err, ErrUnknownBot, "Search bots need tries")
	})

	t.Run("same seed same bots", func(t *testing.T) {
		a, err := Lookup("monkey", 9)
		require.NoError(t, err)
		b, err := Lookup("monkey", 9)
		require.NoError(t, err)

		board := game.NewBoard()
		for i := 0; i < 3; i++ {
			botA, botB := a(game.Red), b(game.Red)
			for j := 0; j < 10; j++ {
				moveA, err := botA.NextMove(board)
				require.NoError(t, err)
				moveB, err := botB.NextMove(board)
				require.NoError(t, err)
				require.Equal(t, moveA, moveB)
			}
		}
	})

	t.Run("presets match their kind", func(t *testing.T) {
		factory, err := Lookup("depth300", 1)
		require.NoError(t, err)
		require.Equal(t, "Depth Matters 2: #300 D2 W1 L100 P0", factory(game.Red).Description())

		factory, err = Lookup("mcts300", 1)
		require.NoError(t, err)
		require.IsType(t, &MCTS{}, factory(game.Red))
	})
}
