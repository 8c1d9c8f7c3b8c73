package searcher

import (
	"fmt"
	"time"

	"connectfour/experiments/metrics"
	"connectfour/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(mcts *MCTS)

type MCTS struct {
	tries       int
	duration    time.Duration
	exploration float64
	rng         *rand.Rand
	metrics     metrics.Collector
}

// ChildStat holds the statistics of one first move after a search.
type ChildStat struct {
	Move   int
	Legal  bool
	Visits int
	Wins   int
	Score  float64
}

type Result struct {
	Move     int
	Children []ChildStat
	Metric   metrics.SearchMetric
}

func WithTries(tries int) Option {
	return func(m *MCTS) {
		if tries > 0 {
			m.tries = tries
		}
	}
}

// WithDuration bounds each search by wall clock time. Combined with
// WithTries the search stops at whichever limit is hit first.
func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(m *MCTS) {
		if rng != nil {
			m.rng = rng
		}
	}
}

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c >= 0 {
			m.exploration = c
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		exploration: Exploration,
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.tries <= 0 && m.duration <= 0 {
		panic("Must specify search tries or duration")
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return m
}

func (m *MCTS) Tries() int {
	return m.tries
}

func (m *MCTS) Duration() time.Duration {
	return m.duration
}

// Search builds a fresh tree for board and returns the move with the most
// visits. Wins are counted for color at every depth of the tree.
func (m *MCTS) Search(board *game.Board, color game.Color) (Result, error) {
	t := newTree(m.exploration)
	t.expand(root, board)

	m.metrics.Start(m.tries, m.duration)
	var deadline time.Time
	if m.duration > 0 {
		deadline = time.Now().Add(m.duration)
	}
	for i := 0; m.tries <= 0 || i < m.tries; i++ {
		if m.duration > 0 && !time.Now().Before(deadline) {
			break
		}
		if err := m.simulate(t, board, color); err != nil {
			return Result{}, err
		}
		m.metrics.AddEpisode()
	}
	metric := m.metrics.Complete()

	best, err := t.robustChild(m.rng)
	if err != nil {
		log.Error().Err(err).Msgf("no move to choose from\n%s", board)
		return Result{}, err
	}

	result := Result{
		Move:     t.nodes[best].move,
		Children: t.stats(root),
		Metric:   metric,
	}
	logResult(result)
	return result, nil
}

func (m *MCTS) simulate(t *tree, board *game.Board, color game.Color) error {
	// Selection
	n, err := t.descend(m.rng)
	if err != nil {
		b, _ := t.catchUp(board.Clone(), n)
		log.Error().Err(err).Ints("path", t.moves(n)).Msgf("selection got stuck\n%s", b)
		return err
	}

	b, err := t.catchUp(board.Clone(), n)
	if err != nil {
		return err
	}

	// Decided position, nothing to expand or simulate
	if b.Status() != game.InProgress {
		t.backup(n, b.Status().IsWinFor(color))
		m.metrics.AddTerminalHit()
		return nil
	}

	// Expansion
	t.expand(n, b)
	child, err := t.randomLegalChild(n, m.rng)
	if err != nil {
		log.Error().Err(err).Ints("path", t.moves(n)).Msgf("expanded node has no legal child\n%s", b)
		return err
	}

	// Rollout
	status, err := rollout(b, t.nodes[child].move, m.rng)
	if err != nil {
		return fmt.Errorf("rollout from node %d failed: %w", child, err)
	}
	m.metrics.AddFullPlayout()

	// Backpropagation
	t.backup(child, status.IsWinFor(color))
	return nil
}

// rollout plays move on b, then random legal moves until the game ends.
func rollout(b *game.Board, move int, rng *rand.Rand) (game.Status, error) {
	if err := b.MakeMove(move); err != nil {
		return b.Status(), err
	}
	return game.Playout(b, game.RandomPolicy(rng))
}

func (t *tree) stats(n naughty) []ChildStat {
	children := t.children(n)
	stats := make([]ChildStat, 0, len(children))
	for _, child := range children {
		nd := t.nodes[child]
		stats = append(stats, ChildStat{
			Move:   nd.move,
			Legal:  nd.legal,
			Visits: nd.visits,
			Wins:   nd.wins,
			Score:  t.score(child),
		})
	}
	return stats
}

func logResult(result Result) {
	wins := make([]int, len(result.Children))
	visits := make([]int, len(result.Children))
	scores := make([]float64, len(result.Children))
	for i, child := range result.Children {
		wins[i] = child.Wins
		visits[i] = child.Visits
		scores[i] = child.Score
	}
	log.Debug().
		Int("move", result.Move).
		Ints("wins", wins).
		Ints("visits", visits).
		Floats64("scores", scores).
		Int("episodes", result.Metric.Episodes).
		Msg("root children")
}
