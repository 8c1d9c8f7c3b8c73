package searcher

import (
	"fmt"
	"math"

	"connectfour/game"

	"golang.org/x/exp/rand"
)

// naughty is essentially a *node: an index into the tree's arena.
type naughty int

func (n naughty) isValid() bool { return n >= 0 }

const (
	nilNode naughty = -1
	root    naughty = 0
)

type node struct {
	move   int
	parent naughty
	first  naughty // First of game.Width contiguous children, nilNode until expanded
	visits int     // Starts at 1 so scores never divide by zero
	wins   int
	legal  bool // Whether move was legal when the parent was expanded
}

// tree owns every node of one search. It is discarded once a move is chosen.
type tree struct {
	nodes []node
	c     float64
}

func newTree(c float64) *tree {
	t := &tree{
		nodes: make([]node, 0, 1+game.Width*64),
		c:     c,
	}
	t.nodes = append(t.nodes, node{
		move:   noMove,
		parent: nilNode,
		first:  nilNode,
		visits: 1,
		legal:  true,
	})
	return t
}

// expand adds one child per column to n, marking the ones b does not allow.
func (t *tree) expand(n naughty, b *game.Board) {
	first := naughty(len(t.nodes))
	for column := 0; column < game.Width; column++ {
		t.nodes = append(t.nodes, node{
			move:   column,
			parent: n,
			first:  nilNode,
			visits: 1,
			legal:  b.IsLegalMove(column) && b.Status() == game.InProgress,
		})
	}
	t.nodes[n].first = first
}

func (t *tree) isLeaf(n naughty) bool {
	return !t.nodes[n].first.isValid()
}

func (t *tree) children(n naughty) []naughty {
	if t.isLeaf(n) {
		return nil
	}
	first := t.nodes[n].first
	children := make([]naughty, game.Width)
	for i := range children {
		children[i] = first + naughty(i)
	}
	return children
}

func (t *tree) legalChildren(n naughty) []naughty {
	var legal []naughty
	for _, child := range t.children(n) {
		if t.nodes[child].legal {
			legal = append(legal, child)
		}
	}
	return legal
}

// score is the UCT value of n against the visits of the search root.
func (t *tree) score(n naughty) float64 {
	nd := t.nodes[n]
	return uct(nd.wins, nd.visits, t.nodes[root].visits, t.c)
}

// bestChild picks uniformly among the legal children of n with the highest
// score.
func (t *tree) bestChild(n naughty, rng *rand.Rand) (naughty, error) {
	var best []naughty
	bestScore := math.Inf(-1)
	for _, child := range t.legalChildren(n) {
		score := t.score(child)
		switch {
		case score > bestScore:
			best = append(best[:0], child)
			bestScore = score
		case score == bestScore:
			best = append(best, child)
		}
	}
	if len(best) == 0 {
		return nilNode, fmt.Errorf("%w: node %d (move %d)", ErrNoLegalMoves, n, t.nodes[n].move)
	}
	return best[rng.Intn(len(best))], nil
}

// descend follows the best children from the root down to a leaf. On
// failure it returns the node it got stuck on.
func (t *tree) descend(rng *rand.Rand) (naughty, error) {
	n := root
	for !t.isLeaf(n) {
		child, err := t.bestChild(n, rng)
		if err != nil {
			return n, err
		}
		n = child
	}
	return n, nil
}

// moves returns the columns played from the root down to n, n included.
func (t *tree) moves(n naughty) []int {
	var moves []int
	for ; n.isValid() && n != root; n = t.nodes[n].parent {
		moves = append(moves, t.nodes[n].move)
	}
	for i, j := 0, len(moves)-1; i < j; i, j = i+1, j-1 {
		moves[i], moves[j] = moves[j], moves[i]
	}
	return moves
}

// catchUp replays the moves leading to n on b.
func (t *tree) catchUp(b *game.Board, n naughty) (*game.Board, error) {
	for _, move := range t.moves(n) {
		if err := b.MakeMove(move); err != nil {
			return b, fmt.Errorf("failed to replay path to node %d: %w", n, err)
		}
	}
	return b, nil
}

// backup records one simulation on n and all of its ancestors.
func (t *tree) backup(n naughty, won bool) {
	for ; n.isValid(); n = t.nodes[n].parent {
		t.nodes[n].visits++
		if won {
			t.nodes[n].wins++
		}
	}
}

// randomLegalChild picks uniformly among the legal children of n.
func (t *tree) randomLegalChild(n naughty, rng *rand.Rand) (naughty, error) {
	legal := t.legalChildren(n)
	if len(legal) == 0 {
		return nilNode, fmt.Errorf("%w: node %d (move %d)", ErrNoLegalMoves, n, t.nodes[n].move)
	}
	return legal[rng.Intn(len(legal))], nil
}

// robustChild picks uniformly among the legal root children with the most
// visits.
func (t *tree) robustChild(rng *rand.Rand) (naughty, error) {
	var best []naughty
	maxVisits := -1
	for _, child := range t.legalChildren(root) {
		visits := t.nodes[child].visits
		switch {
		case visits > maxVisits:
			best = append(best[:0], child)
			maxVisits = visits
		case visits == maxVisits:
			best = append(best, child)
		}
	}
	if len(best) == 0 {
		return nilNode, fmt.Errorf("%w: root", ErrNoLegalMoves)
	}
	return best[rng.Intn(len(best))], nil
}
