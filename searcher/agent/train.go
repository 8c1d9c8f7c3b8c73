package agent

import (
	"fmt"
	"math"

	"connectfour/experiments/metrics"
	"connectfour/game"
	"connectfour/searcher"

	"golang.org/x/exp/rand"
)

const DefaultTemperature = 1.0

// SamplingMCTS draws its move from the root visit counts instead of taking
// the most visited child, which varies self-play games.
type SamplingMCTS struct {
	colored
	mcts        *searcher.MCTS
	temperature float64
	rng         *rand.Rand
	last        searcher.Result
}

func NewSamplingMCTS(color game.Color, mcts *searcher.MCTS, temperature float64, rng *rand.Rand) *SamplingMCTS {
	if temperature <= 0 {
		temperature = DefaultTemperature
	}
	return &SamplingMCTS{colored: colored{color}, mcts: mcts, temperature: temperature, rng: rng}
}

func (a *SamplingMCTS) Description() string {
	return fmt.Sprintf("%s T%.1f", describeMCTS("MCTS sampling", a.mcts), a.temperature)
}

func (a *SamplingMCTS) NextMove(board *game.Board) (int, error) {
	result, err := a.mcts.Search(board, a.color)
	if err != nil {
		return -1, err
	}
	a.last = result

	policy := adjustTemperature(result.Children, a.temperature)
	return sample(policy, a.rng, result.Move), nil
}

func (a *SamplingMCTS) LastSearch() metrics.SearchMetric {
	return a.last.Metric
}

// adjustTemperature turns the visits of the legal children into move
// probabilities.
func adjustTemperature(children []searcher.ChildStat, temperature float64) map[int]float64 {
	exponent := 1.0 / temperature
	sum := 0.0
	adjusted := make(map[int]float64, len(children))
	for _, child := range children {
		if !child.Legal {
			continue
		}
		prob := math.Pow(float64(child.Visits), exponent)
		sum += prob
		adjusted[child.Move] = prob
	}
	// Normalize
	for move := range adjusted {
		adjusted[move] /= sum
	}
	return adjusted
}

func sample(policy map[int]float64, rng *rand.Rand, fallback int) int {
	sampled := rng.Float64()
	cumulative := 0.0
	// Map order is random, walk the columns in order for reproducibility
	for move := 0; move < game.Width; move++ {
		prob, ok := policy[move]
		if !ok {
			continue
		}
		cumulative += prob
		if sampled < cumulative {
			return move
		}
	}
	return fallback // Rounding errors
}
