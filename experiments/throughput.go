package experiments

import (
	"sort"
	"time"

	"connectfour/experiments/metrics"
)

// Throughput aggregates the search work of one bot over an experiment.
type Throughput struct {
	Bot      string
	Moves    int
	Episodes int
	Duration time.Duration
}

func (t Throughput) EpisodesPerSecond() float64 {
	if t.Duration <= 0 {
		return 0
	}
	return float64(t.Episodes) / t.Duration.Seconds()
}

// MeasureThroughput sums the moves of every searching bot, ordered by bot
// description. Bots that report no episodes are left out.
func MeasureThroughput(moves []metrics.MoveRecord) []Throughput {
	byBot := map[string]*Throughput{}
	for _, m := range moves {
		if m.Episodes == 0 {
			continue
		}
		t, ok := byBot[m.Bot]
		if !ok {
			t = &Throughput{Bot: m.Bot}
			byBot[m.Bot] = t
		}
		t.Moves++
		t.Episodes += m.Episodes
		t.Duration += m.Duration
	}

	throughputs := make([]Throughput, 0, len(byBot))
	for _, t := range byBot {
		throughputs = append(throughputs, *t)
	}
	sort.Slice(throughputs, func(i, j int) bool {
		return throughputs[i].Bot < throughputs[j].Bot
	})
	return throughputs
}
