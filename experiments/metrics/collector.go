package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Tries        int
	Budget       time.Duration
	Duration     time.Duration
	Episodes     int
	TerminalHits int // Episodes that ended on an already decided position
	FullPlayouts int
}

type MoveMetric struct {
	Step   int
	Player string // Color name
	Bot    string // Bot description
	Column int
	SearchMetric
}

type GameMetric struct {
	Red        string // Bot description
	Black      string // Bot description
	Winner     string // Color name, "draw" if nobody won
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

// Reporter is implemented by bots that keep metrics of their last search.
type Reporter interface {
	LastSearch() SearchMetric
}

type Collector interface {
	Start(tries int, budget time.Duration)
	AddEpisode()
	AddTerminalHit()
	AddFullPlayout()
	Complete() SearchMetric
}

type collector struct {
	tries        int
	budget       time.Duration
	startTime    time.Time
	episodes     atomic.Int32
	terminalHits atomic.Int32
	fullPlayouts atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(tries int, budget time.Duration) {
	m.tries = tries
	m.budget = budget
	m.startTime = time.Now()
	m.episodes.Store(0)
	m.terminalHits.Store(0)
	m.fullPlayouts.Store(0)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) AddTerminalHit() {
	m.terminalHits.Add(1)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Tries:        m.tries,
		Budget:       m.budget,
		Duration:     time.Since(m.startTime),
		Episodes:     int(m.episodes.Load()),
		TerminalHits: int(m.terminalHits.Load()),
		FullPlayouts: int(m.fullPlayouts.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(tries int, budget time.Duration) {}
func (m *dummyCollector) AddEpisode()                           {}
func (m *dummyCollector) AddTerminalHit()                       {}
func (m *dummyCollector) AddFullPlayout()                       {}
func (m *dummyCollector) Complete() SearchMetric                { return SearchMetric{} }
