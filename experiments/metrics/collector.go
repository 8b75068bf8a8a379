package metrics

import (
	"sync/atomic"
	"time"

	"power4/score"
)

type SearchMetric struct {
	Depth      int
	ForkDepth  int
	Duration   time.Duration
	Nodes      int
	Prunes     int
	Forks      int
	TreeReused bool
	Weight     score.Score
}

type MoveMetric struct {
	Step   int
	Player int // game.Player
	SearchMetric
}

type GameMetric struct {
	StartingPlayer int    // game.Player
	Winner         string // game.Player, "-" for a draw
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

// Collector is shared by every goroutine of one search.
type Collector interface {
	Start(depth, forkDepth int)
	SetTreeReused(value bool)
	AddNode()
	AddPrune()
	AddFork()
	Complete(weight score.Score) SearchMetric
}

type collector struct {
	depth      int
	forkDepth  int
	startTime  time.Time
	nodes      atomic.Int64
	prunes     atomic.Int64
	forks      atomic.Int64
	treeReused atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) SetTreeReused(value bool) {
	m.treeReused.Store(value)
}

func (m *collector) Start(depth, forkDepth int) {
	m.startTime = time.Now()
	m.depth = depth
	m.forkDepth = forkDepth
	m.nodes.Store(0)
	m.prunes.Store(0)
	m.forks.Store(0)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddPrune() {
	m.prunes.Add(1)
}

func (m *collector) AddFork() {
	m.forks.Add(1)
}

func (m *collector) Complete(weight score.Score) SearchMetric {
	return SearchMetric{
		Depth:      m.depth,
		ForkDepth:  m.forkDepth,
		Duration:   time.Since(m.startTime),
		Nodes:      int(m.nodes.Load()),
		Prunes:     int(m.prunes.Load()),
		Forks:      int(m.forks.Load()),
		TreeReused: m.treeReused.Load(),
		Weight:     weight,
	}
}

type dummyCollector struct {
	startTime time.Time
	depth     int
}

// NewDummyCollector only keeps the duration, depth and weight.
func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(depth, forkDepth int) {
	m.startTime = time.Now()
	m.depth = depth
}
func (m *dummyCollector) SetTreeReused(value bool) {}
func (m *dummyCollector) AddNode()                 {}
func (m *dummyCollector) AddPrune()                {}
func (m *dummyCollector) AddFork()                 {}
func (m *dummyCollector) Complete(weight score.Score) SearchMetric {
	return SearchMetric{Depth: m.depth, Duration: time.Since(m.startTime), Weight: weight}
}
