package searcher

import (
	"runtime"

	"power4/experiments/metrics"
)

const DefaultForkDepth = 1

type settings struct {
	forkDepth int
	workers   int
	heuristic bool
	winNudge  bool
	pruning   bool
	metrics   metrics.Collector
}

type Option func(s *settings)

// WithForkDepth sets the relative depth at which children are explored in parallel.
// A negative depth explores everything on the calling goroutine.
func WithForkDepth(depth int) Option {
	return func(s *settings) {
		s.forkDepth = depth
	}
}

func WithWorkers(workers int) Option {
	return func(s *settings) {
		if workers > 0 {
			s.workers = workers
		}
	}
}

// WithHeuristicScore scores leaves cut off by the depth budget with the game heuristic
// instead of zero.
func WithHeuristicScore() Option {
	return func(s *settings) {
		s.heuristic = true
	}
}

// WithWinNudge nudges wins found before the depth budget by their distance to the root,
// like wins found at the budget are.
func WithWinNudge() Option {
	return func(s *settings) {
		s.winNudge = true
	}
}

// WithoutPruning visits every node. Only useful as a reference.
func WithoutPruning() Option {
	return func(s *settings) {
		s.pruning = false
	}
}

func WithMetrics() Option {
	return func(s *settings) {
		s.metrics = metrics.NewCollector()
	}
}

func newSettings(options []Option) settings {
	s := settings{ // Default values
		forkDepth: DefaultForkDepth,
		workers:   runtime.NumCPU(),
		pruning:   true,
		metrics:   metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(&s)
	}
	return s
}
