package searcher

import (
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"power4/experiments/metrics"
	"power4/game"
	"power4/score"
)

// Searcher runs a depth-bounded minimax search for one player.
type Searcher[S game.State[S, M], M comparable] struct {
	settings
	player game.Player
	depth  int
}

func New[S game.State[S, M], M comparable](player game.Player, depth int, options ...Option) *Searcher[S, M] {
	if depth < 1 {
		panic(fmt.Sprintf("search depth must be positive, got %d", depth))
	}
	return &Searcher[S, M]{
		settings: newSettings(options),
		player:   player,
		depth:    depth,
	}
}

func (s *Searcher[S, M]) Player() game.Player {
	return s.player
}

func (s *Searcher[S, M]) Depth() int {
	return s.depth
}

// SetTreeReused records in the next metric whether the root was spliced from a previous search.
func (s *Searcher[S, M]) SetTreeReused(value bool) {
	s.metrics.SetTreeReused(value)
}

// Explore weights the tree below root down to plies+depth, plies being the number of
// moves actually played in the game. The root keeps its children and its state.
func (s *Searcher[S, M]) Explore(root *Node[S, M], plies int) metrics.SearchMetric {
	if root.phase.kind != Turn {
		panic(fmt.Sprintf("cannot explore a node in phase %s", root.phase))
	}
	if !root.hasState {
		panic("root has no state")
	}

	s.metrics.Start(s.depth, s.forkDepth)
	// Nothing above the root: its bound never excludes anything.
	above := newBound(root.phase.player != s.player)
	var none S
	weight := s.visit(root, none, above, plies)
	metric := s.metrics.Complete(weight)

	log.Debug().
		Int("depth", s.depth).
		Int("plies", plies).
		Int("nodes", metric.Nodes).
		Int("prunes", metric.Prunes).
		Str("weight", weight.String()).
		Msgf("explored in %s", metric.Duration)
	return metric
}

// visit weights n and returns its weight. parent is the state n is rebuilt from,
// above the bound of n's parent.
func (s *Searcher[S, M]) visit(n *Node[S, M], parent S, above *bound, plies int) score.Score {
	n.materialize(parent)
	s.metrics.AddNode()

	weight, ok := s.resolve(n, plies)
	if ok {
		n.clearChildren()
	} else {
		weight = s.explore(n, above, plies)
	}
	n.setWeight(weight)
	return weight
}

// resolve weights the leaves: cut off by depth, won, drawn.
func (s *Searcher[S, M]) resolve(n *Node[S, M], plies int) (score.Score, bool) {
	distance := n.depth - plies
	winner, won := n.state.Winner()

	if n.depth >= plies+s.depth {
		switch {
		case won:
			return s.outcome(winner).NudgeTowardZero(distance), true
		case s.heuristic:
			return n.state.Score(s.player).NudgeTowardZero(distance), true
		}
		return score.Zero, true
	}

	if won {
		if n.phase.kind == Turn {
			n.phase = n.phase.ToWonBy(winner)
		}
		weight := s.outcome(winner)
		if s.winNudge {
			weight = weight.NudgeTowardZero(distance)
		}
		return weight, true
	}

	if n.state.IsFull() || !n.expand() {
		if n.phase.kind == Turn {
			n.phase = n.phase.ToDraw()
		}
		return score.Min.Halve(), true
	}
	return 0, false
}

func (s *Searcher[S, M]) outcome(winner game.Player) score.Score {
	if winner == s.player {
		return score.Max
	}
	return score.Min
}

// explore visits the children of an expanded node. It stops early once above shows
// the parent would never choose n, in which case the children are dropped and n keeps
// the value reached so far.
func (s *Searcher[S, M]) explore(n *Node[S, M], above *bound, plies int) score.Score {
	own := newBound(n.phase.player == s.player)
	visitChild := func(child *Node[S, M]) (abort bool) {
		weight := s.visit(child, n.state, own, plies)
		child.release()
		own.offer(weight)
		return s.pruning && above.excludes(own.get())
	}

	aborted := false
	if n.depth-plies == s.forkDepth && len(n.children) > 1 {
		aborted = s.fanOut(n.children, visitChild)
	} else {
		for _, child := range n.children {
			if visitChild(child) {
				aborted = true
				break
			}
		}
	}

	if aborted {
		s.metrics.AddPrune()
		n.clearChildren()
	}
	return own.get()
}

// fanOut visits children on a pool of workers. Once a child asks to abort no more
// children are started; those already running finish.
func (s *Searcher[S, M]) fanOut(children []*Node[S, M], visit func(*Node[S, M]) bool) bool {
	var aborted atomic.Bool
	var g errgroup.Group
	g.SetLimit(s.workers)

	for _, child := range children {
		child := child
		if aborted.Load() {
			break
		}
		s.metrics.AddFork()
		g.Go(func() error {
			if !aborted.Load() && visit(child) {
				aborted.Store(true)
			}
			return nil
		})
	}
	_ = g.Wait()
	return aborted.Load()
}
