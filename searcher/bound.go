package searcher

import (
	"sync"

	"power4/score"
)

// bound is the running value of a node while its children are explored.
// It is shared with the children so they can stop as soon as the node's
// chooser would never pick them.
type bound struct {
	sync.RWMutex
	value    score.Score
	maximize bool
}

// newBound starts from the worst value for the chooser.
func newBound(maximize bool) *bound {
	b := &bound{value: score.Max, maximize: maximize}
	if maximize {
		b.value = score.Min
	}
	return b
}

// offer keeps v when it is strictly better for the chooser.
func (b *bound) offer(v score.Score) {
	b.Lock()
	defer b.Unlock()

	if (b.maximize && v > b.value) || (!b.maximize && v < b.value) {
		b.value = v
	}
}

func (b *bound) get() score.Score {
	b.RLock()
	defer b.RUnlock()

	return b.value
}

// excludes reports whether v is strictly worse than what the chooser already has.
// Ties are not excluded so the first child reaching the best value stays the first match.
func (b *bound) excludes(v score.Score) bool {
	b.RLock()
	defer b.RUnlock()

	if b.maximize {
		return v < b.value
	}
	return v > b.value
}
