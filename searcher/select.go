package searcher

import (
	"fmt"

	"power4/game"
)

// SelectBest returns the first child, in move generation order, whose weight is the
// root's weight. Its state is rebuilt if it was released.
func SelectBest[S game.State[S, M], M comparable](root *Node[S, M]) *Node[S, M] {
	if !root.weighted {
		panic("cannot select from an unweighted node")
	}
	if len(root.children) == 0 {
		panic("node has no children")
	}

	for _, child := range root.children {
		if child.weighted && child.weight == root.weight {
			child.materialize(root.state)
			return child
		}
	}
	panic(fmt.Sprintf("no child has the root weight %s", root.weight))
}
