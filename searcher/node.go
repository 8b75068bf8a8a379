package searcher

import (
	"fmt"
	"io"
	"strings"

	"power4/game"
	"power4/score"
)

// Node is one ply of the search tree.
// Interior nodes drop their state once explored and rebuild it by replaying
// their last move on the parent's state.
type Node[S game.State[S, M], M comparable] struct {
	depth    int // plies since the start of the game
	weight   score.Score
	weighted bool
	state    S
	hasState bool
	phase    Phase[M]
	moves    []M
	children []*Node[S, M]
}

// NewRoot creates the node of the current position with toMove to play.
func NewRoot[S game.State[S, M], M comparable](state S, toMove game.Player) *Node[S, M] {
	return NewRootAt(state, toMove, state.Plies())
}

func NewRootAt[S game.State[S, M], M comparable](state S, toMove game.Player, depth int) *Node[S, M] {
	last, ok := state.LastMove()
	return &Node[S, M]{
		depth:    depth,
		state:    state,
		hasState: true,
		phase:    NewTurn(toMove, last, ok),
	}
}

// newChild tags a child with move. Its state is built when the child is visited.
func (n *Node[S, M]) newChild(move M) *Node[S, M] {
	return &Node[S, M]{
		depth: n.depth + 1,
		phase: NewTurn(n.phase.player.Other(), move, true),
	}
}

// expand creates one child per possible move unless children are left from a previous search.
// It returns false when there is no move to play.
func (n *Node[S, M]) expand() bool {
	if len(n.children) > 0 {
		return true
	}
	moves := n.state.PossibleMoves()
	if len(moves) == 0 {
		return false
	}
	n.moves = moves
	n.children = make([]*Node[S, M], 0, len(moves))
	for _, move := range moves {
		n.children = append(n.children, n.newChild(move))
	}
	return true
}

// materialize rebuilds the state from the parent's state when it was released.
func (n *Node[S, M]) materialize(parent S) {
	if n.hasState {
		return
	}
	move, ok := n.phase.LastMove()
	if !ok {
		panic("node without last move has no state")
	}
	state := parent.Clone()
	if err := state.Play(n.phase.LastPlayer(), move); err != nil {
		panic(fmt.Sprintf("failed to replay move %v: %v", move, err))
	}
	n.state = state
	n.hasState = true
}

func (n *Node[S, M]) release() {
	var zero S
	n.state = zero
	n.hasState = false
}

func (n *Node[S, M]) clearChildren() {
	n.moves = nil
	n.children = nil
}

func (n *Node[S, M]) setWeight(weight score.Score) {
	n.weight = weight
	n.weighted = true
}

// Splice returns the child reached by move with its state rebuilt. The receiver must
// not be used afterwards. Without such a child it returns false and the receiver.
func (n *Node[S, M]) Splice(move M) (bool, *Node[S, M]) {
	for i, m := range n.moves {
		if m != move {
			continue
		}
		child := n.children[i]
		child.materialize(n.state)
		n.clearChildren()
		return true, child
	}
	return false, n
}

func (n *Node[S, M]) Depth() int {
	return n.depth
}

func (n *Node[S, M]) Weight() (score.Score, bool) {
	return n.weight, n.weighted
}

func (n *Node[S, M]) State() (S, bool) {
	return n.state, n.hasState
}

func (n *Node[S, M]) MustState() S {
	if !n.hasState {
		panic("node has no state")
	}
	return n.state
}

func (n *Node[S, M]) Phase() Phase[M] {
	return n.phase
}

// Children are in move generation order. The slice must not be modified.
func (n *Node[S, M]) Children() []*Node[S, M] {
	return n.children
}

func (n *Node[S, M]) Child(move M) (*Node[S, M], bool) {
	for i, m := range n.moves {
		if m == move {
			return n.children[i], true
		}
	}
	return nil, false
}

func (n *Node[S, M]) Len() int {
	return len(n.children)
}

// Size counts the nodes of the subtree, n included.
func (n *Node[S, M]) Size() int {
	size := 1
	for _, child := range n.children {
		size += child.Size()
	}
	return size
}

// Height is the number of plies below n, 0 for a leaf.
func (n *Node[S, M]) Height() int {
	height := 0
	for _, child := range n.children {
		height = max(height, child.Height()+1)
	}
	return height
}

// Dump writes the subtree, one node per line, down to maxDepth plies below n.
// Deeper subtrees are replaced by the number of plies they span.
func (n *Node[S, M]) Dump(w io.Writer, maxDepth int) error {
	return n.dump(w, 0, maxDepth)
}

func (n *Node[S, M]) dump(w io.Writer, level, maxDepth int) error {
	weight := "?"
	if n.weighted {
		weight = n.weight.String()
	}
	indent := strings.Repeat("  ", level)
	_, err := fmt.Fprintf(w, "%s%s depth=%d weight=%s\n", indent, n.phase, n.depth, weight)
	if err != nil {
		return err
	}
	if len(n.children) == 0 {
		return nil
	}
	if level >= maxDepth {
		_, err = fmt.Fprintf(w, "%s  (%d not shown)\n", indent, n.Height())
		return err
	}
	for _, child := range n.children {
		if err := child.dump(w, level+1, maxDepth); err != nil {
			return err
		}
	}
	return nil
}
