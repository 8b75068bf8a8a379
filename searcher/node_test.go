package searcher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"power4/game"
	"power4/game/connect4"
	"power4/game/tictactoe"
)

func TestPhase(t *testing.T) {
	t.Run("first node has no last move", func(t *testing.T) {
		phase := NewRoot(tictactoe.New(), game.P1).Phase()
		_, ok := phase.LastMove()
		require.False(t, ok)
		require.Equal(t, Turn, phase.Kind())
		require.Equal(t, game.P2, phase.LastPlayer())
	})

	t.Run("terminal transitions", func(t *testing.T) {
		turn := NewTurn(game.P2, 4, true)

		draw := turn.ToDraw()
		require.Equal(t, Draw, draw.Kind())
		require.Equal(t, game.P1, draw.LastPlayer(), "Draw keeps who played last")
		require.Equal(t, 4, moveOf(draw))

		won := turn.ToWonBy(game.P1)
		require.Equal(t, WonBy, won.Kind())
		require.Equal(t, game.P1, won.Player())
		require.True(t, won.IsTerminal())

		require.Panics(t, func() { draw.ToWonBy(game.P1) }, "Terminal phases cannot change")
		require.Panics(t, func() { won.ToDraw() }, "Terminal phases cannot change")
	})
}

func TestNodeExpand(t *testing.T) {
	b := connect4.New()
	require.NoError(t, b.Play(game.P1, 0))
	root := NewRoot(b, game.P2)

	require.True(t, root.expand())
	require.Equal(t, connect4.Columns, root.Len())
	for i, child := range root.Children() {
		require.Equal(t, root.Depth()+1, child.Depth(), "Children are one ply deeper")
		require.Equal(t, game.P1, child.Phase().Player())
		require.Equal(t, i, moveOf(child.Phase()), "Children follow move generation order")
		_, ok := child.State()
		require.False(t, ok, "Child state is built on demand")
	}

	child, ok := root.Child(0)
	require.True(t, ok)
	child.materialize(b)
	require.Equal(t, game.P2, child.MustState().Get(4, 0))
	require.Equal(t, 1, b.Plies(), "Materializing does not touch the parent state")
}

func TestSplice(t *testing.T) {
	t.Run("matching child is reused", func(t *testing.T) {
		b := connect4.New()
		root := NewRoot(b, game.P1)
		New[*connect4.Board, int](game.P1, 3).Explore(root, 0)
		grandchildren := root.Children()[2].Len()

		matched, next := root.Splice(2)

		require.True(t, matched)
		expected := b.Clone()
		require.NoError(t, expected.Play(game.P1, 2))
		require.Equal(t, expected, next.MustState(), "Spliced state equals the direct application of the move")
		require.Equal(t, 1, next.Depth())
		require.Equal(t, grandchildren, next.Len(), "Explored subtree is kept")
		require.Equal(t, 0, root.Len(), "Old root gives up its children")
	})

	t.Run("unknown move returns the same root", func(t *testing.T) {
		b := tictactoe.New()
		root := NewRoot(b, game.P1)

		matched, next := root.Splice(4)

		require.False(t, matched, "Unexplored root has no child to reuse")
		require.Same(t, root, next)
	})

	t.Run("spliced root can be explored", func(t *testing.T) {
		b := tictactoe.New()
		root := NewRoot(b, game.P1)
		s := New[*tictactoe.Board, int](game.P1, 2)
		s.Explore(root, 0)

		_, next := root.Splice(4)
		require.Equal(t, Turn, next.Phase().Kind())
		require.NotPanics(t, func() { s.Explore(next, 1) })
		_, ok := next.Weight()
		require.True(t, ok)
	})
}

func TestSelectBest(t *testing.T) {
	t.Run("unweighted root panics", func(t *testing.T) {
		root := NewRoot(tictactoe.New(), game.P1)
		require.Panics(t, func() { SelectBest(root) })
	})

	t.Run("root without children panics", func(t *testing.T) {
		root := NewRoot(tictactoe.New(), game.P1)
		root.setWeight(0)
		require.Panics(t, func() { SelectBest(root) })
	})

	t.Run("first match wins ties", func(t *testing.T) {
		b := tictactoe.New()
		root := NewRoot(b, game.P1)
		New[*tictactoe.Board, int](game.P1, 1).Explore(root, 0)

		best := SelectBest(root)

		require.Equal(t, 0, moveOf(best.Phase()), "Every cell scores zero at depth one")
	})
}

func TestDump(t *testing.T) {
	b := tictactoe.New()
	root := NewRoot(b, game.P1)
	New[*tictactoe.Board, int](game.P1, 3, WithoutPruning()).Explore(root, 0)

	require.Equal(t, 3, root.Height())
	require.Equal(t, 1+9+9*8+9*8*7, root.Size())

	var sb strings.Builder
	require.NoError(t, root.Dump(&sb, 1))
	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	require.Equal(t, 1+9*2, len(lines), "Each child is followed by a line counting its hidden children")
	require.True(t, strings.HasPrefix(lines[0], "turn(1) depth=0"))
	require.Equal(t, "    (2 not shown)", lines[2], "Hidden subtrees are counted in plies")
}
