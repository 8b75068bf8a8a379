package connect4

import (
	"errors"
	"strings"
	"testing"

	"github.com/matryer/is"

	"power4/game"
	"power4/score"
)

type play struct {
	player game.Player
	column int
}

func playAll(t *testing.T, b *Board, plays []play) {
	t.Helper()
	for _, p := range plays {
		if err := b.Play(p.player, p.column); err != nil {
			t.Fatalf("playing %+v: %v", p, err)
		}
	}
}

func TestPlayStacksDiscs(t *testing.T) {
	is := is.New(t)
	b := New()

	is.NoErr(b.Play(game.P1, 3))
	is.NoErr(b.Play(game.P2, 3))

	is.Equal(b.Get(5, 3), game.P1)
	is.Equal(b.Get(4, 3), game.P2)
	is.Equal(b.Plies(), 2)
	last, ok := b.LastMove()
	is.True(ok)
	is.Equal(last, 3)
}

func TestPlayRejectsIllegalMoves(t *testing.T) {
	is := is.New(t)
	b := New()
	player := game.P1
	for i := 0; i < Rows; i++ {
		is.NoErr(b.Play(player, 0))
		player = player.Other()
	}
	before := *b

	err := b.Play(game.P2, 0)
	is.True(errors.Is(err, game.ErrIllegalMove)) // full column
	err = b.Play(game.P2, Columns)
	is.True(errors.Is(err, game.ErrIllegalMove)) // out of bounds
	is.Equal(*b, before)                         // failed plays leave the board untouched
	is.Equal(len(b.PossibleMoves()), Columns-1)
}

func TestWinnerDiagonal(t *testing.T) {
	is := is.New(t)
	b := New()
	for i := 0; i < 2; i++ {
		for column := 0; column < Columns; column++ {
			is.NoErr(b.Play(game.P1, column))
		}
	}
	playAll(t, b, []play{
		{game.P1, 1}, {game.P1, 2}, {game.P1, 3}, {game.P1, 2}, {game.P1, 3}, {game.P1, 3},
		{game.P2, 0}, {game.P2, 1}, {game.P2, 2}, {game.P2, 3},
	})

	winner, ok := b.Winner()
	is.True(ok)
	is.Equal(winner, game.P2)
	line, _ := b.WinningLine()
	is.Equal(len(line), Connect)
}

func TestWinnerDiagonalDown(t *testing.T) {
	is := is.New(t)
	b := New()
	// - - - - - - -
	// - - - - - - -
	// 1 - 1 - - - -
	// 2 1 2 1 - - -
	// 2 1 1 2 - - -
	// 2 2 2 1 - - -
	playAll(t, b, []play{
		{game.P2, 0}, {game.P2, 1}, {game.P2, 2}, {game.P1, 3},
		{game.P2, 0}, {game.P1, 1}, {game.P1, 2}, {game.P2, 3},
		{game.P1, 1}, {game.P2, 2}, {game.P1, 2}, {game.P1, 3},
		{game.P2, 0}, {game.P1, 0},
	})

	last, _ := b.LastMove()
	is.Equal(last, 0)
	winner, ok := b.Winner()
	is.True(ok)
	is.Equal(winner, game.P1)
}

func TestNoWinner(t *testing.T) {
	is := is.New(t)
	b := New()
	playAll(t, b, []play{{game.P1, 0}, {game.P1, 1}, {game.P1, 2}, {game.P2, 3}})

	_, ok := b.Winner()
	is.True(!ok)
}

func TestNoMovesOnceWon(t *testing.T) {
	is := is.New(t)
	b := New()
	playAll(t, b, []play{{game.P1, 0}, {game.P2, 1}, {game.P1, 0}, {game.P2, 1}, {game.P1, 0}, {game.P2, 1}})
	is.Equal(len(b.PossibleMoves()), Columns)

	is.NoErr(b.Play(game.P1, 0))
	_, won := b.Winner()
	is.True(won)
	is.Equal(len(b.PossibleMoves()), 0) // same as a full board
}

func TestIsFull(t *testing.T) {
	is := is.New(t)
	b := New()
	player := game.P1
	for column := 0; column < Columns; column++ {
		for row := 0; row < Rows; row++ {
			is.True(!b.IsFull())
			is.NoErr(b.Play(player, column))
			player = player.Other()
		}
	}
	is.True(b.IsFull())
	is.Equal(len(b.PossibleMoves()), 0)
}

func TestScore(t *testing.T) {
	is := is.New(t)
	b := New()
	is.Equal(b.Score(game.P1), score.Zero)

	playAll(t, b, []play{{game.P1, 3}, {game.P1, 4}})
	is.Equal(b.Score(game.P1), score.Score(3*twoAligned)) // three horizontal windows hold both discs
	is.Equal(b.Score(game.P2), score.Score(-3*twoAligned))

	playAll(t, b, []play{{game.P1, 5}, {game.P1, 6}})
	is.Equal(b.Score(game.P1), score.Max)
	is.Equal(b.Score(game.P2), score.Min)
}

func TestScoreIsSymmetric(t *testing.T) {
	is := is.New(t)
	b := New()
	player := game.P1
	for _, column := range []int{3, 3, 2, 4, 4, 1, 5, 2, 6, 0, 2} {
		is.NoErr(b.Play(player, column))
		player = player.Other()
		if _, won := b.Winner(); won {
			break
		}
		is.Equal(b.Score(game.P1), -b.Score(game.P2))
	}
}

func TestShuffledMovesKeepTheSameSet(t *testing.T) {
	is := is.New(t)
	b := New(WithShuffledMoves())
	is.NoErr(b.Play(game.P1, 2))

	moves := b.PossibleMoves()
	is.Equal(len(moves), Columns)
	seen := map[int]bool{}
	for _, m := range moves {
		seen[m] = true
	}
	is.Equal(len(seen), Columns)
}

func TestCloneIsIndependent(t *testing.T) {
	is := is.New(t)
	b := New()
	is.NoErr(b.Play(game.P1, 0))
	c := b.Clone()
	is.NoErr(c.Play(game.P2, 0))

	is.Equal(b.Plies(), 1)
	is.Equal(c.Plies(), 2)
	is.True(b.Hash() != c.Hash())

	same := New()
	is.NoErr(same.Play(game.P1, 0))
	is.Equal(b.Hash(), same.Hash())
}

func TestParseMove(t *testing.T) {
	is := is.New(t)
	column, err := ParseMove(" 7\n")
	is.NoErr(err)
	is.Equal(column, 6)

	_, err = ParseMove("0")
	is.True(errors.Is(err, game.ErrIllegalMove))
	_, err = ParseMove("abc")
	is.True(err != nil)
}

func TestRender(t *testing.T) {
	is := is.New(t)
	b := New()
	is.NoErr(b.Play(game.P2, 6))

	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	is.Equal(len(lines), Rows+1)
	is.Equal(lines[0], "1 2 3 4 5 6 7 ")
	is.Equal(lines[Rows], "- - - - - - 2 ")
}
