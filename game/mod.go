package game

import (
	"errors"

	"power4/score"
)

var (
	ErrIllegalMove = errors.New("illegal move")
	ErrGameOver    = errors.New("game is over - no moves allowed")
)

// State is the capability a two-player game exposes to the searcher.
// Play must leave the state untouched when it returns an error.
type State[S any, M comparable] interface {
	Clone() S
	// PossibleMoves lists the legal moves, none once the game is won. The order defines
	// tie-break priority and may differ between calls.
	PossibleMoves() []M
	Play(player Player, move M) error
	Winner() (Player, bool)
	IsFull() bool
	// Score evaluates the position from player's point of view, higher is better.
	Score(player Player) score.Score
	LastMove() (M, bool)
	// Plies is the number of moves played since the start of the game.
	Plies() int
}
