package agent

import (
	"errors"

	"power4/experiments/metrics"
)

// ErrQuit is returned by interactive agents when their player gives up.
var ErrQuit = errors.New("player quit")

type Agent[M comparable] interface {
	// Play returns the move the agent wants to make. The agent assumes the move is accepted.
	Play() (M, error)
	// ObserveOpponentMove is told every move of the opponent.
	ObserveOpponentMove(move M) error
}

// Searching agents also report how they found their last move.
type Searching interface {
	LastMetric() metrics.SearchMetric
}

// Interactive agents are asked again after an illegal move instead of losing the game.
type Interactive interface {
	Interactive() bool
}
