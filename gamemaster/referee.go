package gamemaster

import (
	"fmt"

	"github.com/samber/lo"

	"power4/game"
)

type Outcome struct {
	Over   bool
	Winner game.Player // game.None for a draw
}

func (o Outcome) String() string {
	switch {
	case !o.Over:
		return "in progress"
	case o.Winner == game.None:
		return "draw"
	}
	return fmt.Sprintf("player %s won", o.Winner)
}

type Turn[M comparable] struct {
	Player game.Player
	Move   M
}

// Referee owns the authoritative state of one game and checks every move against it.
type Referee[S game.State[S, M], M comparable] struct {
	state   S
	current game.Player
	history []Turn[M]
	outcome Outcome
}

func NewReferee[S game.State[S, M], M comparable](state S, first game.Player) *Referee[S, M] {
	r := &Referee[S, M]{
		state:   state.Clone(),
		current: first,
	}
	r.outcome = r.judge()
	return r
}

func (r *Referee[S, M]) Play(player game.Player, move M) error {
	if r.outcome.Over {
		return game.ErrGameOver
	}
	if player != r.current {
		return fmt.Errorf("%w: it is player %s's turn, not player %s's", game.ErrIllegalMove, r.current, player)
	}
	if !lo.Contains(r.state.PossibleMoves(), move) {
		return fmt.Errorf("%w: %v is not a possible move", game.ErrIllegalMove, move)
	}

	if err := r.state.Play(player, move); err != nil {
		return err
	}
	r.history = append(r.history, Turn[M]{Player: player, Move: move})
	r.current = player.Other()
	r.outcome = r.judge()
	return nil
}

func (r *Referee[S, M]) judge() Outcome {
	if winner, won := r.state.Winner(); won {
		return Outcome{Over: true, Winner: winner}
	}
	if r.state.IsFull() || len(r.state.PossibleMoves()) == 0 {
		return Outcome{Over: true}
	}
	return Outcome{}
}

func (r *Referee[S, M]) Outcome() Outcome {
	return r.outcome
}

// Current is the player to move.
func (r *Referee[S, M]) Current() game.Player {
	return r.current
}

func (r *Referee[S, M]) History() []Turn[M] {
	return r.history
}

// State returns a copy of the game state.
func (r *Referee[S, M]) State() S {
	return r.state.Clone()
}
