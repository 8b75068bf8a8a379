package agent

import (
	"golang.org/x/exp/rand"

	"power4/game"
)

// Random plays a uniformly random legal move.
type Random[S game.State[S, M], M comparable] struct {
	player game.Player
	state  S
	rng    *rand.Rand
}

func NewRandom[S game.State[S, M], M comparable](state S, player game.Player, seed uint64) *Random[S, M] {
	return &Random[S, M]{
		player: player,
		state:  state.Clone(),
		rng:    rand.New(rand.NewSource(seed)),
	}
}

func (r *Random[S, M]) Play() (M, error) {
	var none M
	if _, won := r.state.Winner(); won {
		return none, game.ErrGameOver
	}
	moves := r.state.PossibleMoves()
	if len(moves) == 0 {
		return none, game.ErrGameOver
	}
	move := moves[r.rng.Intn(len(moves))]
	if err := r.state.Play(r.player, move); err != nil {
		return none, err
	}
	return move, nil
}

func (r *Random[S, M]) ObserveOpponentMove(move M) error {
	return r.state.Play(r.player.Other(), move)
}
