package searcher

import (
	"fmt"

	"power4/game"
)

type PhaseKind uint8

const (
	Turn PhaseKind = iota
	Draw
	WonBy
)

func (k PhaseKind) String() string {
	switch k {
	case Turn:
		return "turn"
	case Draw:
		return "draw"
	case WonBy:
		return "won"
	}
	return fmt.Sprintf("phase(%d)", uint8(k))
}

// Phase tells what a node stands for:
//   - Turn: player is to move
//   - Draw: player made the last move and the game ended without winner
//   - WonBy: player won with the last move
//
// The last move is missing only on the first node of a game.
type Phase[M comparable] struct {
	kind     PhaseKind
	player   game.Player
	lastMove M
	hasLast  bool
}

func NewTurn[M comparable](player game.Player, lastMove M, hasLast bool) Phase[M] {
	return Phase[M]{kind: Turn, player: player, lastMove: lastMove, hasLast: hasLast}
}

func (p Phase[M]) Kind() PhaseKind {
	return p.kind
}

func (p Phase[M]) Player() game.Player {
	return p.player
}

func (p Phase[M]) LastMove() (M, bool) {
	return p.lastMove, p.hasLast
}

// LastPlayer is the player who made the last move.
func (p Phase[M]) LastPlayer() game.Player {
	if p.kind == Turn {
		return p.player.Other()
	}
	return p.player
}

func (p Phase[M]) IsTerminal() bool {
	return p.kind != Turn
}

func (p Phase[M]) ToDraw() Phase[M] {
	if p.kind != Turn {
		panic(fmt.Sprintf("cannot draw from phase %s", p))
	}
	return Phase[M]{kind: Draw, player: p.player.Other(), lastMove: p.lastMove, hasLast: p.hasLast}
}

func (p Phase[M]) ToWonBy(winner game.Player) Phase[M] {
	if p.kind != Turn {
		panic(fmt.Sprintf("cannot win from phase %s", p))
	}
	return Phase[M]{kind: WonBy, player: winner, lastMove: p.lastMove, hasLast: p.hasLast}
}

func (p Phase[M]) String() string {
	if !p.hasLast {
		return fmt.Sprintf("%s(%s)", p.kind, p.player)
	}
	return fmt.Sprintf("%s(%s, %v)", p.kind, p.player, p.lastMove)
}
