package agent

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"power4/game"
)

// LineReader is satisfied by *readline.Instance.
type LineReader interface {
	Readline() (string, error)
}

// Human asks a person for moves.
type Human[M comparable] struct {
	player game.Player
	in     LineReader
	out    io.Writer
	parse  func(string) (M, error)
}

func NewHuman[M comparable](player game.Player, in LineReader, out io.Writer, parse func(string) (M, error)) *Human[M] {
	return &Human[M]{player: player, in: in, out: out, parse: parse}
}

// Play reads lines until one parses as a move. "exit", "bye", ^C and EOF give up.
func (h *Human[M]) Play() (M, error) {
	var none M
	for {
		fmt.Fprintf(h.out, "player %s, your move:\n", h.player)
		line, err := h.in.Readline()
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return none, ErrQuit
		}
		if err != nil {
			return none, fmt.Errorf("failed to read move: %w", err)
		}

		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case "exit", "bye":
			return none, ErrQuit
		}
		move, err := h.parse(line)
		if err != nil {
			fmt.Fprintf(h.out, "Invalid move: %v\n", err)
			continue
		}
		return move, nil
	}
}

func (h *Human[M]) ObserveOpponentMove(move M) error {
	return nil
}

func (h *Human[M]) Interactive() bool {
	return true
}
