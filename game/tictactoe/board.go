package tictactoe

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/samber/lo"

	"power4/game"
	"power4/score"
)

const Cells = 9

const twoAligned = 10

var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// Board is a 3x3 grid; a move is a cell index from 0 (top left) to 8 (bottom right).
type Board struct {
	cells   [Cells]game.Player
	plies   int
	last    int
	hasLast bool
}

func New() *Board {
	return &Board{}
}

func (b *Board) Clone() *Board {
	c := *b
	return &c
}

func (b *Board) Get(cell int) game.Player {
	if cell < 0 || cell >= Cells {
		return game.None
	}
	return b.cells[cell]
}

func (b *Board) PossibleMoves() []int {
	if _, won := b.Winner(); won {
		return nil
	}
	return lo.Filter(lo.Range(Cells), func(cell int, _ int) bool {
		return b.cells[cell] == game.None
	})
}

func (b *Board) Play(player game.Player, cell int) error {
	if player != game.P1 && player != game.P2 {
		return fmt.Errorf("%w: unknown player %d", game.ErrIllegalMove, player)
	}
	if cell < 0 || cell >= Cells {
		return fmt.Errorf("%w: cell %d out of bounds", game.ErrIllegalMove, cell+1)
	}
	if b.cells[cell] != game.None {
		return fmt.Errorf("%w: cell %d is taken", game.ErrIllegalMove, cell+1)
	}
	b.cells[cell] = player
	b.plies++
	b.last = cell
	b.hasLast = true
	return nil
}

func (b *Board) Winner() (game.Player, bool) {
	for _, line := range lines {
		p := b.cells[line[0]]
		if p != game.None && p == b.cells[line[1]] && p == b.cells[line[2]] {
			return p, true
		}
	}
	return game.None, false
}

func (b *Board) IsFull() bool {
	return b.plies >= Cells
}

// Score counts the lines where a player holds two cells and the third is free.
func (b *Board) Score(player game.Player) score.Score {
	if winner, ok := b.Winner(); ok {
		if winner == player {
			return score.Max
		}
		return score.Min
	}
	total := 0
	for _, line := range lines {
		owner, marks := game.None, 0
		for _, cell := range line {
			switch c := b.cells[cell]; {
			case c == game.None:
			case owner == game.None || owner == c:
				owner = c
				marks++
			default:
				marks = -1
			}
			if marks < 0 {
				break
			}
		}
		if marks != 2 {
			continue
		}
		if owner == player {
			total += twoAligned
		} else {
			total -= twoAligned
		}
	}
	return score.Score(total)
}

func (b *Board) LastMove() (int, bool) {
	return b.last, b.hasLast
}

func (b *Board) Plies() int {
	return b.plies
}

func (b *Board) Hash() uint64 {
	var buf [Cells]byte
	for i, c := range b.cells {
		buf[i] = byte(c)
	}
	return xxhash.Sum64(buf[:])
}

func (b *Board) Render(w io.Writer) error {
	var sb strings.Builder
	for row := 0; row < 3; row++ {
		for column := 0; column < 3; column++ {
			sb.WriteString(b.cells[row*3+column].String() + " ")
		}
		sb.WriteString("\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func (b *Board) String() string {
	var sb strings.Builder
	_ = b.Render(&sb)
	return sb.String()
}

// ParseMove reads a cell numbered from 1 to 9, row by row.
func ParseMove(input string) (int, error) {
	cell, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, fmt.Errorf("please specify a cell from 1 to %d: %w", Cells, err)
	}
	if cell < 1 || cell > Cells {
		return 0, fmt.Errorf("%w: cell %d, please specify a cell from 1 to %d", game.ErrIllegalMove, cell, Cells)
	}
	return cell - 1, nil
}
