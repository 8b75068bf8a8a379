package connect4

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/samber/lo"
	"lukechampine.com/frand"

	"power4/game"
	"power4/score"
)

const (
	Rows    = 6
	Columns = 7
	Connect = 4 // should be 4 for connect-4
)

// Weights of a window of Connect cells holding discs of a single player.
const (
	twoAligned   = 5
	threeAligned = 25
)

// Half of the line directions as (row, column) steps; the other half is their opposite.
var directions = [4][2]int{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{1, 1},  // diagonal down
	{-1, 1}, // diagonal up
}

type Option func(b *Board)

// WithShuffledMoves makes PossibleMoves return the playable columns in random order.
func WithShuffledMoves() Option {
	return func(b *Board) {
		b.shuffle = true
	}
}

// Board is a 6x7 connect-four grid. Row 0 is the top row; a move is a column index.
type Board struct {
	cells   [Rows][Columns]game.Player
	plies   int
	last    [2]int
	hasLast bool
	shuffle bool
}

func New(options ...Option) *Board {
	b := &Board{}
	for _, option := range options {
		option(b)
	}
	return b
}

func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// Get returns the disc at (row, column), game.None when empty or out of bounds.
func (b *Board) Get(row, column int) game.Player {
	if row < 0 || row >= Rows || column < 0 || column >= Columns {
		return game.None
	}
	return b.cells[row][column]
}

func (b *Board) PossibleMoves() []int {
	if _, won := b.Winner(); won {
		return nil
	}
	moves := lo.Filter(lo.Range(Columns), func(column int, _ int) bool {
		return b.cells[0][column] == game.None
	})
	if b.shuffle {
		frand.Shuffle(len(moves), func(i, j int) {
			moves[i], moves[j] = moves[j], moves[i]
		})
	}
	return moves
}

func (b *Board) Play(player game.Player, column int) error {
	if player != game.P1 && player != game.P2 {
		return fmt.Errorf("%w: unknown player %d", game.ErrIllegalMove, player)
	}
	if column < 0 || column >= Columns {
		return fmt.Errorf("%w: column %d out of bounds", game.ErrIllegalMove, column+1)
	}
	for row := Rows - 1; row >= 0; row-- {
		if b.cells[row][column] == game.None {
			b.cells[row][column] = player
			b.plies++
			b.last = [2]int{row, column}
			b.hasLast = true
			return nil
		}
	}
	return fmt.Errorf("%w: column %d is full", game.ErrIllegalMove, column+1)
}

// Winner only looks at lines passing through the last disc: a game stops at its first alignment.
func (b *Board) Winner() (game.Player, bool) {
	line, ok := b.WinningLine()
	if !ok {
		return game.None, false
	}
	return b.cells[line[0][0]][line[0][1]], true
}

// WinningLine returns the cells of the alignment made by the last disc.
func (b *Board) WinningLine() ([][2]int, bool) {
	if !b.hasLast {
		return nil, false
	}
	row, column := b.last[0], b.last[1]
	player := b.cells[row][column]
	for _, d := range directions {
		forward := b.countInDirection(row, column, d[0], d[1], player)
		backward := b.countInDirection(row, column, -d[0], -d[1], player)
		if 1+forward+backward < Connect {
			continue
		}
		line := make([][2]int, 0, 1+forward+backward)
		for i := -backward; i <= forward; i++ {
			line = append(line, [2]int{row + i*d[0], column + i*d[1]})
		}
		return line, true
	}
	return nil, false
}

// countInDirection counts the player's discs next to (row, column), not counting the start cell.
func (b *Board) countInDirection(row, column, dRow, dColumn int, player game.Player) int {
	count := 0
	for {
		row += dRow
		column += dColumn
		if b.Get(row, column) != player || player == game.None {
			return count
		}
		count++
	}
}

func (b *Board) IsFull() bool {
	for column := 0; column < Columns; column++ {
		if b.cells[0][column] == game.None {
			return false
		}
	}
	return true
}

// Score sums, for every window of Connect cells held by a single player, 5 for two discs
// and 25 for three, and returns the player's total minus the opponent's.
func (b *Board) Score(player game.Player) score.Score {
	if winner, ok := b.Winner(); ok {
		if winner == player {
			return score.Max
		}
		return score.Min
	}

	totals := map[game.Player]int{}
	for row := 0; row < Rows; row++ {
		for column := 0; column < Columns; column++ {
			for _, d := range directions {
				endRow, endColumn := row+(Connect-1)*d[0], column+(Connect-1)*d[1]
				if endRow < 0 || endRow >= Rows || endColumn < 0 || endColumn >= Columns {
					continue
				}
				owner, discs := b.window(row, column, d)
				switch discs {
				case 2:
					totals[owner] += twoAligned
				case 3:
					totals[owner] += threeAligned
				case Connect:
					if owner == player {
						return score.Max
					}
					return score.Min
				}
			}
		}
	}
	return score.Score(totals[player] - totals[player.Other()])
}

// window reports the only player owning discs in the window and how many, or (None, 0) when mixed.
func (b *Board) window(row, column int, d [2]int) (game.Player, int) {
	owner := game.None
	discs := 0
	for i := 0; i < Connect; i++ {
		cell := b.cells[row+i*d[0]][column+i*d[1]]
		if cell == game.None {
			continue
		}
		if owner != game.None && owner != cell {
			return game.None, 0
		}
		owner = cell
		discs++
	}
	return owner, discs
}

func (b *Board) LastMove() (int, bool) {
	return b.last[1], b.hasLast
}

func (b *Board) Plies() int {
	return b.plies
}

// Hash identifies the disc layout.
func (b *Board) Hash() uint64 {
	var buf [Rows * Columns]byte
	for row := 0; row < Rows; row++ {
		for column := 0; column < Columns; column++ {
			buf[row*Columns+column] = byte(b.cells[row][column])
		}
	}
	return xxhash.Sum64(buf[:])
}

// ParseMove reads a column numbered from 1 to 7.
func ParseMove(input string) (int, error) {
	column, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, fmt.Errorf("please specify a column from 1 to %d: %w", Columns, err)
	}
	if column < 1 || column > Columns {
		return 0, fmt.Errorf("%w: column %d, please specify a column from 1 to %d", game.ErrIllegalMove, column, Columns)
	}
	return column - 1, nil
}
