package connect4

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"power4/game"
)

const (
	red      = "\x1b[31m"
	blue     = "\x1b[34m"
	onYellow = "\x1b[43m"
	reset    = "\x1b[0m"
)

// Render prints the grid with a column header. Discs are coloured when w is a terminal
// and the winning alignment, if any, is highlighted.
func (b *Board) Render(w io.Writer) error {
	colour := false
	if f, ok := w.(*os.File); ok {
		colour = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	winning := map[[2]int]bool{}
	if line, ok := b.WinningLine(); ok {
		for _, cell := range line {
			winning[cell] = true
		}
	}

	var sb strings.Builder
	for column := 1; column <= Columns; column++ {
		fmt.Fprintf(&sb, "%d ", column)
	}
	sb.WriteString("\n")
	for row := 0; row < Rows; row++ {
		for column := 0; column < Columns; column++ {
			cell := b.cells[row][column]
			text := cell.String()
			if colour {
				style := ""
				switch cell {
				case game.P1:
					style = red
				case game.P2:
					style = blue
				}
				if winning[[2]int{row, column}] {
					style += onYellow
				}
				if style != "" {
					text = style + text + reset
				}
			}
			sb.WriteString(text + " ")
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
