package game

import "fmt"

// Player is 1 or 2; the zero value means nobody.
type Player uint8

const (
	None Player = iota
	P1
	P2
)

func (p Player) Other() Player {
	switch p {
	case P1:
		return P2
	case P2:
		return P1
	}
	panic(fmt.Sprintf("player %d has no opponent", p))
}

func (p Player) String() string {
	if p == None {
		return "-"
	}
	return fmt.Sprintf("%d", uint8(p))
}

// ParsePlayer accepts 1 or 2.
func ParsePlayer(n int) (Player, error) {
	switch n {
	case 1:
		return P1, nil
	case 2:
		return P2, nil
	}
	return None, fmt.Errorf("invalid player %d, expected 1 or 2", n)
}
