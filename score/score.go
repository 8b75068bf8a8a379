package score

import (
	"math"
	"strconv"
)

// Score is a position value from the searching player's point of view.
// Min means a certain loss, Max a certain win and Zero a neutral position.
type Score int32

const (
	Min  Score = math.MinInt32
	Max  Score = math.MaxInt32
	Zero Score = 0
)

// Halve is used to turn Min into a bounded loss for draws.
func (s Score) Halve() Score {
	return s / 2
}

// NudgeTowardZero moves s by n toward Zero without crossing it.
// A non-positive n leaves s unchanged.
func (s Score) NudgeTowardZero(n int) Score {
	if n <= 0 || s == Zero {
		return s
	}
	if n > math.MaxInt32 {
		n = math.MaxInt32
	}
	delta := int64(n)
	if s > Zero {
		return Score(max(int64(s)-delta, 0))
	}
	return Score(min(int64(s)+delta, 0))
}

// Add returns s+o saturated to [Min, Max].
func (s Score) Add(o Score) Score {
	return clamp(int64(s) + int64(o))
}

// Neg returns -s saturated to [Min, Max].
func (s Score) Neg() Score {
	return clamp(-int64(s))
}

func clamp(v int64) Score {
	switch {
	case v > math.MaxInt32:
		return Max
	case v < math.MinInt32:
		return Min
	}
	return Score(v)
}

func (s Score) String() string {
	switch s {
	case Max:
		return "+inf"
	case Min:
		return "-inf"
	}
	return strconv.Itoa(int(s))
}
