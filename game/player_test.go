package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlayerOther(t *testing.T) {
	require.Equal(t, P2, P1.Other())
	require.Equal(t, P1, P2.Other())
	require.Panics(t, func() { None.Other() }, "Nobody has no opponent")
}

func TestParsePlayer(t *testing.T) {
	p, err := ParsePlayer(2)
	require.NoError(t, err)
	require.Equal(t, P2, p)

	_, err = ParsePlayer(3)
	require.Error(t, err)
}
