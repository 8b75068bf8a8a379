package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"power4/score"
)

func TestCollector(t *testing.T) {
	t.Run("counts from concurrent goroutines", func(t *testing.T) {
		c := NewCollector()
		c.Start(5, 1)
		c.SetTreeReused(true)

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					c.AddNode()
				}
				c.AddPrune()
			}()
		}
		wg.Wait()
		c.AddFork()

		m := c.Complete(score.Score(12))
		require.Equal(t, 5, m.Depth)
		require.Equal(t, 1, m.ForkDepth)
		require.Equal(t, 800, m.Nodes, "every node is counted")
		require.Equal(t, 8, m.Prunes)
		require.Equal(t, 1, m.Forks)
		require.True(t, m.TreeReused)
		require.Equal(t, score.Score(12), m.Weight)
	})

	t.Run("start resets counters", func(t *testing.T) {
		c := NewCollector()
		c.Start(1, 0)
		c.AddNode()
		c.Start(2, 0)
		require.Equal(t, 0, c.Complete(score.Zero).Nodes)
	})

	t.Run("dummy keeps depth and weight", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start(3, 1)
		c.AddNode()
		m := c.Complete(score.Max)
		require.Equal(t, 3, m.Depth)
		require.Equal(t, 0, m.Nodes)
		require.Equal(t, score.Max, m.Weight)
	})
}

func TestWriter(t *testing.T) {
	w, err := NewWriter(t.TempDir(), "unit")
	require.NoError(t, err)

	require.NoError(t, w.WriteAgentConfigs([]AgentConfig{{ID: 1, Depth: 4, ForkDepth: 1}}))
	require.NoError(t, w.WriteGameRecords([]GameRecord{{
		ID: 1, Agent1: 1, Agent2: 1,
		GameMetric: GameMetric{StartingPlayer: 1, Winner: "2", StartTime: time.Now(), EndTime: time.Now(), TotalMoves: 9},
	}}))
	require.NoError(t, w.WriteMoveRecords([]MoveRecord{{
		Game: 1, Agent: 1,
		MoveMetric: MoveMetric{Step: 1, Player: 1, SearchMetric: SearchMetric{Nodes: 10, Weight: score.Min}},
	}}))

	read := func(name string) [][]string {
		f, err := os.Open(filepath.Join(w.Dir(), name))
		require.NoError(t, err)
		defer f.Close()
		rows, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		return rows
	}

	configs := read("agent_configs.csv")
	require.Len(t, configs, 2, "header and one row")
	require.Equal(t, []string{"1", "4", "1", "false"}, configs[1])

	games := read("game_records.csv")
	require.Len(t, games, 2)
	require.Equal(t, "2", games[1][4])
	require.Equal(t, "9", games[1][8])

	moves := read("move_records.csv")
	require.Len(t, moves, 2)
	require.Equal(t, "10", moves[1][5])
	require.Equal(t, "-inf", moves[1][9])
}
