package experiments

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aybabtme/uniplot/histogram"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"

	"power4/experiments/metrics"
	"power4/game"
)

type Summary struct {
	RunID  string         `yaml:"run_id"`
	Name   string         `yaml:"name"`
	Game   string         `yaml:"game"`
	Games  int            `yaml:"games"`
	Agents []AgentSummary `yaml:"agents"`
}

type AgentSummary struct {
	metrics.AgentConfig `yaml:",inline"`
	Games               int     `yaml:"games"`
	Wins                int     `yaml:"wins"`
	Losses              int     `yaml:"losses"`
	Draws               int     `yaml:"draws"`
	SelfPlayDecided     int     `yaml:"self_play_decided"`
	Moves               int     `yaml:"moves"`
	MeanMoveMillis      float64 `yaml:"mean_move_ms"`
	StdDevMoveMillis    float64 `yaml:"stddev_move_ms"`
	MeanNodes           float64 `yaml:"mean_nodes"`
}

// Summarize aggregates the records per agent config. A game an agent plays against
// itself counts once, as a draw or as decided self play, never as a win or a loss.
func Summarize(runID string, e Experiment, games []metrics.GameRecord, moves []metrics.MoveRecord) *Summary {
	summary := &Summary{RunID: runID, Name: e.Name, Game: e.Game, Games: len(games)}

	for _, config := range e.Configs {
		agent := AgentSummary{AgentConfig: config}
		for _, g := range games {
			if g.Agent1 == config.ID && g.Agent2 == config.ID {
				agent.Games++
				if g.Winner == game.None.String() {
					agent.Draws++
				} else {
					agent.SelfPlayDecided++
				}
				continue
			}
			var player string
			switch config.ID {
			case g.Agent1:
				player = game.P1.String()
			case g.Agent2:
				player = game.P2.String()
			default:
				continue
			}
			agent.Games++
			switch g.Winner {
			case game.None.String():
				agent.Draws++
			case player:
				agent.Wins++
			default:
				agent.Losses++
			}
		}

		var millis, nodes []float64
		for _, m := range moves {
			if m.Agent != config.ID {
				continue
			}
			millis = append(millis, float64(m.Duration.Microseconds())/1000)
			nodes = append(nodes, float64(m.Nodes))
		}
		agent.Moves = len(millis)
		if len(millis) > 0 {
			agent.MeanMoveMillis, agent.StdDevMoveMillis = stat.MeanStdDev(millis, nil)
			agent.MeanNodes = stat.Mean(nodes, nil)
		}
		summary.Agents = append(summary.Agents, agent)
	}
	return summary
}

func (s *Summary) Write(dir string) error {
	out, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	err = os.WriteFile(filepath.Join(dir, "summary.yaml"), out, 0644)
	if err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

// WriteHistogram draws the distribution of move times in milliseconds.
func WriteHistogram(dir string, moves []metrics.MoveRecord) error {
	if len(moves) == 0 {
		return nil
	}
	millis := make([]float64, 0, len(moves))
	for _, m := range moves {
		millis = append(millis, float64(m.Duration.Microseconds())/1000)
	}

	f, err := os.Create(filepath.Join(dir, "move_times.txt"))
	if err != nil {
		return fmt.Errorf("failed to create histogram file: %w", err)
	}
	defer f.Close()

	err = histogram.Fprint(f, histogram.Hist(15, millis), histogram.Linear(40))
	if err != nil {
		return fmt.Errorf("failed to write histogram: %w", err)
	}
	return nil
}
