package experiments

import (
	"fmt"

	"power4/experiments/metrics"
)

var forkDepthConfigs = []metrics.AgentConfig{
	{ID: 1, Depth: 7, ForkDepth: -1},
	{ID: 2, Depth: 7, ForkDepth: 0},
	{ID: 3, Depth: 7, ForkDepth: 1},
	{ID: 4, Depth: 7, ForkDepth: 2},
}

// ForkDepth measures move time per fork depth.
// Each matchup uses the same config for both players for the same playing strength
// and similar game length.
func ForkDepth(game string) Experiment {
	matchups := [][2]metrics.AgentConfig{}
	for _, config := range forkDepthConfigs {
		matchups = append(matchups, [2]metrics.AgentConfig{config, config})
	}
	return Experiment{Name: "fork_depth", Game: game, Configs: forkDepthConfigs, Matchups: matchups}
}

// Depth pairs deeper agents against a shallow baseline.
func Depth(game string) Experiment {
	baseline := metrics.AgentConfig{ID: 0, Depth: 3, ForkDepth: 1}
	configs := []metrics.AgentConfig{baseline}
	matchups := [][2]metrics.AgentConfig{}
	for i, depth := range []int{4, 5, 6, 7} {
		config := metrics.AgentConfig{ID: i + 1, Depth: depth, ForkDepth: 1}
		configs = append(configs, config)
		matchups = append(matchups, [2]metrics.AgentConfig{baseline, config})
	}
	return Experiment{Name: "depth", Game: game, Configs: configs, Matchups: matchups}
}

// Heuristic pairs agents scoring the frontier with the game heuristic against agents scoring it zero.
func Heuristic(game string) Experiment {
	configs := []metrics.AgentConfig{}
	matchups := [][2]metrics.AgentConfig{}
	for i, depth := range []int{3, 5, 7} {
		plain := metrics.AgentConfig{ID: 2 * i, Depth: depth, ForkDepth: 1}
		heuristic := metrics.AgentConfig{ID: 2*i + 1, Depth: depth, ForkDepth: 1, Heuristic: true}
		configs = append(configs, plain, heuristic)
		matchups = append(matchups, [2]metrics.AgentConfig{plain, heuristic})
	}
	return Experiment{Name: "heuristic", Game: game, Configs: configs, Matchups: matchups}
}

func Preset(name, game string) (Experiment, error) {
	switch name {
	case "fork_depth":
		return ForkDepth(game), nil
	case "depth":
		return Depth(game), nil
	case "heuristic":
		return Heuristic(game), nil
	}
	return Experiment{}, fmt.Errorf("unknown experiment %q, expected fork_depth, depth or heuristic", name)
}
