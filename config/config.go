package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"power4/meta"
)

type Config struct {
	Mode       string `mapstructure:"mode"`
	Game       string `mapstructure:"game"`
	Depth      int    `mapstructure:"depth"`
	ForkDepth  int    `mapstructure:"fork-depth"`
	Workers    int    `mapstructure:"workers"`
	Heuristic  bool   `mapstructure:"heuristic"`
	HumanFirst bool   `mapstructure:"human-first"`
	MaxTurns   int    `mapstructure:"max-turns"`
	LogLevel   string `mapstructure:"log-level"`

	Experiment string `mapstructure:"experiment"`
	Dir        string `mapstructure:"dir"`
	Games      int    `mapstructure:"games"`
	Opening    int    `mapstructure:"opening"`
	Seed       uint64 `mapstructure:"seed"`
	Parallel   int    `mapstructure:"parallel"`
}

// Flags declares every setting with its default.
func Flags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("power4", pflag.ContinueOnError)
	flags.String("config", "", "config file (yaml, toml or json)")
	flags.String("mode", meta.Mode, "play, selfplay or experiment")
	flags.String("game", meta.Game, "connect4 or tictactoe")
	flags.Int("depth", meta.Depth, "search depth in plies")
	flags.Int("fork-depth", meta.ForkDepth, "depth at which children are explored in parallel, negative to never fork")
	flags.Int("workers", 0, "maximum number of parallel subtrees, 0 for one per CPU")
	flags.Bool("heuristic", false, "score the search frontier with the board heuristic")
	flags.Bool("human-first", true, "human plays first in play mode")
	flags.Int("max-turns", meta.MaxTurns, "stop a game after this many turns")
	flags.String("log-level", "info", "trace, debug, info, warn or error")
	flags.String("experiment", "fork_depth", "fork_depth, depth or heuristic")
	flags.String("dir", "results", "directory for experiment results")
	flags.Int("games", meta.Games, "games per matchup")
	flags.Int("opening", meta.OpeningPlies, "random plies played before an experiment game")
	flags.Uint64("seed", 1, "seed of the random openings")
	flags.Int("parallel", 1, "experiment games played at the same time")
	return flags
}

// Load parses args and merges them with POWER4_* environment variables and the optional
// config file. Flags set on the command line win over the environment, which wins over
// the file.
func Load(args []string) (*Config, error) {
	flags := Flags()
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}
	v.SetEnvPrefix("POWER4")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Mode {
	case "play", "selfplay", "experiment":
	default:
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	switch c.Game {
	case "connect4", "tictactoe":
	default:
		return fmt.Errorf("unknown game %q", c.Game)
	}
	if c.Depth < 1 {
		return fmt.Errorf("depth must be positive, got %d", c.Depth)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return nil
}
