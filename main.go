package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"power4/agent"
	"power4/config"
	"power4/engine"
	"power4/experiments"
	"power4/game"
	"power4/game/connect4"
	"power4/game/tictactoe"
	"power4/searcher"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	setupLogging(cfg.LogLevel)
	log.Debug().Msgf("loaded config: %+v", *cfg)

	switch cfg.Mode {
	case "experiment":
		err = runExperiment(cfg)
	case "selfplay", "play":
		err = runGame(cfg)
	}
	if errors.Is(err, agent.ErrQuit) {
		log.Info().Msg("bye")
		return
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed")
	}
}

func setupLogging(level string) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(output).Level(lvl).With().Timestamp().Logger()
}

func runExperiment(cfg *config.Config) error {
	e, err := experiments.Preset(cfg.Experiment, cfg.Game)
	if err != nil {
		return err
	}
	e.Games = cfg.Games
	e.OpeningPlies = cfg.Opening
	e.Seed = cfg.Seed
	e.Parallel = cfg.Parallel
	e.Dir = cfg.Dir

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	summary, err := experiments.Run(ctx, e)
	if err != nil {
		return err
	}
	for _, a := range summary.Agents {
		log.Info().Msgf("agent %d: %d wins, %d losses, %d draws, %.1fms per move", a.ID, a.Wins, a.Losses, a.Draws, a.MeanMoveMillis)
	}
	return nil
}

func runGame(cfg *config.Config) error {
	switch cfg.Game {
	case "tictactoe":
		return play(cfg, tictactoe.New(), tictactoe.ParseMove)
	default:
		return play(cfg, connect4.New(connect4.WithShuffledMoves()), connect4.ParseMove)
	}
}

// averager is implemented by bots.
type averager interface {
	AverageTime() time.Duration
}

func play[S game.State[S, M], M comparable](cfg *config.Config, state S, parse func(string) (M, error)) error {
	options := []searcher.Option{searcher.WithForkDepth(cfg.ForkDepth)}
	if cfg.Workers > 0 {
		options = append(options, searcher.WithWorkers(cfg.Workers))
	}
	if cfg.Heuristic {
		options = append(options, searcher.WithHeuristicScore())
	}

	var p1, p2 agent.Agent[M]
	if cfg.Mode == "selfplay" {
		p1 = agent.NewBot(state, game.P1, game.P1, cfg.Depth, options...)
		p2 = agent.NewBot(state, game.P2, game.P1, cfg.Depth, options...)
	} else {
		human, bot := game.P1, game.P2
		if !cfg.HumanFirst {
			human, bot = game.P2, game.P1
		}
		rl, err := readline.NewEx(&readline.Config{Prompt: "> ", HistoryLimit: -1})
		if err != nil {
			return fmt.Errorf("failed to open terminal: %w", err)
		}
		defer rl.Close()

		h := agent.NewHuman(human, rl, os.Stdout, parse)
		b := agent.NewBot(state, bot, game.P1, cfg.Depth, options...)
		if human == game.P1 {
			p1, p2 = h, b
		} else {
			p1, p2 = b, h
		}
	}

	e := engine.LocalEngine(state, game.P1, p1, p2, engine.WithRendering(os.Stdout), engine.WithMaxTurns(cfg.MaxTurns))
	outcome, _, _, err := e.Run()
	if err != nil {
		return err
	}
	fmt.Printf("Game over: %s\n", outcome)

	for _, a := range []agent.Agent[M]{p1, p2} {
		if bot, ok := a.(averager); ok {
			fmt.Printf("Average bot time: %s\n", bot.AverageTime())
		}
	}
	return nil
}
