package engine

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	"power4/agent"
	"power4/experiments/metrics"
	"power4/game"
	"power4/gamemaster"
	"power4/meta"
)

// Renderer is implemented by states that can print themselves.
type Renderer interface {
	Render(w io.Writer) error
}

// hasher is implemented by states that can identify their position.
type hasher interface {
	Hash() uint64
}

type Option func(c *config)

type config struct {
	out      io.Writer
	maxTurns int
}

// WithRendering prints the board to w before every move and at the end.
func WithRendering(w io.Writer) Option {
	return func(c *config) {
		c.out = w
	}
}

func WithMaxTurns(turns int) Option {
	return func(c *config) {
		if turns > 0 {
			c.maxTurns = turns
		}
	}
}

// Engine plays one game between two agents, the referee holding the real state.
type Engine[S game.State[S, M], M comparable] struct {
	config
	referee *gamemaster.Referee[S, M]
	first   game.Player
	agents  map[game.Player]agent.Agent[M]
}

func LocalEngine[S game.State[S, M], M comparable](state S, first game.Player, p1, p2 agent.Agent[M], options ...Option) *Engine[S, M] {
	c := config{maxTurns: meta.MaxTurns}
	for _, option := range options {
		option(&c)
	}
	return &Engine[S, M]{
		config:  c,
		referee: gamemaster.NewReferee(state, first),
		first:   first,
		agents:  map[game.Player]agent.Agent[M]{game.P1: p1, game.P2: p2},
	}
}

// Run plays until the game is over or the maximum number of turns is reached.
func (e *Engine[S, M]) Run() (gamemaster.Outcome, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: int(e.first),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("player %s is starting", e.first)

	var err error
	for turn := 1; !e.referee.Outcome().Over; turn++ {
		if turn > e.maxTurns {
			log.Warn().Msgf("stopped after %d turns", e.maxTurns)
			break
		}
		player := e.referee.Current()
		e.render()

		var metric metrics.SearchMetric
		metric, err = e.turn(player)
		if err != nil {
			break
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         turn,
			Player:       int(player),
			SearchMetric: metric,
		})
	}

	outcome := e.referee.Outcome()
	e.render()
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(e.referee.History())
	gameMetric.Winner = outcome.Winner.String()
	if err == nil {
		log.Info().Msgf("game over after %d moves: %s", gameMetric.TotalMoves, outcome)
	}
	return outcome, gameMetric, moveMetrics, err
}

// turn asks player for a move until the referee accepts it, then tells the opponent.
func (e *Engine[S, M]) turn(player game.Player) (metrics.SearchMetric, error) {
	current, opponent := e.agents[player], e.agents[player.Other()]
	for {
		move, err := current.Play()
		if err != nil {
			return metrics.SearchMetric{}, fmt.Errorf("player %s failed to play: %w", player, err)
		}

		err = e.referee.Play(player, move)
		if errors.Is(err, game.ErrIllegalMove) && isInteractive(current) {
			if e.out != nil {
				fmt.Fprintf(e.out, "Invalid move: %v\n", err)
			}
			continue
		}
		if err != nil {
			return metrics.SearchMetric{}, fmt.Errorf("player %s played %v: %w", player, move, err)
		}

		event := log.Debug().Int("turn", len(e.referee.History()))
		if h, ok := any(e.referee.State()).(hasher); ok {
			event = event.Uint64("hash", h.Hash())
		}
		event.Msgf("player %s played %v", player, move)

		if err := opponent.ObserveOpponentMove(move); err != nil {
			return metrics.SearchMetric{}, fmt.Errorf("player %s could not follow move %v: %w", player.Other(), move, err)
		}

		var metric metrics.SearchMetric
		if s, ok := current.(agent.Searching); ok {
			metric = s.LastMetric()
		}
		return metric, nil
	}
}

func (e *Engine[S, M]) render() {
	if e.out == nil {
		return
	}
	r, ok := any(e.referee.State()).(Renderer)
	if !ok {
		return
	}
	fmt.Fprintln(e.out)
	if err := r.Render(e.out); err != nil {
		log.Error().Err(err).Msg("failed to render the board")
	}
}

func isInteractive(a any) bool {
	i, ok := a.(agent.Interactive)
	return ok && i.Interactive()
}

// Referee gives access to the final state and history.
func (e *Engine[S, M]) Referee() *gamemaster.Referee[S, M] {
	return e.referee
}
