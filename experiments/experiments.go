package experiments

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"

	"power4/agent"
	"power4/engine"
	"power4/experiments/metrics"
	"power4/game"
	"power4/game/connect4"
	"power4/game/tictactoe"
	"power4/gamemaster"
	"power4/searcher"
)

// Experiment plays every matchup Games times and stores the records in Dir.
type Experiment struct {
	Name         string
	Game         string // connect4 or tictactoe
	Configs      []metrics.AgentConfig
	Matchups     [][2]metrics.AgentConfig
	Games        int // per matchup
	OpeningPlies int // random moves played before the agents take over
	Seed         uint64
	Parallel     int // games played at the same time
	Dir          string
}

type result struct {
	outcome gamemaster.Outcome
	game    metrics.GameRecord
	moves   []metrics.MoveRecord
}

// Run plays the games, agents taking turns at starting, and writes agent configs, game and
// move records, a summary and a histogram of move times.
func Run(ctx context.Context, e Experiment) (*Summary, error) {
	if len(e.Matchups) == 0 {
		return nil, fmt.Errorf("experiment %s has no matchup", e.Name)
	}
	runID := uuid.New()
	total := len(e.Matchups) * e.Games
	results := make([]result, total)

	log.Info().Str("run", runID.String()).Msgf("starting %s experiment with %d games...", e.Name, total)

	var mu sync.Mutex
	done := 0
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(e.Parallel, 1))
	for mi, matchup := range e.Matchups {
		mi, matchup := mi, matchup
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(e.Matchups), matchup[0], matchup[1])

		for i := 0; i < e.Games; i++ {
			i := i
			if ctx.Err() != nil {
				break
			}
			id := mi*e.Games + i
			g.Go(func() error {
				first, second := matchup[0], matchup[1]
				if i%2 == 1 {
					first, second = second, first
				}
				res, err := playGame(e.Game, first, second, e.OpeningPlies, e.Seed+uint64(id))
				if err != nil {
					return fmt.Errorf("game %d of matchup %d: %w", i+1, mi+1, err)
				}
				res.game.ID = id + 1
				for j := range res.moves {
					res.moves[j].Game = id + 1
				}
				results[id] = res

				mu.Lock()
				done++
				log.Info().Msgf("completed game %d of %d: %s", done, total, res.outcome)
				mu.Unlock()
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Info().Msgf("completed %s experiment", e.Name)

	gameRecords := make([]metrics.GameRecord, 0, total)
	moveRecords := []metrics.MoveRecord{}
	for _, res := range results {
		gameRecords = append(gameRecords, res.game)
		moveRecords = append(moveRecords, res.moves...)
	}

	writer, err := metrics.NewWriter(e.Dir, e.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(e.Configs); err != nil {
		return nil, err
	}
	log.Info().Msg("stored agent configs")
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return nil, err
	}
	log.Info().Msg("stored game records")
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return nil, err
	}
	log.Info().Msg("stored move records")

	summary := Summarize(runID.String(), e, gameRecords, moveRecords)
	if err := summary.Write(writer.Dir()); err != nil {
		return nil, err
	}
	if err := WriteHistogram(writer.Dir(), moveRecords); err != nil {
		return nil, err
	}
	log.Info().Msgf("stored results in %s", writer.Dir())
	return summary, nil
}

func playGame(name string, first, second metrics.AgentConfig, openingPlies int, seed uint64) (result, error) {
	switch name {
	case "connect4":
		return runGame(connect4.New(), first, second, openingPlies, seed)
	case "tictactoe":
		return runGame(tictactoe.New(), first, second, openingPlies, seed)
	}
	return result{}, fmt.Errorf("unknown game %q", name)
}

// runGame plays first as player 1 against second as player 2.
func runGame[S game.State[S, M], M comparable](state S, first, second metrics.AgentConfig, openingPlies int, seed uint64) (result, error) {
	state, toMove := opening(state, openingPlies, rand.New(rand.NewSource(seed)))
	p1 := agent.NewBot(state, game.P1, toMove, first.Depth, searchOptions(first)...)
	p2 := agent.NewBot(state, game.P2, toMove, second.Depth, searchOptions(second)...)

	outcome, gameMetric, moveMetrics, err := engine.LocalEngine(state, toMove, p1, p2).Run()
	if err != nil {
		return result{}, err
	}

	res := result{
		outcome: outcome,
		game:    metrics.GameRecord{Agent1: first.ID, Agent2: second.ID, GameMetric: gameMetric},
	}
	for _, mm := range moveMetrics {
		id := first.ID
		if mm.Player == int(game.P2) {
			id = second.ID
		}
		res.moves = append(res.moves, metrics.MoveRecord{Agent: id, MoveMetric: mm})
	}
	return res, nil
}

// opening plays random moves, never one that wins, and returns the player to move.
func opening[S game.State[S, M], M comparable](state S, plies int, rng *rand.Rand) (S, game.Player) {
	player := game.P1
	for i := 0; i < plies; i++ {
		moves := state.PossibleMoves()
		rng.Shuffle(len(moves), func(a, b int) { moves[a], moves[b] = moves[b], moves[a] })
		played := false
		for _, move := range moves {
			next := state.Clone()
			if err := next.Play(player, move); err != nil {
				continue
			}
			if _, won := next.Winner(); won || next.IsFull() {
				continue
			}
			state = next
			played = true
			break
		}
		if !played {
			break
		}
		player = player.Other()
	}
	return state, player
}

func searchOptions(config metrics.AgentConfig) []searcher.Option {
	options := []searcher.Option{searcher.WithForkDepth(config.ForkDepth), searcher.WithMetrics()}
	if config.Heuristic {
		options = append(options, searcher.WithHeuristicScore())
	}
	return options
}
