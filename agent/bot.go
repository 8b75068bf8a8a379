package agent

import (
	"fmt"
	"strings"
	"time"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"power4/experiments/metrics"
	"power4/game"
	"power4/score"
	"power4/searcher"
)

// Weights this close to a sentinel mean the game is decided.
const certainty = 1000

// Shown in the trace dump of the search tree.
const dumpDepth = 2

// hasher is implemented by states that can identify their position.
type hasher interface {
	Hash() uint64
}

// Bot keeps one search tree for the whole game.
type Bot[S game.State[S, M], M comparable] struct {
	player   game.Player
	searcher *searcher.Searcher[S, M]
	root     *searcher.Node[S, M]
	reused   bool
	times    []time.Duration
	last     metrics.SearchMetric
}

// NewBot creates a bot for player from the current state, toMove playing next.
func NewBot[S game.State[S, M], M comparable](state S, player, toMove game.Player, depth int, options ...searcher.Option) *Bot[S, M] {
	log.Debug().
		Uint64("total_memory", memory.TotalMemory()).
		Msgf("creating bot for player %s with depth %d", player, depth)

	return &Bot[S, M]{
		player:   player,
		searcher: searcher.New[S, M](player, depth, options...),
		root:     searcher.NewRoot(state.Clone(), toMove),
	}
}

func (b *Bot[S, M]) Player() game.Player {
	return b.player
}

func (b *Bot[S, M]) Play() (M, error) {
	var none M
	state := b.root.MustState()
	if _, won := state.Winner(); won || state.IsFull() {
		return none, game.ErrGameOver
	}
	if toMove := b.root.Phase().Player(); toMove != b.player {
		return none, fmt.Errorf("player %s cannot play on player %s's turn", b.player, toMove)
	}

	start := time.Now()
	b.searcher.SetTreeReused(b.reused)
	b.last = b.searcher.Explore(b.root, b.root.Depth())
	if e := log.Trace(); e.Enabled() {
		var sb strings.Builder
		_ = b.root.Dump(&sb, dumpDepth)
		e.Msg("search tree\n" + sb.String())
	}
	b.root = searcher.SelectBest(b.root)
	elapsed := time.Since(start)
	b.times = append(b.times, elapsed)

	move, _ := b.root.Phase().LastMove()
	weight, _ := b.root.Weight()
	log.Info().Msgf("player %s plays %v in %s", b.player, move, elapsed)
	event := log.Debug().
		Int("plies", b.root.Depth()).
		Int("nodes", b.last.Nodes).
		Str("weight", weight.String())
	if h, ok := any(b.root.MustState()).(hasher); ok {
		event = event.Uint64("hash", h.Hash())
	}
	event.Msgf("player %s moved", b.player)

	switch {
	case weight > score.Max.NudgeTowardZero(certainty):
		log.Info().Msgf("player %s cannot lose anymore", b.player)
	case weight < score.Min.NudgeTowardZero(certainty):
		log.Info().Msgf("player %s cannot win anymore", b.player)
	}
	return move, nil
}

// ObserveOpponentMove moves the root to the child of move. A move the search did not
// expand is applied to a copy of the state, and the tree starts over from there.
// An illegal move, or any move once the game is over, leaves the bot untouched.
func (b *Bot[S, M]) ObserveOpponentMove(move M) error {
	current := b.root.MustState()
	if _, won := current.Winner(); won || current.IsFull() {
		return game.ErrGameOver
	}
	hadChildren := b.root.Len() > 0
	matched, root := b.root.Splice(move)
	if matched {
		b.root = root
		b.reused = true
		return nil
	}

	state := root.MustState().Clone()
	if err := state.Play(b.player.Other(), move); err != nil {
		return err
	}
	if hadChildren {
		log.Warn().Msgf("move %v was not expected by player %s", move, b.player)
	}
	b.root = searcher.NewRootAt(state, b.player, root.Depth()+1)
	b.reused = false
	return nil
}

// State is the position the bot thinks the game is in.
func (b *Bot[S, M]) State() S {
	return b.root.MustState()
}

func (b *Bot[S, M]) Root() *searcher.Node[S, M] {
	return b.root
}

func (b *Bot[S, M]) LastMetric() metrics.SearchMetric {
	return b.last
}

func (b *Bot[S, M]) Times() []time.Duration {
	return b.times
}

// AverageTime is the mean time spent per move, 0 before the first move.
func (b *Bot[S, M]) AverageTime() time.Duration {
	if len(b.times) == 0 {
		return 0
	}
	return lo.Sum(b.times) / time.Duration(len(b.times))
}
