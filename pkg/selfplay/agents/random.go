// Package agents holds fixed baseline opponents for the self-play
// harness, as distinct from the real search-driven solver.
package agents

import (
	"github.com/ymatsux/quantum-reversi/pkg/mcts"
	"github.com/ymatsux/quantum-reversi/pkg/qstate"
	"github.com/ymatsux/quantum-reversi/pkg/rng"
)

// Random picks a uniformly random legal pair to play and a uniformly
// random endpoint to collapse, with no search at all: the weakest
// possible opponent, for regression baselines.
type Random struct {
	rng *rng.Source
}

// NewRandom builds a Random baseline seeded for reproducible matches.
func NewRandom(seed uint32) *Random {
	return &Random{rng: rng.NewSeeded(seed)}
}

// Play returns a uniformly random pair of empty cells, or the single
// forced pair when only one cell remains.
func (a *Random) Play(state *qstate.State, step int, history []qstate.History) mcts.Move {
	empties := qstate.EmptyCells(&state.Classic)
	if len(empties) == 1 {
		return mcts.Move{P: empties[0], Q: empties[0]}
	}
	i := int(a.rng.Bounded(uint32(len(empties))))
	j := int(a.rng.Bounded(uint32(len(empties) - 1)))
	if j >= i {
		j++
	}
	return mcts.Move{P: empties[i], Q: empties[j]}
}

// Select returns p or q with equal probability.
func (a *Random) Select(state *qstate.State, p, q, step int, history []qstate.History) int {
	if a.rng.Bounded(2) == 0 {
		return p
	}
	return q
}
