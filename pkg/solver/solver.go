// Package solver is the turn-entry façade: it keeps the match's wall-clock
// budget, applies the two opening shortcuts, and otherwise drives an
// mcts.Node through its update loop to produce a move.
package solver

import (
	"time"

	"github.com/ymatsux/quantum-reversi/pkg/mcts"
	"github.com/ymatsux/quantum-reversi/pkg/qstate"
	"github.com/ymatsux/quantum-reversi/pkg/rng"
)

// InitialBudget is the total wall-clock time available across the match.
const InitialBudget = 9800 * time.Millisecond

// PerTurnFraction is the share of the remaining budget spent searching a
// single turn.
const PerTurnFraction = 0.20

// PlayoutBlockSize is the number of tree updates run between deadline
// checks.
const PlayoutBlockSize = 100

// firstStepShortcut is the hard-coded opening move: diagonal corners.
var firstStepShortcut = mcts.Move{P: 0, Q: 35}

// secondStepCandidates are the remaining corner pairs, tried in order
// against the already-used cells from the first step.
var secondStepCandidates = []mcts.Move{
	{P: 5, Q: 30},
	{P: 0, Q: 35},
	{P: 0, Q: 5},
	{P: 0, Q: 30},
	{P: 5, Q: 35},
	{P: 30, Q: 35},
}

// Solver holds the per-match remaining time budget and the PRNG used to
// drive playouts. It is not safe for concurrent use by multiple goroutines
// against the same match; unrelated matches should each own their own
// Solver.
type Solver struct {
	RemainingTime time.Duration
	rng           *rng.Source
}

// New builds a Solver with a fresh budget, seeded for reproducible play.
func New(seed uint32) *Solver {
	return &Solver{
		RemainingTime: InitialBudget,
		rng:           rng.NewSeeded(seed),
	}
}

// NewFromEntropy builds a Solver seeded from an OS entropy source, for a
// live match where no reproducible seed was requested.
func NewFromEntropy() *Solver {
	return &Solver{
		RemainingTime: InitialBudget,
		rng:           rng.New(),
	}
}

// Play chooses the (p,q) pair to act on this turn.
func (s *Solver) Play(state *qstate.State, step int, history []qstate.History) mcts.Move {
	if step == 4 {
		return firstStepShortcut
	}
	if step == 5 {
		if move, ok := secondStepShortcut(history); ok {
			return move
		}
	}

	root := mcts.NewPlacementRoot(state, step)
	root.Expand()
	s.runUpdateLoop(root)
	return root.BestMove()
}

// Select chooses which of p or q resolves the pending entanglement.
func (s *Solver) Select(state *qstate.State, p, q, step int, history []qstate.History) int {
	root := mcts.NewSelectionRoot(state, p, q, step)
	root.Expand()
	s.runUpdateLoop(root)
	return root.BestMove().P
}

// secondStepShortcut returns the first candidate corner pair with both
// cells still unused, in the fixed priority order.
func secondStepShortcut(history []qstate.History) (mcts.Move, bool) {
	used := make(map[int]bool, len(history)*2)
	for _, h := range history {
		used[h.P] = true
		used[h.Q] = true
	}
	for _, c := range secondStepCandidates {
		if !used[c.P] && !used[c.Q] {
			return c, true
		}
	}
	return mcts.Move{}, false
}

// runUpdateLoop spends this turn's time slice (20% of whatever remains of
// the match budget) on tree updates, checking the deadline once per block
// of PlayoutBlockSize updates, then debits the time actually spent from
// the match budget.
func (s *Solver) runUpdateLoop(root *mcts.Node) {
	start := time.Now()
	slice := time.Duration(float64(s.RemainingTime) * PerTurnFraction)
	deadline := start.Add(slice)

	for {
		for i := 0; i < PlayoutBlockSize; i++ {
			root.Update(s.rng)
		}
		if !time.Now().Before(deadline) {
			break
		}
	}

	s.RemainingTime -= time.Since(start)
}
