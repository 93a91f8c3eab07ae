package solver

import (
	"testing"
	"time"

	"github.com/ymatsux/quantum-reversi/pkg/board"
	"github.com/ymatsux/quantum-reversi/pkg/mcts"
	"github.com/ymatsux/quantum-reversi/pkg/qstate"
)

// fastSolver builds a Solver with a tiny time budget so tests that do
// exercise the MCTS fallback stay quick.
func fastSolver() *Solver {
	s := New(1)
	s.RemainingTime = 40 * time.Millisecond
	return s
}

func openingState() *qstate.State {
	s := &qstate.State{}
	s.Classic.ForcePut(14, board.White)
	s.Classic.ForcePut(15, board.Black)
	s.Classic.ForcePut(20, board.Black)
	s.Classic.ForcePut(21, board.White)
	return s
}

// TestPlayStepFourReturnsTheOpeningShortcut covers S1 and property 7: the
// very first move is the hard-coded diagonal-corner pair regardless of
// the (empty) history passed alongside it.
func TestPlayStepFourReturnsTheOpeningShortcut(t *testing.T) {
	s := fastSolver()
	got := s.Play(openingState(), 4, nil)
	if got != (mcts.Move{P: 0, Q: 35}) {
		t.Fatalf("Play(step=4) = %v, want (0,35)", got)
	}
}

// TestPlayStepFiveUsesFirstUnusedCandidate covers S2: after the opponent
// played the (0,35) shortcut, the reply must be the first untouched
// candidate in priority order, (5,30).
func TestPlayStepFiveUsesFirstUnusedCandidate(t *testing.T) {
	s := fastSolver()
	history := []qstate.History{{P: 0, Q: 35, Select: -1}}
	got := s.Play(openingState(), 5, history)
	if got != (mcts.Move{P: 5, Q: 30}) {
		t.Fatalf("Play(step=5) = %v, want (5,30)", got)
	}
}

// TestPlayStepFiveFallsThroughToNextCandidate covers S3: when the first
// candidate is already used, the next untouched one in priority order is
// chosen instead.
func TestPlayStepFiveFallsThroughToNextCandidate(t *testing.T) {
	s := fastSolver()
	history := []qstate.History{{P: 5, Q: 30, Select: -1}}
	got := s.Play(openingState(), 5, history)
	if got != (mcts.Move{P: 0, Q: 35}) {
		t.Fatalf("Play(step=5) = %v, want (0,35)", got)
	}
}

// TestPlayStepFiveFallsThroughToMCTSWhenAllCandidatesAreUsed exhausts
// every opening candidate, forcing the spec's documented fallback to a
// regular search instead of a shortcut.
func TestPlayStepFiveFallsThroughToMCTSWhenAllCandidatesAreUsed(t *testing.T) {
	s := fastSolver()
	history := []qstate.History{
		{P: 5, Q: 30, Select: -1},
		{P: 0, Q: 35, Select: -1},
		{P: 0, Q: 5, Select: -1},
	}
	got := s.Play(openingState(), 5, history)
	if got.P == got.Q {
		t.Fatalf("expected a real search result, got degenerate move %v", got)
	}
}

// TestPlayForcedLastCell covers S4: with exactly one empty cell left, the
// only legal action is a forced placement there.
func TestPlayForcedLastCell(t *testing.T) {
	s := fastSolver()
	state := &qstate.State{}
	color := board.White
	for p := 0; p < board.Cells; p++ {
		if p == 17 {
			continue
		}
		state.Classic.ForcePut(p, color)
		color = -color
	}

	got := s.Play(state, 35, nil)
	if got != (mcts.Move{P: 17, Q: 17}) {
		t.Fatalf("Play(forced) = %v, want (17,17)", got)
	}
}

// TestSelectReturnsOneOfTheTwoEndpoints exercises the entanglement-
// selection entry point end to end.
func TestSelectReturnsOneOfTheTwoEndpoints(t *testing.T) {
	s := fastSolver()
	state := &qstate.State{}
	state.PutQuantum(5, 9, board.White)

	got := s.Select(state, 5, 9, 10, nil)
	if got != 5 && got != 9 {
		t.Fatalf("Select = %d, want 5 or 9", got)
	}
}

// TestRunUpdateLoopDebitsTheMatchBudget checks that a turn's search time
// is actually subtracted from RemainingTime afterward.
func TestRunUpdateLoopDebitsTheMatchBudget(t *testing.T) {
	s := fastSolver()
	before := s.RemainingTime
	s.Play(openingState(), 6, nil)
	if s.RemainingTime >= before {
		t.Fatalf("RemainingTime = %v, want less than %v after a search turn", s.RemainingTime, before)
	}
}

// TestNewFromEntropyProducesAPlayableSolver checks the OS-entropy
// constructor wires a PRNG the search can run with: each of two
// entropy-seeded solvers must return a legal move.
func TestNewFromEntropyProducesAPlayableSolver(t *testing.T) {
	a := NewFromEntropy()
	a.RemainingTime = 40 * time.Millisecond
	b := NewFromEntropy()
	b.RemainingTime = 40 * time.Millisecond

	state := &qstate.State{}
	state.PutQuantum(5, 9, board.White)

	gotA := a.Select(state.Clone(), 5, 9, 10, nil)
	gotB := b.Select(state.Clone(), 5, 9, 10, nil)
	if gotA != 5 && gotA != 9 {
		t.Fatalf("Select = %d, want 5 or 9", gotA)
	}
	if gotB != 5 && gotB != 9 {
		t.Fatalf("Select = %d, want 5 or 9", gotB)
	}
}
