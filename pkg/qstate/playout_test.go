package qstate

import (
	"testing"

	"github.com/ymatsux/quantum-reversi/pkg/board"
	"github.com/ymatsux/quantum-reversi/pkg/rng"
)

// TestCollapseByDistanceRingScenario reproduces spec scenario S6: a
// 3-cycle of same-colored edges (a-b, b-c, c-a), collapse triggered at a.
// All three edges must resolve and none survive.
func TestCollapseByDistanceRingScenario(t *testing.T) {
	a, b, c := 0, 1, 2
	s := &State{}
	s.PutQuantum(a, b, board.White)
	s.PutQuantum(b, c, board.White)
	s.PutQuantum(a, c, board.White)

	s.collapseByDistance(a, board.White)

	if len(s.Edges) != 0 {
		t.Fatalf("expected the whole ring to collapse, edges left: %v", s.Edges)
	}
	for _, cell := range []int{a, b, c} {
		if s.Classic.Get(cell) == 0 {
			t.Fatalf("cell %d should be classical after ring collapse", cell)
		}
	}
	if s.Classic.Count(board.White)+s.Classic.Count(board.Black) != 3 {
		t.Fatalf("expected exactly three classical stones")
	}
}

func TestCollapseByDistanceLeavesOutsideEdgesAlone(t *testing.T) {
	s := &State{}
	s.PutQuantum(0, 1, board.White)
	s.PutQuantum(30, 31, board.Black)

	s.collapseByDistance(0, board.White)

	if len(s.Edges) != 1 || s.Edges[0].U != 30 {
		t.Fatalf("edge outside the collapsing component must survive untouched, got %v", s.Edges)
	}
}

// TestCollapseByDistanceAppliesPlacementsInDecreasingInsertionOrder covers
// two pairs merged into one component by a later bridging edge: (0,1,-1)
// inserted first, then (2,3,+1), then the bridge (1,2,-1) that joins them.
// Collapsing at anchor 0 with +1 must place 0, 2, 3, 1 in that order (the
// bridge resolves 2 before the first edge resolves 1), leaving the row
// +1,-1,-1,+1 with no capture. Applying the BFS-discovery order (0,1,2,3)
// instead lets placing 3 last bracket and flip the two middle cells.
func TestCollapseByDistanceAppliesPlacementsInDecreasingInsertionOrder(t *testing.T) {
	s := &State{}
	s.PutQuantum(0, 1, board.Black)
	s.PutQuantum(2, 3, board.White)
	s.PutQuantum(1, 2, board.Black)

	s.collapseByDistance(0, board.White)

	want := map[int]board.Color{0: board.White, 1: board.Black, 2: board.Black, 3: board.White}
	for cell, color := range want {
		if got := s.Classic.Get(cell); got != color {
			t.Fatalf("cell %d = %v, want %v (row should be +1,-1,-1,+1 with no capture)", cell, got, color)
		}
	}
	if len(s.Edges) != 0 {
		t.Fatalf("whole component should collapse, edges left: %v", s.Edges)
	}
}

// TestPlayoutTerminatesWithAValidWinner runs many playouts from the empty
// board and checks every one reaches step 36 with a legal result.
func TestPlayoutTerminatesWithAValidWinner(t *testing.T) {
	g := rng.NewSeeded(123)
	for i := 0; i < 200; i++ {
		s := &State{}
		result := Playout(s, g)
		if result != 1 && result != -1 && result != 0 {
			t.Fatalf("playout %d returned invalid winner %d", i, result)
		}
		total := s.Classic.Count(board.White) + s.Classic.Count(board.Black)
		if total != board.Cells {
			t.Fatalf("playout %d left %d cells filled, want %d", i, total, board.Cells)
		}
		if len(s.Edges) != 0 {
			t.Fatalf("playout %d left %d quantum edges unresolved", i, len(s.Edges))
		}
	}
}

// TestPlayoutFromMidGameResumesAtGivenStep checks that a playout starting
// partway through a game only plays the remaining steps.
func TestPlayoutFromMidGameResumesAtGivenStep(t *testing.T) {
	g := rng.NewSeeded(7)
	s := &State{}
	for p := 0; p < 10; p++ {
		s.Classic.ForcePut(p, ColorForStep(p))
	}
	Playout(s, g)

	total := s.Classic.Count(board.White) + s.Classic.Count(board.Black)
	if total != board.Cells {
		t.Fatalf("expected all cells filled after resuming playout, got %d", total)
	}
}

func TestPlayoutIsDeterministicGivenTheSameSeed(t *testing.T) {
	a := Playout(&State{}, rng.NewSeeded(99))
	b := Playout(&State{}, rng.NewSeeded(99))
	if a != b {
		t.Fatalf("same-seed playouts diverged: %d != %d", a, b)
	}
}
