package qstate

import (
	"math/bits"

	"github.com/ymatsux/quantum-reversi/pkg/board"
	"github.com/ymatsux/quantum-reversi/pkg/rng"
)

// ColorForStep returns the color to move at step: White on even steps,
// Black on odd ones.
func ColorForStep(step int) board.Color {
	if step%2 == 0 {
		return board.White
	}
	return board.Black
}

// Step returns the number of turns already taken to reach state: every
// classical stone accounts for one resolved turn, and every still-pending
// quantum edge accounts for one turn whose resolution has been deferred.
// A collapse always removes exactly one more edge than the number of new
// classical stones it leaves unaccounted for, so this sum advances by
// exactly one per turn regardless of how many cells a single collapse
// resolves at once.
func Step(s *State) int {
	return bits.OnesCount64(s.Classic.Occupied()) + len(s.Edges)
}

// EmptyCells returns, in increasing order, every cell index not yet
// occupied on b.
func EmptyCells(b *board.Board) []int {
	empty := b.Empty()
	cells := make([]int, 0, board.Cells)
	for p := 0; p < board.Cells; p++ {
		if empty&(uint64(1)<<p) != 0 {
			cells = append(cells, p)
		}
	}
	return cells
}

// Playout randomly completes state and returns the winner: +1, -1, or 0
// for a draw. state is mutated; callers that still need the pre-playout
// position must Clone first. The step to resume from is derived from
// state itself (see Step), so callers never pass it explicitly.
func Playout(state *State, g *rng.Source) int {
	for Step(state) < board.Cells {
		color := ColorForStep(Step(state))
		empties := EmptyCells(&state.Classic)

		if len(empties) == 1 {
			state.SelectEntanglement(empties[0], color)
			continue
		}

		i := int(g.Bounded(uint32(len(empties))))
		j := int(g.Bounded(uint32(len(empties) - 1)))
		if j >= i {
			j++
		}
		p, q := empties[i], empties[j]

		if state.TestEntanglement(p, q) {
			anchor := p
			if g.Bounded(2) == 1 {
				anchor = q
			}
			state.collapseByDistance(anchor, color)
		} else {
			state.PutQuantum(p, q, color)
		}
	}

	white, black := state.Classic.Count(board.White), state.Classic.Count(board.Black)
	switch {
	case white > black:
		return 1
	case black > white:
		return -1
	default:
		return 0
	}
}

// collapseByDistance resolves the connected component containing anchor
// using the BFS-distance tie rule: for every edge inside the component,
// the endpoint strictly farther from anchor is placed classically with
// that edge's color; an edge whose endpoints sit at equal distance is a
// ring edge and is preserved unless both its endpoints end up classical
// anyway through other edges, in which case it is dropped along with the
// rest of the now fully-resolved component. Edges outside the component
// are left untouched.
//
// Placements are applied in decreasing edge-insertion order, exactly like
// SelectEntanglement: each Put's Reversi flip must see the board as the
// previous Put left it, and a later edge is conceptually more recent than
// an earlier one regardless of the BFS order its endpoint was discovered
// in.
func (s *State) collapseByDistance(anchor int, anchorColor board.Color) {
	adj := s.adjacency()
	dist := map[int]int{anchor: 0}
	queue := []int{anchor}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, e := range adj[u] {
			v := other(e, u)
			if _, seen := dist[v]; !seen {
				dist[v] = dist[u] + 1
				queue = append(queue, v)
			}
		}
	}

	type fix struct {
		cell  int
		color board.Color
	}
	resolvedBy := make(map[int]fix, len(s.Edges))
	resolved := map[int]bool{}
	var ties, outside []Edge
	for i, e := range s.Edges {
		du, uOk := dist[e.U]
		dv, vOk := dist[e.V]
		switch {
		case !uOk || !vOk:
			outside = append(outside, e)
		case du < dv:
			resolvedBy[i] = fix{cell: e.V, color: e.Color}
			resolved[e.V] = true
		case du > dv:
			resolvedBy[i] = fix{cell: e.U, color: e.Color}
			resolved[e.U] = true
		default:
			ties = append(ties, e)
		}
	}

	s.Classic.Put(anchor, anchorColor)
	for i := len(s.Edges) - 1; i >= 0; i-- {
		if f, ok := resolvedBy[i]; ok {
			s.Classic.Put(f.cell, f.color)
		}
	}

	kept := outside
	for _, e := range ties {
		if !resolved[e.U] || !resolved[e.V] {
			kept = append(kept, e)
		}
	}
	s.Edges = kept
}
