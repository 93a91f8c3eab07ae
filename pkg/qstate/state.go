// Package qstate implements the quantum half of Quantum Reversi: a
// classical board plus an ordered list of quantum superposition edges, the
// entanglement reachability test, and collapse resolution.
package qstate

import "github.com/ymatsux/quantum-reversi/pkg/board"

// Edge is a quantum pair placed on two empty cells. U is always <= V; edges
// are kept in strict insertion order inside State.Edges.
type Edge struct {
	U, V  int
	Color board.Color
}

// State is a classical board plus the still-unresolved quantum edges laid
// on top of it.
type State struct {
	Classic board.Board
	Edges   []Edge
}

// Clone returns a deep copy; MCTS descends into many hypothetical futures
// and must never mutate a shared parent state.
func (s *State) Clone() *State {
	edges := make([]Edge, len(s.Edges))
	copy(edges, s.Edges)
	return &State{Classic: s.Classic, Edges: edges}
}

// adjacency returns, for every cell touched by an edge, the list of edges
// incident to it. Cheap to rebuild: at most 36 edges ever exist at once.
func (s *State) adjacency() map[int][]Edge {
	adj := make(map[int][]Edge, len(s.Edges)*2)
	for _, e := range s.Edges {
		adj[e.U] = append(adj[e.U], e)
		adj[e.V] = append(adj[e.V], e)
	}
	return adj
}

func other(e Edge, from int) int {
	if e.U == from {
		return e.V
	}
	return e.U
}

// TestEntanglement reports whether p and q are connected through the
// current edge graph. Both cells must currently be empty on the classical
// board. Symmetric in p and q by construction (it is a plain reachability
// test).
func (s *State) TestEntanglement(p, q int) bool {
	if p == q {
		return true
	}
	adj := s.adjacency()
	visited := map[int]bool{p: true}
	queue := []int{p}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, e := range adj[u] {
			v := other(e, u)
			if v == q {
				return true
			}
			if !visited[v] {
				visited[v] = true
				queue = append(queue, v)
			}
		}
	}
	return false
}

// PutQuantum records a quantum pair of color on cells p and q. Both must be
// empty and not already entangled; callers are expected to have just
// called TestEntanglement to confirm this.
func (s *State) PutQuantum(p, q int, color board.Color) {
	board.Assert(s.Classic.Get(p) == 0 && s.Classic.Get(q) == 0, "PutQuantum called on an occupied cell")
	if p > q {
		p, q = q, p
	}
	s.Edges = append(s.Edges, Edge{U: p, V: q, Color: color})
}

// SelectEntanglement collapses the connected component containing p to
// classical stones. color is the color of the player whose decision is
// triggering this collapse; it is the color assigned to p itself.
//
// The remaining cells of the component are classicized in decreasing order
// of the step at which their discovering edge was inserted (the most
// recently formed entanglement resolves first), so that each placement's
// flipping sees the board as it stood after every later insertion. This
// order is load-bearing: see SPEC_FULL.md §8 property 5.
func (s *State) SelectEntanglement(p int, color board.Color) {
	type fix struct {
		cell  int
		color board.Color
	}

	adj := s.adjacency()
	visited := map[int]bool{p: true}
	queue := []int{p}
	// discoveredBy[i] holds the fix-up for the edge at index i of s.Edges,
	// in original insertion order, so that applying it in reverse index
	// order applies the most recently inserted discovering edge first.
	discoveredBy := make(map[int]fix, len(s.Edges))
	edgeIndex := make(map[Edge]int, len(s.Edges))
	for i, e := range s.Edges {
		edgeIndex[e] = i
	}

	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, e := range adj[u] {
			v := other(e, u)
			if visited[v] {
				continue
			}
			visited[v] = true
			discoveredBy[edgeIndex[e]] = fix{cell: v, color: e.Color}
			queue = append(queue, v)
		}
	}

	// Apply p's own placement first, since it sits conceptually at the
	// highest step index (the current move is always more recent than
	// every edge already on the board), then the discovering edges in
	// decreasing insertion order.
	s.Classic.Put(p, color)
	for i := len(s.Edges) - 1; i >= 0; i-- {
		if f, ok := discoveredBy[i]; ok {
			s.Classic.Put(f.cell, f.color)
		}
	}

	kept := s.Edges[:0:0]
	for _, e := range s.Edges {
		if !visited[e.U] {
			kept = append(kept, e)
		}
	}
	s.Edges = kept
}
