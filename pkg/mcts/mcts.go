// Package mcts implements the Monte-Carlo Tree Search that drives move
// selection: UCB1-Tuned child selection, random-playout leaf evaluation,
// and best-move extraction by empirical win rate.
package mcts

import (
	"math"
	"math/bits"

	"github.com/ymatsux/quantum-reversi/pkg/board"
	"github.com/ymatsux/quantum-reversi/pkg/qstate"
	"github.com/ymatsux/quantum-reversi/pkg/rng"
)

// ExpandThreshold is the visit count a leaf must accumulate before it is
// grown into an internal node.
const ExpandThreshold = 80

// PlayoutScale is the number of random playouts run, and tallied as one
// unit, every time a leaf is evaluated.
const PlayoutScale = 4

// Move is a candidate or chosen pair of cells.
type Move struct {
	P, Q int
}

// Node is one position in the search tree. A node exclusively owns its
// children; the Parent link is a weak back-reference that nothing in this
// package reads, since Update back-propagates a result by returning it up
// its own recursion along the descent path. The root has no
// parent, and the whole subtree is discarded at the end of a turn — no
// node is ever reused across turns.
type Node struct {
	Parent *Node
	Children []*Node

	State           *qstate.State
	LastColor       board.Color
	LastMove        Move
	HasEntanglement bool

	// Results[0] counts playouts that finished -1 (Black wins),
	// Results[1] draws, Results[2] +1 (White wins).
	Results [3]int
	Visits  int
}

// NewPlacementRoot builds a root node whose pending decision is an
// ordinary (p,q) placement for the player to move at step. lastColor
// must be the color of whichever side is conceptually "about to move" at
// step, negated, so that expand()'s standard alternation produces the
// mover's own color for the root's children.
func NewPlacementRoot(state *qstate.State, step int) *Node {
	return &Node{
		State:     state,
		LastColor: -qstate.ColorForStep(step),
	}
}

// NewSelectionRoot builds a root node whose pending decision is choosing
// which of p or q resolves an entanglement, for the collapsing player at
// step.
func NewSelectionRoot(state *qstate.State, p, q, step int) *Node {
	return &Node{
		State:           state,
		LastColor:       qstate.ColorForStep(step),
		LastMove:        Move{P: p, Q: q},
		HasEntanglement: true,
	}
}

func resultIndex(winner int) int { return winner + 1 }

// wins returns the number of tallied playouts this node's own mover
// (LastColor) went on to win.
func (n *Node) wins() int {
	switch n.LastColor {
	case board.White:
		return n.Results[2]
	case board.Black:
		return n.Results[0]
	default:
		return 0
	}
}

func occupiedCount(s *qstate.State) int {
	return bits.OnesCount64(s.Classic.Occupied())
}

// Expand populates this node's children exactly once; later calls are
// no-ops.
func (n *Node) Expand() {
	if len(n.Children) > 0 {
		return
	}
	if occupiedCount(n.State) == board.Cells {
		return
	}
	if n.HasEntanglement {
		n.expandSelection()
		return
	}
	n.expandPlacement()
}

// expandSelection resolves the pending entanglement to produce one child
// per distinct endpoint. The anchor cell is classicized with the
// collapsing player's own color (LastColor, unnegated — the collapsing
// player's identity is exactly color(current_step), as recorded when
// this node was built); the resulting child then belongs to whichever
// side moves next, which is the other color regardless of how many cells
// the collapse happened to resolve.
func (n *Node) expandSelection() {
	collapsingColor := n.LastColor
	nextColor := -n.LastColor

	endpoints := []int{n.LastMove.P}
	if n.LastMove.Q != n.LastMove.P {
		endpoints = append(endpoints, n.LastMove.Q)
	}
	for _, cell := range endpoints {
		s := n.State.Clone()
		s.SelectEntanglement(cell, collapsingColor)
		n.Children = append(n.Children, &Node{
			Parent:    n,
			State:     s,
			LastColor: nextColor,
			LastMove:  Move{P: cell, Q: cell},
		})
	}
}

// expandPlacement enumerates every legal next action from an ordinary
// decision point: for every unordered pair of empty cells, either a
// quantum placement or, when the pair is already entangled, a child
// flagged as an entanglement selection. A single remaining empty cell is
// a forced placement.
func (n *Node) expandPlacement() {
	nextColor := -n.LastColor
	empties := qstate.EmptyCells(&n.State.Classic)

	if len(empties) == 1 {
		p := empties[0]
		s := n.State.Clone()
		s.SelectEntanglement(p, nextColor)
		n.Children = append(n.Children, &Node{
			Parent:    n,
			State:     s,
			LastColor: nextColor,
			LastMove:  Move{P: p, Q: p},
		})
		return
	}

	for i := 0; i < len(empties); i++ {
		for j := i + 1; j < len(empties); j++ {
			p, q := empties[i], empties[j]
			if n.State.TestEntanglement(p, q) {
				n.Children = append(n.Children, &Node{
					Parent:          n,
					State:           n.State,
					LastColor:       nextColor,
					LastMove:        Move{P: p, Q: q},
					HasEntanglement: true,
				})
				continue
			}
			s := n.State.Clone()
			s.PutQuantum(p, q, nextColor)
			n.Children = append(n.Children, &Node{
				Parent:    n,
				State:     s,
				LastColor: nextColor,
				LastMove:  Move{P: p, Q: q},
			})
		}
	}
}

// Update runs one simulation from this node down to a leaf, expanding
// along the way once a leaf's visit count crosses ExpandThreshold, and
// back-propagates the resulting three-bucket tally up through this node.
func (n *Node) Update(g *rng.Source) [3]int {
	var result [3]int

	if len(n.Children) == 0 && n.Visits >= ExpandThreshold {
		n.Expand()
	}

	unvisited := -1
	for i, child := range n.Children {
		if child.Visits == 0 {
			unvisited = i
			break
		}
	}

	switch {
	case len(n.Children) == 0:
		for i := 0; i < PlayoutScale; i++ {
			winner := qstate.Playout(n.State.Clone(), g)
			result[resultIndex(winner)]++
		}
	case unvisited >= 0:
		// Seed every freshly expanded child with one round, in insertion
		// order, before any UCB1 comparison is meaningful.
		result = n.Children[unvisited].Update(g)
	default:
		totalPlayouts := n.Visits
		best := n.Children[0]
		bestScore := best.ucbScore(totalPlayouts)
		for _, child := range n.Children[1:] {
			score := child.ucbScore(totalPlayouts)
			if score > bestScore {
				bestScore = score
				best = child
			}
		}
		result = best.Update(g)
	}

	n.Visits += PlayoutScale
	n.Results[0] += result[0]
	n.Results[1] += result[1]
	n.Results[2] += result[2]
	return result
}

// ucbScore is the UCB1-Tuned score used during selection: an unvisited
// child scores +Inf so it is always chosen first, breaking ties by
// insertion order since Update scans children in slice order.
func (n *Node) ucbScore(totalPlayouts int) float64 {
	if n.Visits == 0 {
		return math.Inf(1)
	}
	r := float64(n.wins()) / float64(n.Visits)
	x := math.Log(float64(totalPlayouts)) / float64(n.Visits)
	y := math.Min(0.25, r-r*r+math.Sqrt(2*x))
	return r + math.Sqrt(x*y)
}

// BestMove picks the child with the highest empirical win rate
// (wins/visits, never the UCB1 score), breaking ties by first insertion.
func (n *Node) BestMove() Move {
	best := n.Children[0]
	bestRate := float64(best.wins()) / float64(best.Visits)
	for _, child := range n.Children[1:] {
		rate := float64(child.wins()) / float64(child.Visits)
		if rate > bestRate {
			bestRate = rate
			best = child
		}
	}
	return best.LastMove
}
