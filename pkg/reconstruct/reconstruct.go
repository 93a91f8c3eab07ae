// Package reconstruct rebuilds a qstate.State from the host's own view of
// the match: a glyph board (the authoritative classical position) plus
// the move transcript (from which the still-pending quantum edges are
// replayed).
package reconstruct

import (
	"fmt"

	"github.com/ymatsux/quantum-reversi/pkg/board"
	"github.com/ymatsux/quantum-reversi/pkg/protocol"
	"github.com/ymatsux/quantum-reversi/pkg/qstate"
)

// Rebuild decodes boardGlyphs into classical stones and moves into
// pending quantum edges.
//
// Classical cells are taken directly from the glyphs the host reports —
// not re-derived by replaying puts — because the host has already
// resolved and applied every flip; replaying them here would double-apply
// flips the host already computed. Any glyph other than the configured
// white/black glyph (including the quantum and empty glyphs) leaves a
// cell empty in the classical bitmap.
//
// Quantum edges are reconstructed from moves[4:]: moves 0..3 place the
// four fixed opening stones through a mechanism this engine does not
// control, so replay starts at step 4. A move record with a negative type
// is a still-pending quantum put and is replayed via PutQuantum, unless
// either of its endpoints is already classical in the board built above
// (the edge has since been collapsed and no longer exists). A move record with
// a non-negative type is a collapse whose effect is already baked into
// the classical glyphs, and contributes nothing to the edge list.
func Rebuild(boardGlyphs []string, moves []protocol.MoveRecord, glyphs protocol.Glyphs) (*qstate.State, error) {
	if len(boardGlyphs) != board.Cells {
		return nil, fmt.Errorf("reconstruct: board has %d cells, want %d", len(boardGlyphs), board.Cells)
	}

	s := &qstate.State{}
	for i, g := range boardGlyphs {
		switch g {
		case glyphs.White:
			s.Classic.ForcePut(i, board.White)
		case glyphs.Black:
			s.Classic.ForcePut(i, board.Black)
		}
	}

	for step := 4; step < len(moves); step++ {
		m := moves[step]
		if m.Type >= 0 {
			continue
		}
		if s.Classic.Get(m.P) != 0 || s.Classic.Get(m.Q) != 0 {
			continue
		}
		s.PutQuantum(m.P, m.Q, qstate.ColorForStep(step))
	}

	return s, nil
}

// Histories converts a decoded move transcript into the History form the
// solver package consumes for its opening-shortcut bookkeeping.
func Histories(moves []protocol.MoveRecord) []qstate.History {
	out := make([]qstate.History, len(moves))
	for i, m := range moves {
		out[i] = qstate.History{P: m.P, Q: m.Q, Select: m.Type}
	}
	return out
}
