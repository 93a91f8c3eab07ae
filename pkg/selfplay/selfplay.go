// Package selfplay runs two engines against each other in process, the
// way a development harness replays a match without going through the
// newline-delimited JSON protocol at all.
package selfplay

import (
	"github.com/ymatsux/quantum-reversi/pkg/board"
	"github.com/ymatsux/quantum-reversi/pkg/mcts"
	"github.com/ymatsux/quantum-reversi/pkg/qstate"
)

// Agent is anything that can answer the two turn-entry questions a match
// needs. *solver.Solver satisfies this directly; a fixed baseline (see
// pkg/selfplay/agents) does too.
type Agent interface {
	Play(state *qstate.State, step int, history []qstate.History) mcts.Move
	Select(state *qstate.State, p, q, step int, history []qstate.History) int
}

// Result is one completed match: who won, and the full move transcript.
type Result struct {
	Winner  int // 0 = White, 1 = Black, -1 = draw
	History []qstate.History
}

// Match pairs two agents against each other for a single game. agents[0]
// always plays White, agents[1] always plays Black.
type Match struct {
	agents [2]Agent
}

// NewMatch builds a Match between white and black.
func NewMatch(white, black Agent) *Match {
	return &Match{agents: [2]Agent{white, black}}
}

// Run plays the match to completion and returns the result. The four
// fixed opening stones are placed directly, matching every real
// transcript's first four plies, which this engine never gets to choose.
func (m *Match) Run() Result {
	state := &qstate.State{}
	state.Classic.ForcePut(14, board.White)
	state.Classic.ForcePut(15, board.Black)
	state.Classic.ForcePut(20, board.Black)
	state.Classic.ForcePut(21, board.White)

	var history []qstate.History
	for qstate.Step(state) < board.Cells {
		step := qstate.Step(state)
		color := qstate.ColorForStep(step)
		agent := m.agents[sideIndex(color)]

		empties := qstate.EmptyCells(&state.Classic)
		if len(empties) == 1 {
			p := empties[0]
			state.SelectEntanglement(p, color)
			history = append(history, qstate.History{P: p, Q: p, Select: 0})
			continue
		}

		move := agent.Play(state, step, history)
		p, q := move.P, move.Q
		if p > q {
			p, q = q, p
		}

		if state.TestEntanglement(move.P, move.Q) {
			chosen := agent.Select(state, move.P, move.Q, step, history)
			state.SelectEntanglement(chosen, color)
			sel := 0
			if chosen == q {
				sel = 1
			}
			history = append(history, qstate.History{P: p, Q: q, Select: sel})
		} else {
			state.PutQuantum(move.P, move.Q, color)
			history = append(history, qstate.History{P: p, Q: q, Select: -1})
		}
	}

	white, black := state.Classic.Count(board.White), state.Classic.Count(board.Black)
	winner := -1
	switch {
	case white > black:
		winner = 0
	case black > white:
		winner = 1
	}
	return Result{Winner: winner, History: history}
}

func sideIndex(c board.Color) int {
	if c == board.White {
		return 0
	}
	return 1
}
