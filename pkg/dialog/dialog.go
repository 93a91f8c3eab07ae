// Package dialog drives the newline-delimited JSON conversation with the
// host: one goroutine, no concurrency, reading requests from stdin and
// writing exactly one reply line per request.
package dialog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/ymatsux/quantum-reversi/pkg/protocol"
	"github.com/ymatsux/quantum-reversi/pkg/reconstruct"
	"github.com/ymatsux/quantum-reversi/pkg/solver"
)

// Loop owns the match's wall-clock budget (via its Solver) and the running
// step counter, which the protocol messages never carry explicitly.
type Loop struct {
	scanner *bufio.Scanner
	out     io.Writer
	log     zerolog.Logger
	solver  *solver.Solver

	glyphs protocol.Glyphs
	step   int
}

// New builds a Loop reading requests from in and writing replies to out.
func New(in io.Reader, out io.Writer, sv *solver.Solver, log zerolog.Logger) *Loop {
	return &Loop{
		scanner: bufio.NewScanner(in),
		out:     out,
		solver:  sv,
		log:     log,
	}
}

// Run reads and dispatches requests until quit or end of input. A
// malformed line or an unrecognized action is a protocol violation and is
// fatal: the host is a trusted counterpart and there is no useful
// recovery, so Run returns the error instead of trying to continue.
func (l *Loop) Run() error {
	for l.scanner.Scan() {
		line := l.scanner.Bytes()

		var env protocol.Envelope
		if err := json.Unmarshal(line, &env); err != nil {
			return fmt.Errorf("dialog: decoding request: %w", err)
		}

		switch env.Action {
		case "init":
			if err := l.handleInit(line); err != nil {
				return err
			}
		case "play":
			if err := l.handlePlay(line); err != nil {
				return err
			}
		case "select":
			if err := l.handleSelect(line); err != nil {
				return err
			}
		case "quit":
			return l.writeLine(nil)
		default:
			return fmt.Errorf("dialog: unrecognized action %q", env.Action)
		}
	}
	return l.scanner.Err()
}

// handleInit records the host's glyph set and starts the step counter at
// 4+index: index identifies which of the four fixed opening stones this
// engine's side placed last, and every later step is counted from there.
func (l *Loop) handleInit(line []byte) error {
	var msg protocol.InitMessage
	if err := json.Unmarshal(line, &msg); err != nil {
		return fmt.Errorf("dialog: decoding init: %w", err)
	}
	l.glyphs = msg.Glyphs
	l.step = 4 + msg.Index
	l.log.Info().Int("index", msg.Index).Strs("names", msg.Names).Msg("match started")
	return l.writeLine(nil)
}

func (l *Loop) handlePlay(line []byte) error {
	var msg protocol.PlayMessage
	if err := json.Unmarshal(line, &msg); err != nil {
		return fmt.Errorf("dialog: decoding play: %w", err)
	}
	state, err := reconstruct.Rebuild(msg.Board, msg.Moves, l.glyphs)
	if err != nil {
		return fmt.Errorf("dialog: rebuilding state for play: %w", err)
	}

	move := l.solver.Play(state, l.step, reconstruct.Histories(msg.Moves))
	l.log.Info().
		Int("step", l.step).
		Int("p", move.P).Int("q", move.Q).
		Dur("remaining", l.solver.RemainingTime).
		Msg("play")
	l.step += 2

	return l.writeLine(protocol.PlayReply{Positions: [2]int{move.P, move.Q}})
}

// handleSelect trims the trailing, not-yet-resolved move record off the
// transcript before rebuilding state, and searches at step-1: the step
// counter was already advanced past this decision point by the play
// reply that produced the pending entanglement.
func (l *Loop) handleSelect(line []byte) error {
	var msg protocol.SelectMessage
	if err := json.Unmarshal(line, &msg); err != nil {
		return fmt.Errorf("dialog: decoding select: %w", err)
	}
	resolved := msg.Moves
	if len(resolved) > 0 {
		resolved = resolved[:len(resolved)-1]
	}
	state, err := reconstruct.Rebuild(msg.Board, resolved, l.glyphs)
	if err != nil {
		return fmt.Errorf("dialog: rebuilding state for select: %w", err)
	}

	p, q := msg.Entanglement[0], msg.Entanglement[1]
	chosen := l.solver.Select(state, p, q, l.step-1, reconstruct.Histories(resolved))
	l.log.Info().Int("step", l.step-1).Int("p", p).Int("q", q).Int("chosen", chosen).Msg("select")

	return l.writeLine(protocol.SelectReply{Select: chosen})
}

func (l *Loop) writeLine(v any) error {
	if v == nil {
		_, err := fmt.Fprintln(l.out)
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("dialog: encoding reply: %w", err)
	}
	_, err = fmt.Fprintf(l.out, "%s\n", data)
	return err
}
