package selfplay

import (
	"testing"

	"github.com/ymatsux/quantum-reversi/pkg/selfplay/agents"
)

func TestRunProducesALegalWinnerAndACompleteHistory(t *testing.T) {
	m := NewMatch(agents.NewRandom(1), agents.NewRandom(2))
	result := m.Run()

	if result.Winner != 0 && result.Winner != 1 && result.Winner != -1 {
		t.Fatalf("winner = %d, want 0, 1, or -1", result.Winner)
	}
	if len(result.History) == 0 {
		t.Fatalf("expected a non-empty move transcript")
	}
}

func TestRunIsDeterministicGivenTheSameAgents(t *testing.T) {
	a := NewMatch(agents.NewRandom(5), agents.NewRandom(6)).Run()
	b := NewMatch(agents.NewRandom(5), agents.NewRandom(6)).Run()
	if a.Winner != b.Winner || len(a.History) != len(b.History) {
		t.Fatalf("same-seed matches diverged: %+v != %+v", a, b)
	}
}
