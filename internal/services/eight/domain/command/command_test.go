package command

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/nicklatkovich/ktane-eight/internal/services/eight/domain/puzzle"
)

type fakeBoard map[int]bool

// Available treats every slot not listed as available.
func (b fakeBoard) Available(index int) bool {
	gone, ok := b[index]
	return !ok || !gone
}

func TestParse(t *testing.T) {
	gone := fakeBoard{1: true, 4: true}
	tcs := []struct {
		name  string
		text  string
		board fakeBoard
		want  Command
		ok    bool
	}{
		{name: "skip", text: "skip", want: Command{Kind: KindPress, Press: true}, ok: true},
		{name: "bare submit", text: "  SUBMIT ", want: Command{Kind: KindPress, Press: true}, ok: true},
		{
			name: "submit keeps listed digits",
			text: "submit 138",
			want: Command{Kind: KindSubmit, Remove: []int{1, 3, 4, 5, 6}, Press: true},
			ok:   true,
		},
		{
			name:  "submit skips slots already gone",
			text:  "Submit 1",
			board: gone,
			want:  Command{Kind: KindSubmit, Remove: []int{2, 3, 5, 6, 7}, Press: true},
			ok:    true,
		},
		{name: "submit naming a gone slot is rejected", text: "submit 25", board: gone, ok: false},
		{
			name:  "remove filters gone slots",
			text:  "remove 1257",
			board: gone,
			want:  Command{Kind: KindRemove, Remove: []int{0, 6}},
			ok:    true,
		},
		{
			name:  "remove with nothing left",
			text:  "remove 2",
			board: gone,
			want:  Command{Kind: KindRemove},
			ok:    true,
		},
		{name: "remove repeated digits", text: "REMOVE   331", want: Command{Kind: KindRemove, Remove: []int{0, 2}}, ok: true},
		{name: "out of range digit", text: "submit 129", ok: false},
		{name: "unknown", text: "press 1", ok: false},
		{name: "empty", text: "", ok: false},
		{name: "remove without digits", text: "remove", ok: false},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			board := tc.board
			if board == nil {
				board = fakeBoard{}
			}
			got, ok := Parse(tc.text, board)
			if ok != tc.ok {
				t.Fatalf("Parse(%q) ok = %v, want %v", tc.text, ok, tc.ok)
			}
			if diff := cmp.Diff(tc.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("Parse(%q) mismatch (-want +got):\n%s", tc.text, diff)
			}
		})
	}
}

type fakeActor struct {
	removed []int
	submits int
}

func (a *fakeActor) Remove(index int) bool {
	a.removed = append(a.removed, index)
	return true
}

func (a *fakeActor) Submit() puzzle.Outcome {
	a.submits++
	return puzzle.OutcomeStrike
}

func TestApply(t *testing.T) {
	actor := &fakeActor{}
	if got := Apply(Command{Kind: KindRemove, Remove: []int{0, 3}}, actor); got != puzzle.OutcomeUnspecified {
		t.Fatalf("remove outcome = %v, want %v", got, puzzle.OutcomeUnspecified)
	}
	if actor.submits != 0 {
		t.Fatalf("submits = %d, want 0", actor.submits)
	}
	if got := Apply(Command{Kind: KindSubmit, Remove: []int{5}, Press: true}, actor); got != puzzle.OutcomeStrike {
		t.Fatalf("submit outcome = %v, want %v", got, puzzle.OutcomeStrike)
	}
	if diff := cmp.Diff([]int{0, 3, 5}, actor.removed); diff != "" {
		t.Fatalf("removed mismatch (-want +got):\n%s", diff)
	}
	if actor.submits != 1 {
		t.Fatalf("submits = %d, want 1", actor.submits)
	}
}

func TestApplyAgainstEngine(t *testing.T) {
	e, err := puzzle.New(stubEnv{}, nil, puzzle.WithSeed(5))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if err := e.Activate(); err != nil {
		t.Fatalf("activate: %v", err)
	}
	cmd, ok := Parse("remove 12", e)
	if !ok {
		t.Fatal("expected remove to parse")
	}
	Apply(cmd, e)
	if e.Available(0) || e.Available(1) {
		t.Fatal("slots 1 and 2 still available after remove")
	}
	if _, ok := Parse("submit 1", e); ok {
		t.Fatal("submit naming a removed slot parsed")
	}
}

type stubEnv struct{}

func (stubEnv) RemainingTimeSeconds() int { return 600 }
func (stubEnv) SolvedModuleCount() int    { return 0 }
func (stubEnv) TotalModuleCount() int     { return 5 }
func (stubEnv) IndicatorCount() int       { return 1 }
func (stubEnv) BatteryCount() int         { return 2 }
func (stubEnv) SerialNumberDigitSum() int { return 9 }
func (stubEnv) PortCount() int            { return 0 }
