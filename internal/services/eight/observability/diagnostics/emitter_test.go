package diagnostics

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/nicklatkovich/ktane-eight/internal/services/eight/domain/puzzle"
	"github.com/nicklatkovich/ktane-eight/internal/services/eight/storage"
)

type fakeStore struct {
	diagnostics []storage.DiagnosticEvent
	rounds      []storage.RoundRecord
	appendErr   error
}

func (s *fakeStore) AppendDiagnostic(_ context.Context, evt storage.DiagnosticEvent) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	s.diagnostics = append(s.diagnostics, evt)
	return nil
}

func (s *fakeStore) ListDiagnostics(context.Context, string, int) ([]storage.DiagnosticEvent, error) {
	return s.diagnostics, nil
}

func (s *fakeStore) RecordRound(_ context.Context, round storage.RoundRecord) error {
	s.rounds = append(s.rounds, round)
	return nil
}

func (s *fakeStore) ListRounds(context.Context, string, int) ([]storage.RoundRecord, error) {
	return s.rounds, nil
}

func newTestEmitter(store storage.Store) (*Emitter, *bytes.Buffer) {
	var buf bytes.Buffer
	emitter := NewEmitter(log.New(&buf, "", 0), store, "session-1", 3)
	emitter.clock = func() time.Time { return time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC) }
	return emitter, &buf
}

func TestMessage(t *testing.T) {
	tests := []struct {
		evt  puzzle.Event
		want string
	}{
		{puzzle.Event{Kind: puzzle.EventStageRolled, Slot: -1, Stage: '7'}, "New digit on small display: 7"},
		{puzzle.Event{Kind: puzzle.EventGenerated, Slot: -1, Digits: "91024996"}, "Generated number: 91024996"},
		{puzzle.Event{Kind: puzzle.EventPossibleSolution, Slot: -1, Value: 24}, "Possible solution: 24"},
		{puzzle.Event{Kind: puzzle.EventNoSolution, Slot: -1}, "No possible solution"},
		{puzzle.Event{Kind: puzzle.EventMinutesChanged, Slot: -1, Value: 4}, "Remaining minutes changed to 4"},
		{puzzle.Event{Kind: puzzle.EventSolvesChanged, Slot: -1, Value: 2}, "Solved modules count changed to 2"},
		{puzzle.Event{Kind: puzzle.EventSlotRerendered, Slot: 6, Digits: "3"}, "Digit #7 new rendered value: 3"},
		{puzzle.Event{Kind: puzzle.EventSlotRemoved, Slot: 0}, "Digit #1 removed"},
		{puzzle.Event{Kind: puzzle.EventSubmitted, Slot: -1}, `"SKIP" button pressed`},
		{puzzle.Event{Kind: puzzle.EventStrike, Slot: -1, Verdict: puzzle.VerdictEmpty}, "Strike: all digits have been removed"},
		{puzzle.Event{Kind: puzzle.EventStrike, Slot: -1, Verdict: puzzle.VerdictLeadingZero}, "Strike: submitted number has leading 0"},
		{puzzle.Event{Kind: puzzle.EventStrike, Slot: -1, Verdict: puzzle.VerdictNotDivisible, Value: 65}, "Strike: submitted number 65 not divisible by 8"},
		{puzzle.Event{Kind: puzzle.EventSlotDisabled, Slot: 4}, "Digit #5 disabled"},
		{puzzle.Event{Kind: puzzle.EventSolved, Slot: -1}, "Module solved"},
		{
			puzzle.Event{Kind: puzzle.EventRoundResolved, Slot: -1, Digits: "1024", Stage: '5', Verdict: puzzle.VerdictCorrect, NotDisabled: 3},
			"Round 1024 on stage 5 resolved: Correct, 3 digits left",
		},
	}
	for _, tt := range tests {
		t.Run(string(tt.evt.Kind), func(t *testing.T) {
			if got := Message(tt.evt); got != tt.want {
				t.Fatalf("Message() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestObserveLogsWithModulePrefix(t *testing.T) {
	emitter, buf := newTestEmitter(nil)

	emitter.Observe(puzzle.Event{Kind: puzzle.EventSlotRemoved, Slot: 2})

	if got, want := buf.String(), "[Eight #3] Digit #3 removed\n"; got != want {
		t.Fatalf("log = %q, want %q", got, want)
	}
}

func TestObservePersistsDiagnostics(t *testing.T) {
	store := &fakeStore{}
	emitter, _ := newTestEmitter(store)

	emitter.Observe(puzzle.Event{Kind: puzzle.EventGenerated, Slot: -1, Digits: "12", NotDisabled: 2})

	want := []storage.DiagnosticEvent{{
		SessionID: "session-1",
		Module:    3,
		Kind:      "eight.generated",
		Slot:      -1,
		Digits:    "12",
		Message:   "[Eight #3] Generated number: 12",
		CreatedAt: time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
	}}
	if diff := cmp.Diff(want, store.diagnostics); diff != "" {
		t.Fatalf("diagnostics mismatch (-want +got):\n%s", diff)
	}
	if len(store.rounds) != 0 {
		t.Fatalf("rounds = %d, want 0", len(store.rounds))
	}
}

func TestObserveRecordsResolvedRound(t *testing.T) {
	store := &fakeStore{}
	emitter, _ := newTestEmitter(store)

	emitter.Observe(puzzle.Event{
		Kind:        puzzle.EventRoundResolved,
		Slot:        -1,
		Digits:      "91024996",
		Stage:       '4',
		Verdict:     puzzle.VerdictNotDivisible,
		NotDisabled: 8,
	})

	want := []storage.RoundRecord{{
		SessionID:   "session-1",
		Module:      3,
		Digits:      "91024996",
		Stage:       "4",
		Verdict:     "Not divisible by 8",
		NotDisabled: 8,
		CreatedAt:   time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
	}}
	if diff := cmp.Diff(want, store.rounds); diff != "" {
		t.Fatalf("rounds mismatch (-want +got):\n%s", diff)
	}
}

func TestObserveLogsStoreFailure(t *testing.T) {
	store := &fakeStore{appendErr: errors.New("disk full")}
	emitter, buf := newTestEmitter(store)

	emitter.Observe(puzzle.Event{Kind: puzzle.EventNoSolution, Slot: -1})

	if !strings.Contains(buf.String(), "append diagnostic eight.no_solution: disk full") {
		t.Fatalf("log = %q, want store failure line", buf.String())
	}
}

func TestObserveNilEmitter(t *testing.T) {
	var emitter *Emitter
	emitter.Observe(puzzle.Event{Kind: puzzle.EventSolved})
}

func TestEmitterDrivenByEngine(t *testing.T) {
	store := &fakeStore{}
	emitter, buf := newTestEmitter(store)
	engine, err := puzzle.New(stubEnv{}, nil, puzzle.WithSeed(8), puzzle.WithObserver(emitter))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if err := engine.Activate(); err != nil {
		t.Fatalf("activate: %v", err)
	}
	engine.Submit()

	if len(store.rounds) != 1 {
		t.Fatalf("rounds = %d, want 1", len(store.rounds))
	}
	if !strings.Contains(buf.String(), "[Eight #3] Generated number: ") {
		t.Fatalf("log = %q, want generated line", buf.String())
	}
}

type stubEnv struct{}

func (stubEnv) RemainingTimeSeconds() int { return 600 }
func (stubEnv) SolvedModuleCount() int    { return 0 }
func (stubEnv) TotalModuleCount() int     { return 5 }
func (stubEnv) IndicatorCount() int       { return 1 }
func (stubEnv) BatteryCount() int         { return 2 }
func (stubEnv) SerialNumberDigitSum() int { return 9 }
func (stubEnv) PortCount() int            { return 3 }
