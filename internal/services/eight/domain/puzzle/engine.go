package puzzle

import (
	"errors"
	"math/rand"
	"sort"
)

// SolveThreshold is the not-disabled count at which a correct submission
// solves the puzzle.
const SolveThreshold = 2

// ErrAlreadyActive indicates Activate was called twice.
var ErrAlreadyActive = errors.New("puzzle already activated")

// ErrEnvironmentRequired indicates New was called without an environment.
var ErrEnvironmentRequired = errors.New("environment is required")

// Outcome describes what a submission did to the puzzle.
type Outcome int

const (
	OutcomeUnspecified Outcome = iota
	OutcomeIgnored
	OutcomeStrike
	OutcomeDisabled
	OutcomeSolved
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUnspecified:
		return "Unspecified"
	case OutcomeIgnored:
		return "Ignored"
	case OutcomeStrike:
		return "Strike"
	case OutcomeDisabled:
		return "Digit disabled"
	case OutcomeSolved:
		return "Solved"
	default:
		return "Unknown"
	}
}

// Engine holds the puzzle state and applies player actions to it.
type Engine struct {
	env      Environment
	signals  Signals
	observer Observer
	rng      *rand.Rand

	slots       [SlotCount]Slot
	stage       byte
	notDisabled map[int]struct{}
	activated   bool
	solved      bool

	remainingMinutes int
	solvesCount      int
}

// Option configures an Engine.
type Option func(*Engine)

// WithObserver sets the diagnostic event sink.
func WithObserver(observer Observer) Option {
	return func(e *Engine) {
		e.observer = observer
	}
}

// WithSeed makes generation deterministic for the given seed.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand sets the random source used for every draw.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		if rng != nil {
			e.rng = rng
		}
	}
}

// New creates an inactive engine. Signals may be nil when the caller does not
// care about strike and pass notifications.
func New(env Environment, signals Signals, opts ...Option) (*Engine, error) {
	if env == nil {
		return nil, ErrEnvironmentRequired
	}
	if signals == nil {
		signals = nopSignals{}
	}
	e := &Engine{
		env:     env,
		signals: signals,
		stage:   '0',
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(rand.Int63()))
	}
	e.resetNotDisabled()
	for i := range e.slots {
		e.slots[i].Active = true
	}
	return e, nil
}

// Activate snapshots the polled figures and generates the first round.
func (e *Engine) Activate() error {
	if e.activated {
		return ErrAlreadyActive
	}
	e.activated = true
	for i := range e.slots {
		e.slots[i].Char = '0'
	}
	e.remainingMinutes = remainingMinutes(e.env)
	e.solvesCount = e.env.SolvedModuleCount()
	e.emit(Event{Kind: EventActivated, Slot: -1, NotDisabled: len(e.notDisabled)})
	e.generate()
	return nil
}

// Poll refreshes the remaining minutes and solved module count, re-rendering
// slots 6 and 3 when they change. It reports false once polling should stop.
func (e *Engine) Poll() bool {
	if !e.activated || e.solved {
		return false
	}
	if minutes := remainingMinutes(e.env); minutes != e.remainingMinutes {
		e.remainingMinutes = minutes
		e.emit(Event{Kind: EventMinutesChanged, Slot: -1, Value: minutes})
		e.rerender(minutesSlot)
	}
	if solves := e.env.SolvedModuleCount(); solves != e.solvesCount {
		e.solvesCount = solves
		e.emit(Event{Kind: EventSolvesChanged, Slot: -1, Value: solves})
		e.rerender(solvesSlot)
	}
	return true
}

// Remove marks a slot as removed from the current submission. It reports
// false and changes nothing when the slot cannot be removed.
func (e *Engine) Remove(index int) bool {
	if !e.activated || e.solved || index < 0 || index >= SlotCount {
		return false
	}
	slot := &e.slots[index]
	if !slot.Available() {
		return false
	}
	slot.Removed = true
	e.emit(Event{Kind: EventSlotRemoved, Slot: index})
	return true
}

// Submit presses the action button. When the remaining digits already hold a
// solution the press counts as correct; otherwise the current removal pattern
// is validated. Unless the puzzle got solved, a new round is generated.
func (e *Engine) Submit() Outcome {
	if !e.activated || e.solved {
		return OutcomeIgnored
	}
	e.emit(Event{Kind: EventSubmitted, Slot: -1})
	round := e.plaintext()
	stage := e.stage

	var verdict Verdict
	if solution, ok := FindSolution(e.playable()); ok {
		e.emit(Event{Kind: EventPossibleSolution, Slot: -1, Value: solution})
		verdict = VerdictCorrect
	} else {
		verdict = Validate(e.submission())
	}

	var outcome Outcome
	if verdict == VerdictCorrect {
		outcome = e.correct()
	} else {
		outcome = e.strike(verdict)
	}
	e.emit(Event{
		Kind:        EventRoundResolved,
		Slot:        -1,
		Digits:      round,
		Stage:       stage,
		Verdict:     verdict,
		NotDisabled: len(e.notDisabled),
	})
	if outcome == OutcomeSolved {
		return outcome
	}
	for i := range e.slots {
		e.slots[i].Removed = false
	}
	e.generate()
	return outcome
}

// Available reports whether a slot is neither disabled nor removed.
func (e *Engine) Available(index int) bool {
	if index < 0 || index >= SlotCount {
		return false
	}
	slot := e.slots[index]
	return !slot.Disabled && !slot.Removed
}

// Solved reports whether the puzzle has been solved.
func (e *Engine) Solved() bool {
	return e.solved
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Slots:            e.slots,
		Stage:            e.stage,
		Activated:        e.activated,
		Solved:           e.solved,
		NotDisabled:      len(e.notDisabled),
		RemainingMinutes: e.remainingMinutes,
		SolvesCount:      e.solvesCount,
	}
}

func (e *Engine) correct() Outcome {
	if len(e.notDisabled) == SolveThreshold {
		e.solved = true
		for i := range e.slots {
			e.slots[i] = Slot{Value: e.slots[i].Value, Char: '8'}
		}
		e.stage = '8'
		e.emit(Event{Kind: EventSolved, Slot: -1})
		e.signals.Pass()
		return OutcomeSolved
	}
	members := e.notDisabledIndices()
	index := members[e.rng.Intn(len(members))]
	delete(e.notDisabled, index)
	e.slots[index].Disabled = true
	e.emit(Event{Kind: EventSlotDisabled, Slot: index, NotDisabled: len(e.notDisabled)})
	return OutcomeDisabled
}

func (e *Engine) strike(verdict Verdict) Outcome {
	var value int
	if verdict == VerdictNotDivisible {
		value = Concat(e.submission())
	}
	e.emit(Event{Kind: EventStrike, Slot: -1, Verdict: verdict, Value: value})
	e.signals.Strike()
	for i := range e.slots {
		e.slots[i].Disabled = false
	}
	e.resetNotDisabled()
	return OutcomeStrike
}

func (e *Engine) generate() {
	e.stage = byte('0' + e.rng.Intn(10))
	e.emit(Event{Kind: EventStageRolled, Slot: -1, Stage: e.stage})

	indices := e.notDisabledIndices()
	values := roundValues(e.rng, len(indices))
	for i, index := range indices {
		e.slots[index].Value = values[i]
	}
	for i := range e.slots {
		e.render(i)
	}

	e.emit(Event{Kind: EventGenerated, Slot: -1, Digits: e.plaintext(), NotDisabled: len(indices)})
	if solution, ok := FindSolution(e.playable()); ok {
		e.emit(Event{Kind: EventPossibleSolution, Slot: -1, Value: solution})
	} else {
		e.emit(Event{Kind: EventNoSolution, Slot: -1})
	}
	e.emit(Event{Kind: EventRendered, Slot: -1, Digits: e.rendered()})
}

func (e *Engine) render(index int) bool {
	slot := &e.slots[index]
	if slot.Disabled {
		return false
	}
	slot.Char = RenderDigit(slot.Value, e.Addendum(index))
	return true
}

func (e *Engine) rerender(index int) {
	if e.render(index) {
		e.emit(Event{Kind: EventSlotRerendered, Slot: index, Digits: string(e.slots[index].Char)})
	}
}

// playable returns the true values of active, not-disabled slots.
func (e *Engine) playable() []int {
	var out []int
	for _, slot := range e.slots {
		if slot.Active && !slot.Disabled {
			out = append(out, slot.Value)
		}
	}
	return out
}

// submission returns the true values the player left in place.
func (e *Engine) submission() []int {
	var out []int
	for _, slot := range e.slots {
		if !slot.Removed && !slot.Disabled {
			out = append(out, slot.Value)
		}
	}
	return out
}

func (e *Engine) plaintext() string {
	var out []int
	for _, slot := range e.slots {
		if !slot.Disabled {
			out = append(out, slot.Value)
		}
	}
	return Digits(out)
}

func (e *Engine) rendered() string {
	var out []byte
	for _, slot := range e.slots {
		if !slot.Disabled {
			out = append(out, slot.Char)
		}
	}
	return string(out)
}

func (e *Engine) notDisabledIndices() []int {
	out := make([]int, 0, len(e.notDisabled))
	for index := range e.notDisabled {
		out = append(out, index)
	}
	sort.Ints(out)
	return out
}

func (e *Engine) resetNotDisabled() {
	e.notDisabled = make(map[int]struct{}, SlotCount)
	for i := 0; i < SlotCount; i++ {
		e.notDisabled[i] = struct{}{}
	}
}

func (e *Engine) emit(evt Event) {
	if e.observer == nil {
		return
	}
	e.observer.Observe(evt)
}
