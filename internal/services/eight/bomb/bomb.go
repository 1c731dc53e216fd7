package bomb

import (
	"math"
	"sync"
	"time"

	"github.com/nicklatkovich/ktane-eight/internal/services/eight/domain/puzzle"
)

// Bomb is a running simulated bomb. It is safe for concurrent use.
type Bomb struct {
	scenario Scenario
	timer    time.Duration
	clock    func() time.Time

	mu      sync.Mutex
	started time.Time
	solved  int
	strikes int
	passed  bool
}

// Option configures a Bomb.
type Option func(*Bomb)

// WithClock replaces time.Now.
func WithClock(clock func() time.Time) Option {
	return func(b *Bomb) {
		if clock != nil {
			b.clock = clock
		}
	}
}

// New builds a bomb from a validated scenario. The timer does not run until
// Start is called.
func New(scenario Scenario, opts ...Option) (*Bomb, error) {
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	timer, err := scenario.TimerDuration()
	if err != nil {
		return nil, err
	}
	b := &Bomb{
		scenario: scenario,
		timer:    timer,
		clock:    time.Now,
		solved:   scenario.Solved,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Start begins the countdown. Later calls are no-ops.
func (b *Bomb) Start() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.started.IsZero() {
		b.started = b.clock()
	}
}

// RemainingTimeSeconds returns the whole seconds left, rounded down. It goes
// negative once the timer has run out.
func (b *Bomb) RemainingTimeSeconds() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	remaining := b.timer
	if !b.started.IsZero() {
		remaining -= b.clock().Sub(b.started)
	}
	return int(math.Floor(remaining.Seconds()))
}

// SolvedModuleCount returns the number of solved modules.
func (b *Bomb) SolvedModuleCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.solved
}

// TotalModuleCount returns the number of modules on the bomb.
func (b *Bomb) TotalModuleCount() int { return b.scenario.Modules }

// IndicatorCount returns the number of indicators.
func (b *Bomb) IndicatorCount() int { return b.scenario.Indicators }

// BatteryCount returns the number of batteries.
func (b *Bomb) BatteryCount() int { return b.scenario.Batteries }

// SerialNumberDigitSum returns the sum of the serial number's digits.
func (b *Bomb) SerialNumberDigitSum() int { return b.scenario.SerialDigitSum() }

// PortCount returns the number of ports.
func (b *Bomb) PortCount() int { return b.scenario.Ports }

// Strike records a strike from the module.
func (b *Bomb) Strike() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.strikes++
}

// Pass records the module as solved. Only the first pass counts.
func (b *Bomb) Pass() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.passed {
		return
	}
	b.passed = true
	b.solved++
}

// SolveModule records another module on the bomb being solved.
func (b *Bomb) SolveModule() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.solved < b.scenario.Modules {
		b.solved++
	}
}

// Status is a point-in-time view of the bomb.
type Status struct {
	RemainingSeconds int
	Solved           int
	Modules          int
	Strikes          int
	MaxStrikes       int
	Passed           bool
}

// Exploded reports whether the strikes or the timer ran out.
func (s Status) Exploded() bool {
	return s.Strikes >= s.MaxStrikes || s.RemainingSeconds <= 0
}

// Status returns the current bomb figures.
func (b *Bomb) Status() Status {
	remaining := b.RemainingTimeSeconds()
	b.mu.Lock()
	defer b.mu.Unlock()
	return Status{
		RemainingSeconds: remaining,
		Solved:           b.solved,
		Modules:          b.scenario.Modules,
		Strikes:          b.strikes,
		MaxStrikes:       b.scenario.MaxStrikes,
		Passed:           b.passed,
	}
}

var (
	_ puzzle.Environment = (*Bomb)(nil)
	_ puzzle.Signals     = (*Bomb)(nil)
)
