package puzzle

import "fmt"

// Environment exposes the bomb figures the addenda are derived from. Values
// are read at call time.
type Environment interface {
	RemainingTimeSeconds() int
	SolvedModuleCount() int
	TotalModuleCount() int
	IndicatorCount() int
	BatteryCount() int
	SerialNumberDigitSum() int
	PortCount() int
}

// Signals receives the outbound host notifications.
type Signals interface {
	Strike()
	Pass()
}

type nopSignals struct{}

func (nopSignals) Strike() {}
func (nopSignals) Pass()   {}

// Slots whose environment contribution comes from the polled figures.
const (
	solvesSlot  = 3
	minutesSlot = 6
)

func remainingMinutes(env Environment) int {
	seconds := env.RemainingTimeSeconds()
	if seconds < 0 {
		// floor, not truncation, for an overrun timer
		return -((-seconds + 59) / 60)
	}
	return seconds / 60
}

// contribution returns the environment part of a slot's addendum. Slots 3 and
// 6 use the cached figures so they only move when Poll observes a change.
func (e *Engine) contribution(slot int) int {
	switch slot {
	case 0:
		return e.env.IndicatorCount()
	case 1:
		return 8
	case 2:
		return e.env.TotalModuleCount()
	case solvesSlot:
		return e.solvesCount
	case 4:
		return e.env.BatteryCount()
	case 5:
		return e.env.SerialNumberDigitSum()
	case minutesSlot:
		return e.remainingMinutes
	case 7:
		return e.env.PortCount()
	default:
		panic(fmt.Sprintf("puzzle: invalid slot index %d", slot))
	}
}

// Addendum returns the full offset subtracted from the slot's true value under
// the current stage digit.
func (e *Engine) Addendum(slot int) int {
	return e.contribution(slot) + AddendumFor(slot, int(e.stage-'0'))
}
