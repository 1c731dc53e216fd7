package puzzle

// EventKind names a diagnostic event emitted by the engine.
type EventKind string

const (
	EventActivated        EventKind = "eight.activated"
	EventStageRolled      EventKind = "eight.stage_rolled"
	EventGenerated        EventKind = "eight.generated"
	EventPossibleSolution EventKind = "eight.possible_solution"
	EventNoSolution       EventKind = "eight.no_solution"
	EventRendered         EventKind = "eight.rendered"
	EventMinutesChanged   EventKind = "eight.minutes_changed"
	EventSolvesChanged    EventKind = "eight.solves_changed"
	EventSlotRerendered   EventKind = "eight.slot_rerendered"
	EventSlotRemoved      EventKind = "eight.slot_removed"
	EventSubmitted        EventKind = "eight.submitted"
	EventStrike           EventKind = "eight.strike"
	EventSlotDisabled     EventKind = "eight.slot_disabled"
	EventSolved           EventKind = "eight.solved"
	EventRoundResolved    EventKind = "eight.round_resolved"
)

// Event is a diagnostic record of one engine step. Fields not relevant to the
// kind are left zero; Slot is -1 when no slot is involved.
type Event struct {
	Kind        EventKind
	Slot        int
	Digits      string
	Value       int
	Stage       byte
	Verdict     Verdict
	NotDisabled int
}

// Observer receives diagnostic events. Observe is called synchronously from
// the engine and must not call back into it.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// Observe calls f.
func (f ObserverFunc) Observe(evt Event) {
	if f == nil {
		return
	}
	f(evt)
}

type multiObserver []Observer

func (m multiObserver) Observe(evt Event) {
	for _, o := range m {
		o.Observe(evt)
	}
}

// Observers fans events out to every non-nil observer in order.
func Observers(observers ...Observer) Observer {
	out := make(multiObserver, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			out = append(out, o)
		}
	}
	return out
}
