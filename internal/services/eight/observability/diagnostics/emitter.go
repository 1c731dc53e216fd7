package diagnostics

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/nicklatkovich/ktane-eight/internal/platform/timeouts"
	"github.com/nicklatkovich/ktane-eight/internal/services/eight/domain/puzzle"
	"github.com/nicklatkovich/ktane-eight/internal/services/eight/storage"
)

// Emitter writes engine events for one module instance.
type Emitter struct {
	logger    *log.Logger
	store     storage.Store
	sessionID string
	module    int
	clock     func() time.Time
	timeout   time.Duration
}

// NewEmitter creates an emitter for the numbered module. A nil logger uses
// the standard logger; a nil store keeps events in the log only.
func NewEmitter(logger *log.Logger, store storage.Store, sessionID string, module int) *Emitter {
	if logger == nil {
		logger = log.Default()
	}
	return &Emitter{
		logger:    logger,
		store:     store,
		sessionID: sessionID,
		module:    module,
		clock:     time.Now,
		timeout:   timeouts.StoreWrite,
	}
}

// Observe implements puzzle.Observer.
func (e *Emitter) Observe(evt puzzle.Event) {
	if e == nil {
		return
	}
	line := e.Line(evt)
	if e.logger != nil {
		e.logger.Print(line)
	}
	if e.store == nil {
		return
	}

	now := e.now()
	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()
	if err := e.store.AppendDiagnostic(ctx, storage.DiagnosticEvent{
		SessionID: e.sessionID,
		Module:    e.module,
		Kind:      string(evt.Kind),
		Slot:      evt.Slot,
		Digits:    evt.Digits,
		Value:     evt.Value,
		Message:   line,
		CreatedAt: now,
	}); err != nil {
		e.logf("append diagnostic %s: %v", evt.Kind, err)
	}
	if evt.Kind != puzzle.EventRoundResolved {
		return
	}
	if err := e.store.RecordRound(ctx, storage.RoundRecord{
		SessionID:   e.sessionID,
		Module:      e.module,
		Digits:      evt.Digits,
		Stage:       string(evt.Stage),
		Verdict:     evt.Verdict.String(),
		NotDisabled: evt.NotDisabled,
		CreatedAt:   now,
	}); err != nil {
		e.logf("record round: %v", err)
	}
}

// Line formats evt as a module log line.
func (e *Emitter) Line(evt puzzle.Event) string {
	return fmt.Sprintf("[Eight #%d] %s", e.module, Message(evt))
}

// Message describes evt without the module prefix.
func Message(evt puzzle.Event) string {
	switch evt.Kind {
	case puzzle.EventActivated:
		return fmt.Sprintf("Activated with %d digits", evt.NotDisabled)
	case puzzle.EventStageRolled:
		return fmt.Sprintf("New digit on small display: %c", evt.Stage)
	case puzzle.EventGenerated:
		return fmt.Sprintf("Generated number: %s", evt.Digits)
	case puzzle.EventPossibleSolution:
		return fmt.Sprintf("Possible solution: %d", evt.Value)
	case puzzle.EventNoSolution:
		return "No possible solution"
	case puzzle.EventRendered:
		return fmt.Sprintf("New rendered number: %s", evt.Digits)
	case puzzle.EventMinutesChanged:
		return fmt.Sprintf("Remaining minutes changed to %d", evt.Value)
	case puzzle.EventSolvesChanged:
		return fmt.Sprintf("Solved modules count changed to %d", evt.Value)
	case puzzle.EventSlotRerendered:
		return fmt.Sprintf("Digit #%d new rendered value: %s", evt.Slot+1, evt.Digits)
	case puzzle.EventSlotRemoved:
		return fmt.Sprintf("Digit #%d removed", evt.Slot+1)
	case puzzle.EventSubmitted:
		return `"SKIP" button pressed`
	case puzzle.EventStrike:
		return strikeMessage(evt)
	case puzzle.EventSlotDisabled:
		return fmt.Sprintf("Digit #%d disabled", evt.Slot+1)
	case puzzle.EventSolved:
		return "Module solved"
	case puzzle.EventRoundResolved:
		return fmt.Sprintf("Round %s on stage %c resolved: %s, %d digits left", evt.Digits, evt.Stage, evt.Verdict, evt.NotDisabled)
	default:
		return string(evt.Kind)
	}
}

func strikeMessage(evt puzzle.Event) string {
	switch evt.Verdict {
	case puzzle.VerdictEmpty:
		return "Strike: all digits have been removed"
	case puzzle.VerdictLeadingZero:
		return "Strike: submitted number has leading 0"
	case puzzle.VerdictNotDivisible:
		return fmt.Sprintf("Strike: submitted number %d not divisible by 8", evt.Value)
	default:
		return "Strike: " + evt.Verdict.String()
	}
}

func (e *Emitter) now() time.Time {
	if e.clock == nil {
		return time.Now().UTC()
	}
	return e.clock().UTC()
}

func (e *Emitter) logf(format string, args ...any) {
	if e.logger == nil {
		return
	}
	e.logger.Printf("[Eight #%d] "+format, append([]any{e.module}, args...)...)
}

var _ puzzle.Observer = (*Emitter)(nil)
