// Package app runs the puzzle engine behind a single-owner event loop and
// wires it to the console, the simulated bomb and the diagnostic store.
package app

import (
	"context"
	"errors"
	"time"

	"github.com/nicklatkovich/ktane-eight/internal/services/eight/domain/command"
	"github.com/nicklatkovich/ktane-eight/internal/services/eight/domain/puzzle"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultPollInterval is how often the loop refreshes the polled figures.
const DefaultPollInterval = 100 * time.Millisecond

const tracerName = "github.com/nicklatkovich/ktane-eight/internal/services/eight/app"

// ErrModuleStopped indicates the loop is no longer running.
var ErrModuleStopped = errors.New("module loop stopped")

// Result reports what an executed command did.
type Result struct {
	Parsed   bool
	Command  command.Command
	Outcome  puzzle.Outcome
	Snapshot puzzle.Snapshot
}

// Module owns an engine from a single goroutine. All access goes through
// Execute and Snapshot, which hand work to the loop started by Run.
type Module struct {
	engine       *puzzle.Engine
	pollInterval time.Duration
	tracer       trace.Tracer

	actions chan func()
	done    chan struct{}
}

// ModuleOption configures a Module.
type ModuleOption func(*Module)

// WithPollInterval overrides DefaultPollInterval.
func WithPollInterval(interval time.Duration) ModuleOption {
	return func(m *Module) {
		if interval > 0 {
			m.pollInterval = interval
		}
	}
}

// WithTracer overrides the global tracer.
func WithTracer(tracer trace.Tracer) ModuleOption {
	return func(m *Module) {
		if tracer != nil {
			m.tracer = tracer
		}
	}
}

// NewModule wraps an inactive engine.
func NewModule(engine *puzzle.Engine, opts ...ModuleOption) *Module {
	m := &Module{
		engine:       engine,
		pollInterval: DefaultPollInterval,
		tracer:       otel.Tracer(tracerName),
		actions:      make(chan func()),
		done:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run activates the engine and serves actions until ctx ends. Polling stops
// for good once the puzzle is solved; actions keep being answered.
func (m *Module) Run(ctx context.Context) error {
	defer close(m.done)
	if err := m.engine.Activate(); err != nil {
		return err
	}

	ticker := time.NewTicker(m.pollInterval)
	defer ticker.Stop()
	tick := ticker.C
	stopPolling := func() {
		if tick != nil && m.engine.Solved() {
			ticker.Stop()
			tick = nil
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick:
			m.engine.Poll()
			stopPolling()
		case action := <-m.actions:
			action()
			stopPolling()
		}
	}
}

// Execute parses text against the current board and applies it. Text that is
// not a command yields a Result with Parsed false.
func (m *Module) Execute(ctx context.Context, text string) (Result, error) {
	ctx, span := m.tracer.Start(ctx, "eight.command")
	defer span.End()

	var result Result
	err := m.do(ctx, func() {
		cmd, ok := command.Parse(text, m.engine)
		result.Parsed = ok
		if ok {
			result.Command = cmd
			result.Outcome = command.Apply(cmd, m.engine)
		}
		result.Snapshot = m.engine.Snapshot()
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}
	span.SetAttributes(
		attribute.Bool("eight.command.parsed", result.Parsed),
		attribute.String("eight.command.kind", result.Command.Kind.String()),
		attribute.String("eight.command.outcome", result.Outcome.String()),
		attribute.Int("eight.not_disabled", result.Snapshot.NotDisabled),
	)
	return result, nil
}

// Snapshot returns a copy of the engine state.
func (m *Module) Snapshot(ctx context.Context) (puzzle.Snapshot, error) {
	var snapshot puzzle.Snapshot
	err := m.do(ctx, func() {
		snapshot = m.engine.Snapshot()
	})
	return snapshot, err
}

// Done is closed once Run has returned.
func (m *Module) Done() <-chan struct{} {
	return m.done
}

func (m *Module) do(ctx context.Context, action func()) error {
	reply := make(chan struct{})
	wrapped := func() {
		action()
		close(reply)
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-m.done:
		return ErrModuleStopped
	case m.actions <- wrapped:
	}
	<-reply
	return nil
}
