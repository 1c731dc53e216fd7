// Package storage defines persistence contracts for puzzle diagnostics.
package storage

import (
	"context"
	"time"
)

// DiagnosticEvent is one durable engine diagnostic record.
type DiagnosticEvent struct {
	ID        int64
	SessionID string
	Module    int
	Kind      string
	Slot      int
	Digits    string
	Value     int
	Message   string
	CreatedAt time.Time
}

// RoundRecord captures how one submitted round ended.
type RoundRecord struct {
	ID          int64
	SessionID   string
	Module      int
	Digits      string
	Stage       string
	Verdict     string
	NotDisabled int
	CreatedAt   time.Time
}

// DiagnosticStore persists diagnostic events.
type DiagnosticStore interface {
	AppendDiagnostic(ctx context.Context, evt DiagnosticEvent) error
	ListDiagnostics(ctx context.Context, sessionID string, limit int) ([]DiagnosticEvent, error)
}

// RoundStore persists round outcomes.
type RoundStore interface {
	RecordRound(ctx context.Context, round RoundRecord) error
	ListRounds(ctx context.Context, sessionID string, limit int) ([]RoundRecord, error)
}

// Store is the combined persistence surface of the puzzle runtime.
type Store interface {
	DiagnosticStore
	RoundStore
}
